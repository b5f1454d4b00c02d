package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/pizzeria-storefront/internal/analytics"
	"github.com/MikeMC777/pizzeria-storefront/internal/cart"
	"github.com/MikeMC777/pizzeria-storefront/internal/catalog"
	"github.com/MikeMC777/pizzeria-storefront/internal/courier"
	"github.com/MikeMC777/pizzeria-storefront/internal/notify"
	"github.com/MikeMC777/pizzeria-storefront/internal/order"
)

func init() {
	gin.SetMode(gin.TestMode)
}

//
// ---------- stubs ----------
//

type stubCatalog struct{ items []catalog.MenuItem }

func seededCatalog() *stubCatalog { return &stubCatalog{items: catalog.Defaults()} }

func (s *stubCatalog) List(ctx context.Context) ([]catalog.MenuItem, error) {
	return s.items, nil
}

func (s *stubCatalog) ListByCategory(ctx context.Context, cat catalog.Category) ([]catalog.MenuItem, error) {
	var out []catalog.MenuItem
	for _, m := range s.items {
		if m.Category == cat {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubCatalog) GetByID(ctx context.Context, id string) (*catalog.MenuItem, error) {
	for _, m := range s.items {
		if m.ID == id {
			m := m
			return &m, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (s *stubCatalog) SeedDefaults(ctx context.Context, items []catalog.MenuItem) error {
	known := map[string]bool{}
	for _, m := range s.items {
		known[m.ID] = true
	}
	for _, m := range items {
		if !known[m.ID] {
			s.items = append(s.items, m)
		}
	}
	return nil
}

type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[string]order.Order
	seq    []string
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: map[string]order.Order{}}
}

func (r *stubOrderRepo) Create(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = *o
	r.seq = append(r.seq, o.ID)
	return nil
}

func (r *stubOrderRepo) GetByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return &o, nil
}

func (r *stubOrderRepo) List(ctx context.Context, status order.Status) ([]order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []order.Order
	for i := len(r.seq) - 1; i >= 0; i-- {
		o := r.orders[r.seq[i]]
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(ctx context.Context, id string, from, to order.Status, courier string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	if o.Status != from {
		return order.ErrStaleTransition
	}
	o.Status = to
	if courier != "" {
		o.AssignedCourier = courier
	}
	o.UpdatedAt = time.Now()
	r.orders[id] = o
	return nil
}

func (r *stubOrderRepo) CreatedBetween(ctx context.Context, from, to time.Time) ([]order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []order.Order
	for _, id := range r.seq {
		o := r.orders[id]
		if !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			out = append(out, o)
		}
	}
	return out, nil
}

type memCartStore struct {
	mu    sync.Mutex
	carts map[string]cart.Cart
}

func newMemCartStore() *memCartStore { return &memCartStore{carts: map[string]cart.Cart{}} }

func (s *memCartStore) Get(ctx context.Context, sessionID string) (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts[sessionID], nil
}

func (s *memCartStore) Save(ctx context.Context, sessionID string, c cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = c
	return nil
}

func (s *memCartStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

type stubCourierRepo struct {
	mu       sync.Mutex
	couriers map[string]courier.Courier
}

func newStubCourierRepo() *stubCourierRepo {
	return &stubCourierRepo{couriers: map[string]courier.Courier{}}
}

func (r *stubCourierRepo) Create(ctx context.Context, c *courier.Courier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.couriers[c.ID] = *c
	return nil
}

func (r *stubCourierRepo) List(ctx context.Context, onlyAvailable bool) ([]courier.Courier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []courier.Courier
	for _, c := range r.couriers {
		if !onlyAvailable || c.Available {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubCourierRepo) GetByID(ctx context.Context, id string) (*courier.Courier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.couriers[id]
	if !ok {
		return nil, courier.ErrNotFound
	}
	return &c, nil
}

func (r *stubCourierRepo) SetAvailable(ctx context.Context, id string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.couriers[id]
	if !ok {
		return courier.ErrNotFound
	}
	c.Available = available
	r.couriers[id] = c
	return nil
}

//
// ---------- harness ----------
//

type env struct {
	router   *gin.Engine
	orders   *stubOrderRepo
	catalog  *stubCatalog
	carts    *memCartStore
	couriers *stubCourierRepo
}

func newEnv() *env {
	e := &env{
		orders:   newStubOrderRepo(),
		catalog:  seededCatalog(),
		carts:    newMemCartStore(),
		couriers: newStubCourierRepo(),
	}
	svc := order.NewService(e.orders, e.catalog)
	loc := time.UTC

	r := gin.New()
	r.GET("/menu", listMenuHandler(e.catalog))
	r.GET("/menu/category/:category", listMenuByCategoryHandler(e.catalog))
	r.POST("/initialize-menu", initializeMenuHandler(e.catalog))
	r.GET("/zones", listZonesHandler())
	r.POST("/orders", createOrderHandler(svc, notify.Nop{}))
	r.GET("/orders", listOrdersHandler(svc))
	r.GET("/orders/:id", getOrderHandler(svc))
	r.GET("/orders/:id/actions", orderActionsHandler(svc))
	r.PUT("/orders/:id/status", updateOrderStatusHandler(svc, notify.Nop{}))
	r.GET("/analytics/today", analyticsTodayHandler(e.orders, loc))
	r.GET("/cart", getCartHandler(e.carts, e.catalog))
	r.POST("/cart/items", addCartItemHandler(e.carts, e.catalog))
	r.PUT("/cart/items/:id", updateCartItemHandler(e.carts, e.catalog))
	r.DELETE("/cart/items/:id", removeCartItemHandler(e.carts, e.catalog))
	r.DELETE("/cart", clearCartHandler(e.carts))
	r.POST("/couriers", createCourierHandler(e.couriers))
	r.GET("/couriers", listCouriersHandler(e.couriers))
	r.PUT("/couriers/:id/availability", setCourierAvailabilityHandler(e.couriers))
	e.router = r
	return e
}

func (e *env) do(t *testing.T, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func itemID(t *testing.T, name string) string {
	t.Helper()
	for _, m := range catalog.Defaults() {
		if m.Name == name {
			return m.ID
		}
	}
	t.Fatalf("seed item %q not found", name)
	return ""
}

func checkoutPayload(items []map[string]any) map[string]any {
	return map[string]any{
		"items": items,
		"delivery_info": map[string]any{
			"customer_name":    "Juan Benítez",
			"customer_phone":   "+595981123456",
			"delivery_address": "Av. Mcal. López 1234",
			"delivery_zone":    "centro",
		},
		"payment_method": "cash",
	}
}

//
// ---------- menu ----------
//

func TestListMenu(t *testing.T) {
	e := newEnv()
	w := e.do(t, http.MethodGet, "/menu", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var items []catalog.MenuItem
	decode(t, w, &items)
	if len(items) != len(catalog.Defaults()) {
		t.Fatalf("items=%d, want %d", len(items), len(catalog.Defaults()))
	}
}

func TestListMenuByCategory(t *testing.T) {
	e := newEnv()

	w := e.do(t, http.MethodGet, "/menu/category/pizza", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var items []catalog.MenuItem
	decode(t, w, &items)
	if len(items) != 3 {
		t.Fatalf("pizzas=%d, want 3", len(items))
	}

	if w := e.do(t, http.MethodGet, "/menu/category/sushi", nil, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown category status=%d, want 400", w.Code)
	}
}

func TestInitializeMenuIdempotent(t *testing.T) {
	e := newEnv()
	for i := 0; i < 2; i++ {
		if w := e.do(t, http.MethodPost, "/initialize-menu", nil, nil); w.Code != http.StatusNoContent {
			t.Fatalf("status=%d, want 204", w.Code)
		}
	}
	if len(e.catalog.items) != len(catalog.Defaults()) {
		t.Fatalf("catalog has %d items after double init", len(e.catalog.items))
	}
}

func TestListZones(t *testing.T) {
	e := newEnv()
	w := e.do(t, http.MethodGet, "/zones", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var zones []struct {
		ID  string `json:"id"`
		Fee int64  `json:"fee"`
	}
	decode(t, w, &zones)
	if len(zones) != 4 {
		t.Fatalf("zones=%d, want 4", len(zones))
	}
}

//
// ---------- orders ----------
//

func TestCreateOrder(t *testing.T) {
	e := newEnv()
	w := e.do(t, http.MethodPost, "/orders", checkoutPayload([]map[string]any{
		{"menu_item_id": itemID(t, "Limonada"), "quantity": 5},
	}), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var o order.Order
	decode(t, w, &o)
	if o.Subtotal != 50000 || o.DeliveryFee != 15000 || o.Total != 65000 {
		t.Fatalf("quote = %d/%d/%d, want 50000/15000/65000", o.Subtotal, o.DeliveryFee, o.Total)
	}
	if o.Status != order.StatusReceived {
		t.Fatalf("status=%s, want received", o.Status)
	}
	if o.Items[0].Name != "Limonada" || o.Items[0].UnitPrice != 10000 {
		t.Fatalf("item snapshot = %+v", o.Items[0])
	}
	if got := o.EstimatedDelivery.Sub(o.CreatedAt); got != 45*time.Minute {
		t.Fatalf("estimated delivery lead = %v, want 45m", got)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	e := newEnv()

	if w := e.do(t, http.MethodPost, "/orders", checkoutPayload(nil), nil); w.Code != http.StatusBadRequest {
		t.Fatalf("empty items status=%d, want 400", w.Code)
	}

	w := e.do(t, http.MethodPost, "/orders", checkoutPayload([]map[string]any{
		{"menu_item_id": "no-such-item", "quantity": 1},
	}), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown item status=%d, want 400", w.Code)
	}

	p := checkoutPayload([]map[string]any{{"menu_item_id": itemID(t, "Limonada"), "quantity": 1}})
	p["payment_method"] = "crypto"
	if w := e.do(t, http.MethodPost, "/orders", p, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad payment method status=%d, want 400", w.Code)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	e := newEnv()
	if w := e.do(t, http.MethodGet, "/orders/nope", nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
}

func TestListOrdersFilter(t *testing.T) {
	e := newEnv()
	for i := 0; i < 2; i++ {
		e.do(t, http.MethodPost, "/orders", checkoutPayload([]map[string]any{
			{"menu_item_id": itemID(t, "Limonada"), "quantity": 1},
		}), nil)
	}

	w := e.do(t, http.MethodGet, "/orders?status=received", nil, nil)
	var orders []order.Order
	decode(t, w, &orders)
	if len(orders) != 2 {
		t.Fatalf("received orders=%d, want 2", len(orders))
	}

	w = e.do(t, http.MethodGet, "/orders?status=delivered", nil, nil)
	decode(t, w, &orders)
	if len(orders) != 0 {
		t.Fatalf("delivered orders=%d, want 0", len(orders))
	}

	if w := e.do(t, http.MethodGet, "/orders?status=shipped", nil, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status filter=%d, want 400", w.Code)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	e := newEnv()
	w := e.do(t, http.MethodPost, "/orders", checkoutPayload([]map[string]any{
		{"menu_item_id": itemID(t, "Pizza Margherita"), "quantity": 1},
	}), nil)
	var o order.Order
	decode(t, w, &o)

	w = e.do(t, http.MethodPut, "/orders/"+o.ID+"/status", map[string]any{"status": "confirmed"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	decode(t, w, &o)
	if o.Status != order.StatusConfirmed {
		t.Fatalf("order status=%s, want confirmed", o.Status)
	}

	// confirmed cannot go back to received
	w = e.do(t, http.MethodPut, "/orders/"+o.ID+"/status", map[string]any{"status": "received"}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("illegal transition status=%d, want 409", w.Code)
	}

	if w := e.do(t, http.MethodPut, "/orders/"+o.ID+"/status", map[string]any{"status": "shipped"}, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status=%d, want 400", w.Code)
	}

	if w := e.do(t, http.MethodPut, "/orders/nope/status", map[string]any{"status": "confirmed"}, nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing order status=%d, want 404", w.Code)
	}
}

func TestUpdateStatusAssignsCourier(t *testing.T) {
	e := newEnv()
	w := e.do(t, http.MethodPost, "/orders", checkoutPayload([]map[string]any{
		{"menu_item_id": itemID(t, "Pizza Margherita"), "quantity": 1},
	}), nil)
	var o order.Order
	decode(t, w, &o)

	for _, st := range []string{"confirmed", "preparing", "ready"} {
		if w := e.do(t, http.MethodPut, "/orders/"+o.ID+"/status", map[string]any{"status": st}, nil); w.Code != http.StatusOK {
			t.Fatalf("to %s: status=%d", st, w.Code)
		}
	}
	w = e.do(t, http.MethodPut, "/orders/"+o.ID+"/status",
		map[string]any{"status": "on_route", "assigned_courier": "carlos"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	decode(t, w, &o)
	if o.AssignedCourier != "carlos" {
		t.Fatalf("assigned courier=%q, want carlos", o.AssignedCourier)
	}
}

func TestOrderActions(t *testing.T) {
	e := newEnv()
	w := e.do(t, http.MethodPost, "/orders", checkoutPayload([]map[string]any{
		{"menu_item_id": itemID(t, "Limonada"), "quantity": 1},
	}), nil)
	var o order.Order
	decode(t, w, &o)

	w = e.do(t, http.MethodGet, "/orders/"+o.ID+"/actions", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body struct {
		Status order.Status   `json:"status"`
		Next   []order.Status `json:"next"`
	}
	decode(t, w, &body)
	if body.Status != order.StatusReceived {
		t.Fatalf("status=%s", body.Status)
	}
	if len(body.Next) != 2 || body.Next[0] != order.StatusConfirmed || body.Next[1] != order.StatusCancelled {
		t.Fatalf("next=%v", body.Next)
	}
}

//
// ---------- analytics ----------
//

func TestAnalyticsToday(t *testing.T) {
	e := newEnv()
	e.do(t, http.MethodPost, "/orders", checkoutPayload([]map[string]any{
		{"menu_item_id": itemID(t, "Limonada"), "quantity": 5},
	}), nil)

	w := e.do(t, http.MethodGet, "/analytics/today", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var s analytics.DailySummary
	decode(t, w, &s)
	if s.TotalOrders != 1 || s.TotalRevenue != 65000 {
		t.Fatalf("summary = %+v", s)
	}
	if s.OrdersByStatus["received"] != 1 {
		t.Fatalf("by status = %+v", s.OrdersByStatus)
	}
}

//
// ---------- cart ----------
//

func TestCartRequiresSession(t *testing.T) {
	e := newEnv()
	if w := e.do(t, http.MethodGet, "/cart", nil, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("no session header status=%d, want 400", w.Code)
	}
}

func TestCartFlow(t *testing.T) {
	e := newEnv()
	hdr := map[string]string{"X-Session-ID": "sess-1"}
	limonada := itemID(t, "Limonada")

	var body struct {
		Lines    []cart.Line `json:"lines"`
		Subtotal int64       `json:"subtotal"`
	}

	// add twice merges into one line with quantity 2
	for i := 0; i < 2; i++ {
		w := e.do(t, http.MethodPost, "/cart/items", map[string]any{"menu_item_id": limonada}, hdr)
		if w.Code != http.StatusOK {
			t.Fatalf("add status=%d body=%s", w.Code, w.Body.String())
		}
		decode(t, w, &body)
	}
	if len(body.Lines) != 1 || body.Lines[0].Quantity != 2 {
		t.Fatalf("lines = %+v", body.Lines)
	}
	if body.Subtotal != 20000 {
		t.Fatalf("subtotal=%d, want 20000", body.Subtotal)
	}

	// unknown item never enters the cart
	if w := e.do(t, http.MethodPost, "/cart/items", map[string]any{"menu_item_id": "nope"}, hdr); w.Code != http.StatusNotFound {
		t.Fatalf("unknown item status=%d, want 404", w.Code)
	}

	w := e.do(t, http.MethodPut, "/cart/items/"+limonada, map[string]any{"quantity": 4}, hdr)
	decode(t, w, &body)
	if body.Lines[0].Quantity != 4 || body.Subtotal != 40000 {
		t.Fatalf("after update: %+v subtotal=%d", body.Lines, body.Subtotal)
	}

	// quantity zero removes the line
	w = e.do(t, http.MethodPut, "/cart/items/"+limonada, map[string]any{"quantity": 0}, hdr)
	decode(t, w, &body)
	if len(body.Lines) != 0 {
		t.Fatalf("zero quantity left lines: %+v", body.Lines)
	}

	e.do(t, http.MethodPost, "/cart/items", map[string]any{"menu_item_id": limonada}, hdr)
	if w := e.do(t, http.MethodDelete, "/cart", nil, hdr); w.Code != http.StatusNoContent {
		t.Fatalf("clear status=%d, want 204", w.Code)
	}
	w = e.do(t, http.MethodGet, "/cart", nil, hdr)
	decode(t, w, &body)
	if len(body.Lines) != 0 {
		t.Fatalf("cart after clear: %+v", body.Lines)
	}
}

func TestCartSessionsAreIsolated(t *testing.T) {
	e := newEnv()
	limonada := itemID(t, "Limonada")
	e.do(t, http.MethodPost, "/cart/items", map[string]any{"menu_item_id": limonada},
		map[string]string{"X-Session-ID": "sess-a"})

	w := e.do(t, http.MethodGet, "/cart", nil, map[string]string{"X-Session-ID": "sess-b"})
	var body struct {
		Lines []cart.Line `json:"lines"`
	}
	decode(t, w, &body)
	if len(body.Lines) != 0 {
		t.Fatalf("session b sees session a's cart: %+v", body.Lines)
	}
}

//
// ---------- couriers ----------
//

func TestCourierLifecycle(t *testing.T) {
	e := newEnv()

	w := e.do(t, http.MethodPost, "/couriers", map[string]any{"name": "Carlos", "phone": "+595981000111"}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", w.Code, w.Body.String())
	}
	var c courier.Courier
	decode(t, w, &c)
	if !c.Available {
		t.Fatal("new courier should start available")
	}

	if w := e.do(t, http.MethodPut, "/couriers/"+c.ID+"/availability", map[string]any{"is_available": false}, nil); w.Code != http.StatusOK {
		t.Fatalf("set availability status=%d", w.Code)
	}

	w = e.do(t, http.MethodGet, "/couriers?available=true", nil, nil)
	var available []courier.Courier
	decode(t, w, &available)
	if len(available) != 0 {
		t.Fatalf("available couriers=%d, want 0", len(available))
	}

	w = e.do(t, http.MethodGet, "/couriers", nil, nil)
	var all []courier.Courier
	decode(t, w, &all)
	if len(all) != 1 {
		t.Fatalf("couriers=%d, want 1", len(all))
	}

	if w := e.do(t, http.MethodPut, "/couriers/nope/availability", map[string]any{"is_available": true}, nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing courier status=%d, want 404", w.Code)
	}
}
