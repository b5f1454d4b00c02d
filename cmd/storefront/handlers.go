package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikeMC777/pizzeria-storefront/internal/analytics"
	"github.com/MikeMC777/pizzeria-storefront/internal/cart"
	"github.com/MikeMC777/pizzeria-storefront/internal/catalog"
	"github.com/MikeMC777/pizzeria-storefront/internal/courier"
	"github.com/MikeMC777/pizzeria-storefront/internal/notify"
	"github.com/MikeMC777/pizzeria-storefront/internal/order"
	"github.com/MikeMC777/pizzeria-storefront/internal/pricing"
)

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, courier.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, order.ErrStaleTransition):
		return http.StatusConflict
	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrUnknownItem),
		errors.Is(err, order.ErrInvalidQuantity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

//
// ---------- MENU ----------
//

// @Summary List the menu
// @Produce json
// @Success 200 {array} catalog.MenuItem
// @Router /menu [get]
func listMenuHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		if items == nil {
			items = []catalog.MenuItem{}
		}
		c.JSON(http.StatusOK, items)
	}
}

func listMenuByCategoryHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat := catalog.Category(c.Param("category"))
		if !cat.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
			return
		}
		items, err := repo.ListByCategory(c.Request.Context(), cat)
		if err != nil {
			fail(c, err)
			return
		}
		if items == nil {
			items = []catalog.MenuItem{}
		}
		c.JSON(http.StatusOK, items)
	}
}

// @Summary Seed the starter menu (no-op when already seeded)
// @Success 204
// @Router /initialize-menu [post]
func initializeMenuHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.EnsureSeeded(c.Request.Context(), repo); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listZonesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, pricing.Zones())
	}
}

//
// ---------- ORDERS ----------
//

// @Summary Create an order from line items
// @Accept json
// @Produce json
// @Param order body order.CreateOrderRequest true "checkout payload"
// @Success 201 {object} order.Order
// @Failure 400 {object} map[string]string
// @Router /orders [post]
func createOrderHandler(svc *order.Service, notif notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		pm := req.PaymentMethod
		if pm == "" {
			pm = string(order.PaymentCash)
		}
		payment, ok := order.ParsePaymentMethod(pm)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment_method must be cash or transfer"})
			return
		}

		lines := make([]cart.Line, 0, len(req.Items))
		for _, it := range req.Items {
			lines = append(lines, cart.Line{
				MenuItemID:   it.MenuItemID,
				Quantity:     it.Quantity,
				Instructions: it.SpecialInstructions,
			})
		}
		delivery := order.DeliveryInfo{
			CustomerName:  req.Delivery.CustomerName,
			CustomerPhone: req.Delivery.CustomerPhone,
			Address:       req.Delivery.Address,
			Zone:          req.Delivery.Zone,
		}

		o, err := svc.Create(c.Request.Context(), lines, delivery, payment, req.DeliveryNotes)
		if err != nil {
			fail(c, err)
			return
		}
		go notif.OrderCreated(o)
		c.JSON(http.StatusCreated, o)
	}
}

// @Summary Get an order by ID
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} order.Order
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func getOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func listOrdersHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter order.Status
		if raw := c.Query("status"); raw != "" {
			st, ok := order.ParseStatus(raw)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
				return
			}
			filter = st
		}
		orders, err := svc.List(c.Request.Context(), filter)
		if err != nil {
			fail(c, err)
			return
		}
		if orders == nil {
			orders = []order.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

// orderActionsHandler exposes the legal next statuses so staff tooling
// renders buttons straight off the transition table.
func orderActionsHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": o.Status,
			"next":   order.NextStatuses(o.Status),
		})
	}
}

// @Summary Advance an order through the fulfillment pipeline
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param update body order.UpdateStatusRequest true "new status"
// @Success 200 {object} order.Order
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/status [put]
func updateOrderStatusHandler(svc *order.Service, notif notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		to, ok := order.ParseStatus(req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
		o, err := svc.Transition(c.Request.Context(), c.Param("id"), to, req.AssignedCourier)
		if err != nil {
			fail(c, err)
			return
		}
		go notif.OrderStatusChanged(o)
		c.JSON(http.StatusOK, o)
	}
}

//
// ---------- ANALYTICS ----------
//

// @Summary Today's order count and revenue
// @Produce json
// @Success 200 {object} analytics.DailySummary
// @Router /analytics/today [get]
func analyticsTodayHandler(repo order.Repository, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		start, end := analytics.DayWindow(now, loc)
		orders, err := repo.CreatedBetween(c.Request.Context(), start, end)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, analytics.Summarize(orders, now, loc))
	}
}

//
// ---------- CART ----------
//

func sessionID(c *gin.Context) (string, bool) {
	sid := c.GetHeader("X-Session-ID")
	if sid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header is required"})
		return "", false
	}
	return sid, true
}

func cartResponse(c *gin.Context, catalogRepo catalog.Repository, crt cart.Cart) {
	sub := crt.Subtotal(func(id string) int64 {
		m, err := catalogRepo.GetByID(c.Request.Context(), id)
		if err != nil {
			return 0
		}
		return m.Price
	})
	c.JSON(http.StatusOK, gin.H{"lines": crt.Lines, "subtotal": sub})
}

func getCartHandler(store cart.Store, catalogRepo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := sessionID(c)
		if !ok {
			return
		}
		crt, err := store.Get(c.Request.Context(), sid)
		if err != nil {
			fail(c, err)
			return
		}
		cartResponse(c, catalogRepo, crt)
	}
}

func addCartItemHandler(store cart.Store, catalogRepo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := sessionID(c)
		if !ok {
			return
		}
		var req struct {
			MenuItemID          string `json:"menu_item_id" binding:"required"`
			SpecialInstructions string `json:"special_instructions"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if _, err := catalogRepo.GetByID(c.Request.Context(), req.MenuItemID); err != nil {
			fail(c, err)
			return
		}
		crt, err := store.Get(c.Request.Context(), sid)
		if err != nil {
			fail(c, err)
			return
		}
		crt = crt.Add(req.MenuItemID, req.SpecialInstructions)
		if err := store.Save(c.Request.Context(), sid, crt); err != nil {
			fail(c, err)
			return
		}
		cartResponse(c, catalogRepo, crt)
	}
}

func updateCartItemHandler(store cart.Store, catalogRepo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := sessionID(c)
		if !ok {
			return
		}
		var req struct {
			Quantity *int `json:"quantity" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		crt, err := store.Get(c.Request.Context(), sid)
		if err != nil {
			fail(c, err)
			return
		}
		crt = crt.SetQuantity(c.Param("id"), *req.Quantity)
		if err := store.Save(c.Request.Context(), sid, crt); err != nil {
			fail(c, err)
			return
		}
		cartResponse(c, catalogRepo, crt)
	}
}

func removeCartItemHandler(store cart.Store, catalogRepo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := sessionID(c)
		if !ok {
			return
		}
		crt, err := store.Get(c.Request.Context(), sid)
		if err != nil {
			fail(c, err)
			return
		}
		crt = crt.Remove(c.Param("id"))
		if err := store.Save(c.Request.Context(), sid, crt); err != nil {
			fail(c, err)
			return
		}
		cartResponse(c, catalogRepo, crt)
	}
}

func clearCartHandler(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := sessionID(c)
		if !ok {
			return
		}
		if err := store.Delete(c.Request.Context(), sid); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

//
// ---------- COURIERS ----------
//

func createCourierHandler(repo courier.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name  string `json:"name" binding:"required"`
			Phone string `json:"phone" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cr := &courier.Courier{
			ID:        uuid.NewString(),
			Name:      req.Name,
			Phone:     req.Phone,
			Available: true,
		}
		if err := repo.Create(c.Request.Context(), cr); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, cr)
	}
}

func listCouriersHandler(repo courier.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		onlyAvailable := c.Query("available") == "true"
		couriers, err := repo.List(c.Request.Context(), onlyAvailable)
		if err != nil {
			fail(c, err)
			return
		}
		if couriers == nil {
			couriers = []courier.Courier{}
		}
		c.JSON(http.StatusOK, couriers)
	}
}

func setCourierAvailabilityHandler(repo courier.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Available *bool `json:"is_available" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := repo.SetAvailable(c.Request.Context(), c.Param("id"), *req.Available); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}
