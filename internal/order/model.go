package order

import "time"

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentTransfer:
		return PaymentMethod(s), true
	}
	return "", false
}

type DeliveryInfo struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"delivery_address"`
	Zone          string `json:"delivery_zone"`
}

// Item is a snapshot of a menu item at submission time. Name and UnitPrice
// are copied from the catalog so later catalog changes never reprice an
// existing order.
type Item struct {
	MenuItemID   string `json:"menu_item_id"`
	Name         string `json:"name"`
	UnitPrice    int64  `json:"unit_price"`
	Quantity     int    `json:"quantity"`
	Instructions string `json:"special_instructions,omitempty"`
}

// Order is created once at checkout. Status (and the courier assignment that
// rides along with it) is the only thing that changes afterwards.
type Order struct {
	ID                string        `json:"id"`
	Items             []Item        `json:"items"`
	Delivery          DeliveryInfo  `json:"delivery_info"`
	PaymentMethod     PaymentMethod `json:"payment_method"`
	DeliveryNotes     string        `json:"delivery_notes,omitempty"`
	Subtotal          int64         `json:"subtotal"`
	DeliveryFee       int64         `json:"delivery_fee"`
	Total             int64         `json:"total"`
	Status            Status        `json:"status"`
	AssignedCourier   string        `json:"assigned_courier,omitempty"`
	EstimatedDelivery time.Time     `json:"estimated_delivery"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}
