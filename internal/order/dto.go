package order

// CreateOrderItem is one line of a checkout payload.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	MenuItemID          string `json:"menu_item_id" binding:"required" example:"a1f4c9e2-0d31-4a7e-9b6d-1b2f8c4d5e01"`
	Quantity            int    `json:"quantity" binding:"required,min=1" example:"2"`
	SpecialInstructions string `json:"special_instructions" example:"sin cebolla"`
}

// CreateOrderDelivery is the delivery block of a checkout payload.
// swagger:model CreateOrderDelivery
type CreateOrderDelivery struct {
	CustomerName  string `json:"customer_name" binding:"required" example:"Juan Benítez"`
	CustomerPhone string `json:"customer_phone" binding:"required" example:"+595981123456"`
	Address       string `json:"delivery_address" binding:"required" example:"Av. Mcal. López 1234"`
	Zone          string `json:"delivery_zone" binding:"required" example:"centro"`
}

// CreateOrderRequest is the checkout payload.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Items         []CreateOrderItem   `json:"items" binding:"required"`
	Delivery      CreateOrderDelivery `json:"delivery_info" binding:"required"`
	PaymentMethod string              `json:"payment_method" example:"cash"`
	DeliveryNotes string              `json:"delivery_notes" example:"portón verde"`
}

// UpdateStatusRequest advances an order through the pipeline.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status          string `json:"status" binding:"required" example:"confirmed"`
	AssignedCourier string `json:"assigned_courier" example:"c0ffee00-1234-4a7e-9b6d-1b2f8c4d5e99"`
}
