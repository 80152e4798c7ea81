package domain

import "time"

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderPending:        {},
	OrderConfirmed:      {},
	OrderPreparing:      {},
	OrderOutForDelivery: {},
	OrderDelivered:      {},
	OrderCancelled:      {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

// OrderItem is one menu line on an order. Price is the unit price at the
// time of ordering.
type OrderItem struct {
	MenuItemID string  `json:"menu_item_id" bson:"menu_item_id"`
	Name       string  `json:"name,omitempty" bson:"name,omitempty"`
	Quantity   int     `json:"quantity" bson:"quantity"`
	Price      float64 `json:"price" bson:"price"`
}

// Order is a placed food order. Cash on delivery only; no payment state.
type Order struct {
	ID              string      `json:"id" bson:"id"`
	UserID          string      `json:"user_id" bson:"user_id"`
	Items           []OrderItem `json:"items" bson:"items"`
	TotalAmount     float64     `json:"total_amount" bson:"total_amount"`
	DeliveryFee     float64     `json:"delivery_fee" bson:"delivery_fee"`
	Discount        float64     `json:"discount" bson:"discount"`
	FinalAmount     float64     `json:"final_amount" bson:"final_amount"`
	DeliveryAddress string      `json:"delivery_address" bson:"delivery_address"`
	Status          OrderStatus `json:"status" bson:"status"`
	CreatedAt       time.Time   `json:"created_at" bson:"created_at"`
}
