package models

import "time"

type OrderType string

const (
	OrderTypeSales    OrderType = "sales"
	OrderTypePurchase OrderType = "purchase"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeSales || t == OrderTypePurchase
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, st := range OrderStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Order is a sales or purchase order owned by one account.
type Order struct {
	ID            string      `json:"id"`
	UserID        int         `json:"user_id"`
	OrderNumber   string      `json:"order_number"`
	Type          OrderType   `json:"type"`
	Status        OrderStatus `json:"status"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email,omitempty"`
	CustomerPhone string      `json:"customer_phone,omitempty"`
	SupplierID    string      `json:"supplier_id,omitempty"`
	Total         float64     `json:"total"`
	Notes         string      `json:"notes,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// CountsAsRevenue reports whether the order contributes to revenue figures.
func (o Order) CountsAsRevenue() bool {
	return o.Type == OrderTypeSales && o.Status != OrderStatusCancelled
}

// OrderItem is one product line of an order.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	SKU         string  `json:"sku,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}
