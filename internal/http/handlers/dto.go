package handlers

import "github.com/rogerio-castellano/erp-analytics/internal/models"

type ProductRequest struct {
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	Quantity    int     `json:"quantity"`
	Threshold   int     `json:"threshold"`
	SupplierID  string  `json:"supplier_id,omitempty"`
	Location    string  `json:"location,omitempty"`
}

type ProductResponse struct {
	models.Product
	LowStock   bool `json:"low_stock"`
	OutOfStock bool `json:"out_of_stock"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{Product: p, LowStock: p.LowStock(), OutOfStock: p.OutOfStock()}
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type QuantityAdjustmentRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

type OrderItemRequest struct {
	ProductID string   `json:"product_id"`
	Quantity  int      `json:"quantity"`
	UnitPrice *float64 `json:"unit_price,omitempty"` // defaults to the product price
}

type OrderRequest struct {
	Type          models.OrderType   `json:"type"`
	Status        models.OrderStatus `json:"status,omitempty"`
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email,omitempty"`
	CustomerPhone string             `json:"customer_phone,omitempty"`
	SupplierID    string             `json:"supplier_id,omitempty"`
	Total         float64            `json:"total,omitempty"` // ignored when items are given
	Notes         string             `json:"notes,omitempty"`
	Items         []OrderItemRequest `json:"items,omitempty"`
}

type OrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

type OrdersSearchResult struct {
	Data []models.Order `json:"data"`
	Meta Meta           `json:"meta,omitempty"`
}

type SupplierRequest struct {
	Name          string                `json:"name"`
	ContactPerson string                `json:"contact_person,omitempty"`
	Email         string                `json:"email,omitempty"`
	Phone         string                `json:"phone,omitempty"`
	Address       string                `json:"address,omitempty"`
	City          string                `json:"city,omitempty"`
	Country       string                `json:"country,omitempty"`
	PaymentTerms  string                `json:"payment_terms,omitempty"`
	Status        models.SupplierStatus `json:"status,omitempty"`
}

type SuppliersSearchResult struct {
	Data []models.Supplier `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
