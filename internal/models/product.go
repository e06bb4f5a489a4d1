package models

// Product represents a product entity in the inventory system.
type Product struct {
	ID          string  `json:"id"`
	UserID      int     `json:"user_id"`
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
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// LowStock reports whether the on-hand quantity is at or below the reorder threshold.
func (p Product) LowStock() bool {
	return p.Quantity <= p.Threshold
}

// OutOfStock reports whether nothing is left on hand.
func (p Product) OutOfStock() bool {
	return p.Quantity == 0
}
