package repo

type ProductFilter struct {
	Search       string // name or SKU
	Category     string
	LowStockOnly bool
	Offset       *int
	Limit        *int
}
