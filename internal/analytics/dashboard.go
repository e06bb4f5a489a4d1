package analytics

import (
	"sort"

	"github.com/rogerio-castellano/erp-analytics/internal/models"
)

// dashboardListSize caps the recent-orders and low-stock lists on the dashboard.
const dashboardListSize = 5

type DashboardStats struct {
	TotalProducts   int     `json:"totalProducts"`
	LowStockItems   int     `json:"lowStockItems"`
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalSuppliers  int     `json:"totalSuppliers"`
	ActiveSuppliers int     `json:"activeSuppliers"`
}

type Dashboard struct {
	Stats            DashboardStats   `json:"stats"`
	RecentOrders     []models.Order   `json:"recentOrders"`
	LowStockProducts []models.Product `json:"lowStockProducts"`
}

// BuildDashboard summarises the whole account without a time window.
func BuildDashboard(products []models.Product, orders []models.Order, suppliers []models.Supplier) Dashboard {
	lowStock := make([]models.Product, 0)
	for _, p := range products {
		if p.LowStock() {
			lowStock = append(lowStock, p)
		}
	}

	orderSummary := SummarizeOrders(orders)
	supplierSummary := SummarizeSuppliers(suppliers)

	return Dashboard{
		Stats: DashboardStats{
			TotalProducts:   len(products),
			LowStockItems:   len(lowStock),
			TotalOrders:     len(orders),
			PendingOrders:   orderSummary.Pending,
			TotalRevenue:    orderSummary.Revenue,
			TotalSuppliers:  supplierSummary.Total,
			ActiveSuppliers: supplierSummary.Active,
		},
		RecentOrders:     RecentOrders(orders, dashboardListSize),
		LowStockProducts: lowStock[:min(len(lowStock), dashboardListSize)],
	}
}

// RecentOrders returns up to limit orders, newest first, without reordering the input.
func RecentOrders(orders []models.Order, limit int) []models.Order {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

type OrderSummary struct {
	Total      int     `json:"total"`
	Pending    int     `json:"pending"`
	Processing int     `json:"processing"`
	Completed  int     `json:"completed"`
	Cancelled  int     `json:"cancelled"`
	Revenue    float64 `json:"revenue"`
}

// SummarizeOrders counts orders by lifecycle stage. Shipped and delivered orders are completed.
func SummarizeOrders(orders []models.Order) OrderSummary {
	s := OrderSummary{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case models.OrderStatusPending:
			s.Pending++
		case models.OrderStatusProcessing:
			s.Processing++
		case models.OrderStatusShipped, models.OrderStatusDelivered:
			s.Completed++
		case models.OrderStatusCancelled:
			s.Cancelled++
		}
	}
	s.Revenue = ComputeRevenue(orders)
	return s
}

type SupplierSummary struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

func SummarizeSuppliers(suppliers []models.Supplier) SupplierSummary {
	s := SupplierSummary{Total: len(suppliers)}
	for _, sup := range suppliers {
		if sup.Status == models.SupplierStatusActive {
			s.Active++
		} else {
			s.Inactive++
		}
	}
	return s
}

type InventorySummary struct {
	Total          int     `json:"total"`
	LowStock       int     `json:"lowStock"`
	OutOfStock     int     `json:"outOfStock"`
	InventoryValue float64 `json:"inventoryValue"`
}

func SummarizeInventory(products []models.Product) InventorySummary {
	low, out := ComputeStockAlerts(products)
	return InventorySummary{
		Total:          len(products),
		LowStock:       low,
		OutOfStock:     out,
		InventoryValue: ComputeInventoryValue(products),
	}
}
