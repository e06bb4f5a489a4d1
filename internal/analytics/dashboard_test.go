package analytics_test

import (
	"reflect"
	"testing"

	"github.com/rogerio-castellano/erp-analytics/internal/analytics"
	"github.com/rogerio-castellano/erp-analytics/internal/models"
)

func TestBuildDashboard(t *testing.T) {
	products := []models.Product{
		{Name: "Keyboard", Quantity: 10, Threshold: 5},
		{Name: "Mouse", Quantity: 1, Threshold: 5},
		{Name: "Monitor", Quantity: 0, Threshold: 2},
	}
	orders := []models.Order{
		salesOrder(models.OrderStatusPending, 30, daysAgo(400)),
		salesOrder(models.OrderStatusDelivered, 70, daysAgo(1)),
		salesOrder(models.OrderStatusCancelled, 500, daysAgo(2)),
		{Type: models.OrderTypePurchase, Status: models.OrderStatusPending, Total: 90, CreatedAt: now},
	}
	suppliers := []models.Supplier{
		{Name: "Acme", Status: models.SupplierStatusActive},
		{Name: "Globex", Status: models.SupplierStatusInactive},
	}

	d := analytics.BuildDashboard(products, orders, suppliers)

	want := analytics.DashboardStats{
		TotalProducts:   3,
		LowStockItems:   2,
		TotalOrders:     4,
		PendingOrders:   2,
		TotalRevenue:    100,
		TotalSuppliers:  2,
		ActiveSuppliers: 1,
	}
	if d.Stats != want {
		t.Errorf("expected %+v, got %+v", want, d.Stats)
	}

	if len(d.LowStockProducts) != 2 || d.LowStockProducts[0].Name != "Mouse" {
		t.Errorf("unexpected low stock products %+v", d.LowStockProducts)
	}
	if d.RecentOrders[0].Type != models.OrderTypePurchase || d.RecentOrders[3].Total != 30 {
		t.Errorf("expected orders newest first, got %+v", d.RecentOrders)
	}
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := analytics.BuildDashboard(nil, nil, nil)
	if d.Stats != (analytics.DashboardStats{}) {
		t.Errorf("expected zero stats, got %+v", d.Stats)
	}
	if len(d.RecentOrders) != 0 || len(d.LowStockProducts) != 0 {
		t.Errorf("expected empty lists, got %+v", d)
	}
}

func TestRecentOrders_LimitAndNoMutation(t *testing.T) {
	var orders []models.Order
	for i := range 8 {
		orders = append(orders, salesOrder(models.OrderStatusPending, float64(i), daysAgo(8-i)))
	}
	before := append([]models.Order(nil), orders...)

	got := analytics.RecentOrders(orders, 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 orders, got %d", len(got))
	}
	if got[0].Total != 7 || got[4].Total != 3 {
		t.Errorf("expected totals 7..3, got %v..%v", got[0].Total, got[4].Total)
	}
	if !reflect.DeepEqual(orders, before) {
		t.Error("input orders were reordered")
	}
}

func TestSummarizeOrders(t *testing.T) {
	orders := []models.Order{
		salesOrder(models.OrderStatusPending, 10, now),
		salesOrder(models.OrderStatusProcessing, 10, now),
		salesOrder(models.OrderStatusShipped, 10, now),
		salesOrder(models.OrderStatusDelivered, 10, now),
		salesOrder(models.OrderStatusConfirmed, 10, now),
		salesOrder(models.OrderStatusCancelled, 10, now),
	}

	got := analytics.SummarizeOrders(orders)
	want := analytics.OrderSummary{Total: 6, Pending: 1, Processing: 1, Completed: 2, Cancelled: 1, Revenue: 50}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestSummarizeSuppliers(t *testing.T) {
	got := analytics.SummarizeSuppliers([]models.Supplier{
		{Status: models.SupplierStatusActive},
		{Status: models.SupplierStatusActive},
		{Status: models.SupplierStatusInactive},
	})
	if got.Total != 3 || got.Active != 2 || got.Inactive != 1 {
		t.Errorf("unexpected summary %+v", got)
	}
}

func TestSummarizeInventory(t *testing.T) {
	got := analytics.SummarizeInventory([]models.Product{
		{Quantity: 0, Threshold: 3, Cost: 5},
		{Quantity: 4, Threshold: 3, Cost: 2.5},
	})
	want := analytics.InventorySummary{Total: 2, LowStock: 1, OutOfStock: 1, InventoryValue: 10}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}
