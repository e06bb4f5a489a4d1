package analytics_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rogerio-castellano/erp-analytics/internal/analytics"
	"github.com/rogerio-castellano/erp-analytics/internal/models"
)

var now = time.Date(2026, time.October, 18, 15, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return now.AddDate(0, 0, -n)
}

func salesOrder(status models.OrderStatus, total float64, createdAt time.Time) models.Order {
	return models.Order{Type: models.OrderTypeSales, Status: status, Total: total, CreatedAt: createdAt}
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		days    int
		wantErr bool
	}{
		{7, false},
		{30, false},
		{90, false},
		{365, false},
		{0, true},
		{-7, true},
		{14, true},
		{366, true},
	}

	for _, tt := range tests {
		w, err := analytics.ParseWindow(tt.days)
		if tt.wantErr {
			if !errors.Is(err, analytics.ErrInvalidParameter) {
				t.Errorf("days=%d: expected ErrInvalidParameter, got %v", tt.days, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("days=%d: unexpected error %v", tt.days, err)
		}
		if w.Days() != tt.days {
			t.Errorf("days=%d: expected window of %d days, got %d", tt.days, tt.days, w.Days())
		}
	}
}

func TestParseWindowString_NotANumber(t *testing.T) {
	if _, err := analytics.ParseWindowString("month"); !errors.Is(err, analytics.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestBuildRevenueTimeSeries_FixedLength(t *testing.T) {
	for _, w := range analytics.Windows {
		points, err := analytics.BuildRevenueTimeSeries(nil, w, now)
		if err != nil {
			t.Fatalf("window %d: unexpected error %v", w, err)
		}
		if len(points) != w.Days() {
			t.Fatalf("window %d: expected %d points, got %d", w, w.Days(), len(points))
		}
		if last := points[len(points)-1].Date; last != "2026-10-18" {
			t.Errorf("window %d: expected last point to be today, got %s", w, last)
		}
		if first := points[0].Date; first != daysAgo(w.Days()-1).Format("2006-01-02") {
			t.Errorf("window %d: unexpected first point %s", w, first)
		}
		for i := 1; i < len(points); i++ {
			if points[i-1].Date >= points[i].Date {
				t.Fatalf("window %d: points not ascending at %d: %s >= %s", w, i, points[i-1].Date, points[i].Date)
			}
		}
	}
}

func TestBuildRevenueTimeSeries_InvalidWindow(t *testing.T) {
	points, err := analytics.BuildRevenueTimeSeries(nil, analytics.Window(10), now)
	if !errors.Is(err, analytics.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if points != nil {
		t.Errorf("expected no points, got %v", points)
	}
}

func TestBuildRevenueTimeSeries_SameDayAndGaps(t *testing.T) {
	orders := []models.Order{
		salesOrder(models.OrderStatusDelivered, 10, now.Add(-time.Hour)),
		salesOrder(models.OrderStatusShipped, 15.5, now.Add(-2*time.Hour)),
		salesOrder(models.OrderStatusPending, 7, daysAgo(2)),
	}

	points, err := analytics.BuildRevenueTimeSeries(orders, analytics.Week, now)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	today := points[6]
	if today.Revenue != 25.5 || today.Orders != 2 {
		t.Errorf("expected today revenue 25.5 over 2 orders, got %v over %d", today.Revenue, today.Orders)
	}
	if today.Label != "Oct 18" {
		t.Errorf("expected label Oct 18, got %q", today.Label)
	}

	yesterday := points[5]
	if yesterday.Revenue != 0 || yesterday.Orders != 0 {
		t.Errorf("expected empty bucket for yesterday, got %+v", yesterday)
	}

	if points[4].Revenue != 7 || points[4].Orders != 1 {
		t.Errorf("expected 7 over 1 order two days ago, got %+v", points[4])
	}
}

func TestBuildRevenueTimeSeries_UsesLocalCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	localNow := time.Date(2026, time.October, 18, 12, 0, 0, 0, loc)

	// 02:00 UTC on the 18th is still the 17th five hours west of Greenwich.
	orders := []models.Order{
		salesOrder(models.OrderStatusDelivered, 40, time.Date(2026, time.October, 18, 2, 0, 0, 0, time.UTC)),
	}

	points, err := analytics.BuildRevenueTimeSeries(orders, analytics.Week, localNow)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if points[6].Revenue != 0 {
		t.Errorf("expected nothing on the 18th, got %v", points[6].Revenue)
	}
	if points[5].Date != "2026-10-17" || points[5].Revenue != 40 {
		t.Errorf("expected 40 on 2026-10-17, got %+v", points[5])
	}
}

func TestBuildRevenueTimeSeries_MidnightDSTChange(t *testing.T) {
	// Both zones skip from 00:00 to 01:00 on their spring-forward day.
	for _, name := range []string{"America/Santiago", "Asia/Beirut"} {
		t.Run(name, func(t *testing.T) {
			loc, err := time.LoadLocation(name)
			if err != nil {
				t.Skipf("time zone data unavailable: %v", err)
			}

			for day := time.Date(2024, time.January, 1, 0, 30, 0, 0, loc); day.Year() == 2024; day = day.AddDate(0, 0, 1) {
				points, err := analytics.BuildRevenueTimeSeries(nil, analytics.Year, day)
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				if last := points[len(points)-1].Date; last != day.Format("2006-01-02") {
					t.Fatalf("now=%v: expected the series to end on %s, got %s", day, day.Format("2006-01-02"), last)
				}

				for i := 1; i < len(points); i++ {
					prev, _ := time.Parse("2006-01-02", points[i-1].Date)
					cur, _ := time.Parse("2006-01-02", points[i].Date)
					if !cur.Equal(prev.AddDate(0, 0, 1)) {
						t.Fatalf("now=%v: %s follows %s at %d", day, points[i].Date, points[i-1].Date, i)
					}
				}
			}
		})
	}
}

func TestFilterByWindow(t *testing.T) {
	orders := []models.Order{
		salesOrder(models.OrderStatusDelivered, 1, daysAgo(1)),
		salesOrder(models.OrderStatusDelivered, 2, daysAgo(7)),
		salesOrder(models.OrderStatusDelivered, 3, daysAgo(7).Add(-time.Second)),
		salesOrder(models.OrderStatusDelivered, 4, daysAgo(29)),
	}

	week, err := analytics.FilterByWindow(orders, analytics.Week, now)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(week) != 2 || week[0].Total != 1 || week[1].Total != 2 {
		t.Errorf("expected the orders from 1 and exactly 7 days ago, got %+v", week)
	}

	month, _ := analytics.FilterByWindow(orders, analytics.Month, now)
	if len(month) != 4 {
		t.Errorf("expected 4 orders in 30 days, got %d", len(month))
	}

	if _, err := analytics.FilterByWindow(orders, analytics.Window(45), now); !errors.Is(err, analytics.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestEmptyOrders(t *testing.T) {
	if got := analytics.ComputeRevenue(nil); got != 0 {
		t.Errorf("expected revenue 0, got %v", got)
	}
	if got := analytics.ComputeAverageOrderValue(nil); got != 0 {
		t.Errorf("expected average 0, got %v", got)
	}
	if got := analytics.ComputeAverageOrderValue([]models.Order{}); got != 0 {
		t.Errorf("expected average 0, got %v", got)
	}
	dist := analytics.BuildStatusDistribution(nil)
	if dist == nil || len(dist) != 0 {
		t.Errorf("expected empty distribution, got %v", dist)
	}
}

func TestComputeRevenue_ExcludesCancelledAndPurchases(t *testing.T) {
	orders := []models.Order{
		salesOrder(models.OrderStatusCancelled, 100, now),
		salesOrder(models.OrderStatusDelivered, 40, now),
		{Type: models.OrderTypePurchase, Status: models.OrderStatusDelivered, Total: 460, CreatedAt: now},
	}

	if got := analytics.ComputeRevenue(orders); got != 40 {
		t.Errorf("expected revenue 40, got %v", got)
	}
	// the average is taken over every order in the window
	if got := analytics.ComputeAverageOrderValue(orders); got != 200 {
		t.Errorf("expected average 200, got %v", got)
	}
}

func TestCancelledOrderScenario(t *testing.T) {
	orders := []models.Order{
		salesOrder(models.OrderStatusCancelled, 100, now),
	}

	report, err := analytics.Compute(nil, orders, 7, now)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if report.Metrics.TotalRevenue != 0 {
		t.Errorf("expected revenue 0, got %v", report.Metrics.TotalRevenue)
	}
	if last := report.RevenueTrend[6]; last.Revenue != 0 || last.Orders != 0 {
		t.Errorf("expected cancelled order to be left out of the trend, got %+v", last)
	}
	want := []analytics.DistributionBucket{{Name: "Cancelled", Value: 1}}
	if !reflect.DeepEqual(report.OrderStatus, want) {
		t.Errorf("expected %v, got %v", want, report.OrderStatus)
	}
}

func TestComputeStockAlerts(t *testing.T) {
	products := []models.Product{
		{Quantity: 0, Threshold: 5},
		{Quantity: 0, Threshold: 0},
		{Quantity: 5, Threshold: 5},
		{Quantity: 6, Threshold: 5},
	}

	low, out := analytics.ComputeStockAlerts(products)
	if low != 3 {
		t.Errorf("expected 3 low stock products, got %d", low)
	}
	if out != 2 {
		t.Errorf("expected 2 out of stock products, got %d", out)
	}
}

func TestComputeInventoryValue(t *testing.T) {
	products := []models.Product{
		{Quantity: 3, Cost: 0.1},
		{Quantity: 10, Cost: 2.5},
		{Quantity: 0, Cost: 99},
	}
	if got := analytics.ComputeInventoryValue(products); got != 25.3 {
		t.Errorf("expected 25.3, got %v", got)
	}
}

func TestMetricsScenario(t *testing.T) {
	products := []models.Product{{Name: "Widget", Price: 10, Quantity: 5, Cost: 4, Threshold: 10}}
	orders := []models.Order{salesOrder(models.OrderStatusDelivered, 50, now)}

	report, err := analytics.Compute(products, orders, 30, now)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	m := report.Metrics
	if m.TotalRevenue != 50 {
		t.Errorf("expected revenue 50, got %v", m.TotalRevenue)
	}
	if m.LowStockItems != 1 {
		t.Errorf("expected 1 low stock item, got %d", m.LowStockItems)
	}
	if m.OutOfStockItems != 0 {
		t.Errorf("expected 0 out of stock items, got %d", m.OutOfStockItems)
	}
	if m.InventoryValue != 20 {
		t.Errorf("expected inventory value 20, got %v", m.InventoryValue)
	}
	if m.TotalOrders != 1 || m.AverageOrderValue != 50 || m.TotalProducts != 1 {
		t.Errorf("unexpected metrics %+v", m)
	}
	if len(report.RevenueTrend) != 30 {
		t.Errorf("expected 30 trend points, got %d", len(report.RevenueTrend))
	}
	if report.TopProducts[0].Revenue != 50 {
		t.Errorf("expected estimated value 50, got %v", report.TopProducts[0].Revenue)
	}
}

func TestCompute_InvalidWindow(t *testing.T) {
	_, err := analytics.Compute(nil, nil, 14, now)
	if !errors.Is(err, analytics.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestCompute_WindowAppliesToOrdersOnly(t *testing.T) {
	products := []models.Product{{Name: "Old stock", Quantity: 2, Cost: 3, Category: "Tools"}}
	orders := []models.Order{
		salesOrder(models.OrderStatusDelivered, 10, daysAgo(3)),
		salesOrder(models.OrderStatusDelivered, 90, daysAgo(60)),
	}

	report, err := analytics.Compute(products, orders, 7, now)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if report.Metrics.TotalRevenue != 10 || report.Metrics.TotalOrders != 1 {
		t.Errorf("expected only the recent order, got %+v", report.Metrics)
	}
	if report.Metrics.InventoryValue != 6 {
		t.Errorf("expected inventory value 6, got %v", report.Metrics.InventoryValue)
	}
}

func TestCompute_TopProductsOption(t *testing.T) {
	products := make([]models.Product, 8)
	for i := range products {
		products[i] = models.Product{Price: float64(i + 1), Quantity: 1}
	}

	report, _ := analytics.Compute(products, nil, 7, now)
	if len(report.TopProducts) != analytics.DefaultTopProducts {
		t.Errorf("expected %d top products, got %d", analytics.DefaultTopProducts, len(report.TopProducts))
	}

	report, _ = analytics.Compute(products, nil, 7, now, analytics.Options{TopProducts: 3})
	if len(report.TopProducts) != 3 {
		t.Errorf("expected 3 top products, got %d", len(report.TopProducts))
	}
}

func TestRankTopProducts(t *testing.T) {
	products := []models.Product{
		{Name: "A", Price: 10, Quantity: 2, Category: "x"},
		{Name: "B", Price: 5, Quantity: 4, Category: "y"},
		{Name: "C", Price: 100, Quantity: -3, Category: "x"},
		{Name: "D", Price: 1, Quantity: 100, Category: "z"},
		{Name: "E", Price: 4, Quantity: 5, Category: "y"},
		{Name: "F", Price: 1, Quantity: 1, Category: "y"},
	}

	got := analytics.RankTopProducts(products, 5)
	names := make([]string, len(got))
	for i, p := range got {
		names[i] = p.Name
	}
	want := []string{"D", "A", "B", "E", "F"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected order %v, got %v", want, names)
	}

	for i := 1; i < len(got); i++ {
		if got[i-1].Revenue < got[i].Revenue {
			t.Errorf("not sorted descending at %d", i)
		}
	}

	if len(analytics.RankTopProducts(products, 0)) != 0 {
		t.Error("expected no products for limit 0")
	}
	if len(analytics.RankTopProducts(products, 50)) != len(products) {
		t.Error("expected every product when limit exceeds input")
	}
}

func TestRankTopProducts_NegativeQuantityIsWorthNothing(t *testing.T) {
	got := analytics.RankTopProducts([]models.Product{{Name: "C", Price: 100, Quantity: -3}}, 5)
	if got[0].Revenue != 0 || got[0].Stock != -3 {
		t.Errorf("expected value 0 and stock -3, got %+v", got[0])
	}
}

func TestBuildCategoryDistribution(t *testing.T) {
	products := []models.Product{
		{Category: "Electronics"},
		{Category: "Office"},
		{Category: "Electronics"},
		{Category: "Furniture"},
	}

	got := analytics.BuildCategoryDistribution(products)
	want := []analytics.DistributionBucket{
		{Name: "Electronics", Value: 2},
		{Name: "Office", Value: 1},
		{Name: "Furniture", Value: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBuildStatusDistribution_Labels(t *testing.T) {
	orders := []models.Order{
		salesOrder(models.OrderStatusPending, 1, now),
		salesOrder(models.OrderStatusProcessing, 1, now),
		salesOrder(models.OrderStatusPending, 1, now),
	}

	got := analytics.BuildStatusDistribution(orders)
	want := []analytics.DistributionBucket{
		{Name: "Pending", Value: 2},
		{Name: "Processing", Value: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCompute_IsPureAndIdempotent(t *testing.T) {
	products := []models.Product{
		{Name: "Cheap", Price: 1, Quantity: 1, Cost: 1, Category: "a"},
		{Name: "Pricey", Price: 50, Quantity: 3, Cost: 20, Category: "b"},
	}
	orders := []models.Order{
		salesOrder(models.OrderStatusDelivered, 20, daysAgo(1)),
		salesOrder(models.OrderStatusPending, 5, daysAgo(3)),
		salesOrder(models.OrderStatusCancelled, 9, daysAgo(2)),
	}

	productsBefore := append([]models.Product(nil), products...)
	ordersBefore := append([]models.Order(nil), orders...)

	first, err := analytics.Compute(products, orders, 7, now)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	second, _ := analytics.Compute(products, orders, 7, now)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical reports for identical inputs")
	}
	if !reflect.DeepEqual(products, productsBefore) {
		t.Error("products were modified")
	}
	if !reflect.DeepEqual(orders, ordersBefore) {
		t.Error("orders were modified")
	}
}
