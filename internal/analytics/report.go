package analytics

import (
	"time"

	"github.com/rogerio-castellano/erp-analytics/internal/models"
)

// Report is everything the analytics view renders for one window.
type Report struct {
	WindowDays   int                  `json:"windowDays"`
	Metrics      Metrics              `json:"metrics"`
	RevenueTrend []TimeSeriesPoint    `json:"revenueTrend"`
	OrderStatus  []DistributionBucket `json:"orderStatus"`
	Categories   []DistributionBucket `json:"categories"`
	TopProducts  []RankedProduct      `json:"topProducts"`
	GeneratedAt  time.Time            `json:"generatedAt"`
}

// Options tunes Compute. The zero value uses the defaults.
type Options struct {
	TopProducts int
}

// Compute builds a full Report. Order figures cover the window ending at now;
// product figures cover the whole catalogue.
func Compute(products []models.Product, orders []models.Order, days int, now time.Time, opts ...Options) (Report, error) {
	window, err := ParseWindow(days)
	if err != nil {
		return Report{}, err
	}

	limit := DefaultTopProducts
	if len(opts) > 0 && opts[0].TopProducts > 0 {
		limit = opts[0].TopProducts
	}

	windowed, err := FilterByWindow(orders, window, now)
	if err != nil {
		return Report{}, err
	}
	trend, err := BuildRevenueTimeSeries(windowed, window, now)
	if err != nil {
		return Report{}, err
	}

	lowStock, outOfStock := ComputeStockAlerts(products)

	return Report{
		WindowDays: window.Days(),
		Metrics: Metrics{
			TotalRevenue:      ComputeRevenue(windowed),
			TotalOrders:       len(windowed),
			AverageOrderValue: ComputeAverageOrderValue(windowed),
			LowStockItems:     lowStock,
			OutOfStockItems:   outOfStock,
			TotalProducts:     len(products),
			InventoryValue:    ComputeInventoryValue(products),
		},
		RevenueTrend: trend,
		OrderStatus:  BuildStatusDistribution(windowed),
		Categories:   BuildCategoryDistribution(products),
		TopProducts:  RankTopProducts(products, limit),
		GeneratedAt:  now,
	}, nil
}
