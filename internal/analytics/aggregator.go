// Package analytics derives dashboard and analytics figures from an account's
// products, orders and suppliers.
//
// Every function is pure: inputs are treated as read-only snapshots and the
// current time is always passed in by the caller.
package analytics

import (
	"sort"
	"time"

	"github.com/rogerio-castellano/erp-analytics/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTopProducts is the size of the ranked product list.
const DefaultTopProducts = 5

const (
	isoDate    = "2006-01-02"
	pointLabel = "Jan 2"
)

type Metrics struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalOrders       int     `json:"totalOrders"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	LowStockItems     int     `json:"lowStockItems"`
	OutOfStockItems   int     `json:"outOfStockItems"`
	TotalProducts     int     `json:"totalProducts"`
	InventoryValue    float64 `json:"inventoryValue"`
}

type TimeSeriesPoint struct {
	Date    string  `json:"date"`
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type DistributionBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type RankedProduct struct {
	Name     string  `json:"name"`
	Revenue  float64 `json:"revenue"`
	Stock    int     `json:"stock"`
	Category string  `json:"category"`
}

// FilterByWindow keeps the orders created on or after now minus the window.
func FilterByWindow(orders []models.Order, days Window, now time.Time) ([]models.Order, error) {
	if err := days.validate(); err != nil {
		return nil, err
	}

	cutoff := now.AddDate(0, 0, -days.Days())
	filtered := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if !o.CreatedAt.Before(cutoff) {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

// ComputeRevenue sums sales orders that were not cancelled.
func ComputeRevenue(orders []models.Order) float64 {
	sum := decimal.Zero
	for _, o := range orders {
		if o.CountsAsRevenue() {
			sum = sum.Add(decimal.NewFromFloat(o.Total))
		}
	}
	return sum.InexactFloat64()
}

// ComputeAverageOrderValue averages the total of every given order, whatever its type or status.
func ComputeAverageOrderValue(orders []models.Order) float64 {
	if len(orders) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(decimal.NewFromFloat(o.Total))
	}
	return sum.Div(decimal.NewFromInt(int64(len(orders)))).InexactFloat64()
}

// ComputeStockAlerts counts low-stock and out-of-stock products.
// An empty product is counted in both.
func ComputeStockAlerts(products []models.Product) (lowStock, outOfStock int) {
	for _, p := range products {
		if p.LowStock() {
			lowStock++
		}
		if p.OutOfStock() {
			outOfStock++
		}
	}
	return lowStock, outOfStock
}

// ComputeInventoryValue sums quantity times unit cost over all products.
func ComputeInventoryValue(products []models.Product) float64 {
	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(decimal.NewFromFloat(p.Cost).Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return sum.InexactFloat64()
}

// BuildRevenueTimeSeries returns one point per calendar day of the window, oldest first,
// ending on now's date. Dates are compared in now's location.
func BuildRevenueTimeSeries(orders []models.Order, days Window, now time.Time) ([]TimeSeriesPoint, error) {
	if err := days.validate(); err != nil {
		return nil, err
	}

	loc := now.Location()
	revenue := make(map[string]decimal.Decimal)
	count := make(map[string]int)
	for _, o := range orders {
		if !o.CountsAsRevenue() {
			continue
		}
		key := o.CreatedAt.In(loc).Format(isoDate)
		revenue[key] = revenue[key].Add(decimal.NewFromFloat(o.Total))
		count[key]++
	}

	// Noon exists on every calendar day, so stepping back from it never lands on a
	// neighbouring date when a DST change skips midnight.
	base := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, loc)
	points := make([]TimeSeriesPoint, 0, days.Days())
	for i := days.Days() - 1; i >= 0; i-- {
		day := base.AddDate(0, 0, -i)
		key := day.Format(isoDate)
		points = append(points, TimeSeriesPoint{
			Date:    key,
			Label:   day.Format(pointLabel),
			Revenue: revenue[key].InexactFloat64(),
			Orders:  count[key],
		})
	}
	return points, nil
}

// BuildStatusDistribution counts orders per status in order of first appearance.
func BuildStatusDistribution(orders []models.Order) []DistributionBucket {
	caser := cases.Title(language.English)
	keys := make([]string, 0, len(orders))
	for _, o := range orders {
		keys = append(keys, string(o.Status))
	}
	buckets := distribution(keys)
	for i := range buckets {
		buckets[i].Name = caser.String(buckets[i].Name)
	}
	return buckets
}

// BuildCategoryDistribution counts products per category in order of first appearance.
func BuildCategoryDistribution(products []models.Product) []DistributionBucket {
	keys := make([]string, 0, len(products))
	for _, p := range products {
		keys = append(keys, p.Category)
	}
	return distribution(keys)
}

func distribution(keys []string) []DistributionBucket {
	index := make(map[string]int)
	buckets := []DistributionBucket{}
	for _, k := range keys {
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, DistributionBucket{Name: k})
		}
		buckets[i].Value++
	}
	return buckets
}

// RankTopProducts orders products by price times on-hand quantity, highest first.
// Equal values keep their input order.
func RankTopProducts(products []models.Product, limit int) []RankedProduct {
	if limit <= 0 {
		return []RankedProduct{}
	}

	ranked := make([]RankedProduct, len(products))
	for i, p := range products {
		ranked[i] = RankedProduct{
			Name:     p.Name,
			Revenue:  decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(max(0, p.Quantity)))).InexactFloat64(),
			Stock:    p.Quantity,
			Category: p.Category,
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue > ranked[j].Revenue
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
