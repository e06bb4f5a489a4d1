package handlers

import (
	"time"

	"github.com/rogerio-castellano/erp-analytics/internal/analytics"
	"github.com/rogerio-castellano/erp-analytics/internal/cache"
	"github.com/rogerio-castellano/erp-analytics/internal/models"
	"github.com/rogerio-castellano/erp-analytics/internal/repo"
)

// LowStockRecorder is told about every product a write leaves at or below its threshold.
type LowStockRecorder interface {
	RecordLowStock(p models.Product) error
}

type AnalyticsOptions struct {
	DefaultWindow int
	TopProducts   int
}

var (
	productRepo  repo.ProductRepository
	orderRepo    repo.OrderRepository
	supplierRepo repo.SupplierRepository
	userRepo     repo.UserRepository
	snapshotRepo repo.SnapshotRepository

	reportCache   cache.ReportCache = cache.Nop{}
	lowStock      LowStockRecorder
	clock         = time.Now
	analyticsOpts = AnalyticsOptions{DefaultWindow: int(analytics.Month), TopProducts: analytics.DefaultTopProducts}
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetOrderRepo(r repo.OrderRepository) {
	orderRepo = r
}

func SetSupplierRepo(r repo.SupplierRepository) {
	supplierRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetSnapshotRepo(r repo.SnapshotRepository) {
	snapshotRepo = r
}

func SetReportCache(c cache.ReportCache) {
	if c == nil {
		c = cache.Nop{}
	}
	reportCache = c
}

func SetLowStockRecorder(r LowStockRecorder) {
	lowStock = r
}

// SetClock replaces the time source used for analytics windows and timestamps.
func SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	clock = now
}

func SetAnalyticsOptions(opts AnalyticsOptions) {
	analyticsOpts = opts
}
