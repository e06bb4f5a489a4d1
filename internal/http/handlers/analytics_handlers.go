package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/rogerio-castellano/erp-analytics/internal/analytics"
	"github.com/rogerio-castellano/erp-analytics/internal/export"
)

// windowFromQuery falls back to the configured default when days is absent.
func windowFromQuery(r *http.Request) (analytics.Window, error) {
	days := r.URL.Query().Get("days")
	if days == "" {
		return analytics.ParseWindow(analyticsOpts.DefaultWindow)
	}
	return analytics.ParseWindowString(days)
}

// buildReport serves the account's report from cache or computes it from a snapshot.
func buildReport(userID int, window analytics.Window) (analytics.Report, error) {
	now := clock()
	if report, ok := reportCache.Get(userID, window.Days(), now); ok {
		log.Printf("[analytics] respond user=%d days=%d cache=hit", userID, window.Days())
		return report, nil
	}

	gen := reportCache.Generation(userID)
	snapshot, err := snapshotRepo.Snapshot(userID)
	if err != nil {
		return analytics.Report{}, fmt.Errorf("failed to load records: %w", err)
	}

	report, err := analytics.Compute(snapshot.Products, snapshot.Orders, window.Days(), now,
		analytics.Options{TopProducts: analyticsOpts.TopProducts})
	if err != nil {
		return analytics.Report{}, err
	}

	reportCache.Set(userID, window.Days(), now, gen, report)
	log.Printf("[analytics] respond user=%d days=%d cache=miss orders=%d products=%d",
		userID, window.Days(), report.Metrics.TotalOrders, report.Metrics.TotalProducts)
	return report, nil
}

func writeReportError(w http.ResponseWriter, userID int, err error) {
	if errors.Is(err, analytics.ErrInvalidParameter) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Printf("❌ [analytics] failed user=%d err=%v", userID, err)
	http.Error(w, "could not compute analytics", http.StatusInternalServerError)
}

// AnalyticsHandler godoc
// @Summary Analytics report for a trailing window
// @Description Order figures cover the last N days; product figures cover the whole catalogue.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window in days: 7, 30, 90 or 365"
// @Success 200 {object} analytics.Report
// @Failure 400 {string} string "Invalid window"
// @Failure 500 {string} string "Internal error"
// @Router /analytics [get]
func AnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	window, err := windowFromQuery(r)
	if err != nil {
		writeReportError(w, userID, err)
		return
	}

	log.Printf("[analytics] start user=%d days=%d", userID, window.Days())
	report, err := buildReport(userID, window)
	if err != nil {
		writeReportError(w, userID, err)
		return
	}
	respond(w, http.StatusOK, report)
}

// ExportAnalyticsHandler godoc
// @Summary Download the analytics report as JSON
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window in days: 7, 30, 90 or 365"
// @Success 200 {object} export.Document
// @Failure 400 {string} string "Invalid window"
// @Failure 500 {string} string "Internal error"
// @Router /analytics/export [get]
func ExportAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	window, err := windowFromQuery(r)
	if err != nil {
		writeReportError(w, userID, err)
		return
	}

	report, err := buildReport(userID, window)
	if err != nil {
		writeReportError(w, userID, err)
		return
	}

	exportedAt := clock()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(exportedAt)))
	w.WriteHeader(http.StatusOK)
	if err := export.Encode(w, report, exportedAt); err != nil {
		log.Printf("[analytics] export failed user=%d err=%v", userID, err)
	}
}

// DashboardHandler godoc
// @Summary Dashboard figures, recent orders and low stock products
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} analytics.Dashboard
// @Failure 500 {string} string "Internal error"
// @Router /dashboard [get]
func DashboardHandler(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	snapshot, err := snapshotRepo.Snapshot(userID)
	if err != nil {
		log.Printf("❌ [dashboard] failed user=%d err=%v", userID, err)
		http.Error(w, "could not load dashboard", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, analytics.BuildDashboard(snapshot.Products, snapshot.Orders, snapshot.Suppliers))
}
