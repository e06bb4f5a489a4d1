// Package export renders an analytics report as a downloadable JSON document.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rogerio-castellano/erp-analytics/internal/analytics"
)

// Document is the exported shape of a report.
type Document struct {
	Metrics      analytics.Metrics              `json:"metrics"`
	RevenueTrend []analytics.TimeSeriesPoint    `json:"revenueTrend"`
	OrderStatus  []analytics.DistributionBucket `json:"orderStatus"`
	TopProducts  []analytics.RankedProduct      `json:"topProducts"`
	Categories   []analytics.DistributionBucket `json:"categories"`
	ExportDate   time.Time                      `json:"exportDate"`
}

func NewDocument(report analytics.Report, exportedAt time.Time) Document {
	return Document{
		Metrics:      report.Metrics,
		RevenueTrend: report.RevenueTrend,
		OrderStatus:  report.OrderStatus,
		TopProducts:  report.TopProducts,
		Categories:   report.Categories,
		ExportDate:   exportedAt,
	}
}

// Encode writes the report as indented JSON.
func Encode(w io.Writer, report analytics.Report, exportedAt time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(report, exportedAt)); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// Filename names the download after the export day.
func Filename(exportedAt time.Time) string {
	return fmt.Sprintf("erp-analytics-%s.json", exportedAt.Format("2006-01-02"))
}
