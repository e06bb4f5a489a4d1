package export_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rogerio-castellano/erp-analytics/internal/analytics"
	"github.com/rogerio-castellano/erp-analytics/internal/export"
	"github.com/rogerio-castellano/erp-analytics/internal/models"
)

func TestFilename(t *testing.T) {
	at := time.Date(2026, 10, 18, 23, 10, 0, 0, time.UTC)
	if got := export.Filename(at); got != "erp-analytics-2026-10-18.json" {
		t.Errorf("unexpected filename %s", got)
	}
}

func TestEncode(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	products := []models.Product{{Name: "Keyboard", Category: "Peripherals", Price: 50, Cost: 20, Quantity: 4, Threshold: 1}}
	orders := []models.Order{{Type: models.OrderTypeSales, Status: models.OrderStatusDelivered, Total: 100, CreatedAt: now}}

	report, err := analytics.Compute(products, orders, 7, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, report, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	for _, key := range []string{"metrics", "revenueTrend", "orderStatus", "topProducts", "categories", "exportDate"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if len(doc) != 6 {
		t.Errorf("expected 6 keys, got %d", len(doc))
	}

	var metrics analytics.Metrics
	if err := json.Unmarshal(doc["metrics"], &metrics); err != nil {
		t.Fatalf("bad metrics: %v", err)
	}
	if metrics.TotalRevenue != 100 || metrics.InventoryValue != 80 {
		t.Errorf("unexpected metrics %+v", metrics)
	}

	var trend []analytics.TimeSeriesPoint
	_ = json.Unmarshal(doc["revenueTrend"], &trend)
	if len(trend) != 7 {
		t.Errorf("expected 7 trend points, got %d", len(trend))
	}
}
