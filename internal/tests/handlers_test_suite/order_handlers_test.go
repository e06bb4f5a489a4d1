package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/rogerio-castellano/erp-analytics/internal/analytics"
	handler "github.com/rogerio-castellano/erp-analytics/internal/http/handlers"
	"github.com/rogerio-castellano/erp-analytics/internal/http/router"
	"github.com/rogerio-castellano/erp-analytics/internal/models"
)

func TestCreateOrderHandler_PricesItemsAndReleasesStock(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	keyboard := mustCreateProduct(r, handler.ProductRequest{Name: "Keyboard", SKU: "KB-1", Price: 40, Quantity: 10, Threshold: 3})
	mouse := mustCreateProduct(r, handler.ProductRequest{Name: "Mouse", SKU: "MS-1", Price: 20, Quantity: 2, Threshold: 1})
	alertLog.Drain()

	w := createOrder(r, handler.OrderRequest{
		Type:         models.OrderTypeSales,
		CustomerName: "Jane Doe",
		Items: []handler.OrderItemRequest{
			{ProductID: keyboard.ID, Quantity: 2},
			{ProductID: mouse.ID, Quantity: 5, UnitPrice: floatPtr(15.5)},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	json.NewDecoder(w.Body).Decode(&order)
	if order.Total != 157.5 {
		t.Errorf("expected total 157.5, got %v", order.Total)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("expected a pending order, got %s", order.Status)
	}
	if order.OrderNumber == "" || len(order.Items) != 2 {
		t.Errorf("expected an order number and two items, got %+v", order)
	}
	if order.Items[0].UnitPrice != 40 || order.Items[0].ProductName != "Keyboard" {
		t.Errorf("expected the product price on the first line, got %+v", order.Items[0])
	}
	if !order.CreatedAt.Equal(fixedNow) {
		t.Errorf("expected created_at %v, got %v", fixedNow, order.CreatedAt)
	}

	got, _ := store.Products().GetByID(order.UserID, keyboard.ID)
	if got.Quantity != 8 {
		t.Errorf("expected keyboard stock 8, got %d", got.Quantity)
	}
	got, _ = store.Products().GetByID(order.UserID, mouse.ID)
	if got.Quantity != 0 {
		t.Errorf("expected mouse stock floored at 0, got %d", got.Quantity)
	}

	events, _ := alertLog.Drain()
	if len(events) != 1 || events[0].ProductID != mouse.ID {
		t.Errorf("expected a low stock alert for the mouse, got %+v", events)
	}
}

func TestCreateOrderHandler_PurchaseKeepsStock(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	p := mustCreateProduct(r, handler.ProductRequest{Name: "Paper", Price: 5, Quantity: 10})

	order := mustCreateOrder(r, handler.OrderRequest{
		Type:         models.OrderTypePurchase,
		CustomerName: "Paper Mill",
		Items:        []handler.OrderItemRequest{{ProductID: p.ID, Quantity: 100, UnitPrice: floatPtr(1)}},
	})
	if order.Total != 100 {
		t.Errorf("expected total 100, got %v", order.Total)
	}

	got, _ := store.Products().GetByID(order.UserID, p.ID)
	if got.Quantity != 10 {
		t.Errorf("expected stock to stay at 10, got %d", got.Quantity)
	}
}

func TestCreateOrderHandler_TotalWithoutItems(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	order := mustCreateOrder(r, handler.OrderRequest{Type: models.OrderTypeSales, CustomerName: "Walk-in", Total: 99.9})
	if order.Total != 99.9 || len(order.Items) != 0 {
		t.Errorf("expected the request total and no items, got %+v", order)
	}
}

func TestCreateOrderHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	tests := []struct {
		name           string
		payload        handler.OrderRequest
		expectedErrors []string
	}{
		{
			name:           "Missing type and customer",
			payload:        handler.OrderRequest{},
			expectedErrors: []string{"Type", "CustomerName"},
		},
		{
			name:           "Bad email and negative total",
			payload:        handler.OrderRequest{Type: models.OrderTypeSales, CustomerName: "Jane", CustomerEmail: "not-an-email", Total: -1},
			expectedErrors: []string{"CustomerEmail", "Total"},
		},
		{
			name: "Bad items",
			payload: handler.OrderRequest{Type: models.OrderTypeSales, CustomerName: "Jane", Items: []handler.OrderItemRequest{
				{ProductID: "", Quantity: 0, UnitPrice: floatPtr(-1)},
			}},
			expectedErrors: []string{"Items[0].ProductID", "Items[0].Quantity", "Items[0].UnitPrice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createOrder(r, tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}

			var resp []handler.ValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp {
					if err.Field == field {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, got %+v", field, resp)
				}
			}
		})
	}
}

func TestCreateOrderHandler_UnknownProduct(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	w := createOrder(r, handler.OrderRequest{
		Type:         models.OrderTypeSales,
		CustomerName: "Jane",
		Items:        []handler.OrderItemRequest{{ProductID: "missing", Quantity: 1}},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unknown product") {
		t.Errorf("expected an unknown product message, got %q", w.Body.String())
	}

	orders, _ := store.Orders().GetAll(1)
	if len(orders) != 0 {
		t.Errorf("expected no order to be stored, got %d", len(orders))
	}
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	order := mustCreateOrder(r, handler.OrderRequest{Type: models.OrderTypeSales, CustomerName: "Jane", Total: 10})

	tests := []struct {
		name     string
		id       string
		status   models.OrderStatus
		wantCode int
	}{
		{"valid", order.ID, models.OrderStatusShipped, http.StatusOK},
		{"unknown status", order.ID, "lost", http.StatusBadRequest},
		{"unknown order", "missing", models.OrderStatusDelivered, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := setOrderStatus(r, tt.id, tt.status)
			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, w.Code)
			}
		})
	}

	w := doRequest(r, http.MethodGet, "/orders/"+order.ID, nil)
	var got models.Order
	json.NewDecoder(w.Body).Decode(&got)
	if got.Status != models.OrderStatusShipped {
		t.Errorf("expected shipped, got %s", got.Status)
	}
}

func TestUpdateAndDeleteOrderHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	order := mustCreateOrder(r, handler.OrderRequest{Type: models.OrderTypeSales, CustomerName: "Jane", Total: 10})

	w := doRequest(r, http.MethodPut, "/orders/"+order.ID, handler.OrderRequest{
		Type:         models.OrderTypeSales,
		Status:       models.OrderStatusConfirmed,
		CustomerName: "Jane Smith",
		Total:        12,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var updated models.Order
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.CustomerName != "Jane Smith" || updated.Status != models.OrderStatusConfirmed {
		t.Errorf("unexpected order after update %+v", updated)
	}
	if updated.OrderNumber != order.OrderNumber {
		t.Errorf("expected order number %s to be kept, got %s", order.OrderNumber, updated.OrderNumber)
	}

	w = doRequest(r, http.MethodPut, "/orders/"+order.ID, handler.OrderRequest{Type: models.OrderTypeSales, CustomerName: "Jane"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a status, got %d", w.Code)
	}

	w = doRequest(r, http.MethodDelete, "/orders/"+order.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	w = doRequest(r, http.MethodGet, "/orders/"+order.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestFilterOrdersHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	mustCreateOrder(r, handler.OrderRequest{Type: models.OrderTypeSales, CustomerName: "Alice", CustomerEmail: "alice@example.com", Total: 10})
	mustCreateOrder(r, handler.OrderRequest{Type: models.OrderTypeSales, CustomerName: "Bob", Total: 20})
	purchase := mustCreateOrder(r, handler.OrderRequest{Type: models.OrderTypePurchase, CustomerName: "Acme", Total: 30})
	setOrderStatus(r, purchase.ID, models.OrderStatusDelivered)

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantCount int
	}{
		{"all", "", http.StatusOK, 3},
		{"search by email", "?search=alice@", http.StatusOK, 1},
		{"type", "?type=sales", http.StatusOK, 2},
		{"status", "?status=delivered", http.StatusOK, 1},
		{"limit", "?limit=1", http.StatusOK, 1},
		{"unknown status", "?status=lost", http.StatusBadRequest, 0},
		{"unknown type", "?type=rental", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/orders/search"+tt.query, nil)
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			var resp handler.OrdersSearchResult
			json.NewDecoder(w.Body).Decode(&resp)
			if len(resp.Data) != tt.wantCount {
				t.Errorf("expected %d orders, got %d", tt.wantCount, len(resp.Data))
			}
		})
	}
}

func TestOrderSummaryHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	mustCreateOrder(r, handler.OrderRequest{Type: models.OrderTypeSales, CustomerName: "A", Total: 10})
	shipped := mustCreateOrder(r, handler.OrderRequest{Type: models.OrderTypeSales, CustomerName: "B", Total: 20})
	cancelled := mustCreateOrder(r, handler.OrderRequest{Type: models.OrderTypeSales, CustomerName: "C", Total: 40})
	setOrderStatus(r, shipped.ID, models.OrderStatusShipped)
	setOrderStatus(r, cancelled.ID, models.OrderStatusCancelled)

	w := doRequest(r, http.MethodGet, "/orders/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var summary analytics.OrderSummary
	json.NewDecoder(w.Body).Decode(&summary)

	want := analytics.OrderSummary{Total: 3, Pending: 1, Completed: 1, Cancelled: 1, Revenue: 30}
	if summary != want {
		t.Errorf("expected %+v, got %+v", want, summary)
	}
}
