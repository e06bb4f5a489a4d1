package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rogerio-castellano/erp-analytics/internal/analytics"
	handler "github.com/rogerio-castellano/erp-analytics/internal/http/handlers"
	"github.com/rogerio-castellano/erp-analytics/internal/http/router"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	w := createProduct(r, handler.ProductRequest{Name: "Laptop", SKU: "LP-1", Category: "Computers", Price: 1500.0, Cost: 900, Quantity: 10, Threshold: 2})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.ID == "" {
		t.Error("expected an id")
	}
	if resp.Name != "Laptop" || resp.SKU != "LP-1" || resp.Category != "Computers" {
		t.Errorf("unexpected product %+v", resp.Product)
	}
	if resp.Price != 1500.0 || resp.Quantity != 10 {
		t.Errorf("unexpected price/quantity %v/%v", resp.Price, resp.Quantity)
	}
	if resp.LowStock || resp.OutOfStock {
		t.Error("expected a well stocked product")
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	tests := []struct {
		name           string
		payload        handler.ProductRequest
		expectCode     int
		expectedErrors []string
	}{
		{
			name:           "Empty name and price",
			payload:        handler.ProductRequest{Name: "", Price: 0.0},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Name", "Price"},
		},
		{
			name:           "Invalid price only",
			payload:        handler.ProductRequest{Name: "Mouse", Price: -5.0},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Price"},
		},
		{
			name:           "Negative quantity and threshold",
			payload:        handler.ProductRequest{Name: "Keyboard", Price: 50.0, Quantity: -1, Threshold: -1},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Quantity", "Threshold"},
		},
		{
			name:           "Negative cost",
			payload:        handler.ProductRequest{Name: "Cable", Price: 5.0, Cost: -1},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Cost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProduct(r, tt.payload)

			if w.Code != tt.expectCode {
				t.Errorf("expected status %d, got %d", tt.expectCode, w.Code)
			}

			var resp []handler.ValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}

			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestCreateProductHandler_MalformedJSON(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	badJSON := `{Name: "Invalid" Price: 100 "}` // missing comma
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(badJSON))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 Bad Request, got %d", w.Code)
	}
}

func TestCreateProductHandler_DuplicateSKU(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	mustCreateProduct(r, handler.ProductRequest{Name: "Mouse", SKU: "MS-1", Price: 20})
	w := createProduct(r, handler.ProductRequest{Name: "Other mouse", SKU: "MS-1", Price: 25})

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 Conflict, got %d", w.Code)
	}
}

func TestProductHandlers_RequireToken(t *testing.T) {
	r := router.NewRouter()

	for _, path := range []string{"/products", "/orders", "/suppliers", "/dashboard", "/analytics"} {
		w := doRequestAs(r, "", http.MethodGet, path, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, w.Code)
		}
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	p := mustCreateProduct(r, handler.ProductRequest{Name: "Monitor", Price: 150})

	w := doRequest(r, http.MethodGet, "/products/"+p.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp handler.ProductResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Name != "Monitor" {
		t.Errorf("expected Monitor, got %s", resp.Name)
	}

	w = doRequest(r, http.MethodGet, "/products/does-not-exist", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestUpdateAndDeleteProductHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	p := mustCreateProduct(r, handler.ProductRequest{Name: "Desk", Price: 200, Quantity: 4, Threshold: 1})

	w := doRequest(r, http.MethodPut, "/products/"+p.ID, handler.ProductRequest{Name: "Standing desk", Price: 350, Quantity: 1, Threshold: 1})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var updated handler.ProductResponse
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.Name != "Standing desk" || updated.Price != 350 || !updated.LowStock {
		t.Errorf("unexpected product after update %+v", updated)
	}
	if updated.CreatedAt != p.CreatedAt {
		t.Errorf("expected created_at to be kept, got %q want %q", updated.CreatedAt, p.CreatedAt)
	}

	w = doRequest(r, http.MethodDelete, "/products/"+p.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	w = doRequest(r, http.MethodDelete, "/products/"+p.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestAdjustQuantityHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	p := mustCreateProduct(r, handler.ProductRequest{Name: "Mouse", Price: 20, Quantity: 6, Threshold: 5})
	alertLog.Drain()

	w := adjustProduct(r, p.ID, handler.QuantityAdjustmentRequest{Delta: -2})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp handler.ProductResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Quantity != 4 || !resp.LowStock {
		t.Errorf("expected quantity 4 and low stock, got %+v", resp)
	}

	events, _ := alertLog.Drain()
	if len(events) != 1 || events[0].ProductID != p.ID || events[0].Quantity != 4 {
		t.Errorf("expected one low stock alert, got %+v", events)
	}

	w = adjustProduct(r, p.ID, handler.QuantityAdjustmentRequest{Delta: -5})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for a negative result, got %d", w.Code)
	}

	w = adjustProduct(r, "missing", handler.QuantityAdjustmentRequest{Delta: 1})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestFilterProductsHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	mustCreateProduct(r, handler.ProductRequest{Name: "Keyboard", SKU: "KB-1", Category: "Peripherals", Price: 40, Quantity: 10, Threshold: 5})
	mustCreateProduct(r, handler.ProductRequest{Name: "Mouse", SKU: "MS-1", Category: "Peripherals", Price: 20, Quantity: 1, Threshold: 5})
	mustCreateProduct(r, handler.ProductRequest{Name: "Monitor", SKU: "MN-1", Category: "Displays", Price: 150, Quantity: 0, Threshold: 3})

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantCount int
		wantTotal int
	}{
		{"all", "", http.StatusOK, 3, 3},
		{"search", "?search=mo", http.StatusOK, 2, 2},
		{"category", "?category=Peripherals", http.StatusOK, 2, 2},
		{"low stock", "?lowStock=true", http.StatusOK, 2, 2},
		{"paginated", "?limit=2&offset=1", http.StatusOK, 2, 3},
		{"bad limit", "?limit=0", http.StatusBadRequest, 0, 0},
		{"bad offset", "?offset=-1", http.StatusBadRequest, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/products/search"+tt.query, nil)
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			var resp handler.ProductsSearchResult
			json.NewDecoder(w.Body).Decode(&resp)
			if len(resp.Data) != tt.wantCount || resp.Meta.TotalCount != tt.wantTotal {
				t.Errorf("expected %d/%d, got %d/%d", tt.wantCount, tt.wantTotal, len(resp.Data), resp.Meta.TotalCount)
			}
		})
	}
}

func TestInventorySummaryHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	mustCreateProduct(r, handler.ProductRequest{Name: "Keyboard", Price: 40, Cost: 10, Quantity: 10, Threshold: 5})
	mustCreateProduct(r, handler.ProductRequest{Name: "Monitor", Price: 150, Cost: 100, Quantity: 0, Threshold: 3})

	w := doRequest(r, http.MethodGet, "/products/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var summary analytics.InventorySummary
	json.NewDecoder(w.Body).Decode(&summary)
	want := analytics.InventorySummary{Total: 2, LowStock: 1, OutOfStock: 1, InventoryValue: 100}
	if summary != want {
		t.Errorf("expected %+v, got %+v", want, summary)
	}
}

func TestProducts_ScopedToAccount(t *testing.T) {
	t.Cleanup(clearAll)
	r := router.NewRouter()

	p := mustCreateProduct(r, handler.ProductRequest{Name: "Secret", Price: 1})

	w := doRequestAs(r, "", http.MethodPost, "/register", handler.UserLogin{Username: "bob-products", Password: "secret123"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var reg handler.RegisterResult
	json.NewDecoder(w.Body).Decode(&reg)

	w = doRequestAs(r, reg.Token, http.MethodGet, "/products/"+p.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for another account's product, got %d", w.Code)
	}

	w = doRequestAs(r, reg.Token, http.MethodGet, "/products", nil)
	var list []handler.ProductResponse
	json.NewDecoder(w.Body).Decode(&list)
	if len(list) != 0 {
		t.Errorf("expected no products for the new account, got %d", len(list))
	}
}
