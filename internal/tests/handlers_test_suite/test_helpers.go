package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/erp-analytics/internal/alerts"
	"github.com/rogerio-castellano/erp-analytics/internal/cache"
	handler "github.com/rogerio-castellano/erp-analytics/internal/http/handlers"
	rl "github.com/rogerio-castellano/erp-analytics/internal/http/rate_limiter"
	"github.com/rogerio-castellano/erp-analytics/internal/http/router"
	"github.com/rogerio-castellano/erp-analytics/internal/models"
	"github.com/rogerio-castellano/erp-analytics/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var (
	token     string
	store     *repo.InMemoryStore
	alertLog  *alerts.MemoryLog
	fixedNow  = time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)
	testClock = fixedNow
)

func init() {
	rl.Configure(1000, 1000)
	setupTestRepos("secret")
	r := router.NewRouter()

	var err error
	token, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	store = repo.NewInMemoryStore()
	handler.SetProductRepo(store.Products())
	handler.SetOrderRepo(store.Orders())
	handler.SetSupplierRepo(store.Suppliers())
	handler.SetSnapshotRepo(store)
	handler.SetReportCache(cache.NewMemoryReportCache(time.Hour))
	handler.SetClock(func() time.Time { return testClock })

	alertLog = alerts.NewMemoryLog()
	handler.SetLowStockRecorder(alerts.NewNotifier(alertLog, alerts.SMTPConfig{}))

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
	})
}

func clearAll() {
	store.Clear()
	handler.SetReportCache(cache.NewMemoryReportCache(time.Hour))
	alertLog.Drain()
	setNow(fixedNow)
}

func setNow(t time.Time) {
	testClock = t
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.UserLogin{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

// doRequest sends an authenticated request with an optional JSON body.
func doRequest(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	return doRequestAs(r, token, method, path, payload)
}

func doRequestAs(r http.Handler, bearer, method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, "/products", p)
}

func mustCreateProduct(r http.Handler, p handler.ProductRequest) handler.ProductResponse {
	w := createProduct(r, p)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("product creation failed: %d %s", w.Code, w.Body.String()))
	}
	var resp handler.ProductResponse
	json.NewDecoder(w.Body).Decode(&resp)
	return resp
}

func adjustProduct(r http.Handler, productID string, adj handler.QuantityAdjustmentRequest) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, fmt.Sprintf("/products/%s/adjust", productID), adj)
}

func createOrder(r http.Handler, o handler.OrderRequest) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, "/orders", o)
}

func mustCreateOrder(r http.Handler, o handler.OrderRequest) models.Order {
	w := createOrder(r, o)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("order creation failed: %d %s", w.Code, w.Body.String()))
	}
	var resp models.Order
	json.NewDecoder(w.Body).Decode(&resp)
	return resp
}

func setOrderStatus(r http.Handler, id string, status models.OrderStatus) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPatch, fmt.Sprintf("/orders/%s/status", id), handler.OrderStatusRequest{Status: status})
}

func createSupplier(r http.Handler, s handler.SupplierRequest) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, "/suppliers", s)
}

func floatPtr(v float64) *float64 { return &v }
