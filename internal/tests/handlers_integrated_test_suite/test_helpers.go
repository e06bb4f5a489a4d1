package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/erp-analytics/internal/cache"
	"github.com/rogerio-castellano/erp-analytics/internal/db"
	handler "github.com/rogerio-castellano/erp-analytics/internal/http/handlers"
	rl "github.com/rogerio-castellano/erp-analytics/internal/http/rate_limiter"
	"github.com/rogerio-castellano/erp-analytics/internal/models"
	"github.com/rogerio-castellano/erp-analytics/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var (
	token       string
	productRepo *repo.PostgresProductRepository
	orderRepo   *repo.PostgresOrderRepository
	userRepo    *repo.PostgresUserRepository
	database    *sql.DB
)

// setupTestRepos connects to dbUrl, migrates the schema and points the handlers at Postgres.
func setupTestRepos(dbUrl, password string) error {
	var err error
	database, err = db.Connect(dbUrl)
	if err != nil {
		return fmt.Errorf("could not connect to database: %w", err)
	}
	if err := db.Migrate(database); err != nil {
		return err
	}

	rl.Configure(1000, 1000)

	productRepo = repo.NewPostgresProductRepository(database)
	handler.SetProductRepo(productRepo)

	orderRepo = repo.NewPostgresOrderRepository(database)
	handler.SetOrderRepo(orderRepo)

	handler.SetSupplierRepo(repo.NewPostgresSupplierRepository(database))
	handler.SetSnapshotRepo(repo.NewPostgresSnapshotRepository(database))
	handler.SetReportCache(cache.Nop{})
	handler.SetClock(time.Now)

	userRepo = repo.NewPostgresUserRepository(database)
	handler.SetUserRepo(userRepo)

	return createAdminIfNotExists(password)
}

func createAdminIfNotExists(password string) error {
	if _, err := userRepo.GetByUsername("admin"); err == nil {
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	_, err := userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
	})
	return err
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

func clearAllRecords() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := database.ExecContext(ctx, "TRUNCATE TABLE order_items, orders, products, suppliers RESTART IDENTITY CASCADE")
	if err != nil {
		fmt.Println(fmt.Errorf("failed to truncate tables: %w", err))
	}
}

func doRequest(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func mustCreateProduct(r http.Handler, p handler.ProductRequest) handler.ProductResponse {
	w := doRequest(r, http.MethodPost, "/products", p)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("product creation failed: %d %s", w.Code, w.Body.String()))
	}
	var resp handler.ProductResponse
	json.NewDecoder(w.Body).Decode(&resp)
	return resp
}
