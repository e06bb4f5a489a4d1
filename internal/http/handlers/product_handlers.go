package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/erp-analytics/internal/analytics"
	"github.com/rogerio-castellano/erp-analytics/internal/models"
	"github.com/rogerio-castellano/erp-analytics/internal/repo"
)

func productFromRequest(userID int, req ProductRequest) models.Product {
	return models.Product{
		UserID:      userID,
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Cost:        req.Cost,
		Quantity:    req.Quantity,
		Threshold:   req.Threshold,
		SupplierID:  req.SupplierID,
		Location:    req.Location,
	}
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the account's inventory
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} ValidationError
// @Failure 409 {string} string "Duplicated SKU"
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateProduct(req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	userID := currentUser(r)
	product := productFromRequest(userID, req)
	product.CreatedAt = clock().Format(time.RFC3339)
	product.UpdatedAt = product.CreatedAt

	created, err := productRepo.Create(product)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not create product: SKU duplicated", http.StatusConflict)
			return
		}
		log.Printf("[products] create failed user=%d err=%v", userID, err)
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	productsChanged(userID, created)
	respond(w, http.StatusCreated, toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll(currentUser(r))
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	respond(w, http.StatusOK, response)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := productRepo.GetByID(currentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, toProductResponse(product))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {array} ValidationError
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Duplicated SKU"
// @Router /products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateProduct(req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	userID := currentUser(r)
	product := productFromRequest(userID, req)
	product.ID = chi.URLParam(r, "id")
	product.UpdatedAt = clock().Format(time.RFC3339)

	updated, err := productRepo.Update(product)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrDuplicatedValueUnique):
			http.Error(w, "could not update product: SKU duplicated", http.StatusConflict)
		default:
			log.Printf("[products] update failed user=%d id=%s err=%v", userID, product.ID, err)
			http.Error(w, "could not update product", http.StatusInternalServerError)
		}
		return
	}

	productsChanged(userID, updated)
	respond(w, http.StatusOK, toProductResponse(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	if err := productRepo.Delete(userID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}

	productsChanged(userID)
	w.WriteHeader(http.StatusNoContent)
}

// AdjustQuantityHandler godoc
// @Summary Adjust quantity of a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param adjustment body QuantityAdjustmentRequest true "Quantity change"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid adjustment"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Quantity would become negative"
// @Router /products/{id}/adjust [post]
func AdjustQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var req QuantityAdjustmentRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	userID := currentUser(r)
	product, err := productRepo.AdjustQuantity(userID, chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrInvalidQuantityChange):
			http.Error(w, "quantity cannot be negative", http.StatusConflict)
		default:
			http.Error(w, "could not update quantity", http.StatusInternalServerError)
		}
		return
	}

	productsChanged(userID, product)
	respond(w, http.StatusOK, toProductResponse(product))
}

// FilterProductsHandler godoc
// @Summary Filter and paginate products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or SKU contains"
// @Param category query string false "Category"
// @Param lowStock query bool false "Only products at or below their threshold"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /products/search [get]
func FilterProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	offset, limit, err := pagination(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter := repo.ProductFilter{
		Search:       q.Get("search"),
		Category:     q.Get("category"),
		LowStockOnly: q.Get("lowStock") == "true",
		Offset:       offset,
		Limit:        limit,
	}

	products, total, err := productRepo.Filter(currentUser(r), filter)
	if err != nil {
		http.Error(w, "could not filter products", http.StatusInternalServerError)
		return
	}

	resp := ProductsSearchResult{
		Data: make([]ProductResponse, len(products)),
		Meta: Meta{TotalCount: total},
	}
	for i, p := range products {
		resp.Data[i] = toProductResponse(p)
	}
	respond(w, http.StatusOK, resp)
}

// InventorySummaryHandler godoc
// @Summary Inventory counts and value
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} analytics.InventorySummary
// @Failure 500 {string} string "Internal error"
// @Router /products/summary [get]
func InventorySummaryHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll(currentUser(r))
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, analytics.SummarizeInventory(products))
}
