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

func supplierFromRequest(userID int, req SupplierRequest) models.Supplier {
	status := req.Status
	if status == "" {
		status = models.SupplierStatusActive
	}
	return models.Supplier{
		UserID:        userID,
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		PaymentTerms:  req.PaymentTerms,
		Status:        status,
	}
}

// CreateSupplierHandler godoc
// @Summary Create a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param supplier body SupplierRequest true "Supplier to add"
// @Success 201 {object} models.Supplier
// @Failure 400 {array} ValidationError
// @Router /suppliers [post]
func CreateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	var req SupplierRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateSupplier(req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	userID := currentUser(r)
	supplier := supplierFromRequest(userID, req)
	supplier.CreatedAt = clock().Format(time.RFC3339)
	supplier.UpdatedAt = supplier.CreatedAt

	created, err := supplierRepo.Create(supplier)
	if err != nil {
		log.Printf("[suppliers] create failed user=%d err=%v", userID, err)
		http.Error(w, "could not create supplier", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusCreated, created)
}

// GetSuppliersHandler godoc
// @Summary List all suppliers
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Supplier
// @Router /suppliers [get]
func GetSuppliersHandler(w http.ResponseWriter, r *http.Request) {
	suppliers, err := supplierRepo.GetAll(currentUser(r))
	if err != nil {
		http.Error(w, "could not fetch suppliers", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, suppliers)
}

// GetSupplierByIDHandler godoc
// @Summary Get supplier by ID
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Supplier ID"
// @Success 200 {object} models.Supplier
// @Failure 404 {string} string "Not found"
// @Router /suppliers/{id} [get]
func GetSupplierByIDHandler(w http.ResponseWriter, r *http.Request) {
	supplier, err := supplierRepo.GetByID(currentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrSupplierNotFound) {
			http.Error(w, "supplier not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch supplier", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, supplier)
}

// UpdateSupplierHandler godoc
// @Summary Update a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Supplier ID"
// @Param supplier body SupplierRequest true "Updated supplier"
// @Success 200 {object} models.Supplier
// @Failure 400 {array} ValidationError
// @Failure 404 {string} string "Not found"
// @Router /suppliers/{id} [put]
func UpdateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	var req SupplierRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateSupplier(req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	userID := currentUser(r)
	supplier := supplierFromRequest(userID, req)
	supplier.ID = chi.URLParam(r, "id")
	supplier.UpdatedAt = clock().Format(time.RFC3339)

	updated, err := supplierRepo.Update(supplier)
	if err != nil {
		if errors.Is(err, repo.ErrSupplierNotFound) {
			http.Error(w, "supplier not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update supplier", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, updated)
}

// DeleteSupplierHandler godoc
// @Summary Delete a supplier
// @Tags suppliers
// @Security BearerAuth
// @Param id path string true "Supplier ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Router /suppliers/{id} [delete]
func DeleteSupplierHandler(w http.ResponseWriter, r *http.Request) {
	if err := supplierRepo.Delete(currentUser(r), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, repo.ErrSupplierNotFound) {
			http.Error(w, "supplier not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete supplier", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FilterSuppliersHandler godoc
// @Summary Filter and paginate suppliers
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name, contact person or email contains"
// @Param status query string false "active or inactive"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} SuppliersSearchResult
// @Failure 400 {string} string "Invalid query"
// @Router /suppliers/search [get]
func FilterSuppliersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	offset, limit, err := pagination(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter := repo.SupplierFilter{
		Search: q.Get("search"),
		Status: models.SupplierStatus(q.Get("status")),
		Offset: offset,
		Limit:  limit,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		http.Error(w, "unknown supplier status", http.StatusBadRequest)
		return
	}

	suppliers, total, err := supplierRepo.Filter(currentUser(r), filter)
	if err != nil {
		http.Error(w, "could not filter suppliers", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, SuppliersSearchResult{Data: suppliers, Meta: Meta{TotalCount: total}})
}

// SupplierSummaryHandler godoc
// @Summary Supplier counts by status
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} analytics.SupplierSummary
// @Router /suppliers/summary [get]
func SupplierSummaryHandler(w http.ResponseWriter, r *http.Request) {
	suppliers, err := supplierRepo.GetAll(currentUser(r))
	if err != nil {
		http.Error(w, "could not fetch suppliers", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, analytics.SummarizeSuppliers(suppliers))
}
