package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/erp-analytics/internal/analytics"
	"github.com/rogerio-castellano/erp-analytics/internal/models"
	"github.com/rogerio-castellano/erp-analytics/internal/repo"
	"github.com/shopspring/decimal"
)

var errUnknownProduct = errors.New("unknown product")

// resolveItems prices every line from the request or the product and totals the order.
func resolveItems(userID int, reqItems []OrderItemRequest) ([]models.OrderItem, float64, error) {
	items := make([]models.OrderItem, 0, len(reqItems))
	total := decimal.Zero

	for _, it := range reqItems {
		p, err := productRepo.GetByID(userID, it.ProductID)
		if err != nil {
			if errors.Is(err, repo.ErrProductNotFound) {
				return nil, 0, fmt.Errorf("%w: %s", errUnknownProduct, it.ProductID)
			}
			return nil, 0, err
		}

		price := p.Price
		if it.UnitPrice != nil {
			price = *it.UnitPrice
		}
		items = append(items, models.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			SKU:         p.SKU,
			Quantity:    it.Quantity,
			UnitPrice:   price,
		})
		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return items, total.InexactFloat64(), nil
}

// releaseStock takes sold quantities out of inventory. Stock never drops below zero.
func releaseStock(userID int, items []models.OrderItem) []models.Product {
	var touched []models.Product
	for _, it := range items {
		p, err := productRepo.GetByID(userID, it.ProductID)
		if err != nil {
			log.Printf("[orders] stock release skipped user=%d product=%s err=%v", userID, it.ProductID, err)
			continue
		}

		delta := -min(it.Quantity, p.Quantity)
		if delta == 0 {
			continue
		}
		updated, err := productRepo.AdjustQuantity(userID, p.ID, delta)
		if err != nil {
			log.Printf("[orders] stock release failed user=%d product=%s err=%v", userID, p.ID, err)
			continue
		}
		touched = append(touched, updated)
	}
	return touched
}

// CreateOrderHandler godoc
// @Summary Create an order
// @Description Line items are priced from the product unless a unit price is given. Sales orders take their quantities out of stock.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body OrderRequest true "Order to create"
// @Success 201 {object} models.Order
// @Failure 400 {array} ValidationError
// @Failure 500 {string} string "Internal error"
// @Router /orders [post]
func CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateOrder(req, true); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	userID := currentUser(r)
	items, itemsTotal, err := resolveItems(userID, req.Items)
	if err != nil {
		if errors.Is(err, errUnknownProduct) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "could not create order", http.StatusInternalServerError)
		return
	}

	total := req.Total
	if len(items) > 0 {
		total = itemsTotal
	}

	now := clock()
	created, err := orderRepo.Create(models.Order{
		UserID:        userID,
		Type:          req.Type,
		Status:        models.OrderStatusPending,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		SupplierID:    req.SupplierID,
		Total:         total,
		Notes:         req.Notes,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		log.Printf("[orders] create failed user=%d err=%v", userID, err)
		http.Error(w, "could not create order", http.StatusInternalServerError)
		return
	}

	var touched []models.Product
	if created.Type == models.OrderTypeSales {
		touched = releaseStock(userID, created.Items)
	}
	productsChanged(userID, touched...)

	respond(w, http.StatusCreated, created)
}

// GetOrdersHandler godoc
// @Summary List all orders, newest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Order
// @Failure 500 {string} string "Internal error"
// @Router /orders [get]
func GetOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := orderRepo.GetAll(currentUser(r))
	if err != nil {
		http.Error(w, "could not fetch orders", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, orders)
}

// GetOrderByIDHandler godoc
// @Summary Get order by ID
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {string} string "Not found"
// @Router /orders/{id} [get]
func GetOrderByIDHandler(w http.ResponseWriter, r *http.Request) {
	order, err := orderRepo.GetByID(currentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch order", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, order)
}

// UpdateOrderHandler godoc
// @Summary Update an order
// @Description Line items and the order number cannot change.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param order body OrderRequest true "Updated order"
// @Success 200 {object} models.Order
// @Failure 400 {array} ValidationError
// @Failure 404 {string} string "Not found"
// @Router /orders/{id} [put]
func UpdateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateOrder(req, false); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	userID := currentUser(r)
	updated, err := orderRepo.Update(models.Order{
		ID:            chi.URLParam(r, "id"),
		UserID:        userID,
		Type:          req.Type,
		Status:        req.Status,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		SupplierID:    req.SupplierID,
		Total:         req.Total,
		Notes:         req.Notes,
	})
	if err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		log.Printf("[orders] update failed user=%d err=%v", userID, err)
		http.Error(w, "could not update order", http.StatusInternalServerError)
		return
	}

	productsChanged(userID)
	respond(w, http.StatusOK, updated)
}

// UpdateOrderStatusHandler godoc
// @Summary Change the status of an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param status body OrderStatusRequest true "New status"
// @Success 200 {object} models.Order
// @Failure 400 {array} ValidationError
// @Failure 404 {string} string "Not found"
// @Router /orders/{id}/status [patch]
func UpdateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	var req OrderStatusRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateStatus(req.Status); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	userID := currentUser(r)
	updated, err := orderRepo.UpdateStatus(userID, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update order status", http.StatusInternalServerError)
		return
	}

	productsChanged(userID)
	respond(w, http.StatusOK, updated)
}

// DeleteOrderHandler godoc
// @Summary Delete an order
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Router /orders/{id} [delete]
func DeleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	if err := orderRepo.Delete(userID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete order", http.StatusInternalServerError)
		return
	}

	productsChanged(userID)
	w.WriteHeader(http.StatusNoContent)
}

// FilterOrdersHandler godoc
// @Summary Filter and paginate orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param search query string false "Customer name, email or order number contains"
// @Param status query string false "Order status"
// @Param type query string false "sales or purchase"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} OrdersSearchResult
// @Failure 400 {string} string "Invalid query"
// @Router /orders/search [get]
func FilterOrdersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	offset, limit, err := pagination(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter := repo.OrderFilter{
		Search: q.Get("search"),
		Status: models.OrderStatus(q.Get("status")),
		Type:   models.OrderType(q.Get("type")),
		Offset: offset,
		Limit:  limit,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		http.Error(w, "unknown order status", http.StatusBadRequest)
		return
	}
	if filter.Type != "" && !filter.Type.Valid() {
		http.Error(w, "unknown order type", http.StatusBadRequest)
		return
	}

	orders, total, err := orderRepo.Filter(currentUser(r), filter)
	if err != nil {
		http.Error(w, "could not filter orders", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, OrdersSearchResult{Data: orders, Meta: Meta{TotalCount: total}})
}

// OrderSummaryHandler godoc
// @Summary Order counts by stage and revenue
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} analytics.OrderSummary
// @Router /orders/summary [get]
func OrderSummaryHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := orderRepo.GetAll(currentUser(r))
	if err != nil {
		http.Error(w, "could not fetch orders", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, analytics.SummarizeOrders(orders))
}
