package handlers

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/rogerio-castellano/erp-analytics/internal/models"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}

func validateProduct(p ProductRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	if p.Price <= 0 {
		errs = append(errs, ValidationError{Field: "Price", Description: "Price must be greater than zero"})
	}
	if p.Cost < 0 {
		errs = append(errs, ValidationError{Field: "Cost", Description: "Cost cannot be negative"})
	}
	if p.Quantity < 0 {
		errs = append(errs, ValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
	}
	if p.Threshold < 0 {
		errs = append(errs, ValidationError{Field: "Threshold", Description: "Threshold cannot be negative"})
	}
	return errs
}

// validateOrder checks the header fields, and the line items when creating.
func validateOrder(o OrderRequest, creating bool) []ValidationError {
	errs := []ValidationError{}
	if !o.Type.Valid() {
		errs = append(errs, ValidationError{Field: "Type", Description: "Type must be sales or purchase"})
	}
	if !creating && !o.Status.Valid() {
		errs = append(errs, ValidationError{Field: "Status", Description: "Status is not a known order status"})
	}
	if strings.TrimSpace(o.CustomerName) == "" {
		errs = append(errs, ValidationError{Field: "CustomerName", Description: "Customer name is required"})
	}
	if o.CustomerEmail != "" && !validEmail(o.CustomerEmail) {
		errs = append(errs, ValidationError{Field: "CustomerEmail", Description: "Customer email is not valid"})
	}
	if o.Total < 0 {
		errs = append(errs, ValidationError{Field: "Total", Description: "Total cannot be negative"})
	}
	if !creating {
		return errs
	}

	for i, item := range o.Items {
		field := fmt.Sprintf("Items[%d]", i)
		if item.ProductID == "" {
			errs = append(errs, ValidationError{Field: field + ".ProductID", Description: "Product is required"})
		}
		if item.Quantity <= 0 {
			errs = append(errs, ValidationError{Field: field + ".Quantity", Description: "Quantity must be greater than zero"})
		}
		if item.UnitPrice != nil && *item.UnitPrice < 0 {
			errs = append(errs, ValidationError{Field: field + ".UnitPrice", Description: "Unit price cannot be negative"})
		}
	}
	return errs
}

func validateSupplier(s SupplierRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	if s.Email != "" && !validEmail(s.Email) {
		errs = append(errs, ValidationError{Field: "Email", Description: "Email is not valid"})
	}
	if s.Status != "" && !s.Status.Valid() {
		errs = append(errs, ValidationError{Field: "Status", Description: "Status must be active or inactive"})
	}
	return errs
}

func validateStatus(s models.OrderStatus) []ValidationError {
	if s.Valid() {
		return nil
	}
	return []ValidationError{{Field: "Status", Description: "Status is not a known order status"}}
}
