package repo

import "errors"

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound       = errors.New("product not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrSupplierNotFound      = errors.New("supplier not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique field")
	ErrInvalidQuantityChange = errors.New("quantity cannot drop below zero")
)
