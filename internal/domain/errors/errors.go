package errors

import "errors"

var (
	ErrAlreadyExists           = errors.New("already exists")
	ErrNotFound                = errors.New("not found")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidTransition       = errors.New("status transition not allowed")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrMissingLines            = errors.New("quote has no lines")
	ErrDiscountExceedsSubtotal = errors.New("discount exceeds subtotal")
	ErrDuplicateSKU            = errors.New("duplicate sku in order")
	ErrProductNotFound         = errors.New("product not found")
	ErrInvalidPhone            = errors.New("invalid jordanian phone number")
	ErrInvalidQuantity         = errors.New("quantity must be positive")
	ErrInvalidProduct          = errors.New("sku and name are required")
)
