package domain

import "errors"

var (
	ErrMedicineNotFound    = errors.New("medicine not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrAdvertNotFound      = errors.New("advert not found")
	ErrNotFound            = errors.New("not found")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrInvalidInput        = errors.New("invalid input")
	ErrEmptyCart           = errors.New("cart is empty, nothing to checkout")
	ErrMedicineUnavailable = errors.New("a cart item is no longer available")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidTransition   = errors.New("illegal payment status transition")
	ErrDuplicate           = errors.New("already exists")
	ErrTooManyAttempts     = errors.New("too many checkout attempts, try again later")
	ErrForbidden           = errors.New("not allowed for this identity")
)
