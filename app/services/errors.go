package services

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart is returned when checkout is attempted on a cart with
	// no items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidStatus is returned for unknown order status values.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrEmailTaken is returned when registering with an email that
	// already has an account.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrInvalidCredentials is returned on a failed login. It never says
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnsupportedImage is returned for uploads that are not
	// jpg/jpeg/png/webp.
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// InsufficientStockError reports the first product that could not cover
// the requested quantity. The surrounding transaction is rolled back
// whole, so no partial deduction survives it.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}
