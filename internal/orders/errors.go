package orders

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariefcatur/heritage-market/internal/auth"
)

// Error kinds. Concrete errors returned by this package wrap exactly one of
// these so callers can branch with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAlreadyReviewed    = errors.New("already reviewed")
	ErrOrderNotFulfilled  = errors.New("order not fulfilled")
	ErrNotPurchased       = errors.New("product not purchased in this order")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrForbidden          = errors.New("forbidden")
)

// Kind names the error kind of err for logs, metrics and API bodies.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrProductUnavailable):
		return "product_unavailable"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrAlreadyReviewed):
		return "already_reviewed"
	case errors.Is(err, ErrOrderNotFulfilled):
		return "order_not_fulfilled"
	case errors.Is(err, ErrNotPurchased):
		return "not_purchased"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	}
	return "internal"
}

func forbidden(p auth.Principal, action string) error {
	return fmt.Errorf("%w: %s may not %s", ErrForbidden, p.Role, action)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Reason }
func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, reason string) error { return &ValidationError{Field: field, Reason: reason} }

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %s not found", e.Entity, e.ID) }
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func notFound(entity, id string) error { return &NotFoundError{Entity: entity, ID: id} }

type StockShortage struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (requested %d, available %d)", s.ProductID, s.Requested, s.Available))
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

type UnavailableError struct {
	ProductIDs []string
}

func (e *UnavailableError) Error() string {
	return "products no longer available: " + strings.Join(e.ProductIDs, ", ")
}

func (e *UnavailableError) Unwrap() error { return ErrProductUnavailable }

type TransitionError struct {
	OrderID string
	From    Status
	To      Status
	Role    auth.Role
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order %s: %s may not move %s -> %s", e.OrderID, e.Role, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

type ModerationError struct {
	Entity string
	ID     string
	From   ModerationStatus
	To     ModerationStatus
}

func (e *ModerationError) Error() string {
	return fmt.Sprintf("%s %s is already %s, cannot become %s", e.Entity, e.ID, e.From, e.To)
}

func (e *ModerationError) Unwrap() error { return ErrInvalidTransition }
