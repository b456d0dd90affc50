package order

import (
	"fmt"

	"github.com/go-faster/errors"

	"github.com/feastly/order-service/internal/domain/ident"
	"github.com/feastly/order-service/internal/domain/money"
)

// ErrNotFound is returned by the tracking query when no order exists for the
// given tracking id.
var ErrNotFound = errors.New("order not found")

// Sentinel errors for structurally invalid requests, rejected before the
// validation pipeline runs.
var (
	ErrEmptyItems      = errors.New("order items required")
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
)

// ValidationError is implemented by every order validation failure, so
// callers can match the whole family with a single errors.As. Each variant
// carries the identifiers and amounts needed for a precise reason string.
type ValidationError interface {
	error
	orderValidation()
}

// CustomerNotFoundError indicates the order references an unknown customer.
type CustomerNotFoundError struct {
	CustomerID ident.CustomerID
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("customer %s not found", e.CustomerID)
}

func (e *CustomerNotFoundError) orderValidation() {}

// RestaurantNotActiveError indicates the restaurant is not currently
// accepting orders, or no restaurant snapshot could be resolved at all.
type RestaurantNotActiveError struct {
	RestaurantID ident.RestaurantID
}

func (e *RestaurantNotActiveError) Error() string {
	return fmt.Sprintf("restaurant %s is not active", e.RestaurantID)
}

func (e *RestaurantNotActiveError) orderValidation() {}

// ProductNotFoundError indicates an order line references a product absent
// from the restaurant's catalog.
type ProductNotFoundError struct {
	ProductID ident.ProductID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found in restaurant catalog", e.ProductID)
}

func (e *ProductNotFoundError) orderValidation() {}

// PriceMismatchError indicates an order line's stated unit price differs
// from the catalog price for the same product.
type PriceMismatchError struct {
	ProductID ident.ProductID
	Stated    money.Money
	Catalog   money.Money
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("price %s for product %s does not match catalog price %s",
		e.Stated, e.ProductID, e.Catalog)
}

func (e *PriceMismatchError) orderValidation() {}

// LineTotalMismatchError indicates an order line's subtotal is not its unit
// price times its quantity.
type LineTotalMismatchError struct {
	ProductID ident.ProductID
	SubTotal  money.Money
	Expected  money.Money
}

func (e *LineTotalMismatchError) Error() string {
	return fmt.Sprintf("subtotal %s for product %s does not equal price times quantity (%s)",
		e.SubTotal, e.ProductID, e.Expected)
}

func (e *LineTotalMismatchError) orderValidation() {}

// OrderTotalMismatchError indicates the declared order price is not the sum
// of the line subtotals.
type OrderTotalMismatchError struct {
	Declared   money.Money
	ItemsTotal money.Money
}

func (e *OrderTotalMismatchError) Error() string {
	return fmt.Sprintf("order total %s does not equal the sum of item subtotals %s",
		e.Declared, e.ItemsTotal)
}

func (e *OrderTotalMismatchError) orderValidation() {}

// StatusTransitionError indicates a lifecycle transition was attempted from
// a state that does not allow it.
type StatusTransitionError struct {
	From Status
	To   Status
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("order in state %s cannot transition to %s", e.From, e.To)
}
