package customer

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/feastly/order-service/internal/domain/ident"
)

// ErrNotFound is returned when no customer exists for the given id.
var ErrNotFound = errors.New("customer not found")

// Customer is a read-only projection of a registered customer, fetched only
// to confirm the order's customer exists.
type Customer struct {
	ID ident.CustomerID
}

// Repository defines lookup of customers by id.
type Repository interface {
	Find(ctx context.Context, id ident.CustomerID) (*Customer, error)
}
