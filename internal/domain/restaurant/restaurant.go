// Package restaurant holds the read-only restaurant projection consulted
// while validating an order. The order service never mutates it.
package restaurant

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/feastly/order-service/internal/domain/ident"
	"github.com/feastly/order-service/internal/domain/money"
)

// ErrNotFound is returned when no restaurant exists for the given id.
var ErrNotFound = errors.New("restaurant not found")

// Product is a catalog entry used to reconcile order line prices.
type Product struct {
	ID    ident.ProductID
	Name  string
	Price money.Money
}

// Restaurant is a point-in-time snapshot of a restaurant and the subset of
// its catalog relevant to one order.
type Restaurant struct {
	ID       ident.RestaurantID
	Products []Product
	Active   bool
}

// Product returns the catalog entry for the given product id.
func (r *Restaurant) Product(id ident.ProductID) (Product, bool) {
	for _, p := range r.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Query narrows a snapshot fetch to the products an order references.
type Query struct {
	RestaurantID ident.RestaurantID
	ProductIDs   []ident.ProductID
}

// Repository defines read access to restaurant information.
type Repository interface {
	FindInformation(ctx context.Context, q Query) (*Restaurant, error)
}
