// Package ident defines the typed identifiers used across the order domain.
// Each identifier wraps a UUID so that an order id can never be passed where
// a product id is expected. The zero value is invalid; construct identifiers
// with the New* functions or parse them from external input.
package ident

import "github.com/google/uuid"

// OrderID identifies an order aggregate. Internal only; never exposed to
// API clients, which address orders by TrackingID.
type OrderID uuid.UUID

// NewOrderID generates a random OrderID.
func NewOrderID() OrderID { return OrderID(uuid.New()) }

// ParseOrderID parses the standard UUID string form.
func ParseOrderID(s string) (OrderID, error) {
	id, err := uuid.Parse(s)
	return OrderID(id), err
}

func (id OrderID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the identifier was never assigned.
func (id OrderID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// CustomerID identifies a customer.
type CustomerID uuid.UUID

func NewCustomerID() CustomerID { return CustomerID(uuid.New()) }

func ParseCustomerID(s string) (CustomerID, error) {
	id, err := uuid.Parse(s)
	return CustomerID(id), err
}

func (id CustomerID) String() string { return uuid.UUID(id).String() }

func (id CustomerID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// RestaurantID identifies a restaurant.
type RestaurantID uuid.UUID

func NewRestaurantID() RestaurantID { return RestaurantID(uuid.New()) }

func ParseRestaurantID(s string) (RestaurantID, error) {
	id, err := uuid.Parse(s)
	return RestaurantID(id), err
}

func (id RestaurantID) String() string { return uuid.UUID(id).String() }

func (id RestaurantID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// ProductID identifies a product in a restaurant catalog.
type ProductID uuid.UUID

func NewProductID() ProductID { return ProductID(uuid.New()) }

func ParseProductID(s string) (ProductID, error) {
	id, err := uuid.Parse(s)
	return ProductID(id), err
}

func (id ProductID) String() string { return uuid.UUID(id).String() }

func (id ProductID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// TrackingID is the externally exposed handle for order lookups. It is
// assigned when the order is initialized and is independent of OrderID.
type TrackingID uuid.UUID

func NewTrackingID() TrackingID { return TrackingID(uuid.New()) }

func ParseTrackingID(s string) (TrackingID, error) {
	id, err := uuid.Parse(s)
	return TrackingID(id), err
}

func (id TrackingID) String() string { return uuid.UUID(id).String() }

func (id TrackingID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
