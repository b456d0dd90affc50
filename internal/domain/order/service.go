package order

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/feastly/order-service/internal/domain/customer"
	"github.com/feastly/order-service/internal/domain/ident"
	"github.com/feastly/order-service/internal/domain/money"
	"github.com/feastly/order-service/internal/domain/restaurant"
)

// createdMessage is returned to the caller on successful order creation.
const createdMessage = "Order created successfully"

// CreateOrderRequest holds the input for creating an order. Item ids and
// order ids are ignored on input; the aggregate assigns them.
type CreateOrderRequest struct {
	CustomerID   ident.CustomerID
	RestaurantID ident.RestaurantID
	Address      StreetAddress
	Price        money.Money
	Items        []OrderItem
}

// CreateOrderResult is the façade response for a created order. Only the
// tracking id leaks out; the order id stays internal.
type CreateOrderResult struct {
	TrackingID ident.TrackingID
	Status     Status
	Message    string
}

// TrackOrderQuery identifies an order by its externally exposed tracking id.
type TrackOrderQuery struct {
	TrackingID ident.TrackingID
}

// OrderStatusView is the minimal read model returned by the tracking query.
type OrderStatusView struct {
	TrackingID      ident.TrackingID
	Status          Status
	FailureMessages []string
}

// Service orchestrates order creation and tracking through the repository
// ports. It is stateless; concurrent calls never interfere.
type Service struct {
	customers   customer.Repository
	restaurants restaurant.Repository
	orders      Repository
}

// NewService creates an order Service with the required ports.
func NewService(
	customers customer.Repository,
	restaurants restaurant.Repository,
	orders Repository,
) *Service {
	return &Service{
		customers:   customers,
		restaurants: restaurants,
		orders:      orders,
	}
}

// CreateOrder validates the request against the customer registry and the
// restaurant's current catalog, builds the aggregate, persists it and
// returns the tracking handle. Validation is fail-fast and deterministic:
// the same request always produces the same first-reported error, and
// nothing is persisted on failure.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	ids := make([]ident.ProductID, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, errors.Wrapf(ErrInvalidQuantity, "product %s", item.ProductID)
		}
		ids[i] = item.ProductID
	}

	if _, err := s.customers.Find(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return nil, &CustomerNotFoundError{CustomerID: req.CustomerID}
		}
		return nil, errors.Wrap(err, "find customer")
	}

	info, err := s.restaurants.FindInformation(ctx, restaurant.Query{
		RestaurantID: req.RestaurantID,
		ProductIDs:   ids,
	})
	if err != nil {
		if errors.Is(err, restaurant.ErrNotFound) {
			// An unresolvable restaurant is indistinguishable from an
			// unavailable one as far as the caller is concerned.
			return nil, &RestaurantNotActiveError{RestaurantID: req.RestaurantID}
		}
		return nil, errors.Wrap(err, "find restaurant")
	}

	o := New(req.CustomerID, req.RestaurantID, req.Address, req.Price, req.Items)
	if err := ValidateAndInitiate(o, info); err != nil {
		return nil, err
	}

	saved, err := s.orders.Save(ctx, o)
	if err != nil {
		return nil, errors.Wrap(err, "save order")
	}

	return &CreateOrderResult{
		TrackingID: saved.TrackingID,
		Status:     saved.Status,
		Message:    createdMessage,
	}, nil
}

// ValidateAndInitiate runs the validation pipeline against the restaurant
// snapshot and, on success, assigns the order its identity and initial
// PENDING state. The checks run in a fixed order and stop at the first
// violation: restaurant availability, then product reconciliation line by
// line, then line totals, then the order total. Structural checks come
// first because price arithmetic is meaningless against an inactive
// restaurant or an unknown product.
func ValidateAndInitiate(o *Order, info *restaurant.Restaurant) error {
	if !info.Active {
		return &RestaurantNotActiveError{RestaurantID: info.ID}
	}

	for _, item := range o.Items {
		p, ok := info.Product(item.ProductID)
		if !ok {
			return &ProductNotFoundError{ProductID: item.ProductID}
		}
		if !item.Price.Equal(p.Price) {
			return &PriceMismatchError{
				ProductID: item.ProductID,
				Stated:    item.Price,
				Catalog:   p.Price,
			}
		}
	}

	if err := o.validateTotals(); err != nil {
		return err
	}

	o.Initialize()
	return nil
}

// TrackOrder looks up an order by tracking id and maps it to the status
// view. Pure read; repeated calls with the same id return identical results
// absent external state changes.
func (s *Service) TrackOrder(ctx context.Context, q TrackOrderQuery) (*OrderStatusView, error) {
	o, err := s.orders.FindByTrackingID(ctx, q.TrackingID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, errors.Wrap(err, "find order by tracking id")
	}

	return &OrderStatusView{
		TrackingID:      o.TrackingID,
		Status:          o.Status,
		FailureMessages: o.FailureMessages,
	}, nil
}
