package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feastly/order-service/internal/domain/ident"
	"github.com/feastly/order-service/internal/domain/money"
)

// Order is the aggregate root for a placed food order. It owns its items and
// delivery address; callers hand in copies and never share state with the
// aggregate afterwards.
type Order struct {
	ID              ident.OrderID
	CustomerID      ident.CustomerID
	RestaurantID    ident.RestaurantID
	Address         StreetAddress
	Price           money.Money
	Items           []OrderItem
	TrackingID      ident.TrackingID
	Status          Status
	FailureMessages []string
	CreatedAt       time.Time
}

// OrderItem is a single line of an order. SubTotal must equal Price times
// Quantity; the domain service rejects orders where it does not.
type OrderItem struct {
	ID        int
	OrderID   ident.OrderID
	ProductID ident.ProductID
	Quantity  int
	Price     money.Money
	SubTotal  money.Money
}

// StreetAddress is the delivery address embedded in an order. The internal
// id exists for persistence only.
type StreetAddress struct {
	ID         uuid.UUID
	Street     string
	PostalCode string
	City       string
}

// Equal compares addresses by street, postal code and city. The internal id
// is deliberately excluded: two addresses are the same place regardless of
// which row they were stored as.
func (a StreetAddress) Equal(b StreetAddress) bool {
	return a.Street == b.Street && a.PostalCode == b.PostalCode && a.City == b.City
}

// New builds an un-initialized Order from validated-to-be-validated inputs,
// deep-copying the items slice so the caller's request structures are never
// aliased.
func New(customerID ident.CustomerID, restaurantID ident.RestaurantID, address StreetAddress, price money.Money, items []OrderItem) *Order {
	copied := make([]OrderItem, len(items))
	copy(copied, items)

	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}

	return &Order{
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Address:      address,
		Price:        price,
		Items:        copied,
	}
}

// Initialize assigns the order its identity: a fresh OrderID, a fresh
// TrackingID and the initial PENDING state, and stamps every item with its
// line id and the order id. Storage may later replace the OrderID; the
// TrackingID is final.
func (o *Order) Initialize() {
	o.ID = ident.NewOrderID()
	o.TrackingID = ident.NewTrackingID()
	o.Status = StatusPending
	o.initializeItems()
}

// initializeItems numbers the lines from 1 and ties them to the order.
func (o *Order) initializeItems() {
	for i := range o.Items {
		o.Items[i].ID = i + 1
		o.Items[i].OrderID = o.ID
	}
}

// validateTotals runs the arithmetic invariants: every line's subtotal must
// be price times quantity, and the declared order price must equal the sum
// of line subtotals. It reports the first violation only.
func (o *Order) validateTotals() error {
	itemsTotal := money.Zero
	for _, item := range o.Items {
		expected := item.Price.MultiplyInt(item.Quantity)
		if !item.SubTotal.Equal(expected) {
			return &LineTotalMismatchError{
				ProductID: item.ProductID,
				SubTotal:  item.SubTotal,
				Expected:  expected,
			}
		}
		itemsTotal = itemsTotal.Add(item.SubTotal)
	}

	if !o.Price.Equal(itemsTotal) {
		return &OrderTotalMismatchError{
			Declared:   o.Price,
			ItemsTotal: itemsTotal,
		}
	}
	return nil
}

// Approve moves a pending order to APPROVED. Driven by the restaurant
// approval flow downstream of this service.
func (o *Order) Approve() error {
	if o.Status != StatusPending {
		return &StatusTransitionError{From: o.Status, To: StatusApproved}
	}
	o.Status = StatusApproved
	return nil
}

// BeginCancellation moves a pending order to CANCELLING, recording why.
func (o *Order) BeginCancellation(messages []string) error {
	if o.Status != StatusPending {
		return &StatusTransitionError{From: o.Status, To: StatusCancelling}
	}
	o.Status = StatusCancelling
	o.addFailureMessages(messages)
	return nil
}

// Cancel finalizes a cancellation. Allowed from CANCELLING or directly from
// PENDING when the order never left this service.
func (o *Order) Cancel(messages []string) error {
	if o.Status != StatusCancelling && o.Status != StatusPending {
		return &StatusTransitionError{From: o.Status, To: StatusCancelled}
	}
	o.Status = StatusCancelled
	o.addFailureMessages(messages)
	return nil
}

func (o *Order) addFailureMessages(messages []string) {
	for _, m := range messages {
		if m == "" {
			continue
		}
		o.FailureMessages = append(o.FailureMessages, m)
	}
}

// Repository defines persistence for order aggregates. Save returns the
// persisted copy, which carries any storage-assigned identity and
// timestamps. FindByTrackingID returns ErrNotFound when no order matches.
type Repository interface {
	Save(ctx context.Context, o *Order) (*Order, error)
	FindByTrackingID(ctx context.Context, trackingID ident.TrackingID) (*Order, error)
}
