package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feastly/order-service/internal/domain/ident"
	"github.com/feastly/order-service/internal/domain/money"
)

func newTestOrder() *Order {
	return New(
		ident.NewCustomerID(),
		ident.NewRestaurantID(),
		StreetAddress{Street: "1 Main St", PostalCode: "1000AB", City: "Amsterdam"},
		money.MustFromString("200.00"),
		[]OrderItem{
			{ProductID: ident.NewProductID(), Quantity: 1, Price: money.MustFromString("50.00"), SubTotal: money.MustFromString("50.00")},
			{ProductID: ident.NewProductID(), Quantity: 3, Price: money.MustFromString("50.00"), SubTotal: money.MustFromString("150.00")},
		},
	)
}

func TestNew_CopiesItems(t *testing.T) {
	items := []OrderItem{
		{ProductID: ident.NewProductID(), Quantity: 1, Price: money.MustFromString("10.00"), SubTotal: money.MustFromString("10.00")},
	}
	o := New(ident.NewCustomerID(), ident.NewRestaurantID(), StreetAddress{}, money.MustFromString("10.00"), items)

	items[0].Quantity = 99
	assert.Equal(t, 1, o.Items[0].Quantity)
}

func TestNew_AssignsAddressID(t *testing.T) {
	o := newTestOrder()
	assert.NotEqual(t, uuid.Nil, o.Address.ID)

	fixed := uuid.New()
	o2 := New(ident.NewCustomerID(), ident.NewRestaurantID(), StreetAddress{ID: fixed}, money.Zero, nil)
	assert.Equal(t, fixed, o2.Address.ID)
}

func TestInitialize(t *testing.T) {
	o := newTestOrder()
	require.True(t, o.ID.IsZero())
	require.True(t, o.TrackingID.IsZero())

	o.Initialize()

	assert.False(t, o.ID.IsZero())
	assert.False(t, o.TrackingID.IsZero())
	assert.NotEqual(t, uuid.UUID(o.ID), uuid.UUID(o.TrackingID))
	assert.Equal(t, StatusPending, o.Status)

	for i, item := range o.Items {
		assert.Equal(t, i+1, item.ID)
		assert.Equal(t, o.ID, item.OrderID)
	}
}

func TestValidateTotals(t *testing.T) {
	o := newTestOrder()
	require.NoError(t, o.validateTotals())
}

func TestValidateTotals_LineMismatch(t *testing.T) {
	o := newTestOrder()
	o.Items[1].SubTotal = money.MustFromString("149.00")

	err := o.validateTotals()
	var ltErr *LineTotalMismatchError
	require.ErrorAs(t, err, &ltErr)
	assert.Equal(t, o.Items[1].ProductID, ltErr.ProductID)
	assert.True(t, ltErr.Expected.Equal(money.MustFromString("150.00")))
}

func TestValidateTotals_OrderMismatch(t *testing.T) {
	o := newTestOrder()
	o.Price = money.MustFromString("250.00")

	err := o.validateTotals()
	var otErr *OrderTotalMismatchError
	require.ErrorAs(t, err, &otErr)
	assert.True(t, otErr.Declared.Equal(money.MustFromString("250.00")))
	assert.True(t, otErr.ItemsTotal.Equal(money.MustFromString("200.00")))
}

func TestStreetAddress_EqualIgnoresID(t *testing.T) {
	a := StreetAddress{ID: uuid.New(), Street: "1 Main St", PostalCode: "1000AB", City: "Amsterdam"}
	b := StreetAddress{ID: uuid.New(), Street: "1 Main St", PostalCode: "1000AB", City: "Amsterdam"}
	assert.True(t, a.Equal(b))

	b.City = "Rotterdam"
	assert.False(t, a.Equal(b))
}

func TestApprove(t *testing.T) {
	o := newTestOrder()
	o.Initialize()

	require.NoError(t, o.Approve())
	assert.Equal(t, StatusApproved, o.Status)

	err := o.Approve()
	var stErr *StatusTransitionError
	require.ErrorAs(t, err, &stErr)
	assert.Equal(t, StatusApproved, stErr.From)
}

func TestCancellationFlow(t *testing.T) {
	o := newTestOrder()
	o.Initialize()

	require.NoError(t, o.BeginCancellation([]string{"restaurant rejected the order"}))
	assert.Equal(t, StatusCancelling, o.Status)

	require.NoError(t, o.Cancel([]string{"payment refunded", ""}))
	assert.Equal(t, StatusCancelled, o.Status)
	assert.Equal(t, []string{"restaurant rejected the order", "payment refunded"}, o.FailureMessages)
}

func TestCancel_DirectFromPending(t *testing.T) {
	o := newTestOrder()
	o.Initialize()

	require.NoError(t, o.Cancel([]string{"customer changed their mind"}))
	assert.Equal(t, StatusCancelled, o.Status)
}

func TestCancel_RejectedAfterApproval(t *testing.T) {
	o := newTestOrder()
	o.Initialize()
	require.NoError(t, o.Approve())

	var stErr *StatusTransitionError
	require.ErrorAs(t, o.BeginCancellation(nil), &stErr)
	require.ErrorAs(t, o.Cancel(nil), &stErr)
	assert.Equal(t, StatusApproved, o.Status)
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusCancelling, StatusCancelled} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("SHIPPED").Valid())
	assert.False(t, Status("").Valid())
}
