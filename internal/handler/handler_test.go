package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feastly/order-service/internal/domain/customer"
	"github.com/feastly/order-service/internal/domain/ident"
	"github.com/feastly/order-service/internal/domain/money"
	"github.com/feastly/order-service/internal/domain/order"
	"github.com/feastly/order-service/internal/domain/restaurant"
)

// --- Mock repositories; handlers run against the real order service ---

type mockCustomerRepo struct {
	byID map[ident.CustomerID]*customer.Customer
}

func (m *mockCustomerRepo) Find(_ context.Context, id ident.CustomerID) (*customer.Customer, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return c, nil
}

type mockRestaurantRepo struct {
	info *restaurant.Restaurant
}

func (m *mockRestaurantRepo) FindInformation(_ context.Context, _ restaurant.Query) (*restaurant.Restaurant, error) {
	if m.info == nil {
		return nil, restaurant.ErrNotFound
	}
	return m.info, nil
}

type mockOrderRepo struct {
	byTrack map[ident.TrackingID]*order.Order
	saveErr error
}

func (m *mockOrderRepo) Save(_ context.Context, o *order.Order) (*order.Order, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.byTrack[o.TrackingID] = o
	return o, nil
}

func (m *mockOrderRepo) FindByTrackingID(_ context.Context, trackingID ident.TrackingID) (*order.Order, error) {
	o, ok := m.byTrack[trackingID]
	if !ok {
		return nil, order.ErrNotFound
	}
	return o, nil
}

// --- Fixtures ---

var (
	testCustomerID   = ident.NewCustomerID()
	testRestaurantID = ident.NewRestaurantID()
	testProductID    = ident.NewProductID()
)

func newTestServer(t *testing.T) (*httptest.Server, *mockOrderRepo) {
	t.Helper()

	orders := &mockOrderRepo{byTrack: map[ident.TrackingID]*order.Order{}}
	svc := order.NewService(
		&mockCustomerRepo{byID: map[ident.CustomerID]*customer.Customer{
			testCustomerID: {ID: testCustomerID},
		}},
		&mockRestaurantRepo{info: &restaurant.Restaurant{
			ID:     testRestaurantID,
			Active: true,
			Products: []restaurant.Product{
				{ID: testProductID, Name: "Kung Pao Chicken", Price: money.MustFromString("50.00")},
			},
		}},
		orders,
	)

	mux := http.NewServeMux()
	NewHandler(svc).Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, orders
}

func validOrderBody() string {
	return fmt.Sprintf(`{
		"customer_id": %q,
		"restaurant_id": %q,
		"address": {"street": "1 Main St", "postal_code": "1000AB", "city": "Amsterdam"},
		"price": "200.00",
		"items": [
			{"product_id": %q, "quantity": 1, "price": "50.00", "sub_total": "50.00"},
			{"product_id": %q, "quantity": 3, "price": "50.00", "sub_total": "150.00"}
		]
	}`, testCustomerID, testRestaurantID, testProductID, testProductID)
}

func postOrder(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(srv.URL+"/api/orders", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// --- Tests ---

func TestCreateOrderEndpoint(t *testing.T) {
	srv, orders := newTestServer(t)

	resp := postOrder(t, srv, validOrderBody())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		OrderTrackingID string `json:"order_tracking_id"`
		OrderStatus     string `json:"order_status"`
		Message         string `json:"message"`
	}
	decodeBody(t, resp, &body)

	assert.Equal(t, "PENDING", body.OrderStatus)
	assert.Equal(t, "Order created successfully", body.Message)

	trackingID, err := ident.ParseTrackingID(body.OrderTrackingID)
	require.NoError(t, err)
	assert.Contains(t, orders.byTrack, trackingID)
}

func TestCreateOrderEndpoint_MalformedJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postOrder(t, srv, `{"customer_id": `)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateOrderEndpoint_BadCustomerID(t *testing.T) {
	srv, _ := newTestServer(t)

	body := strings.Replace(validOrderBody(), testCustomerID.String(), "not-a-uuid", 1)
	resp := postOrder(t, srv, body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &errBody)
	assert.Equal(t, http.StatusBadRequest, errBody.Code)
	assert.Equal(t, "invalid customer_id", errBody.Message)
}

func TestCreateOrderEndpoint_EmptyItems(t *testing.T) {
	srv, _ := newTestServer(t)

	body := fmt.Sprintf(`{
		"customer_id": %q,
		"restaurant_id": %q,
		"address": {"street": "1 Main St", "postal_code": "1000AB", "city": "Amsterdam"},
		"price": "0",
		"items": []
	}`, testCustomerID, testRestaurantID)

	resp := postOrder(t, srv, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateOrderEndpoint_TotalMismatch(t *testing.T) {
	srv, _ := newTestServer(t)

	body := strings.Replace(validOrderBody(), `"price": "200.00"`, `"price": "250.00"`, 1)
	resp := postOrder(t, srv, body)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var errBody struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &errBody)
	assert.Equal(t, http.StatusUnprocessableEntity, errBody.Code)
	assert.Contains(t, errBody.Message, "250.00")
}

func TestCreateOrderEndpoint_UnknownCustomer(t *testing.T) {
	srv, _ := newTestServer(t)

	body := strings.Replace(validOrderBody(), testCustomerID.String(), ident.NewCustomerID().String(), 1)
	resp := postOrder(t, srv, body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestTrackOrderEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postOrder(t, srv, validOrderBody())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created struct {
		OrderTrackingID string `json:"order_tracking_id"`
	}
	decodeBody(t, resp, &created)

	trackResp, err := http.Get(srv.URL + "/api/orders/" + created.OrderTrackingID)
	require.NoError(t, err)
	defer trackResp.Body.Close()
	require.Equal(t, http.StatusOK, trackResp.StatusCode)

	var tracked struct {
		OrderTrackingID string   `json:"order_tracking_id"`
		OrderStatus     string   `json:"order_status"`
		FailureMessages []string `json:"failure_messages"`
	}
	decodeBody(t, trackResp, &tracked)

	assert.Equal(t, created.OrderTrackingID, tracked.OrderTrackingID)
	assert.Equal(t, "PENDING", tracked.OrderStatus)
	assert.Empty(t, tracked.FailureMessages)
}

func TestTrackOrderEndpoint_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/orders/" + ident.NewTrackingID().String())
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTrackOrderEndpoint_BadTrackingID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/orders/not-a-uuid")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateOrderEndpoint_StorageFailure(t *testing.T) {
	srv, orders := newTestServer(t)
	orders.saveErr = errors.New("connection reset")

	resp := postOrder(t, srv, validOrderBody())
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var errBody struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "internal server error", errBody.Message)
	assert.NotContains(t, errBody.Message, "connection reset")
}
