package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/feastly/order-service/internal/domain/ident"
	"github.com/feastly/order-service/internal/domain/money"
	"github.com/feastly/order-service/internal/domain/order"
)

type orderAddress struct {
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

type orderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	SubTotal  decimal.Decimal `json:"sub_total"`
}

type createOrderRequest struct {
	CustomerID   string             `json:"customer_id"`
	RestaurantID string             `json:"restaurant_id"`
	Address      orderAddress       `json:"address"`
	Price        decimal.Decimal    `json:"price"`
	Items        []orderItemRequest `json:"items"`
}

type createOrderResponse struct {
	OrderTrackingID string `json:"order_tracking_id"`
	OrderStatus     string `json:"order_status"`
	Message         string `json:"message"`
}

type trackOrderResponse struct {
	OrderTrackingID string   `json:"order_tracking_id"`
	OrderStatus     string   `json:"order_status"`
	FailureMessages []string `json:"failure_messages,omitempty"`
}

// CreateOrder decodes the JSON command, delegates to the order service and
// returns the tracking handle for the created order.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	domainReq, err := toDomainRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.orders.CreateOrder(r.Context(), domainReq)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, createOrderResponse{
		OrderTrackingID: result.TrackingID.String(),
		OrderStatus:     string(result.Status),
		Message:         result.Message,
	})
}

// TrackOrder returns the status view for the tracking id in the path.
func (h *Handler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	trackingID, err := ident.ParseTrackingID(r.PathValue("trackingID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tracking id")
		return
	}

	view, err := h.orders.TrackOrder(r.Context(), order.TrackOrderQuery{TrackingID: trackingID})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, trackOrderResponse{
		OrderTrackingID: view.TrackingID.String(),
		OrderStatus:     string(view.Status),
		FailureMessages: view.FailureMessages,
	})
}

// toDomainRequest parses identifiers and wraps amounts; any malformed field
// is a 400 before the domain service runs.
func toDomainRequest(req createOrderRequest) (order.CreateOrderRequest, error) {
	customerID, err := ident.ParseCustomerID(req.CustomerID)
	if err != nil {
		return order.CreateOrderRequest{}, errors.New("invalid customer_id")
	}
	restaurantID, err := ident.ParseRestaurantID(req.RestaurantID)
	if err != nil {
		return order.CreateOrderRequest{}, errors.New("invalid restaurant_id")
	}

	items := make([]order.OrderItem, len(req.Items))
	for i, item := range req.Items {
		productID, err := ident.ParseProductID(item.ProductID)
		if err != nil {
			return order.CreateOrderRequest{}, errors.Errorf("invalid product_id %q", item.ProductID)
		}
		items[i] = order.OrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			Price:     money.New(item.Price),
			SubTotal:  money.New(item.SubTotal),
		}
	}

	return order.CreateOrderRequest{
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Address: order.StreetAddress{
			Street:     req.Address.Street,
			PostalCode: req.Address.PostalCode,
			City:       req.Address.City,
		},
		Price: money.New(req.Price),
		Items: items,
	}, nil
}

// Error classification for writeDomainError.

func errorIsBadRequest(err error) bool {
	return errors.Is(err, order.ErrEmptyItems) || errors.Is(err, order.ErrInvalidQuantity)
}

func errorIsValidation(err error) bool {
	var ve order.ValidationError
	return errors.As(err, &ve)
}

func errorIsNotFound(err error) bool {
	return errors.Is(err, order.ErrNotFound)
}
