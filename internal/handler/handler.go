// Package handler exposes the order service over HTTP/JSON. It owns request
// decoding, response shaping and the mapping from domain errors to status
// codes; all business decisions stay in the domain packages.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/feastly/order-service/internal/domain/order"
)

// Handler serves the order API, delegating business logic to the order
// service.
type Handler struct {
	orders *order.Service
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(orders *order.Service) *Handler {
	return &Handler{orders: orders}
}

// Register mounts the API routes on the given mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/orders", h.CreateOrder)
	mux.HandleFunc("GET /api/orders/{trackingID}", h.TrackOrder)
}

// errorResponse is the JSON body for all non-2xx responses.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Best effort: the status code is already written.
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Code: status, Message: message})
}

// writeDomainError maps a domain error to an HTTP response. Validation
// failures are client errors with the domain's reason string; anything
// unexpected is logged and reported as a 500 without leaking internals.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errorIsBadRequest(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errorIsValidation(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errorIsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		zctx.From(r.Context()).Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
