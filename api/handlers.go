package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/subtrack/subscription"
)

type handlers struct {
	svc *subscription.Service
	log *slog.Logger
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *handlers) isOnline(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "online"})
}

type addSubscriptionRequest struct {
	ClientName  string  `json:"client_name"`
	ProductName string  `json:"product_name"`
	EndDate     string  `json:"end_date"`
	LicenseKey  *string `json:"license_key,omitempty"`
}

func (h *handlers) addSubscription(w http.ResponseWriter, r *http.Request) {
	var req addSubscriptionRequest
	if !h.decode(w, r, &req) {
		return
	}

	_, err := h.svc.Add(r.Context(), subscription.AddParams{
		ClientName:  req.ClientName,
		ProductName: req.ProductName,
		EndDate:     req.EndDate,
		LicenseKey:  req.LicenseKey,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, messageResponse{Message: "Subscription added successfully."})
}

func (h *handlers) viewSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if subs == nil {
		subs = []subscription.Subscription{}
	}
	respond(w, http.StatusOK, subs)
}

type deleteSubscriptionRequest struct {
	Index int `json:"index"`
}

func (h *handlers) deleteSubscription(w http.ResponseWriter, r *http.Request) {
	var req deleteSubscriptionRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.Delete(r.Context(), req.Index); err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, messageResponse{Message: "Subscription deleted successfully."})
}

type renewSubscriptionRequest struct {
	Index          int    `json:"index,omitempty"`
	NewEndDate     string `json:"new_end_date,omitempty"`
	NewClientName  string `json:"new_client_name,omitempty"`
	NewProductName string `json:"new_product_name,omitempty"`
	ClientName     string `json:"client_name,omitempty"`
	ProductName    string `json:"product_name,omitempty"`
	AdditionalDays int    `json:"additional_days,omitempty"`
}

func (h *handlers) renewSubscription(w http.ResponseWriter, r *http.Request) {
	var req renewSubscriptionRequest
	if !h.decode(w, r, &req) {
		return
	}

	_, err := h.svc.Renew(r.Context(), subscription.RenewParams{
		Index:          req.Index,
		NewEndDate:     req.NewEndDate,
		NewClientName:  req.NewClientName,
		NewProductName: req.NewProductName,
		ClientName:     req.ClientName,
		ProductName:    req.ProductName,
		AdditionalDays: req.AdditionalDays,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, messageResponse{Message: "Subscription renewed successfully."})
}

func (h *handlers) nextIndex(w http.ResponseWriter, r *http.Request) {
	next, err := h.svc.NextIndex(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]int{"next_index": next})
}

func (h *handlers) getProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Products(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if products == nil {
		products = []string{}
	}
	respond(w, http.StatusOK, products)
}

type productRequest struct {
	ProductName string `json:"product_name"`
}

func (h *handlers) addProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.AddProduct(r.Context(), req.ProductName); err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, messageResponse{Message: "Product added successfully."})
}

func (h *handlers) deleteProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.DeleteProduct(r.Context(), req.ProductName); err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, messageResponse{Message: "Product deleted successfully."})
}

// decode parses the JSON request body, answering 400 on malformed input.
func (h *handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respond(w, http.StatusBadRequest, messageResponse{Message: "Invalid request body."})
		return false
	}
	return true
}

// fail maps domain errors to 400 and everything else to 500. Storage details
// stay in the log, not in the response.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, subscription.ErrInvalidInput),
		errors.Is(err, subscription.ErrDuplicateSubscription),
		errors.Is(err, subscription.ErrDuplicateProduct),
		errors.Is(err, subscription.ErrSubscriptionNotFound),
		errors.Is(err, subscription.ErrProductNotFound):
		respond(w, http.StatusBadRequest, messageResponse{Message: err.Error()})
	default:
		h.log.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		respond(w, http.StatusInternalServerError, messageResponse{Message: "Internal server error."})
	}
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
