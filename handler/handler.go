package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"retro-accessories/service"
)

// Handler is the HTTP layer that talks to service.Service
type Handler struct {
	svc  service.ServiceInterface
	log  *zap.Logger
	meta map[string]string
}

// NewHandler returns a Handler instance. meta is echoed by GET /health.
func NewHandler(s service.ServiceInterface, log *zap.Logger, meta map[string]string) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: s, log: log, meta: meta}
}

// RegisterRoutes registers all routes on the provided router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(h.logRequests)

	r.HandleFunc("/health", h.Health).Methods("GET")

	// Catalog
	r.HandleFunc("/accessories", h.ListAccessories).Methods("GET")
	r.HandleFunc("/accessories/{id}", h.GetAccessory).Methods("GET")

	// Cart
	r.HandleFunc("/cart", h.GetCart).Methods("GET")
	r.HandleFunc("/cart", h.ClearCart).Methods("DELETE")
	r.HandleFunc("/cart/items", h.AddToCart).Methods("POST")
	r.HandleFunc("/cart/items/{id}", h.UpdateCartItem).Methods("PATCH")
	r.HandleFunc("/cart/items/{id}", h.RemoveFromCart).Methods("DELETE")

	// Session
	r.HandleFunc("/session", h.GetSession).Methods("GET")
	r.HandleFunc("/session/login", h.Login).Methods("POST")
	r.HandleFunc("/session/register", h.Register).Methods("POST")
	r.HandleFunc("/session/logout", h.Logout).Methods("POST")
	r.HandleFunc("/session/error", h.ClearSessionError).Methods("DELETE")

	// Checkout, orders, profile
	r.HandleFunc("/checkout", h.Checkout).Methods("POST")
	r.HandleFunc("/orders", h.ListOrders).Methods("GET")
	r.HandleFunc("/profile", h.GetProfile).Methods("GET")
	r.HandleFunc("/profile", h.UpdateProfile).Methods("PUT")

	// Admin
	r.HandleFunc("/admin/inventory", h.AdminListInventory).Methods("GET")
	r.HandleFunc("/admin/inventory/{id}", h.AdminUpdateStock).Methods("PATCH")
	r.HandleFunc("/admin/orders", h.AdminListOrders).Methods("GET")
	r.HandleFunc("/admin/orders/{id}/status", h.AdminUpdateOrderStatus).Methods("POST")
}

// --- helpers ---
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// fail maps err to a status code and writes it. Unexpected errors are
// logged; their text is still returned to the caller.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeErr(w, code, err.Error())
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid json")
	}
	return nil
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	out := map[string]string{"status": "ok"}
	for k, v := range h.meta {
		out[k] = v
	}
	writeJSON(w, http.StatusOK, out)
}
