package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"retro-accessories/model"
	"retro-accessories/service"
)

// --- request / response shapes ---

// cartItemReq carries qty as whatever the client sent: a number, a numeric
// string, or nothing at all.
type cartItemReq struct {
	ID  string      `json:"id"`
	Qty interface{} `json:"qty"`
}

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type stockReq struct {
	Stock *int `json:"stock"`
}

type statusReq struct {
	Status model.OrderStatus `json:"status"`
}

// qtyOf applies the cart quantity rule to a decoded JSON value.
func qtyOf(v interface{}) int {
	switch q := v.(type) {
	case float64:
		return service.Quantity(q)
	case string:
		return service.ParseQuantity(q)
	default:
		return 1
	}
}

// --- catalog ---

// ListAccessories handles GET /accessories?q=...
func (h *Handler) ListAccessories(w http.ResponseWriter, r *http.Request) {
	as, err := h.svc.ListAccessories(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, as)
}

// GetAccessory handles GET /accessories/{id}
func (h *Handler) GetAccessory(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetAccessory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// --- cart ---

// GetCart handles GET /cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Cart())
}

// AddToCart handles POST /cart/items
// body: { "id": "a1", "qty": 2 }
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemReq
	if err := decode(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID == "" {
		writeErr(w, http.StatusBadRequest, "id is required")
		return
	}
	st, err := h.svc.AddToCart(r.Context(), req.ID, qtyOf(req.Qty))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// UpdateCartItem handles PATCH /cart/items/{id}
// body: { "qty": 3 }
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemReq
	if err := decode(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.svc.UpdateCartQuantity(mux.Vars(r)["id"], qtyOf(req.Qty)))
}

// RemoveFromCart handles DELETE /cart/items/{id}
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.RemoveFromCart(mux.Vars(r)["id"]))
}

// ClearCart handles DELETE /cart
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ClearCart())
}

// --- session ---

// GetSession handles GET /session
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Session())
}

// Login handles POST /session/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, h.svc.Login)
}

// Register handles POST /session/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, h.svc.Register)
}

func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request, call func(ctx context.Context, email, password string) (model.SessionState, error)) {
	var req credentialsReq
	if err := decode(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	st, err := call(r.Context(), req.Email, req.Password)
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			code = http.StatusUnauthorized
		}
		writeJSON(w, code, map[string]interface{}{"error": st.Error, "session": st})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Logout handles POST /session/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Logout())
}

// ClearSessionError handles DELETE /session/error
func (h *Handler) ClearSessionError(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ClearSessionError())
}

// --- checkout, orders, profile ---

// Checkout handles POST /checkout
// body: { "name": "...", "address": "...", "notes": "..." }
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req model.Customer
	if err := decode(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	ord, err := h.svc.Checkout(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ord)
}

// ListOrders handles GET /orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	os, err := h.svc.ListOrders(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, os)
}

// GetProfile handles GET /profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProfile(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateProfile handles PUT /profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req model.Profile
	if err := decode(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.svc.UpdateProfile(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// --- admin ---

// AdminListInventory handles GET /admin/inventory
func (h *Handler) AdminListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.AdminListInventory(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// AdminUpdateStock handles PATCH /admin/inventory/{id}
// body: { "stock": 7 }
func (h *Handler) AdminUpdateStock(w http.ResponseWriter, r *http.Request) {
	var req stockReq
	if err := decode(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Stock == nil {
		writeErr(w, http.StatusBadRequest, "stock is required")
		return
	}
	item, err := h.svc.AdminUpdateStock(r.Context(), mux.Vars(r)["id"], *req.Stock)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// AdminListOrders handles GET /admin/orders
func (h *Handler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	os, err := h.svc.AdminListOrders(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, os)
}

// AdminUpdateOrderStatus handles POST /admin/orders/{id}/status
// body: { "status": "DELIVERED" }
func (h *Handler) AdminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusReq
	if err := decode(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	ord, err := h.svc.AdminUpdateOrderStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ord)
}
