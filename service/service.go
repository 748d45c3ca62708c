package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"retro-accessories/model"
)

// Service is the storefront: it ties the cart and session managers to a
// Backend. Handlers and CLI commands only ever talk to a Service.
type Service struct {
	cart    *CartManager
	session *SessionManager
	backend Backend
	log     *zap.Logger
}

func NewService(cart *CartManager, session *SessionManager, backend Backend, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{cart: cart, session: session, backend: backend, log: log}
}

// notePersist logs a persistence failure and drops it. Anything else is
// returned unchanged.
func (s *Service) notePersist(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotPersisted) {
		s.log.Warn("state kept in memory only", zap.String("op", op), zap.Error(err))
		return nil
	}
	return err
}

// --- catalog ---

func (s *Service) ListAccessories(ctx context.Context, query string) ([]model.Accessory, error) {
	return s.backend.ListAccessories(ctx, query)
}

func (s *Service) GetAccessory(ctx context.Context, id string) (model.Accessory, error) {
	return s.backend.GetAccessory(ctx, id)
}

// --- cart ---

func (s *Service) Cart() model.CartState { return s.cart.State() }

// AddToCart looks the accessory up and adds qty of it, copying the current
// name and price into the cart.
func (s *Service) AddToCart(ctx context.Context, id string, qty int) (model.CartState, error) {
	a, err := s.backend.GetAccessory(ctx, id)
	if err != nil {
		return s.cart.State(), err
	}
	_ = s.notePersist("cart.add", s.cart.AddItem(a, qty))
	return s.cart.State(), nil
}

func (s *Service) UpdateCartQuantity(id string, qty int) model.CartState {
	_ = s.notePersist("cart.update", s.cart.UpdateQuantity(id, qty))
	return s.cart.State()
}

func (s *Service) RemoveFromCart(id string) model.CartState {
	_ = s.notePersist("cart.remove", s.cart.RemoveItem(id))
	return s.cart.State()
}

func (s *Service) ClearCart() model.CartState {
	_ = s.notePersist("cart.clear", s.cart.Clear())
	return s.cart.State()
}

// --- session ---

func (s *Service) Session() model.SessionState { return s.session.State() }

func (s *Service) Login(ctx context.Context, email, password string) (model.SessionState, error) {
	_, err := s.session.Login(ctx, email, password)
	return s.session.State(), s.notePersist("session.login", err)
}

func (s *Service) Register(ctx context.Context, email, password string) (model.SessionState, error) {
	_, err := s.session.Register(ctx, email, password)
	return s.session.State(), s.notePersist("session.register", err)
}

func (s *Service) Logout() model.SessionState {
	_ = s.notePersist("session.logout", s.session.Logout())
	return s.session.State()
}

func (s *Service) ClearSessionError() model.SessionState {
	s.session.ClearError()
	return s.session.State()
}

// --- checkout & orders ---

// Checkout places an order for the whole cart and, once the order is
// accepted, takes the ordered lines off the cart. Items added while the
// order was in flight stay. Guests may check out.
func (s *Service) Checkout(ctx context.Context, customer model.Customer) (model.Order, error) {
	cart := s.cart.State()
	if len(cart.Items) == 0 {
		return model.Order{}, model.ErrEmptyCart
	}
	if customer.Name == "" || customer.Address == "" {
		return model.Order{}, model.ErrInvalidCustomer
	}

	ord, err := s.backend.PlaceOrder(ctx, s.session.Token(), model.OrderRequest{
		Customer: customer,
		Items:    cart.Items,
		Subtotal: cart.Subtotal,
		Shipping: cart.Shipping,
		Total:    cart.Total,
	})
	if err != nil {
		return model.Order{}, fmt.Errorf("place order: %w", err)
	}
	s.log.Info("order placed", zap.String("id", ord.ID), zap.Float64("total", ord.Total))
	_ = s.notePersist("cart.deduct", s.cart.Deduct(cart.Items))
	return ord, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]model.Order, error) {
	return s.backend.ListOrders(ctx, s.session.Token())
}

func (s *Service) GetProfile(ctx context.Context) (model.Profile, error) {
	return s.backend.GetProfile(ctx, s.session.Token())
}

func (s *Service) UpdateProfile(ctx context.Context, p model.Profile) (model.Profile, error) {
	return s.backend.UpdateProfile(ctx, s.session.Token(), p)
}

// --- admin ---

// requireAdmin returns the token of an authenticated admin session.
func (s *Service) requireAdmin() (string, error) {
	st := s.session.State()
	if !st.IsAuthed {
		return "", model.ErrUnauthenticated
	}
	if !st.IsAdmin {
		return "", model.ErrForbidden
	}
	return st.Token, nil
}

func (s *Service) AdminListInventory(ctx context.Context) ([]model.InventoryItem, error) {
	token, err := s.requireAdmin()
	if err != nil {
		return nil, err
	}
	return s.backend.ListInventory(ctx, token)
}

func (s *Service) AdminUpdateStock(ctx context.Context, id string, stock int) (model.InventoryItem, error) {
	token, err := s.requireAdmin()
	if err != nil {
		return model.InventoryItem{}, err
	}
	if stock < 0 {
		return model.InventoryItem{}, model.ErrInvalidStock
	}
	return s.backend.UpdateInventory(ctx, token, id, stock)
}

func (s *Service) AdminListOrders(ctx context.Context) ([]model.Order, error) {
	token, err := s.requireAdmin()
	if err != nil {
		return nil, err
	}
	return s.backend.ListAllOrders(ctx, token)
}

func (s *Service) AdminUpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (model.Order, error) {
	token, err := s.requireAdmin()
	if err != nil {
		return model.Order{}, err
	}
	if !status.Valid() {
		return model.Order{}, fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}
	return s.backend.UpdateOrderStatus(ctx, token, id, status)
}
