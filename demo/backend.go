// Package demo is an in-process stand-in for the storefront API. It serves
// a fixed catalog, accepts any non-empty credentials and fabricates order,
// profile and admin responses after a short artificial delay.
package demo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"retro-accessories/model"
)

const defaultStock = 10

// Delays mimic a slow network when latency simulation is on.
const (
	loginDelay         = 300 * time.Millisecond
	registerDelay      = 400 * time.Millisecond
	profileGetDelay    = 250 * time.Millisecond
	profileUpdateDelay = 350 * time.Millisecond
	placeOrderDelay    = 450 * time.Millisecond
	listDelay          = 350 * time.Millisecond
)

// Backend keeps everything in memory for the lifetime of the process.
type Backend struct {
	latency bool
	log     *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	profile model.Profile
	stock   map[string]int
	placed  []model.Order
	status  map[string]model.OrderStatus
}

// New returns a demo backend. With simulateLatency off every call returns
// immediately, which is what tests and scripts want.
func New(simulateLatency bool, log *zap.Logger) *Backend {
	if log == nil {
		log = zap.NewNop()
	}
	return &Backend{
		latency: simulateLatency,
		log:     log,
		now:     time.Now,
		profile: model.Profile{
			Email:   "demo@user.com",
			Name:    "Demo Rider",
			Address: "1987 Neon Ave",
			Phone:   "555-0137",
		},
		stock:  map[string]int{},
		status: map[string]model.OrderStatus{},
	}
}

// sleep waits d unless latency is off or ctx ends first.
func (b *Backend) sleep(ctx context.Context, d time.Duration) error {
	if !b.latency {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// --- catalog ---

// ListAccessories returns the catalog, filtered by a case-insensitive
// substring of name or category when query is set.
func (b *Backend) ListAccessories(ctx context.Context, query string) ([]model.Accessory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all := accessories()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}
	out := make([]model.Accessory, 0, len(all))
	for _, a := range all {
		if strings.Contains(strings.ToLower(a.Name), q) || strings.Contains(strings.ToLower(a.Category), q) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (b *Backend) GetAccessory(ctx context.Context, id string) (model.Accessory, error) {
	if err := ctx.Err(); err != nil {
		return model.Accessory{}, err
	}
	for _, a := range accessories() {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Accessory{}, fmt.Errorf("accessory %q: %w", id, model.ErrNotFound)
}

// --- auth ---

func (b *Backend) Login(ctx context.Context, email, password string) (model.AuthResult, error) {
	if err := b.sleep(ctx, loginDelay); err != nil {
		return model.AuthResult{}, err
	}
	return issue(email, password)
}

func (b *Backend) Register(ctx context.Context, email, password string) (model.AuthResult, error) {
	if err := b.sleep(ctx, registerDelay); err != nil {
		return model.AuthResult{}, err
	}
	return issue(email, password)
}

// issue hands out a token for any non-empty credentials. Emails containing
// "admin" get the admin role.
func issue(email, password string) (model.AuthResult, error) {
	if email == "" || password == "" {
		return model.AuthResult{}, model.ErrInvalidCredentials
	}
	role := model.RoleUser
	if strings.Contains(email, "admin") {
		role = model.RoleAdmin
	}
	return model.AuthResult{
		Token: "demo-" + uuid.NewString(),
		User:  model.User{Email: email, Role: role},
	}, nil
}

// --- profile ---

func (b *Backend) GetProfile(ctx context.Context, _ string) (model.Profile, error) {
	if err := b.sleep(ctx, profileGetDelay); err != nil {
		return model.Profile{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.profile, nil
}

// UpdateProfile stores p and echoes it back.
func (b *Backend) UpdateProfile(ctx context.Context, _ string, p model.Profile) (model.Profile, error) {
	if err := b.sleep(ctx, profileUpdateDelay); err != nil {
		return model.Profile{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.profile = p
	return p, nil
}

// --- orders ---

func (b *Backend) PlaceOrder(ctx context.Context, _ string, req model.OrderRequest) (model.Order, error) {
	if err := b.sleep(ctx, placeOrderDelay); err != nil {
		return model.Order{}, err
	}
	cust := req.Customer
	ord := model.Order{
		ID:         newOrderID(),
		Status:     model.StatusPlaced,
		EtaMinutes: 42,
		CreatedAt:  b.now().UTC(),
		Customer:   &cust,
		Items:      append([]model.CartLineItem(nil), req.Items...),
		Subtotal:   req.Subtotal,
		Shipping:   req.Shipping,
		Total:      req.Total,
	}

	b.mu.Lock()
	b.placed = append(b.placed, ord)
	b.mu.Unlock()

	b.log.Debug("demo order placed", zap.String("id", ord.ID))
	return ord, nil
}

// newOrderID returns "ord_" followed by seven hex digits.
func newOrderID() string {
	return "ord_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
}

// ListOrders returns the two fabricated orders followed by anything placed
// during this process.
func (b *Backend) ListOrders(ctx context.Context, _ string) ([]model.Order, error) {
	if err := b.sleep(ctx, listDelay); err != nil {
		return nil, err
	}
	return b.orders(), nil
}

func (b *Backend) orders() []model.Order {
	now := b.now().UTC()
	out := []model.Order{
		{
			ID:         "ord_demo_1",
			Status:     model.StatusOutForDelivery,
			EtaMinutes: 12,
			CreatedAt:  now.Add(-6 * time.Hour),
			Items:      []model.CartLineItem{{ID: "a1", Name: "Holo Belt Clip", Price: 19.99, Qty: 1}},
			Subtotal:   19.99,
			Total:      19.99,
		},
		{
			ID:         "ord_demo_2",
			Status:     model.StatusDelivered,
			EtaMinutes: 0,
			CreatedAt:  now.Add(-30 * time.Hour),
			Items:      []model.CartLineItem{{ID: "a3", Name: "Retro Keycap Set", Price: 34.5, Qty: 1}},
			Subtotal:   34.5,
			Total:      34.5,
		},
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	out = append(out, b.placed...)
	for i := range out {
		if s, ok := b.status[out[i].ID]; ok {
			out[i].Status = s
		}
	}
	return out
}

// --- admin ---

// ListInventory returns the catalog with stock levels. Stock starts at 10.
func (b *Backend) ListInventory(ctx context.Context, _ string) ([]model.InventoryItem, error) {
	if err := b.sleep(ctx, listDelay); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	all := accessories()
	out := make([]model.InventoryItem, 0, len(all))
	for _, a := range all {
		out = append(out, model.InventoryItem{Accessory: a, Stock: b.stockLocked(a.ID)})
	}
	return out, nil
}

func (b *Backend) stockLocked(id string) int {
	if n, ok := b.stock[id]; ok {
		return n
	}
	return defaultStock
}

func (b *Backend) UpdateInventory(ctx context.Context, _ string, id string, stock int) (model.InventoryItem, error) {
	if err := b.sleep(ctx, listDelay); err != nil {
		return model.InventoryItem{}, err
	}
	a, err := b.GetAccessory(ctx, id)
	if err != nil {
		return model.InventoryItem{}, err
	}
	if stock < 0 {
		return model.InventoryItem{}, model.ErrInvalidStock
	}

	b.mu.Lock()
	b.stock[id] = stock
	b.mu.Unlock()
	return model.InventoryItem{Accessory: a, Stock: stock}, nil
}

func (b *Backend) ListAllOrders(ctx context.Context, token string) ([]model.Order, error) {
	return b.ListOrders(ctx, token)
}

func (b *Backend) UpdateOrderStatus(ctx context.Context, _ string, id string, status model.OrderStatus) (model.Order, error) {
	if err := b.sleep(ctx, listDelay); err != nil {
		return model.Order{}, err
	}
	if !status.Valid() {
		return model.Order{}, fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}

	var found *model.Order
	for _, o := range b.orders() {
		if o.ID == id {
			found = &o
			break
		}
	}
	if found == nil {
		return model.Order{}, fmt.Errorf("order %q: %w", id, model.ErrNotFound)
	}

	b.mu.Lock()
	b.status[id] = status
	b.mu.Unlock()

	found.Status = status
	return *found, nil
}
