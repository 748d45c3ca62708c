package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"retro-accessories/model"
	"retro-accessories/store"
)

// CartKey is the store key the cart is persisted under.
const CartKey = "retro_accessory_cart_v1"

// ErrNotPersisted wraps a store failure after a successful in-memory
// change. The change stands; callers usually log it and carry on.
var ErrNotPersisted = errors.New("state not persisted")

// CartManager owns the cart line items and is the only writer of CartKey.
type CartManager struct {
	mu    sync.Mutex
	store store.Store
	log   *zap.Logger
	items []model.CartLineItem
}

// NewCartManager restores the cart from st. Missing or unreadable data
// yields an empty cart.
func NewCartManager(st store.Store, log *zap.Logger) *CartManager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &CartManager{store: st, log: log}
	m.items = m.restore()
	return m
}

func (m *CartManager) restore() []model.CartLineItem {
	data, found, err := m.store.Get(CartKey)
	if err != nil {
		m.log.Warn("cart restore failed, starting empty", zap.Error(err))
		return []model.CartLineItem{}
	}
	if !found {
		return []model.CartLineItem{}
	}
	var rows []storedRow
	if err := json.Unmarshal(data, &rows); err != nil {
		m.log.Debug("ignoring malformed cart data", zap.Error(err))
		return []model.CartLineItem{}
	}
	return normalizeItems(rows)
}

// storedRow is a persisted line item as read back. Qty is decoded as a
// float so rows written with a fractional quantity still load.
type storedRow struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   float64 `json:"qty"`
}

// normalizeItems re-establishes the cart invariants on data read from
// outside: one row per id, qty >= 1 (through Quantity), price >= 0.
func normalizeItems(rows []storedRow) []model.CartLineItem {
	out := make([]model.CartLineItem, 0, len(rows))
	index := map[string]int{}
	for _, r := range rows {
		if r.ID == "" {
			continue
		}
		qty := Quantity(r.Qty)
		if i, ok := index[r.ID]; ok {
			out[i].Qty += qty
			continue
		}
		price := r.Price
		if price < 0 {
			price = 0
		}
		index[r.ID] = len(out)
		out = append(out, model.CartLineItem{ID: r.ID, Name: r.Name, Price: price, Qty: qty})
	}
	return out
}

// AddItem adds qty of item to the cart, incrementing the existing row for
// the same id instead of adding a second one. The in-memory change always
// happens; a non-nil error only reports the persistence result.
func (m *CartManager) AddItem(item model.Accessory, qty int) error {
	qty = atLeastOne(qty)

	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexLocked(item.ID); i >= 0 {
		m.items[i].Qty += qty
	} else {
		m.items = append(m.items, model.CartLineItem{
			ID:    item.ID,
			Name:  item.Name,
			Price: item.Price,
			Qty:   qty,
		})
	}
	return m.persistLocked()
}

// UpdateQuantity sets the quantity of the row for id. Unknown ids are
// ignored.
func (m *CartManager) UpdateQuantity(id string, qty int) error {
	qty = atLeastOne(qty)

	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexLocked(id); i >= 0 {
		m.items[i].Qty = qty
	}
	return m.persistLocked()
}

// RemoveItem deletes the row for id if there is one.
func (m *CartManager) RemoveItem(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexLocked(id); i >= 0 {
		m.items = append(m.items[:i:i], m.items[i+1:]...)
	}
	return m.persistLocked()
}

// Clear empties the cart.
func (m *CartManager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = []model.CartLineItem{}
	return m.persistLocked()
}

// Deduct takes lines off the cart, typically the lines of a placed order.
// Each line lowers the row with the same id by its qty; rows that reach
// zero are removed. Anything added after the lines were read is kept.
func (m *CartManager) Deduct(lines []model.CartLineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range lines {
		i := m.indexLocked(l.ID)
		if i < 0 {
			continue
		}
		if left := m.items[i].Qty - l.Qty; left >= 1 {
			m.items[i].Qty = left
			continue
		}
		m.items = append(m.items[:i:i], m.items[i+1:]...)
	}
	return m.persistLocked()
}

// State returns a snapshot of the cart with derived totals. The snapshot
// shares nothing with the manager.
func (m *CartManager) State() model.CartState {
	m.mu.Lock()
	items := make([]model.CartLineItem, len(m.items))
	copy(items, m.items)
	m.mu.Unlock()
	return Totals(items)
}

func (m *CartManager) indexLocked(id string) int {
	for i, it := range m.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (m *CartManager) persistLocked() error {
	data, err := json.Marshal(m.items)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	if err := m.store.Set(CartKey, data); err != nil {
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return nil
}
