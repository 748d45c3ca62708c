package service

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retro-accessories/model"
	"retro-accessories/store"
)

var (
	beltClip  = model.Accessory{ID: "a1", Name: "Holo Belt Clip", Price: 19.99}
	organizer = model.Accessory{ID: "a2", Name: "Neon Cable Organizer", Price: 12.5}
	keycaps   = model.Accessory{ID: "a3", Name: "Retro Keycap Set", Price: 34.5}
)

// flakyStore fails writes while failWrites is set.
type flakyStore struct {
	*store.MemoryStore
	failWrites bool
	writes     int
}

var errQuota = errors.New("quota exceeded")

func (s *flakyStore) Set(key string, data []byte) error {
	s.writes++
	if s.failWrites {
		return errQuota
	}
	return s.MemoryStore.Set(key, data)
}

func (s *flakyStore) Delete(key string) error {
	s.writes++
	if s.failWrites {
		return errQuota
	}
	return s.MemoryStore.Delete(key)
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: store.NewMemoryStore()}
}

func TestCartStartsEmpty(t *testing.T) {
	m := NewCartManager(store.NewMemoryStore(), nil)
	st := m.State()
	assert.Empty(t, st.Items)
	assert.NotNil(t, st.Items)
	assert.Zero(t, st.Subtotal)
	assert.Zero(t, st.Shipping)
	assert.Zero(t, st.Total)
	assert.Zero(t, st.Count)
}

func TestAddItemMergesSameID(t *testing.T) {
	m := NewCartManager(store.NewMemoryStore(), nil)

	require.NoError(t, m.AddItem(beltClip, 1))
	require.NoError(t, m.AddItem(organizer, 1))
	require.NoError(t, m.AddItem(beltClip, 2))
	require.NoError(t, m.AddItem(beltClip, 4))

	st := m.State()
	require.Len(t, st.Items, 2)
	assert.Equal(t, "a1", st.Items[0].ID, "insertion order is kept")
	assert.Equal(t, 7, st.Items[0].Qty)
	assert.Equal(t, 1, st.Items[1].Qty)
	assert.Equal(t, 8, st.Count)
}

func TestAddItemSumsLargeQuantities(t *testing.T) {
	m := NewCartManager(store.NewMemoryStore(), nil)
	require.NoError(t, m.AddItem(beltClip, 9999))
	require.NoError(t, m.AddItem(beltClip, 5))

	st := m.State()
	require.Len(t, st.Items, 1)
	assert.Equal(t, 10004, st.Items[0].Qty)
	assert.Equal(t, 10004, st.Count)
}

func TestAddItemSnapshotsNameAndPrice(t *testing.T) {
	m := NewCartManager(store.NewMemoryStore(), nil)
	require.NoError(t, m.AddItem(beltClip, 1))

	repriced := beltClip
	repriced.Price = 99
	repriced.Name = "Renamed"
	require.NoError(t, m.AddItem(repriced, 1))

	st := m.State()
	require.Len(t, st.Items, 1)
	assert.Equal(t, "Holo Belt Clip", st.Items[0].Name)
	assert.Equal(t, 19.99, st.Items[0].Price)
	assert.Equal(t, 2, st.Items[0].Qty)
}

func TestAddItemCoercesQuantity(t *testing.T) {
	m := NewCartManager(store.NewMemoryStore(), nil)
	require.NoError(t, m.AddItem(beltClip, 0))
	require.NoError(t, m.AddItem(organizer, -3))

	st := m.State()
	assert.Equal(t, 1, st.Items[0].Qty)
	assert.Equal(t, 1, st.Items[1].Qty)
}

func TestUpdateQuantity(t *testing.T) {
	m := NewCartManager(store.NewMemoryStore(), nil)
	require.NoError(t, m.AddItem(beltClip, 3))

	tests := []struct {
		name string
		qty  int
		want int
	}{
		{"positive", 5, 5},
		{"one", 1, 1},
		{"zero clamps", 0, 1},
		{"negative clamps", -2, 1},
		{"fraction floors", Quantity(2.9), 2},
		{"large value kept", 12000, 12000},
		{"non-numeric", ParseQuantity("abc"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, m.UpdateQuantity("a1", tt.qty))
			assert.Equal(t, tt.want, m.State().Items[0].Qty)
		})
	}
}

func TestUpdateQuantityUnknownIDIsNoop(t *testing.T) {
	m := NewCartManager(store.NewMemoryStore(), nil)
	require.NoError(t, m.AddItem(beltClip, 2))

	require.NoError(t, m.UpdateQuantity("zz", 9))

	st := m.State()
	require.Len(t, st.Items, 1)
	assert.Equal(t, 2, st.Items[0].Qty)
}

func TestRemoveThenAddStartsFresh(t *testing.T) {
	m := NewCartManager(store.NewMemoryStore(), nil)
	require.NoError(t, m.AddItem(beltClip, 5))
	require.NoError(t, m.AddItem(organizer, 1))

	require.NoError(t, m.RemoveItem("a1"))
	require.NoError(t, m.RemoveItem("a1"))
	require.NoError(t, m.AddItem(beltClip, 2))

	st := m.State()
	require.Len(t, st.Items, 2)
	assert.Equal(t, "a2", st.Items[0].ID)
	assert.Equal(t, "a1", st.Items[1].ID)
	assert.Equal(t, 2, st.Items[1].Qty)
}

func TestClearIsIdempotent(t *testing.T) {
	m := NewCartManager(store.NewMemoryStore(), nil)
	require.NoError(t, m.AddItem(keycaps, 2))

	for i := 0; i < 2; i++ {
		require.NoError(t, m.Clear())
		st := m.State()
		assert.Empty(t, st.Items)
		assert.Zero(t, st.Subtotal)
		assert.Zero(t, st.Shipping)
	}
}

func TestShippingBoundaries(t *testing.T) {
	assert.Equal(t, 0.0, Shipping(0))
	assert.Equal(t, 3.50, Shipping(1.00))
	assert.Equal(t, 9.99, Shipping(1000.00))
	assert.Equal(t, 4.00, Shipping(50.00))
}

func TestTotals(t *testing.T) {
	items := []model.CartLineItem{
		{ID: "a1", Price: 19.99, Qty: 2},
		{ID: "a3", Price: 34.5, Qty: 1},
	}
	st := Totals(items)

	clip, caps := 19.99, 34.5
	subtotal := clip*2 + caps
	assert.Equal(t, subtotal, st.Subtotal)
	shipping := float64(subtotal * 0.08)
	assert.Equal(t, shipping, st.Shipping)
	assert.Equal(t, subtotal+shipping, st.Total)
	assert.Equal(t, 3, st.Count)
}

func TestCartPersistenceRoundTrip(t *testing.T) {
	st := store.NewMemoryStore()
	m := NewCartManager(st, nil)
	require.NoError(t, m.AddItem(keycaps, 1))
	require.NoError(t, m.AddItem(beltClip, 3))
	require.NoError(t, m.AddItem(organizer, 2))
	require.NoError(t, m.UpdateQuantity("a1", 4))

	before := m.State()
	after := NewCartManager(st, nil).State()

	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("restored cart differs (-before +after):\n%s", diff)
	}
}

func TestCartWritesAfterEveryMutation(t *testing.T) {
	fs := newFlakyStore()
	m := NewCartManager(fs, nil)

	_ = m.AddItem(beltClip, 1)
	_ = m.UpdateQuantity("a1", 3)
	_ = m.UpdateQuantity("missing", 3)
	_ = m.RemoveItem("missing")
	_ = m.RemoveItem("a1")
	_ = m.Clear()

	assert.Equal(t, 6, fs.writes)
	data, found, err := fs.Get(CartKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "[]", string(data))
}

func TestCartMalformedDataYieldsEmpty(t *testing.T) {
	for _, raw := range []string{`{not json`, `null`, `{"id":"a1"}`, `[{"id":"a1","qty":"lots"}]`} {
		st := store.NewMemoryStore()
		require.NoError(t, st.Set(CartKey, []byte(raw)))

		m := NewCartManager(st, nil)
		assert.Empty(t, m.State().Items, "input %s", raw)
	}
}

func TestCartRestoreNormalizesRows(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(CartKey, []byte(`[
		{"id":"a1","name":"Holo Belt Clip","price":19.99,"qty":2},
		{"id":"","name":"ghost","price":1,"qty":1},
		{"id":"a2","name":"Neon Cable Organizer","price":12.5,"qty":0},
		{"id":"a1","name":"Holo Belt Clip","price":19.99,"qty":3}
	]`)))

	items := NewCartManager(st, nil).State().Items
	want := []model.CartLineItem{
		{ID: "a1", Name: "Holo Belt Clip", Price: 19.99, Qty: 5},
		{ID: "a2", Name: "Neon Cable Organizer", Price: 12.5, Qty: 1},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
}

func TestCartRestoreFloorsFractionalQuantities(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(CartKey, []byte(`[
		{"id":"a1","name":"Holo Belt Clip","price":19.99,"qty":2},
		{"id":"a2","name":"Neon Cable Organizer","price":12.5,"qty":2.5},
		{"id":"a3","name":"Retro Keycap Set","price":34.5,"qty":1.5}
	]`)))

	items := NewCartManager(st, nil).State().Items
	want := []model.CartLineItem{
		{ID: "a1", Name: "Holo Belt Clip", Price: 19.99, Qty: 2},
		{ID: "a2", Name: "Neon Cable Organizer", Price: 12.5, Qty: 2},
		{ID: "a3", Name: "Retro Keycap Set", Price: 34.5, Qty: 1},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
}

func TestCartStoreFailureKeepsMemoryState(t *testing.T) {
	fs := newFlakyStore()
	fs.failWrites = true
	m := NewCartManager(fs, nil)

	err := m.AddItem(beltClip, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotPersisted)
	assert.ErrorIs(t, err, errQuota)

	st := m.State()
	require.Len(t, st.Items, 1)
	assert.Equal(t, 2, st.Items[0].Qty)

	_, found, _ := fs.Get(CartKey)
	assert.False(t, found)
}

func TestCartUnreadableStoreStartsEmpty(t *testing.T) {
	m := NewCartManager(brokenStore{}, nil)
	assert.Empty(t, m.State().Items)
}

func TestDeductRemovesOnlyOrderedQuantities(t *testing.T) {
	m := NewCartManager(store.NewMemoryStore(), nil)
	require.NoError(t, m.AddItem(beltClip, 2))
	require.NoError(t, m.AddItem(organizer, 1))
	ordered := m.State().Items

	require.NoError(t, m.AddItem(beltClip, 1))
	require.NoError(t, m.AddItem(keycaps, 1))
	require.NoError(t, m.Deduct(ordered))

	want := []model.CartLineItem{
		{ID: "a1", Name: "Holo Belt Clip", Price: 19.99, Qty: 1},
		{ID: "a3", Name: "Retro Keycap Set", Price: 34.5, Qty: 1},
	}
	if diff := cmp.Diff(want, m.State().Items); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
}

func TestCartStateIsASnapshot(t *testing.T) {
	m := NewCartManager(store.NewMemoryStore(), nil)
	require.NoError(t, m.AddItem(beltClip, 1))

	st := m.State()
	st.Items[0].Qty = 50

	assert.Equal(t, 1, m.State().Items[0].Qty)
}

type brokenStore struct{}

func (brokenStore) Get(string) ([]byte, bool, error) { return nil, false, errors.New("disk gone") }
func (brokenStore) Set(string, []byte) error         { return errors.New("disk gone") }
func (brokenStore) Delete(string) error              { return errors.New("disk gone") }
func (brokenStore) Close() error                     { return nil }
