package demo_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retro-accessories/demo"
	"retro-accessories/model"
	"retro-accessories/service"
)

var _ service.Backend = (*demo.Backend)(nil)

func TestListAccessoriesSearch(t *testing.T) {
	b := demo.New(false, nil)
	ctx := context.Background()

	all, err := b.ListAccessories(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	carry, err := b.ListAccessories(ctx, "CARRY")
	require.NoError(t, err)
	require.Len(t, carry, 2)
	assert.Equal(t, "a1", carry[0].ID)
	assert.Equal(t, "a5", carry[1].ID)

	byName, err := b.ListAccessories(ctx, "keycap")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "a3", byName[0].ID)

	none, err := b.ListAccessories(ctx, "floppy")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetAccessory(t *testing.T) {
	b := demo.New(false, nil)

	a, err := b.GetAccessory(context.Background(), "a2")
	require.NoError(t, err)
	assert.Equal(t, "Neon Cable Organizer", a.Name)
	assert.Equal(t, 12.5, a.Price)

	_, err = b.GetAccessory(context.Background(), "zz")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLoginRules(t *testing.T) {
	b := demo.New(false, nil)
	ctx := context.Background()

	_, err := b.Login(ctx, "", "p")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	_, err = b.Register(ctx, "a@x.com", "")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	res, err := b.Login(ctx, "admin@x.com", "p")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, res.User.Role)
	assert.Regexp(t, `^demo-`, res.Token)

	res, err = b.Register(ctx, "user@x.com", "p")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, res.User.Role)
}

func TestLatencyHonoursCancellation(t *testing.T) {
	b := demo.New(true, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := b.Login(ctx, "user@x.com", "p")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPlaceOrderAndList(t *testing.T) {
	b := demo.New(false, nil)
	ctx := context.Background()

	items := []model.CartLineItem{{ID: "a2", Name: "Neon Cable Organizer", Price: 12.5, Qty: 2}}
	ord, err := b.PlaceOrder(ctx, "", model.OrderRequest{
		Customer: model.Customer{Name: "Demo Rider", Address: "1987 Neon Ave"},
		Items:    items,
		Subtotal: 25,
		Shipping: 3.5,
		Total:    28.5,
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^ord_[0-9a-f]{7}$`), ord.ID)
	assert.Equal(t, model.StatusPlaced, ord.Status)
	assert.Equal(t, 42, ord.EtaMinutes)
	assert.Equal(t, 28.5, ord.Total)
	assert.Equal(t, "Demo Rider", ord.Customer.Name)

	orders, err := b.ListOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "ord_demo_1", orders[0].ID)
	assert.Equal(t, model.StatusOutForDelivery, orders[0].Status)
	assert.Equal(t, "ord_demo_2", orders[1].ID)
	assert.Equal(t, ord.ID, orders[2].ID)
	assert.True(t, orders[1].CreatedAt.Before(orders[0].CreatedAt))
}

func TestProfileIsStateful(t *testing.T) {
	b := demo.New(false, nil)
	ctx := context.Background()

	p, err := b.GetProfile(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "demo@user.com", p.Email)
	assert.Equal(t, "555-0137", p.Phone)

	p.Name = "Night Rider"
	got, err := b.UpdateProfile(ctx, "", p)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	again, err := b.GetProfile(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Night Rider", again.Name)
}

func TestInventory(t *testing.T) {
	b := demo.New(false, nil)
	ctx := context.Background()

	inv, err := b.ListInventory(ctx, "")
	require.NoError(t, err)
	require.Len(t, inv, 6)
	for _, it := range inv {
		assert.Equal(t, 10, it.Stock, it.ID)
	}

	item, err := b.UpdateInventory(ctx, "", "a4", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Stock)
	assert.Equal(t, "Synthwave Lanyard", item.Name)

	inv, err = b.ListInventory(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, inv[3].Stock)

	_, err = b.UpdateInventory(ctx, "", "nope", 1)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = b.UpdateInventory(ctx, "", "a1", -2)
	assert.ErrorIs(t, err, model.ErrInvalidStock)
}

func TestUpdateOrderStatus(t *testing.T) {
	b := demo.New(false, nil)
	ctx := context.Background()

	ord, err := b.UpdateOrderStatus(ctx, "", "ord_demo_1", model.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelivered, ord.Status)

	all, err := b.ListAllOrders(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelivered, all[0].Status)

	_, err = b.UpdateOrderStatus(ctx, "", "ord_missing", model.StatusPacking)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = b.UpdateOrderStatus(ctx, "", "ord_demo_1", "LOST")
	assert.ErrorIs(t, err, model.ErrInvalidStatus)
}
