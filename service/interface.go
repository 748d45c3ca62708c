package service

import (
	"context"

	"retro-accessories/model"
)

// Authenticator validates credentials and issues a session token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (model.AuthResult, error)
	Register(ctx context.Context, email, password string) (model.AuthResult, error)
}

// Catalog lists and looks up accessories.
type Catalog interface {
	ListAccessories(ctx context.Context, query string) ([]model.Accessory, error)
	GetAccessory(ctx context.Context, id string) (model.Accessory, error)
}

type Orders interface {
	PlaceOrder(ctx context.Context, token string, req model.OrderRequest) (model.Order, error)
	ListOrders(ctx context.Context, token string) ([]model.Order, error)
}

type Profiles interface {
	GetProfile(ctx context.Context, token string) (model.Profile, error)
	UpdateProfile(ctx context.Context, token string, p model.Profile) (model.Profile, error)
}

type Admin interface {
	ListInventory(ctx context.Context, token string) ([]model.InventoryItem, error)
	UpdateInventory(ctx context.Context, token, id string, stock int) (model.InventoryItem, error)
	ListAllOrders(ctx context.Context, token string) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, token, id string, status model.OrderStatus) (model.Order, error)
}

// Backend is everything the storefront needs from the outside world. The
// demo package and the API client both implement it.
type Backend interface {
	Authenticator
	Catalog
	Orders
	Profiles
	Admin
}

type ServiceInterface interface {
	ListAccessories(ctx context.Context, query string) ([]model.Accessory, error)
	GetAccessory(ctx context.Context, id string) (model.Accessory, error)

	Cart() model.CartState
	AddToCart(ctx context.Context, id string, qty int) (model.CartState, error)
	UpdateCartQuantity(id string, qty int) model.CartState
	RemoveFromCart(id string) model.CartState
	ClearCart() model.CartState

	Session() model.SessionState
	Login(ctx context.Context, email, password string) (model.SessionState, error)
	Register(ctx context.Context, email, password string) (model.SessionState, error)
	Logout() model.SessionState
	ClearSessionError() model.SessionState

	Checkout(ctx context.Context, customer model.Customer) (model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetProfile(ctx context.Context) (model.Profile, error)
	UpdateProfile(ctx context.Context, p model.Profile) (model.Profile, error)

	AdminListInventory(ctx context.Context) ([]model.InventoryItem, error)
	AdminUpdateStock(ctx context.Context, id string, stock int) (model.InventoryItem, error)
	AdminListOrders(ctx context.Context) ([]model.Order, error)
	AdminUpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (model.Order, error)
}
