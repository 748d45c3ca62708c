package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"retro-accessories/model"
)

// --- catalog ---

func (c *Client) ListAccessories(ctx context.Context, query string) ([]model.Accessory, error) {
	path := "/accessories"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	var out []model.Accessory
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAccessory(ctx context.Context, id string) (model.Accessory, error) {
	var out model.Accessory
	err := c.do(ctx, http.MethodGet, "/accessories/"+url.PathEscape(id), "", nil, &out)
	return out, err
}

// --- auth ---

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (model.AuthResult, error) {
	return c.authenticate(ctx, "/auth/login", email, password)
}

func (c *Client) Register(ctx context.Context, email, password string) (model.AuthResult, error) {
	return c.authenticate(ctx, "/auth/register", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (model.AuthResult, error) {
	if email == "" || password == "" {
		return model.AuthResult{}, model.ErrInvalidCredentials
	}
	var out model.AuthResult
	err := c.do(ctx, http.MethodPost, path, "", credentials{Email: email, Password: password}, &out)
	return out, err
}

// --- profile ---

func (c *Client) GetProfile(ctx context.Context, token string) (model.Profile, error) {
	var out model.Profile
	err := c.do(ctx, http.MethodGet, "/me", token, nil, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, token string, p model.Profile) (model.Profile, error) {
	var out model.Profile
	err := c.do(ctx, http.MethodPut, "/me", token, p, &out)
	return out, err
}

// --- orders ---

func (c *Client) PlaceOrder(ctx context.Context, token string, req model.OrderRequest) (model.Order, error) {
	var out model.Order
	err := c.do(ctx, http.MethodPost, "/orders", token, req, &out)
	return out, err
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]model.Order, error) {
	var out []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- admin ---

func (c *Client) ListInventory(ctx context.Context, token string) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	if err := c.do(ctx, http.MethodGet, "/admin/inventory", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type stockPatch struct {
	Stock int `json:"stock"`
}

func (c *Client) UpdateInventory(ctx context.Context, token, id string, stock int) (model.InventoryItem, error) {
	var out model.InventoryItem
	err := c.do(ctx, http.MethodPatch, "/admin/inventory/"+url.PathEscape(id), token, stockPatch{Stock: stock}, &out)
	return out, err
}

func (c *Client) ListAllOrders(ctx context.Context, token string) ([]model.Order, error) {
	var out []model.Order
	if err := c.do(ctx, http.MethodGet, "/admin/orders", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type statusBody struct {
	Status model.OrderStatus `json:"status"`
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token, id string, status model.OrderStatus) (model.Order, error) {
	var out model.Order
	path := fmt.Sprintf("/admin/orders/%s/status", url.PathEscape(id))
	err := c.do(ctx, http.MethodPost, path, token, statusBody{Status: status}, &out)
	return out, err
}
