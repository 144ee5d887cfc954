package storefront

import (
	"context"
	"net/http"
	"net/url"
)

// Account is a user record as the admin endpoints return it.
type Account struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// ProductInput is the editable part of a product.
type ProductInput struct {
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Price        float64 `json:"price"`
	Image        string  `json:"image"`
	Category     string  `json:"category"`
	Brand        string  `json:"brand"`
	CountInStock int     `json:"countInStock"`
	Description  string  `json:"description"`
}

// The calls below need an admin token.

// CreateProduct inserts a placeholder product the admin then edits.
func (c *Client) CreateProduct(ctx context.Context, token string) (*Product, error) {
	var out struct {
		Product Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/products", token, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, token, id string, in ProductInput) error {
	return c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), token, in, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), token, nil, nil)
}

func (c *Client) Users(ctx context.Context, token string) ([]Account, error) {
	var out []Account
	if err := c.do(ctx, http.MethodGet, "/api/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) User(ctx context.Context, token, id string) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser edits another account. An empty name or email keeps the stored
// value; isAdmin is always applied.
func (c *Client) UpdateUser(ctx context.Context, token, id, name, email string, isAdmin bool) (*Account, error) {
	body := struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		IsAdmin bool   `json:"isAdmin"`
	}{name, email, isAdmin}
	var out struct {
		User Account `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), token, body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), token, nil, nil)
}
