package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultClientTimeout = 10 * time.Second

// APIError is a non-2xx response. Message is the server's {message} body
// when one was sent.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("storefront api: status %d", e.Status)
	}
	return fmt.Sprintf("storefront api: status %d: %s", e.Status, e.Message)
}

// Client calls the storefront REST API. Calls are made once; failures are
// returned to the caller without retry.
type Client struct {
	baseURL string
	http    *http.Client
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default client, which has a 10s timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultClientTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product fetches a single product, used for live stock checks.
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProductBySlug(ctx context.Context, slug string) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodGet, "/api/products/slug/"+url.PathEscape(slug), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search filters by name fragment and category; empty values match all.
func (c *Client) Search(ctx context.Context, query, category string) ([]Product, error) {
	q := url.Values{}
	if query != "" {
		q.Set("query", query)
	}
	if category != "" {
		q.Set("category", category)
	}
	path := "/api/products/search"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out struct {
		Products []Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/api/products/categories", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*UserInfo, error) {
	body := map[string]string{"email": email, "password": password}
	var out UserInfo
	if err := c.do(ctx, http.MethodPost, "/api/users/signin", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SignUp(ctx context.Context, name, email, password string) (*UserInfo, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out UserInfo
	if err := c.do(ctx, http.MethodPost, "/api/users/signup", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile changes the caller's own account. Empty fields are left as
// they are on the server.
func (c *Client) UpdateProfile(ctx context.Context, token, name, email, password string) (*UserInfo, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out UserInfo
	if err := c.do(ctx, http.MethodPut, "/api/users/profile", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&msg) == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
