package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/parfumerie/storefront/internal/core/domain"
)

func catalogStub() *stubProductService {
	return &stubProductService{products: []*domain.Product{
		{ID: "p1", Name: "JULIA", Slug: "julia", Category: "Femme", CountInStock: 5},
		{ID: "p2", Name: "DUO DES FLEURS", Slug: "duo-des-fleurs", Category: "Femme"},
	}}
}

func TestProductHandler_Search(t *testing.T) {
	stub := catalogStub()
	h := NewProductHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/api/products/search?query=jul&category=all", "")
	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.lastFilter.Query != "jul" || stub.lastFilter.Category != "all" {
		t.Fatalf("unexpected filter: %+v", stub.lastFilter)
	}

	var resp map[string][]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp["products"]) != 2 {
		t.Fatalf("expected products envelope, got %s", rec.Body.String())
	}
}

func TestProductHandler_GetBySlug(t *testing.T) {
	h := NewProductHandler(catalogStub())

	c, rec := newJSONContext(http.MethodGet, "/api/products/slug/julia", "")
	c.SetParamNames("slug")
	c.SetParamValues("julia")
	if err := h.GetBySlug(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"countInStock":5`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	c, _ = newJSONContext(http.MethodGet, "/api/products/slug/nope", "")
	c.SetParamNames("slug")
	c.SetParamValues("nope")
	if err := h.GetBySlug(c); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductHandler_Create(t *testing.T) {
	h := NewProductHandler(catalogStub())

	c, rec := newJSONContext(http.MethodPost, "/api/products", "")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp productCreatedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Product Created" || resp.Product == nil || resp.Product.ID != "new" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestProductHandler_Update(t *testing.T) {
	stub := catalogStub()
	h := NewProductHandler(stub)

	body := `{"name":"JULIA","slug":"julia","price":70,"image":"/images/julia.jpg","category":"Femme","brand":"Dior","countInStock":4,"description":"d"}`
	c, rec := newJSONContext(http.MethodPut, "/api/products/p1", body)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.lastUpdate.Price != 70 || stub.lastUpdate.CountInStock != 4 || stub.lastUpdate.Brand != "Dior" {
		t.Fatalf("unexpected fields: %+v", stub.lastUpdate)
	}
	if !strings.Contains(rec.Body.String(), "Product Updated") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestProductHandler_Update_Invalid(t *testing.T) {
	h := NewProductHandler(catalogStub())

	c, _ := newJSONContext(http.MethodPut, "/api/products/p1", `{"name":"x","slug":"x","countInStock":-2}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	var he *echo.HTTPError
	if err := h.Update(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestProductHandler_Delete_Missing(t *testing.T) {
	h := NewProductHandler(catalogStub())

	c, _ := newJSONContext(http.MethodDelete, "/api/products/zzz", "")
	c.SetParamNames("id")
	c.SetParamValues("zzz")
	if err := h.Delete(c); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestSeedHandler_Seed(t *testing.T) {
	h := NewSeedHandler(stubSeedService{})

	c, rec := newJSONContext(http.MethodGet, "/api/seed", "")
	if err := h.Seed(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "createdProducts") || !strings.Contains(body, "createdUsers") {
		t.Fatalf("unexpected body: %s", body)
	}
	if strings.Contains(body, "secret-hash") {
		t.Fatalf("password hash leaked: %s", body)
	}
}
