package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateProduct(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "Bearer admin", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"message":"Product Created","product":{"_id":"p9","name":"sample name 1"}}`))
	})

	p, err := c.CreateProduct(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, "p9", p.ID)
	assert.Equal(t, "sample name 1", p.Name)
}

func TestClient_UpdateProduct(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/products/p9", r.URL.Path)
		var in ProductInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "chanel", in.Slug)
		assert.Equal(t, 3, in.CountInStock)
		_, _ = w.Write([]byte(`{"message":"Product Updated"}`))
	})

	err := c.UpdateProduct(context.Background(), "admin", "p9", ProductInput{Name: "CHANEL", Slug: "chanel", CountInStock: 3})
	require.NoError(t, err)
}

func TestClient_DeleteProductNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Product Not Found"}`))
	})

	err := c.DeleteProduct(context.Background(), "admin", "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Product Not Found", apiErr.Message)
}

func TestClient_UsersNeedsAdmin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer admin" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"Invalid Admin Token"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"_id":"u1","name":"boutabia","isAdmin":true},{"_id":"u2","name":"Ana"}]`))
	})

	users, err := c.Users(context.Background(), "admin")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, users[0].IsAdmin)

	_, err = c.Users(context.Background(), "shopper")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestClient_UserAndUpdateUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/u2", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"_id":"u2","name":"Ana","email":"ana@x.com"}`))
		case http.MethodPut:
			var in map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, true, in["isAdmin"])
			_, _ = w.Write([]byte(`{"message":"User Updated","user":{"_id":"u2","name":"Ana","isAdmin":true}}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})

	u, err := c.User(context.Background(), "admin", "u2")
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", u.Email)

	updated, err := c.UpdateUser(context.Background(), "admin", "u2", "", "", true)
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
}

func TestClient_DeleteUserProtected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/users/u1", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Can Not Delete Admin User"}`))
	})

	err := c.DeleteUser(context.Background(), "admin", "u1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Can Not Delete Admin User", apiErr.Message)
}
