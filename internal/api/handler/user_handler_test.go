package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/parfumerie/storefront/internal/api/middleware"
	"github.com/parfumerie/storefront/internal/core/domain"
)

func TestUserHandler_Signin_Success(t *testing.T) {
	stub := &stubUserService{
		verifyFn: func(_ context.Context, email, password string) (*domain.User, error) {
			if email != "ana@x.com" || password != "pw123456" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return &domain.User{ID: "u1", Name: "Ana", Email: email, PasswordHash: "hash"}, nil
		},
	}
	h := NewUserHandler(stub, stubTokenService{})

	c, rec := newJSONContext(http.MethodPost, "/api/users/signin", `{"email":"ana@x.com","password":"pw123456"}`)
	if err := h.Signin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["_id"] != "u1" || resp["name"] != "Ana" || resp["isAdmin"] != false || resp["token"] != "token-u1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestUserHandler_Signin_InvalidCredentials(t *testing.T) {
	stub := &stubUserService{
		verifyFn: func(context.Context, string, string) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewUserHandler(stub, stubTokenService{})

	c, _ := newJSONContext(http.MethodPost, "/api/users/signin", `{"email":"a@b.c","password":"x"}`)
	if err := h.Signin(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserHandler_Signup_Validation(t *testing.T) {
	stub := &stubUserService{
		createFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub, stubTokenService{})

	c, _ := newJSONContext(http.MethodPost, "/api/users/signup", `{"name":"Ana","email":"nope"}`)
	err := h.Signup(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Signup_Duplicate(t *testing.T) {
	stub := &stubUserService{
		createFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	h := NewUserHandler(stub, stubTokenService{})

	c, _ := newJSONContext(http.MethodPost, "/api/users/signup", `{"name":"Ana","email":"ana@x.com","password":"pw"}`)
	if err := h.Signup(c); err != domain.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	stub := &stubUserService{
		updateProfileFn: func(_ context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("expected caller id u1, got %s", userID)
			}
			if patch.Name != "Ana B" || patch.Email != "" || patch.Password != "" {
				t.Fatalf("unexpected patch: %+v", patch)
			}
			return &domain.User{ID: "u1", Name: "Ana B", Email: "ana@x.com"}, nil
		},
	}
	h := NewUserHandler(stub, stubTokenService{})

	c, rec := newJSONContext(http.MethodPut, "/api/users/profile", `{"name":"Ana B"}`)
	middleware.WithClaims(c, &domain.Claims{UserID: "u1"})

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Name != "Ana B" || resp.Token == "" {
		t.Fatalf("expected refreshed identity, got %+v", resp)
	}
}

func TestUserHandler_UpdateProfile_NoClaims(t *testing.T) {
	h := NewUserHandler(&stubUserService{}, stubTokenService{})

	c, _ := newJSONContext(http.MethodPut, "/api/users/profile", `{}`)
	if err := h.UpdateProfile(c); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUserHandler_Update(t *testing.T) {
	stub := &stubUserService{
		adminUpdateFn: func(_ context.Context, userID string, patch domain.AdminPatch) (*domain.User, error) {
			if userID != "u2" || !patch.IsAdmin {
				t.Fatalf("unexpected call: %s %+v", userID, patch)
			}
			return &domain.User{ID: "u2", IsAdmin: true}, nil
		},
	}
	h := NewUserHandler(stub, stubTokenService{})

	c, rec := newJSONContext(http.MethodPut, "/api/users/u2", `{"isAdmin":true}`)
	c.SetParamNames("id")
	c.SetParamValues("u2")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp userUpdatedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "User Updated" || resp.User == nil || !resp.User.IsAdmin {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(_ context.Context, userID string) error {
			if userID == "admin" {
				return domain.ErrProtectedAccount
			}
			return nil
		},
	}
	h := NewUserHandler(stub, stubTokenService{})

	c, _ := newJSONContext(http.MethodDelete, "/api/users/admin", "")
	c.SetParamNames("id")
	c.SetParamValues("admin")
	if err := h.Delete(c); err != domain.ErrProtectedAccount {
		t.Fatalf("expected ErrProtectedAccount, got %v", err)
	}

	c, rec := newJSONContext(http.MethodDelete, "/api/users/u2", "")
	c.SetParamNames("id")
	c.SetParamValues("u2")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "User Deleted") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
