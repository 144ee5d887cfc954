package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrProtectedAccount   = errors.New("protected account cannot be deleted")
	ErrMissingField       = errors.New("name, email and password are required")
)

// User models a storefront account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProfilePatch carries a partial self-service update. Empty fields keep the
// stored value.
type ProfilePatch struct {
	Name     string
	Email    string
	Password string
}

// AdminPatch carries an admin edit of another account.
type AdminPatch struct {
	Name    string
	Email   string
	IsAdmin bool
}
