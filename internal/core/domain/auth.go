package domain

import (
	"errors"
	"time"
)

var (
	ErrUnauthorized = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrForbidden    = errors.New("admin role required")
)

// Claims is the identity embedded in a signed bearer token. Callers trust it
// without re-reading the store, so it may lag behind the user record.
type Claims struct {
	UserID    string
	Name      string
	Email     string
	IsAdmin   bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}
