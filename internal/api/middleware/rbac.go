package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/parfumerie/storefront/internal/api/metrics"
	"github.com/parfumerie/storefront/internal/core/domain"
	"github.com/parfumerie/storefront/internal/core/ports"
)

// RoleVerifier confirms a user's admin role against the store.
type RoleVerifier interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type storedRole struct {
	users ports.UserService
}

// StoredRole reads the admin flag from the user record.
func StoredRole(users ports.UserService) RoleVerifier {
	return storedRole{users: users}
}

func (s storedRole) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

// AdminOnly admits requests whose claims carry the admin role. It must run
// after Auth. A nil verifier trusts the token; otherwise the stored record
// must still be an admin, so a demotion takes effect before the token expires.
func AdminOnly(verifier RoleVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return domain.ErrUnauthorized
			}
			if !claims.IsAdmin {
				metrics.AdminDeniedTotal.Inc()
				return domain.ErrForbidden
			}

			if verifier != nil {
				isAdmin, err := verifier.IsAdmin(c.Request().Context(), claims.UserID)
				if err != nil {
					if errors.Is(err, domain.ErrUserNotFound) {
						return domain.ErrInvalidToken
					}
					return err
				}
				if !isAdmin {
					metrics.AdminDeniedTotal.Inc()
					return domain.ErrForbidden
				}
			}
			return next(c)
		}
	}
}
