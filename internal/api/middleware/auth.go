package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/parfumerie/storefront/internal/core/domain"
	"github.com/parfumerie/storefront/internal/core/ports"
)

const claimsKey = "claims"

// Auth validates the bearer token and stores the verified claims on the
// context. Missing or malformed headers fail with domain.ErrUnauthorized; a
// bad or expired token fails with the error reported by tokens.Verify.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrUnauthorized
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return domain.ErrUnauthorized
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return err
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Auth.
func ClaimsFrom(c echo.Context) (*domain.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*domain.Claims)
	return claims, ok && claims != nil
}

// WithClaims stores claims on the context as Auth would.
func WithClaims(c echo.Context, claims *domain.Claims) {
	c.Set(claimsKey, claims)
}
