// Package middleware provides the bearer-token gate and authorization
// guards shared by the protected routes.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nd199/movie-booking/internal/handler"
	"github.com/nd199/movie-booking/internal/model"
	"github.com/nd199/movie-booking/internal/utils"
)

// Context keys set by Authenticate once per request.
const (
	CtxCustomerID = "customer_id"
	CtxEmail      = "email"
	CtxRoles      = "roles"
)

// AccountLoader resolves a token subject to its account. Satisfied by
// *repository.CustomerRepo.
type AccountLoader interface {
	GetByEmail(ctx context.Context, email string) (model.Customer, error)
}

// Authenticate extracts a bearer token when one is present, verifies it,
// loads the referenced account and attaches its identity and role names to
// the request context. Requests without a token, or with an invalid one,
// are forwarded unchanged: the route-level guards decide whether an
// unauthenticated request is acceptable, which keeps the 401/403 split out
// of this layer.
func Authenticate(tokens *utils.TokenIssuer, accounts AccountLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return next(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			subject, err := tokens.Subject(raw)
			if err != nil {
				return next(c)
			}
			account, err := accounts.GetByEmail(c.Request().Context(), subject)
			if err != nil {
				return next(c)
			}
			// Subject must match the loaded account's username; anything
			// else leaves the request unauthenticated.
			if !tokens.IsValid(raw, account.Email) {
				return next(c)
			}
			c.Set(CtxCustomerID, account.ID)
			c.Set(CtxEmail, account.Email)
			c.Set(CtxRoles, account.RoleNames())
			return next(c)
		}
	}
}

// RequireAuth rejects requests that reached a protected route without an
// authenticated identity.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(CtxEmail).(string); !ok {
				return handler.Fail(c, http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

// RequireRole enforces that the authenticated identity holds at least one
// of the given roles. It assumes Authenticate ran earlier in the chain.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			held, ok := c.Get(CtxRoles).([]string)
			if !ok {
				return handler.Fail(c, http.StatusUnauthorized, "authentication required")
			}
			for _, r := range held {
				if allowed[r] {
					return next(c)
				}
			}
			return handler.Fail(c, http.StatusForbidden, "insufficient role")
		}
	}
}
