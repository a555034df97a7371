package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/panaderia/backend/internal/api/metrics"
	"github.com/panaderia/backend/internal/core/domain"
	"github.com/panaderia/backend/internal/core/ports"
)

const identityKey = "identity"

type ctxKey struct{}

// Authenticate verifies the bearer token and stores the identity it carries
// on both the echo context and the request context.
func Authenticate(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")

			id, err := verifier.Verify(token)
			if err != nil {
				metrics.GateDecisionsTotal.WithLabelValues(result(err)).Inc()
				return err
			}

			c.Set(identityKey, id)
			c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), id)))
			return next(c)
		}
	}
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFrom returns the identity stored by Authenticate, if any.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(domain.Identity)
	return id, ok
}

// Identity reads the identity from the echo context.
func Identity(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

func result(err error) string {
	switch {
	case err == nil:
		return "allowed"
	case errors.Is(err, domain.ErrMissingToken):
		return "missing_token"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "invalid_token"
	}
}
