package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/panaderia/backend/internal/api/metrics"
	"github.com/panaderia/backend/internal/core/domain"
	"github.com/panaderia/backend/internal/core/ports"
)

// Authorize lets the request through only when the authenticated identity
// holds exactly the required role. It must run after Authenticate.
func Authorize(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := Identity(c)
			if !ok {
				metrics.GateDecisionsTotal.WithLabelValues(result(domain.ErrMissingToken)).Inc()
				return domain.ErrMissingToken
			}
			if id.Role != required {
				metrics.GateDecisionsTotal.WithLabelValues(result(domain.ErrForbidden)).Inc()
				return domain.ErrForbidden
			}
			metrics.GateDecisionsTotal.WithLabelValues(result(nil)).Inc()
			return next(c)
		}
	}
}

// RequireRole is Authenticate followed by Authorize(required).
func RequireRole(verifier ports.TokenVerifier, required domain.Role) echo.MiddlewareFunc {
	authn := Authenticate(verifier)
	authz := Authorize(required)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return authn(authz(next))
	}
}
