package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/panaderia/backend/internal/api/handler"
	"github.com/panaderia/backend/internal/core/domain"
)

const internalMessage = "Error interno del servidor"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status and Spanish message.
//   - Logs internal faults and answers 500 with the handler's message.
//   - Renders the envelope {"message": ..., "error": ...}; error is set for 500 only.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorBody) {
	var (
		nf *domain.NotFoundError
		ve *domain.ValidationError
		he *echo.HTTPError
	)

	switch {
	case errors.Is(err, domain.ErrIdentifierRequired):
		return http.StatusBadRequest, handler.ErrorBody{Message: "Se requiere correo o usuario"}
	case errors.Is(err, domain.ErrCredentialRequired):
		return http.StatusBadRequest, handler.ErrorBody{Message: "Se requiere contraseña"}
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, handler.ErrorBody{Message: "ID inválido"}
	case errors.As(err, &ve):
		return http.StatusBadRequest, handler.ErrorBody{Message: ve.Detail}
	case errors.Is(err, domain.ErrPrincipalNotFound):
		return http.StatusNotFound, handler.ErrorBody{Message: "Usuario no encontrado"}
	case errors.As(err, &nf):
		return http.StatusNotFound, handler.ErrorBody{Message: nf.Msg}
	case errors.Is(err, domain.ErrInvalidCredential):
		return http.StatusUnauthorized, handler.ErrorBody{Message: "Contraseña incorrecta"}
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusUnauthorized, handler.ErrorBody{Message: "Token no proporcionado"}
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, handler.ErrorBody{Message: "Token inválido"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, handler.ErrorBody{Message: "Acceso denegado: No tienes el rol requerido"}
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict, handler.ErrorBody{Message: "Registro duplicado"}
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict, handler.ErrorBody{Message: "Stock insuficiente"}
	case errors.As(err, &he):
		// Echo's own errors: unknown route, method not allowed, unsupported media type.
		return he.Code, handler.ErrorBody{Message: fmt.Sprintf("%v", he.Message)}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	body := handler.ErrorBody{Message: internalMessage, Error: err.Error()}
	var f *handler.Failure
	if errors.As(err, &f) {
		body = handler.ErrorBody{Message: f.Message, Error: f.Err.Error()}
	}
	return http.StatusInternalServerError, body
}
