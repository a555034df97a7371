package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/panaderia/backend/internal/api/metrics"
	"github.com/panaderia/backend/internal/core/domain"
	"github.com/panaderia/backend/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a client (by correo) or an administrator (by usuario)
// and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credenciales"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  ErrorBody
// @Failure      401   {object}  ErrorBody
// @Failure      404   {object}  ErrorBody
// @Failure      500   {object}  ErrorBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), domain.LoginInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	metrics.LoginsTotal.WithLabelValues(loginRole(req), loginResult(err)).Inc()
	if err != nil {
		return fail("Error al autenticar", err)
	}

	return c.JSON(http.StatusOK, loginResponse{Message: "Autenticación exitosa", Token: res.Token})
}

// loginRole labels an attempt by the identifier presented; email wins, as it
// does in the login flow.
func loginRole(req loginRequest) string {
	switch {
	case req.Email != "":
		return domain.RoleClient.String()
	case req.Username != "":
		return domain.RoleAdministrator.String()
	default:
		return "unknown"
	}
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrIdentifierRequired), errors.Is(err, domain.ErrCredentialRequired):
		return "bad_request"
	case errors.Is(err, domain.ErrPrincipalNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidCredential):
		return "invalid_credential"
	default:
		return "error"
	}
}
