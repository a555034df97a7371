package domain

import "errors"

// Bad request.
var (
	ErrIdentifierRequired = errors.New("email or username required")
	ErrCredentialRequired = errors.New("password required")
	ErrInvalidID          = errors.New("invalid id")
	ErrValidation         = errors.New("validation failed")
)

// Authentication and authorization.
var (
	ErrPrincipalNotFound = errors.New("principal not found")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrMissingToken      = errors.New("missing token")
	ErrInvalidToken      = errors.New("invalid token")
	ErrForbidden         = errors.New("role not allowed")
)

// Store outcomes.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("duplicate key")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// NotFoundError carries the user-facing message for a missing document and
// matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound returns a *NotFoundError with the given message.
func NotFound(msg string) error {
	return &NotFoundError{Msg: msg}
}

// ValidationError carries a user-facing description of bad input and
// matches ErrValidation with errors.Is.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid returns a *ValidationError with the given detail.
func Invalid(detail string) error {
	return &ValidationError{Detail: detail}
}

// Messages for the resources the API exposes.
const (
	MsgClientNotFound   = "Cliente no encontrado"
	MsgAdminNotFound    = "Administrador no encontrado"
	MsgLocationNotFound = "Ubicación no encontrada"
	MsgCategoryNotFound = "Categoría no encontrada"
	MsgSupplyNotFound   = "Insumo no encontrado"
	MsgProductNotFound  = "Producto no encontrado"
	MsgOrderNotFound    = "Pedido no encontrado"
	MsgBranchNotFound   = "Sucursal no encontrada"
)
