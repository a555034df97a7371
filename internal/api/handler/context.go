package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/panaderia/backend/internal/core/domain"
)

// Failure wraps an error with the message a client sees if the error turns
// out to be an internal fault. Known domain errors keep their own mapping.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message + ": " + f.Err.Error() }

func (f *Failure) Unwrap() error { return f.Err }

func fail(msg string, err error) error {
	return &Failure{Message: msg, Err: err}
}

// paramID parses the :id path parameter.
func paramID(c echo.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return id, nil
}

// bind decodes and validates the request body into req.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusBadRequest {
			return domain.Invalid("Cuerpo de la solicitud inválido")
		}
		return err
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}

func parseIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(field, s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, domain.Invalid(field + " debe ser una fecha (AAAA-MM-DD)")
}
