package domain

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Role is the closed set of principal kinds. The zero value is not a role.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleClient
	RoleAdministrator
)

// ErrUnknownRole is returned when decoding a value outside the enumeration.
var ErrUnknownRole = errors.New("unknown role")

// String returns the wire and storage form ("cliente", "administrador").
func (r Role) String() string {
	switch r {
	case RoleClient:
		return "cliente"
	case RoleAdministrator:
		return "administrador"
	default:
		return "desconocido"
	}
}

// Valid reports whether r is a member of the enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleAdministrator:
		return true
	default:
		return false
	}
}

// ParseRole maps the stored form back to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "cliente":
		return RoleClient, nil
	case "administrador":
		return RoleAdministrator, nil
	default:
		return RoleUnknown, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalBSONValue stores the role as its string form so documents stay
// readable and compatible with existing data.
func (r Role) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !r.Valid() {
		return 0, nil, fmt.Errorf("%w: %d", ErrUnknownRole, uint8(r))
	}
	return bson.MarshalValue(r.String())
}

func (r *Role) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	s, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("%w: bson type %s", ErrUnknownRole, t)
	}
	return r.UnmarshalText([]byte(s))
}

// Identity is what a verified token proves about its bearer.
type Identity struct {
	SubjectID string
	Role      Role
}
