package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is a registered customer. Phone, Email and Credential hold the
// protected form produced by the configured field protector; EmailIndex is
// the deterministic lookup key for Email.
type Client struct {
	ID         primitive.ObjectID `json:"_id"             bson:"_id,omitempty"`
	Name       string             `json:"nombre"          bson:"nombre"`
	Surnames   string             `json:"apellidos"       bson:"apellidos"`
	Phone      string             `json:"telefono"        bson:"telefono"`
	BirthDate  time.Time          `json:"fechaNacimiento" bson:"fechaNacimiento"`
	Email      string             `json:"correo"          bson:"correo"`
	EmailIndex string             `json:"-"               bson:"correoIndice"`
	Credential string             `json:"-"               bson:"contrasena"`
	Role       Role               `json:"rol"             bson:"rol"`
}

// Administrator is a back-office user identified by Username.
type Administrator struct {
	ID            primitive.ObjectID `json:"_id"       bson:"_id,omitempty"`
	Name          string             `json:"nombre"    bson:"nombre"`
	Surnames      string             `json:"apellidos" bson:"apellidos"`
	Username      string             `json:"usuario"   bson:"usuario"`
	UsernameIndex string             `json:"-"         bson:"usuarioIndice"`
	Phone         string             `json:"telefono"  bson:"telefono"`
	Credential    string             `json:"-"         bson:"contrasena"`
	Role          Role               `json:"rol"       bson:"rol"`
}

// Principal is the part of a Client or Administrator that authentication needs.
type Principal struct {
	ID         string
	Role       Role
	Credential string
}

// Principal returns the authentication view. The role follows from the
// collection the document lives in, not from the stored field.
func (c *Client) Principal() Principal {
	return Principal{ID: c.ID.Hex(), Role: RoleClient, Credential: c.Credential}
}

func (a *Administrator) Principal() Principal {
	return Principal{ID: a.ID.Hex(), Role: RoleAdministrator, Credential: a.Credential}
}
