package domain

import "time"

// LoginInput is what a caller presents to authenticate. Email selects a
// client, Username an administrator; Email wins when both are set.
type LoginInput struct {
	Email    string
	Username string
	Password string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token     string
	SubjectID string
	Role      Role
}

// NewClient carries the plaintext fields of a client registration.
type NewClient struct {
	Name      string
	Surnames  string
	Phone     string
	BirthDate time.Time
	Email     string
	Password  string
}

// ClientPatch holds the fields an update supplies. Nil means unchanged.
type ClientPatch struct {
	Name      *string
	Surnames  *string
	Phone     *string
	BirthDate *time.Time
	Email     *string
	Password  *string
}

type NewAdministrator struct {
	Name     string
	Surnames string
	Username string
	Phone    string
	Password string
}

type AdministratorPatch struct {
	Name     *string
	Surnames *string
	Username *string
	Phone    *string
	Password *string
}
