package ports

import "github.com/panaderia/backend/internal/core/domain"

// FieldProtector turns sensitive plaintext into its stored form.
//
// Seal/Reveal handle recoverable fields (phone, email, username). Index gives
// the deterministic key used to look a document up by one of those fields.
// HashCredential/VerifyCredential handle passwords.
type FieldProtector interface {
	Scheme() string
	Seal(plaintext string) (string, error)
	Reveal(stored string) (string, error)
	Index(plaintext string) string
	HashCredential(plaintext string) (string, error)
	VerifyCredential(stored, candidate string) bool
}

// TokenIssuer mints bearer tokens for authenticated principals.
type TokenIssuer interface {
	Issue(subjectID string, role domain.Role) (string, error)
}

// TokenVerifier checks a bearer token and returns the identity it carries.
// Failures are domain.ErrMissingToken or domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}
