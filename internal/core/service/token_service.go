package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/panaderia/backend/internal/core/domain"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = time.Hour

// TokenClaims is the signed payload: {id, rol, iat, exp}.
type TokenClaims struct {
	SubjectID string      `json:"id"`
	Role      domain.Role `json:"rol"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens with one secret.
// It keeps no state; a token stays valid until exp even if its subject is
// deleted.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: empty signing secret")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for subjectID carrying role.
func (s *TokenService) Issue(subjectID string, role domain.Role) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("issue token: %w", domain.ErrUnknownRole)
	}
	now := s.now()
	claims := TokenClaims{
		SubjectID: subjectID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Verify returns the identity in token, or ErrMissingToken / ErrInvalidToken.
func (s *TokenService) Verify(token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.ErrMissingToken
	}

	var claims TokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if claims.SubjectID == "" || !claims.Role.Valid() {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	return domain.Identity{SubjectID: claims.SubjectID, Role: claims.Role}, nil
}
