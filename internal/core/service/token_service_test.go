package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panaderia/backend/internal/core/domain"
)

func newTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	return ts
}

func TestTokenService_IssueThenVerify(t *testing.T) {
	ts := newTokenService(t)

	for _, role := range []domain.Role{domain.RoleClient, domain.RoleAdministrator} {
		token, err := ts.Issue("64b7f0c2a1b2c3d4e5f60718", role)
		require.NoError(t, err)

		id, err := ts.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, domain.Identity{SubjectID: "64b7f0c2a1b2c3d4e5f60718", Role: role}, id)
	}
}

func TestTokenService_PayloadShape(t *testing.T) {
	ts := newTokenService(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ts.now = func() time.Time { return fixed }

	token, err := ts.Issue("abc", domain.RoleClient)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	assert.Equal(t, "abc", claims["id"])
	assert.Equal(t, "cliente", claims["rol"])
	assert.EqualValues(t, fixed.Add(time.Hour).Unix(), claims["exp"])
}

func TestTokenService_ExpiredTokenIsInvalid(t *testing.T) {
	ts := newTokenService(t)
	ts.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := ts.Issue("abc", domain.RoleAdministrator)
	require.NoError(t, err)

	ts.now = time.Now
	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_FlippedSignatureIsInvalid(t *testing.T) {
	ts := newTokenService(t)
	token, err := ts.Issue("abc", domain.RoleClient)
	require.NoError(t, err)

	dot := strings.LastIndexByte(token, '.')
	sig := []byte(token[dot+1:])
	// Flip inside the signature, away from the last character's padding bits.
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := token[:dot+1] + string(sig)

	_, err = ts.Verify(tampered)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_RejectsOtherSecretsAndAlgorithms(t *testing.T) {
	ts := newTokenService(t)

	other, err := NewTokenService("another-secret", time.Hour)
	require.NoError(t, err)
	foreign, err := other.Issue("abc", domain.RoleAdministrator)
	require.NoError(t, err)
	_, err = ts.Verify(foreign)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id": "abc", "rol": "administrador", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ts.Verify(none)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_RejectsMalformedClaims(t *testing.T) {
	ts := newTokenService(t)
	sign := func(c jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return s
	}
	exp := time.Now().Add(time.Hour).Unix()

	cases := map[string]string{
		"unknown role": sign(jwt.MapClaims{"id": "abc", "rol": "root", "exp": exp}),
		"missing exp":  sign(jwt.MapClaims{"id": "abc", "rol": "cliente"}),
		"missing id":   sign(jwt.MapClaims{"rol": "cliente", "exp": exp}),
		"garbage":      "not-a-token",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ts.Verify(token)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

func TestTokenService_MissingToken(t *testing.T) {
	_, err := newTokenService(t).Verify("")
	assert.ErrorIs(t, err, domain.ErrMissingToken)
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.Error(t, err)
}
