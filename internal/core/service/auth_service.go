package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/panaderia/backend/internal/core/domain"
	"github.com/panaderia/backend/internal/core/ports"
	"github.com/panaderia/backend/internal/pkg/config"
)

// Lookup fields for login. Under the legacy scheme the stored ciphertext is
// its own index, which also covers documents written before the index
// fields existed.
const (
	clientEmailIndexField   = "correoIndice"
	adminUsernameIndexField = "usuarioIndice"
	clientEmailField        = "correo"
	adminUsernameField      = "usuario"
)

// AuthService resolves a principal from an identifier, checks the credential
// and mints a token.
type AuthService struct {
	clients   ports.Repository[domain.Client]
	admins    ports.Repository[domain.Administrator]
	protector ports.FieldProtector
	tokens    ports.TokenIssuer
	log       zerolog.Logger
}

func NewAuthService(
	clients ports.Repository[domain.Client],
	admins ports.Repository[domain.Administrator],
	protector ports.FieldProtector,
	tokens ports.TokenIssuer,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		clients:   clients,
		admins:    admins,
		protector: protector,
		tokens:    tokens,
		log:       log,
	}
}

func (s *AuthService) Login(ctx context.Context, in domain.LoginInput) (domain.LoginResult, error) {
	if in.Email == "" && in.Username == "" {
		return domain.LoginResult{}, domain.ErrIdentifierRequired
	}
	if in.Password == "" {
		return domain.LoginResult{}, domain.ErrCredentialRequired
	}

	principal, err := s.lookup(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.LoginResult{}, domain.ErrPrincipalNotFound
		}
		return domain.LoginResult{}, fmt.Errorf("login: %w", err)
	}

	if !s.protector.VerifyCredential(principal.Credential, in.Password) {
		s.log.Debug().Str("subject", principal.ID).Msg("credential mismatch")
		return domain.LoginResult{}, domain.ErrInvalidCredential
	}

	token, err := s.tokens.Issue(principal.ID, principal.Role)
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("login: %w", err)
	}

	return domain.LoginResult{Token: token, SubjectID: principal.ID, Role: principal.Role}, nil
}

func (s *AuthService) lookup(ctx context.Context, in domain.LoginInput) (domain.Principal, error) {
	legacy := s.protector.Scheme() == config.SchemeLegacy

	if in.Email != "" {
		field := clientEmailIndexField
		if legacy {
			field = clientEmailField
		}
		c, err := s.clients.FindOneBy(ctx, field, s.protector.Index(in.Email))
		if err != nil {
			return domain.Principal{}, err
		}
		return c.Principal(), nil
	}

	field := adminUsernameIndexField
	if legacy {
		field = adminUsernameField
	}
	a, err := s.admins.FindOneBy(ctx, field, s.protector.Index(in.Username))
	if err != nil {
		return domain.Principal{}, err
	}
	return a.Principal(), nil
}
