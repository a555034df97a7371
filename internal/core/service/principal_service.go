package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/panaderia/backend/internal/core/domain"
	"github.com/panaderia/backend/internal/core/ports"
)

type clientService struct {
	repo      ports.Repository[domain.Client]
	protector ports.FieldProtector
	log       zerolog.Logger
}

// NewClientService returns a ClientService that stores phone, email and
// password in protected form and reveals them again on reads.
func NewClientService(repo ports.Repository[domain.Client], protector ports.FieldProtector, log zerolog.Logger) ports.ClientService {
	return &clientService{repo: repo, protector: protector, log: log}
}

func (s *clientService) Register(ctx context.Context, in domain.NewClient) (*domain.Client, error) {
	c := &domain.Client{
		Name:      in.Name,
		Surnames:  in.Surnames,
		BirthDate: in.BirthDate,
		Role:      domain.RoleClient,
	}
	if err := s.protectPhone(c, in.Phone); err != nil {
		return nil, err
	}
	if err := s.protectEmail(c, in.Email); err != nil {
		return nil, err
	}
	if err := s.protectPassword(c, in.Password); err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("register client: %w", err)
	}
	s.log.Info().Str("client_id", created.ID.Hex()).Msg("client registered")
	return s.reveal(created)
}

func (s *clientService) List(ctx context.Context) ([]domain.Client, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	out := make([]domain.Client, 0, len(list))
	for i := range list {
		c, err := s.reveal(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

func (s *clientService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.reveal(c)
}

// Update applies the supplied fields. Protected fields are re-protected in
// full; the role is left as stored.
func (s *clientService) Update(ctx context.Context, id primitive.ObjectID, p domain.ClientPatch) (*domain.Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Surnames != nil {
		c.Surnames = *p.Surnames
	}
	if p.BirthDate != nil {
		c.BirthDate = *p.BirthDate
	}
	if p.Phone != nil {
		if err := s.protectPhone(c, *p.Phone); err != nil {
			return nil, err
		}
	}
	if p.Email != nil {
		if err := s.protectEmail(c, *p.Email); err != nil {
			return nil, err
		}
	}
	if p.Password != nil {
		if err := s.protectPassword(c, *p.Password); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Replace(ctx, id, c)
	if err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return s.reveal(updated)
}

func (s *clientService) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Client, error) {
	c, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("client_id", id.Hex()).Msg("client deleted")
	return s.reveal(c)
}

func (s *clientService) protectPhone(c *domain.Client, phone string) error {
	sealed, err := s.protector.Seal(phone)
	if err != nil {
		return fmt.Errorf("protect phone: %w", err)
	}
	c.Phone = sealed
	return nil
}

func (s *clientService) protectEmail(c *domain.Client, email string) error {
	sealed, err := s.protector.Seal(email)
	if err != nil {
		return fmt.Errorf("protect email: %w", err)
	}
	c.Email = sealed
	c.EmailIndex = s.protector.Index(email)
	return nil
}

func (s *clientService) protectPassword(c *domain.Client, password string) error {
	cred, err := s.protector.HashCredential(password)
	if err != nil {
		return fmt.Errorf("protect password: %w", err)
	}
	c.Credential = cred
	return nil
}

// reveal returns a copy fit for a response: recoverable fields opened and
// the credential cleared.
func (s *clientService) reveal(c *domain.Client) (*domain.Client, error) {
	out := *c
	var err error
	if out.Phone, err = s.protector.Reveal(c.Phone); err != nil {
		return nil, fmt.Errorf("reveal client %s: %w", c.ID.Hex(), err)
	}
	if out.Email, err = s.protector.Reveal(c.Email); err != nil {
		return nil, fmt.Errorf("reveal client %s: %w", c.ID.Hex(), err)
	}
	out.EmailIndex = ""
	out.Credential = ""
	return &out, nil
}

type administratorService struct {
	repo      ports.Repository[domain.Administrator]
	protector ports.FieldProtector
	log       zerolog.Logger
}

func NewAdministratorService(repo ports.Repository[domain.Administrator], protector ports.FieldProtector, log zerolog.Logger) ports.AdministratorService {
	return &administratorService{repo: repo, protector: protector, log: log}
}

func (s *administratorService) Register(ctx context.Context, in domain.NewAdministrator) (*domain.Administrator, error) {
	a := &domain.Administrator{
		Name:     in.Name,
		Surnames: in.Surnames,
		Role:     domain.RoleAdministrator,
	}
	if err := s.protectUsername(a, in.Username); err != nil {
		return nil, err
	}
	if err := s.protectPhone(a, in.Phone); err != nil {
		return nil, err
	}
	if err := s.protectPassword(a, in.Password); err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("register administrator: %w", err)
	}
	s.log.Info().Str("admin_id", created.ID.Hex()).Msg("administrator registered")
	return s.reveal(created)
}

func (s *administratorService) List(ctx context.Context) ([]domain.Administrator, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list administrators: %w", err)
	}
	out := make([]domain.Administrator, 0, len(list))
	for i := range list {
		a, err := s.reveal(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, nil
}

func (s *administratorService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Administrator, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.reveal(a)
}

func (s *administratorService) Update(ctx context.Context, id primitive.ObjectID, p domain.AdministratorPatch) (*domain.Administrator, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Surnames != nil {
		a.Surnames = *p.Surnames
	}
	if p.Username != nil {
		if err := s.protectUsername(a, *p.Username); err != nil {
			return nil, err
		}
	}
	if p.Phone != nil {
		if err := s.protectPhone(a, *p.Phone); err != nil {
			return nil, err
		}
	}
	if p.Password != nil {
		if err := s.protectPassword(a, *p.Password); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Replace(ctx, id, a)
	if err != nil {
		return nil, fmt.Errorf("update administrator: %w", err)
	}
	return s.reveal(updated)
}

func (s *administratorService) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Administrator, error) {
	a, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("admin_id", id.Hex()).Msg("administrator deleted")
	return s.reveal(a)
}

func (s *administratorService) protectUsername(a *domain.Administrator, username string) error {
	sealed, err := s.protector.Seal(username)
	if err != nil {
		return fmt.Errorf("protect username: %w", err)
	}
	a.Username = sealed
	a.UsernameIndex = s.protector.Index(username)
	return nil
}

func (s *administratorService) protectPhone(a *domain.Administrator, phone string) error {
	sealed, err := s.protector.Seal(phone)
	if err != nil {
		return fmt.Errorf("protect phone: %w", err)
	}
	a.Phone = sealed
	return nil
}

func (s *administratorService) protectPassword(a *domain.Administrator, password string) error {
	cred, err := s.protector.HashCredential(password)
	if err != nil {
		return fmt.Errorf("protect password: %w", err)
	}
	a.Credential = cred
	return nil
}

func (s *administratorService) reveal(a *domain.Administrator) (*domain.Administrator, error) {
	out := *a
	var err error
	if out.Username, err = s.protector.Reveal(a.Username); err != nil {
		return nil, fmt.Errorf("reveal administrator %s: %w", a.ID.Hex(), err)
	}
	if out.Phone, err = s.protector.Reveal(a.Phone); err != nil {
		return nil, fmt.Errorf("reveal administrator %s: %w", a.ID.Hex(), err)
	}
	out.UsernameIndex = ""
	out.Credential = ""
	return &out, nil
}
