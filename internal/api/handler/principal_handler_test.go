package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/panaderia/backend/internal/core/domain"
)

type stubClients struct {
	registered *domain.NewClient
	patch      *domain.ClientPatch
	err        error
}

func (s *stubClients) Register(_ context.Context, in domain.NewClient) (*domain.Client, error) {
	s.registered = &in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Client{ID: primitive.NewObjectID(), Name: in.Name, Email: in.Email, Role: domain.RoleClient}, nil
}

func (s *stubClients) List(context.Context) ([]domain.Client, error) { return nil, s.err }

func (s *stubClients) Get(_ context.Context, id primitive.ObjectID) (*domain.Client, error) {
	return &domain.Client{ID: id, Role: domain.RoleClient}, s.err
}

func (s *stubClients) Update(_ context.Context, id primitive.ObjectID, patch domain.ClientPatch) (*domain.Client, error) {
	s.patch = &patch
	return &domain.Client{ID: id, Role: domain.RoleClient}, s.err
}

func (s *stubClients) Delete(_ context.Context, id primitive.ObjectID) (*domain.Client, error) {
	return &domain.Client{ID: id, Role: domain.RoleClient}, s.err
}

func TestClientHandler_Create(t *testing.T) {
	svc := &stubClients{}
	h := NewClientHandler(svc)

	rec := httptest.NewRecorder()
	body := `{"nombre":"Ana","apellidos":"Ruiz","telefono":"2281234567","fechaNacimiento":"1990-06-12","correo":"a@x.com","contrasena":"secret"}`
	if err := h.Create(newEcho().NewContext(jsonRequest(http.MethodPost, "/clientes", body), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	in := svc.registered
	if in.Email != "a@x.com" || in.Password != "secret" {
		t.Fatalf("unexpected registration: %+v", in)
	}
	if !in.BirthDate.Equal(time.Date(1990, time.June, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected birth date %v", in.BirthDate)
	}

	resp := decodeBody(t, rec)
	if resp["message"] != "Cliente creado exitosamente" {
		t.Fatalf("unexpected message %v", resp["message"])
	}
	client, ok := resp["cliente"].(map[string]any)
	if !ok {
		t.Fatalf("expected cliente in response: %+v", resp)
	}
	if _, leaked := client["contrasena"]; leaked {
		t.Fatalf("credential must never be serialized")
	}
}

func TestClientHandler_Create_Invalid(t *testing.T) {
	svc := &stubClients{}
	h := NewClientHandler(svc)

	cases := map[string]string{
		"bad email": `{"nombre":"Ana","apellidos":"Ruiz","telefono":"1","fechaNacimiento":"1990-06-12","correo":"nope","contrasena":"x"}`,
		"bad date":  `{"nombre":"Ana","apellidos":"Ruiz","telefono":"1","fechaNacimiento":"12/06/1990","correo":"a@x.com","contrasena":"x"}`,
		"missing":   `{"nombre":"Ana"}`,
	}
	for name, body := range cases {
		err := h.Create(newEcho().NewContext(jsonRequest(http.MethodPost, "/clientes", body), httptest.NewRecorder()))
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", name, err)
		}
	}
	if svc.registered != nil {
		t.Fatalf("service must not be called on invalid input")
	}
}

func TestClientHandler_Create_Duplicate(t *testing.T) {
	h := NewClientHandler(&stubClients{err: domain.ErrDuplicate})
	body := `{"nombre":"Ana","apellidos":"Ruiz","telefono":"1","fechaNacimiento":"1990-06-12","correo":"a@x.com","contrasena":"x"}`

	err := h.Create(newEcho().NewContext(jsonRequest(http.MethodPost, "/clientes", body), httptest.NewRecorder()))
	if !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestClientHandler_Update_Partial(t *testing.T) {
	svc := &stubClients{}
	h := NewClientHandler(svc)
	id := primitive.NewObjectID()

	rec := httptest.NewRecorder()
	c := withID(newEcho().NewContext(jsonRequest(http.MethodPut, "/", `{"telefono":"2289999999"}`), rec), id.Hex())
	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	p := svc.patch
	if p.Phone == nil || *p.Phone != "2289999999" {
		t.Fatalf("phone not patched: %+v", p)
	}
	if p.Email != nil || p.Password != nil || p.BirthDate != nil {
		t.Fatalf("unset fields must stay nil: %+v", p)
	}
	if decodeBody(t, rec)["message"] != "Cliente actualizado exitosamente" {
		t.Fatalf("unexpected response %s", rec.Body.String())
	}
}

type stubAdmins struct {
	registered *domain.NewAdministrator
	err        error
}

func (s *stubAdmins) Register(_ context.Context, in domain.NewAdministrator) (*domain.Administrator, error) {
	s.registered = &in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Administrator{ID: primitive.NewObjectID(), Username: in.Username, Role: domain.RoleAdministrator}, nil
}

func (s *stubAdmins) List(context.Context) ([]domain.Administrator, error) {
	return []domain.Administrator{}, s.err
}

func (s *stubAdmins) Get(_ context.Context, id primitive.ObjectID) (*domain.Administrator, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Administrator{ID: id, Role: domain.RoleAdministrator}, nil
}

func (s *stubAdmins) Update(_ context.Context, id primitive.ObjectID, _ domain.AdministratorPatch) (*domain.Administrator, error) {
	return &domain.Administrator{ID: id, Role: domain.RoleAdministrator}, s.err
}

func (s *stubAdmins) Delete(_ context.Context, id primitive.ObjectID) (*domain.Administrator, error) {
	return &domain.Administrator{ID: id, Role: domain.RoleAdministrator}, s.err
}

func TestAdministratorHandler_Create(t *testing.T) {
	svc := &stubAdmins{}
	h := NewAdministratorHandler(svc)

	rec := httptest.NewRecorder()
	body := `{"nombre":"Luis","apellidos":"Mendoza","usuario":"admin1","telefono":"2286789012","contrasena":"admin123"}`
	if err := h.Create(newEcho().NewContext(jsonRequest(http.MethodPost, "/administradores", body), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated || svc.registered.Username != "admin1" {
		t.Fatalf("unexpected result %d %+v", rec.Code, svc.registered)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Administrador creado" || resp["administrador"] == nil {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAdministratorHandler_GetNotFound(t *testing.T) {
	h := NewAdministratorHandler(&stubAdmins{err: domain.NotFound(domain.MsgAdminNotFound)})

	c := withID(newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()), primitive.NewObjectID().Hex())
	err := h.Get(c)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Msg != domain.MsgAdminNotFound {
		t.Fatalf("expected admin not found, got %v", err)
	}
}

func TestClientHandler_Create_PasswordTooLong(t *testing.T) {
	svc := &stubClients{}
	h := NewClientHandler(svc)
	body := `{"nombre":"Ana","apellidos":"Ruiz","telefono":"1","fechaNacimiento":"1990-06-12","correo":"a@x.com","contrasena":"` +
		strings.Repeat("x", 73) + `"}`

	err := h.Create(newEcho().NewContext(jsonRequest(http.MethodPost, "/clientes", body), httptest.NewRecorder()))
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Detail != "contrasena debe tener como máximo 72 caracteres" {
		t.Fatalf("unexpected detail: %q", ve.Detail)
	}
	if svc.registered != nil {
		t.Fatalf("service must not be called on invalid input")
	}
}

func TestAdministratorHandler_Update_StringLengthMessages(t *testing.T) {
	h := NewAdministratorHandler(&stubAdmins{})

	cases := map[string]string{
		`{"nombre":""}`: "nombre debe tener al menos 1 caracteres",
		`{"contrasena":"` + strings.Repeat("x", 73) + `"}`: "contrasena debe tener como máximo 72 caracteres",
	}
	for body, want := range cases {
		c := withID(newEcho().NewContext(jsonRequest(http.MethodPut, "/", body), httptest.NewRecorder()), primitive.NewObjectID().Hex())
		err := h.Update(c)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) || ve.Detail != want {
			t.Fatalf("%s: expected %q, got %v", body, want, err)
		}
	}
}
