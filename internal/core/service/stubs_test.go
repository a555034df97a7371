package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/panaderia/backend/internal/core/domain"
)

// memRepo is an in-memory ports.Repository. Documents are copied in and out
// so callers cannot alias stored state.
type memRepo[T any] struct {
	docs     map[primitive.ObjectID]T
	order    []primitive.ObjectID
	setID    func(*T, primitive.ObjectID)
	notFound string
	unique   func(a, b *T) bool
	calls    int
	failList error
}

func newMemRepo[T any](notFound string, setID func(*T, primitive.ObjectID)) *memRepo[T] {
	return &memRepo[T]{
		docs:     make(map[primitive.ObjectID]T),
		setID:    setID,
		notFound: notFound,
	}
}

func (r *memRepo[T]) Insert(_ context.Context, doc *T) (*T, error) {
	r.calls++
	if r.unique != nil {
		for _, id := range r.order {
			existing := r.docs[id]
			if r.unique(&existing, doc) {
				return nil, domain.ErrDuplicate
			}
		}
	}
	cp := *doc
	id := primitive.NewObjectID()
	r.setID(&cp, id)
	r.docs[id] = cp
	r.order = append(r.order, id)
	out := cp
	return &out, nil
}

func (r *memRepo[T]) FindByID(_ context.Context, id primitive.ObjectID) (*T, error) {
	r.calls++
	doc, ok := r.docs[id]
	if !ok {
		return nil, domain.NotFound(r.notFound)
	}
	return &doc, nil
}

// FindOneBy only understands the fields login looks principals up by.
func (r *memRepo[T]) FindOneBy(_ context.Context, field string, value any) (*T, error) {
	r.calls++
	for _, id := range r.order {
		doc := r.docs[id]
		var got string
		switch d := any(&doc).(type) {
		case *domain.Client:
			switch field {
			case "correoIndice":
				got = d.EmailIndex
			case "correo":
				got = d.Email
			}
		case *domain.Administrator:
			switch field {
			case "usuarioIndice":
				got = d.UsernameIndex
			case "usuario":
				got = d.Username
			}
		}
		if got != "" && got == value {
			return &doc, nil
		}
	}
	return nil, domain.NotFound(r.notFound)
}

func (r *memRepo[T]) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]T, error) {
	r.calls++
	out := []T{}
	for _, id := range r.order {
		for _, want := range ids {
			if id == want {
				out = append(out, r.docs[id])
				break
			}
		}
	}
	return out, nil
}

func (r *memRepo[T]) List(_ context.Context) ([]T, error) {
	r.calls++
	if r.failList != nil {
		return nil, r.failList
	}
	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.docs[id])
	}
	return out, nil
}

func (r *memRepo[T]) Replace(_ context.Context, id primitive.ObjectID, doc *T) (*T, error) {
	r.calls++
	if _, ok := r.docs[id]; !ok {
		return nil, domain.NotFound(r.notFound)
	}
	cp := *doc
	r.setID(&cp, id)
	r.docs[id] = cp
	out := cp
	return &out, nil
}

func (r *memRepo[T]) Delete(_ context.Context, id primitive.ObjectID) (*T, error) {
	r.calls++
	doc, ok := r.docs[id]
	if !ok {
		return nil, domain.NotFound(r.notFound)
	}
	delete(r.docs, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &doc, nil
}

func newClientRepo() *memRepo[domain.Client] {
	r := newMemRepo(domain.MsgClientNotFound, func(c *domain.Client, id primitive.ObjectID) { c.ID = id })
	r.unique = func(a, b *domain.Client) bool { return a.EmailIndex == b.EmailIndex }
	return r
}

func newAdminRepo() *memRepo[domain.Administrator] {
	r := newMemRepo(domain.MsgAdminNotFound, func(a *domain.Administrator, id primitive.ObjectID) { a.ID = id })
	r.unique = func(a, b *domain.Administrator) bool { return a.UsernameIndex == b.UsernameIndex }
	return r
}

// stubProtector is a transparent FieldProtector: every transformation is a
// visible prefix, so tests can assert what was stored.
type stubProtector struct{}

func (stubProtector) Scheme() string { return "stub" }

func (stubProtector) Seal(p string) (string, error) { return "sealed:" + p, nil }

func (stubProtector) Reveal(s string) (string, error) {
	return strings.TrimPrefix(s, "sealed:"), nil
}

func (stubProtector) Index(p string) string { return "idx:" + p }

func (stubProtector) HashCredential(p string) (string, error) { return "hash:" + p, nil }

func (stubProtector) VerifyCredential(stored, candidate string) bool {
	return stored == "hash:"+candidate
}

type stubIssuer struct {
	subject string
	role    domain.Role
	err     error
}

func (s *stubIssuer) Issue(subjectID string, role domain.Role) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.subject, s.role = subjectID, role
	return "token-for-" + subjectID, nil
}

func (r *memRepo[T]) Count(_ context.Context) (int64, error) {
	return int64(len(r.order)), nil
}
