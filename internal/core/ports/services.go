package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/panaderia/backend/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, in domain.LoginInput) (domain.LoginResult, error)
}

type ClientService interface {
	Register(ctx context.Context, in domain.NewClient) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Client, error)
	Update(ctx context.Context, id primitive.ObjectID, patch domain.ClientPatch) (*domain.Client, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Client, error)
}

type AdministratorService interface {
	Register(ctx context.Context, in domain.NewAdministrator) (*domain.Administrator, error)
	List(ctx context.Context) ([]domain.Administrator, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Administrator, error)
	Update(ctx context.Context, id primitive.ObjectID, patch domain.AdministratorPatch) (*domain.Administrator, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Administrator, error)
}

// CatalogService is plain CRUD over one resource.
type CatalogService[T any] interface {
	Create(ctx context.Context, doc *T) (*T, error)
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id primitive.ObjectID) (*T, error)
	Update(ctx context.Context, id primitive.ObjectID, doc *T) (*T, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*T, error)
}

type SupplyService interface {
	CatalogService[domain.Supply]
	// Cost totals unit cost times quantity over usages.
	Cost(ctx context.Context, usages []domain.SupplyUsage) (float64, error)
}

type BranchService interface {
	CatalogService[domain.Branch]
	ListViews(ctx context.Context) ([]domain.BranchView, error)
	GetView(ctx context.Context, id primitive.ObjectID) (*domain.BranchView, error)
}
