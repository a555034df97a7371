package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository is the document store for one collection. Lookups that match
// nothing return a *domain.NotFoundError; unique index violations return
// domain.ErrDuplicate.
type Repository[T any] interface {
	// Insert stores doc (its _id is assigned by the store) and returns the
	// stored document.
	Insert(ctx context.Context, doc *T) (*T, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	// FindOneBy matches a single top-level field by equality.
	FindOneBy(ctx context.Context, field string, value any) (*T, error)
	// FindByIDs returns the documents that exist among ids, in store order.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]T, error)
	List(ctx context.Context) ([]T, error)
	// Replace swaps the document with doc and returns the new version.
	Replace(ctx context.Context, id primitive.ObjectID, doc *T) (*T, error)
	// Delete removes the document and returns what was removed.
	Delete(ctx context.Context, id primitive.ObjectID) (*T, error)
}

// StockRepository moves product stock one unit at a time.
type StockRepository interface {
	// Take decrements stock only when at least one unit is left.
	// Returns domain.ErrInsufficientStock or a not-found error otherwise.
	Take(ctx context.Context, productID primitive.ObjectID) error
	// Return adds one unit back.
	Return(ctx context.Context, productID primitive.ObjectID) error
}

// ListCache keeps serialised list responses keyed by collection.
type ListCache interface {
	Load(ctx context.Context, key string, dst any) (bool, error)
	Save(ctx context.Context, key string, v any) error
	Invalidate(ctx context.Context, key string) error
}
