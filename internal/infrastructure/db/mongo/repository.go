package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/panaderia/backend/internal/core/domain"
	"github.com/panaderia/backend/internal/core/ports"
)

// Collection names. Existing databases were created with the default
// pluralisation of the model names (lower-cased, plus "s"), so
// "Administrador" lives in "administradors", not "administradores".
const (
	CollectionClients    = "clientes"
	CollectionAdmins     = "administradors"
	CollectionLocations  = "ubicacions"
	CollectionCategories = "categoriaproductos"
	CollectionSupplies   = "insumos"
	CollectionProducts   = "productos"
	CollectionOrders     = "pedidos"
	CollectionBranches   = "sucursals"
)

// Repository is a ports.Repository over one collection. notFound is the
// message carried by the *domain.NotFoundError it returns.
type Repository[T any] struct {
	col      *mongo.Collection
	notFound string
}

func NewRepository[T any](db *mongo.Database, collection, notFound string) *Repository[T] {
	return &Repository[T]{col: db.Collection(collection), notFound: notFound}
}

func (r *Repository[T]) Insert(ctx context.Context, doc *T) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, r.wrap("insert", err)
	}

	// fetch back to get the assigned _id
	var out T
	if err := r.col.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&out); err != nil {
		return nil, r.wrap("insert", err)
	}
	return &out, nil
}

func (r *Repository[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return r.FindOneBy(ctx, "_id", id)
}

func (r *Repository[T]) FindOneBy(ctx context.Context, field string, value any) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var out T
	if err := r.col.FindOne(ctx, bson.M{field: value}).Decode(&out); err != nil {
		return nil, r.wrap("find", err)
	}
	return &out, nil
}

func (r *Repository[T]) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]T, error) {
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	return r.find(ctx, bson.M{})
}

func (r *Repository[T]) Replace(ctx context.Context, id primitive.ObjectID, doc *T) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	replacement, err := withID(doc, id)
	if err != nil {
		return nil, fmt.Errorf("replace %s: %w", r.col.Name(), err)
	}

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var out T
	if err := r.col.FindOneAndReplace(ctx, bson.M{"_id": id}, replacement, opts).Decode(&out); err != nil {
		return nil, r.wrap("replace", err)
	}
	return &out, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id primitive.ObjectID) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var out T
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return nil, r.wrap("delete", err)
	}
	return &out, nil
}

// Count reports how many documents the collection holds.
func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, r.wrap("count", err)
	}
	return n, nil
}

func (r *Repository[T]) find(ctx context.Context, filter bson.M) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, r.wrap("find", err)
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, r.wrap("decode", err)
	}
	return out, nil
}

func (r *Repository[T]) wrap(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.NotFound(r.notFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s %s: %w", op, r.col.Name(), domain.ErrDuplicate)
	default:
		return fmt.Errorf("%s %s: %w", op, r.col.Name(), err)
	}
}

// withID marshals doc and pins its _id, so a replacement never tries to
// change the identity of the stored document.
func withID[T any](doc *T, id primitive.ObjectID) (bson.D, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	var m bson.D
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	out := bson.D{{Key: "_id", Value: id}}
	for _, e := range m {
		if e.Key != "_id" {
			out = append(out, e)
		}
	}
	return out, nil
}

var (
	_ ports.Repository[domain.Client]        = (*Repository[domain.Client])(nil)
	_ ports.Repository[domain.Administrator] = (*Repository[domain.Administrator])(nil)
	_ ports.Repository[domain.Branch]        = (*Repository[domain.Branch])(nil)
)
