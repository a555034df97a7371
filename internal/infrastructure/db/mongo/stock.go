package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/panaderia/backend/internal/core/domain"
	"github.com/panaderia/backend/internal/core/ports"
)

const stockField = "cantidadStock"

// StockRepository adjusts cantidadStock on productos with single-document
// conditional updates.
type StockRepository struct {
	col *mongo.Collection
}

func NewStockRepository(db *mongo.Database) *StockRepository {
	return &StockRepository{col: db.Collection(CollectionProducts)}
}

func (r *StockRepository) Take(ctx context.Context, productID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": productID, stockField: bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{stockField: -1}},
	)
	if err != nil {
		return fmt.Errorf("take stock %s: %w", productID.Hex(), err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	// Nothing matched: tell a missing product apart from an empty one.
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": productID})
	if err != nil {
		return fmt.Errorf("take stock %s: %w", productID.Hex(), err)
	}
	if n == 0 {
		return domain.NotFound(domain.MsgProductNotFound)
	}
	return domain.ErrInsufficientStock
}

func (r *StockRepository) Return(ctx context.Context, productID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{"$inc": bson.M{stockField: 1}})
	if err != nil {
		return fmt.Errorf("return stock %s: %w", productID.Hex(), err)
	}
	return nil
}

var _ ports.StockRepository = (*StockRepository)(nil)
