package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/kit-service/internal/domain/model"
)

// OrderHistoryRepository stores delivered assignments.
type OrderHistoryRepository struct {
	collection *mongo.Collection
}

// NewOrderHistoryRepository creates a new order history repository.
func NewOrderHistoryRepository(db *MongoDB) *OrderHistoryRepository {
	return &OrderHistoryRepository{collection: db.OrderHistory}
}

// Archive inserts a delivered assignment. A duplicate id is ErrDuplicateID.
func (r *OrderHistoryRepository) Archive(ctx context.Context, record *model.OrderHistoryRecord) error {
	_, err := r.collection.InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateID
	}
	return err
}

// FindByID returns an archived record or model.ErrAssignmentNotFound.
func (r *OrderHistoryRepository) FindByID(ctx context.Context, id string) (*model.OrderHistoryRecord, error) {
	var record model.OrderHistoryRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

var _ OrderHistoryRepositoryInterface = (*OrderHistoryRepository)(nil)
