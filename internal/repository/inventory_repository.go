package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/kit-service/internal/domain/model"
)

// snapshotOrder is the order inventory is listed in. Resolution keeps the first
// item per name, so the order must be stable.
var snapshotOrder = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

// InventoryRepository stores inventory items.
type InventoryRepository struct {
	collection *mongo.Collection
}

// NewInventoryRepository creates a new inventory repository.
func NewInventoryRepository(db *MongoDB) *InventoryRepository {
	return &InventoryRepository{collection: db.Inventory}
}

// Upsert replaces an item's fields, keeping its original creation time.
func (r *InventoryRepository) Upsert(ctx context.Context, item *model.InventoryItem) error {
	update := bson.M{
		"$set": bson.M{
			"name":          item.Name,
			"type":          item.Type,
			"quantity":      item.Quantity,
			"unit":          item.Unit,
			"minimum_stock": item.MinimumStock,
			"updated_at":    item.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": item.CreatedAt},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": item.ID}, update, options.Update().SetUpsert(true))
	return err
}

// FindByID returns an item or model.ErrInventoryItemNotFound.
func (r *InventoryRepository) FindByID(ctx context.Context, id string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrInventoryItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns the full inventory snapshot.
func (r *InventoryRepository) List(ctx context.Context) ([]model.InventoryItem, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(snapshotOrder))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	items := make([]model.InventoryItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

var _ InventoryRepositoryInterface = (*InventoryRepository)(nil)
