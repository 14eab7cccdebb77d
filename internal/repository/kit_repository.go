package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/kit-service/internal/domain/model"
)

// KitRepository stores kits in the kits collection.
type KitRepository struct {
	collection *mongo.Collection
}

// NewKitRepository creates a new kit repository.
func NewKitRepository(db *MongoDB) *KitRepository {
	return &KitRepository{collection: db.Kits}
}

// Upsert writes every catalog field. Stock count and creation time are only set
// on insert; afterwards AdjustStock owns the stock count.
func (r *KitRepository) Upsert(ctx context.Context, kit *model.Kit) error {
	update := bson.M{
		"$set": bson.M{
			"name":                 kit.Name,
			"program_id":           kit.ProgramID,
			"serial_number":        kit.SerialNumber,
			"category":             kit.Category,
			"low_stock_threshold":  kit.LowStockThreshold,
			"is_structured":        kit.IsStructured,
			"packing_requirements": kit.PackingRequirements,
			"components":           kit.Components,
			"spare_kits":           kit.SpareKits,
			"bulk_materials":       kit.BulkMaterials,
			"miscellaneous":        kit.Miscellaneous,
			"unit_price":           kit.UnitPrice,
			"updated_at":           kit.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"stock_count": kit.StockCount,
			"created_at":  kit.CreatedAt,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": kit.ID}, update, options.Update().SetUpsert(true))
	return err
}

// FindByID returns a kit or model.ErrKitNotFound.
func (r *KitRepository) FindByID(ctx context.Context, id string) (*model.Kit, error) {
	var kit model.Kit
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&kit)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrKitNotFound
	}
	if err != nil {
		return nil, err
	}
	return &kit, nil
}

// List returns kits ordered by name, then id.
func (r *KitRepository) List(ctx context.Context) ([]model.Kit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	kits := make([]model.Kit, 0)
	if err := cursor.All(ctx, &kits); err != nil {
		return nil, err
	}
	return kits, nil
}

// AdjustStock applies delta with a single $inc, so concurrent writers to the same
// kit never interleave a read-modify-write.
func (r *KitRepository) AdjustStock(ctx context.Context, id string, delta int64) (int64, error) {
	var updated struct {
		StockCount int64 `bson:"stock_count"`
	}
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock_count": delta},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"stock_count": 1}),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, model.ErrKitNotFound
	}
	if err != nil {
		return 0, err
	}
	return updated.StockCount, nil
}

var _ KitRepositoryInterface = (*KitRepository)(nil)
