package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/kit-service/internal/domain/model"
)

// AssignmentRepository stores active assignments.
type AssignmentRepository struct {
	collection *mongo.Collection
}

// NewAssignmentRepository creates a new assignment repository.
func NewAssignmentRepository(db *MongoDB) *AssignmentRepository {
	return &AssignmentRepository{collection: db.Assignments}
}

// Insert stores a new assignment. A duplicate id is ErrDuplicateID.
func (r *AssignmentRepository) Insert(ctx context.Context, a *model.Assignment) error {
	_, err := r.collection.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateID
	}
	return err
}

// FindByID returns an active assignment or model.ErrAssignmentNotFound.
func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*model.Assignment, error) {
	var a model.Assignment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns assignments matching filter in creation order.
func (r *AssignmentRepository) List(ctx context.Context, filter model.AssignmentFilter) ([]model.Assignment, error) {
	query := bson.M{}
	if filter.KitID != "" {
		query["kit_id"] = filter.KitID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	assignments := make([]model.Assignment, 0)
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// Delete removes the assignment and returns the document as it was.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) (*model.Assignment, error) {
	var a model.Assignment
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CompareAndSetStatus filters on the expected status, so a concurrent transition
// makes this one fail with model.ErrStatusConflict instead of overwriting it.
func (r *AssignmentRepository) CompareAndSetStatus(ctx context.Context, id string, from, to model.AssignmentStatus, patch StatusPatch) (*model.Assignment, error) {
	set := bson.M{"status": to, "updated_at": patch.UpdatedAt}
	if patch.DispatchedAt != nil {
		set["dispatched_at"] = *patch.DispatchedAt
	}

	var a model.Assignment
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err == nil {
		return &a, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, model.ErrAssignmentNotFound
	}
	return nil, model.ErrStatusConflict
}

var _ AssignmentRepositoryInterface = (*AssignmentRepository)(nil)
