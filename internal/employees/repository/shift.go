package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	employeeserrors "pawbook/internal/employees/errors"
	"pawbook/pkg/config"
	"pawbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ShiftCollectionName = "ShiftAssignments"
)

type ShiftRepository interface {
	Create(ctx context.Context, shift *model.ShiftAssignment) error
	FindByShopAndDate(ctx context.Context, shopID, date string) ([]*model.ShiftAssignment, error)
	FindByID(ctx context.Context, id string) (*model.ShiftAssignment, error)
	Delete(ctx context.Context, id string) error
	DeleteByEmployee(ctx context.Context, employeeID string) error
}

type mongoShiftRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoShiftRepository(cfg *config.Config) ShiftRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoShiftRepository{
		cfg:        cfg,
		collection: db.Collection(ShiftCollectionName),
	}
}

func (r *mongoShiftRepository) Create(ctx context.Context, shift *model.ShiftAssignment) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	shift.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, shift)
	if err != nil {
		return fmt.Errorf("failed to create shift assignment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		shift.ID = oid.Hex()
	}
	return nil
}

func (r *mongoShiftRepository) FindByShopAndDate(ctx context.Context, shopID, date string) ([]*model.ShiftAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"shop_id": shopID}
	if date != "" {
		filter["date"] = date
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "slot", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find shift assignments: %w", err)
	}
	defer cursor.Close(ctx)

	var shifts []*model.ShiftAssignment
	if err = cursor.All(ctx, &shifts); err != nil {
		return nil, fmt.Errorf("failed to decode shift assignments: %w", err)
	}

	return shifts, nil
}

func (r *mongoShiftRepository) FindByID(ctx context.Context, id string) (*model.ShiftAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", employeeserrors.ErrInvalidID, id)
	}

	var shift model.ShiftAssignment
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&shift)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, employeeserrors.ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to find shift assignment: %w", err)
	}

	return &shift, nil
}

func (r *mongoShiftRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", employeeserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete shift assignment: %w", err)
	}
	if result.DeletedCount == 0 {
		return employeeserrors.ErrShiftNotFound
	}
	return nil
}

// DeleteByEmployee removes every shift assignment of one employee. Used when
// the employee record itself is deleted.
func (r *mongoShiftRepository) DeleteByEmployee(ctx context.Context, employeeID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.DeleteMany(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return fmt.Errorf("failed to delete shift assignments for employee: %w", err)
	}
	return nil
}
