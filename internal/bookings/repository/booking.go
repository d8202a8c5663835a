package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "pawbook/internal/bookings/errors"
	"pawbook/pkg/config"
	"pawbook/pkg/lifecycle"
	"pawbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Bookings"
)

// Filter narrows booking list queries. Empty fields are ignored.
type Filter struct {
	ShopID     string
	CustomerID string
	Status     lifecycle.Status
}

// BookingRepository persists bookings. Status, assignment and payment
// writes are compare-and-set on the state the caller observed: a matched
// count of zero with the booking still present surfaces ErrStateChanged,
// which the service maps to a Conflict.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	Find(ctx context.Context, filter Filter, limit int, offset int64) ([]*model.Booking, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	UpdateStatus(ctx context.Context, id string, from, to lifecycle.Status, payment lifecycle.PaymentStatus) error
	AssignTechnician(ctx context.Context, id, technicianID string, current lifecycle.Status) error
	ConfirmPayment(ctx context.Context, id string) error
	UpdateLineItems(ctx context.Context, id string, items []model.LineItem, total string) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) Find(ctx context.Context, filter Filter, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) Count(ctx context.Context, filter Filter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func buildFilter(filter Filter) bson.M {
	query := bson.M{}
	if filter.ShopID != "" {
		query["shop_id"] = filter.ShopID
	}
	if filter.CustomerID != "" {
		query["customer_id"] = filter.CustomerID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return query
}

// UpdateStatus moves a booking along one registry edge. The filter pins the
// status the caller observed, so a concurrent writer makes this a no-match
// instead of a lost update.
func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id string, from, to lifecycle.Status, payment lifecycle.PaymentStatus) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	set := bson.M{"status": to}
	if payment != "" {
		set["payment_status"] = payment
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "status": from},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if result.MatchedCount == 0 {
		return r.classifyMiss(ctx, objectID)
	}
	return nil
}

func (r *mongoBookingRepository) AssignTechnician(ctx context.Context, id, technicianID string, current lifecycle.Status) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "status": current},
		bson.M{"$set": bson.M{"assigned_technician_id": technicianID}},
	)
	if err != nil {
		return fmt.Errorf("failed to assign technician: %w", err)
	}

	if result.MatchedCount == 0 {
		return r.classifyMiss(ctx, objectID)
	}
	return nil
}

func (r *mongoBookingRepository) ConfirmPayment(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{
			"_id":            objectID,
			"status":         lifecycle.StatusCompleted,
			"payment_status": lifecycle.PaymentUnpaid,
		},
		bson.M{"$set": bson.M{"payment_status": lifecycle.PaymentPaid}},
	)
	if err != nil {
		return fmt.Errorf("failed to confirm payment: %w", err)
	}

	if result.MatchedCount == 0 {
		return r.classifyMiss(ctx, objectID)
	}
	return nil
}

func (r *mongoBookingRepository) UpdateLineItems(ctx context.Context, id string, items []model.LineItem, total string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	// Line items may only change while the booking still awaits
	// confirmation; the filter enforces that against concurrent confirms.
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "status": lifecycle.StatusAwaitingConfirmation},
		bson.M{"$set": bson.M{"line_items": items, "total_amount": total}},
	)
	if err != nil {
		return fmt.Errorf("failed to update line items: %w", err)
	}

	if result.MatchedCount == 0 {
		return r.classifyMiss(ctx, objectID)
	}
	return nil
}

// classifyMiss distinguishes a CAS miss from a missing document.
func (r *mongoBookingRepository) classifyMiss(ctx context.Context, objectID primitive.ObjectID) error {
	err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return bookingserrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to re-check booking: %w", err)
	}
	return bookingserrors.ErrStateChanged
}
