package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CheckinRepository stores check-ins in their own collection, referencing
// habits and users by id.
type CheckinRepository struct {
	collection *mongo.Collection
}

func NewCheckinRepository(db *mongo.Database) *CheckinRepository {
	return &CheckinRepository{
		collection: db.Collection("checkins"),
	}
}

// CreateCheckin inserts a check-in. A second check-in for the same habit and
// day fails with ErrDuplicate.
func (r *CheckinRepository) CreateCheckin(ctx context.Context, checkin *models.Checkin) (*models.Checkin, error) {
	checkin.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, checkin)
	if err != nil {
		err = translate(err)
		if !errors.Is(err, ErrDuplicate) {
			logrus.WithError(err).Error("Failed to insert checkin")
		}
		return nil, fmt.Errorf("failed to insert checkin: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	checkin.ID = insertedID
	return checkin, nil
}

func (r *CheckinRepository) GetCheckinByID(ctx context.Context, id primitive.ObjectID) (*models.Checkin, error) {
	var checkin models.Checkin
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&checkin); err != nil {
		return nil, fmt.Errorf("failed to find checkin: %w", translate(err))
	}
	return &checkin, nil
}

// ListByHabit returns a habit's check-ins, newest first.
func (r *CheckinRepository) ListByHabit(ctx context.Context, habitID primitive.ObjectID) ([]models.Checkin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"habit_id": habitID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch checkins: %w", err)
	}
	defer cursor.Close(ctx)

	checkins := []models.Checkin{}
	if err := cursor.All(ctx, &checkins); err != nil {
		return nil, fmt.Errorf("failed to decode checkins: %w", err)
	}
	return checkins, nil
}

// Timestamps returns only the check-in times of a habit.
func (r *CheckinRepository) Timestamps(ctx context.Context, habitID primitive.ObjectID) ([]time.Time, error) {
	opts := options.Find().SetProjection(bson.M{"timestamp": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"habit_id": habitID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch checkin timestamps: %w", err)
	}
	defer cursor.Close(ctx)

	var out []time.Time
	for cursor.Next(ctx) {
		var row struct {
			Timestamp time.Time `bson:"timestamp"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode checkin: %w", err)
		}
		out = append(out, row.Timestamp)
	}
	return out, cursor.Err()
}

// CountByUser counts check-ins of a user within [from, to). Zero bounds are open.
func (r *CheckinRepository) CountByUser(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (int64, error) {
	filter := bson.M{"user_id": userID}
	window := bson.M{}
	if !from.IsZero() {
		window["$gte"] = from
	}
	if !to.IsZero() {
		window["$lt"] = to
	}
	if len(window) > 0 {
		filter["timestamp"] = window
	}

	n, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count checkins: %w", err)
	}
	return n, nil
}

func (r *CheckinRepository) DeleteCheckin(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete checkin: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByHabit removes every check-in of a habit.
func (r *CheckinRepository) DeleteByHabit(ctx context.Context, habitID primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"habit_id": habitID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete checkins of habit %s: %w", habitID.Hex(), err)
	}
	return res.DeletedCount, nil
}
