package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReminderRepository struct {
	collection *mongo.Collection
}

func NewReminderRepository(db *mongo.Database) *ReminderRepository {
	return &ReminderRepository{
		collection: db.Collection("reminders"),
	}
}

func (r *ReminderRepository) CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	reminder.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, reminder)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert reminder")
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	reminder.ID = insertedID
	return reminder, nil
}

func (r *ReminderRepository) GetReminderByID(ctx context.Context, id primitive.ObjectID) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reminder); err != nil {
		return nil, fmt.Errorf("failed to find reminder: %w", translate(err))
	}
	return &reminder, nil
}

// ListByUser returns a user's reminders ordered by time of day.
func (r *ReminderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

// ListEnabled returns every enabled reminder.
func (r *ReminderRepository) ListEnabled(ctx context.Context) ([]models.Reminder, error) {
	return r.find(ctx, bson.M{"enabled": true})
}

func (r *ReminderRepository) find(ctx context.Context, filter bson.M) ([]models.Reminder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reminders: %w", err)
	}
	defer cursor.Close(ctx)

	reminders := []models.Reminder{}
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %w", err)
	}
	return reminders, nil
}

func (r *ReminderRepository) UpdateReminder(ctx context.Context, reminder *models.Reminder) error {
	update := bson.M{"$set": bson.M{
		"time":     reminder.Time,
		"timezone": reminder.Timezone,
		"enabled":  reminder.Enabled,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": reminder.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkSent records when a reminder last fired.
func (r *ReminderRepository) MarkSent(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_sent_at": at}})
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}
	return nil
}

func (r *ReminderRepository) DeleteReminder(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByHabit removes the reminders of a deleted habit.
func (r *ReminderRepository) DeleteByHabit(ctx context.Context, habitID primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"habit_id": habitID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete reminders of habit %s: %w", habitID.Hex(), err)
	}
	return res.DeletedCount, nil
}
