package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/Dias221467/Habit_Tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HabitRepository handles database operations related to habits.
type HabitRepository struct {
	collection *mongo.Collection
}

// NewHabitRepository creates a new instance of HabitRepository
func NewHabitRepository(db *mongo.Database) *HabitRepository {
	return &HabitRepository{
		collection: db.Collection("habits"),
	}
}

// CreateHabit inserts a new habit.
func (r *HabitRepository) CreateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	habit.CreatedAt = time.Now()
	habit.UpdatedAt = habit.CreatedAt

	result, err := r.collection.InsertOne(ctx, habit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert habit")
		return nil, fmt.Errorf("failed to insert habit: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	habit.ID = insertedID

	logger.Log.WithField("habit_id", habit.ID.Hex()).Info("Habit created successfully")
	return habit, nil
}

// GetHabitByID fetches a habit by its ID.
func (r *HabitRepository) GetHabitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error) {
	var habit models.Habit
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&habit); err != nil {
		return nil, fmt.Errorf("failed to find habit %s: %w", id.Hex(), translate(err))
	}
	return &habit, nil
}

// GetHabitsByUser lists a user's habits, optionally filtered by category,
// ordered by priority and then name.
func (r *HabitRepository) GetHabitsByUser(ctx context.Context, userID primitive.ObjectID, category string) ([]models.Habit, error) {
	filter := bson.M{"user_id": userID}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: 1}, {Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch habits")
		return nil, fmt.Errorf("failed to fetch habits: %w", err)
	}
	defer cursor.Close(ctx)

	habits := []models.Habit{}
	if err := cursor.All(ctx, &habits); err != nil {
		return nil, fmt.Errorf("failed to decode habits: %w", err)
	}
	return habits, nil
}

// UpdateHabit replaces the habit's mutable fields if its version still
// matches, and bumps the version.
func (r *HabitRepository) UpdateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	habit.UpdatedAt = time.Now()

	filter := bson.M{"_id": habit.ID, "version": habit.Version}
	update := bson.M{
		"$set": bson.M{
			"name":            habit.Name,
			"category":        habit.Category,
			"priority":        habit.Priority,
			"goal":            habit.Goal,
			"start_date":      habit.StartDate,
			"current_streak":  habit.CurrentStreak,
			"longest_streak":  habit.LongestStreak,
			"last_checkin_at": habit.LastCheckinAt,
			"goal_changed_at": habit.GoalChangedAt,
			"updated_at":      habit.UpdatedAt,
		},
		"$inc": bson.M{"version": 1},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", habit.ID.Hex()).Error("Failed to update habit")
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrVersionConflict
	}
	habit.Version++

	logger.Log.WithField("habit_id", habit.ID.Hex()).Info("Habit updated successfully")
	return habit, nil
}

// UpdateStreak stores freshly computed streak fields. It fails with
// ErrVersionConflict if the habit changed since version was read.
func (r *HabitRepository) UpdateStreak(ctx context.Context, id primitive.ObjectID, version int64, current, longest int, lastCheckin *time.Time) error {
	filter := bson.M{"_id": id, "version": version}
	update := bson.M{
		"$set": bson.M{
			"current_streak":  current,
			"longest_streak":  longest,
			"last_checkin_at": lastCheckin,
			"updated_at":      time.Now(),
		},
		"$inc": bson.M{"version": 1},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	return nil
}

// DeleteHabit deletes a habit by its ID.
func (r *HabitRepository) DeleteHabit(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Error("Failed to delete habit")
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	logger.Log.WithField("habit_id", id.Hex()).Info("Habit deleted successfully")
	return nil
}
