package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Checkin records that a habit was performed at a point in time.
type Checkin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HabitID   primitive.ObjectID `bson:"habit_id" json:"habit_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	DayKey    string             `bson:"day_key" json:"day_key"` // YYYY-MM-DD in the owner's timezone
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
