package models

import (
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/streak"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Habit is a recurring activity a user checks in on.
type Habit struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name          string             `bson:"name" json:"name"`
	Category      string             `bson:"category,omitempty" json:"category"`
	Priority      int                `bson:"priority" json:"priority"` // 1 (high) .. 3 (low)
	Goal          streak.Goal        `bson:"goal" json:"goal"`
	StartDate     time.Time          `bson:"start_date" json:"start_date"`
	CurrentStreak int                `bson:"current_streak" json:"current_streak"`
	LongestStreak int                `bson:"longest_streak" json:"longest_streak"`
	LastCheckinAt *time.Time         `bson:"last_checkin_at,omitempty" json:"last_checkin_at,omitempty"`
	// Check-ins before this instant were made under a previous goal and
	// are not counted.
	GoalChangedAt time.Time `bson:"goal_changed_at,omitempty" json:"goal_changed_at,omitempty"`
	Version       int64     `bson:"version" json:"-"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// HabitInput is the writable part of a habit.
type HabitInput struct {
	Name      string      `json:"name"`
	Category  string      `json:"category"`
	Priority  int         `json:"priority"`
	Goal      streak.Goal `json:"goal"`
	StartDate *time.Time  `json:"start_date,omitempty"`
}
