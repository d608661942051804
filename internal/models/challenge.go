package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ChallengeStreak   = "streak"
	ChallengeCheckins = "checkins"
	ChallengeCustom   = "custom"
)

type Challenge struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title        string               `bson:"title" json:"title"`
	Description  string               `bson:"description" json:"description"`
	CreatedBy    primitive.ObjectID   `bson:"created_by" json:"created_by"`
	StartsAt     time.Time            `bson:"starts_at" json:"starts_at"`
	EndsAt       time.Time            `bson:"ends_at" json:"ends_at"`
	GoalType     string               `bson:"goal_type" json:"goal_type"`
	GoalValue    int                  `bson:"goal_value" json:"goal_value"`
	Participants []primitive.ObjectID `bson:"participants" json:"participants"`
	CreatedAt    time.Time            `bson:"created_at" json:"created_at"`
}

// ParticipantProgress is one row of a challenge leaderboard.
type ParticipantProgress struct {
	UserID    primitive.ObjectID `json:"user_id"`
	Name      string             `json:"name"`
	Progress  int                `json:"progress"`
	Completed bool               `json:"completed"`
}
