package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Reward struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	CostPoints  int                `bson:"cost_points" json:"cost_points"`
	Icon        string             `bson:"icon" json:"icon"`
}

// UserReward records a reward redeemed by a user.
type UserReward struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	RewardID  primitive.ObjectID `bson:"reward_id" json:"reward_id"`
	Title     string             `bson:"title" json:"title"`
	Cost      int                `bson:"cost" json:"cost"`
	ClaimedAt time.Time          `bson:"claimed_at" json:"claimed_at"`
}

// AwardEntry marks one credit paid for a habit, such as the points for a
// day's check-in or a milestone reached within one streak run. Each key is
// paid at most once per habit.
type AwardEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	HabitID   primitive.ObjectID `bson:"habit_id" json:"habit_id"`
	Key       string             `bson:"key" json:"key"`
	AwardedAt time.Time          `bson:"awarded_at" json:"awarded_at"`
}
