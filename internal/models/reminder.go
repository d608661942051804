package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Reminder struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	HabitID    primitive.ObjectID `bson:"habit_id" json:"habit_id"`
	Time       string             `bson:"time" json:"time"`                   // HH:mm
	Timezone   string             `bson:"timezone,omitempty" json:"timezone"` // empty means the owner's timezone
	Enabled    bool               `bson:"enabled" json:"enabled"`
	LastSentAt *time.Time         `bson:"last_sent_at,omitempty" json:"last_sent_at,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
