package services

import (
	"context"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 2024-03-20 is a Wednesday.
var fixedNow = time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// daysAgo returns 09:00 UTC n days before fixedNow.
func daysAgo(n int) time.Time {
	return time.Date(2024, time.March, 20-n, 9, 0, 0, 0, time.UTC)
}

func daysAgoList(ns ...int) []time.Time {
	out := make([]time.Time, 0, len(ns))
	for _, n := range ns {
		out = append(out, daysAgo(n))
	}
	return out
}

func testUser(tz string) *models.User {
	return &models.User{ID: primitive.NewObjectID(), Name: "Ada", Email: "ada@example.com", Timezone: tz}
}

// awardLedger stands in for the reward_awards collection.
type awardLedger map[string]bool

func (l awardLedger) record(_ context.Context, _, habitID primitive.ObjectID, key string) bool {
	k := habitID.Hex() + "/" + key
	if l[k] {
		return false
	}
	l[k] = true
	return true
}
