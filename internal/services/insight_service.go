package services

import (
	"context"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/streak"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const insightWindowDays = 30

type HabitInsight struct {
	HabitID        primitive.ObjectID `json:"habit_id"`
	Name           string             `json:"name"`
	Goal           streak.Goal        `json:"goal"`
	CurrentStreak  int                `json:"current_streak"`
	LongestStreak  int                `json:"longest_streak"`
	CompletionRate float64            `json:"completion_rate"`
}

type Insights struct {
	HabitCount        int            `json:"habit_count"`
	TotalCheckins     int64          `json:"total_checkins"`
	BestCurrentStreak int            `json:"best_current_streak"`
	BestLongestStreak int            `json:"best_longest_streak"`
	Points            int            `json:"points"`
	Habits            []HabitInsight `json:"habits"`
}

// InsightService summarizes a user's progress across habits.
type InsightService struct {
	habits   *HabitService
	checkins CheckinStore
	users    UserStore
	now      func() time.Time
}

func NewInsightService(habits *HabitService, checkins CheckinStore, users UserStore) *InsightService {
	return &InsightService{habits: habits, checkins: checkins, users: users, now: time.Now}
}

func (s *InsightService) GetInsights(ctx context.Context, userID primitive.ObjectID) (*Insights, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	habits, err := s.habits.ListHabits(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	total, err := s.checkins.CountByUser(ctx, userID, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	loc := user.Location()
	out := &Insights{
		HabitCount:    len(habits),
		TotalCheckins: total,
		Points:        user.Points,
		Habits:        make([]HabitInsight, 0, len(habits)),
	}
	for _, h := range habits {
		timestamps, err := s.checkins.Timestamps(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		out.Habits = append(out.Habits, HabitInsight{
			HabitID:        h.ID,
			Name:           h.Name,
			Goal:           h.Goal,
			CurrentStreak:  h.CurrentStreak,
			LongestStreak:  h.LongestStreak,
			CompletionRate: streak.CompletionRate(h.Goal, streak.Since(timestamps, goalCutoff(&h, loc)), now, insightWindowDays, loc),
		})
		if h.CurrentStreak > out.BestCurrentStreak {
			out.BestCurrentStreak = h.CurrentStreak
		}
		if h.LongestStreak > out.BestLongestStreak {
			out.BestLongestStreak = h.LongestStreak
		}
	}
	return out, nil
}
