package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/Dias221467/Habit_Tracker/internal/repository"
	"github.com/Dias221467/Habit_Tracker/internal/streak"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultHistoryDays = 30
	maxHistoryDays     = 365
)

// HabitService encapsulates habit CRUD and ownership rules.
type HabitService struct {
	repo      HabitStore
	checkins  CheckinStore
	reminders ReminderStore
	users     UserStore
	activity  *ActivityService
	keeper    streakKeeper
	now       func() time.Time
}

func NewHabitService(repo HabitStore, checkins CheckinStore, reminders ReminderStore, users UserStore, activity *ActivityService) *HabitService {
	return &HabitService{
		repo:      repo,
		checkins:  checkins,
		reminders: reminders,
		users:     users,
		activity:  activity,
		keeper:    streakKeeper{habits: repo, checkins: checkins},
		now:       time.Now,
	}
}

// ValidateGoal rejects goals the evaluator cannot score.
func ValidateGoal(goal streak.Goal) error {
	if !goal.Type.Valid() {
		return invalid("goal.type", "must be one of daily, weekly, timesPerWeek")
	}
	if goal.Value < 1 {
		return invalid("goal.value", "must be at least 1")
	}
	if goal.Type == streak.GoalTimesPerWeek && goal.Value > 7 {
		return invalid("goal.value", "timesPerWeek cannot exceed 7")
	}
	return nil
}

// normalizeHabitInput trims and defaults in, then validates it.
func normalizeHabitInput(in *models.HabitInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if in.Name == "" {
		return invalid("name", "is required")
	}
	if in.Priority == 0 {
		in.Priority = 1
	}
	if in.Priority < 1 || in.Priority > 3 {
		return invalid("priority", "must be between 1 and 3")
	}
	// Only timesPerWeek counts days; daily and weekly goals need one check-in.
	if in.Goal.Value >= 0 && (in.Goal.Type == streak.GoalDaily || in.Goal.Type == streak.GoalWeekly) {
		in.Goal.Value = 1
	}
	return ValidateGoal(in.Goal)
}

// CreateHabit validates and stores a new habit for userID.
func (s *HabitService) CreateHabit(ctx context.Context, userID primitive.ObjectID, in models.HabitInput) (*models.Habit, error) {
	if err := normalizeHabitInput(&in); err != nil {
		return nil, err
	}

	now := s.now()
	habit := &models.Habit{
		UserID:    userID,
		Name:      in.Name,
		Category:  in.Category,
		Priority:  in.Priority,
		Goal:      in.Goal,
		StartDate: now,
	}
	if in.StartDate != nil {
		habit.StartDate = *in.StartDate
	}

	created, err := s.repo.CreateHabit(ctx, habit)
	if err != nil {
		return nil, err
	}

	s.activity.record(ctx, userID, ActivityHabitCreated, created.ID, fmt.Sprintf("Started habit %q", created.Name))
	logrus.WithFields(logrus.Fields{
		"habit_id": created.ID.Hex(),
		"user_id":  userID.Hex(),
	}).Info("Habit created")
	return created, nil
}

// owned loads a habit and checks it belongs to userID.
func (s *HabitService) owned(ctx context.Context, userID, habitID primitive.ObjectID) (*models.Habit, error) {
	habit, err := s.repo.GetHabitByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, ErrForbidden
	}
	return habit, nil
}

// GetHabit returns one of the user's habits with its streak evaluated now.
func (s *HabitService) GetHabit(ctx context.Context, userID, habitID primitive.ObjectID) (*models.Habit, error) {
	habit, err := s.owned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	loc, err := locationOf(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	s.keeper.live(ctx, habit, s.now(), loc)
	return habit, nil
}

// ListHabits returns the user's habits sorted by priority then name,
// optionally filtered by category.
func (s *HabitService) ListHabits(ctx context.Context, userID primitive.ObjectID, category string) ([]models.Habit, error) {
	habits, err := s.repo.GetHabitsByUser(ctx, userID, strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}
	if len(habits) == 0 {
		return []models.Habit{}, nil
	}

	loc, err := locationOf(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range habits {
		s.keeper.live(ctx, &habits[i], now, loc)
	}
	return habits, nil
}

// ListHabitsFor lets a user view their own habits or a friend's.
func (s *HabitService) ListHabitsFor(ctx context.Context, viewerID, ownerID primitive.ObjectID) ([]models.Habit, error) {
	if viewerID != ownerID {
		viewer, err := s.users.GetUserByID(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		if !containsID(viewer.Friends, ownerID) {
			return nil, ErrForbidden
		}
	}
	return s.ListHabits(ctx, ownerID, "")
}

// UpdateHabit applies in to the habit. Changing the goal resets both
// streak counters and starts counting check-ins from now.
func (s *HabitService) UpdateHabit(ctx context.Context, userID, habitID primitive.ObjectID, in models.HabitInput) (*models.Habit, error) {
	if err := normalizeHabitInput(&in); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		habit, err := s.owned(ctx, userID, habitID)
		if err != nil {
			return nil, err
		}

		if habit.Goal != in.Goal {
			habit.Goal = in.Goal
			habit.CurrentStreak = 0
			habit.LongestStreak = 0
			habit.GoalChangedAt = s.now()
		}
		habit.Name = in.Name
		habit.Category = in.Category
		habit.Priority = in.Priority
		if in.StartDate != nil {
			habit.StartDate = *in.StartDate
		}

		updated, err := s.repo.UpdateHabit(ctx, habit)
		if err == nil {
			s.activity.record(ctx, userID, ActivityHabitUpdated, habitID, fmt.Sprintf("Updated habit %q", updated.Name))
			return updated, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
		if attempt == maxStreakWriteAttempts {
			return nil, fmt.Errorf("%w: habit %s changed concurrently", ErrConflict, habitID.Hex())
		}
	}
}

// DeleteHabit removes the habit together with its check-ins and reminders.
func (s *HabitService) DeleteHabit(ctx context.Context, userID, habitID primitive.ObjectID) error {
	habit, err := s.owned(ctx, userID, habitID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteHabit(ctx, habitID); err != nil {
		return err
	}

	checkins, err := s.checkins.DeleteByHabit(ctx, habitID)
	if err != nil {
		return fmt.Errorf("failed to delete check-ins: %w", err)
	}
	reminders, err := s.reminders.DeleteByHabit(ctx, habitID)
	if err != nil {
		return fmt.Errorf("failed to delete reminders: %w", err)
	}

	s.activity.record(ctx, userID, ActivityHabitDeleted, habitID, fmt.Sprintf("Deleted habit %q", habit.Name))
	logrus.WithFields(logrus.Fields{
		"habit_id":  habitID.Hex(),
		"checkins":  checkins,
		"reminders": reminders,
	}).Info("Habit deleted")
	return nil
}

// History returns daily check-in counts for the last days days, oldest
// first.
func (s *HabitService) History(ctx context.Context, userID, habitID primitive.ObjectID, days int) ([]streak.DayCount, error) {
	if days <= 0 {
		days = defaultHistoryDays
	}
	if days > maxHistoryDays {
		days = maxHistoryDays
	}

	if _, err := s.owned(ctx, userID, habitID); err != nil {
		return nil, err
	}
	loc, err := locationOf(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	timestamps, err := s.checkins.Timestamps(ctx, habitID)
	if err != nil {
		return nil, err
	}
	return streak.DailyCounts(timestamps, s.now(), days, loc), nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// Evaluate scores a habit as of now in its owner's timezone. Callers are
// responsible for access checks.
func (s *HabitService) Evaluate(ctx context.Context, habitID primitive.ObjectID) (*models.Habit, streak.Result, error) {
	habit, err := s.repo.GetHabitByID(ctx, habitID)
	if err != nil {
		return nil, streak.Result{}, err
	}
	loc, err := locationOf(ctx, s.users, habit.UserID)
	if err != nil {
		return nil, streak.Result{}, err
	}
	ev, err := s.keeper.evaluate(ctx, habit, s.now(), loc)
	return habit, ev.Result, err
}
