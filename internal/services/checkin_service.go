package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/metrics"
	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/Dias221467/Habit_Tracker/internal/repository"
	"github.com/Dias221467/Habit_Tracker/internal/streak"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckinResult is returned for an accepted check-in.
type CheckinResult struct {
	Checkin *models.Checkin `json:"checkin"`
	Streak  streak.Result   `json:"streak"`
	Award   Award           `json:"award"`
}

// CheckinService records check-ins and keeps habit streaks current.
type CheckinService struct {
	habits   HabitStore
	checkins CheckinStore
	users    UserStore
	rewards  *RewardService
	activity *ActivityService
	keeper   streakKeeper
	now      func() time.Time
}

func NewCheckinService(habits HabitStore, checkins CheckinStore, users UserStore, rewards *RewardService, activity *ActivityService) *CheckinService {
	return &CheckinService{
		habits:   habits,
		checkins: checkins,
		users:    users,
		rewards:  rewards,
		activity: activity,
		keeper:   streakKeeper{habits: habits, checkins: checkins},
		now:      time.Now,
	}
}

func (s *CheckinService) ownedHabit(ctx context.Context, userID, habitID primitive.ObjectID) (*models.Habit, error) {
	habit, err := s.habits.GetHabitByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, ErrForbidden
	}
	return habit, nil
}

// CheckIn records that userID performed the habit at at, or now when at is
// nil. Only one check-in per habit per local day is accepted.
func (s *CheckinService) CheckIn(ctx context.Context, userID, habitID primitive.ObjectID, at *time.Time) (*CheckinResult, error) {
	habit, err := s.ownedHabit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	if err := ValidateGoal(habit.Goal); err != nil {
		return nil, err
	}
	loc, err := locationOf(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ts := now
	if at != nil {
		ts = *at
	}
	if ts.After(now) {
		metrics.Checkins.WithLabelValues("rejected").Inc()
		return nil, invalid("timestamp", "cannot be in the future")
	}
	if streak.DayKey(ts, loc) < streak.DayKey(habit.StartDate, loc) {
		metrics.Checkins.WithLabelValues("rejected").Inc()
		return nil, invalid("timestamp", "is before the habit's start date")
	}
	if ts.Before(goalCutoff(habit, loc)) {
		metrics.Checkins.WithLabelValues("rejected").Inc()
		return nil, invalid("timestamp", "is before the current goal took effect")
	}

	checkin, err := s.checkins.CreateCheckin(ctx, &models.Checkin{
		HabitID:   habit.ID,
		UserID:    userID,
		Timestamp: ts.UTC(),
		DayKey:    streak.DayKey(ts, loc),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			metrics.Checkins.WithLabelValues("duplicate").Inc()
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}
	metrics.Checkins.WithLabelValues("created").Inc()

	previous := habit.CurrentStreak
	ev, err := s.keeper.sync(ctx, habit, now, loc)
	if err != nil {
		logrus.WithError(err).WithField("habit_id", habit.ID.Hex()).Error("Check-in stored but streak update failed")
		return nil, err
	}
	res := ev.Result

	award, err := s.rewards.AwardCheckin(ctx, userID, habit, checkin.DayKey, previous, res.CurrentStreak, ev.runStart)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID.Hex()).Warn("Failed to award check-in")
	}

	s.activity.record(ctx, userID, ActivityCheckin, habit.ID, fmt.Sprintf("Checked in on %q", habit.Name))
	logrus.WithFields(logrus.Fields{
		"habit_id":       habit.ID.Hex(),
		"day":            checkin.DayKey,
		"current_streak": res.CurrentStreak,
	}).Info("Check-in recorded")

	return &CheckinResult{Checkin: checkin, Streak: res, Award: award}, nil
}

// GetStreak evaluates the habit's streak as of now without storing it.
func (s *CheckinService) GetStreak(ctx context.Context, userID, habitID primitive.ObjectID) (streak.Result, error) {
	habit, err := s.ownedHabit(ctx, userID, habitID)
	if err != nil {
		return streak.Result{}, err
	}
	loc, err := locationOf(ctx, s.users, userID)
	if err != nil {
		return streak.Result{}, err
	}
	ev, err := s.keeper.evaluate(ctx, habit, s.now(), loc)
	return ev.Result, err
}

// ListCheckins returns the habit's check-ins, newest first.
func (s *CheckinService) ListCheckins(ctx context.Context, userID, habitID primitive.ObjectID) ([]models.Checkin, error) {
	if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
		return nil, err
	}
	checkins, err := s.checkins.ListByHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if checkins == nil {
		checkins = []models.Checkin{}
	}
	return checkins, nil
}

// DeleteCheckin removes a check-in and recomputes the habit's streak.
// Points already awarded are kept, and stay recorded in the award ledger so
// checking in again on that day earns nothing more.
func (s *CheckinService) DeleteCheckin(ctx context.Context, userID, checkinID primitive.ObjectID) (streak.Result, error) {
	checkin, err := s.checkins.GetCheckinByID(ctx, checkinID)
	if err != nil {
		return streak.Result{}, err
	}
	if checkin.UserID != userID {
		return streak.Result{}, ErrForbidden
	}
	if err := s.checkins.DeleteCheckin(ctx, checkinID); err != nil {
		return streak.Result{}, err
	}

	habit, err := s.habits.GetHabitByID(ctx, checkin.HabitID)
	if err != nil {
		return streak.Result{}, err
	}
	loc, err := locationOf(ctx, s.users, userID)
	if err != nil {
		return streak.Result{}, err
	}
	ev, err := s.keeper.sync(ctx, habit, s.now(), loc)
	return ev.Result, err
}
