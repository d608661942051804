package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/Dias221467/Habit_Tracker/internal/repository"
	"github.com/Dias221467/Habit_Tracker/internal/streak"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxStreakWriteAttempts = 3

// streakKeeper derives a habit's streak from its stored check-ins.
type streakKeeper struct {
	habits   HabitStore
	checkins CheckinStore
}

// evaluation is a streak result together with what the keeper needs to
// store and reward it.
type evaluation struct {
	streak.Result
	last     *time.Time
	runStart string
}

// goalCutoff is the start of the day or week in which the habit's goal last
// changed. Check-ins before it were made under an older goal.
func goalCutoff(habit *models.Habit, loc *time.Location) time.Time {
	if habit.GoalChangedAt.IsZero() {
		return time.Time{}
	}
	return streak.PeriodStart(habit.Goal, habit.GoalChangedAt, loc)
}

// evaluate runs the evaluator over the check-ins made under the habit's
// current goal. The most recent check-in of any goal is reported as last.
func (k streakKeeper) evaluate(ctx context.Context, habit *models.Habit, now time.Time, loc *time.Location) (evaluation, error) {
	timestamps, err := k.checkins.Timestamps(ctx, habit.ID)
	if err != nil {
		return evaluation{}, fmt.Errorf("failed to load check-ins: %w", err)
	}
	counted := streak.Since(timestamps, goalCutoff(habit, loc))
	return evaluation{
		Result:   streak.Evaluate(habit.Goal, counted, now, loc),
		last:     latest(timestamps),
		runStart: streak.RunStart(habit.Goal, counted, now, loc),
	}, nil
}

// sync evaluates the habit and stores the result with a version
// compare-and-set, reloading and retrying on conflict. habit is updated in
// place.
func (k streakKeeper) sync(ctx context.Context, habit *models.Habit, now time.Time, loc *time.Location) (evaluation, error) {
	for attempt := 1; ; attempt++ {
		ev, err := k.evaluate(ctx, habit, now, loc)
		if err != nil {
			return ev, err
		}
		if habit.CurrentStreak == ev.CurrentStreak && habit.LongestStreak == ev.LongestStreak && sameInstant(habit.LastCheckinAt, ev.last) {
			return ev, nil
		}

		err = k.habits.UpdateStreak(ctx, habit.ID, habit.Version, ev.CurrentStreak, ev.LongestStreak, ev.last)
		if err == nil {
			habit.CurrentStreak = ev.CurrentStreak
			habit.LongestStreak = ev.LongestStreak
			habit.LastCheckinAt = ev.last
			habit.Version++
			return ev, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return ev, err
		}
		if attempt == maxStreakWriteAttempts {
			return ev, fmt.Errorf("%w: habit %s changed concurrently", ErrConflict, habit.ID.Hex())
		}

		logrus.WithFields(logrus.Fields{
			"habit_id": habit.ID.Hex(),
			"attempt":  attempt,
		}).Debug("Streak write lost a version race, retrying")

		fresh, err := k.habits.GetHabitByID(ctx, habit.ID)
		if err != nil {
			return ev, err
		}
		*habit = *fresh
	}
}

// live overwrites the habit's streak fields with values evaluated at now,
// so that reads never show a streak whose period has lapsed.
func (k streakKeeper) live(ctx context.Context, habit *models.Habit, now time.Time, loc *time.Location) {
	ev, err := k.evaluate(ctx, habit, now, loc)
	if err != nil {
		logrus.WithError(err).WithField("habit_id", habit.ID.Hex()).Warn("Failed to evaluate streak, serving stored values")
		return
	}
	habit.CurrentStreak = ev.CurrentStreak
	habit.LongestStreak = ev.LongestStreak
}

func latest(timestamps []time.Time) *time.Time {
	if len(timestamps) == 0 {
		return nil
	}
	max := timestamps[0]
	for _, ts := range timestamps[1:] {
		if ts.After(max) {
			max = ts
		}
	}
	return &max
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// locationOf returns the user's timezone.
func locationOf(ctx context.Context, users UserStore, userID primitive.ObjectID) (*time.Location, error) {
	user, err := users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Location(), nil
}
