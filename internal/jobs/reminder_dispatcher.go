package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/metrics"
	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/Dias221467/Habit_Tracker/internal/services"
	"github.com/Dias221467/Habit_Tracker/internal/streak"
	"github.com/sirupsen/logrus"
)

type ReminderDispatcher struct {
	ReminderService     *services.ReminderService
	HabitService        *services.HabitService
	NotificationService *services.NotificationService
	Now                 func() time.Time
}

// NewReminderDispatcher creates a new instance of ReminderDispatcher
func NewReminderDispatcher(reminders *services.ReminderService, habits *services.HabitService, notifications *services.NotificationService) *ReminderDispatcher {
	return &ReminderDispatcher{
		ReminderService:     reminders,
		HabitService:        habits,
		NotificationService: notifications,
		Now:                 time.Now,
	}
}

// RunScan sends every due reminder whose habit still needs a check-in in
// the current period. A due reminder is marked sent either way, so each
// fires at most once per local day.
func (d *ReminderDispatcher) RunScan(ctx context.Context) (int, error) {
	reminders, err := d.ReminderService.ListEnabled(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch reminders: %w", err)
	}

	now := d.Now()
	sent := 0
	for _, rem := range reminders {
		entry := logrus.WithField("reminder_id", rem.ID.Hex())

		loc, err := d.ReminderService.Location(ctx, rem)
		if err != nil {
			entry.WithError(err).Warn("Failed to resolve reminder timezone")
			continue
		}
		if !services.ReminderDue(rem, now, loc) {
			continue
		}

		habit, res, err := d.HabitService.Evaluate(ctx, rem.HabitID)
		if errors.Is(err, services.ErrNotFound) {
			continue
		}
		if err != nil {
			entry.WithError(err).Warn("Failed to evaluate habit for reminder")
			continue
		}

		if err := d.ReminderService.MarkSent(ctx, rem.ID, now); err != nil {
			entry.WithError(err).Warn("Failed to mark reminder sent")
			continue
		}
		if res.PeriodSatisfied {
			continue
		}

		err = d.NotificationService.CreateNotification(ctx, rem.UserID, models.NotifHabitReminder,
			"⏰ "+habit.Name, reminderMessage(habit, res), &habit.ID)
		if err != nil {
			entry.WithError(err).Warn("Failed to send habit reminder")
			continue
		}
		metrics.RemindersSent.Inc()
		sent++
	}

	logrus.WithField("sent", sent).Debug("Reminder scan completed")
	return sent, nil
}

func reminderMessage(habit *models.Habit, res streak.Result) string {
	switch {
	case habit.Goal.Type == streak.GoalTimesPerWeek:
		return fmt.Sprintf("%d of %d check-ins done this week for %q.", res.PeriodCount, res.PeriodTarget, habit.Name)
	case res.CurrentStreak > 0 && habit.Goal.Weekly():
		return fmt.Sprintf("Keep your %d-week streak on %q alive!", res.CurrentStreak, habit.Name)
	case res.CurrentStreak > 0:
		return fmt.Sprintf("Keep your %d-day streak on %q alive!", res.CurrentStreak, habit.Name)
	default:
		return fmt.Sprintf("Time to check in on %q.", habit.Name)
	}
}
