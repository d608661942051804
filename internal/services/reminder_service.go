package services

import (
	"context"
	"strings"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/Dias221467/Habit_Tracker/internal/streak"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const clockLayout = "15:04"

type ReminderInput struct {
	HabitID  string `json:"habit_id"`
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
	Enabled  *bool  `json:"enabled,omitempty"`
}

type ReminderService struct {
	repo   ReminderStore
	habits HabitStore
	users  UserStore
	now    func() time.Time
}

func NewReminderService(repo ReminderStore, habits HabitStore, users UserStore) *ReminderService {
	return &ReminderService{repo: repo, habits: habits, users: users, now: time.Now}
}

// clockMinutes parses HH:mm into minutes after midnight.
func clockMinutes(clock string) (int, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 0, invalid("time", "must be HH:mm")
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ReminderDue reports whether rem should fire at now: its local time has
// been reached and it has not fired earlier on the same local day.
func ReminderDue(rem models.Reminder, now time.Time, loc *time.Location) bool {
	if !rem.Enabled {
		return false
	}
	minutes, err := clockMinutes(rem.Time)
	if err != nil {
		return false
	}
	local := now.In(loc)
	if local.Hour()*60+local.Minute() < minutes {
		return false
	}
	if rem.LastSentAt != nil && streak.DayKey(*rem.LastSentAt, loc) == streak.DayKey(now, loc) {
		return false
	}
	return true
}

func (s *ReminderService) apply(ctx context.Context, userID primitive.ObjectID, rem *models.Reminder, in ReminderInput) error {
	habitID, err := primitive.ObjectIDFromHex(strings.TrimSpace(in.HabitID))
	if err != nil {
		return invalid("habit_id", "is not a valid id")
	}
	habit, err := s.habits.GetHabitByID(ctx, habitID)
	if err != nil {
		return err
	}
	if habit.UserID != userID {
		return ErrForbidden
	}

	in.Time = strings.TrimSpace(in.Time)
	if _, err := clockMinutes(in.Time); err != nil {
		return err
	}
	in.Timezone = strings.TrimSpace(in.Timezone)
	if in.Timezone != "" {
		if _, err := time.LoadLocation(in.Timezone); err != nil {
			return invalid("timezone", "unknown timezone %q", in.Timezone)
		}
	}

	rem.HabitID = habitID
	rem.Time = in.Time
	rem.Timezone = in.Timezone
	if in.Enabled != nil {
		rem.Enabled = *in.Enabled
	}
	return nil
}

// CreateReminder schedules a daily reminder for one of the user's habits.
func (s *ReminderService) CreateReminder(ctx context.Context, userID primitive.ObjectID, in ReminderInput) (*models.Reminder, error) {
	rem := &models.Reminder{UserID: userID, Enabled: true}
	if err := s.apply(ctx, userID, rem, in); err != nil {
		return nil, err
	}
	return s.repo.CreateReminder(ctx, rem)
}

func (s *ReminderService) ListReminders(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error) {
	reminders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	return reminders, nil
}

func (s *ReminderService) owned(ctx context.Context, userID, id primitive.ObjectID) (*models.Reminder, error) {
	rem, err := s.repo.GetReminderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rem.UserID != userID {
		return nil, ErrForbidden
	}
	return rem, nil
}

func (s *ReminderService) UpdateReminder(ctx context.Context, userID, id primitive.ObjectID, in ReminderInput) (*models.Reminder, error) {
	rem, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, userID, rem, in); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateReminder(ctx, rem); err != nil {
		return nil, err
	}
	return rem, nil
}

func (s *ReminderService) DeleteReminder(ctx context.Context, userID, id primitive.ObjectID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.DeleteReminder(ctx, id)
}

// ListEnabled returns every enabled reminder across users.
func (s *ReminderService) ListEnabled(ctx context.Context) ([]models.Reminder, error) {
	return s.repo.ListEnabled(ctx)
}

func (s *ReminderService) MarkSent(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return s.repo.MarkSent(ctx, id, at)
}

// Location resolves the reminder's timezone, falling back to its owner's.
func (s *ReminderService) Location(ctx context.Context, rem models.Reminder) (*time.Location, error) {
	if rem.Timezone != "" {
		if loc, err := time.LoadLocation(rem.Timezone); err == nil {
			return loc, nil
		}
	}
	return locationOf(ctx, s.users, rem.UserID)
}
