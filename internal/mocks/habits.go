package mocks

import (
	"context"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HabitStore struct {
	mock.Mock
}

func (m *HabitStore) CreateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	args := m.Called(ctx, habit)
	if fn, ok := args.Get(0).(func(context.Context, *models.Habit) *models.Habit); ok {
		return fn(ctx, habit), args.Error(1)
	}
	h, _ := args.Get(0).(*models.Habit)
	return h, args.Error(1)
}

func (m *HabitStore) GetHabitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(context.Context, primitive.ObjectID) *models.Habit); ok {
		return fn(ctx, id), args.Error(1)
	}
	h, _ := args.Get(0).(*models.Habit)
	return h, args.Error(1)
}

func (m *HabitStore) GetHabitsByUser(ctx context.Context, userID primitive.ObjectID, category string) ([]models.Habit, error) {
	args := m.Called(ctx, userID, category)
	habits, _ := args.Get(0).([]models.Habit)
	return habits, args.Error(1)
}

func (m *HabitStore) UpdateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	args := m.Called(ctx, habit)
	if fn, ok := args.Get(0).(func(context.Context, *models.Habit) *models.Habit); ok {
		return fn(ctx, habit), args.Error(1)
	}
	h, _ := args.Get(0).(*models.Habit)
	return h, args.Error(1)
}

func (m *HabitStore) UpdateStreak(ctx context.Context, id primitive.ObjectID, version int64, current, longest int, lastCheckin *time.Time) error {
	return m.Called(ctx, id, version, current, longest, lastCheckin).Error(0)
}

func (m *HabitStore) DeleteHabit(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type CheckinStore struct {
	mock.Mock
}

func (m *CheckinStore) CreateCheckin(ctx context.Context, checkin *models.Checkin) (*models.Checkin, error) {
	args := m.Called(ctx, checkin)
	if fn, ok := args.Get(0).(func(context.Context, *models.Checkin) *models.Checkin); ok {
		return fn(ctx, checkin), args.Error(1)
	}
	c, _ := args.Get(0).(*models.Checkin)
	return c, args.Error(1)
}

func (m *CheckinStore) GetCheckinByID(ctx context.Context, id primitive.ObjectID) (*models.Checkin, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Checkin)
	return c, args.Error(1)
}

func (m *CheckinStore) ListByHabit(ctx context.Context, habitID primitive.ObjectID) ([]models.Checkin, error) {
	args := m.Called(ctx, habitID)
	list, _ := args.Get(0).([]models.Checkin)
	return list, args.Error(1)
}

func (m *CheckinStore) Timestamps(ctx context.Context, habitID primitive.ObjectID) ([]time.Time, error) {
	args := m.Called(ctx, habitID)
	ts, _ := args.Get(0).([]time.Time)
	return ts, args.Error(1)
}

func (m *CheckinStore) CountByUser(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, userID, from, to)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func (m *CheckinStore) DeleteCheckin(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CheckinStore) DeleteByHabit(ctx context.Context, habitID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, habitID)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

type ReminderStore struct {
	mock.Mock
}

func (m *ReminderStore) CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	args := m.Called(ctx, reminder)
	if fn, ok := args.Get(0).(func(context.Context, *models.Reminder) *models.Reminder); ok {
		return fn(ctx, reminder), args.Error(1)
	}
	r, _ := args.Get(0).(*models.Reminder)
	return r, args.Error(1)
}

func (m *ReminderStore) GetReminderByID(ctx context.Context, id primitive.ObjectID) (*models.Reminder, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Reminder)
	return r, args.Error(1)
}

func (m *ReminderStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.Reminder)
	return list, args.Error(1)
}

func (m *ReminderStore) ListEnabled(ctx context.Context) ([]models.Reminder, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.Reminder)
	return list, args.Error(1)
}

func (m *ReminderStore) UpdateReminder(ctx context.Context, reminder *models.Reminder) error {
	return m.Called(ctx, reminder).Error(0)
}

func (m *ReminderStore) MarkSent(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *ReminderStore) DeleteReminder(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ReminderStore) DeleteByHabit(ctx context.Context, habitID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, habitID)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}
