package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/mocks"
	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/Dias221467/Habit_Tracker/internal/services"
	"github.com/Dias221467/Habit_Tracker/internal/streak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type dispatcherFixture struct {
	reminders *mocks.ReminderStore
	habits    *mocks.HabitStore
	checkins  *mocks.CheckinStore
	users     *mocks.UserStore
	notifs    *mocks.NotificationStore
	d         *ReminderDispatcher

	user  *models.User
	habit *models.Habit
}

func newDispatcherFixture(t *testing.T) *dispatcherFixture {
	f := &dispatcherFixture{
		reminders: new(mocks.ReminderStore),
		habits:    new(mocks.HabitStore),
		checkins:  new(mocks.CheckinStore),
		users:     new(mocks.UserStore),
		notifs:    new(mocks.NotificationStore),
		user:      &models.User{ID: primitive.NewObjectID(), Timezone: "UTC"},
	}
	f.habit = &models.Habit{
		ID:     primitive.NewObjectID(),
		UserID: f.user.ID,
		Name:   "Stretch",
		Goal:   streak.Goal{Type: streak.GoalDaily, Value: 1},
	}

	habitSvc := services.NewHabitService(f.habits, f.checkins, f.reminders, f.users, nil)
	f.d = NewReminderDispatcher(
		services.NewReminderService(f.reminders, f.habits, f.users),
		habitSvc,
		services.NewNotificationService(f.notifs, f.users),
	)

	f.users.On("GetUserByID", mock.Anything, f.user.ID).Return(f.user, nil).Maybe()
	f.habits.On("GetHabitByID", mock.Anything, f.habit.ID).Return(f.habit, nil).Maybe()
	t.Cleanup(func() {
		mock.AssertExpectationsForObjects(t, f.reminders, f.notifs)
	})
	return f
}

func (f *dispatcherFixture) reminder() models.Reminder {
	return models.Reminder{ID: primitive.NewObjectID(), UserID: f.user.ID, HabitID: f.habit.ID, Time: "00:00", Enabled: true}
}

func TestRunScanSendsReminderForOpenPeriod(t *testing.T) {
	f := newDispatcherFixture(t)
	rem := f.reminder()

	f.reminders.On("ListEnabled", mock.Anything).Return([]models.Reminder{rem}, nil).Once()
	f.checkins.On("Timestamps", mock.Anything, f.habit.ID).Return([]time.Time{time.Now().AddDate(0, 0, -1)}, nil).Once()
	f.reminders.On("MarkSent", mock.Anything, rem.ID, mock.Anything).Return(nil).Once()
	f.notifs.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.Type == models.NotifHabitReminder && n.UserID == f.user.ID && *n.TargetID == f.habit.ID
	})).Return(nil).Once()

	sent, err := f.d.RunScan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestRunScanSkipsSatisfiedPeriod(t *testing.T) {
	f := newDispatcherFixture(t)
	rem := f.reminder()

	f.reminders.On("ListEnabled", mock.Anything).Return([]models.Reminder{rem}, nil).Once()
	f.checkins.On("Timestamps", mock.Anything, f.habit.ID).Return([]time.Time{time.Now()}, nil).Once()
	f.reminders.On("MarkSent", mock.Anything, rem.ID, mock.Anything).Return(nil).Once()

	sent, err := f.d.RunScan(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	f.notifs.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
}

func TestRunScanSkipsReminderAlreadySentToday(t *testing.T) {
	f := newDispatcherFixture(t)
	rem := f.reminder()
	sentAt := time.Now()
	rem.LastSentAt = &sentAt

	f.reminders.On("ListEnabled", mock.Anything).Return([]models.Reminder{rem}, nil).Once()

	sent, err := f.d.RunScan(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	f.reminders.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderMessage(t *testing.T) {
	habit := &models.Habit{Name: "Swim", Goal: streak.Goal{Type: streak.GoalTimesPerWeek, Value: 3}}
	assert.Equal(t, `1 of 3 check-ins done this week for "Swim".`,
		reminderMessage(habit, streak.Result{PeriodCount: 1, PeriodTarget: 3}))

	habit.Goal = streak.Goal{Type: streak.GoalDaily, Value: 1}
	assert.Equal(t, `Keep your 4-day streak on "Swim" alive!`, reminderMessage(habit, streak.Result{CurrentStreak: 4}))
	assert.Equal(t, `Time to check in on "Swim".`, reminderMessage(habit, streak.Result{}))
}
