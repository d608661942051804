package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/mocks"
	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/Dias221467/Habit_Tracker/internal/repository"
	"github.com/Dias221467/Habit_Tracker/internal/services"
	"github.com/Dias221467/Habit_Tracker/internal/streak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type checkinHandlerFixture struct {
	habits   *mocks.HabitStore
	checkins *mocks.CheckinStore
	users    *mocks.UserStore
	handler  *CheckinHandler
	user     *models.User
	habit    *models.Habit
}

func newCheckinHandlerFixture(t *testing.T) *checkinHandlerFixture {
	f := &checkinHandlerFixture{
		habits:   new(mocks.HabitStore),
		checkins: new(mocks.CheckinStore),
		users:    new(mocks.UserStore),
		user:     &models.User{ID: primitive.NewObjectID(), Name: "Ada", Timezone: "UTC"},
	}
	f.habit = &models.Habit{
		ID:        primitive.NewObjectID(),
		UserID:    f.user.ID,
		Name:      "Read",
		Goal:      streak.Goal{Type: streak.GoalDaily, Value: 1},
		StartDate: time.Now().AddDate(0, 0, -10),
		Version:   2,
	}

	activities := new(mocks.ActivityStore)
	activities.On("CreateActivity", mock.Anything, mock.Anything).Return(nil).Maybe()
	notifs := new(mocks.NotificationStore)
	notifs.On("CreateNotification", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.users.On("GetUserByID", mock.Anything, f.user.ID).Return(f.user, nil).Maybe()
	f.habits.On("GetHabitByID", mock.Anything, f.habit.ID).Return(f.habit, nil).Maybe()

	activity := services.NewActivityService(activities)
	ledger := new(mocks.RewardStore)
	ledger.On("RecordAward", mock.Anything, f.user.ID, f.habit.ID, mock.Anything).Return(true, nil).Maybe()
	rewards := services.NewRewardService(ledger, f.users, services.NewNotificationService(notifs, f.users), activity, 10)
	f.handler = NewCheckinHandler(services.NewCheckinService(f.habits, f.checkins, f.users, rewards, activity))

	t.Cleanup(func() {
		mock.AssertExpectationsForObjects(t, f.checkins, f.users)
	})
	return f
}

func (f *checkinHandlerFixture) post(t *testing.T, body interface{}) int {
	req := newRequest(t, http.MethodPost, "/checkins", body, f.user.ID, nil)
	return serve(f.handler.CreateCheckinHandler, req).Code
}

func TestCreateCheckinHandler(t *testing.T) {
	f := newCheckinHandlerFixture(t)
	f.checkins.On("CreateCheckin", mock.Anything, mock.AnythingOfType("*models.Checkin")).
		Return(&models.Checkin{ID: primitive.NewObjectID(), HabitID: f.habit.ID}, nil)
	f.checkins.On("Timestamps", mock.Anything, f.habit.ID).Return([]time.Time{time.Now()}, nil)
	f.habits.On("UpdateStreak", mock.Anything, f.habit.ID, int64(2), 1, 1, mock.Anything).Return(nil)
	f.users.On("AddPoints", mock.Anything, f.user.ID, 10, mock.Anything).Return(nil)

	req := newRequest(t, http.MethodPost, "/checkins", map[string]string{"habit_id": f.habit.ID.Hex()}, f.user.ID, nil)
	rec := serve(f.handler.CreateCheckinHandler, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var got services.CheckinResult
	decodeBody(t, rec, &got)
	assert.Equal(t, 1, got.Streak.CurrentStreak)
	assert.True(t, got.Streak.PeriodSatisfied)
	assert.Equal(t, 10, got.Award.Points)
}

func TestCreateCheckinHandlerDuplicateDay(t *testing.T) {
	f := newCheckinHandlerFixture(t)
	f.checkins.On("CreateCheckin", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("failed to insert checkin: %w", repository.ErrDuplicate))

	assert.Equal(t, http.StatusConflict, f.post(t, map[string]string{"habit_id": f.habit.ID.Hex()}))
	f.habits.AssertNotCalled(t, "UpdateStreak", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCheckinHandlerRejectsTimestamps(t *testing.T) {
	f := newCheckinHandlerFixture(t)

	future := time.Now().Add(48 * time.Hour)
	beforeStart := f.habit.StartDate.AddDate(0, 0, -3)

	assert.Equal(t, http.StatusBadRequest, f.post(t, map[string]interface{}{"habit_id": f.habit.ID.Hex(), "timestamp": future}))
	assert.Equal(t, http.StatusBadRequest, f.post(t, map[string]interface{}{"habit_id": f.habit.ID.Hex(), "timestamp": beforeStart}))
	assert.Equal(t, http.StatusBadRequest, f.post(t, map[string]string{"habit_id": "nope"}))
	f.checkins.AssertNotCalled(t, "CreateCheckin", mock.Anything, mock.Anything)
}

func TestGetStreakHandler(t *testing.T) {
	f := newCheckinHandlerFixture(t)
	now := time.Now().UTC()
	f.checkins.On("Timestamps", mock.Anything, f.habit.ID).
		Return([]time.Time{now.AddDate(0, 0, -2), now.AddDate(0, 0, -1), now}, nil)

	id := f.habit.ID.Hex()
	req := newRequest(t, http.MethodGet, "/checkins/streak/"+id, nil, f.user.ID, map[string]string{"habitId": id})
	rec := serve(f.handler.GetStreakHandler, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got streak.Result
	decodeBody(t, rec, &got)
	assert.Equal(t, 3, got.CurrentStreak)
	assert.Equal(t, 3, got.LongestStreak)
	f.habits.AssertNotCalled(t, "UpdateStreak", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
