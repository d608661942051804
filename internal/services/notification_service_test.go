package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/mocks"
	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/Dias221467/Habit_Tracker/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordingPublisher struct {
	published []*models.Notification
}

func (p *recordingPublisher) Publish(_ primitive.ObjectID, n *models.Notification) {
	p.published = append(p.published, n)
}

func TestCreateNotificationPublishes(t *testing.T) {
	repo := new(mocks.NotificationStore)
	svc := NewNotificationService(repo, new(mocks.UserStore))
	pub := &recordingPublisher{}
	svc.SetPublisher(pub)
	userID := primitive.NewObjectID()

	repo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, svc.CreateNotification(context.Background(), userID, models.NotifHabitReminder, "t", "m", nil))
	require.Len(t, pub.published, 1)
	assert.Equal(t, userID, pub.published[0].UserID)
}

func TestCheckInactiveUsers(t *testing.T) {
	repo := new(mocks.NotificationStore)
	users := new(mocks.UserStore)
	defer mock.AssertExpectationsForObjects(t, repo, users)

	svc := NewNotificationService(repo, users)
	svc.now = fixedClock

	active := &models.User{ID: primitive.NewObjectID(), LastActiveAt: fixedNow.Add(-time.Hour)}
	idle := &models.User{ID: primitive.NewObjectID(), LastActiveAt: fixedNow.Add(-4 * 24 * time.Hour)}
	nudged := &models.User{ID: primitive.NewObjectID(), LastActiveAt: fixedNow.Add(-10 * 24 * time.Hour)}
	never := &models.User{ID: primitive.NewObjectID()}

	users.On("GetAllUsers", mock.Anything).Return([]*models.User{active, idle, nudged, never}, nil).Once()
	repo.On("GetLatestNotificationByType", mock.Anything, idle.ID, models.NotifUserInactive).Return(nil, repository.ErrNotFound).Once()
	repo.On("GetLatestNotificationByType", mock.Anything, nudged.ID, models.NotifUserInactive).
		Return(&models.Notification{CreatedAt: fixedNow.Add(-24 * time.Hour)}, nil).Once()
	repo.On("GetLatestNotificationByType", mock.Anything, never.ID, models.NotifUserInactive).Return(nil, repository.ErrNotFound).Once()
	repo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.Type == models.NotifUserInactive && (n.UserID == idle.ID || n.UserID == never.ID)
	})).Return(nil).Twice()

	sent, err := svc.CheckInactiveUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
}

func TestMarkNotificationAsReadIsOwnerScoped(t *testing.T) {
	repo := new(mocks.NotificationStore)
	svc := NewNotificationService(repo, new(mocks.UserStore))
	id, owner := primitive.NewObjectID(), primitive.NewObjectID()

	repo.On("MarkAsRead", mock.Anything, id, owner).Return(nil).Once()
	repo.On("MarkAsRead", mock.Anything, id, mock.Anything).Return(repository.ErrNotFound)

	assert.NoError(t, svc.MarkNotificationAsRead(context.Background(), id, owner))
	assert.ErrorIs(t, svc.MarkNotificationAsRead(context.Background(), id, primitive.NewObjectID()), ErrNotFound)
}
