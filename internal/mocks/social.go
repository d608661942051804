package mocks

import (
	"context"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChallengeStore struct {
	mock.Mock
}

func (m *ChallengeStore) CreateChallenge(ctx context.Context, challenge *models.Challenge) (*models.Challenge, error) {
	args := m.Called(ctx, challenge)
	if fn, ok := args.Get(0).(func(context.Context, *models.Challenge) *models.Challenge); ok {
		return fn(ctx, challenge), args.Error(1)
	}
	c, _ := args.Get(0).(*models.Challenge)
	return c, args.Error(1)
}

func (m *ChallengeStore) GetChallengeByID(ctx context.Context, id primitive.ObjectID) (*models.Challenge, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Challenge)
	return c, args.Error(1)
}

func (m *ChallengeStore) ListChallenges(ctx context.Context, activeAt *time.Time) ([]models.Challenge, error) {
	args := m.Called(ctx, activeAt)
	list, _ := args.Get(0).([]models.Challenge)
	return list, args.Error(1)
}

func (m *ChallengeStore) AddParticipant(ctx context.Context, challengeID, userID primitive.ObjectID) error {
	return m.Called(ctx, challengeID, userID).Error(0)
}

func (m *ChallengeStore) RemoveParticipant(ctx context.Context, challengeID, userID primitive.ObjectID) error {
	return m.Called(ctx, challengeID, userID).Error(0)
}

type RewardStore struct {
	mock.Mock
}

func (m *RewardStore) ListRewards(ctx context.Context) ([]models.Reward, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.Reward)
	return list, args.Error(1)
}

func (m *RewardStore) GetRewardByID(ctx context.Context, id primitive.ObjectID) (*models.Reward, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Reward)
	return r, args.Error(1)
}

func (m *RewardStore) ReplaceCatalog(ctx context.Context, rewards []models.Reward) (int, error) {
	args := m.Called(ctx, rewards)
	return args.Int(0), args.Error(1)
}

func (m *RewardStore) CreateUserReward(ctx context.Context, claim *models.UserReward) (*models.UserReward, error) {
	args := m.Called(ctx, claim)
	if fn, ok := args.Get(0).(func(context.Context, *models.UserReward) *models.UserReward); ok {
		return fn(ctx, claim), args.Error(1)
	}
	c, _ := args.Get(0).(*models.UserReward)
	return c, args.Error(1)
}

func (m *RewardStore) ListUserRewards(ctx context.Context, userID primitive.ObjectID) ([]models.UserReward, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.UserReward)
	return list, args.Error(1)
}

func (m *RewardStore) RecordAward(ctx context.Context, userID, habitID primitive.ObjectID, key string) (bool, error) {
	args := m.Called(ctx, userID, habitID, key)
	if fn, ok := args.Get(0).(func(context.Context, primitive.ObjectID, primitive.ObjectID, string) bool); ok {
		return fn(ctx, userID, habitID, key), args.Error(1)
	}
	return args.Bool(0), args.Error(1)
}

type NotificationStore struct {
	mock.Mock
}

func (m *NotificationStore) CreateNotification(ctx context.Context, notif *models.Notification) error {
	return m.Called(ctx, notif).Error(0)
}

func (m *NotificationStore) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.Notification)
	return list, args.Error(1)
}

func (m *NotificationStore) MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *NotificationStore) DeleteNotification(ctx context.Context, id, userID primitive.ObjectID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *NotificationStore) GetLatestNotificationByType(ctx context.Context, userID primitive.ObjectID, notifType string) (*models.Notification, error) {
	args := m.Called(ctx, userID, notifType)
	n, _ := args.Get(0).(*models.Notification)
	return n, args.Error(1)
}

func (m *NotificationStore) DeleteExpiredNotifications(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

type ActivityStore struct {
	mock.Mock
}

func (m *ActivityStore) CreateActivity(ctx context.Context, activity *models.Activity) error {
	return m.Called(ctx, activity).Error(0)
}

func (m *ActivityStore) GetUserActivities(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Activity, error) {
	args := m.Called(ctx, userID, limit)
	list, _ := args.Get(0).([]models.Activity)
	return list, args.Error(1)
}

type FriendStore struct {
	mock.Mock
}

func (m *FriendStore) CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error) {
	args := m.Called(ctx, req)
	if fn, ok := args.Get(0).(func(context.Context, *models.FriendRequest) *models.FriendRequest); ok {
		return fn(ctx, req), args.Error(1)
	}
	r, _ := args.Get(0).(*models.FriendRequest)
	return r, args.Error(1)
}

func (m *FriendStore) GetRequestsByReceiver(ctx context.Context, receiverID primitive.ObjectID) ([]models.FriendRequest, error) {
	args := m.Called(ctx, receiverID)
	list, _ := args.Get(0).([]models.FriendRequest)
	return list, args.Error(1)
}

func (m *FriendStore) HasPendingBetween(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

func (m *FriendStore) UpdateRequestStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *FriendStore) GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.FriendRequest)
	return r, args.Error(1)
}
