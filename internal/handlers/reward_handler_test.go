package handlers

import (
	"net/http"
	"testing"

	"github.com/Dias221467/Habit_Tracker/internal/mocks"
	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/Dias221467/Habit_Tracker/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newRewardHandler(rewards *mocks.RewardStore, users *mocks.UserStore) *RewardHandler {
	activities := new(mocks.ActivityStore)
	activities.On("CreateActivity", mock.Anything, mock.Anything).Return(nil).Maybe()
	notifs := new(mocks.NotificationStore)
	notifs.On("CreateNotification", mock.Anything, mock.Anything).Return(nil).Maybe()

	svc := services.NewRewardService(rewards, users, services.NewNotificationService(notifs, users), services.NewActivityService(activities), 10)
	return NewRewardHandler(svc)
}

func TestClaimRewardHandlerInsufficientPoints(t *testing.T) {
	rewards := new(mocks.RewardStore)
	users := new(mocks.UserStore)
	h := newRewardHandler(rewards, users)

	userID := primitive.NewObjectID()
	reward := &models.Reward{ID: primitive.NewObjectID(), Title: "Gold", CostPoints: 500}
	rewards.On("GetRewardByID", mock.Anything, reward.ID).Return(reward, nil)
	users.On("SpendPoints", mock.Anything, userID, 500, "Gold").Return(false, nil)

	req := newRequest(t, http.MethodPost, "/rewards/claim", map[string]string{"reward_id": reward.ID.Hex()}, userID, nil)
	rec := serve(h.ClaimRewardHandler, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	rewards.AssertNotCalled(t, "CreateUserReward", mock.Anything, mock.Anything)
}

func TestClaimRewardHandler(t *testing.T) {
	rewards := new(mocks.RewardStore)
	users := new(mocks.UserStore)
	h := newRewardHandler(rewards, users)

	userID := primitive.NewObjectID()
	reward := &models.Reward{ID: primitive.NewObjectID(), Title: "Bronze", CostPoints: 100}
	rewards.On("GetRewardByID", mock.Anything, reward.ID).Return(reward, nil)
	users.On("SpendPoints", mock.Anything, userID, 100, "Bronze").Return(true, nil)
	rewards.On("CreateUserReward", mock.Anything, mock.AnythingOfType("*models.UserReward")).
		Return(&models.UserReward{ID: primitive.NewObjectID(), UserID: userID, RewardID: reward.ID, Title: "Bronze", Cost: 100}, nil)

	req := newRequest(t, http.MethodPost, "/rewards/claim", map[string]string{"reward_id": reward.ID.Hex()}, userID, nil)
	rec := serve(h.ClaimRewardHandler, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var got models.UserReward
	decodeBody(t, rec, &got)
	assert.Equal(t, "Bronze", got.Title)
	mock.AssertExpectationsForObjects(t, rewards, users)
}

func TestListRewardsHandler(t *testing.T) {
	rewards := new(mocks.RewardStore)
	h := newRewardHandler(rewards, new(mocks.UserStore))
	rewards.On("ListRewards", mock.Anything).Return(services.DefaultCatalog(), nil)

	rec := serve(h.ListRewardsHandler, newRequest(t, http.MethodGet, "/rewards", nil, primitive.NilObjectID, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []models.Reward
	decodeBody(t, rec, &got)
	assert.Len(t, got, 8)
}
