package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dias221467/Habit_Tracker/internal/mocks"
	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/Dias221467/Habit_Tracker/internal/streak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCrossedMilestones(t *testing.T) {
	tests := []struct {
		name     string
		previous int
		current  int
		want     []string
	}{
		{name: "below first", previous: 5, current: 6, want: nil},
		{name: "exactly first", previous: 6, current: 7, want: []string{"streak_7"}},
		{name: "already past", previous: 7, current: 8, want: nil},
		{name: "jump over two", previous: 6, current: 20, want: []string{"streak_7", "streak_14"}},
		{name: "reset then regrow", previous: 0, current: 1, want: nil},
		{name: "decrease", previous: 30, current: 3, want: nil},
		{name: "hundred", previous: 99, current: 100, want: []string{"streak_100"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, m := range CrossedMilestones(DefaultMilestones, tt.previous, tt.current) {
				got = append(got, m.Badge)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	require.Len(t, catalog, 8)
	assert.Equal(t, "🏅 Bronze Badge", catalog[0].Title)
	assert.Equal(t, 50, catalog[0].CostPoints)
	assert.Equal(t, "👑 Legend Badge", catalog[7].Title)
	assert.Equal(t, 600, catalog[7].CostPoints)
}

type rewardFixture struct {
	repo   *mocks.RewardStore
	users  *mocks.UserStore
	notifs *mocks.NotificationStore
	svc    *RewardService
}

func newRewardFixture(t *testing.T) *rewardFixture {
	f := &rewardFixture{
		repo:   new(mocks.RewardStore),
		users:  new(mocks.UserStore),
		notifs: new(mocks.NotificationStore),
	}
	activities := new(mocks.ActivityStore)
	activities.On("CreateActivity", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.notifs.On("CreateNotification", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.repo.On("RecordAward", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(awardLedger{}.record, nil).Maybe()

	f.svc = NewRewardService(f.repo, f.users, NewNotificationService(f.notifs, f.users), NewActivityService(activities), 10)
	f.svc.now = fixedClock

	t.Cleanup(func() {
		mock.AssertExpectationsForObjects(t, f.repo, f.users)
	})
	return f
}

func TestAwardCheckinWeeklyMilestoneMessage(t *testing.T) {
	f := newRewardFixture(t)
	userID := primitive.NewObjectID()
	habit := &models.Habit{ID: primitive.NewObjectID(), Name: "Run", Goal: streak.Goal{Type: streak.GoalWeekly, Value: 1}}

	f.users.On("AddPoints", mock.Anything, userID, 110, []string{"streak_14"}).Return(nil).Once()

	award, err := f.svc.AwardCheckin(context.Background(), userID, habit, "2024-03-20", 13, 14, "2023-12-11")
	require.NoError(t, err)
	assert.Equal(t, 110, award.Points)
	f.notifs.AssertCalled(t, "CreateNotification", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.Title == "🔥 14-week streak!" && *n.TargetID == habit.ID
	}))
}

func TestAwardCheckinWithoutPointsDoesNothing(t *testing.T) {
	f := newRewardFixture(t)
	f.svc.pointsPerCheckin = 0

	award, err := f.svc.AwardCheckin(context.Background(), primitive.NewObjectID(), &models.Habit{}, "2024-03-20", 1, 2, "2024-03-19")
	require.NoError(t, err)
	assert.Zero(t, award.Points)
	f.users.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAwardCheckinPaysEachCreditOnce(t *testing.T) {
	f := newRewardFixture(t)
	userID := primitive.NewObjectID()
	habit := &models.Habit{ID: primitive.NewObjectID(), Name: "Read", Goal: streak.Goal{Type: streak.GoalDaily, Value: 1}}

	f.users.On("AddPoints", mock.Anything, userID, 60, []string{"streak_7"}).Return(nil).Once()
	f.users.On("AddPoints", mock.Anything, userID, 10, []string{}).Return(nil).Once()

	first, err := f.svc.AwardCheckin(context.Background(), userID, habit, "2024-03-20", 6, 7, "2024-03-14")
	require.NoError(t, err)
	assert.Equal(t, 60, first.Points)

	again, err := f.svc.AwardCheckin(context.Background(), userID, habit, "2024-03-20", 6, 7, "2024-03-14")
	require.NoError(t, err)
	assert.Zero(t, again.Points)
	assert.Empty(t, again.Milestones)

	// A new day in the same run pays the day but not the milestone.
	next, err := f.svc.AwardCheckin(context.Background(), userID, habit, "2024-03-21", 6, 7, "2024-03-14")
	require.NoError(t, err)
	assert.Equal(t, 10, next.Points)
	assert.Empty(t, next.Milestones)
	f.users.AssertNumberOfCalls(t, "AddPoints", 2)
}

func TestAwardCheckinNewRunEarnsMilestoneAgain(t *testing.T) {
	f := newRewardFixture(t)
	userID := primitive.NewObjectID()
	habit := &models.Habit{ID: primitive.NewObjectID(), Name: "Read", Goal: streak.Goal{Type: streak.GoalDaily, Value: 1}}

	f.users.On("AddPoints", mock.Anything, userID, 60, []string{"streak_7"}).Return(nil).Twice()

	_, err := f.svc.AwardCheckin(context.Background(), userID, habit, "2024-03-07", 6, 7, "2024-03-01")
	require.NoError(t, err)
	award, err := f.svc.AwardCheckin(context.Background(), userID, habit, "2024-03-20", 6, 7, "2024-03-14")
	require.NoError(t, err)
	require.Len(t, award.Milestones, 1)
	assert.Equal(t, "streak_7", award.Milestones[0].Badge)
}

func TestAwardCheckinLedgerFailure(t *testing.T) {
	f := newRewardFixture(t)
	f.repo.ExpectedCalls = nil
	f.repo.On("RecordAward", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("mongo down")).Once()

	_, err := f.svc.AwardCheckin(context.Background(), primitive.NewObjectID(), &models.Habit{}, "2024-03-20", 6, 7, "2024-03-14")
	assert.Error(t, err)
	f.users.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestClaimReward(t *testing.T) {
	f := newRewardFixture(t)
	userID := primitive.NewObjectID()
	reward := &models.Reward{ID: primitive.NewObjectID(), Title: "🔥 On Fire", CostPoints: 120}

	f.repo.On("GetRewardByID", mock.Anything, reward.ID).Return(reward, nil).Once()
	f.users.On("SpendPoints", mock.Anything, userID, 120, "🔥 On Fire").Return(true, nil).Once()
	f.repo.On("CreateUserReward", mock.Anything, mock.MatchedBy(func(c *models.UserReward) bool {
		return c.UserID == userID && c.RewardID == reward.ID && c.Cost == 120 && c.ClaimedAt.Equal(fixedNow)
	})).Return(func(_ context.Context, c *models.UserReward) *models.UserReward {
		c.ID = primitive.NewObjectID()
		return c
	}, nil).Once()

	claim, err := f.svc.ClaimReward(context.Background(), userID, reward.ID)
	require.NoError(t, err)
	assert.Equal(t, "🔥 On Fire", claim.Title)
	assert.False(t, claim.ID.IsZero())
}

func TestClaimRewardInsufficientPoints(t *testing.T) {
	f := newRewardFixture(t)
	userID := primitive.NewObjectID()
	reward := &models.Reward{ID: primitive.NewObjectID(), Title: "👑 Legend Badge", CostPoints: 600}

	f.repo.On("GetRewardByID", mock.Anything, reward.ID).Return(reward, nil).Once()
	f.users.On("SpendPoints", mock.Anything, userID, 600, "👑 Legend Badge").Return(false, nil).Once()

	_, err := f.svc.ClaimReward(context.Background(), userID, reward.ID)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.ErrorIs(t, err, ErrConflict)
	f.repo.AssertNotCalled(t, "CreateUserReward", mock.Anything, mock.Anything)
}

func TestClaimRewardRefundsWhenRecordFails(t *testing.T) {
	f := newRewardFixture(t)
	userID := primitive.NewObjectID()
	reward := &models.Reward{ID: primitive.NewObjectID(), Title: "⭐ Achievement Star", CostPoints: 100}
	boom := errors.New("write failed")

	f.repo.On("GetRewardByID", mock.Anything, reward.ID).Return(reward, nil).Once()
	f.users.On("SpendPoints", mock.Anything, userID, 100, reward.Title).Return(true, nil).Once()
	f.repo.On("CreateUserReward", mock.Anything, mock.Anything).Return(nil, boom).Once()
	f.users.On("AddPoints", mock.Anything, userID, 100, []string(nil)).Return(nil).Once()

	_, err := f.svc.ClaimReward(context.Background(), userID, reward.ID)
	assert.ErrorIs(t, err, boom)
}

func TestSeedCatalog(t *testing.T) {
	f := newRewardFixture(t)
	f.repo.On("ReplaceCatalog", mock.Anything, DefaultCatalog()).Return(8, nil).Once()

	catalog, err := f.svc.SeedCatalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, catalog, 8)
}
