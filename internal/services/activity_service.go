package services

import (
	"context"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity types
const (
	ActivityHabitCreated    = "habit_created"
	ActivityHabitUpdated    = "habit_updated"
	ActivityHabitDeleted    = "habit_deleted"
	ActivityCheckin         = "checkin"
	ActivityMilestone       = "streak_milestone"
	ActivityRewardClaimed   = "reward_claimed"
	ActivityChallengeJoined = "challenge_joined"
	ActivityFriendAdded     = "friend_added"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

type ActivityService struct {
	repo ActivityStore
	now  func() time.Time
}

func NewActivityService(repo ActivityStore) *ActivityService {
	return &ActivityService{repo: repo, now: time.Now}
}

// LogActivity logs a user activity
func (s *ActivityService) LogActivity(
	ctx context.Context,
	userID primitive.ObjectID,
	actionType string,
	targetID primitive.ObjectID,
	message string,
) error {
	activity := &models.Activity{
		UserID:    userID,
		Type:      actionType,
		TargetID:  targetID,
		Message:   message,
		Timestamp: s.now(),
	}

	err := s.repo.CreateActivity(ctx, activity)
	if err != nil {
		logrus.WithError(err).Error("Failed to log activity in service")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     userID.Hex(),
		"action_type": actionType,
	}).Debug("Activity logged successfully")

	return nil
}

// GetRecentActivities returns recent actions performed by a user, newest
// first. Limits outside 1..100 fall back to the default of 20.
func (s *ActivityService) GetRecentActivities(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Activity, error) {
	if limit <= 0 || limit > maxActivityLimit {
		limit = defaultActivityLimit
	}
	return s.repo.GetUserActivities(ctx, userID, limit)
}

// record logs an activity without failing the caller.
func (s *ActivityService) record(ctx context.Context, userID primitive.ObjectID, actionType string, targetID primitive.ObjectID, message string) {
	if s == nil {
		return
	}
	_ = s.LogActivity(ctx, userID, actionType, targetID, message)
}
