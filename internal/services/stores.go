package services

import (
	"context"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The stores below are satisfied by the MongoDB repositories in
// internal/repository.

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.User, error)
	UpdateLastActive(ctx context.Context, id primitive.ObjectID) error
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	AddPoints(ctx context.Context, id primitive.ObjectID, points int, badges []string) error
	SpendPoints(ctx context.Context, id primitive.ObjectID, cost int, badge string) (bool, error)
	AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
	RemoveFriend(ctx context.Context, userID1, userID2 primitive.ObjectID) error
}

type HabitStore interface {
	CreateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error)
	GetHabitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error)
	GetHabitsByUser(ctx context.Context, userID primitive.ObjectID, category string) ([]models.Habit, error)
	UpdateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error)
	UpdateStreak(ctx context.Context, id primitive.ObjectID, version int64, current, longest int, lastCheckin *time.Time) error
	DeleteHabit(ctx context.Context, id primitive.ObjectID) error
}

type CheckinStore interface {
	CreateCheckin(ctx context.Context, checkin *models.Checkin) (*models.Checkin, error)
	GetCheckinByID(ctx context.Context, id primitive.ObjectID) (*models.Checkin, error)
	ListByHabit(ctx context.Context, habitID primitive.ObjectID) ([]models.Checkin, error)
	Timestamps(ctx context.Context, habitID primitive.ObjectID) ([]time.Time, error)
	CountByUser(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (int64, error)
	DeleteCheckin(ctx context.Context, id primitive.ObjectID) error
	DeleteByHabit(ctx context.Context, habitID primitive.ObjectID) (int64, error)
}

type ReminderStore interface {
	CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error)
	GetReminderByID(ctx context.Context, id primitive.ObjectID) (*models.Reminder, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error)
	ListEnabled(ctx context.Context) ([]models.Reminder, error)
	UpdateReminder(ctx context.Context, reminder *models.Reminder) error
	MarkSent(ctx context.Context, id primitive.ObjectID, at time.Time) error
	DeleteReminder(ctx context.Context, id primitive.ObjectID) error
	DeleteByHabit(ctx context.Context, habitID primitive.ObjectID) (int64, error)
}

type ChallengeStore interface {
	CreateChallenge(ctx context.Context, challenge *models.Challenge) (*models.Challenge, error)
	GetChallengeByID(ctx context.Context, id primitive.ObjectID) (*models.Challenge, error)
	ListChallenges(ctx context.Context, activeAt *time.Time) ([]models.Challenge, error)
	AddParticipant(ctx context.Context, challengeID, userID primitive.ObjectID) error
	RemoveParticipant(ctx context.Context, challengeID, userID primitive.ObjectID) error
}

type RewardStore interface {
	ListRewards(ctx context.Context) ([]models.Reward, error)
	GetRewardByID(ctx context.Context, id primitive.ObjectID) (*models.Reward, error)
	ReplaceCatalog(ctx context.Context, rewards []models.Reward) (int, error)
	CreateUserReward(ctx context.Context, claim *models.UserReward) (*models.UserReward, error)
	ListUserRewards(ctx context.Context, userID primitive.ObjectID) ([]models.UserReward, error)
	RecordAward(ctx context.Context, userID, habitID primitive.ObjectID, key string) (bool, error)
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) error
	DeleteNotification(ctx context.Context, id, userID primitive.ObjectID) error
	GetLatestNotificationByType(ctx context.Context, userID primitive.ObjectID, notifType string) (*models.Notification, error)
	DeleteExpiredNotifications(ctx context.Context) (int64, error)
}

type ActivityStore interface {
	CreateActivity(ctx context.Context, activity *models.Activity) error
	GetUserActivities(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Activity, error)
}

type FriendStore interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error)
	GetRequestsByReceiver(ctx context.Context, receiverID primitive.ObjectID) ([]models.FriendRequest, error)
	HasPendingBetween(ctx context.Context, a, b primitive.ObjectID) (bool, error)
	UpdateRequestStatus(ctx context.Context, id primitive.ObjectID, status string) error
	GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error)
}
