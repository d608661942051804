package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const inactivityThreshold = 3 * 24 * time.Hour

// Publisher pushes a freshly stored notification to connected clients.
type Publisher interface {
	Publish(userID primitive.ObjectID, notif *models.Notification)
}

type NotificationService struct {
	repo      NotificationStore
	userRepo  UserStore
	publisher Publisher
	now       func() time.Time
}

func NewNotificationService(repo NotificationStore, userRepo UserStore) *NotificationService {
	return &NotificationService{
		repo:     repo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// SetPublisher attaches the live delivery channel. Notifications are still
// stored when none is set.
func (s *NotificationService) SetPublisher(p Publisher) {
	s.publisher = p
}

// CreateNotification logs a new notification for a user
func (s *NotificationService) CreateNotification(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, targetID *primitive.ObjectID) error {
	notif := &models.Notification{
		UserID:   userID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		Read:     false,
		TargetID: targetID,
	}
	if err := s.repo.CreateNotification(ctx, notif); err != nil {
		return err
	}
	if s.publisher != nil {
		s.publisher.Publish(userID, notif)
	}
	return nil
}

// notify is CreateNotification for side effects that must not fail the caller.
func (s *NotificationService) notify(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, targetID *primitive.ObjectID) {
	if s == nil {
		return
	}
	if err := s.CreateNotification(ctx, userID, notifType, title, message, targetID); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id": userID.Hex(),
			"type":    notifType,
		}).Warn("Failed to create notification")
	}
}

// GetUserNotifications returns all notifications for a user
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.repo.GetUserNotifications(ctx, userID)
}

// MarkNotificationAsRead sets the "read" status of a user's notification.
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, notifID, userID primitive.ObjectID) error {
	return s.repo.MarkAsRead(ctx, notifID, userID)
}

// DeleteNotification deletes one of the user's notifications.
func (s *NotificationService) DeleteNotification(ctx context.Context, notifID, userID primitive.ObjectID) error {
	return s.repo.DeleteNotification(ctx, notifID, userID)
}

// CheckInactiveUsers nudges users who have not been seen for three days,
// at most once per three days each.
func (s *NotificationService) CheckInactiveUsers(ctx context.Context) (int, error) {
	users, err := s.userRepo.GetAllUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	now := s.now()
	sent := 0
	for _, user := range users {
		if !user.LastActiveAt.IsZero() && now.Sub(user.LastActiveAt) < inactivityThreshold {
			continue
		}

		existing, err := s.repo.GetLatestNotificationByType(ctx, user.ID, models.NotifUserInactive)
		if err != nil && !errors.Is(err, ErrNotFound) {
			logrus.WithError(err).Warnf("Failed to look up inactivity notification for user %s", user.ID.Hex())
			continue
		}
		if existing != nil && now.Sub(existing.CreatedAt) < inactivityThreshold {
			continue
		}

		err = s.CreateNotification(ctx, user.ID, models.NotifUserInactive,
			"We miss you!",
			"You haven't checked in for a few days. Your streaks are waiting for you!",
			nil,
		)
		if err != nil {
			logrus.WithError(err).Warnf("Failed to send inactivity notification to user %s", user.ID.Hex())
			continue
		}
		sent++
	}

	return sent, nil
}

func (s *NotificationService) DeleteExpiredNotifications(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredNotifications(ctx)
}
