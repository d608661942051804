package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendService handles business logic for managing friendships.
type FriendService struct {
	friendRepo    FriendStore
	userRepo      UserStore
	notifications *NotificationService
	activity      *ActivityService
	now           func() time.Time
}

// NewFriendService creates a new FriendService.
func NewFriendService(friendRepo FriendStore, userRepo UserStore, notifications *NotificationService, activity *ActivityService) *FriendService {
	return &FriendService{
		friendRepo:    friendRepo,
		userRepo:      userRepo,
		notifications: notifications,
		activity:      activity,
		now:           time.Now,
	}
}

// SendFriendRequest creates a new friend request.
func (s *FriendService) SendFriendRequest(ctx context.Context, senderID, receiverID primitive.ObjectID) (*models.FriendRequest, error) {
	if senderID == receiverID {
		return nil, invalid("receiver", "cannot send a friend request to yourself")
	}

	sender, err := s.userRepo.GetUserByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetUserByID(ctx, receiverID); err != nil {
		return nil, err
	}
	if containsID(sender.Friends, receiverID) {
		return nil, fmt.Errorf("%w: already friends", ErrConflict)
	}

	pending, err := s.friendRepo.HasPendingBetween(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, fmt.Errorf("%w: a friend request is already pending", ErrConflict)
	}

	request, err := s.friendRepo.CreateRequest(ctx, &models.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		CreatedAt:  s.now(),
		Status:     models.RequestPending,
	})
	if err != nil {
		return nil, err
	}

	s.notifications.notify(ctx, receiverID, models.NotifFriendRequest,
		"New friend request",
		fmt.Sprintf("%s wants to be your friend.", sender.Name),
		&request.ID,
	)
	return request, nil
}

// GetPendingRequests fetches all pending requests for the receiver.
func (s *FriendService) GetPendingRequests(ctx context.Context, receiverID primitive.ObjectID) ([]models.FriendRequest, error) {
	requests, err := s.friendRepo.GetRequestsByReceiver(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []models.FriendRequest{}
	}
	return requests, nil
}

// RespondToRequest updates a friend request's status and updates user friend lists if accepted.
func (s *FriendService) RespondToRequest(ctx context.Context, userID, requestID primitive.ObjectID, accept bool) error {
	request, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.ReceiverID != userID {
		return ErrForbidden
	}
	if request.Status != models.RequestPending {
		return fmt.Errorf("%w: request already responded to", ErrConflict)
	}

	status := models.RequestRejected
	if accept {
		status = models.RequestAccepted
	}

	// Update the status of the request
	if err := s.friendRepo.UpdateRequestStatus(ctx, requestID, status); err != nil {
		return err
	}

	if accept {
		// Update both users' friend lists
		if err := s.userRepo.AddFriend(ctx, request.SenderID, request.ReceiverID); err != nil {
			return fmt.Errorf("failed to add friend to sender: %w", err)
		}
		if err := s.userRepo.AddFriend(ctx, request.ReceiverID, request.SenderID); err != nil {
			return fmt.Errorf("failed to add friend to receiver: %w", err)
		}
		s.activity.record(ctx, request.ReceiverID, ActivityFriendAdded, request.SenderID, "Accepted a friend request")
	}

	return nil
}

func (s *FriendService) GetFriends(ctx context.Context, userID primitive.ObjectID) ([]models.PublicUser, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(user.Friends) == 0 {
		return []models.PublicUser{}, nil
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, user.Friends)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	publicFriends := make([]models.PublicUser, 0, len(users))
	for i := range users {
		publicFriends = append(publicFriends, users[i].Public())
	}

	return publicFriends, nil
}

func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	return s.userRepo.RemoveFriend(ctx, userID, friendID)
}
