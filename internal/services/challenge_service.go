package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultChallengeGoal = 7

type ChallengeInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	GoalType    string    `json:"goal_type"`
	GoalValue   int       `json:"goal_value"`
}

type ChallengeService struct {
	repo     ChallengeStore
	habits   *HabitService
	checkins CheckinStore
	users    UserStore
	activity *ActivityService
	now      func() time.Time
}

func NewChallengeService(repo ChallengeStore, habits *HabitService, checkins CheckinStore, users UserStore, activity *ActivityService) *ChallengeService {
	return &ChallengeService{
		repo:     repo,
		habits:   habits,
		checkins: checkins,
		users:    users,
		activity: activity,
		now:      time.Now,
	}
}

// CreateChallenge stores a new challenge with its creator as the first
// participant.
func (s *ChallengeService) CreateChallenge(ctx context.Context, userID primitive.ObjectID, in ChallengeInput) (*models.Challenge, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, invalid("title", "is required")
	}
	if in.GoalType == "" {
		in.GoalType = models.ChallengeStreak
	}
	switch in.GoalType {
	case models.ChallengeStreak, models.ChallengeCheckins, models.ChallengeCustom:
	default:
		return nil, invalid("goal_type", "must be one of streak, checkins, custom")
	}
	if in.GoalValue == 0 {
		in.GoalValue = defaultChallengeGoal
	}
	if in.GoalValue < 0 {
		return nil, invalid("goal_value", "must be positive")
	}
	if in.StartsAt.IsZero() {
		in.StartsAt = s.now()
	}
	if !in.EndsAt.After(in.StartsAt) {
		return nil, invalid("ends_at", "must be after starts_at")
	}

	challenge, err := s.repo.CreateChallenge(ctx, &models.Challenge{
		Title:        in.Title,
		Description:  strings.TrimSpace(in.Description),
		CreatedBy:    userID,
		StartsAt:     in.StartsAt,
		EndsAt:       in.EndsAt,
		GoalType:     in.GoalType,
		GoalValue:    in.GoalValue,
		Participants: []primitive.ObjectID{userID},
	})
	if err != nil {
		return nil, err
	}

	s.activity.record(ctx, userID, ActivityChallengeJoined, challenge.ID, fmt.Sprintf("Started challenge %q", challenge.Title))
	logrus.WithField("challenge_id", challenge.ID.Hex()).Info("Challenge created")
	return challenge, nil
}

// ListChallenges returns all challenges, or only those running now.
func (s *ChallengeService) ListChallenges(ctx context.Context, activeOnly bool) ([]models.Challenge, error) {
	var activeAt *time.Time
	if activeOnly {
		now := s.now()
		activeAt = &now
	}
	challenges, err := s.repo.ListChallenges(ctx, activeAt)
	if err != nil {
		return nil, err
	}
	if challenges == nil {
		challenges = []models.Challenge{}
	}
	return challenges, nil
}

func (s *ChallengeService) GetChallenge(ctx context.Context, id primitive.ObjectID) (*models.Challenge, error) {
	return s.repo.GetChallengeByID(ctx, id)
}

// JoinChallenge adds the user to a challenge that has not ended.
func (s *ChallengeService) JoinChallenge(ctx context.Context, userID, challengeID primitive.ObjectID) error {
	challenge, err := s.repo.GetChallengeByID(ctx, challengeID)
	if err != nil {
		return err
	}
	if !s.now().Before(challenge.EndsAt) {
		return invalid("challenge", "has already ended")
	}
	if containsID(challenge.Participants, userID) {
		return nil
	}
	if err := s.repo.AddParticipant(ctx, challengeID, userID); err != nil {
		return err
	}
	s.activity.record(ctx, userID, ActivityChallengeJoined, challengeID, fmt.Sprintf("Joined challenge %q", challenge.Title))
	return nil
}

func (s *ChallengeService) LeaveChallenge(ctx context.Context, userID, challengeID primitive.ObjectID) error {
	if _, err := s.repo.GetChallengeByID(ctx, challengeID); err != nil {
		return err
	}
	return s.repo.RemoveParticipant(ctx, challengeID, userID)
}

// Progress ranks the challenge's participants, highest progress first.
func (s *ChallengeService) Progress(ctx context.Context, challengeID primitive.ObjectID) ([]models.ParticipantProgress, error) {
	challenge, err := s.repo.GetChallengeByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	names := make(map[primitive.ObjectID]string, len(challenge.Participants))
	if len(challenge.Participants) > 0 {
		users, err := s.users.GetUsersByIDs(ctx, challenge.Participants)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			names[u.ID] = u.Name
		}
	}

	board := make([]models.ParticipantProgress, 0, len(challenge.Participants))
	for _, participant := range challenge.Participants {
		progress, err := s.participantProgress(ctx, challenge, participant)
		if err != nil {
			return nil, err
		}
		board = append(board, models.ParticipantProgress{
			UserID:    participant,
			Name:      names[participant],
			Progress:  progress,
			Completed: progress >= challenge.GoalValue,
		})
	}

	sort.SliceStable(board, func(i, j int) bool {
		if board[i].Progress != board[j].Progress {
			return board[i].Progress > board[j].Progress
		}
		return board[i].Name < board[j].Name
	})
	return board, nil
}

func (s *ChallengeService) participantProgress(ctx context.Context, challenge *models.Challenge, userID primitive.ObjectID) (int, error) {
	switch challenge.GoalType {
	case models.ChallengeStreak:
		habits, err := s.habits.ListHabits(ctx, userID, "")
		if errors.Is(err, ErrNotFound) {
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
		best := 0
		for _, h := range habits {
			if h.CurrentStreak > best {
				best = h.CurrentStreak
			}
		}
		return best, nil
	case models.ChallengeCheckins:
		n, err := s.checkins.CountByUser(ctx, userID, challenge.StartsAt, challenge.EndsAt)
		return int(n), err
	default:
		return 0, nil
	}
}
