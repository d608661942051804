package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/metrics"
	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Milestone is a streak length that earns bonus points and a badge.
type Milestone struct {
	Streak int    `json:"streak"`
	Points int    `json:"points"`
	Badge  string `json:"badge"`
}

var DefaultMilestones = []Milestone{
	{Streak: 7, Points: 50, Badge: "streak_7"},
	{Streak: 14, Points: 100, Badge: "streak_14"},
	{Streak: 30, Points: 250, Badge: "streak_30"},
	{Streak: 100, Points: 1000, Badge: "streak_100"},
}

// CrossedMilestones returns the milestones m with previous < m <= current.
func CrossedMilestones(milestones []Milestone, previous, current int) []Milestone {
	var reached []Milestone
	for _, m := range milestones {
		if previous < m.Streak && m.Streak <= current {
			reached = append(reached, m)
		}
	}
	return reached
}

// DefaultCatalog is the reward catalog installed by cmd/seedrewards.
func DefaultCatalog() []models.Reward {
	return []models.Reward{
		{Title: "🏅 Bronze Badge", Description: "Complete a 7-day streak", CostPoints: 50, Icon: "🏅"},
		{Title: "🥈 Silver Badge", Description: "Complete a 30-day streak", CostPoints: 200, Icon: "🥈"},
		{Title: "🥇 Gold Badge", Description: "Complete a 100-day streak", CostPoints: 500, Icon: "🥇"},
		{Title: "⭐ Achievement Star", Description: "Reach 1000 points", CostPoints: 100, Icon: "⭐"},
		{Title: "🎯 Goal Master", Description: "Complete all daily goals for a week", CostPoints: 150, Icon: "🎯"},
		{Title: "🔥 On Fire", Description: "Maintain a 14-day streak", CostPoints: 120, Icon: "🔥"},
		{Title: "💎 Premium Status", Description: "Get exclusive features", CostPoints: 300, Icon: "💎"},
		{Title: "👑 Legend Badge", Description: "Become a top performer", CostPoints: 600, Icon: "👑"},
	}
}

// Award is what a single check-in earned.
type Award struct {
	Points     int         `json:"points"`
	Milestones []Milestone `json:"milestones,omitempty"`
}

type RewardService struct {
	repo             RewardStore
	users            UserStore
	notifications    *NotificationService
	activity         *ActivityService
	pointsPerCheckin int
	milestones       []Milestone
	now              func() time.Time
}

func NewRewardService(repo RewardStore, users UserStore, notifications *NotificationService, activity *ActivityService, pointsPerCheckin int) *RewardService {
	return &RewardService{
		repo:             repo,
		users:            users,
		notifications:    notifications,
		activity:         activity,
		pointsPerCheckin: pointsPerCheckin,
		milestones:       DefaultMilestones,
		now:              time.Now,
	}
}

// AwardCheckin credits the check-in made on dayKey and any milestones the
// streak crossed going from previous to current within the run that began
// on runStart. Each credit goes through the award ledger first, so deleting
// a check-in and making it again never pays the same day or milestone twice.
func (s *RewardService) AwardCheckin(ctx context.Context, userID primitive.ObjectID, habit *models.Habit, dayKey string, previous, current int, runStart string) (Award, error) {
	var award Award
	if s.pointsPerCheckin > 0 {
		fresh, err := s.repo.RecordAward(ctx, userID, habit.ID, "checkin:"+dayKey)
		if err != nil {
			return Award{}, err
		}
		if fresh {
			award.Points = s.pointsPerCheckin
		}
	}

	crossed := CrossedMilestones(s.milestones, previous, current)
	badges := make([]string, 0, len(crossed))
	for _, m := range crossed {
		fresh, err := s.repo.RecordAward(ctx, userID, habit.ID, m.Badge+":"+runStart)
		if err != nil {
			return Award{}, err
		}
		if !fresh {
			continue
		}
		award.Milestones = append(award.Milestones, m)
		award.Points += m.Points
		badges = append(badges, m.Badge)
	}
	if award.Points == 0 && len(badges) == 0 {
		return award, nil
	}

	if err := s.users.AddPoints(ctx, userID, award.Points, badges); err != nil {
		return Award{}, fmt.Errorf("failed to award points: %w", err)
	}

	unit := "day"
	if habit.Goal.Weekly() {
		unit = "week"
	}
	for _, m := range award.Milestones {
		metrics.Milestones.WithLabelValues(m.Badge).Inc()
		s.notifications.notify(ctx, userID, models.NotifStreakMilestone,
			fmt.Sprintf("🔥 %d-%s streak!", m.Streak, unit),
			fmt.Sprintf("You kept %q going for %d %ss and earned %d bonus points.", habit.Name, m.Streak, unit, m.Points),
			&habit.ID,
		)
		s.activity.record(ctx, userID, ActivityMilestone, habit.ID, fmt.Sprintf("Reached a %d-%s streak on %q", m.Streak, unit, habit.Name))
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID.Hex(),
		"habit_id":   habit.ID.Hex(),
		"points":     award.Points,
		"milestones": len(award.Milestones),
	}).Info("Check-in rewarded")
	return award, nil
}

func (s *RewardService) ListRewards(ctx context.Context) ([]models.Reward, error) {
	return s.repo.ListRewards(ctx)
}

// ClaimReward spends the reward's cost from the user's balance and records
// the redemption. The balance check and the deduction are one atomic update.
func (s *RewardService) ClaimReward(ctx context.Context, userID, rewardID primitive.ObjectID) (*models.UserReward, error) {
	reward, err := s.repo.GetRewardByID(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	ok, err := s.users.SpendPoints(ctx, userID, reward.CostPoints, reward.Title)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInsufficientPoints
	}

	claim, err := s.repo.CreateUserReward(ctx, &models.UserReward{
		UserID:    userID,
		RewardID:  reward.ID,
		Title:     reward.Title,
		Cost:      reward.CostPoints,
		ClaimedAt: s.now(),
	})
	if err != nil {
		if refundErr := s.users.AddPoints(ctx, userID, reward.CostPoints, nil); refundErr != nil {
			logrus.WithError(refundErr).WithField("user_id", userID.Hex()).Error("Failed to refund points after a failed claim")
		}
		return nil, err
	}

	metrics.RewardClaims.Inc()
	s.notifications.notify(ctx, userID, models.NotifRewardClaimed,
		"Reward claimed",
		fmt.Sprintf("You redeemed %s for %d points.", reward.Title, reward.CostPoints),
		&reward.ID,
	)
	s.activity.record(ctx, userID, ActivityRewardClaimed, reward.ID, fmt.Sprintf("Claimed %s", reward.Title))
	return claim, nil
}

func (s *RewardService) ListUserRewards(ctx context.Context, userID primitive.ObjectID) ([]models.UserReward, error) {
	return s.repo.ListUserRewards(ctx, userID)
}

// SeedCatalog replaces the reward catalog with DefaultCatalog.
func (s *RewardService) SeedCatalog(ctx context.Context) ([]models.Reward, error) {
	catalog := DefaultCatalog()
	if _, err := s.repo.ReplaceCatalog(ctx, catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}
