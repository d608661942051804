package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RewardRepository stores the reward catalog, redeemed rewards and the
// ledger of points already paid out.
type RewardRepository struct {
	rewards *mongo.Collection
	claims  *mongo.Collection
	awards  *mongo.Collection
}

func NewRewardRepository(db *mongo.Database) *RewardRepository {
	return &RewardRepository{
		rewards: db.Collection("rewards"),
		claims:  db.Collection("user_rewards"),
		awards:  db.Collection("reward_awards"),
	}
}

// ListRewards returns the catalog, cheapest first.
func (r *RewardRepository) ListRewards(ctx context.Context) ([]models.Reward, error) {
	opts := options.Find().SetSort(bson.D{{Key: "cost_points", Value: 1}})
	cursor, err := r.rewards.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rewards: %w", err)
	}
	defer cursor.Close(ctx)

	rewards := []models.Reward{}
	if err := cursor.All(ctx, &rewards); err != nil {
		return nil, fmt.Errorf("failed to decode rewards: %w", err)
	}
	return rewards, nil
}

func (r *RewardRepository) GetRewardByID(ctx context.Context, id primitive.ObjectID) (*models.Reward, error) {
	var reward models.Reward
	if err := r.rewards.FindOne(ctx, bson.M{"_id": id}).Decode(&reward); err != nil {
		return nil, fmt.Errorf("failed to find reward: %w", translate(err))
	}
	return &reward, nil
}

// ReplaceCatalog clears the catalog and inserts rewards.
func (r *RewardRepository) ReplaceCatalog(ctx context.Context, rewards []models.Reward) (int, error) {
	if _, err := r.rewards.DeleteMany(ctx, bson.M{}); err != nil {
		return 0, fmt.Errorf("failed to clear rewards: %w", err)
	}
	if len(rewards) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(rewards))
	for _, reward := range rewards {
		docs = append(docs, reward)
	}
	res, err := r.rewards.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert rewards: %w", err)
	}

	logrus.Infof("Seeded %d rewards", len(res.InsertedIDs))
	return len(res.InsertedIDs), nil
}

func (r *RewardRepository) CreateUserReward(ctx context.Context, claim *models.UserReward) (*models.UserReward, error) {
	claim.ClaimedAt = time.Now()

	result, err := r.claims.InsertOne(ctx, claim)
	if err != nil {
		return nil, fmt.Errorf("failed to record claimed reward: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	claim.ID = insertedID
	return claim, nil
}

// ListUserRewards returns the rewards a user redeemed, newest first.
func (r *RewardRepository) ListUserRewards(ctx context.Context, userID primitive.ObjectID) ([]models.UserReward, error) {
	opts := options.Find().SetSort(bson.D{{Key: "claimed_at", Value: -1}})
	cursor, err := r.claims.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user rewards: %w", err)
	}
	defer cursor.Close(ctx)

	claims := []models.UserReward{}
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, fmt.Errorf("failed to decode user rewards: %w", err)
	}
	return claims, nil
}

// RecordAward adds key to the habit's award ledger. It reports false when the
// key was already recorded, in which case nothing should be paid.
func (r *RewardRepository) RecordAward(ctx context.Context, userID, habitID primitive.ObjectID, key string) (bool, error) {
	_, err := r.awards.InsertOne(ctx, models.AwardEntry{
		UserID:    userID,
		HabitID:   habitID,
		Key:       key,
		AwardedAt: time.Now(),
	})
	if err == nil {
		return true, nil
	}
	if err = translate(err); errors.Is(err, ErrDuplicate) {
		return false, nil
	}
	return false, fmt.Errorf("failed to record award: %w", err)
}
