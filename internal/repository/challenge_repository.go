package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChallengeRepository struct {
	collection *mongo.Collection
}

func NewChallengeRepository(db *mongo.Database) *ChallengeRepository {
	return &ChallengeRepository{
		collection: db.Collection("challenges"),
	}
}

func (r *ChallengeRepository) CreateChallenge(ctx context.Context, challenge *models.Challenge) (*models.Challenge, error) {
	challenge.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, challenge)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert challenge")
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	challenge.ID = insertedID
	return challenge, nil
}

func (r *ChallengeRepository) GetChallengeByID(ctx context.Context, id primitive.ObjectID) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&challenge); err != nil {
		return nil, fmt.Errorf("failed to find challenge: %w", translate(err))
	}
	return &challenge, nil
}

// ListChallenges returns challenges ordered by start. If activeAt is set only
// challenges running at that instant are returned.
func (r *ChallengeRepository) ListChallenges(ctx context.Context, activeAt *time.Time) ([]models.Challenge, error) {
	filter := bson.M{}
	if activeAt != nil {
		filter["starts_at"] = bson.M{"$lte": *activeAt}
		filter["ends_at"] = bson.M{"$gt": *activeAt}
	}
	opts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch challenges: %w", err)
	}
	defer cursor.Close(ctx)

	challenges := []models.Challenge{}
	if err := cursor.All(ctx, &challenges); err != nil {
		return nil, fmt.Errorf("failed to decode challenges: %w", err)
	}
	return challenges, nil
}

func (r *ChallengeRepository) AddParticipant(ctx context.Context, challengeID, userID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": challengeID},
		bson.M{"$addToSet": bson.M{"participants": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ChallengeRepository) RemoveParticipant(ctx context.Context, challengeID, userID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": challengeID},
		bson.M{"$pull": bson.M{"participants": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
