// Command seedrewards replaces the reward catalog with the default rewards.
package main

import (
	"context"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/config"
	"github.com/Dias221467/Habit_Tracker/internal/database"
	"github.com/Dias221467/Habit_Tracker/internal/repository"
	"github.com/Dias221467/Habit_Tracker/internal/services"
	"github.com/Dias221467/Habit_Tracker/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.Fatalf("Configuration error: %v", err)
	}
	logger.InitLogger(cfg.LogLevel)

	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.Log.Fatalf("Database connection error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer db.Client().Disconnect(ctx)

	userRepo := repository.NewUserRepository(db)
	notifications := services.NewNotificationService(repository.NewNotificationRepository(db), userRepo)
	activity := services.NewActivityService(repository.NewActivityRepository(db))
	rewards := services.NewRewardService(repository.NewRewardRepository(db), userRepo, notifications, activity, cfg.PointsPerCheckin)

	seeded, err := rewards.SeedCatalog(ctx)
	if err != nil {
		logger.Log.Fatalf("Failed to seed rewards: %v", err)
	}

	for _, reward := range seeded {
		logger.Log.WithField("cost_points", reward.CostPoints).Info(reward.Title)
	}
	logger.Log.Infof("Reward catalog replaced with %d rewards", len(seeded))
}
