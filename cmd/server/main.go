package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/config"
	"github.com/Dias221467/Habit_Tracker/internal/database"
	"github.com/Dias221467/Habit_Tracker/internal/handlers"
	"github.com/Dias221467/Habit_Tracker/internal/jobs"
	"github.com/Dias221467/Habit_Tracker/internal/metrics"
	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/Dias221467/Habit_Tracker/internal/repository"
	scheduler "github.com/Dias221467/Habit_Tracker/internal/scheduler"
	"github.com/Dias221467/Habit_Tracker/internal/services"
	"github.com/Dias221467/Habit_Tracker/pkg/logger"
	"github.com/Dias221467/Habit_Tracker/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration from .env file and the environment
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.Fatalf("Configuration error: %v", err)
	}

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.Log.Fatalf("Database connection error: %v", err)
	}
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		logger.Log.Fatalf("Index setup error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	checkinRepo := repository.NewCheckinRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	friendRepo := repository.NewFriendRepository(db)

	// --- Services ---
	hub := handlers.NewNotificationHub()
	activityService := services.NewActivityService(activityRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	notificationService.SetPublisher(hub)
	userService := services.NewUserService(userRepo)
	habitService := services.NewHabitService(habitRepo, checkinRepo, reminderRepo, userRepo, activityService)
	rewardService := services.NewRewardService(rewardRepo, userRepo, notificationService, activityService, cfg.PointsPerCheckin)
	checkinService := services.NewCheckinService(habitRepo, checkinRepo, userRepo, rewardService, activityService)
	challengeService := services.NewChallengeService(challengeRepo, habitService, checkinRepo, userRepo, activityService)
	reminderService := services.NewReminderService(reminderRepo, habitRepo, userRepo)
	friendService := services.NewFriendService(friendRepo, userRepo, notificationService, activityService)
	insightService := services.NewInsightService(habitService, checkinRepo, userRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	habitHandler := handlers.NewHabitHandler(habitService)
	checkinHandler := handlers.NewCheckinHandler(checkinService)
	rewardHandler := handlers.NewRewardHandler(rewardService)
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	friendHandler := handlers.NewFriendHandler(friendService)
	activityHandler := handlers.NewActivityHandler(activityService, insightService)
	wsHandler := handlers.NewWSNotificationHandler(hub, cfg.JWTSecret, cfg.AllowedOrigins)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	stopCleanup := make(chan struct{})
	limiter.StartCleanup(time.Minute, 10*time.Minute, stopCleanup)

	r := mux.NewRouter()

	// protect mounts prefix behind authentication, activity tracking and
	// rate limiting.
	protect := func(prefix string) *mux.Router {
		sr := r.PathPrefix(prefix).Subrouter()
		sr.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		sr.Use(middleware.UpdateLastActiveMiddleware(userService))
		sr.Use(limiter.Handler)
		return sr
	}

	r.HandleFunc("/health", healthHandler(db.Client())).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})).Methods("GET")
	r.Handle("/ws/notifications", wsHandler).Methods("GET")

	// Public user routes
	r.Handle("/users/register", limiter.Handler(http.HandlerFunc(userHandler.RegisterUserHandler))).Methods("POST")
	r.Handle("/users/login", limiter.Handler(http.HandlerFunc(userHandler.LoginUserHandler))).Methods("POST")

	// Protected user routes
	protectedUserRoutes := protect("/users")
	protectedUserRoutes.HandleFunc("/me", userHandler.GetMeHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.GetUserHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.UpdateUserHandler).Methods("PATCH")
	protectedUserRoutes.HandleFunc("/{id}/habits", habitHandler.ListUserHabitsHandler).Methods("GET")

	habitRoutes := protect("/habits")
	habitRoutes.HandleFunc("", habitHandler.CreateHabitHandler).Methods("POST")
	habitRoutes.HandleFunc("", habitHandler.ListHabitsHandler).Methods("GET")
	habitRoutes.HandleFunc("/{id}", habitHandler.GetHabitHandler).Methods("GET")
	habitRoutes.HandleFunc("/{id}", habitHandler.UpdateHabitHandler).Methods("PUT")
	habitRoutes.HandleFunc("/{id}", habitHandler.DeleteHabitHandler).Methods("DELETE")
	habitRoutes.HandleFunc("/{id}/checkins", checkinHandler.ListCheckinsHandler).Methods("GET")
	habitRoutes.HandleFunc("/{id}/history", habitHandler.HistoryHandler).Methods("GET")

	checkinRoutes := protect("/checkins")
	checkinRoutes.HandleFunc("", checkinHandler.CreateCheckinHandler).Methods("POST")
	checkinRoutes.HandleFunc("/streak/{habitId}", checkinHandler.GetStreakHandler).Methods("GET")
	checkinRoutes.HandleFunc("/{id}", checkinHandler.DeleteCheckinHandler).Methods("DELETE")

	rewardRoutes := protect("/rewards")
	rewardRoutes.HandleFunc("", rewardHandler.ListRewardsHandler).Methods("GET")
	rewardRoutes.HandleFunc("/claim", rewardHandler.ClaimRewardHandler).Methods("POST")
	rewardRoutes.HandleFunc("/mine", rewardHandler.MyRewardsHandler).Methods("GET")

	challengeRoutes := protect("/challenges")
	challengeRoutes.HandleFunc("", challengeHandler.CreateChallengeHandler).Methods("POST")
	challengeRoutes.HandleFunc("", challengeHandler.ListChallengesHandler).Methods("GET")
	challengeRoutes.HandleFunc("/{id}", challengeHandler.GetChallengeHandler).Methods("GET")
	challengeRoutes.HandleFunc("/{id}/join", challengeHandler.JoinChallengeHandler).Methods("POST")
	challengeRoutes.HandleFunc("/{id}/leave", challengeHandler.LeaveChallengeHandler).Methods("POST")
	challengeRoutes.HandleFunc("/{id}/progress", challengeHandler.ProgressHandler).Methods("GET")

	reminderRoutes := protect("/reminders")
	reminderRoutes.HandleFunc("", reminderHandler.CreateReminderHandler).Methods("POST")
	reminderRoutes.HandleFunc("", reminderHandler.ListRemindersHandler).Methods("GET")
	reminderRoutes.HandleFunc("/{id}", reminderHandler.UpdateReminderHandler).Methods("PUT")
	reminderRoutes.HandleFunc("/{id}", reminderHandler.DeleteReminderHandler).Methods("DELETE")

	notificationRoutes := protect("/notifications")
	notificationRoutes.HandleFunc("", notificationHandler.GetUserNotificationsHandler).Methods("GET")
	notificationRoutes.HandleFunc("/{id}/read", notificationHandler.MarkAsReadHandler).Methods("POST")
	notificationRoutes.HandleFunc("/{id}", notificationHandler.DeleteNotificationHandler).Methods("DELETE")

	// Friend routes
	friendRoutes := protect("/friends")
	friendRoutes.HandleFunc("/{id}/request", friendHandler.SendFriendRequestHandler).Methods("POST")
	friendRoutes.HandleFunc("/requests", friendHandler.GetPendingRequestsHandler).Methods("GET")
	friendRoutes.HandleFunc("/requests/{id}/respond", friendHandler.RespondToFriendRequestHandler).Methods("POST")
	friendRoutes.HandleFunc("", friendHandler.GetFriendsHandler).Methods("GET")
	friendRoutes.HandleFunc("/{id}", friendHandler.RemoveFriendHandler).Methods("DELETE")

	protect("/activities").HandleFunc("", activityHandler.RecentActivitiesHandler).Methods("GET")
	protect("/insights").HandleFunc("", activityHandler.InsightsHandler).Methods("GET")

	// Admin routes
	adminRoutes := protect("/admin")
	adminRoutes.Use(middleware.RequireRole(models.RoleAdmin))
	adminRoutes.HandleFunc("/users", userHandler.AdminGetAllUsersHandler).Methods("GET")

	// Apply middleware for logging and request metrics
	r.Use(middleware.LoggingMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	dispatcher := jobs.NewReminderDispatcher(reminderService, habitService, notificationService)
	cronJobs, err := scheduler.StartNotificationCronJobs(dispatcher, notificationService)
	if err != nil {
		logger.Log.Fatalf("Failed to start cron jobs: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Log.Infof("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("HTTP server shutdown failed")
	}
	<-cronJobs.Stop().Done()
	close(stopCleanup)
	if err := db.Client().Disconnect(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("MongoDB disconnect failed")
	}
	logger.Log.Info("Server stopped")
}

func healthHandler(client *mongo.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status, code := "ok", http.StatusOK
		if err := client.Ping(ctx, nil); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
