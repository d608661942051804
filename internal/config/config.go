package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds runtime settings read from the environment.
type Config struct {
	Port             string
	MongoURI         string
	MongoDB          string
	JWTSecret        string
	TokenExpiry      time.Duration
	AllowedOrigins   []string
	PointsPerCheckin int
	RateLimitRPS     int
	RateLimitBurst   int
	LogLevel         string
}

// LoadConfig reads a .env file if present and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using process environment")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		MongoURI:       strings.TrimSpace(os.Getenv("MONGO_URI")),
		MongoDB:        getEnv("MONGO_DB", "habit_tracker"),
		JWTSecret:      strings.TrimSpace(os.Getenv("JWT_SECRET")),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.TokenExpiry, err = time.ParseDuration(getEnv("TOKEN_EXPIRY", "72h")); err != nil || cfg.TokenExpiry <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_EXPIRY %q", os.Getenv("TOKEN_EXPIRY"))
	}
	if cfg.PointsPerCheckin, err = getInt("POINTS_PER_CHECKIN", 10); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getInt("RATE_LIMIT_RPS", 5); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
