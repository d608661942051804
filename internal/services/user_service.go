package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/Dias221467/Habit_Tracker/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const minPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Timezone string `json:"timezone"`
}

// ProfileInput carries the user-editable profile fields. Nil fields are left
// unchanged.
type ProfileInput struct {
	Name     *string `json:"name,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}

// UserService encapsulates the business logic for user operations.
type UserService struct {
	repo UserStore
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore) *UserService {
	return &UserService{
		repo: repo,
	}
}

func validateTimezone(tz string) error {
	if _, err := time.LoadLocation(tz); err != nil {
		return invalid("timezone", "unknown timezone %q", tz)
	}
	return nil
}

// RegisterUser registers a new user after hashing their password.
func (s *UserService) RegisterUser(ctx context.Context, in RegisterInput) (*models.User, error) {
	logrus.Info("Registering new user")

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Timezone = strings.TrimSpace(in.Timezone)

	if in.Name == "" {
		return nil, invalid("name", "is required")
	}
	if !emailRegex.MatchString(in.Email) {
		logrus.WithField("email", in.Email).Warn("Invalid email format during registration")
		return nil, invalid("email", "invalid email format")
	}
	if len(in.Password) < minPasswordLength {
		return nil, invalid("password", "must be at least %d characters", minPasswordLength)
	}
	if in.Timezone == "" {
		in.Timezone = "UTC"
	}
	if err := validateTimezone(in.Timezone); err != nil {
		return nil, err
	}

	// Check if the email is already registered
	if existing, _ := s.repo.GetUserByEmail(ctx, in.Email); existing != nil {
		logrus.WithField("email", in.Email).Warn("Email already in use")
		return nil, ErrEmailInUse
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, err
	}

	user := &models.User{
		Name:           in.Name,
		Email:          in.Email,
		HashedPassword: string(hashedPwd),
		Role:           models.RoleUser,
		Timezone:       in.Timezone,
		Badges:         []string{},
	}

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		logrus.WithError(err).Error("User registration failed")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"userID": createdUser.ID.Hex(),
		"role":   createdUser.Role,
	}).Info("User registered successfully")

	return createdUser, nil
}

// AuthenticateUser verifies the email and password and returns the user if credentials are valid.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	logrus.WithField("email", email).Info("Authenticating user")

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logrus.WithField("email", email).Warn("User not found")
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", email).Warn("Invalid credentials")
		return nil, ErrInvalidCredentials
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// UpdateProfile changes the user's name and/or timezone.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, in ProfileInput) (*models.User, error) {
	fields := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("name", "cannot be empty")
		}
		fields["name"] = name
	}
	if in.Timezone != nil {
		tz := strings.TrimSpace(*in.Timezone)
		if err := validateTimezone(tz); err != nil {
			return nil, err
		}
		fields["timezone"] = tz
	}
	if len(fields) == 0 {
		return s.repo.GetUserByID(ctx, id)
	}

	user, err := s.repo.UpdateUser(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	logrus.WithField("userID", user.ID.Hex()).Info("User updated successfully in service")
	return user, nil
}

func (s *UserService) UpdateLastActive(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.UpdateLastActive(ctx, id)
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}
