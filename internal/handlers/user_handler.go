package handlers

import (
	"net/http"

	"github.com/Dias221467/Habit_Tracker/internal/config"
	"github.com/Dias221467/Habit_Tracker/internal/services"
	jwtutil "github.com/Dias221467/Habit_Tracker/pkg/jwt"
	"github.com/Dias221467/Habit_Tracker/pkg/logger"
	"github.com/Dias221467/Habit_Tracker/pkg/middleware"
	log "github.com/sirupsen/logrus"
)

// UserHandler handles HTTP requests related to user operations.
type UserHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		Service: service,
		Config:  cfg,
	}
}

// RegisterUserHandler handles user registration.
func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}

	createdUser, err := h.Service.RegisterUser(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.WithField("userID", createdUser.ID.Hex()).Info("User registered successfully")
	writeJSON(w, http.StatusCreated, createdUser)
}

// LoginUserHandler checks credentials and returns a signed token.
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &credentials) {
		return
	}

	user, err := h.Service.AuthenticateUser(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		log.WithField("email", credentials.Email).Warn("Authentication failed")
		writeError(w, r, err)
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, user.Role, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	log.WithField("userID", user.ID.Hex()).Info("User logged in successfully")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// GetMeHandler returns the caller's own profile.
func (h *UserHandler) GetMeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetUserHandler handles fetching a user by ID. Users may only read their own
// profile.
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	requestedID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if requestedID != userID {
		log.WithFields(log.Fields{
			"requestedUserID": requestedID.Hex(),
			"loggedInUserID":  userID.Hex(),
		}).Warn("Forbidden access attempt")
		http.Error(w, "Forbidden: You can only access your own profile", http.StatusForbidden)
		return
	}

	user, err := h.Service.GetUser(r.Context(), requestedID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateUserHandler patches the caller's name and timezone.
func (h *UserHandler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	requestedID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if requestedID != userID {
		http.Error(w, "Forbidden: You can only update your own profile", http.StatusForbidden)
		return
	}

	var in services.ProfileInput
	if !decodeJSON(w, r, &in) {
		return
	}

	user, err := h.Service.UpdateProfile(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.WithField("userID", user.ID.Hex()).Info("User updated successfully")
	writeJSON(w, http.StatusOK, user)
}

// AdminGetAllUsersHandler lists every account. Routed behind RequireRole.
func (h *UserHandler) AdminGetAllUsersHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())

	users, err := h.Service.GetAllUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if claims != nil {
		logger.Log.Infof("Admin %s fetched %d users", claims.UserID, len(users))
	}
	writeJSON(w, http.StatusOK, users)
}
