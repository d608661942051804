package handlers

import (
	"net/http"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/services"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckinHandler records check-ins and reports streaks.
type CheckinHandler struct {
	Service *services.CheckinService
}

func NewCheckinHandler(service *services.CheckinService) *CheckinHandler {
	return &CheckinHandler{Service: service}
}

type checkinRequest struct {
	HabitID   string     `json:"habit_id"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// POST /checkins
func (h *CheckinHandler) CreateCheckinHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req checkinRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	habitID, err := primitive.ObjectIDFromHex(req.HabitID)
	if err != nil {
		http.Error(w, "Invalid habit_id", http.StatusBadRequest)
		return
	}

	result, err := h.Service.CheckIn(r.Context(), userID, habitID, req.Timestamp)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.WithFields(log.Fields{
		"habitID": habitID.Hex(),
		"streak":  result.Streak.CurrentStreak,
		"points":  result.Award.Points,
	}).Info("Check-in recorded")
	writeJSON(w, http.StatusCreated, result)
}

// GET /checkins/streak/{habitId}
func (h *CheckinHandler) GetStreakHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	habitID, ok := pathID(w, r, "habitId")
	if !ok {
		return
	}

	result, err := h.Service.GetStreak(r.Context(), userID, habitID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GET /habits/{id}/checkins
func (h *CheckinHandler) ListCheckinsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	habitID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	checkins, err := h.Service.ListCheckins(r.Context(), userID, habitID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checkins)
}

// DELETE /checkins/{id}
func (h *CheckinHandler) DeleteCheckinHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	checkinID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.Service.DeleteCheckin(r.Context(), userID, checkinID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
