package handlers

import (
	"net/http"
	"strconv"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/Dias221467/Habit_Tracker/internal/services"
	log "github.com/sirupsen/logrus"
)

// HabitHandler exposes habit CRUD and history.
type HabitHandler struct {
	Service *services.HabitService
}

func NewHabitHandler(service *services.HabitService) *HabitHandler {
	return &HabitHandler{Service: service}
}

// POST /habits
func (h *HabitHandler) CreateHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var in models.HabitInput
	if !decodeJSON(w, r, &in) {
		return
	}

	habit, err := h.Service.CreateHabit(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.WithFields(log.Fields{
		"userID":  userID.Hex(),
		"habitID": habit.ID.Hex(),
	}).Info("Habit created")
	writeJSON(w, http.StatusCreated, habit)
}

// GET /habits?category=
func (h *HabitHandler) ListHabitsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	habits, err := h.Service.ListHabits(r.Context(), userID, r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

// GET /users/{id}/habits
func (h *HabitHandler) ListUserHabitsHandler(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	ownerID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	habits, err := h.Service.ListHabitsFor(r.Context(), viewerID, ownerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

// GET /habits/{id}
func (h *HabitHandler) GetHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	habitID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	habit, err := h.Service.GetHabit(r.Context(), userID, habitID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

// PUT /habits/{id}
func (h *HabitHandler) UpdateHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	habitID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var in models.HabitInput
	if !decodeJSON(w, r, &in) {
		return
	}

	habit, err := h.Service.UpdateHabit(r.Context(), userID, habitID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

// DELETE /habits/{id}
func (h *HabitHandler) DeleteHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	habitID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.DeleteHabit(r.Context(), userID, habitID); err != nil {
		writeError(w, r, err)
		return
	}

	log.WithField("habitID", habitID.Hex()).Info("Habit deleted")
	w.WriteHeader(http.StatusNoContent)
}

// GET /habits/{id}/history?days=N
func (h *HabitHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	habitID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Invalid days", http.StatusBadRequest)
			return
		}
		days = n
	}

	history, err := h.Service.History(r.Context(), userID, habitID, days)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
