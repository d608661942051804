package handlers

import (
	"net/http"

	"github.com/Dias221467/Habit_Tracker/internal/services"
)

type ReminderHandler struct {
	Service *services.ReminderService
}

func NewReminderHandler(service *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{Service: service}
}

// POST /reminders
func (h *ReminderHandler) CreateReminderHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var in services.ReminderInput
	if !decodeJSON(w, r, &in) {
		return
	}

	reminder, err := h.Service.CreateReminder(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reminder)
}

// GET /reminders
func (h *ReminderHandler) ListRemindersHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	reminders, err := h.Service.ListReminders(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reminders)
}

// PUT /reminders/{id}
func (h *ReminderHandler) UpdateReminderHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	reminderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var in services.ReminderInput
	if !decodeJSON(w, r, &in) {
		return
	}

	reminder, err := h.Service.UpdateReminder(r.Context(), userID, reminderID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reminder)
}

// DELETE /reminders/{id}
func (h *ReminderHandler) DeleteReminderHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	reminderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.DeleteReminder(r.Context(), userID, reminderID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
