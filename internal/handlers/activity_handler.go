package handlers

import (
	"net/http"
	"strconv"

	"github.com/Dias221467/Habit_Tracker/internal/services"
)

// ActivityHandler serves the activity feed and progress insights.
type ActivityHandler struct {
	Activity *services.ActivityService
	Insights *services.InsightService
}

func NewActivityHandler(activity *services.ActivityService, insights *services.InsightService) *ActivityHandler {
	return &ActivityHandler{Activity: activity, Insights: insights}
}

// GET /activities?limit=
func (h *ActivityHandler) RecentActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	// Invalid or out-of-range limits fall back to the service default.
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	activities, err := h.Activity.GetRecentActivities(r.Context(), userID, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// GET /insights
func (h *ActivityHandler) InsightsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	insights, err := h.Insights.GetInsights(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}
