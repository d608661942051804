package handlers

import (
	"net/http"

	"github.com/Dias221467/Habit_Tracker/internal/services"
	log "github.com/sirupsen/logrus"
)

// ChallengeHandler manages group challenges and their leaderboards.
type ChallengeHandler struct {
	Service *services.ChallengeService
}

func NewChallengeHandler(service *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{Service: service}
}

// POST /challenges
func (h *ChallengeHandler) CreateChallengeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var in services.ChallengeInput
	if !decodeJSON(w, r, &in) {
		return
	}

	challenge, err := h.Service.CreateChallenge(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.WithField("challengeID", challenge.ID.Hex()).Info("Challenge created")
	writeJSON(w, http.StatusCreated, challenge)
}

// GET /challenges?active=true
func (h *ChallengeHandler) ListChallengesHandler(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	challenges, err := h.Service.ListChallenges(r.Context(), activeOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, challenges)
}

// GET /challenges/{id}
func (h *ChallengeHandler) GetChallengeHandler(w http.ResponseWriter, r *http.Request) {
	challengeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	challenge, err := h.Service.GetChallenge(r.Context(), challengeID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

// POST /challenges/{id}/join
func (h *ChallengeHandler) JoinChallengeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	challengeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.JoinChallenge(r.Context(), userID, challengeID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Joined challenge"})
}

// POST /challenges/{id}/leave
func (h *ChallengeHandler) LeaveChallengeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	challengeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.LeaveChallenge(r.Context(), userID, challengeID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Left challenge"})
}

// GET /challenges/{id}/progress
func (h *ChallengeHandler) ProgressHandler(w http.ResponseWriter, r *http.Request) {
	challengeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	progress, err := h.Service.Progress(r.Context(), challengeID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}
