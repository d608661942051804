package handlers

import (
	"net/http"

	"github.com/Dias221467/Habit_Tracker/internal/services"
	"github.com/Dias221467/Habit_Tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RewardHandler struct {
	Service *services.RewardService
}

func NewRewardHandler(service *services.RewardService) *RewardHandler {
	return &RewardHandler{Service: service}
}

// GET /rewards
func (h *RewardHandler) ListRewardsHandler(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.Service.ListRewards(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rewards)
}

// POST /rewards/claim
func (h *RewardHandler) ClaimRewardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		RewardID string `json:"reward_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	rewardID, err := primitive.ObjectIDFromHex(req.RewardID)
	if err != nil {
		http.Error(w, "Invalid reward_id", http.StatusBadRequest)
		return
	}

	claim, err := h.Service.ClaimReward(r.Context(), userID, rewardID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.Log.Infof("User %s claimed reward %s", userID.Hex(), claim.Title)
	writeJSON(w, http.StatusCreated, claim)
}

// GET /rewards/mine
func (h *RewardHandler) MyRewardsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	claims, err := h.Service.ListUserRewards(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, claims)
}
