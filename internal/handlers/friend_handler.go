package handlers

import (
	"net/http"

	"github.com/Dias221467/Habit_Tracker/internal/services"
	"github.com/Dias221467/Habit_Tracker/pkg/logger"
)

// FriendHandler manages HTTP endpoints related to friend requests.
type FriendHandler struct {
	Service *services.FriendService
}

// NewFriendHandler initializes a new FriendHandler.
func NewFriendHandler(service *services.FriendService) *FriendHandler {
	return &FriendHandler{Service: service}
}

// SendFriendRequestHandler allows a user to send a friend request.
func (h *FriendHandler) SendFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	senderID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	receiverID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	request, err := h.Service.SendFriendRequest(r.Context(), senderID, receiverID)
	if err != nil {
		logger.Log.Warnf("Failed to send friend request: %v", err)
		writeError(w, r, err)
		return
	}

	logger.Log.Infof("User %s sent a friend request to %s", senderID.Hex(), receiverID.Hex())
	writeJSON(w, http.StatusCreated, request)
}

// GetPendingRequestsHandler shows all incoming friend requests.
func (h *FriendHandler) GetPendingRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	requests, err := h.Service.GetPendingRequests(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// RespondToFriendRequestHandler allows accepting or rejecting a friend request.
func (h *FriendHandler) RespondToFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	requestID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var body struct {
		Accept bool `json:"accept"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	if err := h.Service.RespondToRequest(r.Context(), userID, requestID, body.Accept); err != nil {
		writeError(w, r, err)
		return
	}

	status := "rejected"
	if body.Accept {
		status = "accepted"
	}
	logger.Log.Infof("User %s %s friend request %s", userID.Hex(), status, requestID.Hex())
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// GetFriendsHandler lists the caller's friends.
func (h *FriendHandler) GetFriendsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	friends, err := h.Service.GetFriends(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, friends)
}

// RemoveFriendHandler unfriends the user in the path.
func (h *FriendHandler) RemoveFriendHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	friendID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.RemoveFriend(r.Context(), userID, friendID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
