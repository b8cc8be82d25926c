package controllers

import (
	"encoding/json"
	"net/http"

	"social_server/services"

	"github.com/gorilla/mux"
)

// FriendshipController struct
type FriendshipController struct {
	FriendshipService *services.FriendshipService
}

// NewFriendshipController initializes the controller
func NewFriendshipController(service *services.FriendshipService) *FriendshipController {
	return &FriendshipController{FriendshipService: service}
}

// HandleSendFriendRequest - send a friend request to another user
func (c *FriendshipController) HandleSendFriendRequest(w http.ResponseWriter, r *http.Request) {
	var request struct {
		SenderID    string `json:"senderId"`
		RecipientID string `json:"recipientId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	created, err := c.FriendshipService.SendFriendRequest(r.Context(), request.SenderID, request.RecipientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleRespondFriendRequest - accept or decline a received friend request
func (c *FriendshipController) HandleRespondFriendRequest(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID    string `json:"userId"`
		RequestID string `json:"requestId"`
		Status    string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.Status != "accepted" && request.Status != "declined" {
		http.Error(w, `{"error": "status must be accepted or declined"}`, http.StatusBadRequest)
		return
	}

	if err := c.FriendshipService.RespondFriendRequest(r.Context(), request.UserID, request.RequestID, request.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": request.Status})
}

// HandleCancelFriendRequest - sender withdraws a pending friend request
func (c *FriendshipController) HandleCancelFriendRequest(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID    string `json:"userId"`
		RequestID string `json:"requestId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.FriendshipService.CancelFriendRequest(r.Context(), request.UserID, request.RequestID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "canceled"})
}

// HandleListFriendRequests - list sent or received friend requests
func (c *FriendshipController) HandleListFriendRequests(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	direction := r.URL.Query().Get("direction")
	if direction == "" {
		direction = "received"
	}

	requests, err := c.FriendshipService.ListFriendRequests(r.Context(), userID, direction)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// HandleListFriendships - list a user's friendships
func (c *FriendshipController) HandleListFriendships(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	friendships, err := c.FriendshipService.ListFriendships(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, friendships)
}

// HandleUnfriend - remove an existing friendship
func (c *FriendshipController) HandleUnfriend(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID       string `json:"userId"`
		FriendshipID string `json:"friendshipId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.FriendshipService.DeleteFriendship(r.Context(), request.UserID, request.FriendshipID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
