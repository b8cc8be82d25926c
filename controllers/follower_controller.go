package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"social_server/services"
	"social_server/utils"

	"github.com/gorilla/mux"
)

// FollowerController struct
type FollowerController struct {
	FollowerService *services.FollowerService
}

// NewFollowerController initializes the controller
func NewFollowerController(service *services.FollowerService) *FollowerController {
	return &FollowerController{FollowerService: service}
}

// HandleFollow - follow a user or a page
func (c *FollowerController) HandleFollow(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FollowerID string `json:"followerId"`
		TargetID   string `json:"targetId"`
		TargetType string `json:"targetType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.TargetType != "user" && request.TargetType != "page" {
		http.Error(w, `{"error": "targetType must be user or page"}`, http.StatusBadRequest)
		return
	}

	edge, err := c.FollowerService.Follow(r.Context(), request.FollowerID, request.TargetID, request.TargetType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, edge)
}

// HandleUnfollow - remove a follow edge the caller owns
func (c *FollowerController) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FollowerID string `json:"followerId"`
		FollowID   string `json:"followId"`
		TargetType string `json:"targetType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.FollowerService.Unfollow(r.Context(), request.FollowerID, request.FollowID, request.TargetType); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "unfollowed"})
}

// HandleListFollowers - paginated follower listing for a user or a page
func (c *FollowerController) HandleListFollowers(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetType := vars["targetType"]
	targetID := vars["targetId"]

	limit := int64(20)
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 32); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	startKey := utils.StartKey(map[string]string{
		"followId":  r.URL.Query().Get("startKey"),
		"following": targetID,
	})

	page, err := c.FollowerService.ListFollowers(r.Context(), targetID, targetType, int32(limit), startKey)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"followers":      page.Followers,
		"followersCount": page.FollowersCount,
		"nextKey":        utils.ExtractString(page.NextKey, "followId"),
	})
}
