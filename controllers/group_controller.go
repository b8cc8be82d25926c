package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"social_server/services"
	"social_server/utils"

	"github.com/gorilla/mux"
)

// GroupController struct
type GroupController struct {
	GroupService *services.GroupService
}

// NewGroupController initializes the controller
func NewGroupController(service *services.GroupService) *GroupController {
	return &GroupController{GroupService: service}
}

// HandleCreateGroup - create a group; the creator becomes its admin
func (c *GroupController) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID     string `json:"userId"`
		GroupName  string `json:"groupName"`
		IsPrivate  bool   `json:"isPrivate"`
		GroupCover string `json:"groupCover"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.GroupName == "" {
		http.Error(w, `{"error": "groupName is required"}`, http.StatusBadRequest)
		return
	}

	group, err := c.GroupService.CreateGroup(r.Context(), request.UserID, request.GroupName, request.IsPrivate, request.GroupCover)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

// HandleJoinGroup - join a public group or request to join a private one
func (c *GroupController) HandleJoinGroup(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID  string `json:"userId"`
		GroupID string `json:"groupId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	outcome, err := c.GroupService.JoinGroup(r.Context(), request.UserID, request.GroupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"joinStatus": outcome})
}

// HandleReviewJoinRequest - group admin accepts or declines a join request
func (c *GroupController) HandleReviewJoinRequest(w http.ResponseWriter, r *http.Request) {
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

	if err := c.GroupService.ReviewJoinRequest(r.Context(), request.UserID, request.RequestID, request.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": request.Status})
}

// HandleCancelJoinRequest - requester withdraws a join request
func (c *GroupController) HandleCancelJoinRequest(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID    string `json:"userId"`
		RequestID string `json:"requestId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.GroupService.CancelJoinRequest(r.Context(), request.UserID, request.RequestID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "canceled"})
}

// HandleLeaveGroup - leave a group (owners cannot)
func (c *GroupController) HandleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID  string `json:"userId"`
		GroupID string `json:"groupId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.GroupService.LeaveGroup(r.Context(), request.UserID, request.GroupID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "left"})
}

// HandleListMembers - paginated group member listing
func (c *GroupController) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	limit := int64(20)
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 32); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	startKey := utils.StartKey(map[string]string{
		"groupId": groupID,
		"userId":  r.URL.Query().Get("startKey"),
	})

	page, err := c.GroupService.ListMembers(r.Context(), groupID, int32(limit), startKey)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"members": page.Members,
		"nextKey": utils.ExtractString(page.NextKey, "userId"),
	})
}

// HandleListJoinRequests - group admin lists join requests for a private group
func (c *GroupController) HandleListJoinRequests(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]
	callerID := r.URL.Query().Get("userId")
	status := r.URL.Query().Get("status")

	requests, err := c.GroupService.ListJoinRequests(r.Context(), callerID, groupID, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}
