package controllers

import (
	"encoding/json"
	"net/http"

	"social_server/services"

	"github.com/gorilla/mux"
)

// BlockController struct
type BlockController struct {
	BlockService *services.BlockService
}

// NewBlockController initializes the controller
func NewBlockController(service *services.BlockService) *BlockController {
	return &BlockController{BlockService: service}
}

// HandleBlockUser - block another user
func (c *BlockController) HandleBlockUser(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID   string `json:"userId"`
		TargetID string `json:"targetId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	block, err := c.BlockService.BlockUser(r.Context(), request.UserID, request.TargetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, block)
}

// HandleUnblock - remove a block the caller created
func (c *BlockController) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID  string `json:"userId"`
		BlockID string `json:"blockId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.BlockService.Unblock(r.Context(), request.UserID, request.BlockID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "unblocked"})
}

// HandleListBlocks - list the blocks the caller created
func (c *BlockController) HandleListBlocks(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	blocks, err := c.BlockService.ListBlocks(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blocks)
}
