package routes

import (
	"social_server/controllers"
	"social_server/services"

	"github.com/gorilla/mux"
)

// RegisterGroupRoutes sets up routes for group membership operations under
// /api/groups
func RegisterGroupRoutes(r *mux.Router, groupService *services.GroupService) {
	controller := controllers.NewGroupController(groupService)

	groupRouter := r.PathPrefix("/api/groups").Subrouter()
	groupRouter.HandleFunc("", controller.HandleCreateGroup).Methods("POST")
	groupRouter.HandleFunc("/join", controller.HandleJoinGroup).Methods("POST")
	groupRouter.HandleFunc("/leave", controller.HandleLeaveGroup).Methods("POST")
	groupRouter.HandleFunc("/join-requests/review", controller.HandleReviewJoinRequest).Methods("POST")
	groupRouter.HandleFunc("/join-requests/cancel", controller.HandleCancelJoinRequest).Methods("POST")
	groupRouter.HandleFunc("/{groupId}/members", controller.HandleListMembers).Methods("GET")
	groupRouter.HandleFunc("/{groupId}/join-requests", controller.HandleListJoinRequests).Methods("GET")
}
