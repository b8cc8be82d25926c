package routes

import (
	"social_server/controllers"
	"social_server/services"

	"github.com/gorilla/mux"
)

// RegisterFriendshipRoutes sets up routes for friend requests and friendships
// under /api/friendships
func RegisterFriendshipRoutes(r *mux.Router, friendshipService *services.FriendshipService) {
	controller := controllers.NewFriendshipController(friendshipService)

	friendshipRouter := r.PathPrefix("/api/friendships").Subrouter()
	friendshipRouter.HandleFunc("/requests", controller.HandleSendFriendRequest).Methods("POST")
	friendshipRouter.HandleFunc("/requests/respond", controller.HandleRespondFriendRequest).Methods("POST")
	friendshipRouter.HandleFunc("/requests/cancel", controller.HandleCancelFriendRequest).Methods("POST")
	friendshipRouter.HandleFunc("/requests/{userId}", controller.HandleListFriendRequests).Methods("GET")
	friendshipRouter.HandleFunc("/unfriend", controller.HandleUnfriend).Methods("POST")
	friendshipRouter.HandleFunc("/{userId}", controller.HandleListFriendships).Methods("GET")
}
