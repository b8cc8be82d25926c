package routes

import (
	"social_server/controllers"
	"social_server/services"

	"github.com/gorilla/mux"
)

// RegisterFollowerRoutes sets up routes for follow operations under
// /api/followers
func RegisterFollowerRoutes(r *mux.Router, followerService *services.FollowerService) {
	controller := controllers.NewFollowerController(followerService)

	followerRouter := r.PathPrefix("/api/followers").Subrouter()
	followerRouter.HandleFunc("", controller.HandleFollow).Methods("POST")
	followerRouter.HandleFunc("/unfollow", controller.HandleUnfollow).Methods("POST")
	followerRouter.HandleFunc("/{targetType}/{targetId}", controller.HandleListFollowers).Methods("GET")
}
