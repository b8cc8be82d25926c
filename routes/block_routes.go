package routes

import (
	"social_server/controllers"
	"social_server/services"

	"github.com/gorilla/mux"
)

// RegisterBlockRoutes sets up routes for block operations under /api/blocks
func RegisterBlockRoutes(r *mux.Router, blockService *services.BlockService) {
	controller := controllers.NewBlockController(blockService)

	blockRouter := r.PathPrefix("/api/blocks").Subrouter()
	blockRouter.HandleFunc("", controller.HandleBlockUser).Methods("POST")
	blockRouter.HandleFunc("/unblock", controller.HandleUnblock).Methods("POST")
	blockRouter.HandleFunc("/{userId}", controller.HandleListBlocks).Methods("GET")
}
