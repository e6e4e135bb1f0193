package routes

import (
	"log/slog"

	"gathr_server/controllers"
	"gathr_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserRoutes sets up routes for user lookup and search under /api/users
func RegisterUserRoutes(r *mux.Router, userService *services.UserService, log *slog.Logger) {
	controller := controllers.NewUserController(userService, log)

	userRouter := r.PathPrefix("/users").Subrouter()

	// Search precedes the {id} route so "search" is not captured as a user id.
	userRouter.HandleFunc("/search", controller.SearchUsers).Methods("GET")
	userRouter.HandleFunc("/{id}", controller.GetUser).Methods("GET")
}
