package routes

import (
	"log/slog"

	"gathr_server/controllers"
	"gathr_server/services"

	"github.com/gorilla/mux"
)

// RegisterEventRoutes sets up routes for events and attendance under /api/events
func RegisterEventRoutes(r *mux.Router, eventService *services.EventService, log *slog.Logger) {
	controller := controllers.NewEventController(eventService, log)

	eventRouter := r.PathPrefix("/events").Subrouter()
	eventRouter.HandleFunc("", controller.ListEvents).Methods("GET")
	eventRouter.HandleFunc("", controller.CreateEvent).Methods("POST")
	eventRouter.HandleFunc("/{id}", controller.GetEvent).Methods("GET")
	eventRouter.HandleFunc("/{id}", controller.UpdateEvent).Methods("PUT")
	eventRouter.HandleFunc("/{id}", controller.DeleteEvent).Methods("DELETE")
	eventRouter.HandleFunc("/{id}/attendance", controller.SetAttendance).Methods("POST")
	eventRouter.HandleFunc("/{id}/attendance", controller.RemoveAttendance).Methods("DELETE")
}
