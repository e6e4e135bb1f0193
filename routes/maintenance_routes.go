package routes

import (
	"log/slog"

	"gathr_server/controllers"
	"gathr_server/services"

	"github.com/gorilla/mux"
)

// RegisterMaintenanceRoutes sets up counter reconciliation routes under /api/maintenance
func RegisterMaintenanceRoutes(r *mux.Router, eventService *services.EventService, groupService *services.GroupService, log *slog.Logger) {
	controller := controllers.NewMaintenanceController(eventService, groupService, log)

	maintenanceRouter := r.PathPrefix("/maintenance").Subrouter()
	maintenanceRouter.HandleFunc("/events/{id}/recount", controller.RecountEvent).Methods("POST")
	maintenanceRouter.HandleFunc("/groups/{id}/recount", controller.RecountGroup).Methods("POST")
}
