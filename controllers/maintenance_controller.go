package controllers

import (
	"log/slog"
	"net/http"

	"gathr_server/services"
	"gathr_server/utils"

	"github.com/gorilla/mux"
)

// MaintenanceController exposes counter reconciliation endpoints. These
// rebuild stored counters from the backing records when drift is suspected.
type MaintenanceController struct {
	EventService *services.EventService
	GroupService *services.GroupService
	Log          *slog.Logger
}

// NewMaintenanceController creates a new MaintenanceController instance
func NewMaintenanceController(eventService *services.EventService, groupService *services.GroupService, log *slog.Logger) *MaintenanceController {
	return &MaintenanceController{EventService: eventService, GroupService: groupService, Log: log}
}

// RecountEvent handles POST /api/maintenance/events/{id}/recount
func (mc *MaintenanceController) RecountEvent(w http.ResponseWriter, r *http.Request) {
	event, err := mc.EventService.RecountEvent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, mc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Event counters rebuilt",
		"event":   event,
	})
}

// RecountGroup handles POST /api/maintenance/groups/{id}/recount
func (mc *MaintenanceController) RecountGroup(w http.ResponseWriter, r *http.Request) {
	memberCount, err := mc.GroupService.RecountGroup(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, mc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Group member count rebuilt",
		"memberCount": memberCount,
	})
}
