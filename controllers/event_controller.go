package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"gathr_server/middleware"
	"gathr_server/services"
	"gathr_server/utils"

	"github.com/gorilla/mux"
)

// EventController handles HTTP requests for events and attendance
type EventController struct {
	EventService *services.EventService
	Log          *slog.Logger
}

// NewEventController creates a new EventController instance
func NewEventController(eventService *services.EventService, log *slog.Logger) *EventController {
	return &EventController{EventService: eventService, Log: log}
}

// CreateEvent handles POST /api/events
func (ec *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	var input services.CreateEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, ec.Log, services.InvalidInputError("Invalid request body"))
		return
	}
	event, err := ec.EventService.CreateEvent(r.Context(), userID, input)
	if err != nil {
		utils.WriteError(w, ec.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Event created successfully",
		"event":   event,
	})
}

// ListEvents handles GET /api/events
func (ec *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.UserID(r.Context())
	groupID := r.URL.Query().Get("groupId")
	upcomingOnly := utils.QueryBool(r, "upcoming", false)
	page := utils.QueryInt(r, "page", 1)
	limit := utils.QueryInt(r, "limit", services.DefaultFeedPageSize)

	events, pagination, err := ec.EventService.ListEvents(r.Context(), viewerID, groupID, upcomingOnly, page, limit)
	if err != nil {
		utils.WriteError(w, ec.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events":     events,
		"pagination": pagination,
	})
}

// UpdateEvent handles PUT /api/events/{id}
func (ec *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	eventID := mux.Vars(r)["id"]
	var input services.UpdateEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, ec.Log, services.InvalidInputError("Invalid request body"))
		return
	}
	event, err := ec.EventService.UpdateEvent(r.Context(), userID, eventID, input)
	if err != nil {
		utils.WriteError(w, ec.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Event updated successfully",
		"event":   event,
	})
}

// DeleteEvent handles DELETE /api/events/{id}
func (ec *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if err := ec.EventService.DeleteEvent(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		utils.WriteError(w, ec.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Event deleted successfully",
	})
}

// GetEvent handles GET /api/events/{id}
func (ec *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := ec.EventService.GetEvent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, ec.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, event)
}

// SetAttendance handles POST /api/events/{id}/attendance
func (ec *EventController) SetAttendance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	eventID := mux.Vars(r)["id"]
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, ec.Log, services.InvalidInputError("Invalid request body"))
		return
	}
	if err := ec.EventService.SetAttendance(r.Context(), userID, eventID, body.Status); err != nil {
		utils.WriteError(w, ec.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Attendance updated successfully",
		"status":  body.Status,
	})
}

// RemoveAttendance handles DELETE /api/events/{id}/attendance
func (ec *EventController) RemoveAttendance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if err := ec.EventService.RemoveAttendance(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		utils.WriteError(w, ec.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Attendance removed successfully",
	})
}
