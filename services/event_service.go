package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gathr_server/models"

	"github.com/google/uuid"
)

// EventService owns events and the consistency of their denormalized
// attendance counters. The per-status counters move by signed deltas in the
// same logical operation as the attendance write; attendeeCount is always
// recomputed from a fresh count of going+maybe records instead of trusting
// accumulated deltas.
type EventService struct {
	Events      EventStore
	Attendance  AttendanceStore
	Memberships MembershipStore
	Groups      GroupStore
	Users       UserStore
	Log         *slog.Logger
}

// CreateEventInput carries the validated fields for a new event.
type CreateEventInput struct {
	GroupID      string    `json:"groupId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Location     string    `json:"location"`
	IsVirtual    bool      `json:"isVirtual"`
	VirtualLink  string    `json:"virtualLink"`
	MaxAttendees int       `json:"maxAttendees"`
}

// CreateEvent validates and stores a new event for a group the organizer is
// an active member of.
func (es *EventService) CreateEvent(ctx context.Context, organizerID string, input CreateEventInput) (*models.Event, error) {
	if input.Title == "" {
		return nil, InvalidInputError("Event title is required")
	}
	if input.Description == "" {
		return nil, InvalidInputError("Event description is required")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, InvalidInputError("Start and end dates are required")
	}
	if input.StartDate.Before(time.Now().UTC()) {
		return nil, InvalidInputError("Event start date must be in the future")
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, InvalidInputError("End date must be after start date")
	}
	if input.IsVirtual {
		if input.VirtualLink == "" {
			return nil, InvalidInputError("Virtual link is required for virtual events")
		}
		if input.Location != "" {
			return nil, InvalidInputError("Virtual events cannot have a location")
		}
	} else {
		if input.Location == "" {
			return nil, InvalidInputError("Location is required for in-person events")
		}
		if input.VirtualLink != "" {
			return nil, InvalidInputError("In-person events cannot have a virtual link")
		}
	}
	if input.MaxAttendees < 0 {
		return nil, InvalidInputError("Max attendees must be at least 1")
	}

	if _, err := es.Groups.Get(ctx, input.GroupID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, NotFoundError("Group not found")
		}
		return nil, InternalError(err, "Internal server error")
	}
	membership, err := es.Memberships.Find(ctx, input.GroupID, organizerID)
	if err != nil && !errors.Is(err, ErrItemNotFound) {
		return nil, InternalError(err, "Internal server error")
	}
	if err != nil || !membership.IsActive {
		return nil, ForbiddenError("You must be a member of the group to create events")
	}

	event := &models.Event{
		ID:           uuid.NewString(),
		GroupID:      input.GroupID,
		OrganizerID:  organizerID,
		Title:        input.Title,
		Description:  input.Description,
		StartDate:    input.StartDate.UTC(),
		EndDate:      input.EndDate.UTC(),
		Location:     input.Location,
		IsVirtual:    input.IsVirtual,
		VirtualLink:  input.VirtualLink,
		MaxAttendees: input.MaxAttendees,
		CreatedAt:    time.Now().UTC(),
	}
	if err := es.Events.Put(ctx, event); err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	if es.Log != nil {
		es.Log.Info("event created", "event", event.ID, "group", event.GroupID, "organizer", organizerID)
	}
	return event, nil
}

// UpdateEventInput carries a partial update: nil fields are left unchanged.
type UpdateEventInput struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Location     *string    `json:"location"`
	IsVirtual    *bool      `json:"isVirtual"`
	VirtualLink  *string    `json:"virtualLink"`
	MaxAttendees *int       `json:"maxAttendees"`
}

// UpdateEvent applies the provided fields and revalidates the result. Only
// the organizer may update.
func (es *EventService) UpdateEvent(ctx context.Context, userID, eventID string, input UpdateEventInput) (*models.EventView, error) {
	event, err := es.Events.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, NotFoundError("Event not found")
		}
		return nil, InternalError(err, "Internal server error")
	}
	if event.OrganizerID != userID {
		return nil, ForbiddenError("Only the event organizer can update this event")
	}

	if input.Title != nil {
		event.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		event.Description = strings.TrimSpace(*input.Description)
	}
	if input.StartDate != nil {
		event.StartDate = input.StartDate.UTC()
	}
	if input.EndDate != nil {
		event.EndDate = input.EndDate.UTC()
	}
	if input.Location != nil {
		event.Location = strings.TrimSpace(*input.Location)
	}
	if input.IsVirtual != nil {
		event.IsVirtual = *input.IsVirtual
	}
	if input.VirtualLink != nil {
		event.VirtualLink = strings.TrimSpace(*input.VirtualLink)
	}
	if input.MaxAttendees != nil {
		event.MaxAttendees = *input.MaxAttendees
	}

	if event.Title == "" {
		return nil, InvalidInputError("Event title is required")
	}
	if event.Description == "" {
		return nil, InvalidInputError("Event description is required")
	}
	if !event.EndDate.After(event.StartDate) {
		return nil, InvalidInputError("End date must be after start date")
	}
	if event.MaxAttendees < 0 {
		return nil, InvalidInputError("Max attendees must be at least 1")
	}

	if err := es.Events.Put(ctx, event); err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	if es.Log != nil {
		es.Log.Info("event updated", "event", eventID, "organizer", userID)
	}
	return es.view(ctx, event), nil
}

// DeleteEvent removes the event and every attendance record. Only the
// organizer may delete. Attendance goes first so a partial failure cannot
// leave records pointing at a missing event.
func (es *EventService) DeleteEvent(ctx context.Context, userID, eventID string) error {
	event, err := es.Events.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return NotFoundError("Event not found")
		}
		return InternalError(err, "Internal server error")
	}
	if event.OrganizerID != userID {
		return ForbiddenError("Only the event organizer can delete this event")
	}
	if err := es.Attendance.DeleteByEvent(ctx, eventID); err != nil {
		return InternalError(err, "Internal server error")
	}
	if err := es.Events.Delete(ctx, eventID); err != nil {
		return InternalError(err, "Internal server error")
	}
	if es.Log != nil {
		es.Log.Info("event deleted", "event", eventID, "organizer", userID)
	}
	return nil
}

// GetEvent returns one event with organizer and group resolved.
func (es *EventService) GetEvent(ctx context.Context, id string) (*models.EventView, error) {
	event, err := es.Events.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, NotFoundError("Event not found")
		}
		return nil, InternalError(err, "Internal server error")
	}
	return es.view(ctx, event), nil
}

// ListEvents returns one page of events ordered by start date. When groupID
// is empty, events from all of the viewer's active groups are listed.
func (es *EventService) ListEvents(ctx context.Context, viewerID, groupID string, upcomingOnly bool, page, limit int) ([]models.EventView, models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultFeedPageSize
	}
	var groupIDs []string
	if groupID != "" {
		groupIDs = []string{groupID}
	} else {
		memberships, err := es.Memberships.ListActiveByUser(ctx, viewerID)
		if err != nil {
			return nil, models.Pagination{}, InternalError(err, "Internal server error")
		}
		for _, m := range memberships {
			groupIDs = append(groupIDs, m.GroupID)
		}
	}
	events, total, err := es.Events.ListByGroups(ctx, groupIDs, upcomingOnly, page, limit)
	if err != nil {
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}
	views := make([]models.EventView, 0, len(events))
	for i := range events {
		views = append(views, *es.view(ctx, &events[i]))
	}
	return views, models.NewPagination(page, limit, total), nil
}

func (es *EventService) view(ctx context.Context, event *models.Event) *models.EventView {
	view := &models.EventView{Event: *event}
	if organizer, err := es.Users.Get(ctx, event.OrganizerID); err == nil {
		view.Organizer = organizer.Ref()
	}
	if group, err := es.Groups.Get(ctx, event.GroupID); err == nil {
		view.Group = group.Ref()
	}
	return view
}

var statusCounterFields = map[string]string{
	models.AttendanceGoing:    "goingCount",
	models.AttendanceMaybe:    "maybeCount",
	models.AttendanceNotGoing: "notGoingCount",
}

// SetAttendance moves the (event, user) attendance record to status and
// keeps the event counters consistent: the old status counter (if any) is
// decremented and the new one incremented in a single atomic document
// update, together with a freshly recounted attendeeCount.
//
// The capacity guard is check-then-act: two concurrent "going" requests for
// the last seat may both pass the check and oversubscribe the event by one.
// This is a known, accepted race; only the sequential case is guaranteed to
// reject.
func (es *EventService) SetAttendance(ctx context.Context, userID, eventID, status string) error {
	event, err := es.Events.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return NotFoundError("Event not found")
		}
		return InternalError(err, "Internal server error")
	}
	if !models.ValidAttendanceStatus(status) {
		return InvalidInputError("Valid status is required (going, maybe, or not_going)")
	}
	if status == models.AttendanceGoing && event.MaxAttendees > 0 && event.GoingCount >= event.MaxAttendees {
		return InvalidInputError("Event is at full capacity")
	}

	now := time.Now().UTC()
	oldStatus := ""
	attendance, err := es.Attendance.Find(ctx, eventID, userID)
	switch {
	case err == nil:
		oldStatus = attendance.Status
		attendance.Status = status
		attendance.UpdatedAt = now
	case errors.Is(err, ErrItemNotFound):
		attendance = &models.EventAttendance{
			ID:        uuid.NewString(),
			EventID:   eventID,
			UserID:    userID,
			Status:    status,
			CreatedAt: now,
			UpdatedAt: now,
		}
	default:
		return InternalError(err, "Internal server error")
	}
	if err := es.Attendance.Put(ctx, attendance); err != nil {
		return InternalError(err, "Internal server error")
	}

	deltas := map[string]int{}
	if oldStatus != "" {
		deltas[statusCounterFields[oldStatus]]--
	}
	deltas[statusCounterFields[status]]++
	if err := es.applyCounters(ctx, eventID, deltas); err != nil {
		return err
	}
	if es.Log != nil {
		es.Log.Info("attendance updated", "event", eventID, "user", userID, "from", oldStatus, "to", status)
	}
	return nil
}

// RemoveAttendance deletes the (event, user) record and reverses its
// contribution to the counters.
func (es *EventService) RemoveAttendance(ctx context.Context, userID, eventID string) error {
	if _, err := es.Events.Get(ctx, eventID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return NotFoundError("Event not found")
		}
		return InternalError(err, "Internal server error")
	}
	attendance, err := es.Attendance.Find(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return InvalidInputError("No attendance record found")
		}
		return InternalError(err, "Internal server error")
	}
	if err := es.Attendance.Delete(ctx, attendance.ID); err != nil {
		return InternalError(err, "Internal server error")
	}
	deltas := map[string]int{statusCounterFields[attendance.Status]: -1}
	if err := es.applyCounters(ctx, eventID, deltas); err != nil {
		return err
	}
	if es.Log != nil {
		es.Log.Info("attendance removed", "event", eventID, "user", userID, "was", attendance.Status)
	}
	return nil
}

// applyCounters recounts attendeeCount from backing records and applies it
// with the status deltas as one document update. The counter write is the
// last step of every transition so a partial failure leaves the backing
// records authoritative for reconciliation.
func (es *EventService) applyCounters(ctx context.Context, eventID string, deltas map[string]int) error {
	attendeeCount, err := es.Attendance.CountByStatuses(ctx, eventID, models.AttendanceGoing, models.AttendanceMaybe)
	if err != nil {
		return InternalError(err, "Internal server error")
	}
	if err := es.Events.ApplyAttendanceDeltas(ctx, eventID, deltas, attendeeCount); err != nil {
		return InternalError(err, "Internal server error")
	}
	return nil
}

// RecountEvent rebuilds every attendance counter from the backing records.
// It exists for reconciliation: counters can drift when a request fails
// between the attendance write and the counter update.
func (es *EventService) RecountEvent(ctx context.Context, eventID string) (*models.Event, error) {
	if _, err := es.Events.Get(ctx, eventID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, NotFoundError("Event not found")
		}
		return nil, InternalError(err, "Internal server error")
	}
	going, err := es.Attendance.CountByStatuses(ctx, eventID, models.AttendanceGoing)
	if err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	maybe, err := es.Attendance.CountByStatuses(ctx, eventID, models.AttendanceMaybe)
	if err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	notGoing, err := es.Attendance.CountByStatuses(ctx, eventID, models.AttendanceNotGoing)
	if err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	if err := es.Events.SetCounters(ctx, eventID, going, maybe, notGoing, going+maybe); err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	event, err := es.Events.Get(ctx, eventID)
	if err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	if es.Log != nil {
		es.Log.Info("event counters recounted", "event", eventID,
			"going", going, "maybe", maybe, "notGoing", notGoing)
	}
	return event, nil
}
