package models

import "time"

// Attendance statuses.
const (
	AttendanceGoing    = "going"
	AttendanceMaybe    = "maybe"
	AttendanceNotGoing = "not_going"
)

// ValidAttendanceStatus reports whether s is one of the three RSVP states.
func ValidAttendanceStatus(s string) bool {
	return s == AttendanceGoing || s == AttendanceMaybe || s == AttendanceNotGoing
}

// EventAttendance is a per-user RSVP record. At most one document exists per
// (event, user) pair; removing an RSVP deletes the document and reverses its
// contribution to the event counters.
type EventAttendance struct {
	ID        string    `dynamodbav:"id" json:"id"`
	EventID   string    `dynamodbav:"eventId" json:"eventId"`
	UserID    string    `dynamodbav:"userId" json:"userId"`
	Status    string    `dynamodbav:"status" json:"status"`
	CreatedAt time.Time `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `dynamodbav:"updatedAt" json:"updatedAt"`
}

// EventAttendanceTable is the DynamoDB table name for RSVP records
const EventAttendanceTable = "EventAttendance"
