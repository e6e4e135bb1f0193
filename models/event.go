package models

import "time"

// Event is a group event. The four counters are denormalized from
// EventAttendance documents: going/maybe/notGoing move by signed deltas in
// the same operation as the attendance write, while AttendeeCount
// (going + maybe) is recomputed from a fresh count after every transition.
type Event struct {
	ID           string    `dynamodbav:"id" json:"id"`
	GroupID      string    `dynamodbav:"groupId" json:"groupId"`
	OrganizerID  string    `dynamodbav:"organizerId" json:"organizerId"`
	Title        string    `dynamodbav:"title" json:"title"`
	Description  string    `dynamodbav:"description" json:"description"`
	StartDate    time.Time `dynamodbav:"startDate" json:"startDate"`
	EndDate      time.Time `dynamodbav:"endDate" json:"endDate"`
	Location     string    `dynamodbav:"location,omitempty" json:"location,omitempty"`
	IsVirtual    bool      `dynamodbav:"isVirtual" json:"isVirtual"`
	VirtualLink  string    `dynamodbav:"virtualLink,omitempty" json:"virtualLink,omitempty"`
	MaxAttendees int       `dynamodbav:"maxAttendees,omitempty" json:"maxAttendees,omitempty"`

	AttendeeCount int `dynamodbav:"attendeeCount" json:"attendeeCount"`
	GoingCount    int `dynamodbav:"goingCount" json:"goingCount"`
	MaybeCount    int `dynamodbav:"maybeCount" json:"maybeCount"`
	NotGoingCount int `dynamodbav:"notGoingCount" json:"notGoingCount"`

	CreatedAt time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// EventsTable is the DynamoDB table name for events
const EventsTable = "Events"
