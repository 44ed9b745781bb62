package events

import "time"

// Status is the lifecycle state of an event. Transitions are driven by
// organizers (out of band); the API only filters on them.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether value is a known event status.
func ValidStatus(value string) bool {
	switch Status(value) {
	case StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// RSVPStatus is the state of a reservation. Only accepted is reachable
// today; pending and declined are reserved for organizer-approval flows.
type RSVPStatus string

const (
	RSVPPending  RSVPStatus = "pending"
	RSVPAccepted RSVPStatus = "accepted"
	RSVPDeclined RSVPStatus = "declined"
)

// Event is an event with its live accepted-RSVP count. The serial database
// id stays internal; the ULID is the public identifier.
type Event struct {
	ID            int64     `json:"-"`
	ULID          string    `json:"id"`
	OrganizerID   string    `json:"organizer_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	EventDate     time.Time `json:"event_date"`
	MaxAttendees  int       `json:"max_attendees"`
	Status        Status    `json:"status"`
	AttendeeCount int       `json:"attendee_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RSVP is a reservation against an event.
type RSVP struct {
	ID        int64      `json:"-"`
	ULID      string     `json:"id"`
	EventULID string     `json:"event_id"`
	UserID    string     `json:"user_id"`
	Status    RSVPStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// EventInput is the payload for creating an event.
type EventInput struct {
	Title        string    `json:"title" validate:"required,max=200"`
	Description  string    `json:"description" validate:"max=5000"`
	Location     string    `json:"location" validate:"required,max=200"`
	EventDate    time.Time `json:"event_date" validate:"required"`
	MaxAttendees int       `json:"max_attendees" validate:"omitempty,gt=0,lte=100000"`
}

// CreateEventParams is the storage-level shape of a new event, after
// validation, sanitization and ULID minting.
type CreateEventParams struct {
	ULID         string
	OrganizerID  string
	Title        string
	Description  string
	Location     string
	EventDate    time.Time
	MaxAttendees int
	Status       Status
}

// Filters narrows event listings.
type Filters struct {
	Status string
	Search string
}
