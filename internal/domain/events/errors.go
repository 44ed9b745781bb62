package events

import (
	"errors"
	"fmt"
)

// Domain error kinds. Handlers map these to HTTP statuses with errors.Is;
// nothing matches on message text.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrDuplicateRSVP = errors.New("already RSVP'd to this event")
	ErrEventFull     = errors.New("event is full")
)

// FilterError reports an invalid query parameter.
type FilterError struct {
	Field   string
	Message string
}

func (e FilterError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ValidationError reports an invalid request payload field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
