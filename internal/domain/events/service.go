package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/server/internal/domain/ids"
	"github.com/gatherly/server/internal/sanitize"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// DefaultMaxAttendees applies when a create request leaves capacity unset.
const DefaultMaxAttendees = 100

// Repository is the event store. Admit performs the whole admission
// sequence (existence, duplicate, capacity, insert) as one atomic store
// operation; see the postgres implementation for the serialization point.
type Repository interface {
	List(ctx context.Context, filters Filters) ([]Event, error)
	GetByULID(ctx context.Context, ulid string) (*Event, error)
	Create(ctx context.Context, params CreateEventParams) (*Event, error)
	Admit(ctx context.Context, eventULID, userID, rsvpULID string) (*RSVP, error)
}

// ConfirmationEnqueuer schedules a post-admission confirmation job.
// Enqueue failures never fail the RSVP itself.
type ConfirmationEnqueuer interface {
	EnqueueRSVPConfirmation(ctx context.Context, rsvpULID string) error
}

// Service owns event browsing, creation and RSVP admission.
type Service struct {
	repo          Repository
	validate      *validator.Validate
	confirmations ConfirmationEnqueuer
	logger        zerolog.Logger
}

func NewService(repo Repository, confirmations ConfirmationEnqueuer, logger zerolog.Logger) *Service {
	return &Service{
		repo:          repo,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		confirmations: confirmations,
		logger:        logger.With().Str("component", "events").Logger(),
	}
}

// List returns events matching the filters, ordered by event date
// ascending, each annotated with its live accepted-RSVP count.
func (s *Service) List(ctx context.Context, filters Filters) ([]Event, error) {
	return s.repo.List(ctx, filters)
}

// Get returns a single event by its public id.
func (s *Service) Get(ctx context.Context, ulid string) (*Event, error) {
	if err := ids.ValidateULID(ulid); err != nil {
		return nil, ErrEventNotFound
	}
	return s.repo.GetByULID(ctx, ulid)
}

// Create validates and persists a new event for the given organizer.
// Text fields are sanitized: titles and locations must be plain text,
// descriptions may keep basic formatting.
func (s *Service) Create(ctx context.Context, organizerID string, input EventInput) (*Event, error) {
	input.Title = sanitize.Text(input.Title)
	input.Description = sanitize.HTML(input.Description)
	input.Location = sanitize.Text(input.Location)

	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	if input.MaxAttendees == 0 {
		input.MaxAttendees = DefaultMaxAttendees
	}

	ulid, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("mint event id: %w", err)
	}

	event, err := s.repo.Create(ctx, CreateEventParams{
		ULID:         ulid,
		OrganizerID:  organizerID,
		Title:        input.Title,
		Description:  input.Description,
		Location:     input.Location,
		EventDate:    input.EventDate,
		MaxAttendees: input.MaxAttendees,
		Status:       StatusUpcoming,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("event_id", event.ULID).Str("organizer_id", organizerID).Msg("event created")
	return event, nil
}

// RSVP admits a user to an event. The only transition is none → accepted:
// duplicates are terminal errors, and admission fails once the accepted
// count reaches capacity. The store executes the sequence atomically, so
// concurrent attempts near capacity cannot overshoot max_attendees.
func (s *Service) RSVP(ctx context.Context, eventULID, userID string) (*RSVP, error) {
	if err := ids.ValidateULID(eventULID); err != nil {
		return nil, ErrEventNotFound
	}

	rsvpULID, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("mint rsvp id: %w", err)
	}

	rsvp, err := s.repo.Admit(ctx, eventULID, userID, rsvpULID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("event_id", eventULID).
		Str("user_id", userID).
		Str("rsvp_id", rsvp.ULID).
		Msg("rsvp accepted")

	if s.confirmations != nil {
		if err := s.confirmations.EnqueueRSVPConfirmation(ctx, rsvp.ULID); err != nil {
			s.logger.Warn().Err(err).Str("rsvp_id", rsvp.ULID).Msg("confirmation enqueue failed")
		}
	}

	return rsvp, nil
}

// validationError converts a validator error into the field-level
// ValidationError kind the handlers know how to map.
func validationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		first := fieldErrors[0]
		switch first.Tag() {
		case "required":
			return ValidationError{Field: jsonField(first.Field()), Message: "is required"}
		case "gt":
			return ValidationError{Field: jsonField(first.Field()), Message: "must be greater than " + first.Param()}
		case "max", "lte":
			return ValidationError{Field: jsonField(first.Field()), Message: "must be at most " + first.Param()}
		default:
			return ValidationError{Field: jsonField(first.Field()), Message: "is invalid"}
		}
	}
	return ValidationError{Message: err.Error()}
}

func jsonField(structField string) string {
	switch structField {
	case "Title":
		return "title"
	case "Description":
		return "description"
	case "Location":
		return "location"
	case "EventDate":
		return "event_date"
	case "MaxAttendees":
		return "max_attendees"
	}
	return structField
}
