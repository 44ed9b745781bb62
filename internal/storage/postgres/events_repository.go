package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/server/internal/domain/events"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ events.Repository = (*EventRepository)(nil)

const eventColumns = `
e.id, e.ulid, e.organizer_id, e.title, e.description, e.location,
e.event_date, e.max_attendees, e.status, e.created_at, e.updated_at`

func (r *EventRepository) List(ctx context.Context, filters events.Filters) ([]events.Event, error) {
	search := escapeILIKEPattern(filters.Search)

	rows, err := r.queryer().Query(ctx, `
SELECT `+eventColumns+`, counts.attendee_count
  FROM events e
  LEFT JOIN LATERAL (
    SELECT count(*) AS attendee_count
      FROM rsvps r
     WHERE r.event_id = e.id AND r.status = 'accepted'
  ) counts ON true
 WHERE ($1 = '' OR e.status = $1)
   AND ($2 = '' OR e.title ILIKE '%' || $2 || '%' ESCAPE '\')
 ORDER BY e.event_date ASC, e.id ASC
`, filters.Status, search)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var items []events.Event
	for rows.Next() {
		var event events.Event
		if err := rows.Scan(
			&event.ID,
			&event.ULID,
			&event.OrganizerID,
			&event.Title,
			&event.Description,
			&event.Location,
			&event.EventDate,
			&event.MaxAttendees,
			&event.Status,
			&event.CreatedAt,
			&event.UpdatedAt,
			&event.AttendeeCount,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		items = append(items, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return items, nil
}

func (r *EventRepository) GetByULID(ctx context.Context, ulid string) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT `+eventColumns+`, counts.attendee_count
  FROM events e
  LEFT JOIN LATERAL (
    SELECT count(*) AS attendee_count
      FROM rsvps r
     WHERE r.event_id = e.id AND r.status = 'accepted'
  ) counts ON true
 WHERE e.ulid = $1
`, ulid)

	var event events.Event
	if err := row.Scan(
		&event.ID,
		&event.ULID,
		&event.OrganizerID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.EventDate,
		&event.MaxAttendees,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
		&event.AttendeeCount,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) Create(ctx context.Context, params events.CreateEventParams) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO events (ulid, organizer_id, title, description, location, event_date, max_attendees, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, ulid, organizer_id, title, description, location,
          event_date, max_attendees, status, created_at, updated_at
`,
		params.ULID,
		params.OrganizerID,
		params.Title,
		params.Description,
		params.Location,
		params.EventDate,
		params.MaxAttendees,
		params.Status,
	)

	var event events.Event
	if err := row.Scan(
		&event.ID,
		&event.ULID,
		&event.OrganizerID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.EventDate,
		&event.MaxAttendees,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &event, nil
}

// Admit inserts an accepted RSVP if the event exists, the user has none
// yet, and capacity remains. The event row lock taken FOR UPDATE
// serializes concurrent admissions per event, so the count check and the
// insert are one atomic step; the unique index on (event_id, user_id)
// backstops duplicates racing across events.
func (r *EventRepository) Admit(ctx context.Context, eventULID, userID, rsvpULID string) (*events.RSVP, error) {
	tx, err := r.begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin admission: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var eventID int64
	var maxAttendees int
	err = tx.QueryRow(ctx, `
SELECT id, max_attendees
  FROM events
 WHERE ulid = $1
   FOR UPDATE
`, eventULID).Scan(&eventID, &maxAttendees)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrEventNotFound
		}
		return nil, fmt.Errorf("lock event: %w", err)
	}

	var exists bool
	err = tx.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM rsvps WHERE event_id = $1 AND user_id = $2)
`, eventID, userID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check duplicate rsvp: %w", err)
	}
	if exists {
		return nil, events.ErrDuplicateRSVP
	}

	var accepted int
	err = tx.QueryRow(ctx, `
SELECT count(*) FROM rsvps WHERE event_id = $1 AND status = 'accepted'
`, eventID).Scan(&accepted)
	if err != nil {
		return nil, fmt.Errorf("count accepted rsvps: %w", err)
	}
	if accepted >= maxAttendees {
		return nil, events.ErrEventFull
	}

	rsvp := events.RSVP{
		ULID:      rsvpULID,
		EventULID: eventULID,
		UserID:    userID,
		Status:    events.RSVPAccepted,
	}
	err = tx.QueryRow(ctx, `
INSERT INTO rsvps (ulid, event_id, user_id, status)
VALUES ($1, $2, $3, 'accepted')
RETURNING id, created_at
`, rsvpULID, eventID, userID).Scan(&rsvp.ID, &rsvp.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, events.ErrDuplicateRSVP
		}
		return nil, fmt.Errorf("insert rsvp: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit admission: %w", err)
	}
	return &rsvp, nil
}

// begin opens the admission transaction, joining an outer WithTx
// transaction when one is active.
func (r *EventRepository) begin(ctx context.Context) (pgx.Tx, error) {
	if r.tx != nil {
		return r.tx.Begin(ctx)
	}
	return r.pool.Begin(ctx)
}

func (r *EventRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}
