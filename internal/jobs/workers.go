package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gatherly/server/internal/email"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
)

// RSVPConfirmationArgs identifies the reservation to confirm by its
// public id.
type RSVPConfirmationArgs struct {
	RSVPULID string `json:"rsvp_ulid"`
}

func (RSVPConfirmationArgs) Kind() string { return JobKindRSVPConfirmation }

// RSVPConfirmationWorker emails attendees after admission. An RSVP that
// disappeared before the job ran (event deleted, cascade) is treated as
// done, not retried.
type RSVPConfirmationWorker struct {
	river.WorkerDefaults[RSVPConfirmationArgs]
	Pool  *pgxpool.Pool
	Email *email.Service
}

func (RSVPConfirmationWorker) Kind() string { return JobKindRSVPConfirmation }

func (w RSVPConfirmationWorker) Work(ctx context.Context, job *river.Job[RSVPConfirmationArgs]) error {
	if w.Pool == nil {
		return fmt.Errorf("database pool not configured")
	}
	if w.Email == nil {
		return fmt.Errorf("email service not configured")
	}

	var (
		userEmail  string
		userName   string
		eventTitle string
		location   string
		eventDate  time.Time
	)
	err := w.Pool.QueryRow(ctx, `
SELECT u.email, u.name, e.title, e.location, e.event_date
  FROM rsvps r
  JOIN users u ON u.id = r.user_id
  JOIN events e ON e.id = r.event_id
 WHERE r.ulid = $1
`, job.Args.RSVPULID).Scan(&userEmail, &userName, &eventTitle, &location, &eventDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("load rsvp %s: %w", job.Args.RSVPULID, err)
	}

	return w.Email.SendRSVPConfirmation(ctx, userEmail, userName, eventTitle, location, eventDate)
}

// NewWorkers registers every worker the server runs.
func NewWorkers(pool *pgxpool.Pool, emailService *email.Service) (*river.Workers, error) {
	workers := river.NewWorkers()
	if err := river.AddWorkerSafely(workers, RSVPConfirmationWorker{Pool: pool, Email: emailService}); err != nil {
		return nil, fmt.Errorf("register rsvp confirmation worker: %w", err)
	}
	return workers, nil
}
