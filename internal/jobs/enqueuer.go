package jobs

import (
	"context"
	"fmt"

	"github.com/gatherly/server/internal/domain/events"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
)

var _ events.ConfirmationEnqueuer = (*Enqueuer)(nil)

// Enqueuer schedules jobs through the River client.
type Enqueuer struct {
	client *river.Client[pgx.Tx]
}

func NewEnqueuer(client *river.Client[pgx.Tx]) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) EnqueueRSVPConfirmation(ctx context.Context, rsvpULID string) error {
	opts := InsertOptsForKind(JobKindRSVPConfirmation)
	_, err := e.client.Insert(ctx, RSVPConfirmationArgs{RSVPULID: rsvpULID}, &opts)
	if err != nil {
		return fmt.Errorf("enqueue rsvp confirmation: %w", err)
	}
	return nil
}
