package dashboard

import (
	"context"

	"github.com/gatherly/server/internal/domain/events"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RecentEventLimit caps how many newly created events the summary lists.
const RecentEventLimit = 5

// StatusCounts breaks the event total down by lifecycle state.
type StatusCounts struct {
	Upcoming  int `json:"upcoming"`
	Ongoing   int `json:"ongoing"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// Summary is the aggregate view served to the dashboard.
type Summary struct {
	TotalEvents  int            `json:"total_events"`
	EventsByType StatusCounts   `json:"events_by_status"`
	TotalRSVPs   int            `json:"total_rsvps"`
	RecentEvents []events.Event `json:"recent_events"`
}

// Repository provides the aggregate queries behind the summary.
type Repository interface {
	CountEventsByStatus(ctx context.Context) (StatusCounts, error)
	CountAcceptedRSVPs(ctx context.Context) (int, error)
	RecentEvents(ctx context.Context, limit int) ([]events.Event, error)
}

// Service assembles the dashboard summary.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "dashboard").Logger(),
	}
}

// Summary runs the three aggregate queries concurrently and combines them.
// Cancelled events stay out of the headline total but keep their own bucket.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var (
		counts StatusCounts
		rsvps  int
		recent []events.Event
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.repo.CountEventsByStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rsvps, err = s.repo.CountAcceptedRSVPs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.repo.RecentEvents(gctx, RecentEventLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if recent == nil {
		recent = []events.Event{}
	}

	return &Summary{
		TotalEvents:  counts.Upcoming + counts.Ongoing + counts.Completed,
		EventsByType: counts,
		TotalRSVPs:   rsvps,
		RecentEvents: recent,
	}, nil
}
