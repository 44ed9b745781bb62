package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gatherly/server/internal/domain/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	counts    StatusCounts
	countsErr error
	rsvps     int
	rsvpsErr  error
	recent    []events.Event
	recentErr error
	gotLimit  int
}

func (s *stubRepo) CountEventsByStatus(context.Context) (StatusCounts, error) {
	return s.counts, s.countsErr
}

func (s *stubRepo) CountAcceptedRSVPs(context.Context) (int, error) {
	return s.rsvps, s.rsvpsErr
}

func (s *stubRepo) RecentEvents(_ context.Context, limit int) ([]events.Event, error) {
	s.gotLimit = limit
	return s.recent, s.recentErr
}

func TestSummaryCombinesAggregates(t *testing.T) {
	repo := &stubRepo{
		counts: StatusCounts{Upcoming: 3, Ongoing: 2, Completed: 1, Cancelled: 4},
		rsvps:  42,
		recent: []events.Event{
			{ULID: "01HQZX3Y4K6F7G8H9J0K1M2N3P", Title: "Conference Go", CreatedAt: time.Now()},
		},
	}
	svc := NewService(repo, zerolog.Nop())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	require.Equal(t, 6, summary.TotalEvents)
	require.Equal(t, 4, summary.EventsByType.Cancelled)
	require.Equal(t, 42, summary.TotalRSVPs)
	require.Len(t, summary.RecentEvents, 1)
	require.Equal(t, RecentEventLimit, repo.gotLimit)
}

func TestSummaryCancelledExcludedFromTotal(t *testing.T) {
	repo := &stubRepo{counts: StatusCounts{Cancelled: 7}}
	svc := NewService(repo, zerolog.Nop())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, summary.TotalEvents)
}

func TestSummaryEmptyRecentIsNotNil(t *testing.T) {
	svc := NewService(&stubRepo{}, zerolog.Nop())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary.RecentEvents)
	require.Empty(t, summary.RecentEvents)
}

func TestSummaryPropagatesQueryError(t *testing.T) {
	queryErr := errors.New("connection reset")
	svc := NewService(&stubRepo{rsvpsErr: queryErr}, zerolog.Nop())

	_, err := svc.Summary(context.Background())
	require.ErrorIs(t, err, queryErr)
}
