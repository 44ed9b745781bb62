package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gatherly/server/internal/domain/events"
	"github.com/stretchr/testify/require"
)

func TestDashboardCounts(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo, err := NewRepository(pool)
	require.NoError(t, err)

	organizer := insertUser(t, ctx, repo, "organizer@example.com")
	insertEvent(t, ctx, repo, organizer.ID, "Upcoming A", 50, events.StatusUpcoming)
	insertEvent(t, ctx, repo, organizer.ID, "Upcoming B", 50, events.StatusUpcoming)
	insertEvent(t, ctx, repo, organizer.ID, "Ongoing", 50, events.StatusOngoing)
	insertEvent(t, ctx, repo, organizer.ID, "Cancelled", 50, events.StatusCancelled)
	event := insertEvent(t, ctx, repo, organizer.ID, "Completed", 50, events.StatusCompleted)

	for i := 0; i < 2; i++ {
		attendee := insertUser(t, ctx, repo, fmt.Sprintf("attendee%d@example.com", i))
		_, err := repo.Events().Admit(ctx, event.ULID, attendee.ID, newTestULID(t))
		require.NoError(t, err)
	}

	counts, err := repo.Dashboard().CountEventsByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, counts.Upcoming)
	require.Equal(t, 1, counts.Ongoing)
	require.Equal(t, 1, counts.Completed)
	require.Equal(t, 1, counts.Cancelled)

	rsvps, err := repo.Dashboard().CountAcceptedRSVPs(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, rsvps)
}

func TestDashboardRecentEvents(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo, err := NewRepository(pool)
	require.NoError(t, err)

	organizer := insertUser(t, ctx, repo, "organizer@example.com")
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		event := insertEvent(t, ctx, repo, organizer.ID, fmt.Sprintf("Event %d", i), 50, events.StatusUpcoming)
		setEventCreatedAt(t, ctx, pool, event.ULID, base.Add(time.Duration(i)*time.Hour))
	}

	recent, err := repo.Dashboard().RecentEvents(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	require.Equal(t, "Event 6", recent[0].Title)
	require.Equal(t, "Event 2", recent[4].Title)
}

func TestDashboardEmptyDatabase(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo, err := NewRepository(pool)
	require.NoError(t, err)

	counts, err := repo.Dashboard().CountEventsByStatus(ctx)
	require.NoError(t, err)
	require.Zero(t, counts.Upcoming+counts.Ongoing+counts.Completed+counts.Cancelled)

	rsvps, err := repo.Dashboard().CountAcceptedRSVPs(ctx)
	require.NoError(t, err)
	require.Zero(t, rsvps)

	recent, err := repo.Dashboard().RecentEvents(ctx, 5)
	require.NoError(t, err)
	require.Empty(t, recent)
}
