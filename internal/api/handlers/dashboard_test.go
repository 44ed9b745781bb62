package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gatherly/server/internal/domain/dashboard"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubDashboardRepo struct {
	counts dashboard.StatusCounts
	rsvps  int
	recent []events.Event
	err    error
}

func (s *stubDashboardRepo) CountEventsByStatus(_ context.Context) (dashboard.StatusCounts, error) {
	return s.counts, s.err
}

func (s *stubDashboardRepo) CountAcceptedRSVPs(_ context.Context) (int, error) {
	return s.rsvps, s.err
}

func (s *stubDashboardRepo) RecentEvents(_ context.Context, _ int) ([]events.Event, error) {
	return s.recent, s.err
}

func TestDashboardSummary(t *testing.T) {
	repo := &stubDashboardRepo{
		counts: dashboard.StatusCounts{Upcoming: 3, Ongoing: 1, Completed: 2, Cancelled: 1},
		rsvps:  42,
	}
	handler := NewDashboardHandler(dashboard.NewService(repo, zerolog.Nop()), "test")

	req := httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	handler.Summary(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{
		"total_events": 6,
		"events_by_status": {"upcoming": 3, "ongoing": 1, "completed": 2, "cancelled": 1},
		"total_rsvps": 42,
		"recent_events": []
	}`, rec.Body.String())
}

func TestDashboardSummaryRepositoryFailure(t *testing.T) {
	repo := &stubDashboardRepo{err: errors.New("connection reset")}
	handler := NewDashboardHandler(dashboard.NewService(repo, zerolog.Nop()), "test")

	req := httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	handler.Summary(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestHealthAndReadyz(t *testing.T) {
	rec := httptest.NewRecorder()
	Health().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status": "ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Readyz().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status": "ready"}`, rec.Body.String())
}
