package postgres

import (
	"context"
	"fmt"

	"github.com/gatherly/server/internal/domain/dashboard"
	"github.com/gatherly/server/internal/domain/events"
)

var _ dashboard.Repository = (*DashboardRepository)(nil)

func (r *DashboardRepository) CountEventsByStatus(ctx context.Context) (dashboard.StatusCounts, error) {
	var counts dashboard.StatusCounts
	err := r.queryer().QueryRow(ctx, `
SELECT count(*) FILTER (WHERE status = 'upcoming'),
       count(*) FILTER (WHERE status = 'ongoing'),
       count(*) FILTER (WHERE status = 'completed'),
       count(*) FILTER (WHERE status = 'cancelled')
  FROM events
`).Scan(&counts.Upcoming, &counts.Ongoing, &counts.Completed, &counts.Cancelled)
	if err != nil {
		return dashboard.StatusCounts{}, fmt.Errorf("count events by status: %w", err)
	}
	return counts, nil
}

func (r *DashboardRepository) CountAcceptedRSVPs(ctx context.Context) (int, error) {
	var total int
	err := r.queryer().QueryRow(ctx, `
SELECT count(*) FROM rsvps WHERE status = 'accepted'
`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count accepted rsvps: %w", err)
	}
	return total, nil
}

func (r *DashboardRepository) RecentEvents(ctx context.Context, limit int) ([]events.Event, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT `+eventColumns+`, counts.attendee_count
  FROM events e
  LEFT JOIN LATERAL (
    SELECT count(*) AS attendee_count
      FROM rsvps r
     WHERE r.event_id = e.id AND r.status = 'accepted'
  ) counts ON true
 ORDER BY e.created_at DESC, e.id DESC
 LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
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
		return nil, fmt.Errorf("recent events: %w", err)
	}
	return items, nil
}

func (r *DashboardRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}
