package metrics

import (
	"fmt"
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "static path",
			input:    "/events",
			expected: "/events",
		},
		{
			name:     "ulid segment collapsed",
			input:    "/events/01HQZX3Y4K6F7G8H9J0K1M2N3P/rsvp",
			expected: "/events/{id}/rsvp",
		},
		{
			name:     "lowercase ulid segment collapsed",
			input:    "/events/01hqzx3y4k6f7g8h9j0k1m2n3p/rsvp",
			expected: "/events/{id}/rsvp",
		},
		{
			name:     "non-id segment untouched",
			input:    "/events/not-an-id/rsvp",
			expected: "/events/not-an-id/rsvp",
		},
		{
			name:     "empty path",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := routeLabel(tt.input)
			if got != tt.expected {
				t.Fatalf("routeLabel(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRouteCacheStaysBounded(t *testing.T) {
	for i := 0; i < routeCacheLimit+100; i++ {
		routeLabel(fmt.Sprintf("/events/%s/rsvp", ulid.Make().String()))
	}

	routeCache.RLock()
	size := len(routeCache.entries)
	routeCache.RUnlock()

	if size > routeCacheLimit {
		t.Fatalf("route cache grew to %d entries, limit is %d", size, routeCacheLimit)
	}
}
