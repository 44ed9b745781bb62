package events

import (
	"net/url"
	"strings"
)

// ParseFilters extracts listing filters from query parameters.
// status must be one of the known lifecycle states; search is a free-text
// case-insensitive substring match on the title.
func ParseFilters(values url.Values) (Filters, error) {
	filters := Filters{}

	status := strings.ToLower(strings.TrimSpace(values.Get("status")))
	if status != "" && !ValidStatus(status) {
		return filters, FilterError{Field: "status", Message: "must be one of upcoming, ongoing, completed, cancelled"}
	}
	filters.Status = status

	filters.Search = strings.TrimSpace(values.Get("search"))

	return filters, nil
}
