// Package listing is the HTTP client for the remote Listing Service
package listing

import (
	"net/url"
	"strconv"
	"time"

	"ticketlist/internal/domain"
)

// Endpoint describes one Listing Service resource and which query parts it accepts
type Endpoint struct {
	Path string

	// Status is sent as a fixed status filter when set
	Status string

	// Paged endpoints receive skip and limit=size+1
	Paged bool

	// Filterable endpoints receive type, search, start_date and end_date
	Filterable bool

	// Sortable endpoints receive sort_by and sort_desc
	Sortable bool

	// FixedLimit replaces paging with a constant limit
	FixedLimit int

	// RequiresSession endpoints are never called without a token
	RequiresSession bool
}

var (
	CatalogEndpoint = Endpoint{
		Path:       "/api/events/",
		Status:     "PUBLISHED",
		Paged:      true,
		Filterable: true,
	}

	RecommendationsEndpoint = Endpoint{
		Path:            "/api/events/recommendations",
		FixedLimit:      3,
		RequiresSession: true,
	}

	BookingsEndpoint = Endpoint{
		Path:            "/api/bookings/my-bookings",
		Paged:           true,
		RequiresSession: true,
	}

	OrganizerEndpoint = Endpoint{
		Path:            "/api/events/my-events",
		Paged:           true,
		Sortable:        true,
		RequiresSession: true,
	}
)

// InstantLayout is RFC 3339 in UTC with millisecond precision
const InstantLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatInstant renders t the way the Listing Service expects
func FormatInstant(t time.Time) string {
	return t.UTC().Format(InstantLayout)
}

// Params builds the query string for q against e
func (e Endpoint) Params(q domain.QueryDescriptor) url.Values {
	v := url.Values{}

	if e.Status != "" {
		v.Set("status", e.Status)
	}

	if e.FixedLimit > 0 {
		v.Set("limit", strconv.Itoa(e.FixedLimit))
	} else if e.Paged {
		v.Set("skip", strconv.Itoa(q.Page.Offset()))
		v.Set("limit", strconv.Itoa(q.Page.Limit()))
	}

	if e.Filterable {
		if c := q.Filter.Category; c != "" && !c.IsSentinel() {
			v.Set("type", string(c))
		}
		if q.Search != "" {
			v.Set("search", q.Search)
		}
		if q.Filter.DateStart != nil {
			v.Set("start_date", FormatInstant(*q.Filter.DateStart))
		}
		if q.Filter.DateEnd != nil {
			v.Set("end_date", FormatInstant(*q.Filter.DateEnd))
		}
	}

	if e.Sortable && q.Sort.Field != "" {
		v.Set("sort_by", string(q.Sort.Field))
		v.Set("sort_desc", strconv.FormatBool(q.Sort.Descending))
	}

	return v
}
