package domain

import (
	"encoding/json"
	"time"
)

// Surface names one listing screen; each surface owns its own controller
type Surface string

const (
	SurfaceCatalog   Surface = "catalog"
	SurfaceBookings  Surface = "bookings"
	SurfaceOrganizer Surface = "organizer"
)

// Category is the catalog event type filter
type Category string

const (
	CategoryAll        Category = "ALL"
	CategoryForYou     Category = "FOR_YOU"
	CategoryConcert    Category = "CONCERT"
	CategoryWorkshop   Category = "WORKSHOP"
	CategoryConference Category = "CONFERENCE"
	CategoryTheater    Category = "THEATER"
	CategoryOther      Category = "OTHER"
)

// Categories lists every selectable category in tab order
var Categories = []Category{
	CategoryAll,
	CategoryForYou,
	CategoryConcert,
	CategoryWorkshop,
	CategoryConference,
	CategoryTheater,
	CategoryOther,
}

// Valid reports whether c is a known category or sentinel
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// IsSentinel reports whether c is not a real event type (ALL, FOR_YOU)
func (c Category) IsSentinel() bool {
	return c == CategoryAll || c == CategoryForYou
}

// DatePreset is a quick date-range shortcut
type DatePreset string

const (
	PresetToday    DatePreset = "TODAY"
	PresetTomorrow DatePreset = "TOMORROW"
	PresetWeekend  DatePreset = "WEEKEND"
)

// WeekendPolicy decides what WEEKEND means when today is Saturday or Sunday
type WeekendPolicy string

const (
	// WeekendUpcoming picks the next Saturday on or after today: Saturday
	// keeps this weekend, Sunday moves to the following one
	WeekendUpcoming WeekendPolicy = "upcoming"
	// WeekendCurrent picks the weekend in progress on Saturday and Sunday
	WeekendCurrent WeekendPolicy = "current"
	// WeekendNext always picks the first Saturday strictly after today
	WeekendNext WeekendPolicy = "next"
)

// SortField is a sortable column of the organizer table
type SortField string

const (
	SortByDate   SortField = "date"
	SortByStatus SortField = "status"
	SortBySold   SortField = "sold"
	SortByPrice  SortField = "price"
)

// SortFields lists the sortable columns in header order
var SortFields = []SortField{SortByDate, SortByStatus, SortBySold, SortByPrice}

// Valid reports whether f is a known sort field
func (f SortField) Valid() bool {
	for _, known := range SortFields {
		if f == known {
			return true
		}
	}
	return false
}

// SearchTerm holds the text as typed and the value after the quiet period
type SearchTerm struct {
	Raw     string
	Settled string
}

// FilterDescriptor is the canonical category and date filter
type FilterDescriptor struct {
	Category  Category
	DateStart *time.Time
	DateEnd   *time.Time
}

// Equal compares by value; pointer identity never matters
func (f FilterDescriptor) Equal(other FilterDescriptor) bool {
	return f.Category == other.Category &&
		instantsEqual(f.DateStart, other.DateStart) &&
		instantsEqual(f.DateEnd, other.DateEnd)
}

func instantsEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// SortDescriptor is the active sort column and direction
type SortDescriptor struct {
	Field      SortField
	Descending bool
}

// PageState is the 1-based page and the fixed page size of a surface
type PageState struct {
	Number int
	Size   int
}

// Offset is the number of records skipped before this page
func (p PageState) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit requests one record past the page to learn whether more exist
func (p PageState) Limit() int {
	return p.Size + 1
}

// QueryDescriptor fully determines the next fetch. Treat as immutable.
type QueryDescriptor struct {
	Search string
	Filter FilterDescriptor
	Sort   SortDescriptor
	Page   PageState
}

// QueryKey is the non-page identity of a query, comparable with ==
type QueryKey struct {
	Search   string
	Category Category
	HasStart bool
	Start    int64
	HasEnd   bool
	End      int64
	Sort     SortDescriptor
}

// Key returns the non-page identity. Instants collapse to UnixNano so
// the same moment in two locations yields the same key.
func (q QueryDescriptor) Key() QueryKey {
	k := QueryKey{Search: q.Search, Category: q.Filter.Category, Sort: q.Sort}
	if q.Filter.DateStart != nil {
		k.HasStart, k.Start = true, q.Filter.DateStart.UnixNano()
	}
	if q.Filter.DateEnd != nil {
		k.HasEnd, k.End = true, q.Filter.DateEnd.UnixNano()
	}
	return k
}

// SameIdentity compares everything except the page
func (q QueryDescriptor) SameIdentity(other QueryDescriptor) bool {
	return q.Key() == other.Key()
}

// WithPage returns a copy positioned on page n
func (q QueryDescriptor) WithPage(n int) QueryDescriptor {
	q.Page.Number = n
	return q
}

// Record is an opaque listing row. Only ID and Title are read for display.
type Record struct {
	ID     int64
	Title  string
	Status string
	Raw    json.RawMessage
}

// UnmarshalJSON keeps the full payload alongside the display fields
func (r *Record) UnmarshalJSON(data []byte) error {
	var head struct {
		ID     int64  `json:"id"`
		Title  string `json:"title"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	r.ID = head.ID
	r.Title = head.Title
	r.Status = head.Status
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the original payload back out
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.Raw) > 0 {
		return r.Raw, nil
	}
	return json.Marshal(struct {
		ID     int64  `json:"id"`
		Title  string `json:"title,omitempty"`
		Status string `json:"status,omitempty"`
	}{r.ID, r.Title, r.Status})
}

// DisplayResult is what the view shows for one page
type DisplayResult struct {
	Items   []Record
	HasMore bool
}

// Status is the controller's fetch state
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}
