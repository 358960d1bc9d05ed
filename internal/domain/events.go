package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchSettled  EventType = "SearchSettled"
	EventFilterChanged  EventType = "FilterChanged"
	EventSortChanged    EventType = "SortChanged"
	EventPageChanged    EventType = "PageChanged"
	EventPageReset      EventType = "PageReset"
	EventFetchStarted   EventType = "FetchStarted"
	EventFetchSucceeded EventType = "FetchSucceeded"
	EventFetchFailed    EventType = "FetchFailed"
	EventFetchDiscarded EventType = "FetchDiscarded"
	EventSessionInvalid EventType = "SessionInvalid"
)

// ControllerEventTypes lists every event a list controller publishes
var ControllerEventTypes = []EventType{
	EventSearchSettled,
	EventFilterChanged,
	EventSortChanged,
	EventPageChanged,
	EventPageReset,
	EventFetchStarted,
	EventFetchSucceeded,
	EventFetchFailed,
	EventFetchDiscarded,
	EventSessionInvalid,
}

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchSettledEvent is emitted when typing pauses on a new term
type SearchSettledEvent struct {
	Surface Surface
	Term    string
}

func (e SearchSettledEvent) Type() EventType { return EventSearchSettled }

// FilterChangedEvent is emitted when category or date range changes
type FilterChangedEvent struct {
	Surface Surface
	Filter  FilterDescriptor
	Label   string
}

func (e FilterChangedEvent) Type() EventType { return EventFilterChanged }

// SortChangedEvent is emitted when the sort column or direction changes
type SortChangedEvent struct {
	Surface Surface
	Old     SortDescriptor
	New     SortDescriptor
}

func (e SortChangedEvent) Type() EventType { return EventSortChanged }

// PageChangedEvent is emitted when the user moves between pages
type PageChangedEvent struct {
	Surface Surface
	From    int
	To      int
}

func (e PageChangedEvent) Type() EventType { return EventPageChanged }

// PageResetEvent is emitted when a new query identity forces page 1
type PageResetEvent struct {
	Surface Surface
	From    int
}

func (e PageResetEvent) Type() EventType { return EventPageReset }

// FetchStartedEvent is emitted when a query is dispatched
type FetchStartedEvent struct {
	Surface Surface
	Seq     uint64
	Query   QueryDescriptor
}

func (e FetchStartedEvent) Type() EventType { return EventFetchStarted }

// FetchSucceededEvent is emitted when the latest dispatch returns records
type FetchSucceededEvent struct {
	Surface Surface
	Seq     uint64
	Result  DisplayResult
}

func (e FetchSucceededEvent) Type() EventType { return EventFetchSucceeded }

// FetchFailedEvent is emitted when the latest dispatch fails
type FetchFailedEvent struct {
	Surface Surface
	Seq     uint64
	Err     error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// FetchDiscardedEvent is emitted when a superseded response arrives
type FetchDiscardedEvent struct {
	Surface Surface
	Seq     uint64
	Latest  uint64
}

func (e FetchDiscardedEvent) Type() EventType { return EventFetchDiscarded }

// SessionInvalidEvent is emitted when the Listing Service rejects the session
type SessionInvalidEvent struct {
	Surface Surface
	Seq     uint64
}

func (e SessionInvalidEvent) Type() EventType { return EventSessionInvalid }
