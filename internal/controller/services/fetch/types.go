package fetch

import "ticketlist/internal/domain"

// State holds the sequencer's view of the listing
type State struct {
	Status    domain.Status
	Result    domain.DisplayResult   // Last applied result; kept on failure
	Err       error                  // Set only in StatusError
	Query     domain.QueryDescriptor // Query of the latest dispatch
	Latest    uint64                 // Sequence of the latest dispatch
	Applied   uint64                 // Sequence of the last applied response
	Succeeded bool                   // At least one fetch has succeeded
}

// Ticket identifies one dispatch
type Ticket struct {
	Seq   uint64
	Query domain.QueryDescriptor
}

// Projector turns a raw page into what the view shows
type Projector func(q domain.QueryDescriptor, raw []domain.Record) domain.DisplayResult
