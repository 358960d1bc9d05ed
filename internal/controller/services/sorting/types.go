package sorting

import "ticketlist/internal/domain"

// State holds sort state
type State struct {
	Current domain.SortDescriptor
}

// DefaultSort is date ascending
var DefaultSort = domain.SortDescriptor{Field: domain.SortByDate}
