package query

import "ticketlist/internal/domain"

// State holds the baseline the next query is compared against
type State struct {
	Baseline *domain.QueryDescriptor // Last dispatched query; nil before the first
}
