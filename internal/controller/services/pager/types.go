package pager

import "ticketlist/internal/domain"

// State holds paging state
type State struct {
	Page    domain.PageState
	HasMore bool // From the last applied result; cleared whenever the page moves
}
