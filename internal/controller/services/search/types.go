package search

import "ticketlist/internal/domain"

// State holds search state
type State struct {
	Term       domain.SearchTerm
	Generation uint64 // Bumped on every keystroke; older timers are stale
	Pending    bool   // A quiet-period timer is armed
}
