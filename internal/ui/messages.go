package ui

import (
	"ticketlist/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// startedMsg reports that the first fetch was dispatched
type startedMsg struct{}
