package pager

import (
	"ticketlist/internal/domain"
	"ticketlist/internal/eventbus"
)

// Service moves between pages of a fixed size
type Service struct {
	state   *State
	bus     eventbus.EventBus
	surface domain.Surface
}

// NewService creates a pager on page 1
func NewService(bus eventbus.EventBus, surface domain.Surface, size int) *Service {
	if size <= 0 {
		size = 1
	}
	return &Service{
		state: &State{
			Page: domain.PageState{Number: 1, Size: size},
		},
		bus:     bus,
		surface: surface,
	}
}

// Page returns the current page
func (s *Service) Page() domain.PageState {
	return s.state.Page
}

// HasMore reports whether the last applied result had a lookahead record
func (s *Service) HasMore() bool {
	return s.state.HasMore
}

// SetHasMore records the lookahead outcome of an applied result
func (s *Service) SetHasMore(v bool) {
	s.state.HasMore = v
}

// Next advances one page when more records are known to exist
func (s *Service) Next() bool {
	if !s.state.HasMore {
		return false
	}
	s.moveTo(s.state.Page.Number + 1)
	return true
}

// Previous goes back one page, never below 1
func (s *Service) Previous() bool {
	if s.state.Page.Number <= 1 {
		return false
	}
	s.moveTo(s.state.Page.Number - 1)
	return true
}

// ResetToFirst returns to page 1 for a new query and reports the page
// left. The lookahead belonged to the old query, so HasMore is cleared
// even when the page was already 1.
func (s *Service) ResetToFirst() int {
	from := s.state.Page.Number
	s.state.Page.Number = 1
	s.state.HasMore = false
	return from
}

func (s *Service) moveTo(n int) {
	from := s.state.Page.Number
	s.state.Page.Number = n
	s.state.HasMore = false
	s.bus.Publish(domain.PageChangedEvent{Surface: s.surface, From: from, To: n})
}
