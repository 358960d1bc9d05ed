package query

import (
	"ticketlist/internal/domain"
	"ticketlist/internal/eventbus"
)

// Service composes the outgoing query from the independent pieces of state
type Service struct {
	state   *State
	bus     eventbus.EventBus
	surface domain.Surface
	resetFn func() int // Moves the pager to page 1 and reports the page left
}

// NewService creates a new query composer
func NewService(bus eventbus.EventBus, surface domain.Surface) *Service {
	return &Service{
		state:   &State{},
		bus:     bus,
		surface: surface,
	}
}

// SetResetFunction sets the hook that returns the pager to page 1
func (s *Service) SetResetFunction(fn func() int) {
	s.resetFn = fn
}

// Compose builds the query to dispatch and records it as the new baseline.
// When search, filter or sort differ from the baseline the page is forced
// to 1, whatever page the caller passed.
func (s *Service) Compose(search string, filter domain.FilterDescriptor, sort domain.SortDescriptor, page domain.PageState) domain.QueryDescriptor {
	q := domain.QueryDescriptor{
		Search: search,
		Filter: filter,
		Sort:   sort,
		Page:   page,
	}

	if s.state.Baseline == nil || !s.state.Baseline.SameIdentity(q) {
		from := q.Page.Number
		if s.resetFn != nil {
			from = s.resetFn()
		}
		q = q.WithPage(1)
		if from != 1 {
			s.bus.Publish(domain.PageResetEvent{Surface: s.surface, From: from})
		}
	}

	baseline := q
	s.state.Baseline = &baseline
	return q
}

// Baseline returns the last composed query
func (s *Service) Baseline() (domain.QueryDescriptor, bool) {
	if s.state.Baseline == nil {
		return domain.QueryDescriptor{}, false
	}
	return *s.state.Baseline, true
}
