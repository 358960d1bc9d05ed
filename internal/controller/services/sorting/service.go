package sorting

import (
	"ticketlist/internal/domain"
	perr "ticketlist/internal/errors"
	"ticketlist/internal/eventbus"
)

// Service handles sort column and direction
type Service struct {
	state   *State
	bus     eventbus.EventBus
	surface domain.Surface
}

// NewService creates a new sorting service. A zero initial means DefaultSort.
func NewService(bus eventbus.EventBus, surface domain.Surface, initial domain.SortDescriptor) *Service {
	if initial.Field == "" {
		initial = DefaultSort
	}
	return &Service{
		state:   &State{Current: initial},
		bus:     bus,
		surface: surface,
	}
}

// Descriptor returns the current sort
func (s *Service) Descriptor() domain.SortDescriptor {
	return s.state.Current
}

// Select is a header click: the same field flips direction, a new field
// starts ascending. It always changes the sort.
func (s *Service) Select(f domain.SortField) error {
	if !f.Valid() {
		return perr.InvalidInput("sort_by", "unknown sort field %q", f).WithOp("sorting.Select")
	}

	next := domain.SortDescriptor{Field: f}
	if f == s.state.Current.Field {
		next.Descending = !s.state.Current.Descending
	}
	s.apply(next)
	return nil
}

// Set restores a sort directly
func (s *Service) Set(d domain.SortDescriptor) (bool, error) {
	if !d.Field.Valid() {
		return false, perr.InvalidInput("sort_by", "unknown sort field %q", d.Field).WithOp("sorting.Set")
	}
	if d == s.state.Current {
		return false, nil
	}
	s.apply(d)
	return true, nil
}

// NextField cycles to the next column, ascending
func (s *Service) NextField() {
	idx := 0
	for i, f := range domain.SortFields {
		if f == s.state.Current.Field {
			idx = i
			break
		}
	}
	next := domain.SortFields[(idx+1)%len(domain.SortFields)]
	s.apply(domain.SortDescriptor{Field: next})
}

func (s *Service) apply(next domain.SortDescriptor) {
	old := s.state.Current
	s.state.Current = next
	s.bus.Publish(domain.SortChangedEvent{
		Surface: s.surface,
		Old:     old,
		New:     next,
	})
}
