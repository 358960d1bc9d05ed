package fetch

import (
	"context"

	"ticketlist/internal/domain"
	perr "ticketlist/internal/errors"
	"ticketlist/internal/eventbus"
)

// Service sequences dispatches so only the latest one is ever applied
type Service struct {
	state   *State
	bus     eventbus.EventBus
	surface domain.Surface
	project Projector
	cancel  context.CancelFunc
	closed  bool
}

// NewService creates a new fetch sequencer in Idle
func NewService(bus eventbus.EventBus, surface domain.Surface, project Projector) *Service {
	return &Service{
		state: &State{
			Status: domain.StatusIdle,
			Result: domain.DisplayResult{Items: []domain.Record{}},
		},
		bus:     bus,
		surface: surface,
		project: project,
	}
}

// Begin registers a dispatch of q and returns its ticket and request context.
// The previous request's context is cancelled.
func (s *Service) Begin(parent context.Context, q domain.QueryDescriptor) (Ticket, context.Context) {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel

	s.state.Latest++
	s.state.Query = q
	s.state.Status = domain.StatusLoading
	s.state.Err = nil

	t := Ticket{Seq: s.state.Latest, Query: q}
	s.bus.Publish(domain.FetchStartedEvent{Surface: s.surface, Seq: t.Seq, Query: q})
	return t, ctx
}

// Resolve applies a response if t is still the latest dispatch and
// reports whether it did. Superseded responses and errors are dropped.
func (s *Service) Resolve(t Ticket, raw []domain.Record, err error) bool {
	if s.closed || t.Seq != s.state.Latest {
		s.bus.Publish(domain.FetchDiscardedEvent{Surface: s.surface, Seq: t.Seq, Latest: s.state.Latest})
		return false
	}

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state.Applied = t.Seq

	if err != nil {
		s.state.Status = domain.StatusError
		s.state.Err = err
		s.bus.Publish(domain.FetchFailedEvent{Surface: s.surface, Seq: t.Seq, Err: err})
		if perr.KindOf(err) == perr.KindSessionInvalid {
			s.bus.Publish(domain.SessionInvalidEvent{Surface: s.surface, Seq: t.Seq})
		}
		return true
	}

	s.state.Status = domain.StatusSuccess
	s.state.Result = s.project(t.Query, raw)
	s.state.Succeeded = true
	s.bus.Publish(domain.FetchSucceededEvent{Surface: s.surface, Seq: t.Seq, Result: s.state.Result})
	return true
}

// ClearResult empties the visible items, used when switching tabs
func (s *Service) ClearResult() {
	s.state.Result = domain.DisplayResult{Items: []domain.Record{}}
}

// Close cancels the in-flight request; later responses are dropped
func (s *Service) Close() {
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// State returns a copy of the sequencer state
func (s *Service) State() State {
	return *s.state
}

// Status returns the current fetch status
func (s *Service) Status() domain.Status {
	return s.state.Status
}

// Result returns the displayed result
func (s *Service) Result() domain.DisplayResult {
	return s.state.Result
}

// InFlight reports whether the latest dispatch has not resolved
func (s *Service) InFlight() bool {
	return s.state.Status == domain.StatusLoading
}
