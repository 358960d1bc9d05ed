package search

import (
	"sync"
	"time"

	"ticketlist/internal/clock"
	"ticketlist/internal/domain"
	"ticketlist/internal/eventbus"
)

// DefaultQuietPeriod is how long typing must pause before a term settles
const DefaultQuietPeriod = 500 * time.Millisecond

// Service debounces the raw search text into a settled term.
// Timer callbacks arrive on their own goroutine, so state sits behind mu.
type Service struct {
	mu       sync.Mutex
	state    *State
	bus      eventbus.EventBus
	surface  domain.Surface
	clock    clock.Clock
	quiet    time.Duration
	timer    *clock.Timer
	settleFn func(string) // Called outside mu after a timer settles a new term
}

// NewService creates a search service mounted on initial. Mounting never
// settles, so no fetch is triggered until the text actually changes.
func NewService(bus eventbus.EventBus, surface domain.Surface, clk clock.Clock, quiet time.Duration, initial string) *Service {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Service{
		state: &State{
			Term: domain.SearchTerm{Raw: initial, Settled: initial},
		},
		bus:     bus,
		surface: surface,
		clock:   clk,
		quiet:   quiet,
	}
}

// SetSettleFunction sets the callback run when a timer settles a new term
func (s *Service) SetSettleFunction(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settleFn = fn
}

// Update records a keystroke and restarts the quiet period
func (s *Service) Update(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw == s.state.Term.Raw {
		return
	}
	s.state.Term.Raw = raw
	s.rearm()
}

// rearm replaces any pending timer. Caller holds mu.
func (s *Service) rearm() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.state.Generation++
	gen := s.state.Generation
	s.state.Pending = true
	s.timer = s.clock.AfterFunc(s.quiet, func() { s.fire(gen) })
}

func (s *Service) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.state.Generation {
		// superseded
		s.mu.Unlock()
		return
	}
	s.state.Pending = false
	s.timer = nil

	term, changed := s.settleLocked()
	fn := s.settleFn
	s.mu.Unlock()

	if changed && fn != nil {
		fn(term)
	}
}

// settleLocked copies raw into settled. Caller holds mu.
func (s *Service) settleLocked() (string, bool) {
	if s.state.Term.Raw == s.state.Term.Settled {
		return s.state.Term.Settled, false
	}
	s.state.Term.Settled = s.state.Term.Raw
	s.bus.Publish(domain.SearchSettledEvent{Surface: s.surface, Term: s.state.Term.Settled})
	return s.state.Term.Settled, true
}

// Flush settles immediately, cancelling the pending timer. The settle
// callback is not invoked; the caller acts on the returned value.
func (s *Service) Flush() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.state.Generation++
	s.state.Pending = false
	return s.settleLocked()
}

// Stop cancels any pending timer without settling
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.state.Generation++
	s.state.Pending = false
}

// Term returns the raw and settled text
func (s *Service) Term() domain.SearchTerm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Term
}

// Settled returns the term that feeds queries
func (s *Service) Settled() string {
	return s.Term().Settled
}

// Raw returns the text as typed
func (s *Service) Raw() string {
	return s.Term().Raw
}

// Pending reports whether a quiet period is running
func (s *Service) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Pending
}
