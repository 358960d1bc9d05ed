package filter

import (
	"time"

	"ticketlist/internal/clock"
	"ticketlist/internal/controller/logic"
	"ticketlist/internal/domain"
	perr "ticketlist/internal/errors"
	"ticketlist/internal/eventbus"
	"ticketlist/internal/validate"
)

// Service handles category and date filtering
type Service struct {
	state   *State
	bus     eventbus.EventBus
	surface domain.Surface
	clock   clock.Clock
	loc     *time.Location
	policy  domain.WeekendPolicy
}

// NewService creates a new filter service with no category and no dates
func NewService(bus eventbus.EventBus, surface domain.Surface, clk clock.Clock, loc *time.Location, policy domain.WeekendPolicy) *Service {
	if loc == nil {
		loc = time.Local
	}
	if policy == "" {
		policy = domain.WeekendUpcoming
	}
	return &Service{
		state: &State{
			Filter: domain.FilterDescriptor{Category: domain.CategoryAll},
		},
		bus:     bus,
		surface: surface,
		clock:   clk,
		loc:     loc,
		policy:  policy,
	}
}

// SetCategory selects a category tab
func (s *Service) SetCategory(c domain.Category) (bool, error) {
	if !c.Valid() {
		return false, perr.InvalidInput("category", "unknown category %q", c).WithOp("filter.SetCategory")
	}
	if c == s.state.Filter.Category {
		return false, nil
	}
	s.state.Filter.Category = c
	s.publish()
	return true, nil
}

// ApplyPreset sets the date range from a quick shortcut relative to now
func (s *Service) ApplyPreset(p domain.DatePreset) (bool, error) {
	from, to, err := logic.PresetRange(p, s.clock.Now(), s.loc, s.policy)
	if err != nil {
		return false, perr.InvalidInput("preset", "%v", err).WithOp("filter.ApplyPreset")
	}
	return s.setDates(&from, &to, p, false), nil
}

type rangeInput struct {
	From time.Time `json:"start_date"`
	To   time.Time `json:"end_date" validate:"gtefield=From"`
}

// SetCustomRange sets explicit bounds. Either may be nil. A range that
// ends before it starts is rejected and leaves state unchanged.
func (s *Service) SetCustomRange(from, to *time.Time) (bool, error) {
	if from != nil && to != nil {
		if err := validate.Struct(rangeInput{From: *from, To: *to}); err != nil {
			e, _ := perr.As(err)
			return false, perr.InvalidInput(e.Field(), "%s", e.Message()).WithOp("filter.SetCustomRange")
		}
	}
	custom := from != nil || to != nil
	return s.setDates(from, to, "", custom), nil
}

// ClearDates removes both bounds
func (s *Service) ClearDates() bool {
	return s.setDates(nil, nil, "", false)
}

func (s *Service) setDates(from, to *time.Time, preset domain.DatePreset, custom bool) bool {
	next := domain.FilterDescriptor{
		Category:  s.state.Filter.Category,
		DateStart: clone(from),
		DateEnd:   clone(to),
	}
	changed := !next.Equal(s.state.Filter)
	s.state.Filter = next
	s.state.Preset = preset
	s.state.Custom = custom
	if changed {
		s.publish()
	}
	return changed
}

func (s *Service) publish() {
	s.bus.Publish(domain.FilterChangedEvent{
		Surface: s.surface,
		Filter:  s.Descriptor(),
		Label:   s.Label(),
	})
}

// Descriptor returns a copy of the current filter
func (s *Service) Descriptor() domain.FilterDescriptor {
	return domain.FilterDescriptor{
		Category:  s.state.Filter.Category,
		DateStart: clone(s.state.Filter.DateStart),
		DateEnd:   clone(s.state.Filter.DateEnd),
	}
}

// Preset returns the active date preset, if any
func (s *Service) Preset() domain.DatePreset {
	return s.state.Preset
}

// Label describes the active date selection
func (s *Service) Label() string {
	switch s.state.Preset {
	case domain.PresetToday:
		return LabelToday
	case domain.PresetTomorrow:
		return LabelTomorrow
	case domain.PresetWeekend:
		return LabelWeekend
	}
	if s.state.Custom {
		return LabelCustom
	}
	return ""
}

func clone(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
