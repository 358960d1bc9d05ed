package filter

import "ticketlist/internal/domain"

// State holds filter state
type State struct {
	Filter domain.FilterDescriptor
	Preset domain.DatePreset // Empty when dates are custom or absent
	Custom bool              // Dates came from SetCustomRange
}

// Labels shown for the active date selection
const (
	LabelToday    = "Today"
	LabelTomorrow = "Tomorrow"
	LabelWeekend  = "This Weekend"
	LabelCustom   = "Custom"
)
