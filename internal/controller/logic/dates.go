package logic

import (
	"fmt"
	"time"

	"ticketlist/internal/domain"
)

// StartOfDay is 00:00:00.000 of t's calendar day in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay is 23:59:59.999 of t's calendar day in loc
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
}

// PresetRange computes the closed local interval for a date preset
func PresetRange(p domain.DatePreset, now time.Time, loc *time.Location, policy domain.WeekendPolicy) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	today := StartOfDay(now, loc)

	switch p {
	case domain.PresetToday:
		return today, EndOfDay(today, loc), nil

	case domain.PresetTomorrow:
		tomorrow := today.AddDate(0, 0, 1)
		return tomorrow, EndOfDay(tomorrow, loc), nil

	case domain.PresetWeekend:
		saturday := weekendStart(today, policy)
		return saturday, EndOfDay(saturday.AddDate(0, 0, 1), loc), nil
	}

	return time.Time{}, time.Time{}, fmt.Errorf("unknown date preset %q", p)
}

// weekendStart returns the Saturday that opens the chosen weekend
func weekendStart(today time.Time, policy domain.WeekendPolicy) time.Time {
	wd := today.Weekday()
	days := int(time.Saturday - wd) // 0 on Saturday, 6 on Sunday

	switch policy {
	case domain.WeekendCurrent:
		if wd == time.Sunday {
			days = -1
		}
	case domain.WeekendNext:
		if days == 0 {
			days = 7
		}
	}
	return today.AddDate(0, 0, days)
}
