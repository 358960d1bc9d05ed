package ui

import (
	"strings"
	"time"

	"ticketlist/internal/controller/logic"
	perr "ticketlist/internal/errors"
)

const (
	dateLayout     = "2006-01-02"
	rangeSeparator = ".."
)

// parseDateRange reads "FROM..TO" where either side may be left empty.
// FROM opens at 00:00:00.000 and TO closes at 23:59:59.999 in loc.
// A single date without separator selects that one day.
func parseDateRange(s string, loc *time.Location) (*time.Time, *time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil, perr.InvalidInput("date_range", "enter a range like 2026-10-20..2026-10-25")
	}

	fromText, toText, found := strings.Cut(s, rangeSeparator)
	if !found {
		toText = fromText
	}

	from, err := parseDay(fromText, "start_date", loc)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseDay(toText, "end_date", loc)
	if err != nil {
		return nil, nil, err
	}
	if from == nil && to == nil {
		return nil, nil, perr.InvalidInput("date_range", "enter at least one date")
	}

	if from != nil {
		start := logic.StartOfDay(*from, loc)
		from = &start
	}
	if to != nil {
		end := logic.EndOfDay(*to, loc)
		to = &end
	}
	return from, to, nil
}

func parseDay(s, field string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return nil, perr.InvalidInput(field, "%q is not a date, use YYYY-MM-DD", s)
	}
	return &t, nil
}
