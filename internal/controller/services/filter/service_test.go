package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketlist/internal/clock"
	"ticketlist/internal/domain"
	perr "ticketlist/internal/errors"
	"ticketlist/internal/eventbus"
)

var loc = time.FixedZone("Local", -4*3600)

// Wednesday
var now = time.Date(2026, 10, 14, 15, 0, 0, 0, loc)

func newTestService(t *testing.T, policy domain.WeekendPolicy) *Service {
	t.Helper()
	bus := eventbus.New()
	t.Cleanup(bus.Close)
	return NewService(bus, domain.SurfaceCatalog, clock.Fake(now), loc, policy)
}

func TestDefaultsToAllWithoutDates(t *testing.T) {
	s := newTestService(t, "")
	d := s.Descriptor()
	assert.Equal(t, domain.CategoryAll, d.Category)
	assert.Nil(t, d.DateStart)
	assert.Nil(t, d.DateEnd)
	assert.Equal(t, "", s.Label())
}

func TestSetCategory(t *testing.T) {
	s := newTestService(t, "")

	changed, err := s.SetCategory(domain.CategoryConcert)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.SetCategory(domain.CategoryConcert)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = s.SetCategory("OPERA")
	assert.ErrorIs(t, err, perr.ErrInvalidFilterInput)
	assert.Equal(t, domain.CategoryConcert, s.Descriptor().Category)
}

func TestWeekendPresetOnWednesday(t *testing.T) {
	s := newTestService(t, domain.WeekendCurrent)

	changed, err := s.ApplyPreset(domain.PresetWeekend)
	require.NoError(t, err)
	assert.True(t, changed)

	d := s.Descriptor()
	require.NotNil(t, d.DateStart)
	require.NotNil(t, d.DateEnd)
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, loc), *d.DateStart)
	assert.Equal(t, time.Date(2026, 10, 18, 23, 59, 59, 999_000_000, loc), *d.DateEnd)
	assert.Equal(t, LabelWeekend, s.Label())
}

func TestTodayThenClear(t *testing.T) {
	s := newTestService(t, "")

	_, err := s.ApplyPreset(domain.PresetToday)
	require.NoError(t, err)
	assert.Equal(t, LabelToday, s.Label())
	assert.Equal(t, 14, s.Descriptor().DateStart.Day())

	assert.True(t, s.ClearDates())
	assert.False(t, s.ClearDates())
	assert.Nil(t, s.Descriptor().DateStart)
	assert.Equal(t, "", s.Label())
}

func TestUnknownPresetRejected(t *testing.T) {
	s := newTestService(t, "")
	_, err := s.ApplyPreset("YESTERDAY")
	assert.ErrorIs(t, err, perr.ErrInvalidFilterInput)
}

func TestCustomRangeValidation(t *testing.T) {
	s := newTestService(t, "")
	from := time.Date(2026, 11, 1, 0, 0, 0, 0, loc)
	to := from.Add(48 * time.Hour)

	changed, err := s.SetCustomRange(&from, &to)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, LabelCustom, s.Label())

	before := s.Descriptor()
	bad := from.Add(-time.Hour)
	changed, err = s.SetCustomRange(&from, &bad)
	require.Error(t, err)
	assert.False(t, changed)
	assert.ErrorIs(t, err, perr.ErrInvalidFilterInput)

	e, ok := perr.As(err)
	require.True(t, ok)
	assert.Equal(t, "end_date", e.Field())
	assert.True(t, before.Equal(s.Descriptor()))
}

func TestCustomRangeOpenEnded(t *testing.T) {
	s := newTestService(t, "")
	from := time.Date(2026, 11, 1, 0, 0, 0, 0, loc)

	changed, err := s.SetCustomRange(&from, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Nil(t, s.Descriptor().DateEnd)

	// same instant in another zone is not a change
	utc := from.UTC()
	changed, err = s.SetCustomRange(&utc, nil)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestDescriptorIsACopy(t *testing.T) {
	s := newTestService(t, "")
	from := time.Date(2026, 11, 1, 0, 0, 0, 0, loc)
	_, err := s.SetCustomRange(&from, nil)
	require.NoError(t, err)

	from = from.AddDate(1, 0, 0)
	d := s.Descriptor()
	*d.DateStart = d.DateStart.AddDate(5, 0, 0)

	assert.Equal(t, 2026, s.Descriptor().DateStart.Year())
}
