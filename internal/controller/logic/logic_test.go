package logic

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketlist/internal/domain"
)

func records(n int) []domain.Record {
	out := make([]domain.Record, n)
	for i := range out {
		out[i] = domain.Record{ID: int64(i + 1), Title: fmt.Sprintf("event %d", i+1)}
	}
	return out
}

func TestProjectLaw(t *testing.T) {
	const size = 8
	for n := 0; n <= size+5; n++ {
		raw := records(n)
		got := Project(raw, size)

		want := n
		if want > size {
			want = size
		}
		assert.Len(t, got.Items, want, "len(raw)=%d", n)
		assert.Equal(t, n > size, got.HasMore, "len(raw)=%d", n)
		assert.Equal(t, raw[:want], got.Items, "prefix, len(raw)=%d", n)
	}
}

func TestProjectLookaheadScenarios(t *testing.T) {
	full := Project(records(9), 8)
	assert.Len(t, full.Items, 8)
	assert.True(t, full.HasMore)
	assert.Equal(t, int64(8), full.Items[7].ID)

	short := Project(records(5), 8)
	assert.Len(t, short.Items, 5)
	assert.False(t, short.HasMore)
}

func TestProjectDoesNotAliasInput(t *testing.T) {
	raw := records(3)
	got := Project(raw, 8)
	raw[0].Title = "mutated"
	assert.Equal(t, "event 1", got.Items[0].Title)
}

func TestProjectCapped(t *testing.T) {
	got := ProjectCapped(records(5), 3)
	assert.Len(t, got.Items, 3)
	assert.False(t, got.HasMore)
}

var loc = time.FixedZone("Local", 2*3600)

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 30, 0, 0, loc)
}

func requireRange(t *testing.T, from, to time.Time, wantFrom, wantTo string) {
	t.Helper()
	assert.Equal(t, wantFrom, from.Format("2006-01-02 15:04:05.000 Mon"))
	assert.Equal(t, wantTo, to.Format("2006-01-02 15:04:05.000 Mon"))
}

func TestPresetToday(t *testing.T) {
	from, to, err := PresetRange(domain.PresetToday, day(2026, 10, 14, 22), loc, domain.WeekendCurrent)
	require.NoError(t, err)
	requireRange(t, from, to, "2026-10-14 00:00:00.000 Wed", "2026-10-14 23:59:59.999 Wed")
}

func TestPresetTomorrowCrossesMonth(t *testing.T) {
	from, to, err := PresetRange(domain.PresetTomorrow, day(2026, 10, 31, 9), loc, domain.WeekendCurrent)
	require.NoError(t, err)
	requireRange(t, from, to, "2026-11-01 00:00:00.000 Sun", "2026-11-01 23:59:59.999 Sun")
}

func TestPresetWeekendOnWednesday(t *testing.T) {
	for _, policy := range []domain.WeekendPolicy{domain.WeekendUpcoming, domain.WeekendCurrent, domain.WeekendNext} {
		from, to, err := PresetRange(domain.PresetWeekend, day(2026, 10, 14, 12), loc, policy)
		require.NoError(t, err)
		requireRange(t, from, to, "2026-10-17 00:00:00.000 Sat", "2026-10-18 23:59:59.999 Sun")
	}
}

func TestPresetWeekendOnFriday(t *testing.T) {
	from, to, err := PresetRange(domain.PresetWeekend, day(2026, 10, 16, 23), loc, domain.WeekendCurrent)
	require.NoError(t, err)
	requireRange(t, from, to, "2026-10-17 00:00:00.000 Sat", "2026-10-18 23:59:59.999 Sun")
}

func TestPresetWeekendUpcomingPolicy(t *testing.T) {
	// Saturday keeps the weekend in progress
	from, to, err := PresetRange(domain.PresetWeekend, day(2026, 10, 17, 10), loc, domain.WeekendUpcoming)
	require.NoError(t, err)
	requireRange(t, from, to, "2026-10-17 00:00:00.000 Sat", "2026-10-18 23:59:59.999 Sun")

	// Sunday moves to the following weekend
	from, to, err = PresetRange(domain.PresetWeekend, day(2026, 10, 18, 10), loc, domain.WeekendUpcoming)
	require.NoError(t, err)
	requireRange(t, from, to, "2026-10-24 00:00:00.000 Sat", "2026-10-25 23:59:59.999 Sun")
}

func TestPresetWeekendEmptyPolicyIsUpcoming(t *testing.T) {
	from, _, err := PresetRange(domain.PresetWeekend, day(2026, 10, 18, 10), loc, "")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-24", from.Format("2006-01-02"))
}

func TestPresetWeekendCurrentPolicy(t *testing.T) {
	from, to, err := PresetRange(domain.PresetWeekend, day(2026, 10, 17, 10), loc, domain.WeekendCurrent)
	require.NoError(t, err)
	requireRange(t, from, to, "2026-10-17 00:00:00.000 Sat", "2026-10-18 23:59:59.999 Sun")

	from, to, err = PresetRange(domain.PresetWeekend, day(2026, 10, 18, 10), loc, domain.WeekendCurrent)
	require.NoError(t, err)
	requireRange(t, from, to, "2026-10-17 00:00:00.000 Sat", "2026-10-18 23:59:59.999 Sun")
}

func TestPresetWeekendNextPolicy(t *testing.T) {
	from, to, err := PresetRange(domain.PresetWeekend, day(2026, 10, 17, 10), loc, domain.WeekendNext)
	require.NoError(t, err)
	requireRange(t, from, to, "2026-10-24 00:00:00.000 Sat", "2026-10-25 23:59:59.999 Sun")

	from, to, err = PresetRange(domain.PresetWeekend, day(2026, 10, 18, 10), loc, domain.WeekendNext)
	require.NoError(t, err)
	requireRange(t, from, to, "2026-10-24 00:00:00.000 Sat", "2026-10-25 23:59:59.999 Sun")
}

func TestPresetUsesLocationNotInputZone(t *testing.T) {
	// 23:30 UTC on Wednesday is already Thursday at +02:00
	now := time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC)
	from, _, err := PresetRange(domain.PresetToday, now, loc, domain.WeekendCurrent)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-15 Thu", from.Format("2006-01-02 Mon"))
}

func TestPresetUnknown(t *testing.T) {
	_, _, err := PresetRange(domain.DatePreset("NEVER"), day(2026, 10, 14, 12), loc, domain.WeekendCurrent)
	require.Error(t, err)
}
