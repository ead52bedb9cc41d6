package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, mid-month, so week and month windows are distinct.
var refToday = time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseSingle(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2025-06-01", day(2025, 6, 1), true},
		{"  2025-06-01  ", day(2025, 6, 1), true},
		{"today", day(2025, 6, 18), true},
		{"Current Day", day(2025, 6, 18), true},
		{"now", day(2025, 6, 18), true},
		{"yesterday", day(2025, 6, 17), true},
		{"prev day", day(2025, 6, 17), true},
		{"previous day", day(2025, 6, 17), true},
		{"tomorrow", day(2025, 6, 18), true}, // never resolves into the future
		{"next day", day(2025, 6, 18), true},
		{"", time.Time{}, false},
		{"not a date", time.Time{}, false},
		{"06/18/2025", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseSingle(tt.input, refToday)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveRelative(t *testing.T) {
	tests := []struct {
		input      string
		start, end time.Time
	}{
		{"today", day(2025, 6, 18), day(2025, 6, 18)},
		{"yesterday", day(2025, 6, 17), day(2025, 6, 17)},
		{"this week", day(2025, 6, 16), day(2025, 6, 22)},
		{"current week", day(2025, 6, 16), day(2025, 6, 22)},
		{"last week", day(2025, 6, 9), day(2025, 6, 15)},
		{"week to date", day(2025, 6, 16), day(2025, 6, 18)},
		{"this week to date", day(2025, 6, 16), day(2025, 6, 18)},
		{"this month", day(2025, 6, 1), day(2025, 6, 30)},
		{"month to date", day(2025, 6, 1), day(2025, 6, 18)},
		{"last month", day(2025, 5, 1), day(2025, 5, 31)},
		{"last 7 days", day(2025, 6, 12), day(2025, 6, 18)},
		{"past 7 days", day(2025, 6, 12), day(2025, 6, 18)},
		{"last seven days", day(2025, 6, 12), day(2025, 6, 18)},
		{"last 14 days", day(2025, 6, 5), day(2025, 6, 18)},
		{"last two weeks", day(2025, 6, 5), day(2025, 6, 18)},
		{"last 28 days", day(2025, 5, 22), day(2025, 6, 18)},
		{"past four weeks", day(2025, 5, 22), day(2025, 6, 18)},
		{"last 90 days", day(2025, 3, 21), day(2025, 6, 18)},
		{"last three months", day(2025, 3, 21), day(2025, 6, 18)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, ok := ResolveRelative(tt.input, refToday)
			require.True(t, ok)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
		})
	}
}

func TestResolveRelativeUnknown(t *testing.T) {
	for _, input := range []string{"", "2025-06-01", "last fortnight", "soon"} {
		_, ok := ResolveRelative(input, refToday)
		assert.False(t, ok, "input %q", input)
	}
}

func TestResolveRelativeDecemberMonthEnd(t *testing.T) {
	dec := time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)
	r, ok := ResolveRelative("this month", dec)
	require.True(t, ok)
	assert.Equal(t, day(2025, 12, 1), r.Start)
	assert.Equal(t, day(2025, 12, 31), r.End)
}

func TestResolveRange(t *testing.T) {
	tests := []struct {
		name       string
		startStr   string
		endStr     string
		start, end time.Time
	}{
		{"both iso", "2025-06-01", "2025-06-10", day(2025, 6, 1), day(2025, 6, 10)},
		{"inverted pair collapses to end day", "2025-06-10", "2025-06-01", day(2025, 6, 1), day(2025, 6, 1)},
		{"start only", "2025-06-05", "", day(2025, 6, 5), day(2025, 6, 5)},
		{"end only", "", "2025-06-05", day(2025, 6, 5), day(2025, 6, 5)},
		{"relative start, empty end", "last week", "", day(2025, 6, 9), day(2025, 6, 15)},
		{"relative repeated", "last week", "last week", day(2025, 6, 9), day(2025, 6, 15)},
		{"relative end, empty start", "", "last 7 days", day(2025, 6, 12), day(2025, 6, 18)},
		{"this week clamps future", "this week", "", day(2025, 6, 16), day(2025, 6, 18)},
		{"future end clamped", "2025-06-10", "2025-07-10", day(2025, 6, 10), day(2025, 6, 18)},
		{"both future clamped", "2025-07-01", "2025-07-10", day(2025, 6, 18), day(2025, 6, 18)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ResolveRange(tt.startStr, tt.endStr, refToday)
			require.NoError(t, err)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
		})
	}
}

func TestResolveRangeUnresolvable(t *testing.T) {
	_, err := ResolveRange("", "", refToday)
	assert.ErrorIs(t, err, ErrUnresolvable)

	_, err = ResolveRange("gibberish", "more gibberish", refToday)
	assert.ErrorIs(t, err, ErrUnresolvable)
}

func TestAnchorPeriod(t *testing.T) {
	tests := []struct {
		name       string
		period     Period
		anchor     string
		start, end time.Time
		used       time.Time
	}{
		{"daily default", PeriodDaily, "", day(2025, 6, 18), day(2025, 6, 18), day(2025, 6, 18)},
		{"daily iso", PeriodDaily, "2025-06-10", day(2025, 6, 10), day(2025, 6, 10), day(2025, 6, 10)},
		{"weekly default clamped", PeriodWeekly, "", day(2025, 6, 16), day(2025, 6, 18), day(2025, 6, 18)},
		{"weekly past anchor", PeriodWeekly, "2025-06-03", day(2025, 6, 2), day(2025, 6, 8), day(2025, 6, 3)},
		{"monthly past anchor", PeriodMonthly, "2025-05-15", day(2025, 5, 1), day(2025, 5, 31), day(2025, 5, 15)},
		{"monthly current clamped", PeriodMonthly, "", day(2025, 6, 1), day(2025, 6, 18), day(2025, 6, 18)},
		{"relative anchor wins", PeriodWeekly, "last week", day(2025, 6, 9), day(2025, 6, 15), day(2025, 6, 15)},
		{"future anchor falls back to today", PeriodDaily, "2025-07-01", day(2025, 6, 18), day(2025, 6, 18), day(2025, 6, 18)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, used := AnchorPeriod(tt.period, tt.anchor, refToday)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
			assert.Equal(t, tt.used, used)
		})
	}
}

func TestPeriodValid(t *testing.T) {
	assert.True(t, PeriodDaily.Valid())
	assert.True(t, PeriodWeekly.Valid())
	assert.True(t, PeriodMonthly.Valid())
	assert.False(t, Period("yearly").Valid())
	assert.False(t, Period("").Valid())
}

func TestDays(t *testing.T) {
	r := Range{day(2025, 6, 1), day(2025, 6, 3)}
	assert.Equal(t, []string{"2025-06-01", "2025-06-02", "2025-06-03"}, Days(r))
	assert.Equal(t, 3, r.Days())

	single := Range{day(2025, 6, 1), day(2025, 6, 1)}
	assert.Equal(t, []string{"2025-06-01"}, Days(single))
	assert.Equal(t, 1, single.Days())
}
