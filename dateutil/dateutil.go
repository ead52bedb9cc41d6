// Package dateutil resolves user-facing date inputs into concrete calendar
// windows. Inputs may be ISO dates (YYYY-MM-DD) or relative phrases such as
// "yesterday", "this month to date", or "last 28 days". All resolution is
// relative to a caller-supplied reference day so behavior is deterministic
// and testable.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// ISODate is the wire format for all dates exchanged with Garmin Connect.
const ISODate = "2006-01-02"

// ErrUnresolvable is returned when neither input parses as a date or a
// known relative phrase.
var ErrUnresolvable = errors.New("dateutil: unable to resolve date range from inputs")

// Range is an inclusive calendar window.
type Range struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days in the range, inclusive.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Today truncates t to midnight in its location.
func Today(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseSingle resolves a single date input. It accepts ISO dates and the
// phrases today/yesterday/tomorrow with their synonyms. "tomorrow" resolves
// to today: callers never query the future. Returns the zero time and false
// when the input is empty or unrecognized.
func ParseSingle(value string, today time.Time) (time.Time, bool) {
	clean := strings.ToLower(strings.TrimSpace(value))
	if clean == "" {
		return time.Time{}, false
	}
	today = Today(today)

	switch clean {
	case "today", "current day", "now":
		return today, true
	case "yesterday", "prev day", "previous day":
		return today.AddDate(0, 0, -1), true
	case "tomorrow", "next day":
		return today, true
	}

	d, err := time.ParseInLocation(ISODate, clean, today.Location())
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// weekStart returns the Monday on or before d.
func weekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7 // Monday == 0
	return d.AddDate(0, 0, -offset)
}

// monthStart returns the first day of d's month.
func monthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

// monthEnd returns the last day of d's month.
func monthEnd(d time.Time) time.Time {
	return monthStart(d).AddDate(0, 1, -1)
}

// ResolveRelative resolves a relative range phrase into a window around
// today. Returns false for inputs that are not a known phrase; ISO dates
// are deliberately not handled here.
func ResolveRelative(value string, today time.Time) (Range, bool) {
	clean := strings.ToLower(strings.TrimSpace(value))
	if clean == "" {
		return Range{}, false
	}
	today = Today(today)

	switch clean {
	case "today", "current day", "now":
		return Range{today, today}, true
	case "yesterday", "prev day", "previous day":
		d := today.AddDate(0, 0, -1)
		return Range{d, d}, true
	case "this week", "current week":
		start := weekStart(today)
		return Range{start, start.AddDate(0, 0, 6)}, true
	case "last week", "previous week":
		currentStart := weekStart(today)
		return Range{currentStart.AddDate(0, 0, -7), currentStart.AddDate(0, 0, -1)}, true
	case "this week to date", "current week to date", "week to date":
		return Range{weekStart(today), today}, true
	case "this month", "current month":
		return Range{monthStart(today), monthEnd(today)}, true
	case "this month to date", "current month to date", "month to date":
		return Range{monthStart(today), today}, true
	case "last month", "previous month":
		lastPrev := monthStart(today).AddDate(0, 0, -1)
		return Range{monthStart(lastPrev), lastPrev}, true
	case "last 7 days", "past 7 days", "previous 7 days", "last seven days":
		return Range{today.AddDate(0, 0, -6), today}, true
	case "last 14 days", "past 14 days", "previous 14 days", "last two weeks":
		return Range{today.AddDate(0, 0, -13), today}, true
	case "last 28 days", "past 28 days", "previous 28 days",
		"last four weeks", "past four weeks", "previous four weeks":
		return Range{today.AddDate(0, 0, -27), today}, true
	case "last 90 days", "past 90 days", "previous 90 days", "last three months":
		return Range{today.AddDate(0, 0, -89), today}, true
	}

	return Range{}, false
}

// clampToToday trims future days off the range and keeps start <= end.
func clampToToday(r Range, today time.Time) Range {
	today = Today(today)
	if r.End.After(today) {
		r.End = today
	}
	if r.Start.After(r.End) {
		r.Start = r.End
	}
	return r
}

// equalFold reports whether two inputs are the same phrase ignoring case
// and surrounding whitespace.
func equalFold(a, b string) bool {
	return strings.ToLower(strings.TrimSpace(a)) == strings.ToLower(strings.TrimSpace(b))
}

// ResolveRange resolves a pair of start/end inputs into a concrete window.
//
// A relative phrase in either slot defines the whole window when the other
// slot is empty or repeats the same phrase. Otherwise both slots are parsed
// as single dates and fill in for one another when only one is present.
// The result is clamped to today; an inverted pair collapses to its end day.
func ResolveRange(startStr, endStr string, today time.Time) (Range, error) {
	if startStr != "" {
		if r, ok := ResolveRelative(startStr, today); ok {
			if endStr == "" || equalFold(startStr, endStr) {
				return clampToToday(r, today), nil
			}
		}
	}
	if endStr != "" {
		if r, ok := ResolveRelative(endStr, today); ok {
			if startStr == "" || equalFold(startStr, endStr) {
				return clampToToday(r, today), nil
			}
		}
	}

	start, haveStart := ParseSingle(startStr, today)
	end, haveEnd := ParseSingle(endStr, today)

	if !haveStart && !haveEnd {
		return Range{}, ErrUnresolvable
	}
	if !haveStart {
		start = end
	}
	if !haveEnd {
		end = start
	}
	return clampToToday(Range{start, end}, today), nil
}

// Period identifies an anchored summary window.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Valid reports whether p is one of the supported periods.
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// AnchorPeriod resolves a daily/weekly/monthly window around an anchor
// input. The anchor may be an ISO date, a relative phrase (in which case the
// phrase's window is returned directly), or empty (today). The returned
// anchor is the effective reference day after clamping.
func AnchorPeriod(period Period, anchorValue string, today time.Time) (Range, time.Time) {
	today = Today(today)
	anchor := today

	if anchorValue != "" {
		if r, ok := ResolveRelative(anchorValue, today); ok {
			r = clampToToday(r, today)
			return r, r.End
		}
		if d, ok := ParseSingle(anchorValue, today); ok {
			if d.Before(today) {
				anchor = d
			}
		}
	}

	var r Range
	switch period {
	case PeriodWeekly:
		start := weekStart(anchor)
		r = Range{start, start.AddDate(0, 0, 6)}
	case PeriodMonthly:
		r = Range{monthStart(anchor), monthEnd(anchor)}
	default:
		r = Range{anchor, anchor}
	}

	r = clampToToday(r, today)
	if anchor.After(r.End) {
		anchor = r.End
	}
	return r, anchor
}

// EachDay calls fn for every day in the range, in order.
func EachDay(r Range, fn func(day time.Time)) {
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// Days lists every day in the range as ISO strings.
func Days(r Range) []string {
	var out []string
	EachDay(r, func(day time.Time) {
		out = append(out, day.Format(ISODate))
	})
	return out
}
