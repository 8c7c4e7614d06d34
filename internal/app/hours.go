package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmkladzyk/rwepcafenew/internal/domain"
)

var weekdayKeys = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// HoursInfo is the resolved open/closed status of a place at one instant.
type HoursInfo struct {
	IsOpen   bool
	ClosesAt *time.Time
}

type hoursSpan struct {
	start, end time.Time
}

// ResolveHours evaluates a place's recurring weekly schedule at the given
// instant, interpreted in loc. A close time at or before the open time spans
// midnight. Ranges that started yesterday and run past midnight count too.
// No hours (or no entry for the relevant weekday) means closed.
func ResolveHours(p domain.Place, at time.Time, loc *time.Location) HoursInfo {
	local := at.In(loc)

	for _, span := range spansForDay(p, local, 0) {
		if contains(span, local) {
			end := span.end
			return HoursInfo{IsOpen: true, ClosesAt: &end}
		}
	}
	// A range begun yesterday may still be active past midnight.
	for _, span := range spansForDay(p, local, -1) {
		if contains(span, local) {
			end := span.end
			return HoursInfo{IsOpen: true, ClosesAt: &end}
		}
	}
	return HoursInfo{IsOpen: false, ClosesAt: nil}
}

// spansForDay builds concrete spans from the schedule of the day dayOffset
// days from local's calendar day, anchored on that day.
func spansForDay(p domain.Place, local time.Time, dayOffset int) []hoursSpan {
	if p.Hours == nil {
		return nil
	}
	day := local.AddDate(0, 0, dayOffset)
	entries := p.Hours[weekdayKeys[int(day.Weekday())]]
	if len(entries) == 0 {
		return nil
	}
	spans := make([]hoursSpan, 0, len(entries))
	for _, r := range entries {
		openH, openM, ok := parseClock(r.Open)
		if !ok {
			continue
		}
		closeH, closeM, ok := parseClock(r.Close)
		if !ok {
			continue
		}
		y, mo, d := day.Date()
		start := time.Date(y, mo, d, openH, openM, 0, 0, local.Location())
		end := time.Date(y, mo, d, closeH, closeM, 0, 0, local.Location())
		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
		}
		spans = append(spans, hoursSpan{start: start, end: end})
	}
	return spans
}

// contains checks membership in [start, end).
func contains(s hoursSpan, t time.Time) bool {
	return !t.Before(s.start) && t.Before(s.end)
}

// parseClock parses "HH:MM" 24h wall-clock time. Malformed entries are
// skipped rather than treated as open.
func parseClock(s string) (hour, minute int, ok bool) {
	h, m, found := strings.Cut(s, ":")
	if !found {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// FormatClosingTime renders a resolved closing instant as local "hh:mm AM/PM"
// for presentation, or "" when the place is closed.
func FormatClosingTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("03:04 PM")
}
