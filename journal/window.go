package journal

import (
	"fmt"
	"strings"
	"time"
)

// Window names a reporting period relative to "now".
type Window string

const (
	WindowAll   Window = "all"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
)

// ParseWindow maps user input to a Window. Empty input means all trades.
func ParseWindow(s string) (Window, error) {
	switch w := Window(strings.ToLower(strings.TrimSpace(s))); w {
	case "":
		return WindowAll, nil
	case WindowAll, WindowWeek, WindowMonth, WindowYear:
		return w, nil
	default:
		return "", fmt.Errorf("unknown window %q (want all|week|month|year)", s)
	}
}

// Bounds returns [start, end) of the period containing now, in now's
// location. Weeks start on Sunday. WindowAll has zero bounds.
func (w Window) Bounds(now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	loc := now.Location()

	switch w {
	case WindowWeek:
		start = time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, loc)
		end = start.AddDate(0, 0, 7)
	case WindowMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0)
	case WindowYear:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(1, 0, 0)
	}
	return start, end
}

// Query returns the journal query for the period containing now.
func (w Window) Query(now time.Time) Query {
	start, end := w.Bounds(now)
	return Query{Start: start, End: end}
}

// Label is the heading used in reports.
func (w Window) Label() string {
	switch w {
	case WindowWeek:
		return "This Week"
	case WindowMonth:
		return "This Month"
	case WindowYear:
		return "This Year"
	default:
		return "All Time"
	}
}
