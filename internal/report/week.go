package report

import (
	"fmt"
	"time"
)

// Window is a half-open [Start, End) time range.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LastWeek returns the most recently completed Sunday-to-Saturday week in
// loc. End is the most recent Sunday 00:00 at or before now; Start is seven
// days earlier. End is exclusive, so Saturday night is included and the
// current Sunday is not.
func LastWeek(now time.Time, loc *time.Location) Window {
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	end := today.AddDate(0, 0, -int(today.Weekday()))
	return Window{Start: end.AddDate(0, 0, -7), End: end}
}

// Clip returns the overlap of [start, end) with the window, or false when
// they do not intersect.
func (w Window) Clip(start, end time.Time) (time.Time, time.Time, bool) {
	if start.Before(w.Start) {
		start = w.Start
	}
	if end.After(w.End) {
		end = w.End
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// String formats the window as a human-readable date range. The displayed
// end is the last day inside the window, not the exclusive bound.
func (w Window) String() string {
	last := w.End.Add(-time.Second)
	return fmt.Sprintf("%s to %s", w.Start.Format("Monday, January 2"), last.Format("Monday, January 2, 2006"))
}
