package report

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
)

// Event is the slice of a calendar event the reporter cares about.
type Event struct {
	CalendarID string
	Summary    string
	ColorID    string
	Start      time.Time
	End        time.Time
	AllDay     bool
}

// Duration returns the event length. Callers should clip to a window first.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// ParseEvent converts an API event into an Event localized to loc.
// Timed events carry RFC3339 timestamps; all-day events carry date-only
// bounds with an exclusive end date.
func ParseEvent(item *calendar.Event, loc *time.Location) (Event, error) {
	if item == nil || item.Start == nil || item.End == nil {
		return Event{}, fmt.Errorf("event missing start/end")
	}

	out := Event{Summary: item.Summary, ColorID: item.ColorId}

	switch {
	case item.Start.DateTime != "":
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return Event{}, fmt.Errorf("bad start time %q: %w", item.Start.DateTime, err)
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return Event{}, fmt.Errorf("bad end time %q: %w", item.End.DateTime, err)
		}
		out.Start = start.In(loc)
		out.End = end.In(loc)
	case item.Start.Date != "":
		start, err := time.ParseInLocation("2006-01-02", item.Start.Date, loc)
		if err != nil {
			return Event{}, fmt.Errorf("bad start date %q: %w", item.Start.Date, err)
		}
		end, err := time.ParseInLocation("2006-01-02", item.End.Date, loc)
		if err != nil {
			return Event{}, fmt.Errorf("bad end date %q: %w", item.End.Date, err)
		}
		out.Start = start
		out.End = end
		out.AllDay = true
	default:
		return Event{}, fmt.Errorf("event has neither dateTime nor date bounds")
	}

	if out.End.Before(out.Start) {
		return Event{}, fmt.Errorf("event ends before it starts (%s > %s)", out.Start.Format(time.RFC3339), out.End.Format(time.RFC3339))
	}
	return out, nil
}
