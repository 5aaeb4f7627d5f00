package report

import (
	"sort"
	"time"
)

// Entry is one categorized duration contribution.
type Entry struct {
	Category string
	Duration time.Duration
}

// CategoryTotal is the per-category line of a summary.
type CategoryTotal struct {
	Category string        `json:"category"`
	Duration time.Duration `json:"-"`
	Hours    float64       `json:"hours"`
	Percent  float64       `json:"percent"`
}

// Summary is the aggregated report for one window.
type Summary struct {
	Window     Window          `json:"window"`
	Totals     []CategoryTotal `json:"totals"`
	Total      time.Duration   `json:"-"`
	TotalHours float64         `json:"totalHours"`
	Events     int             `json:"events"`
	Skipped    int             `json:"skipped"`
}

// Aggregate sums durations per category and computes each category's share
// of the grand total. Totals are sorted by duration descending, then by name
// so equal categories order deterministically. An empty input yields no
// totals and a zero grand total; percentages are only computed when the
// grand total is positive.
func Aggregate(entries []Entry) ([]CategoryTotal, time.Duration) {
	byCategory := make(map[string]time.Duration)
	var total time.Duration
	for _, e := range entries {
		if e.Duration <= 0 {
			continue
		}
		byCategory[e.Category] += e.Duration
		total += e.Duration
	}

	out := make([]CategoryTotal, 0, len(byCategory))
	for name, d := range byCategory {
		ct := CategoryTotal{Category: name, Duration: d, Hours: d.Hours()}
		if total > 0 {
			ct.Percent = float64(d) / float64(total) * 100
		}
		out = append(out, ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Duration != out[j].Duration {
			return out[i].Duration > out[j].Duration
		}
		return out[i].Category < out[j].Category
	})
	return out, total
}

// Options control how Summarize counts events.
type Options struct {
	// CountAllDay counts all-day events at 24h per day instead of
	// skipping them.
	CountAllDay bool
	// Warn receives one message per skipped event. May be nil.
	Warn func(format string, args ...any)
}

// Summarize clips events to the window, resolves categories, and aggregates
// durations. Events outside the window, all-day events (unless counted),
// and zero-length overlaps contribute nothing.
func Summarize(events []Event, w Window, m CategoryMap, opts Options) Summary {
	warn := opts.Warn
	if warn == nil {
		warn = func(string, ...any) {}
	}

	entries := make([]Entry, 0, len(events))
	counted := 0
	skipped := 0
	for _, e := range events {
		if e.AllDay && !opts.CountAllDay {
			skipped++
			continue
		}
		start, end, ok := w.Clip(e.Start, e.End)
		if !ok {
			warn("event %q (%s) outside window, skipped", e.Summary, e.Start.Format(time.RFC3339))
			skipped++
			continue
		}
		entries = append(entries, Entry{
			Category: m.Category(e.ColorID),
			Duration: end.Sub(start),
		})
		counted++
	}

	totals, total := Aggregate(entries)
	return Summary{
		Window:     w,
		Totals:     totals,
		Total:      total,
		TotalHours: total.Hours(),
		Events:     counted,
		Skipped:    skipped,
	}
}
