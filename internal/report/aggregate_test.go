package report

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestAggregate_Conservation(t *testing.T) {
	entries := []Entry{
		{"A", 90 * time.Minute},
		{"B", time.Hour},
		{"A", 30 * time.Minute},
		{"C", 0}, // zero durations contribute nothing
	}
	totals, total := Aggregate(entries)

	if total != 3*time.Hour {
		t.Fatalf("total=%v", total)
	}
	var sum time.Duration
	var pct float64
	for _, ct := range totals {
		sum += ct.Duration
		pct += ct.Percent
	}
	if sum != total {
		t.Fatalf("per-category sum %v != total %v", sum, total)
	}
	if math.Abs(pct-100) > 1e-9 {
		t.Fatalf("percentages sum to %v", pct)
	}
	if len(totals) != 2 || totals[0].Category != "A" {
		t.Fatalf("unexpected order: %#v", totals)
	}
}

func TestAggregate_Empty(t *testing.T) {
	totals, total := Aggregate(nil)
	if len(totals) != 0 || total != 0 {
		t.Fatalf("unexpected: %#v total=%v", totals, total)
	}
}

func TestAggregate_StableTieOrder(t *testing.T) {
	totals, _ := Aggregate([]Entry{{"Zeta", time.Hour}, {"Alpha", time.Hour}})
	if totals[0].Category != "Alpha" || totals[1].Category != "Zeta" {
		t.Fatalf("unexpected order: %#v", totals)
	}
}

// The worked example: two yellow events (1h + 1.5h) and one blue event (1h)
// with {yellow: Networking, blue: Deep Work}.
func TestSummarize_Example(t *testing.T) {
	loc := time.UTC
	w := Window{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, loc),
		End:   time.Date(2025, 6, 8, 0, 0, 0, 0, loc),
	}
	day := func(h, m int) time.Time { return time.Date(2025, 6, 2, h, m, 0, 0, loc) }
	events := []Event{
		{ColorID: "5", Start: day(9, 0), End: day(10, 0)},
		{ColorID: "5", Start: day(10, 0), End: day(11, 30)},
		{ColorID: "9", Start: day(13, 0), End: day(14, 0)},
	}
	m := NewCategoryMap(map[string]string{"5": "Networking", "9": "Deep Work"})

	s := Summarize(events, w, m, Options{})

	if s.Events != 3 || s.Skipped != 0 {
		t.Fatalf("events=%d skipped=%d", s.Events, s.Skipped)
	}
	if s.Total != 3*time.Hour+30*time.Minute {
		t.Fatalf("total=%v", s.Total)
	}
	if len(s.Totals) != 2 {
		t.Fatalf("totals: %#v", s.Totals)
	}
	net, deep := s.Totals[0], s.Totals[1]
	if net.Category != "Networking" || net.Hours != 2.5 {
		t.Fatalf("networking: %#v", net)
	}
	if deep.Category != "Deep Work" || deep.Hours != 1.0 {
		t.Fatalf("deep work: %#v", deep)
	}
	if math.Abs(net.Percent-71.4) > 0.05 || math.Abs(deep.Percent-28.6) > 0.05 {
		t.Fatalf("percents: %v / %v", net.Percent, deep.Percent)
	}
}

func TestSummarize_SkipsAndClips(t *testing.T) {
	loc := time.UTC
	w := Window{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, loc),
		End:   time.Date(2025, 6, 8, 0, 0, 0, 0, loc),
	}
	var warnings []string
	opts := Options{Warn: func(format string, args ...any) {
		warnings = append(warnings, format)
	}}
	events := []Event{
		// Straddles window start: only 2h count.
		{ColorID: "5", Start: w.Start.Add(-time.Hour), End: w.Start.Add(2 * time.Hour)},
		// Entirely outside.
		{ColorID: "5", Start: w.End.Add(time.Hour), End: w.End.Add(2 * time.Hour)},
		// All-day, skipped by default.
		{ColorID: "9", AllDay: true, Start: w.Start, End: w.Start.Add(24 * time.Hour)},
	}

	s := Summarize(events, w, NewCategoryMap(DefaultLabels()), opts)
	if s.Total != 2*time.Hour {
		t.Fatalf("total=%v", s.Total)
	}
	if s.Events != 1 || s.Skipped != 2 {
		t.Fatalf("events=%d skipped=%d", s.Events, s.Skipped)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings: %#v", warnings)
	}

	// With --count-all-day the all-day event contributes 24h.
	s = Summarize(events, w, NewCategoryMap(DefaultLabels()), Options{CountAllDay: true})
	if s.Total != 26*time.Hour {
		t.Fatalf("total=%v", s.Total)
	}
}

func TestSummarize_Uncategorized(t *testing.T) {
	loc := time.UTC
	w := Window{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, loc),
		End:   time.Date(2025, 6, 8, 0, 0, 0, 0, loc),
	}
	events := []Event{
		{ColorID: "", Start: w.Start, End: w.Start.Add(time.Hour)},
	}
	s := Summarize(events, w, NewCategoryMap(nil), Options{})
	if len(s.Totals) != 1 || s.Totals[0].Category != Uncategorized {
		t.Fatalf("unexpected: %#v", s.Totals)
	}
}

func TestWriteCSV(t *testing.T) {
	loc := time.UTC
	w := Window{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, loc),
		End:   time.Date(2025, 6, 8, 0, 0, 0, 0, loc),
	}
	events := []Event{
		{ColorID: "5", Start: w.Start.Add(9 * time.Hour), End: w.Start.Add(11*time.Hour + 30*time.Minute)},
		{ColorID: "9", Start: w.Start.Add(13 * time.Hour), End: w.Start.Add(14 * time.Hour)},
	}
	m := NewCategoryMap(map[string]string{"5": "Networking", "9": "Deep Work"})
	s := Summarize(events, w, m, Options{})

	var sb strings.Builder
	if err := WriteCSV(&sb, s); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	got := sb.String()
	want := "category,hours,percent\nNetworking,2.50,71.4\nDeep Work,1.00,28.6\n"
	if got != want {
		t.Fatalf("csv=%q want %q", got, want)
	}
}

func TestWriteCSV_EmptyStillHasHeader(t *testing.T) {
	var sb strings.Builder
	if err := WriteCSV(&sb, Summary{}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if sb.String() != "category,hours,percent\n" {
		t.Fatalf("csv=%q", sb.String())
	}
}
