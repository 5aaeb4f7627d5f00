package report

import (
	"testing"
	"time"
)

func TestLastWeek_EachWeekday(t *testing.T) {
	loc := time.UTC
	// 2025-06-01 is a Sunday.
	wantEnd := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)

	tests := []struct {
		name string
		now  time.Time
	}{
		{"sunday", time.Date(2025, 6, 1, 10, 30, 0, 0, loc)},
		{"monday", time.Date(2025, 6, 2, 0, 0, 0, 0, loc)},
		{"wednesday", time.Date(2025, 6, 4, 23, 59, 59, 0, loc)},
		{"saturday", time.Date(2025, 6, 7, 12, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := LastWeek(tt.now, loc)
			if !w.End.Equal(wantEnd) {
				t.Fatalf("end=%v want %v", w.End, wantEnd)
			}
			if !w.Start.Equal(wantEnd.AddDate(0, 0, -7)) {
				t.Fatalf("start=%v", w.Start)
			}
			if w.Start.Weekday() != time.Sunday || w.End.Weekday() != time.Sunday {
				t.Fatalf("window not sunday-aligned: %v..%v", w.Start, w.End)
			}
		})
	}
}

func TestLastWeek_RollsToNextSunday(t *testing.T) {
	loc := time.UTC
	// The following Sunday moves the whole window forward a week.
	w := LastWeek(time.Date(2025, 6, 8, 0, 0, 1, 0, loc), loc)
	if !w.End.Equal(time.Date(2025, 6, 8, 0, 0, 0, 0, loc)) {
		t.Fatalf("end=%v", w.End)
	}
}

func TestWindowClip(t *testing.T) {
	loc := time.UTC
	w := Window{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, loc),
		End:   time.Date(2025, 6, 8, 0, 0, 0, 0, loc),
	}

	// Fully inside.
	s, e, ok := w.Clip(time.Date(2025, 6, 2, 9, 0, 0, 0, loc), time.Date(2025, 6, 2, 10, 0, 0, 0, loc))
	if !ok || e.Sub(s) != time.Hour {
		t.Fatalf("inside: ok=%v dur=%v", ok, e.Sub(s))
	}

	// Straddles the start: only the overlap counts.
	s, e, ok = w.Clip(time.Date(2025, 5, 31, 22, 0, 0, 0, loc), time.Date(2025, 6, 1, 2, 0, 0, 0, loc))
	if !ok || e.Sub(s) != 2*time.Hour {
		t.Fatalf("straddle: ok=%v dur=%v", ok, e.Sub(s))
	}

	// Entirely before.
	if _, _, ok := w.Clip(time.Date(2025, 5, 30, 0, 0, 0, 0, loc), time.Date(2025, 5, 31, 0, 0, 0, 0, loc)); ok {
		t.Fatalf("expected no overlap")
	}

	// Touching the exclusive end.
	if _, _, ok := w.Clip(w.End, w.End.Add(time.Hour)); ok {
		t.Fatalf("expected no overlap at exclusive end")
	}
}
