package report

import (
	"strconv"
	"strings"
)

// Uncategorized is the sentinel category for events whose color has no
// configured label.
const Uncategorized = "Uncategorized"

// DefaultLabels maps Google event color IDs (1-11) to their published
// names. Users override these via `colorweek labels set`.
func DefaultLabels() map[string]string {
	return map[string]string{
		"1":  "Lavender",
		"2":  "Sage",
		"3":  "Grape",
		"4":  "Flamingo",
		"5":  "Banana",
		"6":  "Tangerine",
		"7":  "Peacock",
		"8":  "Graphite",
		"9":  "Blueberry",
		"10": "Basil",
		"11": "Tomato",
	}
}

// CategoryMap resolves a color ID to a category name. It is total: unmapped
// or empty color IDs resolve to Uncategorized.
type CategoryMap struct {
	labels map[string]string
}

// NewCategoryMap builds a CategoryMap from a colorID-to-name table. Entries
// with blank names are ignored.
func NewCategoryMap(labels map[string]string) CategoryMap {
	m := make(map[string]string, len(labels))
	for id, name := range labels {
		id = strings.TrimSpace(id)
		name = strings.TrimSpace(name)
		if id == "" || name == "" {
			continue
		}
		m[id] = name
	}
	return CategoryMap{labels: m}
}

// Category returns the configured name for colorID, or Uncategorized.
func (m CategoryMap) Category(colorID string) string {
	if name, ok := m.labels[strings.TrimSpace(colorID)]; ok {
		return name
	}
	return Uncategorized
}

// Len reports how many colors carry a label.
func (m CategoryMap) Len() int { return len(m.labels) }

// NearestEventColor maps an arbitrary background hex (such as a calendar's
// default color) to the closest event color ID in palette by squared RGB
// distance. Returns "" when hex or the palette is unusable. Uncolored
// events inherit their calendar's color this way, mirroring how the
// Calendar UI renders them.
func NearestEventColor(hex string, palette map[string]string) string {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return ""
	}
	bestID := ""
	bestDist := -1
	for id, candidate := range palette {
		cr, cg, cb, ok := parseHexColor(candidate)
		if !ok {
			continue
		}
		d := sq(r-cr) + sq(g-cg) + sq(b-cb)
		if bestDist < 0 || d < bestDist || (d == bestDist && id < bestID) {
			bestDist = d
			bestID = id
		}
	}
	return bestID
}

func parseHexColor(s string) (r, g, b int, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

func sq(n int) int { return n * n }
