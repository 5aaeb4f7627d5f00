package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the summary as category,hours,percent rows. An empty
// summary still gets a header row so downstream tooling sees a valid file.
func WriteCSV(w io.Writer, s Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "hours", "percent"}); err != nil {
		return err
	}
	for _, t := range s.Totals {
		row := []string{t.Category, fmt.Sprintf("%.2f", t.Hours), fmt.Sprintf("%.1f", t.Percent)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
