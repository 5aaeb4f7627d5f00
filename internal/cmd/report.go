package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/steipete/colorweek/internal/outfmt"
	"github.com/steipete/colorweek/internal/report"
	"github.com/steipete/colorweek/internal/ui"
)

func newReportCmd(flags *rootFlags) *cobra.Command {
	var calendarID string
	var tz string
	var from string
	var to string
	var csvPath string
	var all bool
	var countAllDay bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Hours and percentages per color category for last week",
		Long: `Sum event durations per color category for the most recently completed
Sunday-Saturday week and print hours plus percentage of tracked time.

Events are clipped to the window, so multi-day events only count their
overlap. All-day events are skipped unless --count-all-day is set.
Uncolored events inherit their calendar's default color. Use
"colorweek labels" to name the colors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u := ui.FromContext(cmd.Context())
			account, err := requireAccount(flags)
			if err != nil {
				return err
			}
			if all && cmd.Flags().Changed("calendar") {
				return usage("--calendar not allowed with --all")
			}

			loc, err := resolveLocation(tz)
			if err != nil {
				return err
			}
			window, err := resolveWindow(loc, from, to)
			if err != nil {
				return err
			}

			svc, err := newCalendarService(cmd.Context(), account)
			if err != nil {
				return err
			}

			events, malformed, err := fetchWindowEvents(cmd.Context(), svc, calendarID, all, window, loc, u.Err().Printf)
			if err != nil {
				return err
			}

			summary := report.Summarize(events, window, categoryMap(), report.Options{
				CountAllDay: countAllDay,
				Warn:        u.Err().Printf,
			})
			summary.Skipped += malformed

			if csvPath != "" {
				if err := writeCSVFile(csvPath, summary); err != nil {
					return err
				}
				u.Err().Printf("Wrote CSV: %s", csvPath)
			}

			if outfmt.IsJSON(cmd.Context()) {
				return outfmt.WriteJSON(os.Stdout, summary)
			}

			if len(summary.Totals) == 0 {
				u.Err().Printf("No events between %s and %s", window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"))
				return nil
			}

			if !outfmt.IsPlain(cmd.Context()) {
				u.Err().Printf("Week of %s", window)
			}
			w, flush := tableWriter(cmd.Context())
			defer flush()
			fmt.Fprintln(w, "CATEGORY\tHOURS\tPERCENT")
			for _, t := range summary.Totals {
				fmt.Fprintf(w, "%s\t%.2f\t%.1f%%\n", t.Category, t.Hours, t.Percent)
			}
			fmt.Fprintf(w, "TOTAL\t%.2f\t\n", summary.TotalHours)
			return nil
		},
	}

	cmd.Flags().StringVar(&calendarID, "calendar", "primary", "Calendar ID")
	cmd.Flags().BoolVar(&all, "all", false, "Sum across all visible calendars")
	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone for the week window (default: config, then system)")
	cmd.Flags().StringVar(&from, "from", "", "Window start (RFC3339; overrides the computed week)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (RFC3339, exclusive)")
	cmd.Flags().BoolVar(&countAllDay, "count-all-day", false, "Count all-day events as 24h/day instead of skipping them")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write CSV to this file")
	return cmd
}

func writeCSVFile(path string, s report.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(f, s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
