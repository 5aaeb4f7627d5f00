package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/steipete/colorweek/internal/outfmt"
	"github.com/steipete/colorweek/internal/ui"
)

func newEventsCmd(flags *rootFlags) *cobra.Command {
	var calendarID string
	var tz string
	var from string
	var to string
	var all bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the raw events feeding the report window",
		Long: `List the events inside the report window with their resolved color and
category. Useful to check why an event landed in a given bucket.`,
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

			events, _, err := fetchWindowEvents(cmd.Context(), svc, calendarID, all, window, loc, u.Err().Printf)
			if err != nil {
				return err
			}

			m := categoryMap()

			if outfmt.IsJSON(cmd.Context()) {
				type row struct {
					CalendarID string    `json:"calendarId"`
					Summary    string    `json:"summary"`
					Start      time.Time `json:"start"`
					End        time.Time `json:"end"`
					AllDay     bool      `json:"allDay"`
					ColorID    string    `json:"colorId,omitempty"`
					Category   string    `json:"category"`
				}
				rows := make([]row, 0, len(events))
				for _, e := range events {
					rows = append(rows, row{
						CalendarID: e.CalendarID,
						Summary:    e.Summary,
						Start:      e.Start,
						End:        e.End,
						AllDay:     e.AllDay,
						ColorID:    e.ColorID,
						Category:   m.Category(e.ColorID),
					})
				}
				return outfmt.WriteJSON(os.Stdout, map[string]any{
					"window": window,
					"events": rows,
				})
			}

			if len(events) == 0 {
				u.Err().Println("No events")
				return nil
			}

			w, flush := tableWriter(cmd.Context())
			defer flush()
			fmt.Fprintln(w, "START\tEND\tCOLOR\tCATEGORY\tSUMMARY")
			for _, e := range events {
				start := e.Start.Format(time.RFC3339)
				end := e.End.Format(time.RFC3339)
				if e.AllDay {
					start = e.Start.Format("2006-01-02")
					end = e.End.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", start, end, e.ColorID, m.Category(e.ColorID), e.Summary)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&calendarID, "calendar", "primary", "Calendar ID")
	cmd.Flags().BoolVar(&all, "all", false, "Fetch events from all visible calendars")
	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone for the week window (default: config, then system)")
	cmd.Flags().StringVar(&from, "from", "", "Window start (RFC3339; overrides the computed week)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (RFC3339, exclusive)")
	return cmd
}
