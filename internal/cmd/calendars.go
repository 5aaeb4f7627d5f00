package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/steipete/colorweek/internal/outfmt"
	"github.com/steipete/colorweek/internal/ui"
)

func newCalendarsCmd(flags *rootFlags) *cobra.Command {
	var max int64
	var page string

	cmd := &cobra.Command{
		Use:   "calendars",
		Short: "List calendars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u := ui.FromContext(cmd.Context())
			account, err := requireAccount(flags)
			if err != nil {
				return err
			}

			svc, err := newCalendarService(cmd.Context(), account)
			if err != nil {
				return err
			}

			resp, err := svc.CalendarList.List().MaxResults(max).PageToken(page).Context(cmd.Context()).Do()
			if err != nil {
				return err
			}
			if outfmt.IsJSON(cmd.Context()) {
				return outfmt.WriteJSON(os.Stdout, map[string]any{
					"calendars":     resp.Items,
					"nextPageToken": resp.NextPageToken,
				})
			}
			if len(resp.Items) == 0 {
				u.Err().Println("No calendars")
				return nil
			}

			w, flush := tableWriter(cmd.Context())
			defer flush()
			fmt.Fprintln(w, "ID\tNAME\tCOLOR\tROLE")
			for _, cal := range resp.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cal.Id, cal.Summary, cal.ColorId, cal.AccessRole)
			}
			printNextPageHint(u, resp.NextPageToken)
			return nil
		},
	}

	cmd.Flags().Int64Var(&max, "max", 100, "Max results")
	cmd.Flags().StringVar(&page, "page", "", "Page token")
	return cmd
}
