package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/steipete/colorweek/internal/outfmt"
	"github.com/steipete/colorweek/internal/ui"
)

func newColorsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "List event and calendar colors with their labels",
		Long: `List available event and calendar colors with their IDs.

Event color IDs (1-11) are the classification keys; the LABEL column shows
the category each one maps to ("colorweek labels set" to change).`,
		Args: cobra.NoArgs,
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

			colors, err := svc.Colors.Get().Context(cmd.Context()).Do()
			if err != nil {
				return err
			}

			m := categoryMap()

			if outfmt.IsJSON(cmd.Context()) {
				labels := make(map[string]string, len(colors.Event))
				for id := range colors.Event {
					labels[id] = m.Category(id)
				}
				return outfmt.WriteJSON(os.Stdout, map[string]any{
					"event":    colors.Event,
					"calendar": colors.Calendar,
					"labels":   labels,
				})
			}

			if len(colors.Event) == 0 && len(colors.Calendar) == 0 {
				u.Err().Println("No colors available")
				return nil
			}

			if len(colors.Event) > 0 {
				fmt.Println("EVENT COLORS:")
				tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tBACKGROUND\tLABEL")
				for _, id := range sortedColorIDs(mapKeys(colors.Event)) {
					c := colors.Event[id]
					fmt.Fprintf(tw, "%s\t%s\t%s\n", id, c.Background, m.Category(id))
				}
				_ = tw.Flush()
				fmt.Println()
			}

			if len(colors.Calendar) > 0 {
				fmt.Println("CALENDAR COLORS:")
				tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tBACKGROUND\tFOREGROUND")
				for _, id := range sortedColorIDs(mapKeys(colors.Calendar)) {
					c := colors.Calendar[id]
					fmt.Fprintf(tw, "%s\t%s\t%s\n", id, c.Background, c.Foreground)
				}
				_ = tw.Flush()
			}

			return nil
		},
	}
}

func mapKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// sortedColorIDs orders color IDs numerically; non-numeric IDs sort last.
func sortedColorIDs(ids []string) []string {
	sort.Slice(ids, func(i, j int) bool {
		a, aerr := strconv.Atoi(ids[i])
		b, berr := strconv.Atoi(ids[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		if aerr == nil {
			return true
		}
		if berr == nil {
			return false
		}
		return ids[i] < ids[j]
	})
	return ids
}
