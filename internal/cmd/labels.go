package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steipete/colorweek/internal/config"
	"github.com/steipete/colorweek/internal/outfmt"
	"github.com/steipete/colorweek/internal/report"
	"github.com/steipete/colorweek/internal/ui"
)

func newLabelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Show or edit the color-to-category labels",
		Long: `Show the color-to-category mapping used by the report.

Without a configured label an event color falls back to Google's palette
name; colors outside 1-11 report as "` + report.Uncategorized + `".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.ReadConfig()
			if err != nil {
				return err
			}
			defaults := report.DefaultLabels()

			if outfmt.IsJSON(cmd.Context()) {
				merged := make(map[string]string, len(defaults))
				for id, name := range defaults {
					merged[id] = name
				}
				for id, name := range cfg.Labels {
					merged[id] = name
				}
				return outfmt.WriteJSON(os.Stdout, map[string]any{"labels": merged})
			}

			w, flush := tableWriter(cmd.Context())
			defer flush()
			fmt.Fprintln(w, "ID\tLABEL\tSOURCE")
			for _, id := range sortedColorIDs(mapKeys(defaults)) {
				label, source := defaults[id], "default"
				if custom, ok := cfg.Labels[id]; ok {
					label, source = custom, "custom"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", id, label, source)
			}
			return nil
		},
	}

	cmd.AddCommand(newLabelsSetCmd())
	cmd.AddCommand(newLabelsUnsetCmd())
	return cmd
}

func newLabelsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <colorId> <name>",
		Short: "Assign a category name to an event color",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := ui.FromContext(cmd.Context())
			id, err := validateColorID(args[0])
			if err != nil {
				return err
			}
			name := strings.TrimSpace(args[1])
			if name == "" {
				return usage("empty label name")
			}

			cfg, err := config.ReadConfig()
			if err != nil {
				return err
			}
			if cfg.Labels == nil {
				cfg.Labels = map[string]string{}
			}
			cfg.Labels[id] = name
			if err := config.WriteConfig(cfg); err != nil {
				return err
			}
			if outfmt.IsJSON(cmd.Context()) {
				return outfmt.WriteJSON(os.Stdout, map[string]any{"colorId": id, "label": name})
			}
			u.Out().Printf("%s\t%s", id, name)
			return nil
		},
	}
}

func newLabelsUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <colorId>",
		Short: "Remove a custom label (reverts to the palette name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := ui.FromContext(cmd.Context())
			id, err := validateColorID(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.ReadConfig()
			if err != nil {
				return err
			}
			if _, ok := cfg.Labels[id]; !ok {
				return fmt.Errorf("no custom label for color %s", id)
			}
			delete(cfg.Labels, id)
			if err := config.WriteConfig(cfg); err != nil {
				return err
			}
			if outfmt.IsJSON(cmd.Context()) {
				return outfmt.WriteJSON(os.Stdout, map[string]any{"colorId": id, "removed": true})
			}
			u.Out().Printf("%s\t%s", id, report.DefaultLabels()[id])
			return nil
		},
	}
}

func validateColorID(s string) (string, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.Atoi(s)
	if err != nil {
		return "", usage(fmt.Sprintf("invalid color ID: %q (must be 1-11)", s))
	}
	if id < 1 || id > 11 {
		return "", usage(fmt.Sprintf("color ID must be 1-11 (got %d)", id))
	}
	return strconv.Itoa(id), nil
}
