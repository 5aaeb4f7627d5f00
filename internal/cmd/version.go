package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is stamped via -ldflags on release builds.
var version = "dev"

func VersionString() string {
	return "colorweek " + version
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Fprintln(os.Stdout, VersionString())
			return nil
		},
	}
}
