package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/steipete/colorweek/internal/config"
	"github.com/steipete/colorweek/internal/errfmt"
	"github.com/steipete/colorweek/internal/outfmt"
	"github.com/steipete/colorweek/internal/ui"
)

type rootFlags struct {
	Color   string
	Account string
	JSON    bool
	Plain   bool
	Verbose bool
}

func Execute(args []string) error {
	flags := rootFlags{
		Color:   envOr("COLORWEEK_COLOR", "auto"),
		Account: os.Getenv("COLORWEEK_ACCOUNT"),
	}
	envMode := outfmt.FromEnv()
	flags.JSON = envMode.JSON
	flags.Plain = envMode.Plain

	// Avoid dangerous prefix-matching for commands (future-proofing).
	cobra.EnablePrefixMatching = false

	if hasExactArg(args, "--version") {
		fmt.Fprintln(os.Stdout, VersionString())
		return nil
	}

	root := &cobra.Command{
		Use:           "colorweek",
		Short:         "Weekly Google Calendar color-hours report (Sunday-Saturday)",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Example: strings.TrimSpace(`
  # One-time setup (OAuth)
  colorweek auth credentials ~/path/to/credentials.json
  colorweek auth add you@gmail.com

  # Avoid repeating --account
  export COLORWEEK_ACCOUNT=you@gmail.com

  # Name your colors (defaults are Google's palette names)
  colorweek labels set 5 Networking
  colorweek labels set 9 "Deep Work"

  # Hours and percentages for last week (Sun-Sat)
  colorweek report
  colorweek report --all --count-all-day --csv week.csv

  # Inspect the raw inputs
  colorweek events
  colorweek calendars
  colorweek colors

  # Parseable output
  colorweek --json report | jq .
		`),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logLevel := slog.LevelWarn
			if flags.Verbose {
				logLevel = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})))

			mode, err := outfmt.FromFlags(flags.JSON, flags.Plain)
			if err != nil {
				return err
			}
			cmd.SetContext(outfmt.WithMode(cmd.Context(), mode))

			u, err := ui.New(ui.Options{
				Stdout: os.Stdout,
				Stderr: os.Stderr,
				Color: func() string {
					if outfmt.IsJSON(cmd.Context()) || outfmt.IsPlain(cmd.Context()) {
						return "never"
					}
					return flags.Color
				}(),
			})
			if err != nil {
				return err
			}
			cmd.SetContext(ui.WithUI(cmd.Context(), u))
			return nil
		},
	}

	root.SetArgs(args)
	root.PersistentFlags().StringVar(&flags.Color, "color", flags.Color, "Color output: auto|always|never")
	root.PersistentFlags().StringVar(&flags.Account, "account", flags.Account, "Account email for API commands")
	root.PersistentFlags().BoolVar(&flags.JSON, "json", flags.JSON, "Output JSON to stdout (best for scripting)")
	root.PersistentFlags().BoolVar(&flags.Plain, "plain", flags.Plain, "Output stable, parseable text to stdout (TSV; no colors)")
	root.PersistentFlags().BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")

	root.AddCommand(newAuthCmd(&flags))
	root.AddCommand(newReportCmd(&flags))
	root.AddCommand(newEventsCmd(&flags))
	root.AddCommand(newCalendarsCmd(&flags))
	root.AddCommand(newColorsCmd(&flags))
	root.AddCommand(newLabelsCmd())
	root.AddCommand(newVersionCmd())

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		// pflag already includes helpful context ("unknown flag", "invalid argument", ...).
		return newUsageError(err)
	})

	err := root.Execute()
	if err == nil {
		return nil
	}
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}

	if ExitCode(err) == 1 && isUsageError(err) {
		err = &ExitError{Code: 2, Err: err}
	}

	if u := ui.FromContext(root.Context()); u != nil {
		u.Err().Error(errfmt.Format(err))
		return err
	}
	_, _ = fmt.Fprintln(os.Stderr, errfmt.Format(err))
	return err
}

// ExitError carries the process exit code for main().
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error from Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return 1
}

// usage reports a caller mistake; main() maps it to exit code 2.
func usage(msg string) error {
	return &ExitError{Code: 2, Err: errors.New(msg)}
}

// newUsageError wraps errors in a way main() can map to exit code 2.
func newUsageError(err error) error {
	if err == nil {
		return nil
	}
	// Preserve pflag.ErrHelp (should not be treated as failure).
	if errors.Is(err, pflag.ErrHelp) {
		return err
	}
	return &ExitError{Code: 2, Err: err}
}

func isUsageError(err error) bool {
	var outErr *outfmt.ParseError
	if errors.As(err, &outErr) {
		return true
	}
	var uiErr *ui.ParseError
	if errors.As(err, &uiErr) {
		return true
	}
	msg := strings.TrimSpace(err.Error())
	switch {
	case strings.HasPrefix(msg, "accepts "),
		strings.HasPrefix(msg, "requires "),
		strings.HasPrefix(msg, "unknown command"),
		strings.HasPrefix(msg, "invalid argument"),
		strings.HasPrefix(msg, "unknown flag"),
		strings.HasPrefix(msg, "unknown shorthand flag"):
		return true
	default:
		return false
	}
}

// requireAccount resolves the account email: flag/env, then config, then
// the keyring default, then a sole stored token.
func requireAccount(flags *rootFlags) (string, error) {
	if a := strings.TrimSpace(flags.Account); a != "" {
		return a, nil
	}
	if cfg, err := config.ReadConfig(); err == nil && strings.TrimSpace(cfg.Account) != "" {
		return strings.TrimSpace(cfg.Account), nil
	}

	store, err := openSecrets()
	if err != nil {
		return "", err
	}
	if v, err := store.GetDefaultAccount(); err == nil && strings.TrimSpace(v) != "" {
		return v, nil
	}
	if tokens, err := store.ListTokens(); err == nil && len(tokens) == 1 {
		return tokens[0].Email, nil
	}
	return "", usage("no account selected: pass --account, set COLORWEEK_ACCOUNT, or run `colorweek auth default <email>`")
}

// tableWriter returns the stdout table target: aligned columns for humans,
// raw TSV under --plain.
func tableWriter(ctx context.Context) (io.Writer, func()) {
	if outfmt.IsPlain(ctx) {
		return os.Stdout, func() {}
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	return tw, func() { _ = tw.Flush() }
}

func printNextPageHint(u *ui.UI, token string) {
	if u == nil || token == "" {
		return
	}
	u.Err().Printf("More results: --page %s", token)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func hasExactArg(args []string, target string) bool {
	for _, a := range args {
		if a == target {
			return true
		}
	}
	return false
}
