package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Options configure a UI.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	// Color is auto|always|never.
	Color string
}

// ParseError reports an invalid --color value. The root command maps it to
// exit code 2.
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string { return e.msg }

// UI writes human-facing output: data to stdout, notices and errors to
// stderr, so piped stdout stays parseable.
type UI struct {
	out *Printer
	err *Printer
}

// New builds a UI honoring the color preference.
func New(opts Options) (*UI, error) {
	profile, err := colorProfile(opts.Color, opts.Stdout)
	if err != nil {
		return nil, err
	}
	return &UI{
		out: &Printer{w: opts.Stdout, profile: profile},
		err: &Printer{w: opts.Stderr, profile: profile},
	}, nil
}

func colorProfile(color string, stdout io.Writer) (termenv.Profile, error) {
	switch strings.ToLower(strings.TrimSpace(color)) {
	case "", "auto":
		return termenv.NewOutput(stdout).Profile, nil
	case "always":
		return termenv.ANSI, nil
	case "never":
		return termenv.Ascii, nil
	default:
		return termenv.Ascii, &ParseError{msg: fmt.Sprintf("invalid --color value %q (auto|always|never)", color)}
	}
}

func (u *UI) Out() *Printer { return u.out }
func (u *UI) Err() *Printer { return u.err }

// Printer writes newline-terminated lines to one stream.
type Printer struct {
	w       io.Writer
	profile termenv.Profile
}

func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.w, args...)
}

// Error prints msg styled as an error.
func (p *Printer) Error(msg string) {
	styled := termenv.String(msg).Foreground(p.profile.Color("1")).String()
	fmt.Fprintln(p.w, styled)
}

type ctxKey struct{}

// WithUI attaches u to the context.
func WithUI(ctx context.Context, u *UI) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the UI attached to ctx, or nil.
func FromContext(ctx context.Context) *UI {
	if ctx == nil {
		return nil
	}
	if u, ok := ctx.Value(ctxKey{}).(*UI); ok {
		return u
	}
	return nil
}
