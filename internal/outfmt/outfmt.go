package outfmt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Mode selects the stdout format: human text (default), JSON, or plain TSV.
type Mode struct {
	JSON  bool
	Plain bool
}

// ParseError reports conflicting or unknown output selections. The root
// command maps it to exit code 2.
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string { return e.msg }

// FromEnv reads COLORWEEK_OUTPUT (json|plain|text). Unknown values are
// ignored so a stale env var never breaks the CLI.
func FromEnv() Mode {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("COLORWEEK_OUTPUT"))) {
	case "json":
		return Mode{JSON: true}
	case "plain":
		return Mode{Plain: true}
	default:
		return Mode{}
	}
}

// FromFlags merges the --json/--plain flags into a Mode.
func FromFlags(jsonOut, plain bool) (Mode, error) {
	if jsonOut && plain {
		return Mode{}, &ParseError{msg: "--json and --plain are mutually exclusive"}
	}
	return Mode{JSON: jsonOut, Plain: plain}, nil
}

type ctxKey struct{}

// WithMode attaches the output mode to the context.
func WithMode(ctx context.Context, m Mode) context.Context {
	return context.WithValue(ctx, ctxKey{}, m)
}

// FromContext returns the mode attached to ctx, or the zero Mode.
func FromContext(ctx context.Context) Mode {
	if ctx == nil {
		return Mode{}
	}
	if m, ok := ctx.Value(ctxKey{}).(Mode); ok {
		return m
	}
	return Mode{}
}

func IsJSON(ctx context.Context) bool  { return FromContext(ctx).JSON }
func IsPlain(ctx context.Context) bool { return FromContext(ctx).Plain }

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
