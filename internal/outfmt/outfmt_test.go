package outfmt

import (
	"context"
	"strings"
	"testing"
)

func TestFromEnv(t *testing.T) {
	tests := []struct {
		env  string
		want Mode
	}{
		{"", Mode{}},
		{"json", Mode{JSON: true}},
		{"JSON", Mode{JSON: true}},
		{"plain", Mode{Plain: true}},
		{"text", Mode{}},
		{"nonsense", Mode{}},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("COLORWEEK_OUTPUT", tt.env)
			if got := FromEnv(); got != tt.want {
				t.Fatalf("FromEnv() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFromFlags_Conflict(t *testing.T) {
	if _, err := FromFlags(true, true); err == nil {
		t.Fatalf("expected error")
	}
	m, err := FromFlags(true, false)
	if err != nil || !m.JSON {
		t.Fatalf("unexpected: %#v err=%v", m, err)
	}
}

func TestContextRoundtrip(t *testing.T) {
	ctx := context.Background()
	if IsJSON(ctx) || IsPlain(ctx) {
		t.Fatalf("zero mode expected")
	}
	ctx = WithMode(ctx, Mode{JSON: true})
	if !IsJSON(ctx) || IsPlain(ctx) {
		t.Fatalf("unexpected mode: %#v", FromContext(ctx))
	}
}

func TestWriteJSON(t *testing.T) {
	var sb strings.Builder
	if err := WriteJSON(&sb, map[string]any{"hours": 2.5}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got := sb.String()
	if !strings.Contains(got, `"hours": 2.5`) || !strings.HasSuffix(got, "\n") {
		t.Fatalf("unexpected output: %q", got)
	}
}
