package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/steipete/colorweek/internal/config"
)

func TestExecute_LabelsSetAndList(t *testing.T) {
	isolateConfig(t)

	_ = captureStdout(t, func() {
		_ = captureStderr(t, func() {
			if err := Execute([]string{"labels", "set", "5", "Networking"}); err != nil {
				t.Errorf("Execute set: %v", err)
			}
		})
	})

	cfg, err := config.ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if cfg.Labels["5"] != "Networking" {
		t.Fatalf("labels=%v", cfg.Labels)
	}

	out := captureStdout(t, func() {
		_ = captureStderr(t, func() {
			if err := Execute([]string{"--plain", "labels"}); err != nil {
				t.Errorf("Execute labels: %v", err)
			}
		})
	})
	if !strings.Contains(out, "5\tNetworking\tcustom") {
		t.Fatalf("missing custom row:\n%s", out)
	}
	if !strings.Contains(out, "1\tLavender\tdefault") {
		t.Fatalf("missing default row:\n%s", out)
	}
}

func TestExecute_LabelsUnset(t *testing.T) {
	isolateConfig(t)
	if err := config.WriteConfig(config.Config{Labels: map[string]string{"9": "Deep Work"}}); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}

	_ = captureStdout(t, func() {
		_ = captureStderr(t, func() {
			if err := Execute([]string{"labels", "unset", "9"}); err != nil {
				t.Errorf("Execute unset: %v", err)
			}
		})
	})

	cfg, err := config.ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if _, ok := cfg.Labels["9"]; ok {
		t.Fatalf("label not removed: %v", cfg.Labels)
	}
}

func TestExecute_LabelsUnset_NoCustomLabel(t *testing.T) {
	isolateConfig(t)

	_ = captureStdout(t, func() {
		_ = captureStderr(t, func() {
			err := Execute([]string{"labels", "unset", "3"})
			if err == nil {
				t.Error("expected error for missing custom label")
			}
		})
	})
}

func TestExecute_LabelsJSON_MergesDefaults(t *testing.T) {
	isolateConfig(t)
	if err := config.WriteConfig(config.Config{Labels: map[string]string{"11": "Urgent"}}); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}

	out := captureStdout(t, func() {
		_ = captureStderr(t, func() {
			if err := Execute([]string{"--json", "labels"}); err != nil {
				t.Errorf("Execute: %v", err)
			}
		})
	})

	var parsed struct {
		Labels map[string]string `json:"labels"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("json parse: %v\nout=%q", err, out)
	}
	if len(parsed.Labels) != 11 {
		t.Fatalf("labels=%d, want 11", len(parsed.Labels))
	}
	if parsed.Labels["11"] != "Urgent" || parsed.Labels["1"] != "Lavender" {
		t.Fatalf("unexpected labels: %v", parsed.Labels)
	}
}

func TestValidateColorID(t *testing.T) {
	if id, err := validateColorID(" 7 "); err != nil || id != "7" {
		t.Fatalf("id=%q err=%v", id, err)
	}
	for _, bad := range []string{"0", "12", "abc", ""} {
		if _, err := validateColorID(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
