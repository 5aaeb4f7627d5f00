//go:build integration

package integration

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/steipete/colorweek/internal/googleapi"
	"github.com/steipete/colorweek/internal/report"
	"github.com/steipete/colorweek/internal/secrets"
)

func integrationAccount(t *testing.T) string {
	t.Helper()

	if v := strings.TrimSpace(os.Getenv("COLORWEEK_IT_ACCOUNT")); v != "" {
		return v
	}

	store, err := secrets.OpenDefault()
	if err != nil {
		t.Skipf("open secrets store (set COLORWEEK_IT_ACCOUNT to avoid keyring prompts): %v", err)
	}

	if v, err := store.GetDefaultAccount(); err == nil && strings.TrimSpace(v) != "" {
		return v
	}

	tokens, err := store.ListTokens()
	if err != nil {
		t.Skipf("list tokens: %v", err)
	}
	if len(tokens) == 1 && strings.TrimSpace(tokens[0].Email) != "" {
		return tokens[0].Email
	}

	t.Skip("set COLORWEEK_IT_ACCOUNT (or set a default via `colorweek auth default`, or store exactly one token)")
	return ""
}

func TestCalendarSmoke(t *testing.T) {
	account := integrationAccount(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	svc, err := googleapi.NewCalendar(ctx, account)
	if err != nil {
		t.Fatalf("NewCalendar: %v", err)
	}
	_, err = svc.CalendarList.List().MaxResults(1).Do()
	if err != nil {
		t.Fatalf("Calendar list: %v", err)
	}
}

func TestLastWeekEventsSmoke(t *testing.T) {
	account := integrationAccount(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc, err := googleapi.NewCalendar(ctx, account)
	if err != nil {
		t.Fatalf("NewCalendar: %v", err)
	}

	w := report.LastWeek(time.Now(), time.Local)
	resp, err := svc.Events.List("primary").
		TimeMin(w.Start.Format(time.RFC3339)).
		TimeMax(w.End.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(10).
		Context(ctx).
		Do()
	if err != nil {
		t.Fatalf("Events list: %v", err)
	}

	for _, item := range resp.Items {
		if _, err := report.ParseEvent(item, time.Local); err != nil {
			t.Logf("unparseable event %q: %v", item.Summary, err)
		}
	}
}
