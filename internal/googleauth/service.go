package googleauth

import (
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/steipete/colorweek/internal/config"
)

// ScopeCalendarReadOnly is the only scope this tool ever requests. The
// reporter never mutates calendars.
const ScopeCalendarReadOnly = "https://www.googleapis.com/auth/calendar.readonly"

// Scopes returns the OAuth scopes to request during `auth add`.
func Scopes() []string {
	return []string{ScopeCalendarReadOnly}
}

// OAuthConfig builds the oauth2 config from the installed OAuth Desktop
// client JSON. The out-of-band redirect keeps the flow console-only.
func OAuthConfig() (*oauth2.Config, error) {
	data, err := config.ReadCredentials()
	if err != nil {
		return nil, err
	}
	cfg, err := google.ConfigFromJSON(data, Scopes()...)
	if err != nil {
		return nil, fmt.Errorf("parse OAuth client JSON: %w", err)
	}
	if cfg.RedirectURL == "" {
		cfg.RedirectURL = "urn:ietf:wg:oauth:2.0:oob"
	}
	return cfg, nil
}
