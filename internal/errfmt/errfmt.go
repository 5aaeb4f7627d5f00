package errfmt

import (
	"errors"
	"fmt"
	"os"

	"github.com/99designs/keyring"
	ggoogleapi "google.golang.org/api/googleapi"

	"github.com/steipete/colorweek/internal/config"
	cwapi "github.com/steipete/colorweek/internal/googleapi"
)

// Format turns an error into the one-line message shown to the user,
// with a next-step hint where we can give one.
func Format(err error) string {
	if err == nil {
		return ""
	}

	var authErr *cwapi.AuthRequiredError
	if errors.As(err, &authErr) {
		return fmt.Sprintf("No refresh token for %s. Run: colorweek auth add %s", authErr.Email, authErr.Email)
	}

	var credErr *config.CredentialsMissingError
	if errors.As(err, &credErr) {
		return fmt.Sprintf("OAuth credentials missing. Run: colorweek auth credentials <credentials.json> (expected at %s)", credErr.Path)
	}

	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "Secret not found in keyring (refresh token missing). Run: colorweek auth add <email>"
	}

	if errors.Is(err, os.ErrNotExist) {
		return err.Error()
	}

	var gerr *ggoogleapi.Error
	if errors.As(err, &gerr) {
		reason := ""
		if len(gerr.Errors) > 0 && gerr.Errors[0].Reason != "" {
			reason = gerr.Errors[0].Reason
		}

		if reason != "" {
			return fmt.Sprintf("Google API error (%d %s): %s", gerr.Code, reason, gerr.Message)
		}

		return fmt.Sprintf("Google API error (%d): %s", gerr.Code, gerr.Message)
	}

	return err.Error()
}
