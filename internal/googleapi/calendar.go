package googleapi

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/steipete/colorweek/internal/googleauth"
	"github.com/steipete/colorweek/internal/secrets"
)

// AuthRequiredError means no refresh token is stored for the account.
type AuthRequiredError struct {
	Email string
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("no refresh token stored for %s", e.Email)
}

// NewCalendar returns an authenticated Calendar service for the account,
// refreshing access tokens from the stored refresh token on demand.
func NewCalendar(ctx context.Context, email string) (*calendar.Service, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("missing account email")
	}

	oauthCfg, err := googleauth.OAuthConfig()
	if err != nil {
		return nil, err
	}

	store, err := secrets.OpenDefault()
	if err != nil {
		return nil, err
	}
	tok, err := store.GetToken(email)
	if err != nil || tok.RefreshToken == "" {
		return nil, &AuthRequiredError{Email: email}
	}

	ts := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: tok.RefreshToken})
	return calendar.NewService(ctx, option.WithTokenSource(ts))
}
