package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/steipete/colorweek/internal/config"
	"github.com/steipete/colorweek/internal/googleauth"
	"github.com/steipete/colorweek/internal/outfmt"
	"github.com/steipete/colorweek/internal/secrets"
	"github.com/steipete/colorweek/internal/ui"
)

// Swappable for tests.
var openSecrets = secrets.OpenDefault

func newAuthCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage OAuth credentials and accounts",
	}
	cmd.AddCommand(newAuthCredentialsCmd())
	cmd.AddCommand(newAuthAddCmd())
	cmd.AddCommand(newAuthListCmd())
	cmd.AddCommand(newAuthRemoveCmd())
	cmd.AddCommand(newAuthDefaultCmd())
	return cmd
}

func newAuthCredentialsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "credentials <credentials.json>",
		Short: "Install the OAuth Desktop client JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := ui.FromContext(cmd.Context())
			path, err := config.InstallCredentials(args[0])
			if err != nil {
				return err
			}
			if outfmt.IsJSON(cmd.Context()) {
				return outfmt.WriteJSON(os.Stdout, map[string]any{"installed": path})
			}
			u.Out().Printf("installed\t%s", path)
			return nil
		},
	}
}

func newAuthAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <email>",
		Short: "Authorize an account (console OAuth flow, read-only scope)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := ui.FromContext(cmd.Context())
			email := strings.ToLower(strings.TrimSpace(args[0]))
			if email == "" || !strings.Contains(email, "@") {
				return usage(fmt.Sprintf("invalid email %q", args[0]))
			}

			oauthCfg, err := googleauth.OAuthConfig()
			if err != nil {
				return err
			}

			authURL := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
			u.Err().Printf("Open this link in your browser and authorize %s:\n\n%s\n", email, authURL)
			u.Err().Printf("Enter the authorization code:")

			code, err := readLine(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read authorization code: %w", err)
			}
			if code == "" {
				return errors.New("empty authorization code")
			}

			tok, err := oauthCfg.Exchange(cmd.Context(), code)
			if err != nil {
				return fmt.Errorf("exchange authorization code: %w", err)
			}
			if tok.RefreshToken == "" {
				return errors.New("no refresh token returned; revoke access at https://myaccount.google.com/permissions and retry")
			}

			store, err := openSecrets()
			if err != nil {
				return err
			}
			if err := store.SetToken(email, secrets.Token{
				Email:        email,
				Scopes:       googleauth.Scopes(),
				RefreshToken: tok.RefreshToken,
			}); err != nil {
				return err
			}

			if outfmt.IsJSON(cmd.Context()) {
				return outfmt.WriteJSON(os.Stdout, map[string]any{"account": email, "stored": true})
			}
			u.Out().Printf("account\t%s", email)
			u.Out().Printf("stored\ttrue")
			return nil
		},
	}
}

func newAuthListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List authorized accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u := ui.FromContext(cmd.Context())
			store, err := openSecrets()
			if err != nil {
				return err
			}
			tokens, err := store.ListTokens()
			if err != nil {
				return err
			}
			def, _ := store.GetDefaultAccount()

			if outfmt.IsJSON(cmd.Context()) {
				return outfmt.WriteJSON(os.Stdout, map[string]any{
					"accounts": tokens,
					"default":  def,
				})
			}
			if len(tokens) == 0 {
				u.Err().Println("No accounts. Run: colorweek auth add <email>")
				return nil
			}

			w, flush := tableWriter(cmd.Context())
			defer flush()
			fmt.Fprintln(w, "EMAIL\tCREATED\tDEFAULT")
			for _, tok := range tokens {
				mark := ""
				if tok.Email == def {
					mark = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", tok.Email, tok.CreatedAt.Format(time.DateOnly), mark)
			}
			return nil
		},
	}
}

func newAuthRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <email>",
		Short: "Remove a stored account token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := ui.FromContext(cmd.Context())
			store, err := openSecrets()
			if err != nil {
				return err
			}
			if err := store.DeleteToken(args[0]); err != nil {
				return err
			}
			if outfmt.IsJSON(cmd.Context()) {
				return outfmt.WriteJSON(os.Stdout, map[string]any{"removed": strings.ToLower(strings.TrimSpace(args[0]))})
			}
			u.Out().Printf("removed\t%s", strings.ToLower(strings.TrimSpace(args[0])))
			return nil
		},
	}
}

func newAuthDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default <email>",
		Short: "Set the default account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := ui.FromContext(cmd.Context())
			store, err := openSecrets()
			if err != nil {
				return err
			}
			if _, err := store.GetToken(args[0]); err != nil {
				return fmt.Errorf("account %s not authorized yet: %w", args[0], err)
			}
			if err := store.SetDefaultAccount(args[0]); err != nil {
				return err
			}
			if outfmt.IsJSON(cmd.Context()) {
				return outfmt.WriteJSON(os.Stdout, map[string]any{"default": strings.ToLower(strings.TrimSpace(args[0]))})
			}
			u.Out().Printf("default\t%s", strings.ToLower(strings.TrimSpace(args[0])))
			return nil
		},
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
