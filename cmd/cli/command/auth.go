package command

import (
	"fmt"
	"time"

	"mindwell/cmd/cli/authentication"

	"github.com/spf13/cobra"
)

// auth.go manages the stored bearer token. There is no login flow on the
// server; tokens come from the identity provider.

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored bearer token",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a bearer token in the OS keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		if token == "" {
			return fmt.Errorf("--token is required")
		}
		creds, err := authentication.FromToken(token)
		if err != nil {
			return fmt.Errorf("token is not a JWT: %w", err)
		}
		if creds.Expired(time.Now()) {
			return fmt.Errorf("token already expired")
		}
		if err := authentication.StoreTokens(creds); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}
		success("Logged in as %s (%s)", creds.UserID, roleOrDefault(creds.Role))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authentication.DeleteTokens(); err != nil {
			return err
		}
		success("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the identity in the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if err != nil {
			return err
		}
		fmt.Printf("User: %s\n", creds.UserID)
		fmt.Printf("Role: %s\n", roleOrDefault(creds.Role))
		if creds.ExpiresAt != 0 {
			fmt.Printf("Expires: %s\n", time.Unix(creds.ExpiresAt, 0).Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func roleOrDefault(role string) string {
	if role == "" {
		return "student"
	}
	return role
}

func init() {
	authCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
