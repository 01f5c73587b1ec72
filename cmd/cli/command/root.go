package command

// root.go defines the root command and the global flags.

import (
	"fmt"
	"os"
	"time"

	"mindwell/cmd/cli/authentication"
	"mindwell/cmd/cli/command/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	apiURL string // Global flag for API server URL
	token  string // overrides the stored token for one invocation
)

var rootCmd = &cobra.Command{
	Use:   "mindwell",
	Short: "mindwell - command line client for the mindwell API",
	Long: `mindwell talks to the mindwell resources and bookings API. Use it to:
- Browse and search the mental-health resource catalog
- Like, bookmark, share and rate resources
- Request counselling sessions and decide on them as a counsellor
- Read booking notifications

Tokens are issued by the identity provider (or cmd/devtoken locally) and
stored with "mindwell auth login --token <jwt>".`,
	SilenceUsage: true,
}

// Execute is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("MINDWELL_API", "http://localhost:8080/api/v1"), "API root URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "bearer token (defaults to the stored login)")

	rootCmd.AddCommand(authCmd, resourcesCmd, bookingsCmd, notificationsCmd, healthCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// publicClient is for endpoints that need no identity.
func publicClient() *client.HTTPClient {
	c := client.NewHTTPClient(apiURL)
	if token != "" {
		c.SetToken(token)
	}
	return c
}

// authenticatedClient attaches the --token flag or the stored login.
func authenticatedClient() (*client.HTTPClient, error) {
	c := client.NewHTTPClient(apiURL)
	if token != "" {
		c.SetToken(token)
		return c, nil
	}
	creds, err := authentication.GetTokens()
	if err != nil {
		return nil, err
	}
	if creds.Expired(time.Now()) {
		return nil, fmt.Errorf("stored token expired, log in again")
	}
	c.SetToken(creds.AccessToken)
	return c, nil
}

func success(format string, a ...any) {
	color.Green("✓ "+format, a...)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check API and dependency health",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := publicClient().Health()
		if err != nil {
			return err
		}
		success("API is %v", status["status"])
		if deps, ok := status["dependencies"].(map[string]any); ok {
			for name, state := range deps {
				fmt.Printf("  %s: %v\n", name, state)
			}
		}
		return nil
	},
}
