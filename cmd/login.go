package cmd

import (
	"errors"
	"fmt"
	"strings"

	"botdash/internal/client"
	"botdash/internal/config"
	"github.com/spf13/cobra"
)

// Variables to hold flag values
var (
	loginHost string
	loginKey  string
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify an API key and save it",
	Long: `Checks the API key against the meeting bot API and saves it, together
with the API base URL, to the config file for future commands.

Example:
  botdash login --api-key "$MEETING_BAAS_API_KEY"
  botdash login --host https://api.example.com --api-key mykey`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		host := strings.TrimRight(loginHost, "/")
		if host == "" {
			host = cfg.BaseURL
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}

		api := client.New(client.ClientConfig{
			BaseURL: host,
			APIKey:  loginKey,
			Timeout: cfg.Timeout,
			Logger:  log,
		})

		fmt.Printf("Checking API key against %s...\n", host)
		if err := api.Ping(cmd.Context()); err != nil {
			if client.IsAuthError(err) {
				return errors.New("login failed: the API key was rejected")
			}
			return fmt.Errorf("login failed: %w", err)
		}

		if err := config.SaveCredentials(host, loginKey); err != nil {
			return fmt.Errorf("failed to save configuration file: %w", err)
		}
		fmt.Println("API key saved. You can now run commands like 'botdash bots list'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVar(&loginHost, "host", "", "API base URL (default is the configured base_url)")
	loginCmd.Flags().StringVar(&loginKey, "api-key", "", "Meeting bot API key")
	_ = loginCmd.MarkFlagRequired("api-key")
}
