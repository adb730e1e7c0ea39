package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/cli"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/sheets"
)

func authCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
	}

	cmd.AddCommand(authSheetsCmd(a))

	return cmd
}

func authSheetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authorize Google Sheets export",
		Long: `Run the Google OAuth2 consent flow in your browser and store the token
for 'allocate export --sheets'.

A saved token is reused and refreshed when possible; pass --force to start a
new consent flow.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientID := a.cfg.Sheets.ClientID
			clientSecret := a.cfg.Sheets.ClientSecret

			if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
				clientID = flagID
			}
			if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
				clientSecret = flagSecret
			}
			if clientID == "" {
				clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
			}
			if clientSecret == "" {
				clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
			}

			if clientID == "" || clientSecret == "" {
				return fmt.Errorf("OAuth2 credentials not found. Please set sheets.client_id and sheets.client_secret in config or use --client-id and --client-secret flags")
			}

			tokenFile, err := sheetsTokenFile()
			if err != nil {
				return err
			}

			config := sheets.OAuth2Config{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				TokenFile:    tokenFile,
			}
			config.CallbackAddr, _ = cmd.Flags().GetString("callback-addr")

			slog.Info("Starting Google Sheets authentication", "token_file", tokenFile)

			ctx := cmd.Context()
			force, _ := cmd.Flags().GetBool("force")
			getToken := sheets.GetOrCreateToken
			if force {
				getToken = sheets.AuthenticateOAuth2Interactive
			}

			token, err := getToken(ctx, config)
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			out := cmd.OutOrStdout()
			writeOut(out, "%s\n", cli.FormatSuccess("Google Sheets authentication complete"))
			if token.RefreshToken != "" {
				writeOut(out, "\nAdd this to your config.yaml:\n\nsheets:\n  refresh_token: %q\n", token.RefreshToken)
			}
			return nil
		},
	}

	cmd.Flags().String("client-id", "", "OAuth2 client ID (default: sheets.client_id)")
	cmd.Flags().String("client-secret", "", "OAuth2 client secret (default: sheets.client_secret)")
	cmd.Flags().String("callback-addr", sheets.DefaultCallbackAddr, "Address the local OAuth2 callback server listens on")
	cmd.Flags().Bool("force", false, "Ignore any saved token")

	return cmd
}

// sheetsTokenFile returns where the Sheets OAuth2 token is kept.
func sheetsTokenFile() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "allocate", "sheets-token.json"), nil
}
