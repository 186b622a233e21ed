package main

import (
	"fmt"

	"patlens/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage PatLens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	RunE:  runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("api_base_url:  %s\n", cfg.APIBaseURL)
	fmt.Printf("client_id:     %s\n", cfg.ClientID)
	fmt.Printf("client_secret: %s\n", redactSecret(cfg.ClientSecret))
	fmt.Printf("token_log:     %s\n", cfg.TokenLogPath)
	fmt.Printf("debug:         %t\n", cfg.Debug)
	return nil
}

// redactSecret reports whether a secret is configured without ever
// printing its value.
func redactSecret(s string) string {
	if s == "" {
		return "(unset)"
	}
	return "(set)"
}
