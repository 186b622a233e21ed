package main

import (
	"fmt"
	"os"

	"patlens/internal/config"
	"patlens/internal/logging"
	"patlens/internal/mcp"
	"patlens/internal/version"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Start the PatLens MCP server in stdio mode",
	Long: `Start the PatLens MCP server using stdio transport.
This is the mode MCP clients launch: requests arrive on stdin, responses
leave on stdout, and all diagnostics go to stderr.`,
	RunE: runStdioServer,
}

func init() {
	stdioCmd.Flags().Bool("debug", false, "Enable debug logging")
	viper.BindPFlag("debug", stdioCmd.Flags().Lookup("debug"))
}

func runStdioServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	srv := mcp.NewServer(cfg)

	fmt.Fprintln(os.Stderr, version.GetFullVersionString())
	fmt.Fprintf(os.Stderr, "Upstream API: %s\n", cfg.APIBaseURL)
	if logging.IsDebugEnabled() {
		fmt.Fprintln(os.Stderr, "Debug logging enabled")
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		fmt.Fprintf(os.Stderr, "Warning: %s_CLIENT_ID / %s_CLIENT_SECRET not set; tool calls will fail until configured\n",
			config.EnvPrefix, config.EnvPrefix)
	}

	return srv.StartStdio()
}
