package main

import (
	"encoding/json"
	"fmt"

	"patlens/internal/insights"
	"patlens/internal/mcp"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools this server exposes",
	RunE:  runListTools,
}

func init() {
	toolsCmd.Flags().Bool("json", false, "Print full MCP tool definitions as JSON")
}

func runListTools(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	if asJSON {
		out, err := json.MarshalIndent(mcp.ToolDefinitions(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	for _, t := range insights.Registry() {
		fmt.Printf("%-26s /insights/%s\n    %s\n", t.Name, t.Endpoint, t.Description)
	}
	return nil
}
