package mcp

import (
	"context"
	"fmt"

	"patlens/internal/config"
	"patlens/internal/insights"
	"patlens/internal/version"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/afero"
)

// Server wires the tool registry and dispatcher into an MCP stdio server.
type Server struct {
	mcpServer  *server.MCPServer
	dispatcher *Dispatcher
}

// NewServer builds the full pipeline from cfg: token manager, gateway,
// dispatcher, and one registered MCP tool per registry entry.
func NewServer(cfg *config.Config) *Server {
	tokenLog := insights.NewTokenLog(afero.NewOsFs(), cfg.TokenLogPath)
	tokens := insights.NewTokenManager(cfg.APIBaseURL, cfg.ClientID, cfg.ClientSecret, tokenLog)
	client := insights.NewClient(cfg.APIBaseURL, tokens)

	s := &Server{
		dispatcher: NewDispatcher(client, cfg.ClientID),
		mcpServer: server.NewMCPServer(
			"PatLens",
			version.GetVersionString(),
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
	}

	for _, spec := range s.dispatcher.Tools() {
		s.mcpServer.AddTool(toMCPTool(spec), s.makeHandler(spec.Name))
	}
	return s
}

// StartStdio serves MCP over stdin/stdout until the client disconnects.
func (s *Server) StartStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// makeHandler returns the generic proxy handler for one tool. Every tool
// shares the same shape: arguments in, pretty-printed upstream JSON out.
func (s *Server) makeHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := s.dispatcher.Call(ctx, name, request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(errorMessage(name, err)), nil
		}
		return mcp.NewToolResultText(result), nil
	}
}

// errorMessage renders a dispatch failure as the single line surfaced to
// the protocol: tool name, status, and the upstream detail.
func errorMessage(name string, err error) string {
	return fmt.Sprintf("%s failed (status %d): %v", name, insights.StatusOf(err), err)
}

// ToolDefinitions returns the MCP definition of every registered tool,
// in registry order. Used by the tools command to dump the catalog
// without starting a server.
func ToolDefinitions() []mcp.Tool {
	specs := insights.Registry()
	tools := make([]mcp.Tool, 0, len(specs))
	for _, spec := range specs {
		tools = append(tools, toMCPTool(spec))
	}
	return tools
}

// toMCPTool converts a registry entry into its MCP tool definition.
func toMCPTool(spec insights.ToolSpec) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(spec.Description)}
	for _, arg := range spec.Args {
		propOpts := []mcp.PropertyOption{mcp.Description(arg.Description)}
		if arg.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		switch arg.Type {
		case "number":
			opts = append(opts, mcp.WithNumber(arg.Name, propOpts...))
		case "boolean":
			opts = append(opts, mcp.WithBoolean(arg.Name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(arg.Name, propOpts...))
		}
	}
	return mcp.NewTool(spec.Name, opts...)
}
