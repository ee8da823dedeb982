package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can list your
documents, read their analysis, run compliance checks, and ask questions.

By default, the server communicates over stdio using JSON-RPC.

Use --port to start an HTTP server instead, which also serves Prometheus
metrics for the API client at /metrics.

Examples:
  # Stdio mode (default, for desktop assistants)
  mineguard mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  mineguard mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "mineguard": {
        "command": "/path/to/mineguard",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if services == nil {
		return errNotConfigured
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Documents:   services.Documents,
		Comparisons: services.Comparisons,
		QA:          services.QA,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr, services.Metrics)
	}

	return server.Run(cmd.Context())
}
