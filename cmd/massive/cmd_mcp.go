package main

import (
	"github.com/hazyhaar/massive-bench/pkg/api"
	"github.com/hazyhaar/massive-bench/pkg/logging"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the classification tools over MCP stdio",
	Long: `Starts an MCP server on stdin/stdout exposing classify_utterance,
classify_batch and list_locales. Logs go to stderr.`,
	RunE: runMCP,
}

func runMCP(_ *cobra.Command, _ []string) error {
	logger := logging.New("api")

	svc, err := loadService()
	if err != nil {
		return err
	}

	srv := server.NewMCPServer("massive-bench", version, server.WithToolCapabilities(false))
	api.RegisterMCPTools(srv, svc, logger)

	logger.Info("starting MCP server over stdio", "models", svc.Models().ModelCount())
	return server.ServeStdio(srv)
}
