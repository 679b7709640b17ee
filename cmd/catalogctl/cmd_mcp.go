package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	catalogmcp "catalogctl/internal/mcp"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout remains exclusively MCP protocol traffic.

Tools exposed:
  list      — list one collection from the loaded snapshot
  get       — fetch one record by id
  query     — run a product query against the backend
  relations — show the records referencing a given record
  stats     — collection sizes

All tools are read-only; writes go through the regular commands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()
			notifier := newNotifier()

			gate, err := newGate(notifier, logger)
			if err != nil {
				return err
			}
			if err := requireUser(gate); err != nil {
				return err
			}
			api := newClient(gate, notifier, logger)
			reg := newRegistry(api, gate, notifier, logger)

			if err := reg.LoadAll(cmd.Context()); err != nil {
				// Stores keep whatever loaded; tool calls on the rest will
				// just see empty collections.
				logger.Error("mcp: initial load failed, serving partial data", "error", err)
			}

			srv := catalogmcp.NewServer(reg, api, logger)

			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: catalogctl MCP server starting", "transport", "stdio")

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	return cmd
}
