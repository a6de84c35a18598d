package main

import (
	"context"

	"github.com/spf13/cobra"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"holofun/internal/logging"
	mcpserver "holofun/internal/mcp"
	"holofun/internal/paths"
)

var serveFlags struct {
	resolverFlags
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing resolve_paths, list_presets
and get_preset. The server exits when its parent process goes away.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveFlags.register(serveCmd)
}

func newServeServer(cmd *cobra.Command) (*mcpserver.Server, *paths.Resolver, error) {
	r, err := serveFlags.build(cmd)
	if err != nil {
		return nil, nil, err
	}
	return mcpserver.NewServer(r, version), r, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	srv, r, err := newServeServer(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting holofun MCP server over stdio", "platform", r.Platform().Name())
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
