package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/openkraft/luals-check/internal/adapters/inbound/mcp"
	"github.com/openkraft/luals-check/internal/adapters/outbound/logger"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the luals-check MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var (
		projectPath string
		executable  string
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start luals-check MCP server (stdio)",
		Long:  "Start the luals-check MCP server using stdio transport. This lets AI coding assistants run lua-language-server diagnostics on the project.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			log := logger.New("luals-check-mcp", logLevel, cmd.ErrOrStderr())
			s := mcpadapter.NewLualsCheckMCPServer(mcpadapter.Options{
				ProjectPath: projectPath,
				Executable:  executable,
				Echo:        cmd.ErrOrStderr(),
				Logger:      log,
			})
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")
	cmd.Flags().StringVarP(&executable, "lua-language-server", "c", "", "Path to the lua-language-server executable")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, off)")

	return cmd
}
