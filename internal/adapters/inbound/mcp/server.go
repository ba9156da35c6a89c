package mcp

import (
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/server"
)

// Options configures the MCP server.
type Options struct {
	// ProjectPath is the project every tool call checks.
	ProjectPath string
	// Executable overrides the configured lua-language-server path.
	Executable string
	// Echo receives the analyzer output. It must not be the protocol stream.
	Echo   io.Writer
	Logger hclog.Logger
}

// NewLualsCheckMCPServer creates a new MCP server with the luals-check tool
// and resources registered.
func NewLualsCheckMCPServer(opts Options) *server.MCPServer {
	s := server.NewMCPServer(
		"luals-check",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	c := newChecker(opts.withDefaults())
	registerTools(s, c)
	registerResources(s, c)

	return s
}

func (o Options) withDefaults() Options {
	if o.ProjectPath == "" {
		o.ProjectPath = "."
	}
	if o.Echo == nil {
		o.Echo = io.Discard
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	return o
}
