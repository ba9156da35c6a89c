package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/luals-check/internal/domain"
)

const configURI = "luals-check://config"

// effectiveConfig is what a check would run with, before request overrides.
type effectiveConfig struct {
	ProjectRoot  string            `json:"project_root"`
	Executable   string            `json:"lua_language_server"`
	Thresholds   domain.Thresholds `json:"thresholds"`
	ExcludePaths []string          `json:"exclude_paths,omitempty"`
}

// registerResources registers the luals-check MCP resources on the given server.
func registerResources(s *server.MCPServer, c *checker) {
	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Configuration",
			mcplib.WithResourceDescription("Effective luals-check configuration for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		c.handleConfigResource,
	)
}

func (c *checker) handleConfigResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	eff, err := c.effectiveConfig()
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(eff, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      configURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (c *checker) effectiveConfig() (*effectiveConfig, error) {
	root, err := c.projectRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := c.cfg.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	executable := c.opts.Executable
	if executable == "" {
		executable = cfg.Executable()
	}
	return &effectiveConfig{
		ProjectRoot:  root,
		Executable:   executable,
		Thresholds:   cfg.Thresholds(domain.DefaultThresholds()).Normalize(),
		ExcludePaths: cfg.ExcludePaths,
	}, nil
}
