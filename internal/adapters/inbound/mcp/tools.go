package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/luals-check/internal/adapters/outbound/analyzer"
	"github.com/openkraft/luals-check/internal/adapters/outbound/config"
	"github.com/openkraft/luals-check/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/luals-check/internal/adapters/outbound/report"
	"github.com/openkraft/luals-check/internal/application"
	"github.com/openkraft/luals-check/internal/domain"
)

// checker runs the pipeline on behalf of tool calls. Calls are serialized
// because each one spawns a full analyzer run over the same project.
type checker struct {
	mu   sync.Mutex
	opts Options
	svc  *application.CheckService
	cfg  domain.ConfigLoader
}

func newChecker(opts Options) *checker {
	cfg := config.New()
	return &checker{
		opts: opts,
		cfg:  cfg,
		svc: application.NewCheckService(
			analyzer.New(opts.Logger.Named("analyzer")),
			report.New(),
			cfg,
			gitinfo.New(),
			opts.Logger,
		),
	}
}

func (c *checker) projectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return domain.ResolveProjectRoot(c.opts.ProjectPath, cwd), nil
}

// registerTools registers the luals-check MCP tools on the given server.
func registerTools(s *server.MCPServer, c *checker) {
	s.AddTool(
		mcplib.NewTool("luals_check",
			mcplib.WithDescription("Runs lua-language-server diagnostics on the project and returns the findings as JSON. "+
				"Problems at or above the fail threshold are counted in \"failures\"."),
			mcplib.WithString("fail",
				mcplib.Description("Minimum severity that counts as a failure (error, warning, info, hint)"),
			),
			mcplib.WithString("show",
				mcplib.Description("Minimum severity that is returned (error, warning, info, hint)"),
			),
		),
		c.handleCheck,
	)
}

func (c *checker) handleCheck(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	args := request.GetArguments()
	fail, err := optionalSeverity(args, "fail")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	show, err := optionalSeverity(args, "show")
	if err != nil {
		return errorResult(err.Error()), nil
	}

	root, err := c.projectRoot()
	if err != nil {
		return errorResult(err.Error()), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.svc.Check(ctx, application.CheckRequest{
		ProjectPath: c.opts.ProjectPath,
		ProjectRoot: root,
		Executable:  c.opts.Executable,
		Fail:        fail,
		Show:        show,
		Echo:        c.opts.Echo,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("check failed: %v", err)), nil
	}
	return jsonResult(res)
}

func optionalSeverity(args map[string]any, key string) (*domain.Severity, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	name, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%s must be a string", key)
	}
	if name == "" {
		return nil, nil
	}
	s, err := domain.ParseSeverity(name)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &s, nil
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
