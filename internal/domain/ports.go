package domain

import (
	"context"
	"io"
)

// RunRequest describes one analyzer invocation.
type RunRequest struct {
	Executable  string
	ProjectPath string
	// Echo receives the analyzer's stdout as it arrives. Nil discards it.
	Echo io.Writer
}

// RunResult holds what the analyzer wrote to stdout and how it exited.
type RunResult struct {
	Stdout   []byte
	ExitCode int
}

// AnalyzerRunner runs the external analyzer to completion.
type AnalyzerRunner interface {
	Run(ctx context.Context, req RunRequest) (*RunResult, error)
}

// ReportLoader locates and reads the diagnostics report named in analyzer output.
type ReportLoader interface {
	ExtractReportPath(output string) (string, error)
	Load(path string) (Report, error)
}

// ConfigLoader loads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// GitInfo reports version-control provenance of a project.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
	RemoteURL(projectPath string) (string, error)
}
