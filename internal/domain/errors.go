package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyOutput means the analyzer wrote nothing to stdout.
	ErrEmptyOutput = errors.New("lua-language-server didn't write any lines")
	// ErrNoPathToken means the last output line carries no report path.
	ErrNoPathToken = errors.New("last line of lua-language-server output doesn't contain any data")
)

// SpawnError reports that the analyzer process could not be started.
type SpawnError struct {
	Executable string
	Err        error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("starting %s: %v", e.Executable, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// AnalyzerError reports a non-zero analyzer exit status.
type AnalyzerError struct {
	ExitCode int
}

func (e *AnalyzerError) Error() string {
	return fmt.Sprintf("lua-language-server failed: exit status %d", e.ExitCode)
}

// StreamError reports a failure while draining the analyzer's stdout,
// including a panic recovered in the draining goroutine.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("reading lua-language-server output: %v", e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// ReportMissingError reports that the diagnostics file named by the analyzer does not exist.
type ReportMissingError struct {
	Path string
}

func (e *ReportMissingError) Error() string {
	return fmt.Sprintf("lua-language-server diagnostics file doesn't exist: %q", e.Path)
}

// ReadError reports an unreadable diagnostics file.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read diagnostics file %q: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// MalformedReportError reports a diagnostics file that is not a valid report.
type MalformedReportError struct {
	Path string
	Err  error
}

func (e *MalformedReportError) Error() string {
	return fmt.Sprintf("failed to deserialize diagnostics file %q: %v", e.Path, e.Err)
}

func (e *MalformedReportError) Unwrap() error { return e.Err }

// UnsupportedSchemeError reports a document URI that is not a file URI.
type UnsupportedSchemeError struct {
	URI    string
	Scheme string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("URL %q has unknown scheme %q; expected \"file\"", e.URI, e.Scheme)
}

// InvalidURIError reports a document URI that cannot be parsed or converted to a path.
type InvalidURIError struct {
	URI string
	Err error
}

func (e *InvalidURIError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to convert URL to file path: %q", e.URI)
	}
	return fmt.Sprintf("failed to parse URL %q: %v", e.URI, e.Err)
}

func (e *InvalidURIError) Unwrap() error { return e.Err }

// ProblemsFoundError is the aggregate outcome of a run in which diagnostics
// met the fail threshold.
type ProblemsFoundError struct {
	Count int
}

func (e *ProblemsFoundError) Error() string {
	return fmt.Sprintf("lua-language-server found %d problems", e.Count)
}
