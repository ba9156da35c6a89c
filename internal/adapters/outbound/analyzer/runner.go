package analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/openkraft/luals-check/internal/domain"
)

// CheckLevel is the weakest level lua-language-server accepts for --checklevel.
// Everything it reports is filtered here instead.
const CheckLevel = "Information"

// Runner implements domain.AnalyzerRunner by executing lua-language-server.
type Runner struct {
	logger hclog.Logger
	stderr io.Writer
}

// New creates a Runner. The analyzer's stderr is passed through to ours.
func New(logger hclog.Logger) *Runner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Runner{logger: logger, stderr: os.Stderr}
}

// buildCommandArgs constructs the command-line arguments for a check run.
func buildCommandArgs(projectPath string) []string {
	return []string{"--check", projectPath, "--checklevel", CheckLevel}
}

// Run starts the analyzer and drains its stdout on a separate goroutine while
// waiting for it to exit. The drain is joined after the exit status is known
// and before anything is returned, so callers never see partial output.
func (r *Runner) Run(ctx context.Context, req domain.RunRequest) (*domain.RunResult, error) {
	echo := req.Echo
	if echo == nil {
		echo = io.Discard
	}

	// Hand the child the write end of a plain pipe so that cmd.Wait does not
	// close the read end behind the drain's back.
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, &domain.SpawnError{Executable: req.Executable, Err: fmt.Errorf("creating stdout pipe: %w", err)}
	}

	cmd := exec.CommandContext(ctx, req.Executable, buildCommandArgs(req.ProjectPath)...)
	cmd.Stdout = pw
	cmd.Stderr = r.stderr
	r.logger.Debug("starting analyzer", "cmd", cmd.Args)

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, &domain.SpawnError{Executable: req.Executable, Err: err}
	}
	// The child owns its copy now; ours must go or the drain never sees EOF.
	pw.Close()

	var (
		g        errgroup.Group
		captured []byte
	)
	g.Go(func() error {
		defer pr.Close()
		out, err := drain(pr, echo)
		captured = out
		if err != nil {
			// Keep reading so a child blocked on a full pipe can still exit.
			_, _ = io.Copy(io.Discard, pr)
		}
		return err
	})

	waitErr := cmd.Wait()
	drainErr := g.Wait()

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			r.logger.Debug("analyzer exited with failure", "status", exitErr.ExitCode())
			return nil, &domain.AnalyzerError{ExitCode: exitErr.ExitCode()}
		}
		return nil, fmt.Errorf("waiting for lua-language-server: %w", waitErr)
	}
	if drainErr != nil {
		return nil, &domain.StreamError{Err: drainErr}
	}

	r.logger.Debug("analyzer finished", "bytes", len(captured))
	return &domain.RunResult{Stdout: captured, ExitCode: cmd.ProcessState.ExitCode()}, nil
}

// drain copies r to echo while capturing everything read. A panic raised by
// the echo writer is returned as an error.
func drain(r io.Reader, echo io.Writer) (out []byte, err error) {
	var buf bytes.Buffer
	buf.Grow(4096)

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic while draining output: %v", p)
		}
		out = buf.Bytes()
	}()

	_, err = io.Copy(io.MultiWriter(&buf, echo), r)
	return out, err
}
