package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/openkraft/luals-check/internal/adapters/outbound/analyzer"
	"github.com/openkraft/luals-check/internal/adapters/outbound/config"
	"github.com/openkraft/luals-check/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/luals-check/internal/adapters/outbound/logger"
	"github.com/openkraft/luals-check/internal/adapters/outbound/report"
	"github.com/openkraft/luals-check/internal/adapters/outbound/sarif"
	"github.com/openkraft/luals-check/internal/adapters/outbound/tui"
	"github.com/openkraft/luals-check/internal/application"
	"github.com/openkraft/luals-check/internal/domain"
)

const (
	formatText  = "text"
	formatJSON  = "json"
	formatSARIF = "sarif"

	colorAuto = "auto"
	colorOn   = "on"
	colorOff  = "off"
)

type checkOptions struct {
	executable string
	fail       string
	show       string
	format     string
	color      string
	width      int
	logLevel   string
}

func defaultCheckOptions() *checkOptions {
	d := domain.DefaultThresholds()
	return &checkOptions{
		fail:   d.Fail.String(),
		show:   d.Show.String(),
		format: formatText,
		color:  colorAuto,
	}
}

func (o *checkOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.executable, "lua-language-server", "c", "",
		"Path to the lua-language-server executable (default from .luals-check.yaml, then \"lua-language-server\")")
	f.StringVar(&o.fail, "fail", o.fail, "Minimum severity that fails the check (error, warning, info, hint)")
	f.StringVar(&o.show, "show", o.show, "Minimum severity that is printed (error, warning, info, hint)")
	f.StringVar(&o.format, "format", o.format, "Output format (text, json, sarif)")
	f.StringVar(&o.color, "color", o.color, "Colorize text output (auto, on, off)")
	f.IntVar(&o.width, "width", 0, "Wrap width for text output (0 detects the terminal width)")
	f.StringVar(&o.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, off)")
}

// severityFlag parses a threshold flag, returning nil when the user left it
// unset so the project config can supply the value.
func severityFlag(cmd *cobra.Command, name, value string) (*domain.Severity, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	s, err := domain.ParseSeverity(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return &s, nil
}

func newCheckService(log hclog.Logger) *application.CheckService {
	return application.NewCheckService(
		analyzer.New(log.Named("analyzer")),
		report.New(),
		config.New(),
		gitinfo.New(),
		log,
	)
}

func runCheck(cmd *cobra.Command, projectPath string, opts *checkOptions) error {
	switch opts.format {
	case formatText, formatJSON, formatSARIF:
	default:
		return fmt.Errorf("unknown format %q (valid: text, json, sarif)", opts.format)
	}
	switch opts.color {
	case colorAuto, colorOn, colorOff:
	default:
		return fmt.Errorf("unknown color mode %q (valid: auto, on, off)", opts.color)
	}

	fail, err := severityFlag(cmd, "fail", opts.fail)
	if err != nil {
		return err
	}
	show, err := severityFlag(cmd, "show", opts.show)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	out := cmd.OutOrStdout()
	// Structured formats own stdout, so the analyzer progress goes to stderr.
	echo := out
	if opts.format != formatText {
		echo = cmd.ErrOrStderr()
	}

	log := logger.New("luals-check", opts.logLevel, cmd.ErrOrStderr())
	res, err := newCheckService(log).Check(cmd.Context(), application.CheckRequest{
		ProjectPath: projectPath,
		ProjectRoot: domain.ResolveProjectRoot(projectPath, cwd),
		Executable:  opts.executable,
		Fail:        fail,
		Show:        show,
		Echo:        echo,
	})
	if err != nil {
		return err
	}

	switch opts.format {
	case formatJSON:
		err = renderCheckJSON(out, res)
	case formatSARIF:
		err = sarif.Write(out, res, provenance(res, log))
	default:
		r := tui.NewDiagnosticRenderer(tui.Options{
			Color:       useColor(opts.color, out),
			Width:       textWidth(opts.width, out),
			ProjectRoot: res.ProjectRoot,
		})
		_, err = io.WriteString(out, r.RenderResult(res))
	}
	if err != nil {
		return err
	}

	return res.Err()
}

func renderCheckJSON(w io.Writer, res *domain.CheckResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func provenance(res *domain.CheckResult, log hclog.Logger) *sarif.Provenance {
	git := gitinfo.New()
	if !git.IsGitRepo(res.ProjectRoot) {
		return nil
	}
	remote, err := git.RemoteURL(res.ProjectRoot)
	if err != nil {
		log.Debug("no repository URL for provenance", "error", err)
		return nil
	}
	return &sarif.Provenance{RepositoryURL: remote, Commit: res.CommitHash}
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case colorOn:
		return true
	case colorOff:
		return false
	}
	f, ok := w.(*os.File)
	return ok && tui.SupportsColor(f)
}

func textWidth(width int, w io.Writer) int {
	if width > 0 {
		return width
	}
	if f, ok := w.(*os.File); ok {
		return tui.DetectWidth(f)
	}
	return tui.DefaultWidth
}
