package application

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/openkraft/luals-check/internal/domain"
)

// CheckRequest describes one run of the check pipeline.
type CheckRequest struct {
	// ProjectPath is passed to the analyzer exactly as the user gave it.
	ProjectPath string
	// ProjectRoot is the absolute form of ProjectPath.
	ProjectRoot string
	// Executable, Fail and Show override the project config when set.
	Executable string
	Fail       *domain.Severity
	Show       *domain.Severity
	// Echo receives the analyzer's stdout live.
	Echo io.Writer
}

// CheckService orchestrates the check pipeline:
// load config -> run analyzer -> locate report -> load report -> filter.
type CheckService struct {
	runner domain.AnalyzerRunner
	loader domain.ReportLoader
	config domain.ConfigLoader
	git    domain.GitInfo
	logger hclog.Logger
}

func NewCheckService(
	runner domain.AnalyzerRunner,
	loader domain.ReportLoader,
	config domain.ConfigLoader,
	git domain.GitInfo,
	logger hclog.Logger,
) *CheckService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &CheckService{
		runner: runner,
		loader: loader,
		config: config,
		git:    git,
		logger: logger,
	}
}

// Check runs the analyzer and returns the filtered findings. Diagnostics
// meeting the fail threshold are reported through CheckResult.Err, not as
// the returned error, so callers can render the result first.
func (s *CheckService) Check(ctx context.Context, req CheckRequest) (*domain.CheckResult, error) {
	// 1. Resolve configuration
	cfg, err := s.config.Load(req.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	thresholds := s.thresholds(cfg, req)
	executable := req.Executable
	if executable == "" {
		executable = cfg.Executable()
	}

	// 2. Run the analyzer
	run, err := s.runner.Run(ctx, domain.RunRequest{
		Executable:  executable,
		ProjectPath: req.ProjectPath,
		Echo:        req.Echo,
	})
	if err != nil {
		return nil, err
	}

	// 3. Locate and load the report
	reportPath, err := s.loader.ExtractReportPath(string(run.Stdout))
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loading diagnostics", "path", reportPath)

	report, err := s.loader.Load(reportPath)
	if err != nil {
		return nil, err
	}

	// 4. Filter
	result, err := s.Evaluate(report, req.ProjectRoot, thresholds, cfg)
	if err != nil {
		return nil, err
	}
	result.ReportPath = reportPath
	result.CommitHash = s.commitHash(req.ProjectRoot)

	s.logger.Debug("check finished",
		"files", len(report), "shown", len(result.Findings), "failures", result.Failures)
	return result, nil
}

// Evaluate applies project membership and severity thresholds to a loaded
// report. Documents are visited in URI order so output is reproducible.
func (s *CheckService) Evaluate(report domain.Report, root string, thresholds domain.Thresholds, cfg domain.ProjectConfig) (*domain.CheckResult, error) {
	thresholds = thresholds.Normalize()
	result := &domain.CheckResult{
		ProjectRoot: root,
		Thresholds:  thresholds,
		Findings:    []domain.Finding{},
	}

	for _, uri := range report.URIs() {
		rel, err := domain.Relativize(uri, root)
		if err != nil {
			return nil, err
		}

		if !domain.InProject(uri, root) {
			s.logger.Debug("ignoring diagnostics in out-of-project path", "path", rel)
			result.SkippedFiles = append(result.SkippedFiles, rel)
			continue
		}
		if cfg.IsExcluded(rel) {
			s.logger.Debug("ignoring diagnostics in excluded path", "path", rel)
			result.SkippedFiles = append(result.SkippedFiles, rel)
			continue
		}

		for _, d := range report[uri] {
			if !thresholds.Shows(d.Severity) {
				continue
			}
			failing := thresholds.Fails(d.Severity)
			if failing {
				result.Failures++
			}
			result.Findings = append(result.Findings, domain.Finding{
				File:       rel,
				URI:        uri,
				Diagnostic: d,
				Failing:    failing,
			})
		}
	}

	return result, nil
}

func (s *CheckService) thresholds(cfg domain.ProjectConfig, req CheckRequest) domain.Thresholds {
	t := cfg.Thresholds(domain.DefaultThresholds())
	if req.Fail != nil {
		t.Fail = *req.Fail
	}
	if req.Show != nil {
		t.Show = *req.Show
	}
	return t.Normalize()
}

func (s *CheckService) commitHash(root string) string {
	if s.git == nil || !s.git.IsGitRepo(root) {
		return ""
	}
	hash, err := s.git.CommitHash(root)
	if err != nil {
		s.logger.Debug("no commit hash", "error", err)
		return ""
	}
	return hash
}
