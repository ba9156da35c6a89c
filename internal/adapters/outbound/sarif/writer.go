package sarif

import (
	"fmt"
	"io"
	"path/filepath"

	gosarif "github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/openkraft/luals-check/internal/domain"
)

const (
	ToolName           = "lua-language-server"
	ToolInformationURI = "https://github.com/LuaLS/lua-language-server"
	// DefaultRuleID is used for diagnostics that carry no code.
	DefaultRuleID = "luals"
)

// Provenance identifies the revision the findings were produced from.
type Provenance struct {
	RepositoryURL string
	Commit        string
}

// Build converts a check result into a SARIF 2.1.0 report with a single run.
func Build(res *domain.CheckResult, prov *Provenance) (*gosarif.Report, error) {
	report, err := gosarif.New(gosarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("creating sarif report: %w", err)
	}

	run := gosarif.NewRunWithInformationURI(ToolName, ToolInformationURI)
	if prov != nil && prov.RepositoryURL != "" {
		details := &gosarif.VersionControlDetails{RepositoryURI: &prov.RepositoryURL}
		if prov.Commit != "" {
			details.RevisionID = &prov.Commit
		}
		run.VersionControlProvenance = append(run.VersionControlProvenance, details)
	}

	seen := make(map[string]bool)
	for _, f := range res.Findings {
		ruleID := ruleIDFor(f.Diagnostic)
		if !seen[ruleID] {
			seen[ruleID] = true
			run.AddRule(ruleID).
				WithDescription(ruleDescription(ruleID))
		}

		result := gosarif.NewRuleResult(ruleID).
			WithMessage(gosarif.NewTextMessage(f.Diagnostic.Message)).
			WithLevel(Level(f.Diagnostic.Severity)).
			WithLocations([]*gosarif.Location{location(f.File, f.Diagnostic.Range)})

		for _, info := range f.Diagnostic.RelatedInformation {
			if f.Diagnostic.IsRedundant(info) {
				continue
			}
			loc := location(artifactPath(info.Location.URI, res.ProjectRoot), info.Location.Range)
			if info.Message != "" {
				loc.Message = gosarif.NewTextMessage(info.Message)
			}
			result.RelatedLocations = append(result.RelatedLocations, loc)
		}

		if f.Failing {
			result.Properties = gosarif.Properties{"failing": true}
		}
		run.AddResult(result)
	}

	report.AddRun(run)
	return report, nil
}

// Write builds the report and writes it to w as indented JSON.
func Write(w io.Writer, res *domain.CheckResult, prov *Provenance) error {
	report, err := Build(res, prov)
	if err != nil {
		return err
	}
	if err := report.PrettyWrite(w); err != nil {
		return fmt.Errorf("writing sarif report: %w", err)
	}
	return nil
}

// Level maps an analyzer severity onto a SARIF result level.
func Level(sev *domain.Severity) string {
	if sev == nil {
		return "none"
	}
	switch *sev {
	case domain.SeverityError:
		return "error"
	case domain.SeverityWarning:
		return "warning"
	case domain.SeverityInformation, domain.SeverityHint:
		return "note"
	default:
		return "none"
	}
}

func ruleIDFor(d domain.Diagnostic) string {
	if d.Code == nil || d.Code.String() == "" {
		return DefaultRuleID
	}
	return d.Code.String()
}

func ruleDescription(id string) string {
	if id == DefaultRuleID {
		return "lua-language-server diagnostic"
	}
	return "lua-language-server diagnostic " + id
}

// location converts a zero-based range to SARIF's one-based region.
func location(path string, r domain.Range) *gosarif.Location {
	region := gosarif.NewRegion().
		WithStartLine(r.Start.Line + 1).
		WithStartColumn(r.Start.Character + 1).
		WithEndLine(r.End.Line + 1).
		WithEndColumn(r.End.Character + 1)

	return gosarif.NewLocation().
		WithPhysicalLocation(
			gosarif.NewPhysicalLocation().
				WithArtifactLocation(gosarif.NewArtifactLocation().WithUri(filepath.ToSlash(path))).
				WithRegion(region),
		)
}

// artifactPath prefers a project-relative path and falls back to the raw URI.
func artifactPath(uri, root string) string {
	rel, err := domain.Relativize(uri, root)
	if err != nil {
		return uri
	}
	return rel
}
