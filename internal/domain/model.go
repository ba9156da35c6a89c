package domain

// Finding is a diagnostic that passed the show threshold, paired with the
// display path of its document.
type Finding struct {
	File       string     `json:"file"`
	URI        string     `json:"uri"`
	Diagnostic Diagnostic `json:"diagnostic"`
	Failing    bool       `json:"failing"`
}

// CheckResult is the outcome of one pipeline run.
type CheckResult struct {
	ProjectRoot  string     `json:"project_root"`
	ReportPath   string     `json:"report_path"`
	Thresholds   Thresholds `json:"thresholds"`
	Findings     []Finding  `json:"findings"`
	Failures     int        `json:"failures"`
	SkippedFiles []string   `json:"skipped_files,omitempty"`
	CommitHash   string     `json:"commit_hash,omitempty"`
}

// Err returns the aggregate outcome: nil when nothing met the fail threshold.
func (r *CheckResult) Err() error {
	if r.Failures > 0 {
		return &ProblemsFoundError{Count: r.Failures}
	}
	return nil
}
