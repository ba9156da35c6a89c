package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Severity is an LSP diagnostic severity. Lower values are stronger.
type Severity int

const (
	SeverityError       Severity = 1
	SeverityWarning     Severity = 2
	SeverityInformation Severity = 3
	SeverityHint        Severity = 4
)

// Severities lists every recognized severity, strongest first.
var Severities = []Severity{
	SeverityError,
	SeverityWarning,
	SeverityInformation,
	SeverityHint,
}

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return ""
	}
}

// Valid reports whether s is one of the four LSP severities.
func (s Severity) Valid() bool {
	return s >= SeverityError && s <= SeverityHint
}

// Compare returns -1 when a is stronger than b, 1 when weaker, 0 when equal.
func Compare(a, b Severity) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Max returns the weaker of a and b.
func Max(a, b Severity) Severity {
	if Compare(a, b) >= 0 {
		return a
	}
	return b
}

// AtLeast reports whether s is as strong as or stronger than threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return Compare(s, threshold) <= 0
}

// ParseSeverity accepts the names used on the command line and in config files.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info", "information":
		return SeverityInformation, nil
	case "hint":
		return SeverityHint, nil
	default:
		return 0, fmt.Errorf("unknown severity %q (valid: error, warning, info, hint)", name)
	}
}

// UnmarshalJSON accepts the numeric LSP encoding and, for hand-written
// reports, a severity name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = Severity(n)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("severity must be a number or a name: %s", data)
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalYAML reads a severity name from config files.
func (s *Severity) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseSeverity(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*s = parsed
	return nil
}

// MarshalYAML writes the severity name.
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// Thresholds holds the fail and show cutoffs of a run.
type Thresholds struct {
	Fail Severity `json:"fail"`
	Show Severity `json:"show"`
}

// DefaultThresholds fails on warnings and shows everything.
func DefaultThresholds() Thresholds {
	return Thresholds{Fail: SeverityWarning, Show: SeverityHint}
}

// Normalize coerces Show up to Fail so that every failing diagnostic is shown.
func (t Thresholds) Normalize() Thresholds {
	if Compare(t.Fail, t.Show) > 0 {
		t.Show = t.Fail
	}
	return t
}

// Shows reports whether a diagnostic with the given severity is rendered.
// A diagnostic without severity is always shown.
func (t Thresholds) Shows(sev *Severity) bool {
	if sev == nil {
		return true
	}
	return sev.AtLeast(t.Show)
}

// Fails reports whether a diagnostic with the given severity counts as a
// failure. A diagnostic without severity never does.
func (t Thresholds) Fails(sev *Severity) bool {
	if sev == nil {
		return false
	}
	return sev.AtLeast(t.Fail)
}

// MarshalJSON writes the threshold names rather than LSP numbers.
func (t Thresholds) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Fail string `json:"fail"`
		Show string `json:"show"`
	}{t.Fail.String(), t.Show.String()})
}
