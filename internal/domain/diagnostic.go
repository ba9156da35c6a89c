package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Position is a zero-based line/character pair.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range spans two positions. A zero-width range is a point.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// IsPoint reports whether the range starts and ends at the same position.
func (r Range) IsPoint() bool { return r.Start == r.End }

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

func (r Range) String() string {
	if r.IsPoint() {
		return r.Start.String()
	}
	return r.Start.String() + "-" + r.End.String()
}

// Location is a range inside the document identified by URI.
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// RelatedInformation points at a secondary location of a diagnostic.
type RelatedInformation struct {
	Location Location `json:"location"`
	Message  string   `json:"message"`
}

// Code is a diagnostic code, which the analyzer may encode as a number or a string.
type Code struct {
	Number   int
	Text     string
	IsNumber bool
}

func (c Code) String() string {
	if c.IsNumber {
		return strconv.Itoa(c.Number)
	}
	return c.Text
}

func (c *Code) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Code{Text: s}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("code must be a number or a string: %s", data)
	}
	*c = Code{Number: n, IsNumber: true}
	return nil
}

func (c Code) MarshalJSON() ([]byte, error) {
	if c.IsNumber {
		return json.Marshal(c.Number)
	}
	return json.Marshal(c.Text)
}

// Diagnostic is one issue reported by the analyzer.
type Diagnostic struct {
	Range              Range                `json:"range"`
	Severity           *Severity            `json:"severity,omitempty"`
	Code               *Code                `json:"code,omitempty"`
	Source             string               `json:"source,omitempty"`
	Message            string               `json:"message"`
	RelatedInformation []RelatedInformation `json:"relatedInformation,omitempty"`
}

// IsRedundant reports whether info merely restates the diagnostic itself.
func (d Diagnostic) IsRedundant(info RelatedInformation) bool {
	return info.Location.Range == d.Range &&
		(info.Message == "" || info.Message == d.Message)
}

// Report maps document URIs to their diagnostics. Map order is random, so
// consumers iterate via URIs.
type Report map[string][]Diagnostic

// URIs returns the report keys in lexicographic order.
func (r Report) URIs() []string {
	uris := make([]string, 0, len(r))
	for uri := range r {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}
