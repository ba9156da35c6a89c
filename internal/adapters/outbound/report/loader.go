package report

import (
	"bufio"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/openkraft/luals-check/internal/domain"
)

// FileLoader implements domain.ReportLoader for the JSON file that
// lua-language-server writes in --check mode.
type FileLoader struct{}

// New creates a FileLoader.
func New() *FileLoader { return &FileLoader{} }

// ExtractReportPath returns the last whitespace-separated token of the last
// line of output. The analyzer prints the report location there.
func (l *FileLoader) ExtractReportPath(output string) (string, error) {
	var (
		last  string
		found bool
	)
	sc := bufio.NewScanner(strings.NewReader(output))
	sc.Buffer(make([]byte, 0, 64*1024), len(output)+1)
	for sc.Scan() {
		last = sc.Text()
		found = true
	}
	if !found {
		return "", domain.ErrEmptyOutput
	}

	tokens := strings.FieldsFunc(last, isASCIISpace)
	if len(tokens) == 0 {
		return "", domain.ErrNoPathToken
	}
	return tokens[len(tokens)-1], nil
}

// Load reads and decodes the report at path.
func (l *FileLoader) Load(path string) (domain.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.ReportMissingError{Path: path}
		}
		return nil, &domain.ReadError{Path: path, Err: err}
	}

	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, &domain.MalformedReportError{Path: path, Err: err}
	}
	if report == nil {
		report = domain.Report{}
	}
	return report, nil
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
