// Package testkit turns a test binary into a stand-in for lua-language-server.
//
// A test package calls RunFakeAnalyzerIfRequested at the top of TestMain and
// points the runner at Executable(). The behavior is selected through
// environment variables, which the child process inherits.
package testkit

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
)

const (
	// EnvMode selects the fake behavior: report, fail, flood, empty, blank, args.
	EnvMode = "LUALS_CHECK_FAKE_MODE"
	// EnvReport is the report path printed on the last line in report and flood modes.
	EnvReport = "LUALS_CHECK_FAKE_REPORT"
	// EnvExitCode is the exit status used by fail mode.
	EnvExitCode = "LUALS_CHECK_FAKE_EXIT"
	// FloodBytes is written before the report line in flood mode; larger than
	// any OS pipe buffer.
	FloodBytes = 4 << 20
)

// RunFakeAnalyzerIfRequested behaves as the analyzer and exits when EnvMode
// is set. Otherwise it returns and the tests run normally.
func RunFakeAnalyzerIfRequested() {
	mode := os.Getenv(EnvMode)
	if mode == "" {
		return
	}

	out := bufio.NewWriter(os.Stdout)
	code := 0
	switch mode {
	case "report":
		fmt.Fprintln(out, "Initializing ...")
		fmt.Fprintln(out, ">>>>>>>>>>>>>>>>>>>> 100%")
		fmt.Fprintf(out, "Diagnosis completed, 3 problems found, see %s\n", os.Getenv(EnvReport))
	case "flood":
		line := strings.Repeat("x", 1023) + "\n"
		for written := 0; written < FloodBytes; written += len(line) {
			out.WriteString(line)
		}
		fmt.Fprintf(out, "Diagnosis completed, see %s\n", os.Getenv(EnvReport))
	case "fail":
		fmt.Fprintln(out, "something went wrong")
		code = 1
		if v, err := strconv.Atoi(os.Getenv(EnvExitCode)); err == nil {
			code = v
		}
	case "empty":
	case "blank":
		fmt.Fprint(out, "Diagnosis completed\n   \n")
	case "args":
		fmt.Fprintln(out, strings.Join(os.Args[1:], " "))
	default:
		fmt.Fprintf(os.Stderr, "unknown fake mode %q\n", mode)
		code = 2
	}
	out.Flush()
	os.Exit(code)
}

// Executable returns the path of the running test binary.
func Executable(t *testing.T) string {
	t.Helper()
	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("locating test binary: %v", err)
	}
	return exe
}

// UseFakeAnalyzer sets the fake mode and report path for child processes.
func UseFakeAnalyzer(t *testing.T, mode, reportPath string) {
	t.Helper()
	t.Setenv(EnvMode, mode)
	t.Setenv(EnvReport, reportPath)
}
