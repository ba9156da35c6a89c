package tui

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// DetectWidth returns the column count of f when it is a terminal.
func DetectWidth(f *os.File) int {
	if f == nil {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// SupportsColor reports whether styled output should be written to f.
// NO_COLOR and TERM=dumb disable color, CLICOLOR_FORCE and FORCE_COLOR force it.
func SupportsColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if v := os.Getenv("CLICOLOR_FORCE"); v != "" && v != "0" {
		return true
	}
	if v := os.Getenv("FORCE_COLOR"); v != "" && v != "0" {
		return true
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}
