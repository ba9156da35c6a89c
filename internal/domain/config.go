package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultExecutable is looked up on PATH when nothing else is configured.
const DefaultExecutable = "lua-language-server"

// ProjectConfig holds project-level configuration loaded from .luals-check.yaml.
// Pointer types distinguish "not specified" from zero values.
type ProjectConfig struct {
	LuaLanguageServer string    `yaml:"lua_language_server" json:"lua_language_server,omitempty"`
	Fail              *Severity `yaml:"fail"                json:"fail,omitempty"`
	Show              *Severity `yaml:"show"                json:"show,omitempty"`
	ExcludePaths      []string  `yaml:"exclude_paths"       json:"exclude_paths,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// Executable returns the configured analyzer path or the default.
func (c ProjectConfig) Executable() string {
	if c.LuaLanguageServer != "" {
		return c.LuaLanguageServer
	}
	return DefaultExecutable
}

// Thresholds overlays the configured severities on base.
func (c ProjectConfig) Thresholds(base Thresholds) Thresholds {
	if c.Fail != nil {
		base.Fail = *c.Fail
	}
	if c.Show != nil {
		base.Show = *c.Show
	}
	return base
}

// IsExcluded reports whether the project-relative path falls under one of
// the excluded directories.
func (c ProjectConfig) IsExcluded(relPath string) bool {
	for _, p := range c.ExcludePaths {
		if IsWithin(relPath, filepath.Clean(filepath.FromSlash(p))) {
			return true
		}
	}
	return false
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.Fail != nil && !c.Fail.Valid() {
		return fmt.Errorf("invalid fail severity %d", *c.Fail)
	}
	if c.Show != nil && !c.Show.Valid() {
		return fmt.Errorf("invalid show severity %d", *c.Show)
	}
	for _, p := range c.ExcludePaths {
		if p == "" {
			return fmt.Errorf("empty entry in exclude_paths")
		}
		clean := filepath.Clean(filepath.FromSlash(p))
		if filepath.IsAbs(clean) {
			return fmt.Errorf("exclude path %q must be relative to the project root", p)
		}
		if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return fmt.Errorf("exclude path %q escapes the project root", p)
		}
	}
	return nil
}
