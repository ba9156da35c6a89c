package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openkraft/luals-check/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project config file looked up in the project root.
const FileName = ".luals-check.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .luals-check.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .luals-check.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	// A relative analyzer path is relative to the config file, not the cwd.
	if cfg.LuaLanguageServer != "" && !filepath.IsAbs(cfg.LuaLanguageServer) &&
		filepath.Base(cfg.LuaLanguageServer) != cfg.LuaLanguageServer {
		cfg.LuaLanguageServer = filepath.Join(projectPath, cfg.LuaLanguageServer)
	}

	return cfg, nil
}
