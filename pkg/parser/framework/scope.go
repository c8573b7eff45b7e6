package framework

import (
	"path/filepath"
	"strings"
)

// ConfigScope is what a framework config file says about the tests below it.
type ConfigScope struct {
	ConfigPath string
	BaseDir    string
	Framework  string
	RootDir    string

	// GlobalsMode: when true, test files don't need explicit imports (e.g., Jest default).
	GlobalsMode bool
}

// NewConfigScope creates a ConfigScope with root resolved relative to config directory.
func NewConfigScope(configPath string, root string) *ConfigScope {
	configDir := filepath.Dir(configPath)

	var baseDir string
	if root != "" {
		baseDir = filepath.Clean(filepath.Join(configDir, root))
	} else {
		baseDir = configDir
	}

	return &ConfigScope{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		RootDir:    root,
	}
}

// Contains checks if filePath is within this config's BaseDir.
func (s *ConfigScope) Contains(filePath string) bool {
	if s == nil || s.BaseDir == "" {
		return false
	}

	rel, err := filepath.Rel(filepath.Clean(s.BaseDir), filepath.Clean(filePath))
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return rel != ".." && !strings.HasPrefix(rel, "../")
}

// Depth returns the directory depth of BaseDir (used for selecting nearest config).
func (s *ConfigScope) Depth() int {
	if s == nil || s.BaseDir == "" {
		return 0
	}

	baseDir := filepath.ToSlash(filepath.Clean(s.BaseDir))
	if baseDir == "." || baseDir == "/" {
		return 0
	}

	return strings.Count(baseDir, "/")
}
