package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SettingsFilePatterns are the names of stubgen's settings file, in lookup order.
var SettingsFilePatterns = []string{".stubgen.yaml", ".stubgen.yml", ".stubgen.json"}

// ErrInvalidSettings is returned when a settings file cannot be decoded.
var ErrInvalidSettings = errors.New("config: invalid settings file")

// Settings is the project-level configuration read from a settings file.
// Zero values mean "use the built-in default".
type Settings struct {
	// TestDir is the directory name, next to the source file, that holds tests.
	TestDir string `yaml:"testDir" json:"testDir,omitempty"`
	// Suffix is inserted between the base name and the extension (foo.<suffix>.ts).
	Suffix string `yaml:"suffix" json:"suffix,omitempty"`
	// Framework forces the test framework instead of detecting it.
	Framework string `yaml:"framework" json:"framework,omitempty"`
	// Exclude lists directory names skipped by batch generation.
	Exclude []string `yaml:"exclude" json:"exclude,omitempty"`
	// Patterns lists doublestar globs a source file must match in batch generation.
	Patterns []string `yaml:"patterns" json:"patterns,omitempty"`
	// Workers is the batch generation concurrency.
	Workers int `yaml:"workers" json:"workers,omitempty"`
	// CommonJS toggles module.exports / exports.x detection.
	CommonJS *bool `yaml:"commonjs" json:"commonjs,omitempty"`

	// Path is the file the settings were loaded from, empty for defaults.
	Path string `yaml:"-" json:"-"`
}

// LoadSettings decodes the settings file at path. JSON files are valid YAML,
// so one decoder serves every supported extension.
func LoadSettings(path string) (Settings, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
	}

	var settings Settings
	if err := yaml.Unmarshal(content, &settings); err != nil {
		return Settings{}, fmt.Errorf("%w: %s: %v", ErrInvalidSettings, path, err)
	}
	if settings.Workers < 0 {
		return Settings{}, fmt.Errorf("%w: %s: workers must not be negative", ErrInvalidSettings, path)
	}

	settings.Path = path
	return settings, nil
}

// FindSettings loads the settings file nearest to filePath. It returns zero
// Settings and no error when there is none.
func (r *Resolver) FindSettings(filePath string) (Settings, error) {
	path, found := r.ResolveConfig(filePath, SettingsFilePatterns)
	if !found {
		return Settings{}, nil
	}
	return LoadSettings(path)
}

// Merge returns s with every zero field filled from fallback.
func (s Settings) Merge(fallback Settings) Settings {
	if s.TestDir == "" {
		s.TestDir = fallback.TestDir
	}
	if s.Suffix == "" {
		s.Suffix = fallback.Suffix
	}
	if s.Framework == "" {
		s.Framework = fallback.Framework
	}
	if len(s.Exclude) == 0 {
		s.Exclude = fallback.Exclude
	}
	if len(s.Patterns) == 0 {
		s.Patterns = fallback.Patterns
	}
	if s.Workers == 0 {
		s.Workers = fallback.Workers
	}
	if s.CommonJS == nil {
		s.CommonJS = fallback.CommonJS
	}
	if s.Path == "" {
		s.Path = fallback.Path
	}
	return s
}
