// Package detection decides which test framework a generated test file
// targets, and whether that framework needs describe/it/expect imported.
package detection

import (
	"github.com/specvital/stubgen/pkg/parser/framework"
)

type Source string

const (
	SourceUnknown     Source = "unknown"
	SourceScopeConfig Source = "scope_config"
	SourcePackageJSON Source = "package_json"
	SourceSettings    Source = "settings"
	SourceImports     Source = "imports"
)

type Result struct {
	ConfigPath string
	Framework  string
	// Globals reports whether describe/it/expect are available without imports.
	Globals bool
	// Preamble is the import line a generated test file starts with, if any.
	Preamble string
	Source   Source
}

func (r Result) IsUnknown() bool {
	return r.Framework == "" || r.Framework == framework.FrameworkUnknown
}

func Unknown() Result {
	return Result{
		Framework: framework.FrameworkUnknown,
		Source:    SourceUnknown,
	}
}

func FromScopeConfig(def *framework.Definition, scope *framework.ConfigScope) Result {
	return Result{
		ConfigPath: scope.ConfigPath,
		Framework:  def.Name,
		Globals:    scope.GlobalsMode,
		Preamble:   def.Preamble(scope.GlobalsMode),
		Source:     SourceScopeConfig,
	}
}

func FromPackageJSON(def *framework.Definition, packagePath string) Result {
	return Result{
		ConfigPath: packagePath,
		Framework:  def.Name,
		Globals:    def.GlobalsByDefault,
		Preamble:   def.Preamble(def.GlobalsByDefault),
		Source:     SourcePackageJSON,
	}
}

// FromImports builds the result for a framework an existing test file
// imports. Importing from the framework's ImportSource means describe/it
// are imported explicitly, so globals are off.
func FromImports(def *framework.Definition, testPath, specifier string) Result {
	globals := def.GlobalsByDefault
	if def.ImportSource != "" && specifier == def.ImportSource {
		globals = false
	}
	return Result{
		ConfigPath: testPath,
		Framework:  def.Name,
		Globals:    globals,
		Preamble:   def.Preamble(globals),
		Source:     SourceImports,
	}
}
