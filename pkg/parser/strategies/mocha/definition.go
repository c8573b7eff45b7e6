// Package mocha registers the Mocha framework definition.
package mocha

import (
	"context"

	"github.com/specvital/stubgen/pkg/parser/framework"
)

const frameworkName = framework.FrameworkMocha

func init() {
	framework.Register(NewDefinition())
}

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name: frameworkName,
		ConfigFiles: []string{
			".mocharc.{cjs,js,json,jsonc,mjs,yaml,yml}",
		},
		Packages: []string{"mocha"},
		// The BDD interface always injects describe/it and there is no
		// bundled assertion module to import.
		GlobalsByDefault: true,
		ConfigParser:     &MochaConfigParser{},
		Priority:         framework.PriorityGeneric,
	}
}

type MochaConfigParser struct{}

func (p *MochaConfigParser) Parse(_ context.Context, configPath string, _ []byte) (*framework.ConfigScope, error) {
	// Mocha doesn't have a standard root directory config field.
	// Root is always the directory containing the config file.
	scope := framework.NewConfigScope(configPath, "")
	scope.Framework = frameworkName
	scope.GlobalsMode = true
	return scope, nil
}
