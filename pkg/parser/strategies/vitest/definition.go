// Package vitest registers the Vitest framework definition.
package vitest

import (
	"context"
	"regexp"

	"github.com/specvital/stubgen/pkg/parser/detection/extraction"
	"github.com/specvital/stubgen/pkg/parser/framework"
)

const frameworkName = framework.FrameworkVitest

func init() {
	framework.Register(NewDefinition())
}

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name: frameworkName,
		ConfigFiles: []string{
			"vitest.config.{js,ts,mjs,mts,cjs,cts}",
			"vitest.workspace.{js,ts,mjs,mts}",
		},
		Packages:         []string{"vitest"},
		GlobalsByDefault: false,
		ImportSource:     "vitest",
		ConfigParser:     &VitestConfigParser{},
		Priority:         framework.PrioritySpecialized,
	}
}

type VitestConfigParser struct{}

func (p *VitestConfigParser) Parse(ctx context.Context, configPath string, content []byte) (*framework.ConfigScope, error) {
	root := parseRoot(content)
	scope := framework.NewConfigScope(configPath, root)
	scope.Framework = frameworkName
	scope.GlobalsMode = parseGlobals(ctx, content)
	return scope, nil
}

var (
	configRootPattern    = regexp.MustCompile(`\broot\s*:\s*['"]([^'"]+)['"]`)
	configGlobalsPattern = regexp.MustCompile(`globals\s*:\s*true`)
)

func parseRoot(content []byte) string {
	if match := configRootPattern.FindSubmatch(content); match != nil {
		return string(match[1])
	}
	return ""
}

// parseGlobals ignores settings inside comments and strings.
func parseGlobals(ctx context.Context, content []byte) bool {
	return extraction.MatchPatternInCode(ctx, content, configGlobalsPattern)
}
