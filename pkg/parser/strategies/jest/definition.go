// Package jest registers the Jest framework definition.
package jest

import (
	"context"
	"regexp"

	"github.com/specvital/stubgen/pkg/parser/detection/extraction"
	"github.com/specvital/stubgen/pkg/parser/framework"
)

const frameworkName = framework.FrameworkJest

func init() {
	framework.Register(NewDefinition())
}

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name: frameworkName,
		ConfigFiles: []string{
			"jest.config.{js,ts,mjs,cjs,json}",
		},
		Packages:         []string{"jest", "ts-jest", "@jest/globals"},
		GlobalsByDefault: true,
		ImportSource:     "@jest/globals",
		ConfigParser:     &JestConfigParser{},
		Priority:         framework.PriorityGeneric,
	}
}

type JestConfigParser struct{}

func (p *JestConfigParser) Parse(ctx context.Context, configPath string, content []byte) (*framework.ConfigScope, error) {
	rootDir := parseRootDir(content)
	scope := framework.NewConfigScope(configPath, rootDir)
	scope.Framework = frameworkName
	scope.GlobalsMode = !parseInjectGlobalsFalse(ctx, content) // Jest defaults to true
	return scope, nil
}

var (
	configRootDirPattern      = regexp.MustCompile(`["']?rootDir["']?\s*:\s*['"]([^'"]+)['"]`)
	injectGlobalsFalsePattern = regexp.MustCompile(`["']?injectGlobals["']?\s*:\s*false`)
)

func parseRootDir(content []byte) string {
	if match := configRootDirPattern.FindSubmatch(content); match != nil {
		rootDir := string(match[1])
		if rootDir == "<rootDir>" {
			return ""
		}
		return rootDir
	}
	return ""
}

func parseInjectGlobalsFalse(ctx context.Context, content []byte) bool {
	return extraction.MatchPatternInCode(ctx, content, injectGlobalsFalsePattern)
}
