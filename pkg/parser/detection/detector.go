package detection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/specvital/stubgen/pkg/config"
	"github.com/specvital/stubgen/pkg/domain"
	"github.com/specvital/stubgen/pkg/parser/detection/extraction"
	"github.com/specvital/stubgen/pkg/parser/framework"
)

// ErrUnknownFramework is returned when a forced framework is not registered.
var ErrUnknownFramework = errors.New("detection: unknown framework")

var packageJSONPatterns = []string{"package.json"}

// scopeCacheSize bounds the parsed config scopes a detector keeps. A batch
// run asks for the same few config files once per source file.
const scopeCacheSize = 256

// Detector resolves the test framework for a source file in two stages:
//  1. Config scope: the nearest framework config file above the file.
//     Deeper configs win; within one directory, higher priority wins.
//  2. package.json: the first registered framework (by priority) listed in
//     the nearest package.json dependencies.
//
// Files matching neither get Unknown, which adds no preamble. Callers that
// know an existing test file can then try DetectFromTest.
type Detector struct {
	registry *framework.Registry
	resolver *config.Resolver
	// scopes caches parse results by framework and config path; a nil
	// scope records a config that failed to read or parse.
	scopes *lru.Cache[string, *framework.ConfigScope]
}

// NewDetector creates a detector. A nil resolver gets an uncached default.
func NewDetector(registry *framework.Registry, resolver *config.Resolver) *Detector {
	if resolver == nil {
		resolver = config.NewResolver(nil, 0)
	}
	// lru.New only fails for non-positive sizes.
	scopes, _ := lru.New[string, *framework.ConfigScope](scopeCacheSize)
	return &Detector{
		registry: registry,
		resolver: resolver,
		scopes:   scopes,
	}
}

// Detect performs framework detection for the test of sourcePath.
func (d *Detector) Detect(ctx context.Context, sourcePath string) Result {
	if result, ok := d.detectFromScope(ctx, sourcePath); ok {
		return result
	}
	if result, ok := d.detectFromPackageJSON(sourcePath); ok {
		return result
	}
	return Unknown()
}

// Force returns the result for a framework named in settings. The globals
// mode still comes from the framework's config file when one is found.
func (d *Detector) Force(ctx context.Context, name, sourcePath string) (Result, error) {
	def := d.registry.Find(name)
	if def == nil {
		return Unknown(), fmt.Errorf("%w: %q", ErrUnknownFramework, name)
	}

	result := Result{
		Framework: def.Name,
		Globals:   def.GlobalsByDefault,
		Source:    SourceSettings,
	}
	if scope := d.parseScope(ctx, def, sourcePath); scope != nil {
		result.ConfigPath = scope.ConfigPath
		result.Globals = scope.GlobalsMode
	}
	result.Preamble = def.Preamble(result.Globals)
	return result, nil
}

func (d *Detector) detectFromScope(ctx context.Context, sourcePath string) (Result, bool) {
	type scopeMatch struct {
		def   *framework.Definition
		scope *framework.ConfigScope
		depth int
	}

	var best *scopeMatch
	for _, def := range d.registry.All() {
		if err := ctx.Err(); err != nil {
			return Result{}, false
		}

		scope := d.parseScope(ctx, def, sourcePath)
		if scope == nil || !scope.Contains(sourcePath) {
			continue
		}

		// All() is priority-ordered, so only a strictly deeper config replaces best.
		depth := framework.NewConfigScope(scope.ConfigPath, "").Depth()
		if best == nil || depth > best.depth {
			best = &scopeMatch{def: def, scope: scope, depth: depth}
		}
	}

	if best == nil {
		return Result{}, false
	}
	return FromScopeConfig(best.def, best.scope), true
}

func (d *Detector) parseScope(ctx context.Context, def *framework.Definition, sourcePath string) *framework.ConfigScope {
	if len(def.ConfigFiles) == 0 || def.ConfigParser == nil {
		return nil
	}

	configPath, found := d.resolver.ResolveConfig(sourcePath, def.ConfigFiles)
	if !found {
		return nil
	}

	key := def.Name + "\x00" + configPath
	if scope, ok := d.scopes.Get(key); ok {
		return scope
	}

	scope := parseConfig(ctx, def, configPath)
	if ctx.Err() == nil {
		d.scopes.Add(key, scope)
	}
	return scope
}

func parseConfig(ctx context.Context, def *framework.Definition, configPath string) *framework.ConfigScope {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil
	}

	scope, err := def.ConfigParser.Parse(ctx, configPath, content)
	if err != nil {
		return nil
	}
	return scope
}

type packageJSON struct {
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}

func (p packageJSON) has(name string) bool {
	for _, deps := range []map[string]string{p.DevDependencies, p.Dependencies, p.PeerDependencies} {
		if _, ok := deps[name]; ok {
			return true
		}
	}
	return false
}

func (d *Detector) detectFromPackageJSON(sourcePath string) (Result, bool) {
	path, found := d.resolver.ResolveConfig(sourcePath, packageJSONPatterns)
	if !found {
		return Result{}, false
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, false
	}

	var pkg packageJSON
	if err := json.Unmarshal(content, &pkg); err != nil {
		return Result{}, false
	}

	for _, def := range d.registry.All() {
		for _, name := range def.Packages {
			if pkg.has(name) {
				return FromPackageJSON(def, path), true
			}
		}
	}
	return Result{}, false
}

// DetectFromTest reports the framework an existing test file imports, e.g.
// a test that already imports from 'vitest' or requires 'mocha'. A missing
// or unparsable file reports false.
func (d *Detector) DetectFromTest(ctx context.Context, testPath string) (Result, bool) {
	lang := domain.LanguageFromPath(testPath)
	if !lang.IsScript() {
		return Result{}, false
	}

	content, err := os.ReadFile(testPath)
	if err != nil {
		return Result{}, false
	}

	imports := extraction.ExtractImports(ctx, lang, content)
	for _, def := range d.registry.All() {
		for _, specifier := range imports {
			if matchesPackage(specifier, def.Packages) {
				return FromImports(def, testPath, specifier), true
			}
		}
	}
	return Result{}, false
}

// matchesPackage reports whether specifier names one of packages or a
// subpath of it ("vitest/config").
func matchesPackage(specifier string, packages []string) bool {
	for _, pkg := range packages {
		if specifier == pkg || strings.HasPrefix(specifier, pkg+"/") {
			return true
		}
	}
	return false
}
