// Package engine produces the contents of a generated unit test file.
package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/specvital/stubgen/pkg/domain"
	"github.com/specvital/stubgen/pkg/exports"
	"github.com/specvital/stubgen/pkg/parser"
	"github.com/specvital/stubgen/pkg/parser/detection"
	"github.com/specvital/stubgen/pkg/target"
)

// ErrDeclarationFile is returned for .d.ts sources, which have no runtime
// exports to test.
var ErrDeclarationFile = errors.New("engine: declaration files cannot be tested")

// Engine creates test file contents for a source file.
type Engine interface {
	CreateFileContents(ctx context.Context, sourcePath string) (string, error)
}

// LanguageEngine is an Engine that declares the languages it serves.
type LanguageEngine interface {
	Engine
	Name() string
	Languages() []domain.Language
}

// Contents is everything known about one generated test file.
type Contents struct {
	Target    domain.TestFileTarget
	Surface   domain.ExportSurface
	Framework detection.Result
	// HasSyntaxErrors reports that the source only parsed with recovery, so
	// Surface may be incomplete.
	HasSyntaxErrors bool
}

// ImportStatement returns the import line, or false when nothing is exported.
func (c *Contents) ImportStatement() (string, bool) {
	return exports.ImportStatement(c.Surface, c.Target.BaseName, c.Target.ModuleSpecifier)
}

// String renders the test file:
//
//	<framework preamble>
//	<import statement>
//
//	describe('<BaseName>', () => {});
//
// The preamble and import lines are omitted when empty, and so is the blank
// line when both are.
func (c *Contents) String() string {
	var b strings.Builder

	header := 0
	if c.Framework.Preamble != "" {
		b.WriteString(c.Framework.Preamble)
		b.WriteByte('\n')
		header++
	}
	if statement, ok := c.ImportStatement(); ok {
		b.WriteString(statement)
		b.WriteByte('\n')
		header++
	}
	if header > 0 {
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "describe('%s', () => {});\n", escapeSingleQuotes(c.Target.BaseName))
	return b.String()
}

func escapeSingleQuotes(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// scriptEngine is the shared pipeline of the JavaScript and TypeScript
// engines: resolve target, parse, classify, detect framework.
type scriptEngine struct {
	name      string
	languages []domain.Language
	options   Options
}

func (e *scriptEngine) Name() string {
	return e.name
}

func (e *scriptEngine) Languages() []domain.Language {
	return slices.Clone(e.languages)
}

// Build runs the pipeline for sourcePath without rendering.
func (e *scriptEngine) Build(ctx context.Context, sourcePath string) (*Contents, error) {
	lang, err := parser.CheckLanguage(sourcePath)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(e.languages, lang) {
		return nil, &parser.UnsupportedLanguageError{Language: lang, Path: sourcePath}
	}

	tgt, err := target.Resolve(sourcePath, e.options.targetOptions()...)
	if err != nil {
		return nil, err
	}

	module, err := parser.ParseFile(ctx, sourcePath, e.options.parseOptions()...)
	if err != nil {
		return nil, err
	}

	contents := &Contents{
		Target:          tgt,
		Surface:         exports.Classify(module.Root),
		Framework:       e.detectFramework(ctx, sourcePath, tgt.Path),
		HasSyntaxErrors: module.HasErrors,
	}

	if invalid := exports.InvalidBindings(contents.Surface, tgt.BaseName); len(invalid) > 0 {
		e.options.Logger.WarnContext(ctx, "import names are not identifiers; the generated import needs editing",
			"source", sourcePath,
			"names", invalid,
		)
	}

	e.options.Logger.DebugContext(ctx, "test contents built",
		"engine", e.name,
		"source", sourcePath,
		"named", len(contents.Surface.NamedExports),
		"default", contents.Surface.HasDefaultExport,
		"framework", contents.Framework.Framework,
	)

	return contents, nil
}

// CreateFileContents implements Engine.
func (e *scriptEngine) CreateFileContents(ctx context.Context, sourcePath string) (string, error) {
	contents, err := e.Build(ctx, sourcePath)
	if err != nil {
		return "", err
	}
	return contents.String(), nil
}

func (e *scriptEngine) detectFramework(ctx context.Context, sourcePath, testPath string) detection.Result {
	if e.options.Framework != "" {
		result, err := e.options.Detector.Force(ctx, e.options.Framework, sourcePath)
		if err == nil {
			return result
		}
		e.options.Logger.WarnContext(ctx, "ignoring configured framework", "error", err)
	}

	result := e.options.Detector.Detect(ctx, sourcePath)
	if !result.IsUnknown() {
		return result
	}
	// Nothing configured: follow whatever an existing test file imports.
	if fromTest, ok := e.options.Detector.DetectFromTest(ctx, testPath); ok {
		return fromTest
	}
	return result
}

// JavaScriptEngine generates tests for .js, .jsx, .mjs and .cjs sources.
type JavaScriptEngine struct {
	scriptEngine
}

// NewJavaScriptEngine creates the JavaScript engine.
func NewJavaScriptEngine(opts ...Option) *JavaScriptEngine {
	return &JavaScriptEngine{scriptEngine{
		name:      "javascript",
		languages: []domain.Language{domain.LanguageJavaScript},
		options:   newOptions(opts),
	}}
}

// TypeScriptEngine generates tests for .ts, .mts, .cts and .tsx sources.
type TypeScriptEngine struct {
	scriptEngine
}

// NewTypeScriptEngine creates the TypeScript engine.
func NewTypeScriptEngine(opts ...Option) *TypeScriptEngine {
	return &TypeScriptEngine{scriptEngine{
		name:      "typescript",
		languages: []domain.Language{domain.LanguageTypeScript, domain.LanguageTSX},
		options:   newOptions(opts),
	}}
}

// Build rejects declaration files before running the shared pipeline.
func (e *TypeScriptEngine) Build(ctx context.Context, sourcePath string) (*Contents, error) {
	if isDeclarationFile(sourcePath) {
		return nil, fmt.Errorf("%w: %s", ErrDeclarationFile, sourcePath)
	}
	return e.scriptEngine.Build(ctx, sourcePath)
}

// CreateFileContents implements Engine.
func (e *TypeScriptEngine) CreateFileContents(ctx context.Context, sourcePath string) (string, error) {
	contents, err := e.Build(ctx, sourcePath)
	if err != nil {
		return "", err
	}
	return contents.String(), nil
}

func isDeclarationFile(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range []string{".d.ts", ".d.mts", ".d.cts"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
