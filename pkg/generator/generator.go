// Package generator writes unit test stubs next to JavaScript and TypeScript
// sources: one file at a time with Generate, or a whole tree with GenerateAll.
package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/specvital/stubgen/pkg/domain"
	"github.com/specvital/stubgen/pkg/engine"
	"github.com/specvital/stubgen/pkg/target"
)

// Generator runs the generate pipeline:
//  1. Pick the engine for the source language
//  2. Ensure the test directory exists
//  3. Build the test file contents
//  4. Confirm before overwriting an existing test file
//  5. Write the file
//  6. Open it
//
// The first failing step ends the pipeline with a *GeneratorError.
type Generator struct {
	options *Options
}

// Result is the outcome of generating one test file.
type Result struct {
	Target domain.TestFileTarget `json:"target"`
	// Contents is the generated test file.
	Contents string `json:"contents"`
	// Surface is the export surface of the source.
	Surface domain.ExportSurface `json:"surface"`
	// Framework is the detected or configured test framework.
	Framework string `json:"framework"`
	// Existed reports that a test file was already at Target.Path.
	Existed bool `json:"existed"`
	// Diff is the unified diff against the existing file, if any.
	Diff string `json:"diff,omitempty"`
	// Written reports that Contents were written to Target.Path.
	Written bool `json:"written"`
}

// New creates a generator with the given options.
func New(opts ...Option) *Generator {
	options := newDefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	applyDefaults(&options)

	return &Generator{options: &options}
}

// Generate creates the test file for sourcePath. Sources in unsupported
// languages are rejected with an error matching parser.ErrUnsupportedLanguage
// before the pipeline starts.
func (g *Generator) Generate(ctx context.Context, sourcePath string) (*Result, error) {
	result, err := g.generate(ctx, sourcePath, g.options.Confirmer, g.options.Opener)
	if err != nil {
		if IsBypassed(err) {
			g.options.Logger.InfoContext(ctx, "test file left unchanged", "source", sourcePath, "reason", err)
		}
		return result, err
	}
	return result, nil
}

func (g *Generator) generate(ctx context.Context, sourcePath string, confirmer Confirmer, opener Opener) (*Result, error) {
	logger := g.options.Logger

	eng, err := g.options.Engines.ForPath(sourcePath)
	if err != nil {
		return nil, err
	}

	tgt, err := target.Resolve(sourcePath, g.options.targetOptions()...)
	if err != nil {
		return nil, newError(ErrorCodeUnknown, "", sourcePath, err)
	}
	result := &Result{Target: tgt}

	if !g.options.DryRun {
		if err := ensureDirectoryExists(tgt.Dir); err != nil {
			return result, newError(ErrorCodeUnableToCreateTestDirectory, "", tgt.Dir, err)
		}
	}

	if err := g.buildContents(ctx, eng, sourcePath, result); err != nil {
		return result, newError(ErrorCodeUnknown, "generate test contents", sourcePath, err)
	}

	existing, exists, err := readExisting(tgt.Path)
	if err != nil {
		return result, newError(ErrorCodeUnknown, "read existing test file", tgt.Path, err)
	}
	if exists {
		result.Existed = true
		diff, err := UnifiedDiff(tgt.Path, existing, result.Contents)
		if err != nil {
			return result, newError(ErrorCodeUnknown, "diff existing test file", tgt.Path, err)
		}
		result.Diff = diff
	}

	if g.options.DryRun {
		// Without a confirmer the real run would leave the file alone.
		if exists && !g.options.Force && confirmer == nil {
			return result, newError(ErrorCodeTestFileAlreadyExists, "", tgt.Path, ErrTestFileExists)
		}
		logger.DebugContext(ctx, "dry run", "source", sourcePath, "test", tgt.Path)
		return result, nil
	}

	if exists && !g.options.Force {
		if err := g.confirmOverwrite(ctx, confirmer, result); err != nil {
			return result, err
		}
	}

	if err := writeContentToFile(tgt.Path, result.Contents); err != nil {
		return result, newError(ErrorCodeUnknown, "write test file", tgt.Path, err)
	}
	result.Written = true
	logger.InfoContext(ctx, "test file written",
		"source", sourcePath,
		"test", tgt.Path,
		"framework", result.Framework,
		"overwritten", exists,
	)

	if opener != nil {
		if err := opener.Open(ctx, tgt.Path); err != nil {
			return result, newError(ErrorCodeUnknown, "open test file", tgt.Path, err)
		}
	}

	return result, nil
}

func (g *Generator) buildContents(ctx context.Context, eng engine.LanguageEngine, sourcePath string, result *Result) error {
	builder, ok := eng.(engine.Builder)
	if !ok {
		contents, err := eng.CreateFileContents(ctx, sourcePath)
		if err != nil {
			return err
		}
		result.Contents = contents
		return nil
	}

	contents, err := builder.Build(ctx, sourcePath)
	if err != nil {
		return err
	}
	if contents.HasSyntaxErrors {
		g.options.Logger.WarnContext(ctx, "source has syntax errors; the import may be incomplete", "source", sourcePath)
	}
	result.Contents = contents.String()
	result.Surface = contents.Surface
	if !contents.Framework.IsUnknown() {
		result.Framework = contents.Framework.Framework
	}
	return nil
}

func (g *Generator) confirmOverwrite(ctx context.Context, confirmer Confirmer, result *Result) error {
	path := result.Target.Path
	if confirmer == nil {
		return newError(ErrorCodeTestFileAlreadyExists, "", path, ErrTestFileExists)
	}

	ok, err := confirmer.ConfirmOverwrite(ctx, path, result.Diff)
	if err != nil {
		return newError(ErrorCodeUnknown, "confirm overwrite", path, err)
	}
	if !ok {
		return newError(ErrorCodeTestFileAlreadyExists, "", path, ErrTestFileExists)
	}
	return nil
}

// Exports parses sourcePath and returns its export surface together with
// the test target, without touching the filesystem.
func (g *Generator) Exports(ctx context.Context, sourcePath string) (*engine.Contents, error) {
	eng, err := g.options.Engines.ForPath(sourcePath)
	if err != nil {
		return nil, err
	}
	builder, ok := eng.(engine.Builder)
	if !ok {
		return nil, fmt.Errorf("engine %s cannot report exports: %w", eng.Name(), errors.ErrUnsupported)
	}
	return builder.Build(ctx, sourcePath)
}
