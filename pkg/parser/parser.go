// Package parser turns JavaScript and TypeScript sources into the syntax
// vocabulary used for export classification.
package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specvital/stubgen/pkg/domain"
	"github.com/specvital/stubgen/pkg/parser/tspool"
	"github.com/specvital/stubgen/pkg/syntax"
)

var (
	// ErrUnsupportedLanguage is matched by UnsupportedLanguageError.
	ErrUnsupportedLanguage = errors.New("parser: unsupported language")
	// ErrFileTooLarge is returned by ParseFile for files above the size limit.
	ErrFileTooLarge = errors.New("parser: file too large")
)

// UnsupportedLanguageError reports a source file that is not JavaScript or TypeScript.
type UnsupportedLanguageError struct {
	// Language is the detected language, empty when unrecognized.
	Language domain.Language
	// Path is the rejected file.
	Path string
}

// Error implements the error interface.
func (e *UnsupportedLanguageError) Error() string {
	name := string(e.Language)
	if name == "" {
		name = filepath.Ext(e.Path)
		if name == "" {
			name = filepath.Base(e.Path)
		}
	}
	return fmt.Sprintf("%s files are not supported at the moment. Sorry!", name)
}

// Is makes errors.Is(err, ErrUnsupportedLanguage) hold.
func (e *UnsupportedLanguageError) Is(target error) bool {
	return target == ErrUnsupportedLanguage
}

// Module is a parsed source module.
type Module struct {
	// Path is the source file path, empty for in-memory sources.
	Path string
	// Language is the grammar the module was parsed with.
	Language domain.Language
	// Root is the lowered syntax tree.
	Root syntax.Node
	// HasErrors reports whether tree-sitter had to recover from syntax errors.
	HasErrors bool
	// Truncated counts subtrees deeper than tspool.MaxTreeDepth that were
	// not lowered; exports inside them are missing from Root.
	Truncated int
}

// CheckLanguage returns an *UnsupportedLanguageError unless path is a
// JavaScript or TypeScript source.
func CheckLanguage(path string) (domain.Language, error) {
	lang := domain.LanguageFromPath(path)
	if !lang.IsScript() {
		return lang, &UnsupportedLanguageError{Language: lang, Path: path}
	}
	return lang, nil
}

// ParseModule parses source with the grammar for lang and lowers the result.
func ParseModule(ctx context.Context, lang domain.Language, source []byte, opts ...ParseOption) (*Module, error) {
	options := newParseOptions(opts)

	if !lang.IsScript() {
		return nil, &UnsupportedLanguageError{Language: lang}
	}

	tree, err := tspool.Parse(ctx, lang, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	lowered, truncated := lowerTree(root, source, options.CommonJS)
	module := &Module{
		Language:  lang,
		Root:      lowered,
		HasErrors: root.HasError(),
		Truncated: truncated,
	}

	if truncated > 0 {
		options.Logger.DebugContext(ctx, "subtrees beyond max depth not lowered",
			"language", lang,
			"maxDepth", tspool.MaxTreeDepth,
			"truncated", truncated,
		)
	}

	options.Logger.DebugContext(ctx, "module parsed",
		"language", lang,
		"nodes", syntax.Count(module.Root),
		"hasErrors", module.HasErrors,
	)

	return module, nil
}

// ParseFile reads and parses the module at path. The language is detected
// from the file extension.
func ParseFile(ctx context.Context, path string, opts ...ParseOption) (*Module, error) {
	options := newParseOptions(opts)

	lang, err := CheckLanguage(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > options.MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrFileTooLarge, path, info.Size(), options.MaxFileSize)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	module, err := ParseModule(ctx, lang, source, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	module.Path = path

	if module.HasErrors {
		options.Logger.WarnContext(ctx, "source has syntax errors; exports may be incomplete", "path", path)
	}

	return module, nil
}
