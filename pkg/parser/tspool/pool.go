// Package tspool provides tree-sitter parsers for concurrent parsing.
//
// Parser pooling is disabled due to tree-sitter cancellation flag issues.
// When a context is cancelled during ParseCtx, the parser's internal cancel flag
// is set but not properly reset, causing subsequent parses to fail with
// "operation limit was hit". Creating fresh parsers avoids this issue.
//
// Thread-safety: Parsers returned by Get are NOT safe for concurrent use.
// Each goroutine must Get its own parser or use the Parse helper.
package tspool

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/specvital/stubgen/pkg/domain"
)

// MaxTreeDepth is the maximum recursion depth when walking AST trees.
const MaxTreeDepth = 1000

var (
	jsLang  *sitter.Language
	tsLang  *sitter.Language
	tsxLang *sitter.Language

	langOnce sync.Once
)

func initLanguages() {
	langOnce.Do(func() {
		jsLang = javascript.GetLanguage()
		tsLang = typescript.GetLanguage()
		tsxLang = tsx.GetLanguage()
	})
}

// GetLanguage returns the tree-sitter grammar for the given language.
// JavaScript sources (including JSX) use the JavaScript grammar, .tsx files
// the TSX grammar; everything else falls back to TypeScript.
func GetLanguage(lang domain.Language) *sitter.Language {
	initLanguages()
	switch lang {
	case domain.LanguageJavaScript:
		return jsLang
	case domain.LanguageTSX:
		return tsxLang
	default:
		return tsLang
	}
}

// Get returns a parser for the given language.
// The returned parser is NOT safe for concurrent use.
// Caller MUST call parser.Close() when done to free resources.
func Get(lang domain.Language) *sitter.Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(GetLanguage(lang))
	return parser
}

// Parse parses source using a fresh parser.
// Caller MUST call tree.Close() to free resources.
func Parse(ctx context.Context, lang domain.Language, source []byte) (*sitter.Tree, error) {
	parser := Get(lang)
	defer parser.Close()

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s failed: %w", lang, err)
	}

	return tree, nil
}
