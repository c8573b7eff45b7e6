package extraction

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/stubgen/pkg/domain"
	"github.com/specvital/stubgen/pkg/parser/tspool"
)

const (
	nodeArguments       = "arguments"
	nodeCallExpression  = "call_expression"
	nodeIdentifier      = "identifier"
	nodeImportStatement = "import_statement"
	nodeString          = "string"
	funcRequire         = "require"
	tokenType           = "type"
)

// ExtractImports returns the module specifiers a JavaScript or TypeScript
// source imports, in order of first appearance, without duplicates.
// ES module imports and CommonJS require('x') calls are both collected;
// type-only imports (import type { X } from 'y') are not.
// Extraction is best-effort: unparsable sources yield nil.
func ExtractImports(ctx context.Context, lang domain.Language, source []byte) []string {
	tree, err := tspool.Parse(ctx, lang, source)
	if err != nil {
		return nil
	}
	defer tree.Close()

	c := &importCollector{source: source, seen: make(map[string]struct{})}
	walk(tree.RootNode(), c.visit)
	return c.imports
}

type importCollector struct {
	source  []byte
	seen    map[string]struct{}
	imports []string
}

func (c *importCollector) visit(node *sitter.Node) bool {
	switch node.Type() {
	case nodeImportStatement:
		if !isTypeOnlyImport(node) {
			c.add(node.ChildByFieldName("source"))
		}
		return false
	case nodeCallExpression:
		if fn := node.ChildByFieldName("function"); fn != nil && fn.Type() == nodeIdentifier && nodeText(fn, c.source) == funcRequire {
			if args := node.ChildByFieldName(nodeArguments); args != nil && args.NamedChildCount() > 0 {
				if arg := args.NamedChild(0); arg.Type() == nodeString {
					c.add(arg)
				}
			}
		}
	}
	return true
}

func (c *importCollector) add(node *sitter.Node) {
	if node == nil {
		return
	}
	path := trimJSQuotes(nodeText(node, c.source))
	if path == "" {
		return
	}
	if _, exists := c.seen[path]; exists {
		return
	}
	c.seen[path] = struct{}{}
	c.imports = append(c.imports, path)
}

func isTypeOnlyImport(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child != nil && child.Type() == tokenType {
			return true
		}
	}
	return false
}

func trimJSQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first := s[0]
	last := s[len(s)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
		return s[1 : len(s)-1]
	}
	return s
}
