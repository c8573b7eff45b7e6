// Package extraction inspects framework config sources without evaluating them.
package extraction

import (
	"bytes"
	"context"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/stubgen/pkg/domain"
	"github.com/specvital/stubgen/pkg/parser/tspool"
)

const (
	nodeComment        = "comment"
	nodeTemplateString = "template_string"
)

var commentStripRegex = regexp.MustCompile(`//.*|/\*[\s\S]*?\*/`)

// MatchPatternInCode reports whether pattern matches a config source once
// comments and string values are blanked out, so that
//
//	// injectGlobals: false
//	displayName: 'injectGlobals: false'
//
// do not count. Strings used as object keys ("injectGlobals": false in a
// JSON config) are kept. Blanking preserves byte offsets and newlines.
//
// The source is parsed as TypeScript, which also covers JavaScript and JSON.
// When parsing is not possible only comments are stripped, by regex.
func MatchPatternInCode(ctx context.Context, content []byte, pattern *regexp.Regexp) bool {
	if !bytes.ContainsAny(content, "/'\"`") {
		return pattern.Match(content)
	}
	return pattern.Match(maskConfig(ctx, content))
}

func maskConfig(ctx context.Context, content []byte) []byte {
	if ctx.Err() != nil {
		return stripCommentsByRegex(content)
	}
	tree, err := tspool.Parse(ctx, domain.LanguageTypeScript, content)
	if err != nil {
		return stripCommentsByRegex(content)
	}
	defer tree.Close()

	masked := bytes.Clone(content)
	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case nodeComment:
			blank(masked, node.StartByte(), node.EndByte())
			return false
		case nodeString, nodeTemplateString:
			if !isObjectKey(content, node.EndByte()) && node.EndByte()-node.StartByte() >= 2 {
				// Keep the quotes so the surrounding syntax still lines up.
				blank(masked, node.StartByte()+1, node.EndByte()-1)
			}
			return false
		}
		return true
	})
	return masked
}

// isObjectKey reports whether the string ending at end is followed by a
// colon. Byte-based, so it also holds where tree-sitter recovered from a
// JSON document parsed as TypeScript.
func isObjectKey(content []byte, end uint32) bool {
	rest := bytes.TrimLeft(content[min(int(end), len(content)):], " \t\r\n")
	return len(rest) > 0 && rest[0] == ':'
}

func blank(b []byte, start, end uint32) {
	for i := int(start); i < int(end) && i < len(b); i++ {
		if b[i] != '\n' {
			b[i] = ' '
		}
	}
}

func stripCommentsByRegex(content []byte) []byte {
	return commentStripRegex.ReplaceAll(content, []byte{})
}
