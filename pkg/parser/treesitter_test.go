package parser

import (
	"context"
	"testing"

	"github.com/specvital/stubgen/pkg/domain"
	"github.com/specvital/stubgen/pkg/parser/tspool"
)

func TestTreeHelpers(t *testing.T) {
	t.Parallel()

	source := []byte("export default foo;\nexport { a, b };\n")
	tree, err := tspool.Parse(context.Background(), domain.LanguageJavaScript, source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	statements := FindChildrenByType(root, nodeExportStatement)
	if len(statements) != 2 {
		t.Fatalf("expected 2 export statements, got %d", len(statements))
	}

	if !HasChildToken(statements[0], tokenDefault) {
		t.Error("first statement should carry the default keyword")
	}
	if HasChildToken(statements[1], tokenDefault) {
		t.Error("second statement should not carry the default keyword")
	}

	clause := FindChildByType(statements[1], nodeExportClause)
	if clause == nil {
		t.Fatal("expected export clause")
	}
	if got := GetNodeText(clause, source); got != "{ a, b }" {
		t.Errorf("GetNodeText() = %q, want %q", got, "{ a, b }")
	}
	if FindChildByType(statements[0], nodeExportClause) != nil {
		t.Error("default export should not have an export clause")
	}
}

func TestGetNodeText_OutOfBounds(t *testing.T) {
	t.Parallel()

	source := []byte("export const value = 1;")
	tree, err := tspool.Parse(context.Background(), domain.LanguageJavaScript, source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	if got := GetNodeText(tree.RootNode(), source[:5]); got != "" {
		t.Errorf("expected empty text for truncated source, got %q", got)
	}
	if got := GetNodeText(nil, source); got != "" {
		t.Errorf("expected empty text for nil node, got %q", got)
	}
}

func TestTrimQuotes(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		`"a-b"`: "a-b",
		`'x'`:   "x",
		`plain`: "plain",
		`"`:     `"`,
		`'mix"`: `'mix"`,
	}
	for in, want := range tests {
		if got := trimQuotes(in); got != want {
			t.Errorf("trimQuotes(%q) = %q, want %q", in, got, want)
		}
	}
}
