package extraction

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/stubgen/pkg/parser/tspool"
)

// walk visits node and its named descendants in pre-order, stopping at
// tspool.MaxTreeDepth. visit returns false to skip a node's children.
func walk(node *sitter.Node, visit func(*sitter.Node) bool) {
	walkDepth(node, visit, 0)
}

func walkDepth(node *sitter.Node, visit func(*sitter.Node) bool, depth int) {
	if node == nil || depth > tspool.MaxTreeDepth {
		return
	}
	if !visit(node) {
		return
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		walkDepth(node.NamedChild(i), visit, depth+1)
	}
}

func nodeText(node *sitter.Node, source []byte) string {
	start, end := node.StartByte(), node.EndByte()
	if end > uint32(len(source)) || start > end {
		return ""
	}
	return string(source[start:end])
}
