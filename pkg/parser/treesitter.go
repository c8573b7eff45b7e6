package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// GetNodeText returns the source text for the given AST node.
// Returns empty string if the node's byte range exceeds the source length.
func GetNodeText(node *sitter.Node, source []byte) (result string) {
	if node == nil {
		return ""
	}

	start := node.StartByte()
	end := node.EndByte()
	sourceLen := uint32(len(source))

	// Validate bounds before calling tree-sitter C code
	if start > sourceLen || end > sourceLen {
		return ""
	}

	// Content() can panic on inconsistent ranges after error recovery.
	defer func() {
		if r := recover(); r != nil {
			result = ""
		}
	}()

	return node.Content(source)
}

// FindChildByType returns the first direct child with the given node type.
// Anonymous children (keywords, punctuation) are included in the search.
func FindChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// FindChildrenByType returns all direct children with the given node type.
func FindChildrenByType(node *sitter.Node, nodeType string) []*sitter.Node {
	var children []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == nodeType {
			children = append(children, child)
		}
	}
	return children
}

// HasChildToken reports whether node has a direct child of the given type.
func HasChildToken(node *sitter.Node, token string) bool {
	return FindChildByType(node, token) != nil
}
