// Package exports computes a module's export surface and renders the import
// statement a test file needs to reach it.
package exports

import (
	"github.com/specvital/stubgen/pkg/domain"
	"github.com/specvital/stubgen/pkg/syntax"
)

// Classify walks the tree rooted at root and records every export it finds.
// The walk is a single depth-first, pre-order pass; declarations and
// variable statements end their branch, every other node is descended into.
// A module with no exports yields an empty, non-nil NamedExports.
func Classify(root syntax.Node) domain.ExportSurface {
	c := &classifier{
		surface: domain.ExportSurface{NamedExports: []string{}},
	}
	c.visit(root)
	return c.surface
}

// classifier owns the accumulator for one Classify call.
type classifier struct {
	surface domain.ExportSurface
}

func (c *classifier) visit(node syntax.Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *syntax.ClassDeclaration:
		if n.Exported && n.Name != "" {
			c.addNamed(n.Name)
		}
	case *syntax.FunctionDeclaration:
		if n.Exported && n.Name != "" {
			c.addNamed(n.Name)
		}
	case *syntax.VariableStatement:
		if !n.Exported {
			return
		}
		for _, decl := range n.Declarators {
			if decl.Pattern || decl.Name == "" {
				continue
			}
			c.addNamed(decl.Name)
		}
	case *syntax.ExportAssignment:
		c.surface.HasDefaultExport = !n.IsExportEquals
	case *syntax.ExportSpecifier:
		if name := n.ExportedName(); name != "" {
			c.addNamed(name)
		}
	default:
		for _, child := range node.Children() {
			c.visit(child)
		}
	}
}

func (c *classifier) addNamed(name string) {
	c.surface.NamedExports = append(c.surface.NamedExports, name)
}
