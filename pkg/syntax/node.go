// Package syntax defines the node vocabulary that export classification runs on.
//
// A parsed module is lowered into a small closed set of node kinds: the
// declarations and export forms that can contribute to a module's export
// surface, plus Container for everything else. Node is sealed; only the
// types in this package implement it.
package syntax

// Node is a lowered syntax tree node.
type Node interface {
	// Children returns the immediate child nodes in source order.
	Children() []Node

	sealed()
}

// Container is any node that is not one of the export-relevant kinds.
// Type carries the parser's own node type name for debugging.
type Container struct {
	Type  string
	Nodes []Node
}

// ClassDeclaration is a class declaration. Name is empty for anonymous classes.
type ClassDeclaration struct {
	Name     string
	Exported bool
	Body     []Node
}

// FunctionDeclaration is a function declaration or signature.
// Name is empty for anonymous functions.
type FunctionDeclaration struct {
	Name     string
	Exported bool
	Body     []Node
}

// VariableStatement is a var/let/const statement.
type VariableStatement struct {
	Exported    bool
	Declarators []Declarator
}

// Declarator is a single binding of a variable statement.
type Declarator struct {
	// Name is the bound identifier. Empty when Pattern is true.
	Name string
	// Pattern is true for destructuring bindings ({ a } = ..., [a, b] = ...).
	Pattern bool
}

// ExportAssignment is a default export (export default x) or, when
// IsExportEquals is set, a whole-module reassignment (export = x,
// module.exports = x).
type ExportAssignment struct {
	IsExportEquals bool
}

// ExportSpecifier is one entry of a named export list: export { Name as Alias }.
type ExportSpecifier struct {
	Name  string
	Alias string
}

// ExportedName returns the name importers use: the alias when present.
func (s *ExportSpecifier) ExportedName() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Name
}

func (n *Container) Children() []Node           { return n.Nodes }
func (n *ClassDeclaration) Children() []Node    { return n.Body }
func (n *FunctionDeclaration) Children() []Node { return n.Body }
func (*VariableStatement) Children() []Node     { return nil }
func (*ExportAssignment) Children() []Node      { return nil }
func (*ExportSpecifier) Children() []Node       { return nil }

func (*Container) sealed()           {}
func (*ClassDeclaration) sealed()    {}
func (*FunctionDeclaration) sealed() {}
func (*VariableStatement) sealed()   {}
func (*ExportAssignment) sealed()    {}
func (*ExportSpecifier) sealed()     {}

// NewContainer returns a Container holding the given children.
func NewContainer(typ string, children ...Node) *Container {
	return &Container{Type: typ, Nodes: children}
}

// Count returns the number of nodes in the tree rooted at n, n included.
func Count(n Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, child := range n.Children() {
		total += Count(child)
	}
	return total
}
