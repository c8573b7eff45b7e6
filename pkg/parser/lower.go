package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/stubgen/pkg/parser/tspool"
	"github.com/specvital/stubgen/pkg/syntax"
)

// tree-sitter node types (javascript, typescript and tsx grammars).
const (
	nodeAbstractClassDeclaration = "abstract_class_declaration"
	nodeAmbientDeclaration       = "ambient_declaration"
	nodeAssignmentExpression     = "assignment_expression"
	nodeClassDeclaration         = "class_declaration"
	nodeExportClause             = "export_clause"
	nodeExportSpecifier          = "export_specifier"
	nodeExportStatement          = "export_statement"
	nodeExpressionStatement      = "expression_statement"
	nodeFunctionDeclaration      = "function_declaration"
	nodeFunctionSignature        = "function_signature"
	nodeGeneratorFunctionDecl    = "generator_function_declaration"
	nodeIdentifier               = "identifier"
	nodeLexicalDeclaration       = "lexical_declaration"
	nodeMemberExpression         = "member_expression"
	nodeNamespaceExport          = "namespace_export"
	nodeString                   = "string"
	nodeTypeIdentifier           = "type_identifier"
	nodeVariableDeclaration      = "variable_declaration"
	nodeVariableDeclarator       = "variable_declarator"
	tokenDefault                 = "default"
	tokenEquals                  = "="
	defaultExportName            = "default"
	commonJSModuleExports        = "module.exports"
	commonJSExportsPrefix        = "exports."
	commonJSModuleExportsPrefix  = "module.exports."
)

// lowerer converts a tree-sitter concrete syntax tree into the syntax
// vocabulary. One lowerer serves one tree.
type lowerer struct {
	source   []byte
	commonJS bool
	// truncated counts subtrees cut off at tspool.MaxTreeDepth.
	truncated int
}

// Lower converts the tree rooted at root into syntax nodes.
func Lower(root *sitter.Node, source []byte, commonJS bool) syntax.Node {
	lowered, _ := lowerTree(root, source, commonJS)
	return lowered
}

// lowerTree is Lower that also reports how many subtrees were cut off at
// the depth cap. Exports inside them are lost.
func lowerTree(root *sitter.Node, source []byte, commonJS bool) (syntax.Node, int) {
	if root == nil {
		return syntax.NewContainer("program"), 0
	}
	l := &lowerer{source: source, commonJS: commonJS}
	lowered := l.lower(root, 0)
	return lowered, l.truncated
}

func (l *lowerer) lower(node *sitter.Node, depth int) syntax.Node {
	if depth > tspool.MaxTreeDepth {
		l.truncated++
		return syntax.NewContainer(node.Type())
	}

	switch node.Type() {
	case nodeExportStatement:
		return l.lowerExport(node, depth)
	case nodeFunctionDeclaration, nodeGeneratorFunctionDecl, nodeFunctionSignature:
		return &syntax.FunctionDeclaration{Name: l.declarationName(node)}
	case nodeClassDeclaration, nodeAbstractClassDeclaration:
		return &syntax.ClassDeclaration{Name: l.declarationName(node)}
	case nodeLexicalDeclaration, nodeVariableDeclaration:
		return l.variableStatement(node, false)
	case nodeExpressionStatement:
		if l.commonJS {
			if lowered := l.lowerCommonJS(node); lowered != nil {
				return lowered
			}
		}
	}

	return l.container(node, depth)
}

func (l *lowerer) container(node *sitter.Node, depth int) *syntax.Container {
	c := &syntax.Container{Type: node.Type()}
	count := int(node.NamedChildCount())
	if count > 0 {
		c.Nodes = make([]syntax.Node, 0, count)
	}
	for i := 0; i < count; i++ {
		c.Nodes = append(c.Nodes, l.lower(node.NamedChild(i), depth+1))
	}
	return c
}

// lowerExport handles every form of export_statement:
//
//	export default <expr|declaration>
//	export = <expr>                     (TypeScript)
//	export <declaration>
//	export { a, b as c } [from '...']
//	export * as ns from '...'
//
// Forms that export nothing nameable (export * from '...') become containers.
//
// export default function f() {} and export default class C {} count as a
// default export only; f and C are not named exports. This differs from
// classifying them as exported declarations, which would report f as a
// named export and no default.
func (l *lowerer) lowerExport(node *sitter.Node, depth int) syntax.Node {
	if HasChildToken(node, tokenDefault) {
		return &syntax.ExportAssignment{}
	}
	if HasChildToken(node, tokenEquals) {
		return &syntax.ExportAssignment{IsExportEquals: true}
	}

	if decl := node.ChildByFieldName("declaration"); decl != nil {
		return l.exportedDeclaration(node, decl, depth)
	}

	c := &syntax.Container{Type: node.Type()}
	for _, clause := range FindChildrenByType(node, nodeExportClause) {
		for _, spec := range FindChildrenByType(clause, nodeExportSpecifier) {
			if lowered := l.exportSpecifier(spec); lowered != nil {
				c.Nodes = append(c.Nodes, lowered)
			}
		}
	}
	if ns := FindChildByType(node, nodeNamespaceExport); ns != nil {
		if name := l.namespaceExportName(ns); name != "" {
			c.Nodes = append(c.Nodes, &syntax.ExportSpecifier{Name: name})
		}
	}
	return c
}

func (l *lowerer) exportedDeclaration(export, decl *sitter.Node, depth int) syntax.Node {
	switch decl.Type() {
	case nodeAmbientDeclaration:
		// export declare function f(): void;
		if inner := firstNamedChild(decl); inner != nil {
			return l.exportedDeclaration(export, inner, depth)
		}
	case nodeFunctionDeclaration, nodeGeneratorFunctionDecl, nodeFunctionSignature:
		return &syntax.FunctionDeclaration{Name: l.declarationName(decl), Exported: true}
	case nodeClassDeclaration, nodeAbstractClassDeclaration:
		return &syntax.ClassDeclaration{Name: l.declarationName(decl), Exported: true}
	case nodeLexicalDeclaration, nodeVariableDeclaration:
		return l.variableStatement(decl, true)
	}

	// Namespaces, enums, interfaces and type aliases are not tracked
	// themselves, but exports nested inside them are.
	return syntax.NewContainer(export.Type(), l.lower(decl, depth+1))
}

func (l *lowerer) exportSpecifier(spec *sitter.Node) syntax.Node {
	name := l.moduleExportName(spec.ChildByFieldName("name"))
	alias := l.moduleExportName(spec.ChildByFieldName("alias"))

	lowered := &syntax.ExportSpecifier{Name: name, Alias: alias}
	switch lowered.ExportedName() {
	case "":
		return nil
	case defaultExportName:
		// export { App as default }
		return &syntax.ExportAssignment{}
	}
	return lowered
}

func (l *lowerer) namespaceExportName(ns *sitter.Node) string {
	var name string
	for i := 0; i < int(ns.NamedChildCount()); i++ {
		name = l.moduleExportName(ns.NamedChild(i))
	}
	return name
}

// moduleExportName returns an identifier's text, or the unquoted contents of
// a string export name (export { a as "b" }).
func (l *lowerer) moduleExportName(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	text := GetNodeText(node, l.source)
	if node.Type() == nodeString {
		return trimQuotes(text)
	}
	return text
}

func (l *lowerer) declarationName(node *sitter.Node) string {
	name := node.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	switch name.Type() {
	case nodeIdentifier, nodeTypeIdentifier:
		return GetNodeText(name, l.source)
	default:
		return ""
	}
}

func (l *lowerer) variableStatement(node *sitter.Node, exported bool) *syntax.VariableStatement {
	stmt := &syntax.VariableStatement{Exported: exported}
	for _, declarator := range FindChildrenByType(node, nodeVariableDeclarator) {
		name := declarator.ChildByFieldName("name")
		if name == nil {
			continue
		}
		if name.Type() == nodeIdentifier {
			stmt.Declarators = append(stmt.Declarators, syntax.Declarator{Name: GetNodeText(name, l.source)})
		} else {
			stmt.Declarators = append(stmt.Declarators, syntax.Declarator{Pattern: true})
		}
	}
	return stmt
}

// lowerCommonJS recognizes the CommonJS export idioms:
//
//	module.exports = x        -> whole-module reassignment
//	exports.name = x          -> named export
//	module.exports.name = x   -> named export
//
// It returns nil for any other expression statement.
func (l *lowerer) lowerCommonJS(stmt *sitter.Node) syntax.Node {
	expr := firstNamedChild(stmt)
	if expr == nil || expr.Type() != nodeAssignmentExpression {
		return nil
	}
	left := expr.ChildByFieldName("left")
	if left == nil || left.Type() != nodeMemberExpression {
		return nil
	}

	target := strings.Join(strings.Fields(GetNodeText(left, l.source)), "")
	if target == commonJSModuleExports {
		return &syntax.ExportAssignment{IsExportEquals: true}
	}

	var name string
	switch {
	case strings.HasPrefix(target, commonJSModuleExportsPrefix):
		name = strings.TrimPrefix(target, commonJSModuleExportsPrefix)
	case strings.HasPrefix(target, commonJSExportsPrefix):
		name = strings.TrimPrefix(target, commonJSExportsPrefix)
	default:
		return nil
	}
	if name == "" || strings.ContainsAny(name, ".[") {
		return nil
	}
	if name == defaultExportName {
		return &syntax.ExportAssignment{}
	}
	return &syntax.ExportSpecifier{Name: name}
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "comment" {
			return child
		}
	}
	return nil
}

func trimQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first := s[0]
	last := s[len(s)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
