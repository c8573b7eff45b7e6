package exports

import (
	"strings"
	"unicode"

	"github.com/specvital/stubgen/pkg/domain"
)

// Synthesize renders the import declaration for surface.
//
//	import Foo from './foo';
//	import { a, b } from './foo';
//	import Foo, { a, b } from './foo';
//
// An empty surface renders an empty clause ("import  from './foo';");
// callers that write files should use ImportStatement instead.
func Synthesize(surface domain.ExportSurface, bindingName, moduleSpecifier string) string {
	var clause strings.Builder
	if surface.HasDefaultExport {
		clause.WriteString(bindingName)
	}
	if len(surface.NamedExports) > 0 {
		if surface.HasDefaultExport {
			clause.WriteString(", ")
		}
		clause.WriteString("{ ")
		clause.WriteString(strings.Join(surface.NamedExports, ", "))
		clause.WriteString(" }")
	}

	return "import " + clause.String() + " from '" + moduleSpecifier + "';"
}

// ImportStatement is Synthesize for writers: ok is false, and the statement
// empty, when the module exports nothing.
func ImportStatement(surface domain.ExportSurface, bindingName, moduleSpecifier string) (statement string, ok bool) {
	if surface.IsEmpty() {
		return "", false
	}
	return Synthesize(surface, bindingName, moduleSpecifier), true
}

// IsIdentifier reports whether name can be written as a binding in an
// import clause. String export names (export { a as "b c" }) and base names
// such as "my-widget" cannot.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '$' || r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// InvalidBindings returns the names Synthesize would write into the import
// clause that are not identifiers, in clause order.
func InvalidBindings(surface domain.ExportSurface, bindingName string) []string {
	var invalid []string
	if surface.HasDefaultExport && !IsIdentifier(bindingName) {
		invalid = append(invalid, bindingName)
	}
	for _, name := range surface.NamedExports {
		if !IsIdentifier(name) {
			invalid = append(invalid, name)
		}
	}
	return invalid
}
