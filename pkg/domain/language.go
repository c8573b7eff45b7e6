// Package domain defines the core types for export surfaces and generated test targets.
package domain

import (
	"path/filepath"
	"strings"
)

// Language represents a programming language.
type Language string

// Languages recognized by file extension. Only JavaScript, TypeScript and TSX
// sources can be turned into test stubs; the rest are known so they can be
// rejected by name.
const (
	LanguageCpp        Language = "cpp"
	LanguageCSharp     Language = "csharp"
	LanguageGo         Language = "go"
	LanguageJava       Language = "java"
	LanguageJavaScript Language = "javascript"
	LanguageKotlin     Language = "kotlin"
	LanguagePHP        Language = "php"
	LanguagePython     Language = "python"
	LanguageRuby       Language = "ruby"
	LanguageRust       Language = "rust"
	LanguageSwift      Language = "swift"
	LanguageTSX        Language = "tsx"
	LanguageTypeScript Language = "typescript"

	// LanguageUnknown is returned for extensions that are not recognized at all.
	LanguageUnknown Language = ""
)

var extensionLanguages = map[string]Language{
	".js":    LanguageJavaScript,
	".jsx":   LanguageJavaScript,
	".mjs":   LanguageJavaScript,
	".cjs":   LanguageJavaScript,
	".ts":    LanguageTypeScript,
	".mts":   LanguageTypeScript,
	".cts":   LanguageTypeScript,
	".tsx":   LanguageTSX,
	".go":    LanguageGo,
	".java":  LanguageJava,
	".kt":    LanguageKotlin,
	".kts":   LanguageKotlin,
	".py":    LanguagePython,
	".cs":    LanguageCSharp,
	".rb":    LanguageRuby,
	".rs":    LanguageRust,
	".cc":    LanguageCpp,
	".cpp":   LanguageCpp,
	".cxx":   LanguageCpp,
	".php":   LanguagePHP,
	".swift": LanguageSwift,
}

// LanguageFromPath detects the language of a file from its extension.
// Returns LanguageUnknown when the extension is not recognized.
func LanguageFromPath(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	return extensionLanguages[ext]
}

// IsScript reports whether test stubs can be generated for the language.
func (l Language) IsScript() bool {
	switch l {
	case LanguageJavaScript, LanguageTypeScript, LanguageTSX:
		return true
	default:
		return false
	}
}
