package domain

// TestFileTarget identifies where a generated test lives and how it refers
// to the module under test.
type TestFileTarget struct {
	// BaseName is the local binding for the default import and the suite name.
	BaseName string `json:"baseName"`
	// ModuleSpecifier is the path used in the generated import, relative to Dir.
	ModuleSpecifier string `json:"moduleSpecifier"`
	// Dir is the directory that holds the test file.
	Dir string `json:"dir"`
	// Path is the test file path.
	Path string `json:"path"`
	// SourcePath is the module under test.
	SourcePath string `json:"sourcePath"`
}
