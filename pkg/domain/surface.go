package domain

// ExportSurface describes what a source module exposes to importers.
type ExportSurface struct {
	// NamedExports lists exported identifiers in order of first encounter.
	// Duplicates are preserved.
	NamedExports []string `json:"namedExports"`
	// HasDefaultExport reports whether the module has a default export.
	HasDefaultExport bool `json:"hasDefaultExport"`
}

// IsEmpty reports whether the module exports nothing that can be imported.
func (s ExportSurface) IsEmpty() bool {
	return !s.HasDefaultExport && len(s.NamedExports) == 0
}
