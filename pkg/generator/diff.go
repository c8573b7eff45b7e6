package generator

import (
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff renders the change from the existing test file to the newly
// generated contents. Identical contents give "".
func UnifiedDiff(path, existing, generated string) (string, error) {
	if existing == generated {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(existing),
		B:        difflib.SplitLines(generated),
		FromFile: path + " (existing)",
		ToFile:   path + " (generated)",
		Context:  3,
	})
}
