// Package target decides where the test for a source file is written and how
// the test imports it.
package target

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specvital/stubgen/pkg/domain"
)

const (
	DefaultTestDir = "__tests__"
	DefaultSuffix  = "spec"
)

// ErrInvalidSource is returned for paths with no usable base name (".env", "dir/").
var ErrInvalidSource = errors.New("target: invalid source path")

type Options struct {
	// TestDir is the test directory, relative to the source file's directory
	// unless absolute.
	TestDir string
	// Suffix is inserted between base name and extension: foo.<suffix>.ts.
	Suffix string
}

type Option func(*Options)

func WithTestDir(dir string) Option {
	return func(o *Options) {
		if dir != "" {
			o.TestDir = dir
		}
	}
}

func WithSuffix(suffix string) Option {
	return func(o *Options) {
		if suffix != "" {
			o.Suffix = strings.Trim(suffix, ".")
		}
	}
}

// SplitName splits a file name at its first dot: "foo.service.ts" gives
// ("foo", ".service.ts").
func SplitName(fileName string) (base, ext string) {
	if i := strings.IndexByte(fileName, '.'); i >= 0 {
		return fileName[:i], fileName[i:]
	}
	return fileName, ""
}

// Resolve computes the test file target for sourcePath. For
// /a/b/foo.service.ts with defaults the test is
// /a/b/__tests__/foo.spec.service.ts importing '../foo'.
func Resolve(sourcePath string, opts ...Option) (domain.TestFileTarget, error) {
	options := &Options{
		TestDir: DefaultTestDir,
		Suffix:  DefaultSuffix,
	}
	for _, opt := range opts {
		opt(options)
	}

	sourceDir, fileName := filepath.Split(filepath.Clean(sourcePath))
	base, ext := SplitName(fileName)
	if base == "" {
		return domain.TestFileTarget{}, fmt.Errorf("%w: %q", ErrInvalidSource, sourcePath)
	}
	if sourceDir == "" {
		sourceDir = "."
	}
	sourceDir = filepath.Clean(sourceDir)

	testDir := options.TestDir
	if !filepath.IsAbs(testDir) {
		testDir = filepath.Join(sourceDir, testDir)
	}

	specifier, err := moduleSpecifier(testDir, sourceDir, base)
	if err != nil {
		return domain.TestFileTarget{}, fmt.Errorf("%w: %q: %v", ErrInvalidSource, sourcePath, err)
	}

	return domain.TestFileTarget{
		BaseName:        base,
		ModuleSpecifier: specifier,
		Dir:             testDir,
		Path:            filepath.Join(testDir, base+"."+options.Suffix+ext),
		SourcePath:      sourcePath,
	}, nil
}

// moduleSpecifier is the relative import path from testDir to base in
// sourceDir, always in slash form and always starting with "./" or "../".
func moduleSpecifier(testDir, sourceDir, base string) (string, error) {
	rel, err := filepath.Rel(testDir, sourceDir)
	if err != nil {
		return "", err
	}

	specifier := filepath.ToSlash(filepath.Join(rel, base))
	if !strings.HasPrefix(specifier, "../") {
		specifier = "./" + specifier
	}
	return specifier, nil
}
