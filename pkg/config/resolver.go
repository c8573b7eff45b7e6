// Package config locates and loads project configuration: stubgen's own
// settings file and the test framework config files that decide how a
// generated test is bootstrapped.
package config

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	defaultMaxDepth = 20

	// Project root indicator files
	fileGitDir      = ".git"
	fileGoMod       = "go.mod"
	filePackageJSON = "package.json"
)

var projectRootIndicators = []string{filePackageJSON, fileGitDir, fileGoMod}

// Resolver finds the nearest file matching a set of patterns by walking up
// from a source file.
type Resolver struct {
	cache    *Cache
	maxDepth int
}

// NewResolver creates a resolver. cache may be nil; maxDepth <= 0 uses the default.
func NewResolver(cache *Cache, maxDepth int) *Resolver {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	return &Resolver{
		cache:    cache,
		maxDepth: maxDepth,
	}
}

// ResolveConfig finds the nearest config file by traversing up directories.
// Patterns are doublestar globs matched against entries of each directory,
// in order; the first pattern with a match wins within a directory.
// Stops at project root boundary (package.json, .git, go.mod) + one level for monorepo configs.
func (r *Resolver) ResolveConfig(filePath string, patterns []string) (string, bool) {
	dir := filepath.Dir(filePath)
	var foundProjectRoot bool
	var visitedDirs []string

	for depth := 0; depth < r.maxDepth; depth++ {
		if r.cache != nil {
			if cached, found := r.cache.Get(dir, patterns); found {
				if cached != "" {
					r.remember(visitedDirs, patterns, cached)
				}
				return cached, cached != ""
			}
		}

		visitedDirs = append(visitedDirs, dir)

		if configPath, found := findConfigInDir(dir, patterns); found {
			r.remember(visitedDirs, patterns, configPath)
			return configPath, true
		}

		if !foundProjectRoot && isProjectRoot(dir) {
			foundProjectRoot = true
		} else if foundProjectRoot {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	// Cache miss for all visited directories to avoid redundant filesystem scans
	r.remember(visitedDirs, patterns, "")
	return "", false
}

func (r *Resolver) remember(dirs []string, patterns []string, configPath string) {
	if r.cache == nil {
		return
	}
	for _, dir := range dirs {
		r.cache.Set(dir, patterns, configPath)
	}
}

func findConfigInDir(dir string, patterns []string) (string, bool) {
	fsys := os.DirFS(dir)
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			// Only ErrBadPattern is possible here
			continue
		}
		if len(matches) > 0 {
			return filepath.Join(dir, filepath.FromSlash(matches[0])), true
		}
	}
	return "", false
}

func isProjectRoot(dir string) bool {
	for _, file := range projectRootIndicators {
		if _, err := os.Stat(filepath.Join(dir, file)); err == nil {
			return true
		}
	}
	return false
}
