// Package framework describes the JavaScript test frameworks a generated test
// file can target: where their config lives, whether they inject globals, and
// what a test file must import when they don't.
package framework

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// ConfigParser reads a framework config file without evaluating it.
type ConfigParser interface {
	Parse(ctx context.Context, configPath string, content []byte) (*ConfigScope, error)
}

// Definition describes one test framework.
type Definition struct {
	Name string
	// ConfigFiles are doublestar patterns matched against directory entries.
	ConfigFiles []string
	// Packages are the npm package names that identify the framework in
	// package.json dependencies.
	Packages []string
	// GlobalsByDefault is the globals mode when no config file says otherwise.
	GlobalsByDefault bool
	// ImportSource is the module describe/it/expect are imported from when the
	// framework does not inject them. Empty means nothing is importable.
	ImportSource string
	ConfigParser ConfigParser
	Priority     int
}

// Preamble returns the import line a test file needs, or "" when globals
// are injected.
func (d *Definition) Preamble(globals bool) string {
	if d == nil || globals || d.ImportSource == "" {
		return ""
	}
	return fmt.Sprintf("import { describe, it, expect } from '%s';", d.ImportSource)
}

var defaultRegistry = NewRegistry()

// Registry holds framework definitions ordered by priority.
type Registry struct {
	mu          sync.RWMutex
	definitions []*Definition
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns the global default registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a definition to the default registry.
func Register(d *Definition) {
	defaultRegistry.Register(d)
}

// Register adds a definition, replacing any with the same name.
func (r *Registry) Register(d *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.definitions {
		if existing.Name == d.Name {
			r.definitions[i] = d
			r.sortByPriority()
			return
		}
	}
	r.definitions = append(r.definitions, d)
	r.sortByPriority()
}

func (r *Registry) sortByPriority() {
	sort.SliceStable(r.definitions, func(i, j int) bool {
		if r.definitions[i].Priority != r.definitions[j].Priority {
			return r.definitions[i].Priority > r.definitions[j].Priority
		}
		return r.definitions[i].Name < r.definitions[j].Name
	})
}

// All returns a copy of all definitions, highest priority first.
func (r *Registry) All() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Definition, len(r.definitions))
	copy(result, r.definitions)
	return result
}

// Find returns the definition with the given name, or nil.
func (r *Registry) Find(name string) *Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.definitions {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Clear removes all definitions.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions = nil
}
