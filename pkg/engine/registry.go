package engine

import (
	"context"
	"sync"

	"github.com/specvital/stubgen/pkg/domain"
	"github.com/specvital/stubgen/pkg/parser"
)

// Builder is implemented by engines that expose the parts of the test file
// before rendering.
type Builder interface {
	Build(ctx context.Context, sourcePath string) (*Contents, error)
}

// Registry maps languages to engines.
type Registry struct {
	mu      sync.RWMutex
	engines map[domain.Language]LanguageEngine
}

// NewRegistry creates a new empty engine registry.
func NewRegistry() *Registry {
	return &Registry{engines: make(map[domain.Language]LanguageEngine)}
}

// NewDefaultRegistry returns a registry with the JavaScript and TypeScript
// engines, both built with opts.
func NewDefaultRegistry(opts ...Option) *Registry {
	r := NewRegistry()
	r.Register(NewJavaScriptEngine(opts...))
	r.Register(NewTypeScriptEngine(opts...))
	return r
}

// Register adds e for every language it declares, replacing earlier engines.
func (r *Registry) Register(e LanguageEngine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, lang := range e.Languages() {
		r.engines[lang] = e
	}
}

// Find returns the engine for lang, or nil.
func (r *Registry) Find(lang domain.Language) LanguageEngine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.engines[lang]
}

// ForPath returns the engine for the file at path. Files in languages with no
// engine get an *parser.UnsupportedLanguageError.
func (r *Registry) ForPath(path string) (LanguageEngine, error) {
	lang := domain.LanguageFromPath(path)
	if e := r.Find(lang); e != nil {
		return e, nil
	}
	return nil, &parser.UnsupportedLanguageError{Language: lang, Path: path}
}
