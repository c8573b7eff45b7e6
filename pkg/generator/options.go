package generator

import (
	"log/slog"
	"time"

	"github.com/specvital/stubgen/pkg/engine"
	"github.com/specvital/stubgen/pkg/parser"
	"github.com/specvital/stubgen/pkg/parser/detection"
	"github.com/specvital/stubgen/pkg/target"
)

const (
	// DefaultWorkers indicates that batch generation should use GOMAXPROCS as the worker count.
	DefaultWorkers = 0
	// DefaultTimeout is the default batch generation timeout duration.
	DefaultTimeout = 5 * time.Minute
	// MaxWorkers is the maximum number of concurrent workers allowed.
	MaxWorkers = 1024
)

// Options configures generator behavior.
type Options struct {
	// TestDir is the test directory, relative to each source file.
	TestDir string

	// Suffix is the test file suffix (foo.<suffix>.ts).
	Suffix string

	// Framework forces the test framework. Empty means detect per file.
	Framework string

	// CommonJS enables module.exports / exports.x detection.
	// Default: true (opt-out via WithCommonJS(false)).
	CommonJS bool

	// Force overwrites existing test files without asking.
	Force bool

	// DryRun computes contents and diffs without touching the filesystem.
	DryRun bool

	// Confirmer is asked before overwriting. Nil means never overwrite
	// unless Force is set.
	Confirmer Confirmer

	// Opener opens each written file. Nil means don't open. Batch generation
	// never opens files.
	Opener Opener

	// Detector resolves the framework preamble. Nil uses the engine default.
	Detector *detection.Detector

	// Engines overrides the engine registry built from the options above.
	Engines *engine.Registry

	// Logger receives pipeline diagnostics. Default: discard.
	Logger *slog.Logger

	// ExcludePatterns specifies directory names to skip during batch discovery.
	// These are combined with DefaultSkipPatterns.
	ExcludePatterns []string

	// MaxFileSize is the maximum source size in bytes. Larger files are
	// skipped by batch discovery and rejected by Generate.
	MaxFileSize int64

	// Patterns specifies doublestar globs, relative to the batch root, that
	// source files must match. Empty means every candidate.
	Patterns []string

	// Timeout is the maximum duration for one GenerateAll call.
	// Zero or negative values use DefaultTimeout.
	Timeout time.Duration

	// Workers specifies the number of concurrent file generations.
	// Zero or negative values use runtime.GOMAXPROCS(0).
	Workers int
}

// Option is a functional option for configuring Generator.
type Option func(*Options)

// WithTestDir sets the test directory name. Empty keeps the default.
func WithTestDir(dir string) Option {
	return func(o *Options) {
		if dir != "" {
			o.TestDir = dir
		}
	}
}

// WithSuffix sets the test file suffix. Empty keeps the default.
func WithSuffix(suffix string) Option {
	return func(o *Options) {
		if suffix != "" {
			o.Suffix = suffix
		}
	}
}

// WithFramework forces the test framework.
func WithFramework(name string) Option {
	return func(o *Options) {
		o.Framework = name
	}
}

// WithCommonJS enables or disables CommonJS export detection.
func WithCommonJS(enabled bool) Option {
	return func(o *Options) {
		o.CommonJS = enabled
	}
}

// WithForce overwrites existing test files without confirmation.
func WithForce(force bool) Option {
	return func(o *Options) {
		o.Force = force
	}
}

// WithDryRun disables all filesystem writes.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) {
		o.DryRun = dryRun
	}
}

// WithConfirmer sets the overwrite confirmation.
func WithConfirmer(c Confirmer) Option {
	return func(o *Options) {
		o.Confirmer = c
	}
}

// WithOpener sets how written files are opened.
func WithOpener(op Opener) Option {
	return func(o *Options) {
		o.Opener = op
	}
}

// WithDetector sets the framework detector.
func WithDetector(d *detection.Detector) Option {
	return func(o *Options) {
		o.Detector = d
	}
}

// WithEngines sets the engine registry.
func WithEngines(r *engine.Registry) Option {
	return func(o *Options) {
		o.Engines = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithExcludePatterns adds directory names to skip during batch discovery.
func WithExcludePatterns(patterns []string) Option {
	return func(o *Options) {
		o.ExcludePatterns = patterns
	}
}

// WithMaxFileSize sets the maximum source size.
// Negative values are ignored.
func WithMaxFileSize(size int64) Option {
	return func(o *Options) {
		if size >= 0 {
			o.MaxFileSize = size
		}
	}
}

// WithPatterns sets doublestar globs that batch sources must match.
func WithPatterns(patterns []string) Option {
	return func(o *Options) {
		o.Patterns = patterns
	}
}

// WithTimeout sets the batch timeout duration.
// Negative values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithWorkers sets the number of concurrent file generations.
// Negative values are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

// newDefaultOptions returns Options with default values.
func newDefaultOptions() Options {
	return Options{
		TestDir:  target.DefaultTestDir,
		Suffix:   target.DefaultSuffix,
		CommonJS: true,
	}
}

func applyDefaults(opts *Options) {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = parser.DefaultMaxFileSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Engines == nil {
		opts.Engines = engine.NewDefaultRegistry(opts.engineOptions()...)
	}
}

func (o *Options) engineOptions() []engine.Option {
	engineOpts := []engine.Option{
		engine.WithTestDir(o.TestDir),
		engine.WithSuffix(o.Suffix),
		engine.WithFramework(o.Framework),
		engine.WithCommonJS(o.CommonJS),
		engine.WithMaxFileSize(o.MaxFileSize),
		engine.WithLogger(o.Logger),
	}
	if o.Detector != nil {
		engineOpts = append(engineOpts, engine.WithDetector(o.Detector))
	}
	return engineOpts
}

func (o *Options) targetOptions() []target.Option {
	return []target.Option{target.WithTestDir(o.TestDir), target.WithSuffix(o.Suffix)}
}
