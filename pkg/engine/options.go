package engine

import (
	"log/slog"

	"github.com/specvital/stubgen/pkg/config"
	"github.com/specvital/stubgen/pkg/parser"
	"github.com/specvital/stubgen/pkg/parser/detection"
	"github.com/specvital/stubgen/pkg/parser/framework"
	"github.com/specvital/stubgen/pkg/target"

	// Register jest, mocha and vitest with the default framework registry.
	_ "github.com/specvital/stubgen/pkg/parser/strategies/all"
)

// Options configures the script engines.
type Options struct {
	// TestDir is the test directory relative to the source file.
	// Default: target.DefaultTestDir.
	TestDir string

	// Suffix is the test file suffix. Default: target.DefaultSuffix.
	Suffix string

	// Framework forces a test framework instead of detecting it.
	Framework string

	// CommonJS enables module.exports / exports.x detection. Default: true.
	CommonJS bool

	// MaxFileSize is the largest source accepted. Default: parser.DefaultMaxFileSize.
	MaxFileSize int64

	// Detector resolves the framework preamble. Default: a detector over the
	// default framework registry.
	Detector *detection.Detector

	// Logger receives engine diagnostics. Default: discard.
	Logger *slog.Logger
}

// Option is a functional option for configuring engines.
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

// WithFramework forces the test framework. Empty means detect.
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

// WithMaxFileSize sets the largest source file accepted.
// Negative values are ignored.
func WithMaxFileSize(size int64) Option {
	return func(o *Options) {
		if size >= 0 {
			o.MaxFileSize = size
		}
	}
}

// WithDetector sets the framework detector.
func WithDetector(d *detection.Detector) Option {
	return func(o *Options) {
		o.Detector = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func newOptions(opts []Option) Options {
	options := Options{
		TestDir:  target.DefaultTestDir,
		Suffix:   target.DefaultSuffix,
		CommonJS: true,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.MaxFileSize <= 0 {
		options.MaxFileSize = parser.DefaultMaxFileSize
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	if options.Detector == nil {
		options.Detector = detection.NewDetector(framework.DefaultRegistry(), config.NewResolver(config.NewCache(), 0))
	}
	return options
}

func (o Options) targetOptions() []target.Option {
	return []target.Option{target.WithTestDir(o.TestDir), target.WithSuffix(o.Suffix)}
}

func (o Options) parseOptions() []parser.ParseOption {
	return []parser.ParseOption{
		parser.WithCommonJS(o.CommonJS),
		parser.WithMaxFileSize(o.MaxFileSize),
		parser.WithLogger(o.Logger),
	}
}
