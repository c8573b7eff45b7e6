package parser

import (
	"log/slog"
)

// DefaultMaxFileSize is the default maximum source size accepted by ParseFile (10MB).
const DefaultMaxFileSize = 10 * 1024 * 1024

// ParseOptions configures module parsing.
type ParseOptions struct {
	// CommonJS enables lowering of module.exports / exports.x assignments.
	// Default: true (opt-out via WithCommonJS(false)).
	CommonJS bool

	// Logger receives debug diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger

	// MaxFileSize is the maximum file size in bytes accepted by ParseFile.
	MaxFileSize int64
}

// ParseOption is a functional option for configuring parsing.
type ParseOption func(*ParseOptions)

// WithCommonJS enables or disables CommonJS export detection.
func WithCommonJS(enabled bool) ParseOption {
	return func(o *ParseOptions) {
		o.CommonJS = enabled
	}
}

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(logger *slog.Logger) ParseOption {
	return func(o *ParseOptions) {
		o.Logger = logger
	}
}

// WithMaxFileSize sets the maximum file size ParseFile accepts.
// Negative values are ignored.
func WithMaxFileSize(size int64) ParseOption {
	return func(o *ParseOptions) {
		if size >= 0 {
			o.MaxFileSize = size
		}
	}
}

func newParseOptions(opts []ParseOption) ParseOptions {
	options := ParseOptions{CommonJS: true}
	for _, opt := range opts {
		opt(&options)
	}
	if options.MaxFileSize <= 0 {
		options.MaxFileSize = DefaultMaxFileSize
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	return options
}
