package framework

// Priority constants break ties between config files found in the same
// directory. Higher priority frameworks are evaluated first.
//
// Use increments of 50 to allow for future insertions between priority levels.
const (
	// PriorityGeneric is for common, general-purpose test frameworks.
	// Examples: Jest, Mocha
	PriorityGeneric = 100

	// PrioritySpecialized is for frameworks that share syntax with a generic
	// one and must win when both are configured.
	// Examples: Vitest (Jest-compatible API)
	PrioritySpecialized = 200
)

// Common framework names as constants to ensure consistency.
const (
	FrameworkJest    = "jest"
	FrameworkMocha   = "mocha"
	FrameworkVitest  = "vitest"
	FrameworkUnknown = "unknown"
)
