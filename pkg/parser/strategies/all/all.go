// Package all imports all framework definitions for side-effect registration.
// Usage: _ "github.com/specvital/stubgen/pkg/parser/strategies/all"
package all

import (
	_ "github.com/specvital/stubgen/pkg/parser/strategies/jest"
	_ "github.com/specvital/stubgen/pkg/parser/strategies/mocha"
	_ "github.com/specvital/stubgen/pkg/parser/strategies/vitest"
)
