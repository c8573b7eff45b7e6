package framework

import (
	"path/filepath"
	"testing"
)

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("should order by priority then name", func(t *testing.T) {
		t.Parallel()

		// Given
		r := NewRegistry()

		// When
		r.Register(&Definition{Name: FrameworkMocha, Priority: PriorityGeneric})
		r.Register(&Definition{Name: FrameworkJest, Priority: PriorityGeneric})
		r.Register(&Definition{Name: FrameworkVitest, Priority: PrioritySpecialized})

		// Then
		all := r.All()
		want := []string{FrameworkVitest, FrameworkJest, FrameworkMocha}
		if len(all) != len(want) {
			t.Fatalf("expected %d definitions, got %d", len(want), len(all))
		}
		for i, name := range want {
			if all[i].Name != name {
				t.Errorf("position %d: expected %q, got %q", i, name, all[i].Name)
			}
		}
	})

	t.Run("should replace a definition with the same name", func(t *testing.T) {
		t.Parallel()

		// Given
		r := NewRegistry()
		r.Register(&Definition{Name: FrameworkJest, ImportSource: "old"})

		// When
		r.Register(&Definition{Name: FrameworkJest, ImportSource: "@jest/globals"})

		// Then
		if got := len(r.All()); got != 1 {
			t.Fatalf("expected 1 definition, got %d", got)
		}
		if got := r.Find(FrameworkJest).ImportSource; got != "@jest/globals" {
			t.Errorf("expected replaced definition, got import source %q", got)
		}
	})
}

func TestRegistry_FindAndClear(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(&Definition{Name: FrameworkVitest})

	if r.Find(FrameworkVitest) == nil {
		t.Fatal("expected vitest to be found")
	}
	if r.Find("ava") != nil {
		t.Error("expected unknown framework to be nil")
	}

	r.Clear()
	if len(r.All()) != 0 {
		t.Error("registry should be empty after Clear")
	}
}

func TestDefinition_Preamble(t *testing.T) {
	t.Parallel()

	vitest := &Definition{Name: FrameworkVitest, ImportSource: "vitest"}
	mocha := &Definition{Name: FrameworkMocha}

	tests := []struct {
		name    string
		def     *Definition
		globals bool
		want    string
	}{
		{"imports when globals are off", vitest, false, "import { describe, it, expect } from 'vitest';"},
		{"nothing when globals are on", vitest, true, ""},
		{"nothing without an import source", mocha, false, ""},
		{"nil definition", nil, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.def.Preamble(tt.globals); got != tt.want {
				t.Errorf("Preamble(%v) = %q, want %q", tt.globals, got, tt.want)
			}
		})
	}
}

func TestConfigScope(t *testing.T) {
	t.Parallel()

	root := filepath.Join(string(filepath.Separator), "project")

	t.Run("should resolve root relative to the config directory", func(t *testing.T) {
		t.Parallel()

		scope := NewConfigScope(filepath.Join(root, "vitest.config.ts"), "src")

		if want := filepath.Join(root, "src"); scope.BaseDir != want {
			t.Errorf("expected BaseDir %q, got %q", want, scope.BaseDir)
		}
		if !scope.Contains(filepath.Join(root, "src", "a", "b.ts")) {
			t.Error("expected file under root to be contained")
		}
		if scope.Contains(filepath.Join(root, "lib", "b.ts")) {
			t.Error("expected sibling directory to be outside the scope")
		}
	})

	t.Run("should report depth of the base directory", func(t *testing.T) {
		t.Parallel()

		shallow := NewConfigScope("/project/jest.config.js", "")
		deep := NewConfigScope("/project/packages/app/jest.config.js", "")

		if shallow.Depth() >= deep.Depth() {
			t.Errorf("expected nested config to be deeper: %d vs %d", shallow.Depth(), deep.Depth())
		}
		var nilScope *ConfigScope
		if nilScope.Depth() != 0 || nilScope.Contains("/project/a.ts") {
			t.Error("nil scope should be empty")
		}
	})
}
