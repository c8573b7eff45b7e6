package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestResolver_ResolveConfig(t *testing.T) {
	t.Parallel()

	t.Run("should find the nearest config walking up", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "package.json"), `{}`)
		writeFile(t, filepath.Join(root, "vitest.config.ts"), `export default {}`)
		source := filepath.Join(root, "src", "lib", "math.ts")
		writeFile(t, source, `export const a = 1;`)

		resolver := NewResolver(NewCache(), 0)
		got, found := resolver.ResolveConfig(source, []string{"vitest.config.*"})

		require.True(t, found)
		assert.Equal(t, filepath.Join(root, "vitest.config.ts"), got)
	})

	t.Run("should prefer the closer directory", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "package.json"), `{}`)
		writeFile(t, filepath.Join(root, "jest.config.js"), ``)
		writeFile(t, filepath.Join(root, "packages", "ui", "jest.config.js"), ``)
		source := filepath.Join(root, "packages", "ui", "button.js")

		resolver := NewResolver(nil, 0)
		got, found := resolver.ResolveConfig(source, []string{"jest.config.*"})

		require.True(t, found)
		assert.Equal(t, filepath.Join(root, "packages", "ui", "jest.config.js"), got)
	})

	t.Run("should use pattern order within a directory", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "jest.config.js"), ``)
		writeFile(t, filepath.Join(root, "vitest.config.ts"), ``)

		resolver := NewResolver(nil, 0)
		got, found := resolver.ResolveConfig(filepath.Join(root, "a.ts"), []string{"vitest.config.*", "jest.config.*"})

		require.True(t, found)
		assert.Equal(t, filepath.Join(root, "vitest.config.ts"), got)
	})

	t.Run("should stop one level above the project root", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "jest.config.js"), ``)
		writeFile(t, filepath.Join(root, "outer", "project", "package.json"), `{}`)
		source := filepath.Join(root, "outer", "project", "src", "a.js")

		resolver := NewResolver(nil, 0)
		_, found := resolver.ResolveConfig(source, []string{"jest.config.*"})

		assert.False(t, found)
	})

	t.Run("should cache hits and misses", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "package.json"), `{}`)
		source := filepath.Join(root, "src", "a.js")

		cache := NewCache()
		resolver := NewResolver(cache, 0)
		_, found := resolver.ResolveConfig(source, []string{"jest.config.*"})
		require.False(t, found)
		assert.Positive(t, cache.Size())

		cached, ok := cache.Get(filepath.Join(root, "src"), []string{"jest.config.*"})
		assert.True(t, ok)
		assert.Empty(t, cached)
	})
}

func TestCache_KeyIgnoresPatternOrder(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	cache.Set("/repo", []string{"b", "a"}, "/repo/a")

	got, ok := cache.Get("/repo", []string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "/repo/a", got)

	cache.Clear()
	assert.Equal(t, 0, cache.Size())
}

func TestLoadSettings(t *testing.T) {
	t.Parallel()

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".stubgen.yaml")
		writeFile(t, path, "testDir: tests\nsuffix: test\nframework: vitest\nexclude:\n  - generated\nworkers: 4\ncommonjs: false\n")

		settings, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "tests", settings.TestDir)
		assert.Equal(t, "test", settings.Suffix)
		assert.Equal(t, "vitest", settings.Framework)
		assert.Equal(t, []string{"generated"}, settings.Exclude)
		assert.Equal(t, 4, settings.Workers)
		require.NotNil(t, settings.CommonJS)
		assert.False(t, *settings.CommonJS)
		assert.Equal(t, path, settings.Path)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".stubgen.json")
		writeFile(t, path, `{"testDir": "__specs__", "patterns": ["src/**/*.ts"]}`)

		settings, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "__specs__", settings.TestDir)
		assert.Equal(t, []string{"src/**/*.ts"}, settings.Patterns)
		assert.Nil(t, settings.CommonJS)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".stubgen.yaml")
		writeFile(t, path, "testDir: [unterminated\n")

		_, err := LoadSettings(path)
		assert.ErrorIs(t, err, ErrInvalidSettings)
	})

	t.Run("negative workers", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".stubgen.yaml")
		writeFile(t, path, "workers: -1\n")

		_, err := LoadSettings(path)
		assert.ErrorIs(t, err, ErrInvalidSettings)
	})
}

func TestResolver_FindSettings(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{}`)
	writeFile(t, filepath.Join(root, ".stubgen.yml"), "suffix: test\n")

	resolver := NewResolver(nil, 0)
	settings, err := resolver.FindSettings(filepath.Join(root, "src", "a.ts"))
	require.NoError(t, err)
	assert.Equal(t, "test", settings.Suffix)

	empty, err := resolver.FindSettings(filepath.Join(t.TempDir(), "a.ts"))
	require.NoError(t, err)
	assert.Equal(t, Settings{}, empty)
}

func TestSettings_Merge(t *testing.T) {
	t.Parallel()

	enabled := true
	got := Settings{Suffix: "test"}.Merge(Settings{Suffix: "spec", TestDir: "__tests__", Workers: 2, CommonJS: &enabled})

	assert.Equal(t, "test", got.Suffix)
	assert.Equal(t, "__tests__", got.TestDir)
	assert.Equal(t, 2, got.Workers)
	assert.Same(t, &enabled, got.CommonJS)
}
