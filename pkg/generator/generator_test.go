package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/stubgen/pkg/parser"
	"github.com/specvital/stubgen/pkg/parser/detection"
	"github.com/specvital/stubgen/pkg/parser/framework"
)

const serviceSource = `export const VERSION = '1.0.0';

export default class Service {}
`

const serviceTest = `import service, { VERSION } from '../service';

describe('service', () => {});
`

func withoutFramework() Option {
	return WithDetector(detection.NewDetector(framework.NewRegistry(), nil))
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("should write the test file into __tests__", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		source := writeSource(t, dir, "service.ts", serviceSource)

		result, err := New(withoutFramework()).Generate(context.Background(), source)

		require.NoError(t, err)
		testPath := filepath.Join(dir, "__tests__", "service.spec.ts")
		assert.Equal(t, testPath, result.Target.Path)
		assert.True(t, result.Written)
		assert.False(t, result.Existed)
		assert.Equal(t, []string{"VERSION"}, result.Surface.NamedExports)

		written, err := os.ReadFile(testPath)
		require.NoError(t, err)
		assert.Equal(t, serviceTest, string(written))
	})

	t.Run("should accept an existing test directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		source := writeSource(t, dir, "service.ts", serviceSource)
		require.NoError(t, os.Mkdir(filepath.Join(dir, "__tests__"), 0o755))

		_, err := New(withoutFramework()).Generate(context.Background(), source)

		require.NoError(t, err)
	})

	t.Run("should honor test dir and suffix", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		source := writeSource(t, dir, "src/service.ts", serviceSource)

		result, err := New(withoutFramework(), WithTestDir("tests"), WithSuffix("test")).Generate(context.Background(), source)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "src", "tests", "service.test.ts"), result.Target.Path)
		assert.FileExists(t, result.Target.Path)
	})

	t.Run("should open the written file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		source := writeSource(t, dir, "service.ts", serviceSource)

		var opened string
		opener := OpenerFunc(func(_ context.Context, path string) error {
			opened = path
			return nil
		})

		result, err := New(withoutFramework(), WithOpener(opener)).Generate(context.Background(), source)

		require.NoError(t, err)
		assert.Equal(t, result.Target.Path, opened)
	})

	t.Run("should not touch the filesystem in dry-run mode", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		source := writeSource(t, dir, "service.ts", serviceSource)

		result, err := New(withoutFramework(), WithDryRun(true)).Generate(context.Background(), source)

		require.NoError(t, err)
		assert.False(t, result.Written)
		assert.Equal(t, serviceTest, result.Contents)
		assert.NoDirExists(t, filepath.Join(dir, "__tests__"))
	})
}

func TestGenerate_ExistingFile(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (source, testPath string) {
		t.Helper()
		dir := t.TempDir()
		source = writeSource(t, dir, "service.ts", serviceSource)
		testPath = writeSource(t, dir, "__tests__/service.spec.ts", "// hand-written\n")
		return source, testPath
	}

	t.Run("should bypass without a confirmer", func(t *testing.T) {
		t.Parallel()

		source, testPath := setup(t)

		result, err := New(withoutFramework()).Generate(context.Background(), source)

		require.Error(t, err)
		assert.True(t, IsBypassed(err))
		assert.ErrorIs(t, err, ErrTestFileExists)
		assert.Equal(t, ErrorCodeTestFileAlreadyExists, CodeOf(err))
		assert.True(t, result.Existed)
		assert.False(t, result.Written)

		content, _ := os.ReadFile(testPath)
		assert.Equal(t, "// hand-written\n", string(content))
	})

	t.Run("should bypass when the user declines", func(t *testing.T) {
		t.Parallel()

		source, _ := setup(t)

		var gotDiff string
		confirmer := ConfirmerFunc(func(_ context.Context, _ string, diff string) (bool, error) {
			gotDiff = diff
			return false, nil
		})

		_, err := New(withoutFramework(), WithConfirmer(confirmer)).Generate(context.Background(), source)

		assert.True(t, IsBypassed(err))
		assert.Contains(t, gotDiff, "-// hand-written")
		assert.Contains(t, gotDiff, "+import service, { VERSION } from '../service';")
	})

	t.Run("should overwrite when the user confirms", func(t *testing.T) {
		t.Parallel()

		source, testPath := setup(t)
		confirmer := ConfirmerFunc(func(context.Context, string, string) (bool, error) { return true, nil })

		result, err := New(withoutFramework(), WithConfirmer(confirmer)).Generate(context.Background(), source)

		require.NoError(t, err)
		assert.True(t, result.Written)
		content, _ := os.ReadFile(testPath)
		assert.Equal(t, serviceTest, string(content))
	})

	t.Run("should overwrite with force", func(t *testing.T) {
		t.Parallel()

		source, testPath := setup(t)

		_, err := New(withoutFramework(), WithForce(true)).Generate(context.Background(), source)

		require.NoError(t, err)
		content, _ := os.ReadFile(testPath)
		assert.Equal(t, serviceTest, string(content))
	})

	t.Run("dry run without a confirmer skips like a real run", func(t *testing.T) {
		t.Parallel()

		source, _ := setup(t)

		result, err := New(withoutFramework(), WithDryRun(true)).Generate(context.Background(), source)

		require.Error(t, err)
		assert.True(t, IsBypassed(err))
		assert.True(t, result.Existed)
		assert.Contains(t, result.Diff, "-// hand-written")
	})

	t.Run("dry run with a confirmer returns the diff without asking", func(t *testing.T) {
		t.Parallel()

		source, _ := setup(t)
		asked := false
		confirmer := ConfirmerFunc(func(context.Context, string, string) (bool, error) {
			asked = true
			return false, nil
		})

		result, err := New(withoutFramework(), WithDryRun(true), WithConfirmer(confirmer)).Generate(context.Background(), source)

		require.NoError(t, err)
		assert.False(t, asked)
		assert.False(t, result.Written)
		assert.Contains(t, result.Diff, "+import service, { VERSION } from '../service';")
	})

	t.Run("should report confirmer failures as unknown", func(t *testing.T) {
		t.Parallel()

		source, _ := setup(t)
		boom := errors.New("tty closed")
		confirmer := ConfirmerFunc(func(context.Context, string, string) (bool, error) { return false, boom })

		_, err := New(withoutFramework(), WithConfirmer(confirmer)).Generate(context.Background(), source)

		require.ErrorIs(t, err, boom)
		assert.False(t, IsBypassed(err))
		assert.Equal(t, ErrorCodeUnknown, CodeOf(err))
	})
}

func TestGenerate_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unsupported language", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		source := writeSource(t, dir, "main.go", "package main\n")

		_, err := New(withoutFramework()).Generate(context.Background(), source)

		require.ErrorIs(t, err, parser.ErrUnsupportedLanguage)
		assert.EqualError(t, err, "go files are not supported at the moment. Sorry!")
		assert.NoDirExists(t, filepath.Join(dir, "__tests__"))
	})

	t.Run("test directory cannot be created", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		source := writeSource(t, dir, "service.ts", serviceSource)
		// A regular file where the directory should go.
		writeSource(t, dir, "__tests__", "")

		_, err := New(withoutFramework()).Generate(context.Background(), source)

		require.Error(t, err)
		assert.Equal(t, ErrorCodeUnableToCreateTestDirectory, CodeOf(err))
		assert.False(t, IsBypassed(err))
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		_, err := New(withoutFramework()).Generate(context.Background(), filepath.Join(dir, "missing.js"))

		require.ErrorIs(t, err, os.ErrNotExist)
		assert.Equal(t, ErrorCodeUnknown, CodeOf(err))
	})

	t.Run("opener failure", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		source := writeSource(t, dir, "service.ts", serviceSource)
		opener := OpenerFunc(func(context.Context, string) error { return ErrNoEditor })

		result, err := New(withoutFramework(), WithOpener(opener)).Generate(context.Background(), source)

		require.ErrorIs(t, err, ErrNoEditor)
		assert.True(t, result.Written)
	})
}

func TestGenerator_Exports(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := writeSource(t, dir, "service.ts", serviceSource)

	contents, err := New(withoutFramework()).Exports(context.Background(), source)

	require.NoError(t, err)
	assert.True(t, contents.Surface.HasDefaultExport)
	assert.Equal(t, []string{"VERSION"}, contents.Surface.NamedExports)
	assert.NoDirExists(t, filepath.Join(dir, "__tests__"))
}

func TestGeneratorError(t *testing.T) {
	t.Parallel()

	cause := errors.New("permission denied")

	tests := []struct {
		name string
		err  *GeneratorError
		want string
	}{
		{
			name: "code only",
			err:  &GeneratorError{Code: ErrorCodeUnknown},
			want: "unknown",
		},
		{
			name: "code with path and cause",
			err:  &GeneratorError{Code: ErrorCodeUnableToCreateTestDirectory, Path: "/a/__tests__", Err: cause},
			want: "unable to create test directory: /a/__tests__: permission denied",
		},
		{
			name: "message overrides code",
			err:  &GeneratorError{Code: ErrorCodeUnknown, Message: "write test file", Path: "/a/x.spec.ts", Err: cause},
			want: "write test file: /a/x.spec.ts: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	assert.False(t, IsBypassed(cause))
	assert.False(t, IsBypassed(nil))
	assert.Equal(t, ErrorCodeUnknown, CodeOf(cause))
}

func TestPromptConfirmer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			t.Parallel()

			var out strings.Builder
			c := &PromptConfirmer{In: strings.NewReader(tt.input), Out: &out, ShowDiff: true}

			got, err := c.ConfirmOverwrite(context.Background(), "a.spec.ts", "--- diff\n")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "--- diff\na.spec.ts already exists. Overwrite? [y/N] ", out.String())
		})
	}
}

func TestEditorOpener(t *testing.T) {
	t.Parallel()

	t.Run("no editor configured", func(t *testing.T) {
		t.Parallel()

		o := &EditorOpener{Getenv: func(string) string { return "" }}

		require.ErrorIs(t, o.Open(context.Background(), "a.spec.ts"), ErrNoEditor)
	})

	t.Run("falls back to EDITOR", func(t *testing.T) {
		t.Parallel()

		env := map[string]string{"EDITOR": "stubgen-editor-that-does-not-exist --wait"}
		o := &EditorOpener{Getenv: func(k string) string { return env[k] }}

		err := o.Open(context.Background(), "a.spec.ts")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "run editor stubgen-editor-that-does-not-exist")
	})
}

func TestUnifiedDiff(t *testing.T) {
	t.Parallel()

	same, err := UnifiedDiff("a.spec.ts", "x\n", "x\n")
	require.NoError(t, err)
	assert.Empty(t, same)

	diff, err := UnifiedDiff("a.spec.ts", "old\n", "new\n")
	require.NoError(t, err)
	assert.Contains(t, diff, "--- a.spec.ts (existing)")
	assert.Contains(t, diff, "+++ a.spec.ts (generated)")
	assert.Contains(t, diff, "-old")
	assert.Contains(t, diff, "+new")
}
