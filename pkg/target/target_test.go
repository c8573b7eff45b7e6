package target

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fileName string
		wantBase string
		wantExt  string
	}{
		{"foo.ts", "foo", ".ts"},
		{"foo.service.ts", "foo", ".service.ts"},
		{"index.d.ts", "index", ".d.ts"},
		{"Makefile", "Makefile", ""},
		{".eslintrc.js", "", ".eslintrc.js"},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			t.Parallel()

			base, ext := SplitName(tt.fileName)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	root := filepath.Join(string(filepath.Separator), "a", "b")

	tests := []struct {
		name          string
		source        string
		opts          []Option
		wantBase      string
		wantSpecifier string
		wantDir       string
		wantPath      string
	}{
		{
			name:          "multi-dot extension",
			source:        filepath.Join(root, "foo.service.ts"),
			wantBase:      "foo",
			wantSpecifier: "../foo",
			wantDir:       filepath.Join(root, "__tests__"),
			wantPath:      filepath.Join(root, "__tests__", "foo.spec.service.ts"),
		},
		{
			name:          "javascript",
			source:        filepath.Join(root, "greeter.js"),
			wantBase:      "greeter",
			wantSpecifier: "../greeter",
			wantDir:       filepath.Join(root, "__tests__"),
			wantPath:      filepath.Join(root, "__tests__", "greeter.spec.js"),
		},
		{
			name:          "custom suffix",
			source:        filepath.Join(root, "App.tsx"),
			opts:          []Option{WithSuffix(".test.")},
			wantBase:      "App",
			wantSpecifier: "../App",
			wantDir:       filepath.Join(root, "__tests__"),
			wantPath:      filepath.Join(root, "__tests__", "App.test.tsx"),
		},
		{
			name:          "nested test dir",
			source:        filepath.Join(root, "util.ts"),
			opts:          []Option{WithTestDir(filepath.Join("test", "unit"))},
			wantBase:      "util",
			wantSpecifier: "../../util",
			wantDir:       filepath.Join(root, "test", "unit"),
			wantPath:      filepath.Join(root, "test", "unit", "util.spec.ts"),
		},
		{
			name:          "same directory",
			source:        filepath.Join(root, "util.ts"),
			opts:          []Option{WithTestDir(".")},
			wantBase:      "util",
			wantSpecifier: "./util",
			wantDir:       root,
			wantPath:      filepath.Join(root, "util.spec.ts"),
		},
		{
			name:          "empty options keep defaults",
			source:        filepath.Join(root, "util.ts"),
			opts:          []Option{WithTestDir(""), WithSuffix("")},
			wantBase:      "util",
			wantSpecifier: "../util",
			wantDir:       filepath.Join(root, "__tests__"),
			wantPath:      filepath.Join(root, "__tests__", "util.spec.ts"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(tt.source, tt.opts...)
			require.NoError(t, err)

			assert.Equal(t, tt.wantBase, got.BaseName)
			assert.Equal(t, tt.wantSpecifier, got.ModuleSpecifier)
			assert.Equal(t, tt.wantDir, got.Dir)
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Equal(t, tt.source, got.SourcePath)
		})
	}
}

func TestResolve_RelativeSource(t *testing.T) {
	t.Parallel()

	got, err := Resolve("greeter.ts")

	require.NoError(t, err)
	assert.Equal(t, "__tests__", got.Dir)
	assert.Equal(t, filepath.Join("__tests__", "greeter.spec.ts"), got.Path)
	assert.Equal(t, "../greeter", got.ModuleSpecifier)
}

func TestResolve_InvalidSource(t *testing.T) {
	t.Parallel()

	_, err := Resolve(filepath.Join("src", ".env"))

	require.ErrorIs(t, err, ErrInvalidSource)
}
