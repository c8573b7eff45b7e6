package generator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned by EditorOpener when neither $VISUAL nor $EDITOR is set.
var ErrNoEditor = errors.New("generator: no editor configured ($VISUAL or $EDITOR)")

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Confirmer decides whether an existing test file may be overwritten. diff
// is the unified diff from the existing to the new contents.
type Confirmer interface {
	ConfirmOverwrite(ctx context.Context, path, diff string) (bool, error)
}

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(ctx context.Context, path, diff string) (bool, error)

func (f ConfirmerFunc) ConfirmOverwrite(ctx context.Context, path, diff string) (bool, error) {
	return f(ctx, path, diff)
}

// Opener opens a generated test file for editing.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, path string) error

func (f OpenerFunc) Open(ctx context.Context, path string) error {
	return f(ctx, path)
}

// PromptConfirmer asks on a terminal: "Overwrite <path>? [y/N]".
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer
	// ShowDiff prints the diff before asking.
	ShowDiff bool
}

func (p *PromptConfirmer) ConfirmOverwrite(_ context.Context, path, diff string) (bool, error) {
	if p.ShowDiff && diff != "" {
		if _, err := io.WriteString(p.Out, diff); err != nil {
			return false, err
		}
	}
	if _, err := fmt.Fprintf(p.Out, "%s already exists. Overwrite? [y/N] ", path); err != nil {
		return false, err
	}

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// EditorOpener runs $VISUAL, falling back to $EDITOR, on the file.
// The variable may carry arguments ("code --wait").
type EditorOpener struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

func (o *EditorOpener) Open(ctx context.Context, path string) error {
	getenv := o.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	editor := getenv("VISUAL")
	if editor == "" {
		editor = getenv("EDITOR")
	}
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return ErrNoEditor
	}

	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], path)...)
	cmd.Stdin = o.Stdin
	cmd.Stdout = o.Stdout
	cmd.Stderr = o.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run editor %s: %w", fields[0], err)
	}
	return nil
}

// ensureDirectoryExists creates dir and its parents. An existing directory
// is not an error.
func ensureDirectoryExists(dir string) error {
	return os.MkdirAll(dir, dirPerm)
}

// readExisting returns the current contents of path and whether it exists.
func readExisting(path string) (string, bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(content), true, nil
}

func writeContentToFile(path, content string) error {
	return os.WriteFile(path, []byte(content), filePerm)
}
