package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/specvital/stubgen/pkg/domain"
)

// DefaultSkipPatterns contains directory names that are skipped by default during discovery.
var DefaultSkipPatterns = []string{
	"node_modules",
	".git",
	"vendor",
	"dist",
	"build",
	".next",
	"coverage",
	".cache",
	"__mocks__",
	"__fixtures__",
}

var (
	// ErrBatchCancelled is returned when batch generation is cancelled via context.
	ErrBatchCancelled = errors.New("generator: batch cancelled")
	// ErrBatchTimeout is returned when batch generation exceeds the timeout duration.
	ErrBatchTimeout = errors.New("generator: batch timeout")
)

// Batch error phases.
const (
	PhaseDiscovery = "discovery"
	PhaseGenerate  = "generate"
)

// BatchResult contains the outcome of a GenerateAll call.
type BatchResult struct {
	// Generated holds one result per written (or, in dry-run mode, computed)
	// test file, sorted by source path.
	Generated []Result `json:"generated"`

	// Skipped holds sources whose test file already existed, sorted by path.
	Skipped []SkippedFile `json:"skipped"`

	// Errors contains non-fatal errors encountered during generation.
	Errors []BatchError `json:"errors"`

	// Stats provides batch statistics.
	Stats BatchStats `json:"stats"`
}

// SkippedFile is a source left alone because its test file exists.
type SkippedFile struct {
	SourcePath string `json:"sourcePath"`
	TestPath   string `json:"testPath"`
}

// BatchError represents an error that occurred during a specific phase of batch generation.
type BatchError struct {
	// Err is the underlying error.
	Err error `json:"-"`

	// Path is the file path where the error occurred (may be empty for non-file errors).
	Path string `json:"path,omitempty"`

	// Phase indicates which phase the error occurred in.
	// Values: "discovery", "generate"
	Phase string `json:"phase"`
}

// Error implements the error interface.
func (e BatchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Phase, e.Path, e.Err)
}

func (e BatchError) Unwrap() error {
	return e.Err
}

// BatchStats provides statistics about a batch run.
type BatchStats struct {
	// FilesScanned is the total number of source candidates discovered.
	FilesScanned int `json:"filesScanned"`

	// FilesGenerated is the number of test files generated.
	FilesGenerated int `json:"filesGenerated"`

	// FilesSkipped is the number of sources whose test file already existed.
	FilesSkipped int `json:"filesSkipped"`

	// FilesFailed is the number of sources that failed to generate.
	FilesFailed int `json:"filesFailed"`

	// FrameworkDist counts generated files per test framework.
	// Key "unknown" counts files with no detected framework.
	FrameworkDist map[string]int `json:"frameworkDist"`

	// Duration is the total batch duration.
	Duration time.Duration `json:"duration"`
}

// GenerateAll generates test files for every JavaScript and TypeScript
// source under root that is not itself a test. Existing test files are
// skipped unless Force is set; no file is opened and nothing is confirmed.
func (g *Generator) GenerateAll(ctx context.Context, root string) (*BatchResult, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, g.options.Timeout)
	defer cancel()

	result := &BatchResult{
		Generated: []Result{},
		Skipped:   []SkippedFile{},
		Errors:    []BatchError{},
		Stats: BatchStats{
			FrameworkDist: make(map[string]int),
		},
	}

	sources, errs := g.discoverSourceFiles(ctx, root)
	for _, err := range errs {
		result.Errors = append(result.Errors, BatchError{
			Err:   err,
			Phase: PhaseDiscovery,
		})
	}
	result.Stats.FilesScanned = len(sources)

	if len(sources) > 0 {
		g.generateParallel(ctx, sources, result)
	}

	result.Stats.FilesGenerated = len(result.Generated)
	result.Stats.FilesSkipped = len(result.Skipped)
	result.Stats.FilesFailed = len(result.Errors) - len(errs)
	result.Stats.Duration = time.Since(startTime)

	g.options.Logger.InfoContext(ctx, "batch finished",
		"root", root,
		"scanned", result.Stats.FilesScanned,
		"generated", result.Stats.FilesGenerated,
		"skipped", result.Stats.FilesSkipped,
		"failed", result.Stats.FilesFailed,
		"duration", result.Stats.Duration,
	)

	// Check for timeout or cancellation
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result, ErrBatchTimeout
		}
		if errors.Is(err, context.Canceled) {
			return result, ErrBatchCancelled
		}
	}

	return result, nil
}

// discoverSourceFiles walks root to find source candidates.
// Returns absolute paths when root is absolute.
func (g *Generator) discoverSourceFiles(ctx context.Context, root string) ([]string, []error) {
	skipSet := buildSkipSet(append(append([]string{}, DefaultSkipPatterns...), g.options.ExcludePatterns...))
	if testDir := g.options.TestDir; testDir != "" && !strings.ContainsAny(testDir, `/\`) && testDir != "." {
		skipSet[testDir] = true
	}

	var (
		files []string
		errs  []error
	)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if walkErr != nil {
			errs = append(errs, fmt.Errorf("access error at %s: %w", path, walkErr))
			return nil
		}

		if d.IsDir() {
			if shouldSkipDir(path, root, skipSet) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isSourceCandidate(path) {
			return nil
		}

		if len(g.options.Patterns) > 0 {
			if !matchesAnyPattern(path, root, g.options.Patterns) {
				return nil
			}
		}

		if g.options.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				errs = append(errs, fmt.Errorf("failed to get file info for %s: %w", path, err))
				return nil
			}
			if info.Size() > g.options.MaxFileSize {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			errs = append(errs, err)
		}
	}

	return files, errs
}

func (g *Generator) generateParallel(ctx context.Context, sources []string, result *BatchResult) {
	workers := g.options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	sem := semaphore.NewWeighted(int64(workers))
	eg, egCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex

	for _, source := range sources {
		eg.Go(func() error {
			if err := sem.Acquire(egCtx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			fileResult, err := g.generateOne(egCtx, source)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				result.Generated = append(result.Generated, *fileResult)
				framework := fileResult.Framework
				if framework == "" {
					framework = "unknown"
				}
				result.Stats.FrameworkDist[framework]++
			case IsBypassed(err):
				skipped := SkippedFile{SourcePath: source}
				if fileResult != nil {
					skipped.TestPath = fileResult.Target.Path
				}
				result.Skipped = append(result.Skipped, skipped)
			default:
				result.Errors = append(result.Errors, BatchError{
					Err:   err,
					Path:  source,
					Phase: PhaseGenerate,
				})
			}
			return nil
		})
	}

	_ = eg.Wait()

	// Sort by path for deterministic output order.
	sort.Slice(result.Generated, func(i, j int) bool {
		return result.Generated[i].Target.SourcePath < result.Generated[j].Target.SourcePath
	})
	sort.Slice(result.Skipped, func(i, j int) bool {
		return result.Skipped[i].SourcePath < result.Skipped[j].SourcePath
	})
	sort.SliceStable(result.Errors, func(i, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})
}

func (g *Generator) generateOne(ctx context.Context, source string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return g.generate(ctx, source, nil, nil)
}

func buildSkipSet(patterns []string) map[string]bool {
	skipSet := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		skipSet[p] = true
	}
	return skipSet
}

func shouldSkipDir(path, rootPath string, skipSet map[string]bool) bool {
	if path == rootPath {
		return false
	}

	base := filepath.Base(path)
	return skipSet[base]
}

func matchesAnyPattern(path, rootPath string, patterns []string) bool {
	relPath, err := filepath.Rel(rootPath, path)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
	}
	return false
}

// isSourceCandidate reports whether path is a script source that should get
// a test: not a test itself and not a type declaration.
func isSourceCandidate(path string) bool {
	if !domain.LanguageFromPath(path).IsScript() {
		return false
	}

	lowerBase := strings.ToLower(filepath.Base(path))
	for _, ext := range []string{".d.ts", ".d.mts", ".d.cts"} {
		if strings.HasSuffix(lowerBase, ext) {
			return false
		}
	}
	return !isJSTestFile(path)
}

func isJSTestFile(path string) bool {
	base := filepath.Base(path)
	lowerBase := strings.ToLower(base)

	if strings.Contains(lowerBase, ".test.") || strings.Contains(lowerBase, ".spec.") {
		return true
	}

	// Playwright setup/teardown files: *.setup.{js,ts,jsx,tsx}
	ext := filepath.Ext(lowerBase)
	if ext == ".js" || ext == ".ts" || ext == ".jsx" || ext == ".tsx" {
		nameWithoutExt := strings.TrimSuffix(lowerBase, ext)
		if strings.HasSuffix(nameWithoutExt, ".setup") || strings.HasSuffix(nameWithoutExt, ".teardown") {
			return true
		}
	}

	// Cypress E2E test files: *.cy.{js,ts,jsx,tsx}
	if strings.Contains(lowerBase, ".cy.") {
		return true
	}

	// Framework config files are not units under test.
	if strings.HasPrefix(lowerBase, "jest.config.") || strings.HasPrefix(lowerBase, "vitest.config.") ||
		strings.HasPrefix(lowerBase, "vitest.workspace.") || strings.HasPrefix(lowerBase, ".mocharc.") {
		return true
	}

	normalizedPath := filepath.ToSlash(path)

	if strings.Contains(normalizedPath, "/__tests__/") || strings.HasPrefix(normalizedPath, "__tests__/") {
		return true
	}

	// Cypress e2e/ and component/ directories
	if strings.Contains(normalizedPath, "/cypress/e2e/") || strings.Contains(normalizedPath, "/cypress/component/") {
		return true
	}

	return false
}
