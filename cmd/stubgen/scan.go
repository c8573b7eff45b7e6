package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/specvital/stubgen/pkg/generator"
)

// settingsProbe stands in for a file inside the scanned directory, so
// settings lookup starts at the directory itself.
const settingsProbe = "_"

type scanFlags struct {
	patterns []string
	exclude  []string
	workers  int
	force    bool
	dryRun   bool
}

type scanOutput struct {
	FilesScanned   int            `json:"filesScanned"`
	FilesGenerated int            `json:"filesGenerated"`
	FilesSkipped   int            `json:"filesSkipped"`
	FilesFailed    int            `json:"filesFailed"`
	Duration       string         `json:"duration"`
	Frameworks     map[string]int `json:"frameworks"`
}

func newScanCmd(a *app) *cobra.Command {
	var f scanFlags

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Generate test stubs for every source file under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, a, f, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&f.patterns, "pattern", nil, "doublestar glob sources must match, relative to <dir> (repeatable)")
	flags.StringSliceVar(&f.exclude, "exclude", nil, "directory name to skip (repeatable)")
	flags.IntVar(&f.workers, "workers", 0, "concurrent generations (default GOMAXPROCS)")
	flags.BoolVarP(&f.force, "force", "f", false, "overwrite existing test files")
	flags.BoolVar(&f.dryRun, "dry-run", false, "compute test files without writing them")
	return cmd
}

func runScan(cmd *cobra.Command, a *app, f scanFlags, dir string) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	settings, err := a.settings(filepath.Join(root, settingsProbe))
	if err != nil {
		return err
	}
	if len(f.patterns) > 0 {
		settings.Patterns = f.patterns
	}
	if len(f.exclude) > 0 {
		settings.Exclude = append(settings.Exclude, f.exclude...)
	}
	if f.workers > 0 {
		settings.Workers = f.workers
	}

	opts := append(a.generatorOptions(settings),
		generator.WithForce(f.force),
		generator.WithDryRun(f.dryRun),
	)

	result, err := generator.New(opts...).GenerateAll(cmd.Context(), root)
	if err != nil {
		return fmt.Errorf("scan %s: %w", root, err)
	}

	for _, batchErr := range result.Errors {
		a.logger.Warn("generation failed", "error", batchErr)
	}

	output := scanOutput{
		FilesScanned:   result.Stats.FilesScanned,
		FilesGenerated: result.Stats.FilesGenerated,
		FilesSkipped:   result.Stats.FilesSkipped,
		FilesFailed:    result.Stats.FilesFailed,
		Duration:       result.Stats.Duration.String(),
		Frameworks:     result.Stats.FrameworkDist,
	}
	return json.NewEncoder(cmd.OutOrStdout()).Encode(output)
}
