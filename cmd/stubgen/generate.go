package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/specvital/stubgen/pkg/generator"
)

type generateFlags struct {
	force  bool
	open   bool
	diff   bool
	dryRun bool
}

func newGenerateCmd(a *app) *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Create the unit test stub for a source file",
		Long: `Create <dir>/__tests__/<name>.spec<ext> next to the source file, importing
everything the source exports. An existing test file is only replaced after
confirmation, or with --force.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, f, args[0])
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&f.force, "force", "f", false, "overwrite an existing test file without asking")
	flags.BoolVar(&f.open, "open", false, "open the test file in $VISUAL or $EDITOR")
	flags.BoolVar(&f.diff, "diff", false, "show a diff against an existing test file")
	flags.BoolVar(&f.dryRun, "dry-run", false, "print the test file instead of writing it")
	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, f generateFlags, path string) error {
	source, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	settings, err := a.settings(source)
	if err != nil {
		return err
	}

	opts := append(a.generatorOptions(settings),
		generator.WithForce(f.force),
		generator.WithDryRun(f.dryRun),
		generator.WithConfirmer(&generator.PromptConfirmer{In: a.stdin, Out: a.stderr, ShowDiff: f.diff}),
	)
	if f.open {
		opts = append(opts, generator.WithOpener(&generator.EditorOpener{Stdin: a.stdin, Stdout: a.stdout, Stderr: a.stderr}))
	}

	result, err := generator.New(opts...).Generate(cmd.Context(), source)
	if err != nil {
		if generator.IsBypassed(err) {
			return nil
		}
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case f.dryRun && f.diff && result.Existed:
		_, err = fmt.Fprint(out, result.Diff)
	case f.dryRun:
		_, err = fmt.Fprint(out, result.Contents)
	default:
		_, err = fmt.Fprintln(out, result.Target.Path)
	}
	return err
}
