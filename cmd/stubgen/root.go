package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/specvital/stubgen/pkg/config"
	"github.com/specvital/stubgen/pkg/generator"
)

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	verbose   bool
	testDir   string
	suffix    string
	framework string

	logger   *slog.Logger
	resolver *config.Resolver
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		resolver: config.NewResolver(config.NewCache(), 0),
	}

	cmd := &cobra.Command{
		Use:           "stubgen",
		Short:         "Generate unit test stubs for JavaScript and TypeScript modules",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.testDir, "test-dir", "", "test directory relative to each source (default \"__tests__\")")
	flags.StringVar(&a.suffix, "suffix", "", "test file suffix (default \"spec\")")
	flags.StringVar(&a.framework, "framework", "", "force the test framework (jest, mocha, vitest)")

	cmd.AddCommand(
		newGenerateCmd(a),
		newExportsCmd(a),
		newScanCmd(a),
	)
	return cmd
}

// settings returns the flag values layered over the settings file nearest
// to probe.
func (a *app) settings(probe string) (config.Settings, error) {
	file, err := a.resolver.FindSettings(probe)
	if err != nil {
		return config.Settings{}, err
	}
	if file.Path != "" {
		a.logger.Debug("settings loaded", "path", file.Path)
	}

	flags := config.Settings{
		TestDir:   a.testDir,
		Suffix:    a.suffix,
		Framework: a.framework,
	}
	return flags.Merge(file), nil
}

func (a *app) generatorOptions(s config.Settings) []generator.Option {
	opts := []generator.Option{
		generator.WithLogger(a.logger),
		generator.WithTestDir(s.TestDir),
		generator.WithSuffix(s.Suffix),
		generator.WithFramework(s.Framework),
		generator.WithExcludePatterns(s.Exclude),
		generator.WithPatterns(s.Patterns),
		generator.WithWorkers(s.Workers),
	}
	if s.CommonJS != nil {
		opts = append(opts, generator.WithCommonJS(*s.CommonJS))
	}
	return opts
}
