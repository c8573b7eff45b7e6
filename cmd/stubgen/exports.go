package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specvital/stubgen/pkg/domain"
	"github.com/specvital/stubgen/pkg/generator"
)

type exportsOutput struct {
	Source    string               `json:"source"`
	Surface   domain.ExportSurface `json:"surface"`
	Import    string               `json:"import,omitempty"`
	TestPath  string               `json:"testPath"`
	Framework string               `json:"framework,omitempty"`
}

func newExportsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "exports <file>",
		Short: "Print the export surface of a source file and its test import",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			settings, err := a.settings(source)
			if err != nil {
				return err
			}

			contents, err := generator.New(a.generatorOptions(settings)...).Exports(cmd.Context(), source)
			if err != nil {
				return err
			}

			output := exportsOutput{
				Source:   source,
				Surface:  contents.Surface,
				TestPath: contents.Target.Path,
			}
			output.Import, _ = contents.ImportStatement()
			if !contents.Framework.IsUnknown() {
				output.Framework = contents.Framework.Framework
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(output)
			}
			return printExports(cmd, output)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printExports(cmd *cobra.Command, o exportsOutput) error {
	var b strings.Builder
	fmt.Fprintf(&b, "default: %t\n", o.Surface.HasDefaultExport)
	fmt.Fprintf(&b, "named:   %s\n", strings.Join(o.Surface.NamedExports, ", "))
	if o.Import != "" {
		fmt.Fprintf(&b, "import:  %s\n", o.Import)
	}
	fmt.Fprintf(&b, "test:    %s\n", o.TestPath)
	_, err := fmt.Fprint(cmd.OutOrStdout(), b.String())
	return err
}
