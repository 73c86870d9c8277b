package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/namesift/internal/application/handlers"
)

type importFlags struct {
	format string
	dryRun bool
}

func newImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import acquired records from JSON or CSV",
		Long:  "Normalizes the records in a file and stores them as a new run in the selected catalog.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", formatAuto, "File format (json, csv, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Normalize without saving")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withDeps(ctx, func(d *Deps) error {
		fmt.Fprintf(out, "Importing %s...\n", filePath)

		result, err := d.ImportHandler.Handle(ctx, filePath, handlers.ImportOptions{
			Format: flags.format,
			DryRun: flags.dryRun,
		})
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		if len(result.Warnings) > 0 {
			fmt.Fprintf(out, "\nWarnings (%d):\n", len(result.Warnings))
			for _, w := range result.Warnings {
				fmt.Fprintf(out, "  %s\n", w.String())
			}
		}

		fmt.Fprintln(out)
		if flags.dryRun {
			fmt.Fprintf(out, "Dry run: %d records would be imported", result.Total)
		} else {
			fmt.Fprintf(out, "Imported run %s: %d records", result.RunID, result.Total)
		}
		fmt.Fprintf(out, " (%d persons, %d flagged for review, %d excluded from grouping)\n",
			result.Persons, result.Flagged, result.Excluded)

		return nil
	})
}
