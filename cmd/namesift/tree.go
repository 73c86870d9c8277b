package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ersonp/namesift/internal/application/handlers"
	"github.com/ersonp/namesift/internal/infrastructure/render"
)

// groupFlags are shared by the commands that build a hierarchy.
type groupFlags struct {
	inputFormat string
	runID       string
	noDates     bool
	root        string
}

func (f *groupFlags) register(cmd *cobra.Command) {
	f.registerFileFlags(cmd)
	cmd.Flags().StringVar(&f.runID, "run", "", "Stored run to group (default: latest)")
}

// registerFileFlags registers the flags that apply when grouping a file.
func (f *groupFlags) registerFileFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.inputFormat, "input-format", formatAuto, "Input file format (json, csv, auto)")
	cmd.Flags().BoolVar(&f.noDates, "no-dates", false, "Do not split names by dates")
	cmd.Flags().StringVar(&f.root, "root", "", "Label of the root node")
}

type treeFlags struct {
	group  groupFlags
	format string
	output string
}

func newTreeCmd() *cobra.Command {
	var flags treeFlags

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the surname, name and dates hierarchy",
		Long: "Groups the records of a file, or of a stored run when no file is given, " +
			"into a surname, name and dates hierarchy.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, args, flags)
		},
	}

	flags.group.register(cmd)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format (outline, pretty, json, markdown; default from config)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runTree(cmd *cobra.Command, args []string, flags treeFlags) error {
	ctx := cmd.Context()

	return withGroupDeps(ctx, args, func(d *Deps) error {
		format := flags.format
		if format == "" {
			format = d.Config.Output.Format
		}
		renderer, err := render.ForFormat(format)
		if err != nil {
			return err
		}

		result, err := groupInput(ctx, d, args, flags.group)
		if err != nil {
			return err
		}

		err = writeOutput(cmd.OutOrStdout(), flags.output, func(w io.Writer) error {
			return renderer(w, result.Tree, result.Overlaps)
		})
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		if flags.output != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote hierarchy of %d records to %s\n", result.Stats.Persons-result.Stats.Flagged, flags.output)
		}
		return nil
	})
}

// withGroupDeps opens the catalog store only when no input file was given.
func withGroupDeps(ctx context.Context, args []string, fn func(*Deps) error) error {
	if len(args) == 0 {
		return withDeps(ctx, fn)
	}
	return withOptionalStore(ctx, fn)
}

// groupInput groups the file in args, or the selected stored run.
func groupInput(ctx context.Context, d *Deps, args []string, flags groupFlags) (*handlers.GroupResult, error) {
	req := handlers.GroupRequest{
		Format:  flags.inputFormat,
		RunID:   flags.runID,
		Options: groupOptions(d.Config),
	}
	if len(args) > 0 {
		req.File = args[0]
	}
	if flags.noDates {
		req.Options.ConsiderDates = false
	}
	if flags.root != "" {
		req.Options.RootLabel = flags.root
	}

	result, err := d.GroupHandler.Handle(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("grouping records: %w", err)
	}
	return result, nil
}
