package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ersonp/namesift/internal/infrastructure/render"
)

type overlapsFlags struct {
	group  groupFlags
	output string
}

func newOverlapsCmd() *cobra.Command {
	var flags overlapsFlags

	cmd := &cobra.Command{
		Use:   "overlaps [file]",
		Short: "Report clusters of records that likely describe the same person",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverlaps(cmd, args, flags)
		},
	}

	flags.group.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runOverlaps(cmd *cobra.Command, args []string, flags overlapsFlags) error {
	ctx := cmd.Context()

	return withGroupDeps(ctx, args, func(d *Deps) error {
		result, err := groupInput(ctx, d, args, flags.group)
		if err != nil {
			return err
		}

		if len(result.Overlaps) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No overlaps detected.")
			return nil
		}

		return writeOutput(cmd.OutOrStdout(), flags.output, func(w io.Writer) error {
			return render.Overlaps(w, result.Overlaps)
		})
	})
}
