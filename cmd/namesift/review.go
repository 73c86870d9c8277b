package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/namesift/internal/infrastructure/render"
)

func newReviewCmd() *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "review",
		Short: "List records flagged for manual review",
		Long:  "Lists person records whose names have unbalanced parentheses and were left out of the hierarchy.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(cmd, runID)
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Stored run to inspect (default: latest)")

	return cmd
}

func runReview(cmd *cobra.Command, runID string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.ReviewHandler.Handle(ctx, runID)
		if err != nil {
			return err
		}

		if len(result.Records) == 0 {
			fmt.Fprintf(out, "No records need review in run %s.\n", result.Run.ID)
			return nil
		}

		fmt.Fprintf(out, "Run %s (%s): %d records need review\n\n", result.Run.ID, result.Run.Source, len(result.Records))
		fmt.Fprintln(out, render.ReviewTable(result.Records))
		return nil
	})
}
