package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/namesift/internal/domain/entities"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage stored runs",
	}

	cmd.AddCommand(
		newRunsListCmd(),
		newRunsDeleteCmd(),
	)

	return cmd
}

func newRunsListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				runs, err := d.RunsHandler.List(ctx, limit)
				if err != nil {
					return err
				}
				printRuns(cmd.OutOrStdout(), runs)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultRunsLimit, "Maximum number of runs to list")

	return cmd
}

func printRuns(w io.Writer, runs []entities.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs stored.")
		fmt.Fprintln(w, "Use 'namesift import FILE' to import records.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-19s  %7s  %7s  %7s  %s\n", "ID", "CREATED", "TOTAL", "PERSONS", "FLAGGED", "SOURCE")
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-19s  %7d  %7d  %7d  %s\n",
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Total,
			r.Persons,
			r.Flagged,
			r.Source,
		)
	}
}

func newRunsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete stored runs and their records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if !force && !confirmAction(cmd.InOrStdin(), out, fmt.Sprintf("Delete %d runs?", len(args))) {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}

			return withDeps(ctx, func(d *Deps) error {
				if err := d.RunsHandler.Delete(ctx, args...); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %d runs\n", len(args))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func confirmAction(in io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(in)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, _ := reader.ReadString('\n') // Error ignored: EOF/error treated as "no"
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
