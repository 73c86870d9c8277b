package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/namesift/internal/infrastructure/render"
)

// watchDebounce is how long the input must stay quiet before regrouping.
const watchDebounce = 500 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var flags treeFlags

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Regroup a file every time it changes",
		Long: "Prints the hierarchy of a file, then watches the file and rewrites the output " +
			"whenever the file changes. Stop with Ctrl-C.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], flags)
		},
	}

	flags.group.registerFileFlags(cmd)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format (outline, pretty, json, markdown; default from config)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file rewritten on every change (default: stdout)")

	return cmd
}

func runWatch(cmd *cobra.Command, filePath string, flags treeFlags) error {
	ctx := cmd.Context()

	return withOptionalStore(ctx, func(d *Deps) error {
		format := flags.format
		if format == "" {
			format = d.Config.Output.Format
		}
		renderer, err := render.ForFormat(format)
		if err != nil {
			return err
		}

		var mu sync.Mutex
		regroup := func() error {
			mu.Lock()
			defer mu.Unlock()

			result, err := groupInput(ctx, d, []string{filePath}, flags.group)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), flags.output, func(w io.Writer) error {
				return renderer(w, result.Tree, result.Overlaps)
			})
		}

		if err := regroup(); err != nil {
			return err
		}

		fw, err := newFileWatcher(filePath, watchDebounce, func() {
			if ctx.Err() != nil {
				return
			}
			if err := regroup(); err != nil {
				d.Log.Error("regrouping failed", "file", filePath, "error", err)
				return
			}
			d.Log.Info("output updated", "file", filePath, "output", flags.output)
		}, d.Log)
		if err != nil {
			return err
		}
		defer fw.Close()

		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes...\n", filePath)
		return fw.Run(ctx)
	})
}
