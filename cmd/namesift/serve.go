package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/namesift/internal/infrastructure/httpapi"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog's hierarchy, overlaps and review list over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, addr string) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		if addr == "" {
			addr = d.Config.HTTP.Addr
		}

		srv := httpapi.NewServer(d.GroupHandler, d.ReviewHandler, d.RunsHandler, groupOptions(d.Config), d.Log)

		httpServer := &http.Server{
			Addr:         addr,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			d.Log.Info("server starting", "addr", addr, "catalog", globalCatalog)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		fmt.Fprintf(cmd.OutOrStdout(), "Serving catalog %q on http://%s\n", globalCatalog, addr)

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("serving http: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		d.Log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		return nil
	})
}
