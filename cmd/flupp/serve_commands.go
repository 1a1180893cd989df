package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"flupp/internal/api"
	"flupp/internal/config"
	"flupp/internal/importer"
	"flupp/internal/logbook"
	"flupp/internal/watch"
)

func newWatcher(ctx *commandContext, cfg *config.Config, store *logbook.Store) *watch.Watcher {
	imp := importer.New(cfg, store, ctx.log())
	debounce := time.Duration(cfg.Import.WatchDebounceMillis) * time.Millisecond
	return watch.New(cfg.Paths.WatchDir, debounce, imp, ctx.log())
}

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Import logbooks dropped into the watch directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *logbook.Store) error {
				if cfg.Paths.WatchDir == "" {
					return errors.New("paths.watch_dir is not configured")
				}
				return newWatcher(ctx, cfg, store).Run(cmd.Context())
			})
		},
	}
}

func newServeCommand(ctx *commandContext) *cobra.Command {
	var (
		bind      string
		withWatch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the logbook API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *logbook.Store) error {
				effective := *cfg
				if bind != "" {
					effective.API.Bind = bind
				}
				srv, err := api.New(&effective, store, ctx.log())
				if err != nil {
					return err
				}
				if err := srv.Listen(); err != nil {
					return err
				}

				group, groupCtx := errgroup.WithContext(cmd.Context())
				group.Go(func() error { return srv.Serve(groupCtx) })
				if withWatch && effective.Paths.WatchDir != "" {
					w := newWatcher(ctx, &effective, store)
					group.Go(func() error { return w.Run(groupCtx) })
				}
				err = group.Wait()
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "Override api.bind")
	cmd.Flags().BoolVar(&withWatch, "watch", false, "Also import files from the watch directory")
	return cmd
}
