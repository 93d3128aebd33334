package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ml-universe/internal/config"
	"ml-universe/internal/render"
	"ml-universe/internal/universe"
)

func runCmd() *cobra.Command {
	var watch, fullscreen, strict bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the universe window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := openLogger(false)
			defer log.Close()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg.Strict = cfg.Strict || strict
			u, err := universe.New(cfg, log.Zap())
			if err != nil {
				return err
			}
			for _, name := range u.Omitted() {
				warn.Printf("universe: diagram %q omitted, see %s\n", name, logPath)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			g, gctx := errgroup.WithContext(ctx)

			var reload chan *config.Config
			if watch {
				reload = make(chan *config.Config, 1)
				g.Go(func() error {
					// A watcher failure leaves the window running without hot reload.
					err := config.Watch(gctx, configPath, log.Zap().Named("config"), func(c *config.Config, err error) {
						if err != nil {
							return
						}
						c.Strict = c.Strict || strict
						// Keep only the newest config if the frame loop has not caught up.
						select {
						case <-reload:
						default:
						}
						reload <- c
					})
					if err != nil {
						log.Zap().Warn("config watcher stopped", zap.Error(err))
					}
					return nil
				})
			}

			runErr := render.Run(gctx, u, render.Options{Logger: log, Reload: reload, Fullscreen: fullscreen})
			stop()
			if err := g.Wait(); err != nil {
				return err
			}
			return runErr
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the config file when it changes")
	cmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "open fullscreen")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on diagram errors instead of omitting the diagram")
	return cmd
}
