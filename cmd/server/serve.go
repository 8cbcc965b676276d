package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/listerdale/chatbot/internal/infrastructure/config"
	applog "github.com/listerdale/chatbot/internal/infrastructure/log"
	"github.com/listerdale/chatbot/internal/infrastructure/singleton"
	"github.com/listerdale/chatbot/internal/wire"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(cfgFn func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cfgFn()
			if err := cfg.Validate(); err != nil {
				if errors.Is(err, config.ErrMissingAPIKey) {
					return fmt.Errorf("%w: copy .env.example to .env and add your key", err)
				}
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	logger := applog.NewModuleLogger("cmd", "serve")

	listener, err := singleton.CheckAndLock(cfg.Server.Addr())
	if errors.Is(err, singleton.ErrAlreadyRunning) {
		logger.Info("An instance is already running, exiting", "addr", cfg.Server.Addr())
		return nil
	}
	if err != nil {
		return err
	}

	app, cleanup, err := wire.InitializeAll(cfg)
	if err != nil {
		listener.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer cleanup()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Listerdale chatbot ready",
		"addr", cfg.Server.Addr(),
		"model", cfg.LLM.Model,
		"db", cfg.Database.Path,
		"embed", fmt.Sprintf("http://localhost%s/embed.js", cfg.Server.Addr()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Serve(listener)
	})
	g.Go(func() error {
		<-gctx.Done()
		return app.Shutdown()
	})
	return g.Wait()
}
