package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	_ "weather-history/docs"
	v1 "weather-history/internal/controllers/http/v1"
	"weather-history/internal/scheduler"
	"weather-history/pkg/httpserver"
)

const shutdownTimeout = 30 * time.Second

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), *configPath)
		},
	}
}

func serve(parent context.Context, configPath string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	d, err := buildDeps(ctx, configPath, os.Stdout)
	if err != nil {
		return err
	}

	ready := func(c *fiber.Ctx) bool {
		return d.store.Ping(c.UserContext()) == nil
	}

	read, write, idle := d.cfg.Server.Timeouts()
	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:        d.cfg.App.Name,
		ReadTimeout:    read,
		WriteTimeout:   write,
		IdleTimeout:    idle,
		ReadinessProbe: ready,
	})

	v1.NewRouter(
		app,
		d.history,
		d.l,
	)

	var refresher *scheduler.Refresher
	if d.cfg.Refresh.Enabled {
		refresher = scheduler.New(d.history, d.cfg.Refresh.Interval, d.cfg.Refresh.Limit, d.l)
		if err := refresher.Start(); err != nil {
			d.Close()
			return err
		}
	}

	go func() {
		if err := app.Listen(":" + d.cfg.Server.Port); err != nil {
			d.l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	d.l.Info("application started successfully", map[string]any{
		"port":    d.cfg.Server.Port,
		"storage": d.cfg.Storage.Driver,
		"refresh": d.cfg.Refresh.Enabled,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		d.l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if refresher != nil {
			refresher.Stop()
		}
		_ = app.ShutdownWithContext(shutdownCtx)
		d.Close()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}

	return nil
}
