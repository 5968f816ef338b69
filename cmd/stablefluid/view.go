package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/stablefluid/internal/fluid"
	"github.com/san-kum/stablefluid/internal/gui"
	"github.com/san-kum/stablefluid/internal/server"
	"github.com/san-kum/stablefluid/internal/sim"
	"github.com/san-kum/stablefluid/internal/viz"
)

const shutdownTimeout = 5 * time.Second

func newLiveCmd() *cobra.Command {
	var flags simFlags
	cmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "interactive terminal viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := presetArg(args)
			cfg, err := flags.resolve(cmd, name)
			if err != nil {
				return err
			}
			return viz.Run(displayName(name), cfg)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newGUICmd() *cobra.Command {
	var (
		flags simFlags
		scale int
	)
	cmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "raylib window viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := presetArg(args)
			cfg, err := flags.resolve(cmd, name)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("scale") {
				cfg.Render.Scale = scale
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return gui.Run(displayName(name), cfg)
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().IntVar(&scale, "scale", 8, "pixels per cell")
	return cmd
}

func newServeCmd() *cobra.Command {
	var (
		flags simFlags
		addr  string
		fps   int
	)
	cmd := &cobra.Command{
		Use:   "serve [preset]",
		Short: "stream the simulation to browsers over websocket",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := presetArg(args)
			cfg, err := flags.resolve(cmd, name)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("fps") {
				cfg.Server.FPS = fps
			}

			f, err := fluid.New(cfg.Params())
			if err != nil {
				return err
			}
			log := slog.With("component", "server", "preset", displayName(name))
			hub, err := server.NewHub(f, server.Options{
				Dt:      cfg.Dt,
				FPS:     cfg.Server.FPS,
				Sources: sim.EmittersFromConfig(cfg),
				Logger:  log,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, hub, cfg.Server.Addr, log)
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&fps, "fps", 30, "simulation and broadcast rate")
	return cmd
}

// serve runs the hub and the HTTP server until ctx is cancelled or either
// of them fails.
func serve(ctx context.Context, hub *server.Hub, addr string, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           hub.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hubErr := make(chan error, 1)
	go func() {
		hubErr <- hub.Run(ctx)
		cancel()
	}()

	srvErr := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr)
		srvErr <- srv.ListenAndServe()
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-srvErr:
		cancel()
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		log.Warn("shutdown", "err", serr)
	}

	if herr := <-hubErr; herr != nil && !errors.Is(herr, context.Canceled) {
		return fmt.Errorf("hub: %w", herr)
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("server stopped")
	return nil
}

func displayName(preset string) string {
	if preset == "" {
		return "default"
	}
	return preset
}
