package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_ytapi/internal/api"
	"github.com/anatolykoptev/go_ytapi/internal/engine"
	"github.com/anatolykoptev/go_ytapi/internal/ytserver"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var port string
	root := &cobra.Command{
		Use:           "go_ytapi",
		Short:         "YouTube search, video and playlist lookup API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), port)
		},
	}
	root.PersistentFlags().StringVar(&port, "port", env.Str("PORT", "8080"), "HTTP listen port")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), port)
		},
	}

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search videos and print the normalized result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, func(ctx context.Context, svc *api.Service) (any, error) {
				return svc.Search(ctx, args[0])
			})
		},
	}

	video := &cobra.Command{
		Use:   "video <id>",
		Short: "Print normalized video info",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, func(ctx context.Context, svc *api.Service) (any, error) {
				return svc.VideoInfo(ctx, args[0])
			})
		},
	}

	playlist := &cobra.Command{
		Use:   "playlist <id>",
		Short: "Print normalized playlist info",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, func(ctx context.Context, svc *api.Service) (any, error) {
				return svc.PlaylistInfo(ctx, args[0])
			})
		},
	}

	root.AddCommand(serve, search, video, playlist)
	return root
}

// lookupService builds the service used by the one-shot subcommands.
var lookupService = func() (*api.Service, error) {
	return newService(loadConfig())
}

func runLookup(cmd *cobra.Command, fn func(context.Context, *api.Service) (any, error)) error {
	svc, err := lookupService()
	if err != nil {
		return err
	}
	out, err := fn(cmd.Context(), svc)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			return errors.New(apiErr.Message)
		}
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runServe(ctx context.Context, port string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := loadConfig()
	svc, err := newService(cfg)
	if err != nil {
		slog.Error("service init failed", slog.Any("error", err))
		return err
	}

	opts := api.Options{StaticDir: cfg.StaticDir, CORSOrigins: cfg.CORSOrigins}
	if cfg.MCPEnabled {
		opts.MCP = ytserver.Handler(svc, version)
		slog.Info("mcp tools registered", slog.Int("count", 3))
	}
	srv := newHTTPServer(":"+port, api.NewMux(svc, opts), cfg)
	if cfg.MCPEnabled && cfg.MCPPort != "" {
		go serveMCP(svc, cfg.MCPPort)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting go_ytapi", slog.String("port", port), slog.String("version", version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.Any("error", err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// serveMCP runs the standalone MCP listener with its own health and metrics routes.
func serveMCP(svc *api.Service, port string) {
	slog.Info("starting mcp server", slog.String("port", port))
	if err := mcpserver.Run(ytserver.NewServer(svc, version), mcpserver.Config{
		Name:         "go_ytapi",
		Version:      version,
		Port:         port,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("mcp server failed", slog.Any("error", err))
	}
}
