package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"joinlist/internal/platform/config"
	"joinlist/internal/platform/logger"
	phttp "joinlist/internal/platform/net/http"

	"joinlist/internal/services/api"
)

func main() {
	// .env is a local-dev convenience; deployed environments set real env vars
	_ = godotenv.Load()

	root := config.New()
	apiCfg := root.Prefix("API_")

	// bring up logging early
	l := logger.Get()

	// http server (reads API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Logger:         l,
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error().Err(err).Msg("graceful shutdown failed")
		}
		if err := <-done; err != nil {
			l.Error().Err(err).Msg("http server stopped with error")
		}
	case err := <-done:
		if err != nil {
			l.Panic().Err(err).Msg("http server stopped")
		}
	}
}
