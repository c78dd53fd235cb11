package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/itchan-dev/bbs/backend/internal/router"
	"github.com/itchan-dev/bbs/backend/internal/setup"
	"github.com/itchan-dev/bbs/shared/config"
	"github.com/itchan-dev/bbs/shared/logger"
	mw "github.com/itchan-dev/bbs/shared/middleware"
)

func main() {
	var configFolder, envFile string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.StringVar(&envFile, "env", ".env", "optional dotenv file with secrets")
	flag.Parse()

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Log.Warn("failed to load env file", "path", envFile, "error", err)
	}

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.Log.Level, cfg.Public.Log.JSON)
	log := logger.Component("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		log.Error("failed to set up dependencies", "error", err)
		os.Exit(1)
	}

	// workers outlive ctx so queued checks can drain during shutdown
	deps.Notifier.Start(context.Background())
	mw.StartLimiterCleanup(ctx, deps.WriteLimiter, 10*time.Minute)

	srv := &http.Server{
		Addr:              cfg.Public.Addr,
		Handler:           router.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server started", "addr", cfg.Public.Addr, "storage", cfg.Public.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Public.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", "error", err)
	}
	if err := deps.Notifier.Shutdown(shutdownCtx); err != nil {
		log.Error("keyword notifier shutdown failed", "error", err)
	}
	if err := deps.Storage.Cleanup(); err != nil {
		log.Error("failed to close storage", "error", err)
	}
	log.Info("stopped")
}
