package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/prashu0705/green-ai-orbit/internal/advisor"
	"github.com/prashu0705/green-ai-orbit/internal/api"
	"github.com/prashu0705/green-ai-orbit/internal/cache"
	"github.com/prashu0705/green-ai-orbit/internal/config"
	"github.com/prashu0705/green-ai-orbit/internal/logger"
	"github.com/prashu0705/green-ai-orbit/internal/service"
	"github.com/prashu0705/green-ai-orbit/internal/store"
	"github.com/prashu0705/green-ai-orbit/pkg/httpserver"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to configuration file (optional)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New().Error("failed to load configuration",
			"error", err.Error(),
		)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithLevel(logger.ParseLevel(cfg.Log.Level))

	log.Info("configuration loaded",
		"store_driver", cfg.Store.Driver,
		"advisor_enabled", cfg.Advisor.Enabled,
	)

	// Root context, cancelled on the first interrupt or termination signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create store
	st, err := store.New(ctx, cfg.Store.Driver, cfg.Store.DSN, cfg.Store.Seed, log)
	if err != nil {
		log.Error("failed to initialize store",
			"error", err.Error(),
		)
		os.Exit(1)
	}
	defer st.Close()

	log.Info("store initialized",
		"driver", st.Driver(),
	)

	// Create cache
	appCache := cache.New(cfg.Cache.TTL)

	// Create service
	svc := service.NewCarbonService(st, appCache, cfg, nil, log)

	// Create and start the background advisor
	adv := advisor.New(cfg.Advisor, svc, log)
	adv.Start(ctx)

	// Create HTTP handler
	handler := api.NewHandler(svc, cfg.Server.BasePath, log)

	// Create HTTP server
	srv := httpserver.New(
		cfg.Server.Addr,
		handler.Router(),
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		log,
	)

	log.Info("starting green-ai-orbit service")

	if err := srv.Run(ctx); err != nil {
		log.Error("server error",
			"error", err.Error(),
		)
	}

	// Graceful shutdown
	log.Info("shutting down advisor")
	adv.Stop()

	log.Info("shutdown complete")
}
