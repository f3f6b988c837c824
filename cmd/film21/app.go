package main

import (
	"context"

	"github.com/amaumene/film21/internal/config"
	"github.com/amaumene/film21/internal/constants"
	"github.com/amaumene/film21/internal/database"
	"github.com/amaumene/film21/internal/extractor"
	"github.com/amaumene/film21/internal/fetcher"
	"github.com/amaumene/film21/internal/handlers"
	"github.com/amaumene/film21/internal/services"
	"github.com/amaumene/film21/pkg/httputil"
	"github.com/amaumene/film21/pkg/logger"
)

const (
	indexCacheSize = 5000
)

var (
	Logger           logger.Logger
	DB               database.Database
	Config           *config.Config
	handler          *handlers.Handler
	serviceContainer *services.Container
)

func InitializeConfig() {
	var err error
	Config, err = config.Load()
	if err != nil {
		// the logger is not configured yet
		logger.New().Fatalf("[App] failed to load configuration: %v", err)
	}
}

func InitializeLogger() {
	Logger = logger.NewWithOptions(logger.Options{
		Level: Config.LogLevel,
		File:  Config.LogFile,
	})

	switch Config.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		Logger.Warnf("[App] unknown log level '%s', defaulting to info", Config.LogLevel)
	}
}

func InitializeDatabase(ctx context.Context) {
	bolt, err := database.NewBolt(Config.DatabasePath)
	if err != nil {
		Logger.Fatalf("[App] failed to initialize database: %v", err)
	}
	cached := database.NewCached(bolt, indexCacheSize, constants.IndexCacheTTL)
	cached.StartCleanup(ctx, constants.IndexCacheCleanupInterval)
	DB = cached

	Logger.Infof("[App] index database initialized at %s", Config.DatabasePath)
}

func InitializeServices(ctx context.Context) {
	client := httputil.NewHTTPClient(Config.HTTPTimeout())
	f := fetcher.New(client, Config.MainURL, Logger)
	extractors := extractor.NewDefaultRegistry(f)

	cleanupService := services.NewCleanupService(DB, Logger)
	cleanupService.Start(ctx)

	serviceContainer = &services.Container{
		Film21:     services.NewFilm21(f, extractors, Config.HomeConcurrency, Logger),
		Extractors: extractors,
		DB:         DB,
		Logger:     Logger,
		Cleanup:    cleanupService,
	}

	handler = handlers.New(serviceContainer, Config)

	Logger.Infof("[App] services initialized for %s with extractors %v", Config.MainURL, extractors.Names())
}
