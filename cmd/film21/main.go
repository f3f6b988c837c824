package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/film21/internal/constants"
	"github.com/amaumene/film21/internal/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	InitializeConfig()
	InitializeLogger()
	InitializeDatabase(ctx)
	InitializeServices(ctx)

	if Config.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(Logger), middleware.CORS(), middleware.Gzip())
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + Config.Port,
		Handler: r,
	}

	go func() {
		Logger.Infof("[App] starting HTTP server on port %s", Config.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Fatalf("[App] server failed: %v", err)
		}
	}()

	<-ctx.Done()
	Logger.Infof("[App] shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		Logger.Errorf("[App] server shutdown error: %v", err)
	}
	serviceContainer.Cleanup.Stop()
	if err := DB.Close(); err != nil {
		Logger.Errorf("[App] failed to close database: %v", err)
	}
	Logger.Infof("[App] shutdown complete")
}
