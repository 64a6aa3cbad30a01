package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AnTengye/tenantdesk/config"
	"github.com/AnTengye/tenantdesk/handler"
	"github.com/AnTengye/tenantdesk/pkg/logger"
	"github.com/AnTengye/tenantdesk/service"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := os.Getenv(config.EnvConfigPath)
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "path", configPath, "error", err)
		os.Exit(1)
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully", "backend_url", cfg.Backend.URL)

	backend := service.NewBackendClient(&cfg.Backend)

	// One connectivity check per process; the page shows "Checking..." until it lands
	probe := service.NewProbe(backend)
	probe.Start(context.Background())

	store := service.NewWidgetStore(backend, &cfg.Session, &cfg.Backend)

	gin.SetMode(gin.ReleaseMode)
	router, err := handler.NewRouter(cfg, probe, store)
	if err != nil {
		slog.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// let in-flight uploads record their outcome in the logs
	uploadsDone := make(chan struct{})
	go func() {
		store.Wait()
		close(uploadsDone)
	}()
	select {
	case <-uploadsDone:
	case <-ctx.Done():
		slog.Warn("uploads still in flight at exit")
	}

	slog.Info("server exited gracefully")
}
