package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dpup/routegen/internal/cache"
	"github.com/dpup/routegen/internal/clients/google"
	"github.com/dpup/routegen/internal/config"
	"github.com/dpup/routegen/internal/handler"
	"github.com/dpup/routegen/internal/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	routeCache := cache.NewCache()
	routeCache.StartPeriodicCleanup(ctx, cfg.CacheTTL)

	client := google.NewClient(cfg.GoogleAPIKey, cfg.GoogleBaseURL)
	svc := services.NewRoutesService(client, routeCache, cfg.CacheTTL, cfg.IntervalMeters, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", func(c *gin.Context) {
		stats := routeCache.Stats()
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"cache_entries": stats.TotalEntries,
		})
	})

	handler.NewRoutesHandler(svc, logger).RegisterRoutes(router.Group(""))

	server := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
