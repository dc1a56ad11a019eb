package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spice-catalog-service/internal/api"
	"spice-catalog-service/internal/config"
	"spice-catalog-service/internal/sitemap"
	"spice-catalog-service/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

const defaultAppName = "SpiceCatalogService"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: No .env file found or failed to load, relying on system environment")
	}
	logger := log.New(os.Stdout, fmt.Sprintf("[%s] ", defaultAppName), log.LstdFlags|log.Lshortfile|log.Lmicroseconds)
	logger.Println("INFO: Starting service...")

	// --- Configuration Loading ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("FATAL: Error loading configuration: %v", err)
	}
	logger.Printf("INFO: Configuration loaded for APP_ENV: %s, LogLevel: %s", cfg.AppEnv, cfg.LogLevel)

	// --- Upstream Store Client ---
	remoteStore := store.NewRemoteStore(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	logger.Printf("INFO: Upstream store client configured for %s (timeout %s)", cfg.Upstream.BaseURL, cfg.Upstream.Timeout)

	// --- Sitemap Cache (optional) ---
	var rdb *redis.Client
	if cfg.Sitemap.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Sitemap.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			// The synthesizer degrades to fresh synthesis without a cache,
			// so a dead redis is a warning, not a startup failure.
			logger.Printf("WARN: Redis ping failed, sitemap cache disabled: %v", err)
			rdb = nil
		} else {
			logger.Printf("INFO: Sitemap cache enabled via redis at %s (TTL %s)", cfg.Sitemap.RedisAddr, cfg.Sitemap.CacheTTL)
		}
	}
	routeIndex := sitemap.NewSynthesizer(remoteStore, cfg.Sitemap.SiteBaseURL, rdb, cfg.Sitemap.CacheTTL)

	// --- Initialize API Handlers ---
	httpAPIHandler := api.NewHTTPHandler(remoteStore, remoteStore, remoteStore, routeIndex)

	// --- Setup & Start HTTP Server ---
	httpRouter := chi.NewRouter()
	setupBaseMiddleware(httpRouter, logger)
	registerHealthCheck(httpRouter, logger, remoteStore)
	httpAPIHandler.RegisterRoutes(httpRouter)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      httpRouter,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	go func() {
		logger.Printf("INFO: HTTP server listening on port %s", cfg.HttpServer.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("FATAL: HTTP server ListenAndServe error: %v", err)
		}
		logger.Println("INFO: HTTP server has stopped.")
	}()

	// --- Graceful Shutdown ---
	shutdownComplete := make(chan struct{})
	go waitForShutdown(logger, httpServer, rdb, shutdownComplete)

	<-shutdownComplete
	logger.Println("INFO: Service shutdown sequence finished.")
}

func setupBaseMiddleware(router *chi.Mux, logger *log.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	logger.Println("INFO: Base HTTP middleware registered.")
}

func registerHealthCheck(router *chi.Mux, logger *log.Logger, remoteStore *store.RemoteStore) {
	healthPath := "/api/v1/healthz"
	router.Get(healthPath, func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		upstreamStatus := "healthy"
		if _, err := remoteStore.GetFlags(ctx); err != nil {
			upstreamStatus = "unhealthy"
			logger.Printf("WARN: Health check upstream probe failed: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK) // Always 200, but payload indicates detailed status
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":      "healthy",
			"serviceName": defaultAppName,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"upstream":    upstreamStatus,
		})
	})
	logger.Printf("INFO: HTTP health check registered at %s", healthPath)
}

func waitForShutdown(
	logger *log.Logger,
	httpServer *http.Server,
	rdb *redis.Client,
	shutdownComplete chan struct{},
) {
	defer close(shutdownComplete)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-sigChan
	logger.Printf("INFO: Received signal: %s. Starting graceful shutdown...", receivedSignal)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	logger.Println("INFO: Attempting to gracefully shut down HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("WARN: HTTP server graceful shutdown failed: %v", err)
	} else {
		logger.Println("INFO: HTTP server gracefully shut down.")
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Printf("WARN: Error closing redis connection: %v", err)
		}
	}

	logger.Println("INFO: Graceful shutdown sequence completed.")
}
