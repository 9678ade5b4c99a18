package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelgate-service/internal/infrastructure/config"
	"travelgate-service/internal/infrastructure/persistence"
	gateway "travelgate-service/internal/interface/repository"
	"travelgate-service/pkg/cache"
	"travelgate-service/pkg/logger"
	"travelgate-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Travelgate Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("travelgate")

	// Set up both backends behind the gateway
	connManager := persistence.NewConnectionManager(persistence.ClientConfig{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDB,
		Username: cfg.MongoUser,
		Password: cfg.MongoPassword,
		PoolSize: cfg.MongoPoolSize,
		Timeout:  cfg.MongoTimeout,
	}, log)

	responseCache := cache.NewTTLCache(cfg.CacheTTL, cfg.CacheMaxEntries)
	jsonStore := gateway.NewJSONStore(cfg.DataDir, responseCache, m, log)
	dataGateway := gateway.NewDataAccessGateway(connManager, jsonStore, m, log)

	// A failed connect is not fatal here: the gateway serves flat files
	// until the next restart.
	if dataGateway.Initialize(ctx) {
		log.Info("Gateway serving from primary store", "database", cfg.MongoDB)
	} else {
		log.Warn("Gateway serving from flat files", "dataDir", cfg.DataDir)
	}

	// Set up HTTP server for metrics and health
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := dataGateway.HealthCheck(r.Context())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(status)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	connManager.Disconnect(shutdownCtx)
	log.Info("Travelgate Service stopped")
}
