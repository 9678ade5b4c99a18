package main

import (
	"context"
	"os"

	"travelgate-service/internal/infrastructure/config"
	"travelgate-service/internal/infrastructure/persistence"
	store "travelgate-service/internal/interface/repository"
	"travelgate-service/internal/usecase"
	"travelgate-service/pkg/logger"
	"travelgate-service/pkg/metrics"
)

// One-shot ingestion run: normalize the legacy export files into the
// canonical store. Safe to rerun; existing records are skipped.
func main() {
	log := logger.NewLogger()
	log.Info("Starting ingestion run")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	srcDir := cfg.DataDir
	if len(os.Args) > 1 {
		srcDir = os.Args[1]
	}

	ctx := context.Background()

	connManager := persistence.NewConnectionManager(persistence.ClientConfig{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDB,
		Username: cfg.MongoUser,
		Password: cfg.MongoPassword,
		PoolSize: cfg.MongoPoolSize,
		Timeout:  cfg.MongoTimeout,
	}, log)

	// Unlike the gateway, ingestion has no fallback target: without the
	// primary store the run is pointless, so this is fatal.
	if !connManager.Connect(ctx) {
		log.Fatal("Cannot reach the primary store, aborting ingestion", "uri", cfg.MongoURI)
	}
	defer connManager.Disconnect(ctx)

	canonicalStore := store.NewMongoCanonicalStore(connManager.Database(), log)
	pipeline := usecase.NewIngestionPipeline(canonicalStore, srcDir, metrics.NewMetrics("travelgate_ingest"), log)

	summary, err := pipeline.Run(ctx)
	if err != nil {
		log.Fatal("Ingestion aborted", "error", err)
	}

	log.Info("Ingestion finished",
		"inserted", summary.Inserted,
		"skipped", summary.Skipped,
		"errors", summary.Errors,
		"filesFailed", summary.FilesFailed,
	)
}
