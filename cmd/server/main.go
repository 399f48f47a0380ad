// File: cmd/server/main.go
package main

import (
	"context"
	"flag"
	"log" // Standard log for critical startup/shutdown messages before/after zap is active
	"os"
	"os/signal"
	"syscall"

	"devlink_backend/internal/config"
	"devlink_backend/internal/jobs"
	"devlink_backend/internal/platform/database"
	platformElasticsearch "devlink_backend/internal/platform/elasticsearch"
	"devlink_backend/internal/platform/logger"
	"devlink_backend/internal/profile"

	"go.uber.org/zap"
)

func main() {
	syncProfilesCmd := flag.NewFlagSet("sync-profiles", flag.ExitOnError)

	if len(os.Args) > 1 && os.Args[1] == "sync-profiles" {
		syncProfilesCmd.Parse(os.Args[2:])
		runProfileSync()
		return
	}

	startServer()
}

// runProfileSync reindexes every profile into Elasticsearch once and
// exits. Useful after restoring a database or changing the mapping.
func runProfileSync() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration for sync: %v", err)
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger for sync: %v", err)
	}
	db, err := database.NewGORM(cfg)
	if err != nil {
		appLogger.Fatal("FATAL: Failed to initialize database for sync", zap.Error(err))
	}
	defer database.CloseGORMDB(db)

	esClient, err := platformElasticsearch.NewClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("FATAL: Failed to initialize Elasticsearch client for sync", zap.Error(err))
	}
	if esClient == nil {
		appLogger.Fatal("FATAL: Elasticsearch client is nil, ensure ELASTICSEARCH_URL is set.")
	}

	if err := platformElasticsearch.CreateProfilesIndexIfNotExists(esClient, appLogger); err != nil {
		appLogger.Fatal("FATAL: Failed to create/verify Elasticsearch index before sync", zap.Error(err))
	}

	repo := profile.NewGORMRepository(db)
	job := jobs.NewProfileSearchSyncJob(repo, esClient, appLogger, cfg)

	indexed, err := job.Sync(context.Background())
	if err != nil {
		appLogger.Fatal("FATAL: Profile synchronization failed", zap.Error(err))
	}
	appLogger.Info("Profile synchronization completed successfully.", zap.Int("profiles_indexed", indexed))
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	if server.ESClient != nil {
		if err := platformElasticsearch.CreateProfilesIndexIfNotExists(server.ESClient, server.AppLogger); err != nil {
			server.AppLogger.Error("Failed to create Elasticsearch profiles index.", zap.Error(err))
		}
	} else {
		server.AppLogger.Info("Elasticsearch client not initialized, skipping index creation.")
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}
