package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kawalsuara/rekap/cache"
	"github.com/kawalsuara/rekap/cliparse"
	"github.com/kawalsuara/rekap/db"
	"github.com/kawalsuara/rekap/logging"
	"github.com/kawalsuara/rekap/router"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		logger.Fatal("schema creation failed", zap.Error(err))
	}
	logger.Info("Database schema ready", zap.String("type", cfg.DatabaseType))

	// Record cache
	var recordCache cache.RecordCache
	switch cfg.CacheBackend {
	case cliparse.CacheRedis:
		rc, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.CacheTTL, logger)
		if err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		defer rc.Close()
		recordCache = rc
	default:
		recordCache = cache.NewMemory(cfg.CacheTTL)
	}
	logger.Info("Record cache ready",
		zap.String("backend", cfg.CacheBackend),
		zap.Duration("ttl", cfg.CacheTTL),
	)

	// Create server
	server := http.Server{
		Handler:           router.NewRouter(dbConn, recordCache, cfg, logger),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown failed", zap.Error(err))
		}
	}()

	// Start server
	logger.Info("Listening",
		zap.Int("port", cfg.Port),
		zap.Bool("ingest", cfg.EnableIngest),
		zap.String("locale", cfg.Locale),
	)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server closed", zap.Error(err))
	} else {
		logger.Info("Server closed")
	}
}
