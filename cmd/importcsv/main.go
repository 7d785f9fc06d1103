// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command importcsv loads a CSV of vote records into the rekap database as
// one import batch.
//
//	importcsv -d rekap.db -f hasil.csv
//	importcsv -d rekap.db -f hasil.csv --cache redis --redis localhost:6379
//
// With the redis cache the shared record cache is flushed after the import.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kawalsuara/rekap/cache"
	"github.com/kawalsuara/rekap/cliparse"
	"github.com/kawalsuara/rekap/db"
	"github.com/kawalsuara/rekap/importer"
	"github.com/kawalsuara/rekap/logging"
)

type options struct {
	databaseURL  string
	databaseType string
	file         string
	source       string
	cacheBackend string
	redisAddr    string
}

func parseOptions(args []string) (options, error) {
	// Missing .env is fine
	_ = godotenv.Load()

	var opts options
	fs := flag.NewFlagSet("importcsv", flag.ContinueOnError)
	fs.StringVar(&opts.databaseURL, "d", os.Getenv("DATABASE_URL"), "Database URL")
	fs.StringVar(&opts.databaseType, "t", envOr("DATABASE_TYPE", cliparse.DatabaseSQLite), "Database type (sqlite or postgres)")
	fs.StringVar(&opts.file, "f", "", "CSV file to import")
	fs.StringVar(&opts.source, "source", "", "Batch source label (default: file name)")
	fs.StringVar(&opts.cacheBackend, "cache", envOr("CACHE_BACKEND", cliparse.CacheMemory), "Server record cache backend (memory or redis)")
	fs.StringVar(&opts.redisAddr, "redis", os.Getenv("REDIS_ADDR"), "Redis address, flushed after import")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if opts.databaseURL == "" {
		return options{}, errors.New("database URL is required (-d or DATABASE_URL)")
	}
	if opts.databaseType != cliparse.DatabaseSQLite && opts.databaseType != cliparse.DatabasePostgres {
		return options{}, errors.New("database type must be sqlite or postgres")
	}
	if opts.cacheBackend != cliparse.CacheMemory && opts.cacheBackend != cliparse.CacheRedis {
		return options{}, errors.New("cache backend must be memory or redis")
	}
	if opts.cacheBackend == cliparse.CacheRedis && opts.redisAddr == "" {
		return options{}, errors.New("redis address is required for the redis cache (--redis or REDIS_ADDR)")
	}
	if opts.file == "" {
		return options{}, errors.New("CSV file is required (-f)")
	}
	if opts.source == "" {
		opts.source = filepath.Base(opts.file)
	}
	return opts, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// run imports one file and returns the stored batch ID. A non-nil
// recordCache is flushed once the batch is committed.
func run(ctx context.Context, opts options, recordCache cache.RecordCache, logger *zap.Logger) (string, error) {
	f, err := os.Open(opts.file)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", opts.file, err)
	}
	defer f.Close()

	records, err := importer.ReadCSV(f)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", opts.file, err)
	}

	conn, err := db.Open(opts.databaseType, opts.databaseURL)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if err := db.CreateSchema(conn, opts.databaseType); err != nil {
		return "", fmt.Errorf("schema creation failed: %w", err)
	}

	batchID, err := db.NewStore(conn).InsertBatch(ctx, opts.source, records)
	if err != nil {
		return "", err
	}

	if recordCache != nil {
		// The batch is already stored; a failed flush only delays visibility
		if err := recordCache.Flush(ctx); err != nil {
			logger.Warn("failed to flush record cache", zap.Error(err))
		}
	}

	var votes int64
	for _, r := range records {
		votes += r.VoteCount
	}
	logger.Info("import complete",
		zap.String("batch_id", batchID),
		zap.String("source", opts.source),
		zap.String("records", humanize.Comma(int64(len(records)))),
		zap.String("votes", humanize.Comma(votes)),
	)
	return batchID, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(envOr("LOG_LEVEL", "info"), envOr("LOG_ENCODING", "console"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var recordCache cache.RecordCache
	if opts.cacheBackend == cliparse.CacheRedis {
		rc, err := cache.NewRedis(ctx, opts.redisAddr, time.Minute, logger)
		if err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		defer rc.Close()
		recordCache = rc
	} else {
		logger.Info("memory cache is per server; running servers show this import after CACHE_TTL")
	}

	if _, err := run(ctx, opts, recordCache, logger); err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}
}
