// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kawalsuara/rekap/models"
)

const keyPrefix = "rekap:records:"

// Redis is a RecordCache shared between server instances.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedis connects to addr and verifies the connection.
func NewRedis(ctx context.Context, addr string, ttl time.Duration, logger *zap.Logger) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,

		// Connection pool
		PoolSize:     10,
		MinIdleConns: 2,

		// Timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	logger.Info("Connected to Redis", zap.String("addr", addr), zap.Duration("ttl", ttl))

	return &Redis{client: rdb, ttl: ttl, logger: logger}, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Get(ctx context.Context, f models.RegionFilter) ([]models.VoteRecord, bool) {
	data, err := r.client.Get(ctx, keyPrefix+Key(f)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.logger.Warn("Failed to read record cache", zap.Error(err))
		return nil, false
	}

	var records []models.VoteRecord
	if err := json.Unmarshal(data, &records); err != nil {
		r.logger.Warn("Discarding corrupt record cache entry", zap.Error(err))
		return nil, false
	}
	return records, true
}

// Set is best-effort: failures are logged, not returned.
func (r *Redis) Set(ctx context.Context, f models.RegionFilter, records []models.VoteRecord) {
	data, err := json.Marshal(records)
	if err != nil {
		r.logger.Warn("Failed to encode record cache entry", zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, keyPrefix+Key(f), data, r.ttl).Err(); err != nil {
		r.logger.Warn("Failed to write record cache", zap.Error(err))
	}
}

// Flush deletes every record cache key.
func (r *Redis) Flush(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan record cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to flush record cache: %w", err)
	}
	return nil
}
