// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kawalsuara/rekap/models"
)

// RecordCache memoizes store reads keyed by region filter. A miss is never an error.
type RecordCache interface {
	Get(ctx context.Context, f models.RegionFilter) ([]models.VoteRecord, bool)
	Set(ctx context.Context, f models.RegionFilter, records []models.VoteRecord)
	Flush(ctx context.Context) error
}

// Key renders a filter as a cache key. Region values are JSON-quoted so no
// value can spill into a neighbouring field.
func Key(f models.RegionFilter) string {
	data, _ := json.Marshal(f)
	return string(data)
}

// Memory is an in-process RecordCache
type Memory struct {
	c *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{c: gocache.New(ttl, 2*ttl)}
}

func (m *Memory) Get(_ context.Context, f models.RegionFilter) ([]models.VoteRecord, bool) {
	v, ok := m.c.Get(Key(f))
	if !ok {
		return nil, false
	}
	records, ok := v.([]models.VoteRecord)
	return records, ok
}

func (m *Memory) Set(_ context.Context, f models.RegionFilter, records []models.VoteRecord) {
	m.c.SetDefault(Key(f), records)
}

func (m *Memory) Flush(context.Context) error {
	m.c.Flush()
	return nil
}

// ItemCount is the number of unexpired entries
func (m *Memory) ItemCount() int {
	return m.c.ItemCount()
}
