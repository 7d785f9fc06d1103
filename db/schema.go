// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if dbType == "postgres" {
		idColumn = "id BIGSERIAL PRIMARY KEY"
	}

	_, err := db.Exec(fmt.Sprintf(schema, idColumn))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Import batches
CREATE TABLE IF NOT EXISTS import_batch (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    row_count INTEGER NOT NULL,
    imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Vote tallies, one row per party/candidate/TPS
CREATE TABLE IF NOT EXISTS vote_record (
    %s,
    batch_id TEXT NOT NULL REFERENCES import_batch(id) ON DELETE CASCADE,
    dapil TEXT NOT NULL,
    kecamatan TEXT NOT NULL,
    desa TEXT NOT NULL,
    tps TEXT NOT NULL,
    partai TEXT NOT NULL,
    caleg TEXT NOT NULL,
    suara BIGINT NOT NULL CHECK (suara >= 0),
    logo_url TEXT NOT NULL DEFAULT '',
    warna TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_vote_record_dapil ON vote_record(dapil);
CREATE INDEX IF NOT EXISTS idx_vote_record_kecamatan ON vote_record(dapil, kecamatan);
CREATE INDEX IF NOT EXISTS idx_vote_record_desa ON vote_record(dapil, kecamatan, desa);
CREATE INDEX IF NOT EXISTS idx_vote_record_batch ON vote_record(batch_id);
`
