// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/kawalsuara/rekap/models"
)

var (
	ErrInvalidRecord = errors.New("invalid vote record")
	ErrUnknownLevel  = errors.New("unknown region level")
	ErrEmptyBatch    = errors.New("no records to import")
)

// levelColumns maps pivot levels to vote_record columns
var levelColumns = map[models.PivotLevel]string{
	models.LevelElectoralDistrict: "dapil",
	models.LevelSubdistrict:       "kecamatan",
	models.LevelVillage:           "desa",
	models.LevelPollingStation:    "tps",
}

// Open connects to the database of the given type and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	driver := "sqlite"
	if dbType == "postgres" {
		driver = "postgres"
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dbType, err)
	}
	return conn, nil
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// whereRegion builds the WHERE clause for the non-empty filter fields
func whereRegion(f models.RegionFilter) (string, []any) {
	var clauses []string
	var args []any
	for _, c := range []struct {
		column string
		value  string
	}{
		{"dapil", f.ElectoralDistrict},
		{"kecamatan", f.Subdistrict},
		{"desa", f.Village},
		{"tps", f.PollingStation},
	} {
		if c.value == "" {
			continue
		}
		args = append(args, c.value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", c.column, len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// ListRecords returns records matching the filter in insertion order.
func (s *Store) ListRecords(ctx context.Context, f models.RegionFilter) ([]models.VoteRecord, error) {
	where, args := whereRegion(f)
	rows, err := s.db.QueryContext(ctx, `
		SELECT dapil, kecamatan, desa, tps, partai, caleg, suara, logo_url, warna
		FROM vote_record`+where+`
		ORDER BY id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote records: %w", err)
	}
	defer rows.Close()

	records := []models.VoteRecord{}
	for rows.Next() {
		var r models.VoteRecord
		if err := rows.Scan(
			&r.ElectoralDistrict, &r.Subdistrict, &r.Village, &r.PollingStation,
			&r.Party, &r.Candidate, &r.VoteCount, &r.LogoURL, &r.PartyColor,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vote record: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// ValidateRecord checks the fields the pivot engine relies on.
func ValidateRecord(r models.VoteRecord) error {
	switch {
	case r.ElectoralDistrict == "", r.Subdistrict == "", r.Village == "", r.PollingStation == "":
		return fmt.Errorf("%w: every region level is required", ErrInvalidRecord)
	case r.Party == "":
		return fmt.Errorf("%w: party is required", ErrInvalidRecord)
	case r.Candidate == "":
		return fmt.Errorf("%w: candidate is required", ErrInvalidRecord)
	case r.VoteCount < 0:
		return fmt.Errorf("%w: negative vote count", ErrInvalidRecord)
	}
	return nil
}

// InsertBatch stores records in one transaction and returns the batch ID.
func (s *Store) InsertBatch(ctx context.Context, source string, records []models.VoteRecord) (string, error) {
	if len(records) == 0 {
		return "", ErrEmptyBatch
	}
	for i, r := range records {
		if err := ValidateRecord(r); err != nil {
			return "", fmt.Errorf("record %d: %w", i+1, err)
		}
	}

	batchID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO import_batch (id, source, row_count, imported_at)
		VALUES ($1, $2, $3, $4)
	`, batchID, source, len(records), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert import batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vote_record (batch_id, dapil, kecamatan, desa, tps, partai, caleg, suara, logo_url, warna)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare vote record insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			batchID, r.ElectoralDistrict, r.Subdistrict, r.Village, r.PollingStation,
			r.Party, r.Candidate, r.VoteCount, r.LogoURL, r.PartyColor,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert vote record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit import batch: %w", err)
	}

	return batchID, nil
}

// ListBatches returns import batches, newest first.
func (s *Store) ListBatches(ctx context.Context) ([]models.ImportBatch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, row_count, imported_at
		FROM import_batch
		ORDER BY imported_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query import batches: %w", err)
	}
	defer rows.Close()

	batches := []models.ImportBatch{}
	for rows.Next() {
		var b models.ImportBatch
		if err := rows.Scan(&b.ID, &b.Source, &b.RowCount, &b.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import batch: %w", err)
		}
		batches = append(batches, b)
	}

	return batches, rows.Err()
}

// Regions returns the distinct values at level among records matching parent.
func (s *Store) Regions(ctx context.Context, level models.PivotLevel, parent models.RegionFilter) ([]string, error) {
	column, ok := levelColumns[level]
	if !ok {
		return nil, ErrUnknownLevel
	}

	where, args := whereRegion(parent)
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT "+column+" FROM vote_record"+where+" ORDER BY "+column, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s values: %w", column, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s value: %w", column, err)
		}
		values = append(values, v)
	}

	return values, rows.Err()
}
