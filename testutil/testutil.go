// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kawalsuara/rekap/cliparse"
	"github.com/kawalsuara/rekap/db"
	"github.com/kawalsuara/rekap/models"
)

// TestDBURL is an in-memory SQLite database
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema.
// The connection pool is pinned to one connection so every query sees the
// same in-memory database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    TestDBURL,
		DatabaseType:   cliparse.DatabaseSQLite,
		PageSize:       30,
		CacheBackend:   cliparse.CacheMemory,
		CacheTTL:       time.Minute,
		Locale:         "id",
		LogLevel:       "debug",
		LogEncoding:    "console",
		AllowedOrigins: []string{"*"},
		EnableIngest:   true,
	}
}

// Record builds a vote record with every region level set
func Record(dapil, kecamatan, desa, tps, party, candidate string, votes int64) models.VoteRecord {
	return models.VoteRecord{
		ElectoralDistrict: dapil,
		Subdistrict:       kecamatan,
		Village:           desa,
		PollingStation:    tps,
		Party:             party,
		Candidate:         candidate,
		VoteCount:         votes,
	}
}

// SampleRecords is a small two-dapil data set
func SampleRecords() []models.VoteRecord {
	return []models.VoteRecord{
		Record("Dapil 1", "Cibinong", "Pakansari", "TPS 001", "Partai Merah", "Budi", 10),
		Record("Dapil 1", "Cibinong", "Pakansari", "TPS 001", "Partai Biru", "Siti", 20),
		Record("Dapil 2", "Bojonggede", "Waringin", "TPS 002", "Partai Merah", "Budi", 5),
		Record("Dapil 2", "Bojonggede", "Waringin", "TPS 002", "Partai Merah", "Agus", 7),
		Record("Dapil 2", "Bojonggede", "Ragajaya", "TPS 003", "Partai Biru", "Siti", 3),
	}
}

// SeedRecords inserts records as one batch and returns the batch ID
func SeedRecords(t *testing.T, conn *sql.DB, records []models.VoteRecord) string {
	t.Helper()

	batchID, err := db.NewStore(conn).InsertBatch(context.Background(), "test", records)
	if err != nil {
		t.Fatalf("Failed to seed records: %v", err)
	}
	return batchID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
