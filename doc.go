// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the rekap API server.

rekap serves the legislative vote tally table: per-party totals pivoted
across dapil, kecamatan, desa or TPS columns, with expandable candidate rows,
search, sorting and paging.

# Starting the Server

The server reads environment variables, a .env file, or CLI flags:

	DATABASE_URL=rekap.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --cache redis --redis localhost:6379

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - CACHE_BACKEND (--cache): memory or redis (default: memory)
  - LOCALE (--locale): column collation (default: id)
  - ENABLE_INGEST (--enable-ingest): mount POST /records

See package cliparse for the full list.

# Architecture

  - pivot: the pure tally pipeline (filter, pivot, aggregate, sort, flatten, page)
  - handlers: HTTP request handlers (statistics, export, regions, records)
  - router: Route definitions using gorilla/mux
  - middleware: CORS, logging, JSON helpers
  - db: vote record store (SQLite or PostgreSQL)
  - cache: record cache (in-process or Redis)
  - importer: CSV reader shared with cmd/importcsv
  - models: record, row and response types

# Loading Data

	go run ./cmd/importcsv -d rekap.db -f hasil.csv
*/
package main
