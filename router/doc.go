// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the rekap API.

# Route Registration

NewRouter returns a gorilla/mux router wrapped in CORS and request logging:

	handler := router.NewRouter(db, recordCache, cfg, logger)

# Endpoints

Health:

	GET /health - 200 "OK", or 503 when the database is unreachable

Statistics (public):

	GET /statistics        - Pivoted vote table, one page
	GET /statistics/export - Same table as XLSX

Regions (public):

	GET /regions/{level} - dapil, kecamatan, desa or tps values

Ingest (only with --enable-ingest):

	POST /records         - Import a batch of vote records
	GET  /records/batches - Import history

# Handler Initialization

The router builds the record store and one pivot engine whose collator
follows cfg.Locale; the regions handler shares that collator.
*/
package router
