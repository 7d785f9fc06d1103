// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the rekap API.

# Handler Types

Each handler is a struct with store, cache and logger dependencies:

  - StatisticsHandler: the pivoted vote table and its XLSX export
  - RegionsHandler: distinct region values for cascading filters
  - RecordsHandler: batch import of vote records

Handlers are created via constructor functions:

	stats := handlers.NewStatisticsHandler(store, cache, engine, cfg.PageSize, logger)

# Statistics

	GET /statistics         → GetStatistics (one page of TallyResult)
	GET /statistics/export  → ExportXLSX (every row, all parties expanded)

Query parameters:

	q          case-insensitive search over region, party and candidate
	sort       "total" or a column key (default total)
	dir        asc or desc (default desc)
	expand     party to show candidates for, repeatable
	page       1-indexed page (default 1)
	page_size  1..200 (default from config)
	dapil, kecamatan, desa, tps   exact region filters

Pages past the end return an empty rows array.

# Regions

	GET /regions/{level}   level is dapil, kecamatan, desa or tps

Parent filters use the same dapil/kecamatan/desa/tps parameters. Values are
ordered with the configured collator.

# Records

	POST /records          JSON array of records, stored as one batch
	GET  /records/batches  import history, newest first

Both are mounted only when ingest is enabled. A successful import flushes the
record cache.

# Error Responses

All errors return JSON:

	{
	  "error": "Bad Request",
	  "message": "invalid dir, must be 'asc' or 'desc'"
	}
*/
package handlers
