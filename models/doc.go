// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain, request, and response types for the API.

# Domain Types

  - VoteRecord: one party/candidate tally at one TPS (polling station)
  - GroupRow: per-party aggregate across the pivot columns
  - CandidateRow: per-candidate aggregate within a party
  - Row: tagged union of GroupRow and CandidateRow (Kind is the discriminant)
  - ExpandSet: parties whose candidate rows are shown
  - RegionFilter: exact-match dapil/kecamatan/desa/tps narrowing

# Response Types

  - TallyResult: column_keys, pivot_level, rows, total_row_count, page_count
  - RegionsResponse: level, values
  - IngestResponse: batch_id, count
  - ErrorResponse: error, message

# Constants

Pivot levels, coarsest first:

	LevelElectoralDistrict = "electoralDistrict" // dapil
	LevelSubdistrict       = "subdistrict"       // kecamatan
	LevelVillage           = "village"           // desa/kelurahan
	LevelPollingStation    = "pollingStation"    // tps

Sorting:

	SortTotal = "total"
	SortAsc   = "asc"
	SortDesc  = "desc"

Row kinds:

	RowGroup     = "group"
	RowCandidate = "candidate"
*/
package models
