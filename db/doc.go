// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and stores vote records.

# Connecting

Open picks the driver from the configured type and pings the database:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

"postgres" uses lib/pq; "sqlite" uses modernc.org/sqlite.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - import_batch: one row per ingest (CSV file or API call)
  - vote_record: party/candidate tally per TPS

	import_batch 1──* vote_record

# Store

Store is the data-fetch layer behind the statistics endpoints:

	store := db.NewStore(conn)
	records, err := store.ListRecords(ctx, models.RegionFilter{ElectoralDistrict: "Dapil 1"})
	batchID, err := store.InsertBatch(ctx, "upload.csv", records)
	values, err := store.Regions(ctx, models.LevelSubdistrict, filter)

ListRecords returns rows in insertion order, which the pivot engine uses as
first-seen order for parties and candidates.
*/
package db
