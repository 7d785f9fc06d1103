// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first, without overriding
variables already set in the environment.

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type (sqlite or postgres)
	--page-size     Rows per statistics page
	--cache         Record cache backend (memory or redis)
	--cache-ttl     Record cache TTL
	--redis         Redis address
	--locale        Collation locale for column ordering
	--enable-ingest Mount POST /records

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p            (default 3318)
	DATABASE_URL  → -d            (required)
	DATABASE_TYPE → -t            (default sqlite)
	PAGE_SIZE     → --page-size   (default 30)
	CACHE_BACKEND → --cache       (default memory)
	CACHE_TTL     → --cache-ttl   (default 5m)
	REDIS_ADDR    → --redis       (required for redis)
	LOCALE        → --locale      (default id)
	ENABLE_INGEST → --enable-ingest

Env only:

	LOG_LEVEL     debug, info, warn, error (default info)
	LOG_ENCODING  json or console (default json)
	CORS_ORIGINS  comma-separated origins (default *)

CLI flags take precedence over environment variables.
*/
package cliparse
