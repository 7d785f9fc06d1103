// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package cache memoizes vote record reads per region filter, either in
// process (go-cache) or in Redis. Writers flush the cache after an import.
package cache
