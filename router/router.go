// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kawalsuara/rekap/cache"
	"github.com/kawalsuara/rekap/cliparse"
	"github.com/kawalsuara/rekap/db"
	"github.com/kawalsuara/rekap/handlers"
	"github.com/kawalsuara/rekap/middleware"
	"github.com/kawalsuara/rekap/pivot"
)

func NewRouter(conn *sql.DB, recordCache cache.RecordCache, cfg cliparse.Config, logger *zap.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.WithLogging(logger))

	store := db.NewStore(conn)
	cmp := pivot.NewCollator(cfg.Locale)
	engine := pivot.NewEngine(cmp, cfg.PageSize)

	// Initialize handlers
	statsHandler := handlers.NewStatisticsHandler(store, recordCache, engine, cfg.PageSize, logger)
	regionsHandler := handlers.NewRegionsHandler(store, cmp, logger)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := store.Ping(req.Context()); err != nil {
			logger.Error("health check failed", zap.Error(err))
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	// Statistics table (public)
	r.HandleFunc("/statistics", statsHandler.GetStatistics).Methods(http.MethodGet)
	r.HandleFunc("/statistics/export", statsHandler.ExportXLSX).Methods(http.MethodGet)

	// Region dropdowns (public)
	r.HandleFunc("/regions/{level}", regionsHandler.GetRegions).Methods(http.MethodGet)

	// Record ingest, off unless enabled
	if cfg.EnableIngest {
		recordsHandler := handlers.NewRecordsHandler(store, recordCache, logger)
		r.HandleFunc("/records", recordsHandler.CreateRecords).Methods(http.MethodPost)
		r.HandleFunc("/records/batches", recordsHandler.ListBatches).Methods(http.MethodGet)
	}

	// Root endpoint
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("rekap API v1"))
	}).Methods(http.MethodGet)

	return middleware.CORS(cfg.AllowedOrigins)(r)
}
