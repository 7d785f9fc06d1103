// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kawalsuara/rekap/cache"
	"github.com/kawalsuara/rekap/db"
	"github.com/kawalsuara/rekap/middleware"
	"github.com/kawalsuara/rekap/models"
)

type RecordsHandler struct {
	store  *db.Store
	cache  cache.RecordCache
	logger *zap.Logger
}

func NewRecordsHandler(store *db.Store, c cache.RecordCache, logger *zap.Logger) *RecordsHandler {
	return &RecordsHandler{store: store, cache: c, logger: logger}
}

// CreateRecords handles POST /records
// Stores a JSON array of vote records as one import batch
func (h *RecordsHandler) CreateRecords(w http.ResponseWriter, r *http.Request) {
	var records []models.VoteRecord
	if err := middleware.ParseJSONBody(r, &records); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	source := r.URL.Query().Get("source")
	if source == "" {
		source = "api:" + middleware.GetClientIP(r)
	}

	batchID, err := h.store.InsertBatch(r.Context(), source, records)
	if errors.Is(err, db.ErrEmptyBatch) || errors.Is(err, db.ErrInvalidRecord) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to insert import batch", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Cached tallies are stale now
	if err := h.cache.Flush(r.Context()); err != nil {
		h.logger.Warn("failed to flush record cache", zap.Error(err))
	}

	h.logger.Info("import batch stored",
		zap.String("batch_id", batchID),
		zap.String("source", source),
		zap.Int("count", len(records)),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.IngestResponse{
		BatchID: batchID,
		Count:   len(records),
	})
}

// ListBatches handles GET /records/batches
func (h *RecordsHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := h.store.ListBatches(r.Context())
	if err != nil {
		h.logger.Error("failed to list import batches", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, batches)
}
