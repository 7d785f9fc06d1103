// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kawalsuara/rekap/db"
	"github.com/kawalsuara/rekap/middleware"
	"github.com/kawalsuara/rekap/models"
	"github.com/kawalsuara/rekap/pivot"
)

type RegionsHandler struct {
	store  *db.Store
	cmp    pivot.Compare
	logger *zap.Logger
}

func NewRegionsHandler(store *db.Store, cmp pivot.Compare, logger *zap.Logger) *RegionsHandler {
	if cmp == nil {
		cmp = pivot.Lexical
	}
	return &RegionsHandler{store: store, cmp: cmp, logger: logger}
}

// GetRegions handles GET /regions/{level}
// Lists the values at one region level under the parent filters, for cascading dropdowns
func (h *RegionsHandler) GetRegions(w http.ResponseWriter, r *http.Request) {
	level, ok := levelNames[mux.Vars(r)["level"]]
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, errInvalidLevel.Error())
		return
	}

	values, err := h.store.Regions(r.Context(), level, parseRegionFilter(r.URL.Query()))
	if err != nil {
		h.logger.Error("failed to query regions", zap.String("level", string(level)), zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// SQL ordering is bytewise; match the table's column order
	sort.SliceStable(values, func(i, j int) bool {
		return h.cmp(values[i], values[j]) < 0
	})

	middleware.JSONResponse(w, http.StatusOK, models.RegionsResponse{
		Level:  level,
		Values: values,
	})
}
