// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kawalsuara/rekap/cache"
	"github.com/kawalsuara/rekap/db"
	"github.com/kawalsuara/rekap/middleware"
	"github.com/kawalsuara/rekap/models"
	"github.com/kawalsuara/rekap/pivot"
)

const (
	exportSheet    = "Rekap"
	exportFilename = "rekap-suara.xlsx"
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type StatisticsHandler struct {
	store    *db.Store
	cache    cache.RecordCache
	engine   *pivot.Engine
	pageSize int
	logger   *zap.Logger
}

func NewStatisticsHandler(store *db.Store, c cache.RecordCache, engine *pivot.Engine, pageSize int, logger *zap.Logger) *StatisticsHandler {
	if pageSize < 1 {
		pageSize = models.DefaultPageSize
	}
	return &StatisticsHandler{
		store:    store,
		cache:    c,
		engine:   engine,
		pageSize: pageSize,
		logger:   logger,
	}
}

// loadRecords reads records under the region filter, through the cache
func (h *StatisticsHandler) loadRecords(ctx context.Context, f models.RegionFilter) ([]models.VoteRecord, error) {
	if records, ok := h.cache.Get(ctx, f); ok {
		return records, nil
	}

	records, err := h.store.ListRecords(ctx, f)
	if err != nil {
		return nil, err
	}
	h.cache.Set(ctx, f, records)
	return records, nil
}

// GetStatistics handles GET /statistics
// Returns one page of the pivoted vote table
func (h *StatisticsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	q, err := parseTableQuery(r, h.pageSize)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.loadRecords(r.Context(), parseRegionFilter(r.URL.Query()))
	if err != nil {
		h.logger.Error("failed to load vote records", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.engine.Run(records, q))
}

// ExportXLSX handles GET /statistics/export
// Writes every party and candidate row as a spreadsheet
func (h *StatisticsHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	// The export is never paged, so page and page_size are ignored
	q, err := parseSortQuery(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.loadRecords(r.Context(), parseRegionFilter(r.URL.Query()))
	if err != nil {
		h.logger.Error("failed to load vote records", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Export always shows candidates
	q.Expanded = models.NewExpandSet()
	for _, rec := range records {
		q.Expanded[rec.Party] = struct{}{}
	}
	rows, keys, _, grand := h.engine.Rows(records, q)

	f, err := buildWorkbook(rows, keys, grand)
	if err != nil {
		h.logger.Error("failed to build workbook", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Export failed")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename))
	w.WriteHeader(http.StatusOK)
	if err := f.Write(w); err != nil {
		h.logger.Error("failed to write workbook", zap.Error(err))
	}
}

// buildWorkbook lays out header, one line per row, and a grand total footer
func buildWorkbook(rows []models.Row, keys []string, grand int64) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	header := []interface{}{"Partai/Caleg"}
	for _, k := range keys {
		header = append(header, k)
	}
	header = append(header, "Total", "%")
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(exportSheet, "A1", lastHeader, bold); err != nil {
		f.Close()
		return nil, err
	}

	line := 2
	for _, row := range rows {
		var values []interface{}
		switch row.Kind {
		case models.RowGroup:
			values = rowValues(row.Group.Party, row.Group.Columns, keys, row.Group.Total, row.Group.PercentOfGrandTotal)
		case models.RowCandidate:
			values = rowValues("  "+row.Candidate.Candidate, row.Candidate.Columns, keys, row.Candidate.Total, row.Candidate.PercentOfGroupTotal)
		default:
			continue
		}

		cell, _ := excelize.CoordinatesToCellName(1, line)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			f.Close()
			return nil, err
		}
		if row.Kind == models.RowGroup {
			end, _ := excelize.CoordinatesToCellName(len(values), line)
			if err := f.SetCellStyle(exportSheet, cell, end, bold); err != nil {
				f.Close()
				return nil, err
			}
		}
		line++
	}

	footer, _ := excelize.CoordinatesToCellName(1, line+1)
	if err := f.SetCellValue(exportSheet, footer, "Total suara: "+humanize.Comma(grand)); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func rowValues(label string, columns map[string]int64, keys []string, total int64, pct float64) []interface{} {
	values := make([]interface{}, 0, len(keys)+3)
	values = append(values, label)
	for _, k := range keys {
		values = append(values, columns[k])
	}
	return append(values, total, fmt.Sprintf("%.2f", pct))
}
