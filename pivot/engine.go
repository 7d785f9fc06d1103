// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pivot

import (
	"github.com/kawalsuara/rekap/models"
)

// Query is the table state a caller passes to Run.
type Query struct {
	Search    string
	SortField string
	SortDir   models.SortDir
	Expanded  models.ExpandSet
	Page      int
	PageSize  int
}

// Engine runs the pivot pipeline with a fixed column comparator.
type Engine struct {
	cmp      Compare
	pageSize int
}

// NewEngine returns an engine. A nil cmp falls back to Lexical and a
// non-positive pageSize to models.DefaultPageSize.
func NewEngine(cmp Compare, pageSize int) *Engine {
	if cmp == nil {
		cmp = Lexical
	}
	if pageSize < 1 {
		pageSize = models.DefaultPageSize
	}
	return &Engine{cmp: cmp, pageSize: pageSize}
}

// Compare returns the comparator used for column keys.
func (e *Engine) Compare() Compare { return e.cmp }

// Rows runs the pipeline up to Flatten and returns the whole row sequence
// along with the column keys and pivot level used.
func (e *Engine) Rows(records []models.VoteRecord, q Query) ([]models.Row, []string, models.PivotLevel, int64) {
	filtered := FilterBySearch(records, q.Search)
	level := InferPivotLevel(filtered)
	keys := BuildColumnKeys(filtered, level, e.cmp)
	agg := Aggregate(filtered, level, keys)

	field := q.SortField
	if field == "" {
		field = models.SortTotal
	}
	dir := q.SortDir
	if dir == "" {
		dir = models.SortDesc
	}

	sorted := SortGroups(agg.Groups, field, dir)
	return Flatten(sorted, q.Expanded, field, dir), keys, level, agg.GrandTotal
}

// Run executes filter, pivot inference, column build, aggregation, sort,
// flatten, and pagination. It has no side effects.
func (e *Engine) Run(records []models.VoteRecord, q Query) models.TallyResult {
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = e.pageSize
	}

	rows, keys, level, grand := e.Rows(records, q)
	return models.TallyResult{
		ColumnKeys:    keys,
		PivotLevel:    level,
		Rows:          Paginate(rows, q.Page, pageSize),
		TotalRowCount: len(rows),
		PageCount:     PageCount(len(rows), pageSize),
		Page:          q.Page,
		PageSize:      pageSize,
		GrandTotal:    grand,
	}
}
