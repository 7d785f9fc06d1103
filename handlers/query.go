// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kawalsuara/rekap/models"
	"github.com/kawalsuara/rekap/pivot"
)

// MaxPageSize caps page_size on /statistics
const MaxPageSize = 200

var (
	errInvalidPage     = &parseError{msg: "invalid page, must be a positive integer"}
	errInvalidPageSize = &parseError{msg: "invalid page_size, must be between 1 and 200"}
	errInvalidDir      = &parseError{msg: "invalid dir, must be 'asc' or 'desc'"}
	errInvalidLevel    = &parseError{msg: "invalid level, must be dapil, kecamatan, desa, or tps"}
)

type parseError struct{ msg string }

func (e *parseError) Error() string { return e.msg }

// levelNames maps the path segment of /regions/{level} to a pivot level
var levelNames = map[string]models.PivotLevel{
	"dapil":     models.LevelElectoralDistrict,
	"kecamatan": models.LevelSubdistrict,
	"desa":      models.LevelVillage,
	"tps":       models.LevelPollingStation,
}

// parseRegionFilter reads dapil, kecamatan, desa and tps from the query string
func parseRegionFilter(values url.Values) models.RegionFilter {
	return models.RegionFilter{
		ElectoralDistrict: strings.TrimSpace(values.Get("dapil")),
		Subdistrict:       strings.TrimSpace(values.Get("kecamatan")),
		Village:           strings.TrimSpace(values.Get("desa")),
		PollingStation:    strings.TrimSpace(values.Get("tps")),
	}
}

// parseSortQuery reads search, sort, dir and expand. Paging is left unset.
func parseSortQuery(r *http.Request) (pivot.Query, error) {
	values := r.URL.Query()

	q := pivot.Query{
		Search:    values.Get("q"),
		SortField: values.Get("sort"),
	}
	if q.SortField == "" {
		q.SortField = models.SortTotal
	}

	switch dir := strings.ToLower(values.Get("dir")); dir {
	case "":
		q.SortDir = models.SortDesc
	case string(models.SortAsc), string(models.SortDesc):
		q.SortDir = models.SortDir(dir)
	default:
		return pivot.Query{}, errInvalidDir
	}

	q.Expanded = models.NewExpandSet(values["expand"]...)
	return q, nil
}

// parseTableQuery reads the table state for the pivot engine.
// Missing page and page_size default to 1 and pageSize.
func parseTableQuery(r *http.Request, pageSize int) (pivot.Query, error) {
	q, err := parseSortQuery(r)
	if err != nil {
		return pivot.Query{}, err
	}
	q.Page = 1
	q.PageSize = pageSize

	values := r.URL.Query()
	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return pivot.Query{}, errInvalidPage
		}
		q.Page = page
	}

	if raw := values.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > MaxPageSize {
			return pivot.Query{}, errInvalidPageSize
		}
		q.PageSize = size
	}

	return q, nil
}
