// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kawalsuara/rekap/models"
)

func TestParseTableQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q, err := parseTableQuery(httptest.NewRequest("GET", "/statistics", nil), 30)
		require.NoError(t, err)

		assert.Equal(t, "", q.Search)
		assert.Equal(t, models.SortTotal, q.SortField)
		assert.Equal(t, models.SortDesc, q.SortDir)
		assert.Equal(t, 1, q.Page)
		assert.Equal(t, 30, q.PageSize)
		assert.Empty(t, q.Expanded)
	})

	t.Run("all fields", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/statistics?q=budi&sort=TPS+001&dir=ASC&page=3&page_size=50&expand=A&expand=B", nil)
		q, err := parseTableQuery(req, 30)
		require.NoError(t, err)

		assert.Equal(t, "budi", q.Search)
		assert.Equal(t, "TPS 001", q.SortField)
		assert.Equal(t, models.SortAsc, q.SortDir)
		assert.Equal(t, 3, q.Page)
		assert.Equal(t, 50, q.PageSize)
		assert.True(t, q.Expanded.Has("A"))
		assert.True(t, q.Expanded.Has("B"))
		assert.False(t, q.Expanded.Has("C"))
	})

	t.Run("errors are parse errors", func(t *testing.T) {
		_, err := parseTableQuery(httptest.NewRequest("GET", "/statistics?page_size=abc", nil), 30)
		var pe *parseError
		assert.ErrorAs(t, err, &pe)
	})
}

func TestParseSortQuery(t *testing.T) {
	req := httptest.NewRequest("GET", "/statistics/export?q=budi&dir=asc&page=0&page_size=999", nil)

	q, err := parseSortQuery(req)
	require.NoError(t, err)

	assert.Equal(t, "budi", q.Search)
	assert.Equal(t, models.SortTotal, q.SortField)
	assert.Equal(t, models.SortAsc, q.SortDir)
	assert.Equal(t, 0, q.Page)
	assert.Equal(t, 0, q.PageSize)

	_, err = parseSortQuery(httptest.NewRequest("GET", "/statistics/export?dir=up", nil))
	assert.ErrorIs(t, err, errInvalidDir)
}

func TestParseRegionFilter(t *testing.T) {
	req := httptest.NewRequest("GET", "/regions/tps?dapil=Dapil+1&kecamatan=+Cibinong+&desa=Pakansari", nil)

	f := parseRegionFilter(req.URL.Query())

	assert.Equal(t, models.RegionFilter{
		ElectoralDistrict: "Dapil 1",
		Subdistrict:       "Cibinong",
		Village:           "Pakansari",
	}, f)
}
