// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pivot

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kawalsuara/rekap/models"
)

func rec(dapil, kec, desa, tps, party, caleg string, votes int64) models.VoteRecord {
	return models.VoteRecord{
		ElectoralDistrict: dapil,
		Subdistrict:       kec,
		Village:           desa,
		PollingStation:    tps,
		Party:             party,
		Candidate:         caleg,
		VoteCount:         votes,
	}
}

// threeRecords is two parties across two districts
func threeRecords() []models.VoteRecord {
	return []models.VoteRecord{
		rec("D1", "K1", "V1", "T1", "A", "X", 10),
		rec("D1", "K1", "V1", "T1", "B", "Y", 20),
		rec("D2", "K2", "V2", "T2", "A", "X", 5),
	}
}

func groupRows(rows []models.Row) []string {
	var out []string
	for _, r := range rows {
		switch r.Kind {
		case models.RowGroup:
			out = append(out, r.Group.Party)
		case models.RowCandidate:
			out = append(out, r.Candidate.Party+"/"+r.Candidate.Candidate)
		}
	}
	return out
}

func TestRun_TwoDistricts(t *testing.T) {
	engine := NewEngine(Lexical, 30)
	result := engine.Run(threeRecords(), Query{Page: 1})

	assert.Equal(t, models.LevelElectoralDistrict, result.PivotLevel)
	assert.Equal(t, []string{"D1", "D2"}, result.ColumnKeys)
	assert.Equal(t, int64(35), result.GrandTotal)
	require.Len(t, result.Rows, 2)

	b := result.Rows[0].Group
	a := result.Rows[1].Group
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.Equal(t, "A", a.Party)
	assert.Equal(t, int64(15), a.Total)
	assert.Equal(t, map[string]int64{"D1": 10, "D2": 5}, a.Columns)
	assert.InDelta(t, 42.857142, a.PercentOfGrandTotal, 1e-5)

	assert.Equal(t, "B", b.Party)
	assert.Equal(t, int64(20), b.Total)
	assert.Equal(t, map[string]int64{"D1": 20, "D2": 0}, b.Columns)
	assert.InDelta(t, 57.142857, b.PercentOfGrandTotal, 1e-5)
}

func TestRun_EmptyInput(t *testing.T) {
	engine := NewEngine(Lexical, 30)

	for _, records := range [][]models.VoteRecord{nil, {}} {
		result := engine.Run(records, Query{Page: 1})
		assert.Empty(t, result.ColumnKeys)
		assert.Empty(t, result.Rows)
		assert.Equal(t, 0, result.TotalRowCount)
		assert.Equal(t, 1, result.PageCount)
		assert.Equal(t, models.LevelElectoralDistrict, result.PivotLevel)
	}
}

func TestRun_SearchMatchesNothing(t *testing.T) {
	engine := NewEngine(Lexical, 30)
	result := engine.Run(threeRecords(), Query{Search: "xyz-not-found", Page: 1})

	assert.Empty(t, result.ColumnKeys)
	assert.Empty(t, result.Rows)
	assert.Equal(t, 0, result.TotalRowCount)
	assert.Equal(t, 1, result.PageCount)
	assert.Equal(t, int64(0), result.GrandTotal)
}

func TestRun_ExpandedParty(t *testing.T) {
	engine := NewEngine(Lexical, 10)

	t.Run("ascending", func(t *testing.T) {
		result := engine.Run(threeRecords(), Query{
			SortField: models.SortTotal,
			SortDir:   models.SortAsc,
			Expanded:  models.NewExpandSet("A"),
			Page:      1,
		})
		assert.Equal(t, []string{"A", "A/X", "B"}, groupRows(result.Rows))
		assert.Equal(t, 3, result.TotalRowCount)
	})

	t.Run("default descending", func(t *testing.T) {
		result := engine.Run(threeRecords(), Query{
			Expanded: models.NewExpandSet("A"),
			Page:     1,
		})
		assert.Equal(t, []string{"B", "A", "A/X"}, groupRows(result.Rows))
	})
}

func TestRun_Idempotent(t *testing.T) {
	engine := NewEngine(NewCollator("id"), 2)
	q := Query{Search: "a", Expanded: models.NewExpandSet("A", "B"), Page: 1}

	first := engine.Run(threeRecords(), q)
	second := engine.Run(threeRecords(), q)
	assert.Equal(t, first, second)
}

func TestFilterBySearch(t *testing.T) {
	records := []models.VoteRecord{
		rec("Dapil 1", "Cibinong", "Pakansari", "TPS 001", "Partai Merah", "Budi", 1),
		rec("Dapil 2", "Bojonggede", "Waringin", "TPS 002", "Partai Biru", "Siti", 2),
	}

	tests := []struct {
		name string
		term string
		want int
	}{
		{"empty term keeps all", "", 2},
		{"party case insensitive", "MERAH", 1},
		{"candidate", "siti", 1},
		{"dapil", "dapil", 2},
		{"kecamatan", "bojong", 1},
		{"desa", "Pakan", 1},
		{"tps", "tps 00", 2},
		{"no match", "xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, FilterBySearch(records, tt.term), tt.want)
		})
	}
}

func TestInferPivotLevel(t *testing.T) {
	tests := []struct {
		name    string
		records []models.VoteRecord
		want    models.PivotLevel
	}{
		{"empty", nil, models.LevelElectoralDistrict},
		{"two districts", []models.VoteRecord{
			rec("D1", "K1", "V1", "T1", "A", "X", 1),
			rec("D2", "K1", "V1", "T1", "A", "X", 1),
		}, models.LevelElectoralDistrict},
		{"one district two kecamatan", []models.VoteRecord{
			rec("D1", "K1", "V1", "T1", "A", "X", 1),
			rec("D1", "K2", "V1", "T1", "A", "X", 1),
		}, models.LevelSubdistrict},
		{"one kecamatan two desa", []models.VoteRecord{
			rec("D1", "K1", "V1", "T1", "A", "X", 1),
			rec("D1", "K1", "V2", "T1", "A", "X", 1),
		}, models.LevelVillage},
		{"one desa", []models.VoteRecord{
			rec("D1", "K1", "V1", "T1", "A", "X", 1),
			rec("D1", "K1", "V1", "T2", "A", "X", 1),
		}, models.LevelPollingStation},
		{"single record", []models.VoteRecord{
			rec("D1", "K1", "V1", "T1", "A", "X", 1),
		}, models.LevelPollingStation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferPivotLevel(tt.records))
		})
	}
}

func TestBuildColumnKeys(t *testing.T) {
	records := []models.VoteRecord{
		rec("D1", "K1", "V1", "TPS 10", "A", "X", 1),
		rec("D1", "K1", "V1", "TPS 2", "A", "X", 1),
		rec("D1", "K1", "V1", "TPS 1", "B", "Y", 1),
		rec("D1", "K1", "V1", "TPS 2", "B", "Y", 1),
	}

	t.Run("lexical", func(t *testing.T) {
		keys := BuildColumnKeys(records, models.LevelPollingStation, Lexical)
		assert.Equal(t, []string{"TPS 1", "TPS 10", "TPS 2"}, keys)
	})

	t.Run("collator orders numbers numerically", func(t *testing.T) {
		keys := BuildColumnKeys(records, models.LevelPollingStation, NewCollator("id"))
		assert.Equal(t, []string{"TPS 1", "TPS 2", "TPS 10"}, keys)
	})

	t.Run("nil comparator", func(t *testing.T) {
		keys := BuildColumnKeys(records, models.LevelElectoralDistrict, nil)
		assert.Equal(t, []string{"D1"}, keys)
	})
}

func TestAggregate_CandidatesAndPercentages(t *testing.T) {
	records := []models.VoteRecord{
		rec("D1", "K1", "V1", "T1", "A", "X", 30),
		rec("D1", "K1", "V1", "T1", "A", "Z", 10),
		rec("D1", "K1", "V1", "T2", "A", "X", 0),
		rec("D1", "K1", "V1", "T2", "B", "Y", 0),
	}
	records[0].LogoURL = "/logo/a.png"
	records[1].PartyColor = "#ff0000"

	keys := []string{"T1", "T2"}
	agg := Aggregate(records, models.LevelPollingStation, keys)

	require.Len(t, agg.Groups, 2)
	assert.Equal(t, int64(40), agg.GrandTotal)

	a := agg.Groups[0]
	assert.Equal(t, "A", a.Row.Party)
	assert.Equal(t, "/logo/a.png", a.Row.LogoURL)
	assert.Equal(t, "#ff0000", a.Row.PartyColor)
	assert.Equal(t, 2, a.Row.CandidateCount)
	assert.Equal(t, 100.0, a.Row.PercentOfGrandTotal)
	require.Len(t, a.Candidates, 2)
	assert.Equal(t, "X", a.Candidates[0].Candidate)
	assert.Equal(t, 75.0, a.Candidates[0].PercentOfGroupTotal)
	assert.Equal(t, "Z", a.Candidates[1].Candidate)
	assert.Equal(t, map[string]int64{"T1": 10, "T2": 0}, a.Candidates[1].Columns)

	// zero-vote party must not produce NaN
	b := agg.Groups[1]
	assert.Equal(t, 0.0, b.Row.PercentOfGrandTotal)
	assert.Equal(t, 0.0, b.Candidates[0].PercentOfGroupTotal)
	assert.False(t, math.IsNaN(b.Candidates[0].PercentOfGroupTotal))
}

func TestAggregate_SameCandidateNameInTwoParties(t *testing.T) {
	records := []models.VoteRecord{
		rec("D1", "K1", "V1", "T1", "A", "Budi", 3),
		rec("D1", "K1", "V1", "T1", "B", "Budi", 4),
	}
	agg := Aggregate(records, models.LevelPollingStation, []string{"T1"})

	require.Len(t, agg.Groups, 2)
	assert.Equal(t, int64(3), agg.Groups[0].Candidates[0].Total)
	assert.Equal(t, int64(4), agg.Groups[1].Candidates[0].Total)
}

func TestAggregate_ColumnSumsMatchTotals(t *testing.T) {
	records := threeRecords()
	level := InferPivotLevel(records)
	agg := Aggregate(records, level, BuildColumnKeys(records, level, Lexical))

	for _, g := range agg.Groups {
		var sum int64
		for _, v := range g.Row.Columns {
			sum += v
		}
		assert.Equal(t, g.Row.Total, sum, g.Row.Party)
	}
}

func TestAggregate_ValueOutsideColumnKeys(t *testing.T) {
	records := []models.VoteRecord{
		rec("D1", "K1", "V1", "T1", "A", "Budi", 3),
		rec("D1", "K1", "V1", "T2", "A", "Budi", 4),
	}
	agg := Aggregate(records, models.LevelPollingStation, []string{"T1"})

	require.Len(t, agg.Groups, 1)
	g := agg.Groups[0]
	assert.Equal(t, map[string]int64{"T1": 3}, g.Row.Columns)
	assert.Equal(t, int64(7), g.Row.Total)
	assert.Equal(t, int64(7), agg.GrandTotal)
	assert.Equal(t, map[string]int64{"T1": 3}, g.Candidates[0].Columns)
}

func TestSortGroups(t *testing.T) {
	agg := Aggregate(threeRecords(), models.LevelElectoralDistrict, []string{"D1", "D2"})

	names := func(gs []Group) []string {
		var out []string
		for _, g := range gs {
			out = append(out, g.Row.Party)
		}
		return out
	}

	assert.Equal(t, []string{"B", "A"}, names(SortGroups(agg.Groups, models.SortTotal, models.SortDesc)))
	assert.Equal(t, []string{"A", "B"}, names(SortGroups(agg.Groups, models.SortTotal, models.SortAsc)))
	assert.Equal(t, []string{"A", "B"}, names(SortGroups(agg.Groups, "D2", models.SortDesc)))
	assert.Equal(t, []string{"B", "A"}, names(SortGroups(agg.Groups, "D1", "")))

	// unknown column sorts as 0 for everyone, so the original order holds
	assert.Equal(t, []string{"A", "B"}, names(SortGroups(agg.Groups, "D9", models.SortDesc)))

	// input is left untouched
	assert.Equal(t, []string{"A", "B"}, names(agg.Groups))
}

func TestSortGroups_StableTies(t *testing.T) {
	var records []models.VoteRecord
	for i := 0; i < 12; i++ {
		records = append(records, rec("D1", "K1", "V1", "T1", fmt.Sprintf("P%02d", i), "C", 7))
	}
	agg := Aggregate(records, models.LevelPollingStation, []string{"T1"})

	first := SortGroups(agg.Groups, models.SortTotal, models.SortDesc)
	second := SortGroups(first, models.SortTotal, models.SortDesc)
	for i := range agg.Groups {
		assert.Equal(t, agg.Groups[i].Row.Party, first[i].Row.Party)
		assert.Equal(t, first[i].Row.Party, second[i].Row.Party)
	}
}

func TestSortCandidates(t *testing.T) {
	cands := []*models.CandidateRow{
		{Candidate: "X", Total: 5, Columns: map[string]int64{"T1": 5}},
		{Candidate: "Y", Total: 9, Columns: map[string]int64{"T1": 1}},
		{Candidate: "Z", Total: 5, Columns: map[string]int64{"T1": 4}},
	}

	byTotal := SortCandidates(cands, models.SortTotal, models.SortDesc)
	assert.Equal(t, "Y", byTotal[0].Candidate)
	assert.Equal(t, "X", byTotal[1].Candidate)
	assert.Equal(t, "Z", byTotal[2].Candidate)

	byColumn := SortCandidates(cands, "T1", models.SortAsc)
	assert.Equal(t, "Y", byColumn[0].Candidate)
	assert.Equal(t, "Z", byColumn[1].Candidate)
	assert.Equal(t, "X", byColumn[2].Candidate)
}

func TestExpandSetToggle(t *testing.T) {
	s := models.NewExpandSet()
	s.Toggle("A")
	assert.True(t, s.Has("A"))
	s.Toggle("A")
	assert.False(t, s.Has("A"))

	var nilSet models.ExpandSet
	assert.False(t, nilSet.Has("A"))
}

func makeRows(n int) []models.Row {
	rows := make([]models.Row, n)
	for i := range rows {
		rows[i] = models.NewGroupRow(&models.GroupRow{Party: fmt.Sprintf("P%d", i)})
	}
	return rows
}

func TestPaginate(t *testing.T) {
	rows := makeRows(45)

	assert.Equal(t, 2, PageCount(len(rows), 30))
	assert.Len(t, Paginate(rows, 1, 30), 30)
	assert.Len(t, Paginate(rows, 2, 30), 15)
	assert.Empty(t, Paginate(rows, 3, 30))
	assert.Empty(t, Paginate(rows, 0, 30))
	assert.Empty(t, Paginate(rows, -1, 30))
	assert.NotNil(t, Paginate(rows, 3, 30))

	assert.Equal(t, 1, PageCount(0, 30))
	assert.Equal(t, 1, PageCount(30, 30))
	assert.Equal(t, 2, PageCount(31, 30))
}

func TestPaginate_ConcatenationIsComplete(t *testing.T) {
	rows := makeRows(73)
	size := 10

	var all []models.Row
	for p := 1; p <= PageCount(len(rows), size); p++ {
		page := Paginate(rows, p, size)
		assert.LessOrEqual(t, len(page), size)
		all = append(all, page...)
	}
	assert.Equal(t, rows, all)
}

func TestRun_Invariants(t *testing.T) {
	var records []models.VoteRecord
	parties := []string{"Merah", "Biru", "Kuning", "Hijau"}
	for i := 0; i < 200; i++ {
		records = append(records, rec(
			fmt.Sprintf("Dapil %d", i%3+1),
			fmt.Sprintf("Kec %d", i%5),
			fmt.Sprintf("Desa %d", i%7),
			fmt.Sprintf("TPS %d", i%11),
			parties[i%len(parties)],
			fmt.Sprintf("Caleg %d", i%6),
			int64(i*13%97),
		))
	}

	engine := NewEngine(NewCollator("id"), 7)
	expanded := models.NewExpandSet(parties...)
	q := Query{Expanded: expanded, Page: 1}
	rows, keys, _, grand := engine.Rows(records, q)

	var recordSum int64
	for _, r := range records {
		recordSum += r.VoteCount
	}
	assert.Equal(t, recordSum, grand)

	var groupSum int64
	var percentSum float64
	for _, row := range rows {
		switch row.Kind {
		case models.RowGroup:
			assert.Len(t, row.Group.Columns, len(keys))
			assert.GreaterOrEqual(t, row.Group.PercentOfGrandTotal, 0.0)
			assert.LessOrEqual(t, row.Group.PercentOfGrandTotal, 100.0)
			groupSum += row.Group.Total
			percentSum += row.Group.PercentOfGrandTotal
		case models.RowCandidate:
			assert.Len(t, row.Candidate.Columns, len(keys))
		default:
			t.Fatalf("unexpected row kind %q", row.Kind)
		}
	}
	assert.Equal(t, recordSum, groupSum)
	assert.InDelta(t, 100.0, percentSum, 1e-9)

	result := engine.Run(records, q)
	assert.Equal(t, len(rows), result.TotalRowCount)
	assert.Equal(t, PageCount(len(rows), 7), result.PageCount)

	var paged []models.Row
	for p := 1; p <= result.PageCount; p++ {
		q.Page = p
		paged = append(paged, engine.Run(records, q).Rows...)
	}
	assert.Equal(t, rows, paged)
}
