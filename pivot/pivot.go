// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pivot

import (
	"sort"
	"strings"

	"github.com/kawalsuara/rekap/models"
)

// Group is a party aggregate together with its candidate aggregates.
type Group struct {
	Row        *models.GroupRow
	Candidates []*models.CandidateRow
}

// Aggregation is the output of Aggregate
type Aggregation struct {
	Groups     []Group
	GrandTotal int64
}

// FilterBySearch keeps records whose party, candidate, or any region level
// contains term, ignoring case. An empty term returns records unchanged.
func FilterBySearch(records []models.VoteRecord, term string) []models.VoteRecord {
	if term == "" {
		return records
	}

	needle := strings.ToLower(term)
	var out []models.VoteRecord
	for _, r := range records {
		if matches(r, needle) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.VoteRecord, needle string) bool {
	for _, field := range []string{
		r.Party,
		r.Candidate,
		r.ElectoralDistrict,
		r.Subdistrict,
		r.Village,
		r.PollingStation,
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// InferPivotLevel picks the coarsest level at which records still vary.
// Empty input pivots by electoral district.
func InferPivotLevel(records []models.VoteRecord) models.PivotLevel {
	for _, level := range models.Levels[:len(models.Levels)-1] {
		if distinctCount(records, level) > 1 {
			return level
		}
	}
	if len(records) == 0 {
		return models.LevelElectoralDistrict
	}
	return models.LevelPollingStation
}

func distinctCount(records []models.VoteRecord, level models.PivotLevel) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.LevelValue(level)] = struct{}{}
		if len(seen) > 1 {
			// only "more than one" matters
			return len(seen)
		}
	}
	return len(seen)
}

// BuildColumnKeys returns the distinct values records take at level, sorted
// ascending with cmp.
func BuildColumnKeys(records []models.VoteRecord, level models.PivotLevel, cmp Compare) []string {
	seen := make(map[string]struct{})
	keys := []string{}
	for _, r := range records {
		v := r.LevelValue(level)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		keys = append(keys, v)
	}

	if cmp == nil {
		cmp = Lexical
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return cmp(keys[i], keys[j]) < 0
	})
	return keys
}

// Aggregate groups records by party, then by candidate within the party, in
// first-seen order. Every row gets an entry for every column key.
//
// columnKeys should come from BuildColumnKeys over the same records and level.
// A vote whose value at level is not a column key still counts toward Total
// and GrandTotal but lands in no column, so sum(Columns) < Total.
func Aggregate(records []models.VoteRecord, level models.PivotLevel, columnKeys []string) Aggregation {
	var groups []Group
	groupIndex := make(map[string]int)
	candidateIndex := make(map[string]map[string]*models.CandidateRow)
	var grandTotal int64

	for _, r := range records {
		gi, ok := groupIndex[r.Party]
		if !ok {
			gi = len(groups)
			groupIndex[r.Party] = gi
			groups = append(groups, Group{
				Row: &models.GroupRow{
					Party:   r.Party,
					Columns: zeroColumns(columnKeys),
				},
			})
			candidateIndex[r.Party] = make(map[string]*models.CandidateRow)
		}
		g := &groups[gi]

		// Display metadata comes from the first record that carries it
		if g.Row.LogoURL == "" {
			g.Row.LogoURL = r.LogoURL
		}
		if g.Row.PartyColor == "" {
			g.Row.PartyColor = r.PartyColor
		}

		c, ok := candidateIndex[r.Party][r.Candidate]
		if !ok {
			c = &models.CandidateRow{
				Party:     r.Party,
				Candidate: r.Candidate,
				Columns:   zeroColumns(columnKeys),
			}
			candidateIndex[r.Party][r.Candidate] = c
			g.Candidates = append(g.Candidates, c)
		}

		col := r.LevelValue(level)
		if _, ok := g.Row.Columns[col]; ok {
			g.Row.Columns[col] += r.VoteCount
			c.Columns[col] += r.VoteCount
		}
		g.Row.Total += r.VoteCount
		c.Total += r.VoteCount
		grandTotal += r.VoteCount
	}

	for i := range groups {
		g := &groups[i]
		g.Row.CandidateCount = len(g.Candidates)
		g.Row.PercentOfGrandTotal = percent(g.Row.Total, grandTotal)
		for _, c := range g.Candidates {
			c.PercentOfGroupTotal = percent(c.Total, g.Row.Total)
		}
	}

	return Aggregation{Groups: groups, GrandTotal: grandTotal}
}

func zeroColumns(keys []string) map[string]int64 {
	cols := make(map[string]int64, len(keys))
	for _, k := range keys {
		cols[k] = 0
	}
	return cols
}

// percent returns part/whole*100, or 0 when whole is 0
func percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// SortGroups returns a stably sorted copy of groups. field is models.SortTotal
// or a column key; unknown columns sort as 0. Any dir other than asc sorts
// descending.
func SortGroups(groups []Group, field string, dir models.SortDir) []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		return less(sortKey(out[i].Row.Total, out[i].Row.Columns, field),
			sortKey(out[j].Row.Total, out[j].Row.Columns, field), dir)
	})
	return out
}

// SortCandidates applies the SortGroups rule to one group's candidates.
func SortCandidates(candidates []*models.CandidateRow, field string, dir models.SortDir) []*models.CandidateRow {
	out := make([]*models.CandidateRow, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		return less(sortKey(out[i].Total, out[i].Columns, field),
			sortKey(out[j].Total, out[j].Columns, field), dir)
	})
	return out
}

func sortKey(total int64, columns map[string]int64, field string) int64 {
	if field == models.SortTotal {
		return total
	}
	return columns[field]
}

func less(a, b int64, dir models.SortDir) bool {
	if dir == models.SortAsc {
		return a < b
	}
	return a > b
}

// Flatten emits each group row followed, when the party is expanded, by its
// candidates sorted with the same field and direction.
func Flatten(groups []Group, expanded models.ExpandSet, field string, dir models.SortDir) []models.Row {
	rows := make([]models.Row, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, models.NewGroupRow(g.Row))
		if !expanded.Has(g.Row.Party) {
			continue
		}
		for _, c := range SortCandidates(g.Candidates, field, dir) {
			rows = append(rows, models.NewCandidateRow(c))
		}
	}
	return rows
}

// Paginate returns the 1-indexed page window of rows. Pages outside the
// range yield an empty slice; callers clamp if they want to.
func Paginate(rows []models.Row, page, pageSize int) []models.Row {
	if page < 1 || pageSize < 1 {
		return []models.Row{}
	}

	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []models.Row{}
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// PageCount is max(1, ceil(total/pageSize)).
func PageCount(total, pageSize int) int {
	if pageSize < 1 || total == 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}
