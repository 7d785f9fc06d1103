// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Pivot levels, coarsest first
const (
	LevelElectoralDistrict PivotLevel = "electoralDistrict"
	LevelSubdistrict       PivotLevel = "subdistrict"
	LevelVillage           PivotLevel = "village"
	LevelPollingStation    PivotLevel = "pollingStation"
)

// Sort constants
const (
	SortTotal = "total"

	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Row kinds
const (
	RowGroup     RowKind = "group"
	RowCandidate RowKind = "candidate"
)

// DefaultPageSize matches the statistics table
const DefaultPageSize = 30

type PivotLevel string

// Levels lists every pivot level in hierarchy order.
var Levels = []PivotLevel{
	LevelElectoralDistrict,
	LevelSubdistrict,
	LevelVillage,
	LevelPollingStation,
}

// Valid reports whether l is one of the four known levels.
func (l PivotLevel) Valid() bool {
	switch l {
	case LevelElectoralDistrict, LevelSubdistrict, LevelVillage, LevelPollingStation:
		return true
	}
	return false
}

type SortDir string

type RowKind string

// Domain types

// VoteRecord is one party/candidate tally at one polling station.
type VoteRecord struct {
	ElectoralDistrict string `json:"dapil"`
	Subdistrict       string `json:"kecamatan"`
	Village           string `json:"desa"`
	PollingStation    string `json:"tps"`
	Party             string `json:"partai"`
	Candidate         string `json:"caleg"`
	VoteCount         int64  `json:"suara"`
	LogoURL           string `json:"logo_url,omitempty"`
	PartyColor        string `json:"warna,omitempty"`
}

// LevelValue returns the record's value at the given pivot level.
func (r VoteRecord) LevelValue(level PivotLevel) string {
	switch level {
	case LevelSubdistrict:
		return r.Subdistrict
	case LevelVillage:
		return r.Village
	case LevelPollingStation:
		return r.PollingStation
	default:
		return r.ElectoralDistrict
	}
}

type GroupRow struct {
	Party               string           `json:"partai"`
	LogoURL             string           `json:"logo_url,omitempty"`
	PartyColor          string           `json:"warna,omitempty"`
	Columns             map[string]int64 `json:"columns"`
	Total               int64            `json:"total"`
	PercentOfGrandTotal float64          `json:"percent"`
	CandidateCount      int              `json:"candidate_count"`
}

type CandidateRow struct {
	Party               string           `json:"partai"`
	Candidate           string           `json:"caleg"`
	Columns             map[string]int64 `json:"columns"`
	Total               int64            `json:"total"`
	PercentOfGroupTotal float64          `json:"percent"`
}

// Row is either a party group or a candidate inside an expanded group.
// Exactly one of Group and Candidate is set, as named by Kind.
type Row struct {
	Kind      RowKind       `json:"kind"`
	Group     *GroupRow     `json:"group,omitempty"`
	Candidate *CandidateRow `json:"candidate,omitempty"`
}

func NewGroupRow(g *GroupRow) Row { return Row{Kind: RowGroup, Group: g} }

func NewCandidateRow(c *CandidateRow) Row { return Row{Kind: RowCandidate, Candidate: c} }

// ExpandSet holds the party names whose candidates are shown.
type ExpandSet map[string]struct{}

func NewExpandSet(parties ...string) ExpandSet {
	s := make(ExpandSet, len(parties))
	for _, p := range parties {
		s[p] = struct{}{}
	}
	return s
}

func (s ExpandSet) Has(party string) bool {
	_, ok := s[party]
	return ok
}

// Toggle adds party if absent and removes it if present.
func (s ExpandSet) Toggle(party string) {
	if s.Has(party) {
		delete(s, party)
		return
	}
	s[party] = struct{}{}
}

// RegionFilter narrows the records fetched from the store. Empty fields match everything.
type RegionFilter struct {
	ElectoralDistrict string `json:"dapil,omitempty"`
	Subdistrict       string `json:"kecamatan,omitempty"`
	Village           string `json:"desa,omitempty"`
	PollingStation    string `json:"tps,omitempty"`
}

// Response types

type TallyResult struct {
	ColumnKeys    []string   `json:"column_keys"`
	PivotLevel    PivotLevel `json:"pivot_level"`
	Rows          []Row      `json:"rows"`
	TotalRowCount int        `json:"total_row_count"`
	PageCount     int        `json:"page_count"`
	Page          int        `json:"page"`
	PageSize      int        `json:"page_size"`
	GrandTotal    int64      `json:"grand_total"`
}

type RegionsResponse struct {
	Level  PivotLevel `json:"level"`
	Values []string   `json:"values"`
}

type IngestResponse struct {
	BatchID string `json:"batch_id"`
	Count   int    `json:"count"`
}

type ImportBatch struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	RowCount   int       `json:"row_count"`
	ImportedAt time.Time `json:"imported_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
