// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kawalsuara/rekap/models"
)

var ErrMissingColumn = errors.New("missing required column")

var requiredColumns = []string{"dapil", "kecamatan", "desa", "tps", "partai", "caleg", "suara"}

// ReadCSV parses vote records from a CSV with a header row. Header names are
// matched case-insensitively; logo_url and warna are optional. Errors carry
// the 1-based line number.
func ReadCSV(r io.Reader) ([]models.VoteRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	field := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := []models.VoteRecord{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		votes, err := strconv.ParseInt(field(row, "suara"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid suara %q", line, field(row, "suara"))
		}

		records = append(records, models.VoteRecord{
			ElectoralDistrict: field(row, "dapil"),
			Subdistrict:       field(row, "kecamatan"),
			Village:           field(row, "desa"),
			PollingStation:    field(row, "tps"),
			Party:             field(row, "partai"),
			Candidate:         field(row, "caleg"),
			VoteCount:         votes,
			LogoURL:           field(row, "logo_url"),
			PartyColor:        field(row, "warna"),
		})
	}

	return records, nil
}
