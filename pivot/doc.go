// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pivot turns flat vote records into the rows of the statistics table.

# Pipeline

Each call recomputes everything from its inputs:

	filter → infer pivot → build columns → aggregate → sort → flatten → paginate

The pivot level is the coarsest region level at which the filtered records
still vary (dapil, then kecamatan, then desa, else TPS). Its distinct values
become the table columns.

# Usage

	engine := pivot.NewEngine(pivot.NewCollator("id"), 30)
	result := engine.Run(records, pivot.Query{
		Search:    "golkar",
		SortField: models.SortTotal,
		SortDir:   models.SortDesc,
		Expanded:  models.NewExpandSet("Partai A"),
		Page:      1,
	})

Out-of-range pages return no rows rather than the last page.
*/
package pivot
