// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package importer reads vote tallies exported from the recap spreadsheets.

The CSV must start with a header row naming at least:

	dapil,kecamatan,desa,tps,partai,caleg,suara

Optional columns logo_url and warna carry party display metadata. Column
order does not matter. Validation of the values themselves (negative suara,
blank regions) happens in db.ValidateRecord when the batch is stored.
*/
package importer
