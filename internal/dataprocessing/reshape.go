package dataprocessing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"mhtidy/pkg/contracts/domain"
)

// unnamedColumn matches headers the upstream export tool generates for
// blank header cells ("Unnamed: 6" and friends).
var unnamedColumn = regexp.MustCompile(`(?i)^unnamed(:?[ _.]?\d+)?$`)

// dashes are how the source data marks suppressed or unavailable values.
// Any cell containing one is missing, never a number.
const dashes = "-–—"

// SubsectionAndTidy turns the header-promoted table into its tidy form:
//
//  1. keep rows 1..bounds.Last (rows after the last sentinel are footnotes;
//     rows before the first were removed with the preamble),
//  2. drop the configured label columns and unnamed parser artifacts,
//  3. coerce every non-text column to numeric, mapping dash-bearing and
//     unparseable cells to missing rather than failing the dataset,
//  4. divide percentage columns by 100,
//  5. rename columns to their normalized identifiers.
//
// This is a one-way transform: running it over its own output is not
// meaningful (the rescale would halve the scale again) and is not
// supported.
func SubsectionAndTidy(tbl *domain.Table, bounds domain.RowBounds, spec domain.DatasetSpec) (*domain.Table, error) {
	if bounds.Last < 1 || bounds.Last > tbl.NumRows() {
		return nil, fmt.Errorf("row bounds [%d,%d] out of range for %d rows", bounds.First, bounds.Last, tbl.NumRows())
	}

	drop := make(map[string]bool, len(spec.DropColumns))
	for _, c := range spec.DropColumns {
		drop[c] = true
	}

	type keptColumn struct {
		idx  int
		raw  string
		text bool
		resc bool
	}
	var kept []keptColumn
	var outCols []string
	for i, name := range tbl.Columns {
		if name == "" || drop[name] || unnamedColumn.MatchString(name) {
			continue
		}
		kept = append(kept, keptColumn{
			idx:  i,
			raw:  name,
			text: spec.IsTextColumn(name),
			resc: spec.IsRescaled(name),
		})
		if renamed, ok := spec.Renames[name]; ok {
			outCols = append(outCols, renamed)
		} else {
			outCols = append(outCols, name)
		}
	}

	outRows := make([][]string, 0, bounds.Last)
	for i := 0; i < bounds.Last; i++ {
		row := make([]string, len(kept))
		for j, col := range kept {
			cell := strings.TrimSpace(tbl.Cell(i, col.idx))
			if col.text {
				row[j] = cell
				continue
			}
			v, ok := coerceNumeric(cell)
			if !ok {
				row[j] = domain.Missing
				continue
			}
			if col.resc {
				v /= 100
			}
			row[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		outRows = append(outRows, row)
	}

	return &domain.Table{Columns: outCols, Rows: outRows}, nil
}

// coerceNumeric interprets a cleaned cell as a number. Cells containing a
// dash are suppressed values; anything else that fails to parse is a local
// coercion failure, reported as not-ok so the caller substitutes missing.
func coerceNumeric(cell string) (float64, bool) {
	if cell == domain.Missing || strings.ContainsAny(cell, dashes) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
