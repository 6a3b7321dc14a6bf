package dataprocessing

import (
	"log/slog"
	"strings"

	"mhtidy/internal/errors"
	"mhtidy/pkg/contracts/domain"
)

// DetermineFirstAndLastRow locates the inclusive range of real data rows
// in a header-promoted table. Rows are numbered 1..N; the range is bounded
// by the rows whose key-column value equals the first and last boundary
// sentinels. Exactly two matching rows must exist, one per sentinel, with
// the first at or above the last. Anything else means the export's
// structure changed and the dataset must not be processed.
func DetermineFirstAndLastRow(tbl *domain.Table, spec domain.DatasetSpec) (domain.RowBounds, error) {
	keyIdx, ok := tbl.ColumnIndex(spec.KeyColumn)
	if !ok {
		return domain.RowBounds{}, errors.BoundsNotFound(spec.KeyColumn, 0)
	}

	firstIdx, lastIdx := -1, -1
	matches := 0
	for i := range tbl.Rows {
		switch strings.TrimSpace(tbl.Cell(i, keyIdx)) {
		case spec.FirstKey:
			matches++
			if firstIdx == -1 {
				firstIdx = i
			}
		case spec.LastKey:
			matches++
			lastIdx = i
		}
	}

	if matches != 2 || firstIdx == -1 || lastIdx == -1 || firstIdx > lastIdx {
		return domain.RowBounds{}, errors.BoundsNotFound(spec.KeyColumn, matches)
	}

	bounds := domain.RowBounds{First: firstIdx + 1, Last: lastIdx + 1}
	slog.Debug("data region located",
		slog.String("key_column", spec.KeyColumn),
		slog.Int("first_row", bounds.First),
		slog.Int("last_row", bounds.Last))
	return bounds, nil
}
