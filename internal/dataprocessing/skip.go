package dataprocessing

import (
	"log/slog"
	"strings"

	"mhtidy/internal/errors"
	"mhtidy/pkg/contracts/domain"
)

// DetermineSkipRows reports how many leading rows of the raw export must
// be discarded so that the marker row becomes the header. The table must
// have been parsed with no skip, which means one raw row was already
// consumed as the header: when the marker sits at 1-based data-row
// position k, the skip count is exactly k.
//
// Absence of the marker in the first column is a structural failure, not
// an empty result. Callers never get a usable zero without a nil error.
func DetermineSkipRows(tbl *domain.Table, marker, source string) (int, error) {
	if len(tbl.Columns) > 0 && tbl.Columns[0] == marker {
		return 0, nil
	}

	for i := range tbl.Rows {
		if strings.TrimSpace(tbl.Cell(i, 0)) == marker {
			skip := i + 1
			slog.Debug("marker located in preamble",
				slog.String("source", source),
				slog.String("marker", marker),
				slog.Int("skip_rows", skip))
			return skip, nil
		}
	}

	return 0, errors.MarkerNotFound(marker, source)
}
