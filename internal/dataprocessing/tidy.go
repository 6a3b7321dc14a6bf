package dataprocessing

import (
	"context"
	"log/slog"

	"mhtidy/internal/errors"
	"mhtidy/internal/infrastructure"
	"mhtidy/pkg/contracts/domain"
)

// TidyDataset runs the full transform for one raw export: load, detect
// the preamble, re-promote the marker row as header, locate the data
// region, reshape. Failures carry the dataset name, source file and the
// stage that raised them; a failed dataset never yields a partial table.
func TidyDataset(ctx context.Context, spec domain.DatasetSpec) (*domain.Table, error) {
	logger := infrastructure.LoggerWithContext(ctx)

	raw, err := LoadTable(spec.SourceFile, 0)
	if err != nil {
		return nil, errors.NewTidyError(spec.Name, spec.SourceFile, errors.StageLoad, err)
	}

	skip, err := DetermineSkipRows(raw, spec.Marker, spec.SourceFile)
	if err != nil {
		return nil, errors.NewTidyError(spec.Name, spec.SourceFile, errors.StageDetect, err)
	}

	// Equivalent to re-reading the file with the skip applied, without the
	// second read.
	tbl := raw.Reslice(skip)

	bounds, err := DetermineFirstAndLastRow(tbl, spec)
	if err != nil {
		return nil, errors.NewTidyError(spec.Name, spec.SourceFile, errors.StageLocate, err)
	}

	tidy, err := SubsectionAndTidy(tbl, bounds, spec)
	if err != nil {
		return nil, errors.NewTidyError(spec.Name, spec.SourceFile, errors.StageReshape, err)
	}

	logger.InfoContext(ctx, "dataset tidied",
		slog.String("dataset", spec.Name),
		slog.String("source", spec.SourceFile),
		slog.Int("skip_rows", skip),
		slog.Int("rows", tidy.NumRows()),
		slog.Int("columns", tidy.NumCols()))

	return tidy, nil
}
