package errors

import (
	"errors"
	"fmt"
)

// Stage identifies the pipeline stage that raised a failure.
type Stage string

const (
	StageLoad    Stage = "load"
	StageDetect  Stage = "detect_skip"
	StageLocate  Stage = "locate_bounds"
	StageReshape Stage = "reshape"
	StagePersist Stage = "persist"
)

// Sentinel errors for structural failures. Both are fatal to the dataset
// being processed: they mean the raw file violated the pipeline's
// structural assumptions, never that "nothing was found" is an acceptable
// result.
var (
	ErrMarkerNotFound = errors.New("marker not found")
	ErrBoundsNotFound = errors.New("bounds not found")
)

// MarkerNotFound builds the detector's failure: the sentinel marker never
// appears in the scanned first column. Carries the source for diagnostics.
func MarkerNotFound(marker, source string) error {
	return fmt.Errorf("%w: %q not in first column of %s", ErrMarkerNotFound, marker, source)
}

// BoundsNotFound builds the locator's failure: the key column did not
// contain exactly one first-sentinel row and one last-sentinel row.
func BoundsNotFound(keyColumn string, matches int) error {
	return fmt.Errorf("%w: key column %q matched %d boundary rows, want exactly 2", ErrBoundsNotFound, keyColumn, matches)
}

// TidyError wraps a stage failure with the dataset name and source file so
// the batch driver can report which dataset failed and where.
type TidyError struct {
	Dataset string
	Source  string
	Stage   Stage
	Err     error
}

// Error implements the error interface
func (e *TidyError) Error() string {
	return fmt.Sprintf("dataset %s: stage %s failed for %s: %v", e.Dataset, e.Stage, e.Source, e.Err)
}

// Unwrap exposes the underlying stage error for errors.Is/As.
func (e *TidyError) Unwrap() error {
	return e.Err
}

// NewTidyError creates a TidyError for the given dataset, source and stage
func NewTidyError(dataset, source string, stage Stage, err error) *TidyError {
	return &TidyError{Dataset: dataset, Source: source, Stage: stage, Err: err}
}

// StageOf extracts the failed stage from an error chain, or empty string.
func StageOf(err error) Stage {
	var te *TidyError
	if errors.As(err, &te) {
		return te.Stage
	}
	return ""
}
