package operations

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mhtidy/internal/dataprocessing"
	ierrors "mhtidy/internal/errors"
	"mhtidy/internal/infrastructure"
	"mhtidy/internal/store"
	"mhtidy/pkg/contracts/domain"
)

// Runner drives the batch: one sequential tidy-and-persist pass over a
// manifest of datasets. Failures are isolated per dataset, so one broken
// export never blocks the others, and a failed dataset's prior stored
// value is left untouched.
type Runner struct {
	store   *store.Store
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *Metrics
}

// NewRunner creates a batch runner over the given store. metrics may be
// nil when observability is not wired up.
func NewRunner(st *store.Store, logger *slog.Logger, metrics *Metrics) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		store:   st,
		logger:  logger,
		tracer:  otel.Tracer(infrastructure.TracerName),
		metrics: metrics,
	}
}

// DatasetResult reports one dataset's outcome within a batch run.
type DatasetResult struct {
	Name     string
	Source   string
	Rows     int
	Duration time.Duration
	Stage    ierrors.Stage // stage that failed, empty on success
	Err      error
}

// Failed reports whether this dataset's transform failed.
func (r DatasetResult) Failed() bool {
	return r.Err != nil
}

// RunSummary aggregates a whole batch run.
type RunSummary struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	Results  []DatasetResult
}

// Failed returns the results of the datasets that failed.
func (s *RunSummary) Failed() []DatasetResult {
	var out []DatasetResult
	for _, r := range s.Results {
		if r.Failed() {
			out = append(out, r)
		}
	}
	return out
}

// Err joins all dataset failures into one error, or nil when every
// dataset succeeded.
func (s *RunSummary) Err() error {
	var errs []error
	for _, r := range s.Results {
		if r.Failed() {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}

// RunAll validates the manifest, then tidies and persists each dataset in
// order. It returns an error only when the manifest itself is unusable;
// per-dataset failures are reported in the summary.
func (r *Runner) RunAll(ctx context.Context, specs []domain.DatasetSpec) (*RunSummary, error) {
	if err := ValidateManifest(specs); err != nil {
		return nil, err
	}

	summary := &RunSummary{
		RunID:   infrastructure.GenerateTraceID(),
		Started: time.Now(),
	}
	ctx = infrastructure.WithTraceID(ctx, summary.RunID)

	ctx, span := r.tracer.Start(ctx, "batch_run",
		trace.WithAttributes(
			attribute.String("run_id", summary.RunID),
			attribute.Int("datasets", len(specs))))
	defer span.End()

	r.logger.InfoContext(ctx, "batch run started",
		slog.String("run_id", summary.RunID),
		slog.Int("datasets", len(specs)))

	for _, spec := range specs {
		summary.Results = append(summary.Results, r.runOne(ctx, spec))
	}

	summary.Duration = time.Since(summary.Started)
	failed := len(summary.Failed())
	if failed > 0 {
		span.SetStatus(codes.Error, "one or more datasets failed")
	}

	r.logger.InfoContext(ctx, "batch run finished",
		slog.String("run_id", summary.RunID),
		slog.Int("succeeded", len(summary.Results)-failed),
		slog.Int("failed", failed),
		slog.Duration("duration", summary.Duration))

	return summary, nil
}

// runOne tidies and persists a single dataset, converting any failure
// into a result entry instead of aborting the batch.
func (r *Runner) runOne(ctx context.Context, spec domain.DatasetSpec) DatasetResult {
	ctx, span := r.tracer.Start(ctx, "tidy_dataset",
		trace.WithAttributes(
			attribute.String("dataset", spec.Name),
			attribute.String("source", spec.SourceFile)))
	defer span.End()

	start := time.Now()
	result := DatasetResult{Name: spec.Name, Source: spec.SourceFile}

	tidy, err := dataprocessing.TidyDataset(ctx, spec)
	if err == nil {
		if perr := r.store.Put(spec.Name, tidy); perr != nil {
			err = ierrors.NewTidyError(spec.Name, spec.SourceFile, ierrors.StagePersist, perr)
		} else {
			result.Rows = tidy.NumRows()
		}
	}
	result.Duration = time.Since(start)

	if err != nil {
		result.Err = err
		result.Stage = ierrors.StageOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(result.Stage))
		r.metrics.recordFailure(ctx, spec.Name, string(result.Stage))
		r.logger.ErrorContext(ctx, "dataset failed",
			slog.String("dataset", spec.Name),
			slog.String("source", spec.SourceFile),
			slog.String("stage", string(result.Stage)),
			slog.Any("error", err))
		return result
	}

	span.SetAttributes(attribute.Int("rows", result.Rows))
	r.metrics.recordSuccess(ctx, spec.Name, result.Rows)
	return result
}
