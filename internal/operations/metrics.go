package operations

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics counts batch outcomes. All methods are nil-safe so the runner
// works without observability wired up (tests, one-off runs).
type Metrics struct {
	processed metric.Int64Counter
	failed    metric.Int64Counter
	rows      metric.Int64Counter
}

// NewMetrics registers the runner's counters on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	processed, err := meter.Int64Counter("mhtidy_datasets_processed_total",
		metric.WithDescription("Datasets tidied and persisted successfully"))
	if err != nil {
		return nil, fmt.Errorf("failed to create processed counter: %w", err)
	}
	failed, err := meter.Int64Counter("mhtidy_datasets_failed_total",
		metric.WithDescription("Datasets whose transform or persist failed"))
	if err != nil {
		return nil, fmt.Errorf("failed to create failed counter: %w", err)
	}
	rows, err := meter.Int64Counter("mhtidy_rows_tidied_total",
		metric.WithDescription("Data rows written to the dataset store"))
	if err != nil {
		return nil, fmt.Errorf("failed to create rows counter: %w", err)
	}
	return &Metrics{processed: processed, failed: failed, rows: rows}, nil
}

func (m *Metrics) recordSuccess(ctx context.Context, dataset string, rows int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("dataset", dataset))
	m.processed.Add(ctx, 1, attrs)
	m.rows.Add(ctx, int64(rows), attrs)
}

func (m *Metrics) recordFailure(ctx context.Context, dataset, stage string) {
	if m == nil {
		return
	}
	m.failed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("dataset", dataset),
		attribute.String("stage", stage)))
}
