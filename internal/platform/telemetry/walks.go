package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// WalkMetrics holds walk session metrics.
type WalkMetrics struct {
	walksCreated metric.Int64Counter
	gatesApplied metric.Int64Counter
	arcDistance  metric.Float64Histogram
}

// NewWalkMetrics creates walk session metrics.
func NewWalkMetrics() (*WalkMetrics, error) {
	meter := otel.Meter(instrumentationName)

	walksCreated, err := meter.Int64Counter(
		"walks.created.total",
		metric.WithDescription("Total number of walk sessions created"),
	)
	if err != nil {
		return nil, err
	}

	gatesApplied, err := meter.Int64Counter(
		"walks.gates.applied.total",
		metric.WithDescription("Total number of gates applied across all walks"),
	)
	if err != nil {
		return nil, err
	}

	arcDistance, err := meter.Float64Histogram(
		"walks.gates.arc_distance",
		metric.WithDescription("Great-circle distance traveled per gate in radians"),
		metric.WithUnit("rad"),
	)
	if err != nil {
		return nil, err
	}

	return &WalkMetrics{
		walksCreated: walksCreated,
		gatesApplied: gatesApplied,
		arcDistance:  arcDistance,
	}, nil
}

// RecordWalkCreated increments the walk creation counter.
func (m *WalkMetrics) RecordWalkCreated(ctx context.Context) {
	if m == nil {
		return
	}

	m.walksCreated.Add(ctx, 1)
}

// RecordGateApplied records one gate application and the arc distance
// it moved the state on the sphere.
func (m *WalkMetrics) RecordGateApplied(ctx context.Context, gate string, distance float64) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("gate", gate))
	m.gatesApplied.Add(ctx, 1, attrs)
	m.arcDistance.Record(ctx, distance, attrs)
}
