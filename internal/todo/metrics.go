package todo

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	mutationCounter metric.Int64Counter = noop.Int64Counter{}
	errorCounter    metric.Int64Counter = noop.Int64Counter{}
)

// InitMetrics registers the to-do list's OTel instruments.
func InitMetrics() error {
	return initMetrics(otel.Meter("todo"))
}

func initMetrics(meter metric.Meter) error {
	var err error

	mutationCounter, err = meter.Int64Counter("todo.mutations.total",
		metric.WithDescription("Total number of persisted to-do list changes"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return fmt.Errorf("creating mutation counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("todo.errors.total",
		metric.WithDescription("Total number of failed to-do requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	return nil
}
