package observability

import (
	"context"
	"errors"
	"fmt"
)

// InitTelemetry starts tracing, metrics and log export for serviceName and
// returns a single shutdown function. If any step fails, the providers
// already started are shut down before the error is returned.
func InitTelemetry(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	steps := []struct {
		name string
		init func(context.Context, string) (func(context.Context) error, error)
	}{
		{name: "tracing", init: InitTracing},
		{name: "metrics", init: InitMetrics},
		{name: "logging", init: InitLogging},
	}

	for _, step := range steps {
		fn, err := step.init(ctx, serviceName)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("init %s: %w", step.name, err), shutdown(ctx))
		}
		shutdowns = append(shutdowns, fn)
	}

	return shutdown, nil
}
