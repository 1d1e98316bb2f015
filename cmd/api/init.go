package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Areg888/toolbox-app/internal/calculator"
	"github.com/Areg888/toolbox-app/internal/config"
	"github.com/Areg888/toolbox-app/internal/observability"
	"github.com/Areg888/toolbox-app/internal/todo"
)

// initTelemetry starts the OTel providers when enabled and registers the
// domain metric instruments. Instruments stay no-ops when telemetry is off.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	if !cfg.TelemetryEnabled {
		observability.Logger.Info("telemetry disabled")
		return func(context.Context) error { return nil }, nil
	}

	shutdown, err := observability.InitTelemetry(ctx, cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	if err := todo.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}

// initSessions builds the calculator session store and exposes its size on
// the Prometheus registry.
func initSessions(cfg config.Config) *calculator.SessionStore {
	store := calculator.NewSessionStore(cfg.MaxCalcSessions)

	if err := calculator.RegisterSessionGauge(prometheus.DefaultRegisterer, store); err != nil {
		observability.Logger.Warn("session gauge not registered", zap.Error(err))
	}

	return store
}
