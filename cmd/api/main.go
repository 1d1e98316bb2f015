package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Areg888/toolbox-app/internal/calculator"
	"github.com/Areg888/toolbox-app/internal/config"
	"github.com/Areg888/toolbox-app/internal/observability"
	"github.com/Areg888/toolbox-app/internal/server"
	"github.com/Areg888/toolbox-app/internal/todo"
)

func main() {

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	if err := observability.InitLogger(cfg.LogDevelopment); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing, metrics, logs
	telemetryShutdown, err := initTelemetry(ctx, cfg)
	if err != nil {
		observability.Logger.Fatal("telemetry init failed", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := telemetryShutdown(ctx); err != nil {
			observability.Logger.Error("telemetry shutdown failed", zap.Error(err))
		}
	}()

	// Domain
	todos, err := todo.NewService(ctx, todo.NewFileStore(cfg.TodoStorePath))
	if err != nil {
		observability.Logger.Fatal("loading todos failed", zap.Error(err), zap.String("path", cfg.TodoStorePath))
	}

	// Router
	router := server.NewRouter(server.Dependencies{
		Calculator: calculator.NewHandler(initSessions(cfg)),
		Todos:      todo.NewHandler(todos),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		observability.Logger.Info("server started", zap.String("addr", cfg.HTTPAddr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	waitForShutdown(srv, errCh, cfg.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, errCh <-chan error, timeout time.Duration) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		observability.Logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		observability.Logger.Error("server failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("server shutdown failed", zap.Error(err))
	}
}
