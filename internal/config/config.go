// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr         string
	ServiceName      string
	TelemetryEnabled bool
	LogDevelopment   bool
	TodoStorePath    string
	MaxCalcSessions  int
	ShutdownTimeout  time.Duration
}

// Load reads .env (when present) and then the process environment.
// Variables already set in the environment are not overridden by .env.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}
	return FromEnv(os.LookupEnv)
}

// loadDotEnv loads environment variables from .env, or from ENV_FILE when
// set. A missing file is not an error.
func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// FromEnv builds a Config from lookup, applying defaults for unset keys.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	p := parser{lookup: lookup}

	cfg := Config{
		HTTPAddr:         p.string("HTTP_ADDR", ":8080"),
		ServiceName:      p.string("OTEL_SERVICE_NAME", "toolbox-api"),
		TelemetryEnabled: p.bool("TELEMETRY_ENABLED", true),
		LogDevelopment:   p.bool("LOG_DEVELOPMENT", false),
		TodoStorePath:    p.string("TODO_STORE_PATH", "data/todos.json"),
		MaxCalcSessions:  p.int("CALC_MAX_SESSIONS", 1024),
		ShutdownTimeout:  p.duration("SHUTDOWN_TIMEOUT", 5*time.Second),
	}

	if cfg.MaxCalcSessions <= 0 {
		p.fail("CALC_MAX_SESSIONS", errors.New("must be positive"))
	}
	if cfg.ShutdownTimeout <= 0 {
		p.fail("SHUTDOWN_TIMEOUT", errors.New("must be positive"))
	}

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type parser struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (p *parser) fail(key string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
}

func (p *parser) string(key, def string) string {
	if v, ok := p.lookup(key); ok && v != "" {
		return v
	}
	return def
}

func (p *parser) bool(key string, def bool) bool {
	v, ok := p.lookup(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return b
}

func (p *parser) int(key string, def int) int {
	v, ok := p.lookup(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return n
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v, ok := p.lookup(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return d
}
