// Package providers holds the framework's core service providers.
package providers

import (
	"go.uber.org/zap"

	"github.com/jeffturcotte/jest/framework/config"
	"github.com/jeffturcotte/jest/framework/container"
	"github.com/jeffturcotte/jest/framework/logging"
	"github.com/jeffturcotte/jest/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it into the container.
//
// Bound type ids:
//   - "config" (aliased to the *config.Config type key) → *config.Config
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Set("config", container.Share(func() *config.Config {
		return config.Load(envFiles...)
	}))
	app.Alias("config", container.Key[*config.Config]())
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider builds the zap logger from config.
//
// Bound type ids:
//   - "logger" (aliased to the *zap.Logger type key) → *zap.Logger
type LoggingServiceProvider struct {
	container.BaseProvider
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	app.Set("logger", container.Share(func(cfg *config.Config) (*zap.Logger, error) {
		return logging.New(cfg)
	}))
	app.Alias("logger", container.Key[*zap.Logger]())
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router with request logging
// attached.
//
// Bound type ids:
//   - "router" (aliased to the *routing.Router type key) → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Set("router", container.Share(func(log *zap.Logger) *routing.Router {
		r := routing.New()
		r.Middleware(routing.RequestLogger(log))
		return r
	}))
	app.Alias("router", container.Key[*routing.Router]())
}
