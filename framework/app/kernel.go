// Package app bootstraps the framework: container, core providers, HTTP server.
package app

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jeffturcotte/jest/framework/config"
	"github.com/jeffturcotte/jest/framework/container"
	"github.com/jeffturcotte/jest/framework/providers"
	"github.com/jeffturcotte/jest/framework/routing"
)

// Application is the top-level application kernel. It embeds the container
// and the provider registry so user code can call app.Set(), app.Invoke(),
// app.Register() directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New creates and bootstraps the application, registering the framework core
// providers (config, logging, routing).
func New(envFiles ...string) *Application {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}

	registry.Register(&providers.ConfigServiceProvider{EnvFiles: envFiles})
	registry.Register(&providers.LoggingServiceProvider{})
	registry.Register(&providers.RoutingServiceProvider{})

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.Resolve[*config.Config](a.Container, "config")
}

// Logger resolves *zap.Logger from the container.
func (a *Application) Logger() *zap.Logger {
	return container.Resolve[*zap.Logger](a.Container, "logger")
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.Resolve[*routing.Router](a.Container, "router")
}

// Run boots the application (if needed) and starts the HTTP server.
func (a *Application) Run() {
	if !a.Providers.Booted() {
		a.Boot()
	}
	cfg := a.Config()
	log := a.Logger()
	router := a.Router()

	log.Info("listening",
		zap.String("app", cfg.App.Name),
		zap.String("addr", cfg.Addr()),
		zap.String("env", cfg.App.Env),
	)
	if err := http.ListenAndServe(cfg.Addr(), router); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

// Environment returns the APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
