package container

import "reflect"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related bindings so applications can register them
// as a unit.
//
// Every provider must implement at minimum Register().
// Boot() is called after ALL providers have been registered, making it safe
// to resolve other bindings inside Boot().
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) {
//	    app.Set("logger", container.Share(func(cfg *config.Config) (*zap.Logger, error) {
//	        return logging.New(cfg)
//	    }))
//	}
//
//	func (p *AppServiceProvider) Boot(app *container.Container) {
//	    log := container.Resolve[*zap.Logger](app, "logger")
//	    log.Info("application booted")
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	// Do NOT resolve other bindings here — use Boot() for that.
	Register(app *Container)

	// Boot is called after all providers are registered.
	// Safe to resolve and use any binding here.
	Boot(app *Container)

	// Provides returns the list of type ids this provider registers.
	// Used for deferred (lazy) provider loading.
	// Return nil / empty slice if the provider is always eager.
	Provides() []string

	// IsDeferred returns true if this provider should be loaded lazily —
	// only when one of its Provides() ids is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct that provides no-op implementations
// of Boot(), Provides(), and IsDeferred().
// Embed it in your provider and only override what you need.
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(app *container.Container) { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container)  {}
func (p *BaseProvider) Provides() []string { return nil }
func (p *BaseProvider) IsDeferred() bool   { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	deferred   map[string]ServiceProvider // type id → provider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[string]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method (unless deferred).
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		r.interceptDeferred(provider)
		return
	}

	provider.Register(r.app)
	r.eager = append(r.eager, provider)

	// If already booted, boot this provider immediately
	if r.booted {
		provider.Boot(r.app)
	}
}

// interceptDeferred installs a placeholder factory for each deferred id.
// The first Get() triggers real registration + boot, then resolves through
// the provider's own binding.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) {
	for _, id := range provider.Provides() {
		r.deferred[id] = provider
		id := id // capture
		var placeholder func(c *Container) (any, error)
		placeholder = func(c *Container) (any, error) {
			if _, pending := r.deferred[id]; pending {
				provider.Register(c)
				for _, provided := range provider.Provides() {
					delete(r.deferred, provided)
				}
				if r.booted {
					provider.Boot(c)
				}
			}
			return c.resolveRebound(id, placeholder)
		}
		_ = r.app.Set(id, placeholder)
	}
}

// resolveRebound resolves the binding a deferred provider just installed for
// id. The placeholder calling it is executing as id's factory, so id is
// already on the resolution stack and Get would flag a false cycle. A
// provider that never rebinds its advertised id would leave the placeholder
// in place and recurse forever; that is reported as an invalid binding.
func (c *Container) resolveRebound(id string, placeholder any) (any, error) {
	c.mu.RLock()
	b, ok := c.bindings[c.canonical(id)]
	c.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	if b.kind == kindFactory &&
		reflect.ValueOf(b.value).Pointer() == reflect.ValueOf(placeholder).Pointer() {
		return nil, &InvalidBindingError{ID: id, Reason: "deferred provider did not register this id"}
	}
	if b.kind == kindInstance {
		return b.value, nil
	}
	return c.Invoke(b.value)
}

// Boot calls Boot() on all eager providers.
// Must be called after ALL providers have been registered.
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.eager {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }
