// Package container provides a runtime dependency-resolution container: it
// maps type identifiers to factory functions or instances, resolves the
// parameter types a callable or constructor declares by recursively invoking
// the registered factories, detects circular resolution chains, and
// optionally memoizes produced values (singleton semantics via Share).
//
// # Bindings
//
//	c := container.New()
//
//	// Factory — any func; parameters are injected. New value every Get().
//	c.Set("db", func(cfg *config.Config) *DB { return Open(cfg.DB) })
//
//	// Shared factory — invoked once, memoized.
//	c.Set("config", container.Share(func() *config.Config {
//	    return config.Load()
//	}))
//
//	// Pre-built instance — stored verbatim, returned as-is.
//	c.Set("clock", clock.System)
//
// Parameter type ids default to the package-qualified type name (see TypeKey
// and Key), so a factory's *config.Config parameter resolves the binding
// registered under Key[*config.Config]().
//
// # Resolving
//
//	raw, err := c.Get("db")
//
//	// Generic (panics on failure — for bootstrap code)
//	db := container.Resolve[*DB](c, "db")
//
// A type id requested while its own factory is still executing fails with
// CycleError rather than recursing forever; the resolution stack unwinds on
// every exit path, so an unrelated resolution afterwards is never falsely
// flagged as cyclic.
//
// # Invoking callables
//
//	// Plain func
//	out, err := c.Invoke(func(db *DB, log *zap.Logger) *Report { ... })
//
//	// Bound method
//	out, err := c.Invoke(container.Method(mailer, "Send"))
//
//	// Invokable object (exported Invoke method)
//	out, err := c.Invoke(job)
//
//	// Named callable (string naming a registered func binding)
//	out, err := c.Invoke("report.generate")
//
// Parameters reflection cannot describe — primitives, or optional
// dependencies — are annotated explicitly:
//
//	c.Invoke(container.Annotate(handler,
//	    container.Param{},                            // keep reflected id
//	    container.Param{ID: "cache", Nullable: true}, // zero value if absent
//	))
//
// # Creating objects
//
//	c.DefineType("Widget", NewWidget) // constructor: params injected
//	w, err := c.Create("Widget")
//
// # Service providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) {
//	    app.Set("mailer", container.Share(newMailer))
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
//
// # Errors
//
// Resolution failures are typed — NotFoundError, InvalidBindingError,
// CycleError, InvalidTargetError, InvalidCallableError — and match their
// package-level sentinels through errors.Is. Every error surfaces from the
// call that triggered it and aborts the in-flight chain; no partial values
// are returned, and there are no retries: fix the registration and resolve
// again.
//
// # Concurrency
//
// Registry mutation is mutex-guarded and shared factories memoize atomically,
// but a resolution chain runs on one goroutine: the cycle-detection stack is
// instance-local and unsynchronized.
package container
