package container

import "sync"

// memoCell holds the value produced by a shared factory. Each Share call owns
// its own cell, so wrapping the same factory twice yields two independent
// singletons. Only successful results are cached: a failing factory leaves
// the cell unset so the registration can be fixed and resolved again.
type memoCell struct {
	mu    sync.Mutex
	done  bool
	value any
}

// Share wraps factory so it is invoked at most once.
//
// The returned value is itself a factory: bind it with Set and the first Get
// resolves the wrapped factory's dependencies, calls it, and memoizes the
// result; every later Get returns the memoized value without re-invoking it.
// Plain (unwrapped) factories are transient — each Get invokes them again.
//
//	c.Set("config", container.Share(func() *config.Config {
//	    return config.Load()
//	}))
func Share(factory any) any {
	cell := &memoCell{}
	return func(c *Container) (any, error) {
		cell.mu.Lock()
		defer cell.mu.Unlock()
		if cell.done {
			return cell.value, nil
		}
		v, err := c.Invoke(factory)
		if err != nil {
			return nil, err
		}
		cell.value = v
		cell.done = true
		return v, nil
	}
}

// Share wraps factory for memoized resolution. The receiver is not captured:
// the wrapper resolves its dependencies through whichever container invokes
// it. Equivalent to the package-level Share.
func (c *Container) Share(factory any) any {
	return Share(factory)
}
