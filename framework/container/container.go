package container

import (
	"fmt"
	"reflect"
	"sync"
)

// ── Bindings ──────────────────────────────────────────────────────────────────

type bindingKind uint8

const (
	kindFactory bindingKind = iota
	kindInstance
)

// binding pairs a type id with either a factory (any supported callable) or a
// directly registered instance. A type id holds at most one binding at a time.
type binding struct {
	kind  bindingKind
	value any
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container maps type identifiers to factories or instances and resolves them
// recursively, detecting circular chains along the way.
//
// It supports:
//   - Set / Has / Delete / Get (registry operations)
//   - Invoke (call any supported callable with resolved arguments)
//   - DefineType / Create (constructor-based instantiation)
//   - Share (memoizing factory wrapper)
//   - Alias / Tag (alternative names and grouping)
//
// Registry mutation is guarded by a RWMutex so bindings may be registered
// from multiple goroutines, but a resolution chain (Get/Invoke/Create and the
// factories it calls) runs on a single goroutine: the resolution stack used
// for cycle detection is instance-local and not synchronized.
type Container struct {
	mu sync.RWMutex

	// type id → binding
	bindings map[string]*binding

	// alias → canonical type id
	aliases map[string]string

	// tag → []type id
	tags map[string][]string

	// type id → creatable type definition (see create.go)
	types map[string]*typeDef

	inspector Inspector

	// type ids whose factories are currently executing, outermost first.
	// Pushed before a factory runs, popped on every exit path.
	resolving []string
}

// New creates an empty container. The container registers itself under the
// "container" id and under its own type key, so factories may declare a
// *Container parameter and have it injected.
func New() *Container {
	c := &Container{
		bindings:  make(map[string]*binding),
		aliases:   make(map[string]string),
		tags:      make(map[string][]string),
		types:     make(map[string]*typeDef),
		inspector: reflectInspector{},
	}
	c.bindSelf()
	return c
}

func (c *Container) bindSelf() {
	self := &binding{kind: kindInstance, value: c}
	c.bindings["container"] = self
	c.bindings[TypeKey(c)] = self
}

// ── Registration ──────────────────────────────────────────────────────────────

// Set registers a binding for id, overwriting any previous one.
//
// Classification is deterministic: a value of func kind is stored as a
// factory and invoked (with its parameters resolved) on every Get; any other
// non-nil value is stored verbatim as an instance and returned as-is, never
// entering the resolution stack. A nil value fails with InvalidBindingError.
func (c *Container) Set(id string, value any) error {
	if value == nil {
		return &InvalidBindingError{ID: id, Reason: "value is nil; bind a factory func or a constructed instance"}
	}
	kind := kindInstance
	if reflect.TypeOf(value).Kind() == reflect.Func {
		kind = kindFactory
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[c.canonical(id)] = &binding{kind: kind, value: value}
	return nil
}

// Has reports whether a binding exists for id (directly or via alias).
func (c *Container) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[c.canonical(id)]
	return ok
}

// Delete removes the binding for id. Subsequent Has/Get treat it as
// unregistered. Type definitions (DefineType) are unaffected.
func (c *Container) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.bindings, c.canonical(id))
}

// Keys returns all registered type ids, in no particular order.
func (c *Container) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings))
	for k := range c.bindings {
		out = append(out, k)
	}
	return out
}

// Flush resets the container to its freshly-constructed state.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings = make(map[string]*binding)
	c.aliases = make(map[string]string)
	c.tags = make(map[string][]string)
	c.types = make(map[string]*typeDef)
	c.bindSelf()
}

// ── Aliases & Tags ────────────────────────────────────────────────────────────

// Alias registers an alternative name for a type id.
func (c *Container) Alias(id, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", id))
	}
	c.aliases[alias] = c.canonical(id)
}

// Tag associates multiple type ids under a named group.
func (c *Container) Tag(ids []string, tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags[tag] = append(c.tags[tag], ids...)
}

// Tagged resolves every type id registered under tag. The first resolution
// failure aborts and propagates.
func (c *Container) Tagged(tag string) ([]any, error) {
	c.mu.RLock()
	ids := append([]string(nil), c.tags[tag]...)
	c.mu.RUnlock()

	out := make([]any, 0, len(ids))
	for _, id := range ids {
		v, err := c.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get resolves id to a value.
//
// Instance bindings are returned verbatim. Factory bindings are invoked with
// their parameters resolved recursively through the same path; the id is held
// on the resolution stack while its factory runs, so a dependency chain that
// re-requests it fails with CycleError instead of recursing forever.
func (c *Container) Get(id string) (any, error) {
	c.mu.RLock()
	key := c.canonical(id)
	b, ok := c.bindings[key]
	c.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	if b.kind == kindInstance {
		return b.value, nil
	}

	release, err := c.enter(key)
	if err != nil {
		return nil, err
	}
	defer release()

	return c.Invoke(b.value)
}

// enter pushes key onto the resolution stack, failing with CycleError if it
// is already mid-resolution. The returned release func pops it and must run
// on every exit path.
func (c *Container) enter(key string) (release func(), err error) {
	for _, in := range c.resolving {
		if in == key {
			return nil, &CycleError{ID: key, Stack: append([]string(nil), c.resolving...)}
		}
	}
	c.resolving = append(c.resolving, key)
	return func() {
		c.resolving = c.resolving[:len(c.resolving)-1]
	}, nil
}

// canonical resolves an alias to its canonical key. Callers hold c.mu.
func (c *Container) canonical(id string) string {
	if target, ok := c.aliases[id]; ok {
		return target
	}
	return id
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve calls Get and type-asserts the result, panicking on resolution
// failure or type mismatch. Use it at bootstrap where a missing binding is a
// programming error.
//
//	cfg := container.Resolve[*config.Config](c, "config")
func Resolve[T any](c *Container, id string) T {
	v, err := c.Get(id)
	if err != nil {
		panic(fmt.Sprintf("container: Resolve[%T]: %v", *new(T), err))
	}
	typed, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("container: Resolve[%T]: [%s] resolved to %T", *new(T), id, v))
	}
	return typed
}

// MustResolve is like Resolve but reports failure as a bool instead of
// panicking.
func MustResolve[T any](c *Container, id string) (T, bool) {
	v, err := c.Get(id)
	if err != nil {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}
