package container

import (
	"fmt"
	"reflect"
)

// typeDef describes a creatable type: either a constructor func whose
// parameters are injected, or a struct prototype instantiated fresh with no
// arguments.
type typeDef struct {
	ctor  any          // constructor func, nil for prototype definitions
	proto reflect.Type // struct type for prototype definitions
}

// DefineType registers a creatable type under id for use with Create.
//
// def is either a constructor func — its parameters are resolved exactly like
// a factory's, and it must return the object (optionally with a trailing
// error) — or a struct value / pointer-to-struct prototype, in which case
// Create returns a fresh pointer to a zero value of the struct. Interfaces
// and other kinds are not instantiable and fail with InvalidTargetError.
func (c *Container) DefineType(id string, def any) error {
	if def == nil {
		return &InvalidTargetError{ID: id, Reason: "definition is nil"}
	}
	t := reflect.TypeOf(def)
	td := &typeDef{}
	switch {
	case t.Kind() == reflect.Func:
		if t.NumOut() == 0 {
			return &InvalidTargetError{ID: id, Reason: "constructor returns nothing"}
		}
		td.ctor = def
	case t.Kind() == reflect.Struct:
		td.proto = t
	case t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct:
		td.proto = t.Elem()
	default:
		return &InvalidTargetError{ID: id, Reason: fmt.Sprintf("%s is not instantiable", t)}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types[id] = td
	return nil
}

// Instantiable reports whether Create knows how to build id.
func (c *Container) Instantiable(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.types[id]
	return ok
}

// Create instantiates the type defined under id.
//
// Constructor definitions run through Invoke, so their parameters are
// resolved recursively and share the resolution stack with Get — a
// constructor whose dependency chain re-requests id fails with CycleError.
// Prototype definitions return a fresh zero-valued instance. An undefined id
// fails with InvalidTargetError.
func (c *Container) Create(id string) (any, error) {
	c.mu.RLock()
	td, ok := c.types[id]
	c.mu.RUnlock()

	if !ok {
		return nil, &InvalidTargetError{ID: id, Reason: "no such type defined"}
	}

	release, err := c.enter(id)
	if err != nil {
		return nil, err
	}
	defer release()

	if td.ctor != nil {
		return c.Invoke(td.ctor)
	}
	return reflect.New(td.proto).Interface(), nil
}
