package container

import (
	"fmt"
	"reflect"
)

// ── Type introspection ────────────────────────────────────────────────────────

// Param describes one declared parameter of a callable: the type id it
// resolves under, its reflect type, and whether it may be absent.
type Param struct {
	// ID is the type identifier looked up in the registry. Empty means the
	// parameter has no resolvable identifier (primitive or unnamed type) and
	// must be annotated before the callable can be invoked.
	ID string

	// Type is the declared Go type of the parameter.
	Type reflect.Type

	// Nullable parameters whose ID is unregistered receive the zero value of
	// Type instead of failing with NotFoundError.
	Nullable bool
}

// Inspector reports the ordered parameter list of a callable type. The
// container ships with a reflection-based implementation; callers with
// requirements reflection cannot express (nullability, custom ids) layer
// Annotate on top.
type Inspector interface {
	Params(fn reflect.Type) ([]Param, error)
}

// reflectInspector derives parameter type ids from their reflect types using
// the same package-qualified naming as TypeKey.
type reflectInspector struct{}

func (reflectInspector) Params(fn reflect.Type) ([]Param, error) {
	if fn.Kind() != reflect.Func {
		return nil, &InvalidCallableError{Reason: fmt.Sprintf("expected a func type, got %s", fn)}
	}
	n := fn.NumIn()
	if fn.IsVariadic() {
		// Variadic tails are not injectable; the callable receives an empty
		// variadic slice.
		n--
	}
	params := make([]Param, 0, n)
	for i := 0; i < n; i++ {
		t := fn.In(i)
		params = append(params, Param{ID: typeID(t), Type: t})
	}
	return params, nil
}

// typeID returns the package-qualified name used as the default type id for
// t, dereferencing a single pointer level so *Config and Config share a key.
// Unnamed and builtin types have no id.
func typeID(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.PkgPath() == "" {
		return ""
	}
	return t.PkgPath() + "." + t.Name()
}

// TypeKey returns the package-qualified type name of v, useful as a stable
// registry key when working with interfaces or structs.
//
//	key := container.TypeKey((*UserRepository)(nil))  // "myapp.UserRepository"
//	c.Set(key, factory)
func TypeKey(v any) string {
	return typeID(reflect.TypeOf(v))
}

// Key is the generic counterpart of TypeKey.
//
//	c.Set(container.Key[*Config](), config.Load())
//	cfg := container.Resolve[*Config](c, container.Key[*Config]())
func Key[T any]() string {
	return typeID(reflect.TypeOf((*T)(nil)).Elem())
}

// ── Annotations ───────────────────────────────────────────────────────────────

// Annotated pairs a callable with explicit parameter annotations. It is the
// fallback for information reflection cannot provide: marking a parameter
// nullable, or giving a primitive parameter a registry id.
type Annotated struct {
	Target any
	Params []Param
}

// Annotate attaches positional parameter annotations to a callable.
// Annotations are matched to parameters by position; a zero-value entry
// leaves the reflected parameter untouched, a non-empty ID overrides the
// reflected id, and Nullable marks the position optional.
//
//	c.Invoke(container.Annotate(handler,
//	    container.Param{},                              // keep reflected id
//	    container.Param{ID: "cache", Nullable: true},   // optional cache
//	))
func Annotate(target any, params ...Param) Annotated {
	return Annotated{Target: target, Params: params}
}

// applyAnnotations overlays explicit annotations onto reflected params.
func applyAnnotations(base, overlay []Param) ([]Param, error) {
	if len(overlay) > len(base) {
		return nil, &InvalidCallableError{Reason: fmt.Sprintf(
			"%d annotations given for a callable with %d parameters", len(overlay), len(base))}
	}
	out := make([]Param, len(base))
	copy(out, base)
	for i, a := range overlay {
		if a.ID != "" {
			out[i].ID = a.ID
		}
		if a.Type != nil {
			out[i].Type = a.Type
		}
		if a.Nullable {
			out[i].Nullable = true
		}
	}
	return out, nil
}
