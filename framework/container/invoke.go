package container

import (
	"fmt"
	"reflect"
)

// invokeMethod is the designated call operation looked up on non-func values
// passed to Invoke.
const invokeMethod = "Invoke"

var errType = reflect.TypeOf((*error)(nil)).Elem()

// BoundMethod names a method on a receiver, for invocation through the
// container. Construct with Method.
type BoundMethod struct {
	Receiver any
	Name     string
}

// Method pairs a receiver with one of its method names so Invoke can resolve
// the method's parameters and call it.
//
//	report, err := c.Invoke(container.Method(mailer, "Send"))
func Method(receiver any, name string) BoundMethod {
	return BoundMethod{Receiver: receiver, Name: name}
}

// Invoke resolves the parameters of target and calls it.
//
// Supported callable shapes:
//   - a plain func value
//   - a bound method, via Method(receiver, name)
//   - a value exposing an exported Invoke method
//   - a string naming a registered binding whose value is itself callable
//   - an Annotated wrapper around any of the above
//
// Each parameter's type id is resolved through Get in declaration order;
// nullable parameters of unregistered ids receive their zero value. Any
// resolution failure propagates without calling the target. The target may
// return nothing, one value, or one value plus a trailing error; a non-nil
// trailing error is returned as-is.
func (c *Container) Invoke(target any) (any, error) {
	fn, params, err := c.callable(target)
	if err != nil {
		return nil, err
	}
	args, err := c.resolveArgs(params)
	if err != nil {
		return nil, err
	}
	return call(fn, args)
}

// callable classifies target into a reflect.Value of func kind plus its
// (annotation-merged) parameter list.
func (c *Container) callable(target any) (reflect.Value, []Param, error) {
	switch t := target.(type) {
	case nil:
		return reflect.Value{}, nil, &InvalidCallableError{Reason: "cannot invoke nil"}

	case Annotated:
		fn, params, err := c.callable(t.Target)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		merged, err := applyAnnotations(params, t.Params)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		return fn, merged, nil

	case BoundMethod:
		if t.Receiver == nil {
			return reflect.Value{}, nil, &InvalidCallableError{Reason: "bound method has nil receiver"}
		}
		m := reflect.ValueOf(t.Receiver).MethodByName(t.Name)
		if !m.IsValid() {
			return reflect.Value{}, nil, &InvalidCallableError{Reason: fmt.Sprintf(
				"%T has no method %q", t.Receiver, t.Name)}
		}
		return c.inspected(m)

	case string:
		// A name refers to a registered binding whose stored value must
		// itself classify as a callable.
		c.mu.RLock()
		b, ok := c.bindings[c.canonical(t)]
		c.mu.RUnlock()
		if !ok {
			return reflect.Value{}, nil, &InvalidCallableError{Reason: fmt.Sprintf(
				"no callable registered under [%s]", t)}
		}
		if _, chained := b.value.(string); chained {
			return reflect.Value{}, nil, &InvalidCallableError{Reason: fmt.Sprintf(
				"[%s] names another name, not a callable", t)}
		}
		return c.callable(b.value)

	default:
		rv := reflect.ValueOf(target)
		if rv.Kind() == reflect.Func {
			return c.inspected(rv)
		}
		if m := rv.MethodByName(invokeMethod); m.IsValid() {
			return c.inspected(m)
		}
		return reflect.Value{}, nil, &InvalidCallableError{Reason: fmt.Sprintf(
			"%T is not a func, bound method, invokable object, or registered callable name", target)}
	}
}

func (c *Container) inspected(fn reflect.Value) (reflect.Value, []Param, error) {
	params, err := c.inspector.Params(fn.Type())
	if err != nil {
		return reflect.Value{}, nil, err
	}
	return fn, params, nil
}

// resolveArgs builds the positional argument list for params, honoring the
// nullable policy.
func (c *Container) resolveArgs(params []Param) ([]reflect.Value, error) {
	args := make([]reflect.Value, len(params))
	for i, p := range params {
		if p.ID == "" {
			return nil, &InvalidCallableError{Reason: fmt.Sprintf(
				"parameter %d (%s) has no resolvable type identifier; annotate it explicitly", i, p.Type)}
		}
		if p.Nullable && !c.Has(p.ID) {
			args[i] = reflect.Zero(p.Type)
			continue
		}
		v, err := c.Get(p.ID)
		if err != nil {
			return nil, err
		}
		arg, err := conform(v, p, i)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return args, nil
}

// conform checks that the resolved value is assignable to the declared
// parameter type.
func conform(v any, p Param, pos int) (reflect.Value, error) {
	if v == nil {
		switch p.Type.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return reflect.Zero(p.Type), nil
		}
		return reflect.Value{}, &InvalidCallableError{Reason: fmt.Sprintf(
			"parameter %d: [%s] resolved to nil, which %s cannot hold", pos, p.ID, p.Type)}
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(p.Type) {
		return reflect.Value{}, &InvalidCallableError{Reason: fmt.Sprintf(
			"parameter %d: [%s] resolved to %T, want %s", pos, p.ID, v, p.Type)}
	}
	return rv, nil
}

// call invokes fn and splits off a trailing error return.
func call(fn reflect.Value, args []reflect.Value) (any, error) {
	outs := fn.Call(args)
	if n := len(outs); n > 0 && outs[n-1].Type().Implements(errType) {
		if e, _ := outs[n-1].Interface().(error); e != nil {
			return nil, e
		}
		outs = outs[:n-1]
	}
	if len(outs) == 0 {
		return nil, nil
	}
	return outs[0].Interface(), nil
}
