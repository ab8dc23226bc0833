package container

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks. The concrete error types below carry
// the failing key/target and match their sentinel through Is.
var (
	ErrNotFound        = errors.New("container: binding not found")
	ErrInvalidBinding  = errors.New("container: invalid binding")
	ErrCycle           = errors.New("container: circular resolution")
	ErrInvalidTarget   = errors.New("container: invalid creation target")
	ErrInvalidCallable = errors.New("container: invalid callable")
)

// NotFoundError is returned when a non-nullable type id has no binding.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("container: no binding registered for [%s]", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidBindingError is returned by Set when the value is neither a callable
// (stored as a factory) nor a constructed instance.
type InvalidBindingError struct {
	ID     string
	Reason string
}

func (e *InvalidBindingError) Error() string {
	return fmt.Sprintf("container: cannot bind [%s]: %s", e.ID, e.Reason)
}

func (e *InvalidBindingError) Is(target error) bool { return target == ErrInvalidBinding }

// CycleError is returned when a type id is requested while its own factory is
// still executing. Stack records the in-flight resolution chain, outermost
// first.
type CycleError struct {
	ID    string
	Stack []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("container: circular resolution of [%s] (chain: %s)",
		e.ID, strings.Join(e.Stack, " -> "))
}

func (e *CycleError) Is(target error) bool { return target == ErrCycle }

// InvalidTargetError is returned by Create and DefineType for unknown or
// non-instantiable types.
type InvalidTargetError struct {
	ID     string
	Reason string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("container: cannot create [%s]: %s", e.ID, e.Reason)
}

func (e *InvalidTargetError) Is(target error) bool { return target == ErrInvalidTarget }

// InvalidCallableError is returned by Invoke when the target cannot be
// classified into a supported callable shape, or when one of its parameters
// has no resolvable type identifier.
type InvalidCallableError struct {
	Reason string
}

func (e *InvalidCallableError) Error() string {
	return "container: " + e.Reason
}

func (e *InvalidCallableError) Is(target error) bool { return target == ErrInvalidCallable }
