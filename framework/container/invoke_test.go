package container_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jeffturcotte/jest/framework/container"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type leftOperand struct{ v int }
type rightOperand struct{ v int }

func registerOperands(t *testing.T) *container.Container {
	t.Helper()
	c := container.New()
	c.Set(container.Key[*leftOperand](), &leftOperand{v: 40})
	c.Set(container.Key[*rightOperand](), &rightOperand{v: 2})
	return c
}

func addOperands(l *leftOperand, r *rightOperand) int { return l.v + r.v }

// adder exposes Add as a bound method target.
type adder struct{}

func (adder) Add(l *leftOperand, r *rightOperand) int { return l.v + r.v }

// addJob is a single-call object: its designated call operation is Invoke.
type addJob struct{}

func (addJob) Invoke(l *leftOperand, r *rightOperand) int { return l.v + r.v }

// ── Callable shapes ───────────────────────────────────────────────────────────

func TestInvoke_AllCallableShapesAgree(t *testing.T) {
	c := registerOperands(t)
	c.Set("adder.fn", addOperands) // named callable

	shapes := []struct {
		name   string
		target any
	}{
		{"plain func", addOperands},
		{"bound method", container.Method(adder{}, "Add")},
		{"invokable object", addJob{}},
		{"named callable", "adder.fn"},
	}

	for _, tt := range shapes {
		got, err := c.Invoke(tt.target)
		if err != nil {
			t.Errorf("%s: Invoke: %v", tt.name, err)
			continue
		}
		if got != 42 {
			t.Errorf("%s: got %v, want 42", tt.name, got)
		}
	}
}

func TestInvoke_UnsupportedShapeFails(t *testing.T) {
	c := container.New()
	for _, target := range []any{nil, 7, struct{}{}} {
		if _, err := c.Invoke(target); !errors.Is(err, container.ErrInvalidCallable) {
			t.Errorf("Invoke(%v) error = %v, want ErrInvalidCallable", target, err)
		}
	}
}

func TestInvoke_UnknownBoundMethodFails(t *testing.T) {
	c := container.New()
	_, err := c.Invoke(container.Method(adder{}, "Subtract"))
	if !errors.Is(err, container.ErrInvalidCallable) {
		t.Errorf("error = %v, want ErrInvalidCallable", err)
	}
}

func TestInvoke_UnknownNameFails(t *testing.T) {
	c := container.New()
	_, err := c.Invoke("no.such.callable")
	if !errors.Is(err, container.ErrInvalidCallable) {
		t.Errorf("error = %v, want ErrInvalidCallable", err)
	}
}

func TestInvoke_NamedInstanceMustBeCallable(t *testing.T) {
	c := container.New()
	c.Set("notCallable", &leftOperand{})
	if _, err := c.Invoke("notCallable"); !errors.Is(err, container.ErrInvalidCallable) {
		t.Errorf("error = %v, want ErrInvalidCallable", err)
	}
}

// ── Parameter resolution ──────────────────────────────────────────────────────

func TestInvoke_ArgumentsInDeclarationOrder(t *testing.T) {
	c := registerOperands(t)
	got, err := c.Invoke(func(l *leftOperand, r *rightOperand) string {
		return fmt.Sprintf("%d,%d", l.v, r.v)
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got != "40,2" {
		t.Errorf("got %q, want arguments in declaration order", got)
	}
}

func TestInvoke_MissingDependencyFailsBeforeCall(t *testing.T) {
	c := container.New()
	called := false
	_, err := c.Invoke(func(l *leftOperand) int {
		called = true
		return l.v
	})
	if !errors.Is(err, container.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if called {
		t.Error("target must not run when resolution fails")
	}
}

func TestInvoke_PrimitiveParameterNeedsAnnotation(t *testing.T) {
	c := container.New()
	upper := func(s string) string { return s }

	if _, err := c.Invoke(upper); !errors.Is(err, container.ErrInvalidCallable) {
		t.Fatalf("unannotated primitive parameter: error = %v, want ErrInvalidCallable", err)
	}

	c.Set("app.name", "jest")
	got, err := c.Invoke(container.Annotate(upper, container.Param{ID: "app.name"}))
	if err != nil {
		t.Fatalf("annotated invoke: %v", err)
	}
	if got != "jest" {
		t.Errorf("got %v, want the bound instance", got)
	}
}

func TestInvoke_NullablePolicy(t *testing.T) {
	take := func(l *leftOperand) bool { return l == nil }

	// Unregistered + nullable → explicit absent value, call succeeds.
	c := container.New()
	got, err := c.Invoke(container.Annotate(take, container.Param{Nullable: true}))
	if err != nil {
		t.Fatalf("nullable absent: %v", err)
	}
	if got != true {
		t.Error("nullable unregistered parameter should receive its zero value")
	}

	// Unregistered + non-nullable → NotFoundError.
	if _, err := c.Invoke(take); !errors.Is(err, container.ErrNotFound) {
		t.Errorf("non-nullable error = %v, want ErrNotFound", err)
	}

	// Registered + nullable → resolved normally.
	c.Set(container.Key[*leftOperand](), &leftOperand{v: 1})
	got, err = c.Invoke(container.Annotate(take, container.Param{Nullable: true}))
	if err != nil {
		t.Fatalf("nullable registered: %v", err)
	}
	if got != false {
		t.Error("nullable registered parameter must be resolved, not zeroed")
	}
}

func TestInvoke_TooManyAnnotationsFails(t *testing.T) {
	c := container.New()
	_, err := c.Invoke(container.Annotate(func() {}, container.Param{ID: "x"}))
	if !errors.Is(err, container.ErrInvalidCallable) {
		t.Errorf("error = %v, want ErrInvalidCallable", err)
	}
}

func TestInvoke_TypeMismatchFails(t *testing.T) {
	c := container.New()
	c.Set(container.Key[*leftOperand](), "not an operand")
	_, err := c.Invoke(func(l *leftOperand) int { return l.v })
	if !errors.Is(err, container.ErrInvalidCallable) {
		t.Errorf("error = %v, want ErrInvalidCallable", err)
	}
}

// ── Return contract ───────────────────────────────────────────────────────────

func TestInvoke_NoReturnYieldsNil(t *testing.T) {
	c := container.New()
	ran := false
	got, err := c.Invoke(func() { ran = true })
	if err != nil || got != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", got, err)
	}
	if !ran {
		t.Error("target should have run")
	}
}

func TestInvoke_TrailingErrorPropagates(t *testing.T) {
	c := container.New()
	boom := errors.New("boom")

	if _, err := c.Invoke(func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Errorf("error = %v, want the target's error", err)
	}

	got, err := c.Invoke(func() (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Errorf("got (%v, %v), want (7, nil)", got, err)
	}
}

func TestInvoke_VariadicTailLeftEmpty(t *testing.T) {
	c := registerOperands(t)
	got, err := c.Invoke(func(l *leftOperand, extra ...string) int {
		return l.v + len(extra)
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got != 40 {
		t.Errorf("got %v, want 40 (variadic tail empty)", got)
	}
}
