package container_test

import (
	"errors"
	"testing"

	"github.com/jeffturcotte/jest/framework/container"
)

func TestShare_FactoryBodyRunsExactlyOnce(t *testing.T) {
	c := container.New()
	calls := 0
	c.Set("db", container.Share(func() *dbConn {
		calls++
		return &dbConn{dsn: "shared"}
	}))

	var first any
	for i := 0; i < 4; i++ {
		v, err := c.Get("db")
		if err != nil {
			t.Fatalf("Get #%d: %v", i, err)
		}
		if i == 0 {
			first = v
		} else if v != first {
			t.Fatalf("Get #%d returned a different identity", i)
		}
	}
	if calls != 1 {
		t.Errorf("factory body ran %d times, want exactly 1", calls)
	}
}

func TestShare_DependenciesInjectedOnFirstResolution(t *testing.T) {
	c := container.New()
	c.Set(container.Key[*dbConn](), newDB)
	c.Set("reports", container.Share(func(db *dbConn) *reportService {
		return &reportService{db: db}
	}))

	svc := container.Resolve[*reportService](c, "reports")
	if svc.db == nil {
		t.Error("shared factory dependencies should be injected")
	}
}

func TestShare_WrappersHaveIndependentCells(t *testing.T) {
	c := container.New()
	factory := func() *dbConn { return &dbConn{} }
	c.Set("one", container.Share(factory))
	c.Set("two", container.Share(factory))

	a, _ := c.Get("one")
	b, _ := c.Get("two")
	if a == b {
		t.Error("each Share call must own an independent singleton")
	}

	// And each id keeps returning its own memoized value.
	a2, _ := c.Get("one")
	if a2 != a {
		t.Error("memoized value for [one] changed between resolutions")
	}
}

func TestShare_ErrorsAreNotMemoized(t *testing.T) {
	c := container.New()
	c.Set("reports", container.Share(func(db *dbConn) *reportService {
		return &reportService{db: db}
	}))

	// First resolution fails: the dependency is not registered yet.
	if _, err := c.Get("reports"); !errors.Is(err, container.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}

	// Fix the registration; the wrapper must retry, not replay the failure.
	c.Set(container.Key[*dbConn](), newDB)
	svc, err := c.Get("reports")
	if err != nil {
		t.Fatalf("Get after fixing registration: %v", err)
	}
	if svc.(*reportService).db == nil {
		t.Error("retried resolution should produce a complete value")
	}
}

func TestShare_MethodFormMatchesPackageForm(t *testing.T) {
	c := container.New()
	calls := 0
	c.Set("db", c.Share(func() *dbConn {
		calls++
		return &dbConn{}
	}))

	c.Get("db")
	c.Get("db")
	if calls != 1 {
		t.Errorf("factory ran %d times through the method form, want 1", calls)
	}
}
