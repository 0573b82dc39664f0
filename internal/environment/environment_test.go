package environment

import "testing"

func TestDefineAndGet(t *testing.T) {
	env := New()
	env.Define("a", 1.0)
	v, err := env.Get("a")
	if err != nil {
		t.Fatalf("Get(a) error: %v", err)
	}
	if v != 1.0 {
		t.Errorf("Get(a) = %v, want 1.0", v)
	}
}

func TestGetUndefinedReturnsError(t *testing.T) {
	env := New()
	if _, err := env.Get("missing"); err == nil {
		t.Fatal("expected an error for an undefined variable")
	}
}

func TestGetWalksEnclosingChain(t *testing.T) {
	outer := New()
	outer.Define("a", "outer-value")
	inner := outer.Child()
	v, err := inner.Get("a")
	if err != nil {
		t.Fatalf("Get(a) error: %v", err)
	}
	if v != "outer-value" {
		t.Errorf("Get(a) = %v, want outer-value", v)
	}
}

func TestChildShadowsEnclosing(t *testing.T) {
	outer := New()
	outer.Define("a", "outer-value")
	inner := outer.Child()
	inner.Define("a", "inner-value")

	if v, _ := inner.Get("a"); v != "inner-value" {
		t.Errorf("inner.Get(a) = %v, want inner-value", v)
	}
	if v, _ := outer.Get("a"); v != "outer-value" {
		t.Errorf("outer.Get(a) = %v, want outer-value (shadowing must not mutate the enclosing scope)", v)
	}
}

func TestAssignMutatesNearestEnclosingBinding(t *testing.T) {
	outer := New()
	outer.Define("a", "before")
	inner := outer.Child()

	if err := inner.Assign("a", "after"); err != nil {
		t.Fatalf("Assign(a) error: %v", err)
	}
	if v, _ := outer.Get("a"); v != "after" {
		t.Errorf("outer.Get(a) = %v, want after (assignment through a child must reach the defining scope)", v)
	}
}

func TestAssignUndefinedReturnsError(t *testing.T) {
	env := New()
	if err := env.Assign("missing", 1.0); err == nil {
		t.Fatal("expected an error assigning an undefined variable")
	}
}

func TestGlobalRedefinitionOverwrites(t *testing.T) {
	env := New()
	env.Define("a", 1.0)
	env.Define("a", 2.0)
	if v, _ := env.Get("a"); v != 2.0 {
		t.Errorf("Get(a) = %v, want 2.0 after redefinition", v)
	}
}

func TestAncestorAndGetAtAssignAt(t *testing.T) {
	globals := New()
	level1 := globals.Child()
	level2 := level1.Child()
	level1.Define("x", "level1")

	if got := level2.GetAt(1, "x"); got != "level1" {
		t.Errorf("GetAt(1, x) = %v, want level1", got)
	}
	level2.AssignAt(1, "x", "mutated")
	if got := level1.values["x"]; got != "mutated" {
		t.Errorf("after AssignAt(1,...), level1's own value = %v, want mutated", got)
	}
}
