package compilerconfig

import "testing"

func TestNewKeyAllocatesDistinctIdentities(t *testing.T) {
	t.Parallel()

	first := NewKey[string]("module name")
	second := NewKey[string]("module name")

	if first == second {
		t.Fatalf("expected distinct key instances")
	}
	if first.ID() == second.ID() {
		t.Fatalf("expected distinct identities, both got %d", first.ID())
	}
	if first.ID() == 0 || second.ID() == 0 {
		t.Fatalf("identity zero must never be issued")
	}
	if first.Name() != second.Name() {
		t.Fatalf("expected names to match, got %q and %q", first.Name(), second.Name())
	}
}

func TestKeyIdentitiesIncrease(t *testing.T) {
	t.Parallel()

	earlier := NewKey[bool]("a")
	later := NewKey[bool]("b")
	if later.ID() <= earlier.ID() {
		t.Fatalf("expected later key id %d > earlier %d", later.ID(), earlier.ID())
	}
}

func TestKeyStringIsDiagnosticName(t *testing.T) {
	t.Parallel()

	key := NewListKey[string]("library file paths")
	if got := key.String(); got != "library file paths" {
		t.Fatalf("unexpected String(): %q", got)
	}

	var id Identifier = key
	if id.Name() != "library file paths" {
		t.Fatalf("unexpected Name(): %q", id.Name())
	}
}
