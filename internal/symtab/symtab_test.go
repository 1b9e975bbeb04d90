package symtab

import "testing"

func TestInternIsStable(t *testing.T) {
	tab := New()
	id1 := tab.Intern("fact")
	id2 := tab.Intern("succ")
	id1again := tab.Intern("fact")

	if id1 != id1again {
		t.Fatalf("re-interning %q changed its ID: %d vs %d", "fact", id1, id1again)
	}
	if id1 == id2 {
		t.Fatal("distinct names got the same ID")
	}
	if tab.Name(id1) != "fact" || tab.Name(id2) != "succ" {
		t.Fatal("Name did not round-trip through Intern")
	}
	if tab.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tab.Len())
	}
}

func TestLookupMissing(t *testing.T) {
	tab := New()
	tab.Intern("known")
	if _, ok := tab.Lookup("unknown"); ok {
		t.Fatal("Lookup reported a name that was never interned")
	}
	id, ok := tab.Lookup("known")
	if !ok || tab.Name(id) != "known" {
		t.Fatal("Lookup failed for a previously interned name")
	}
}

func TestLookupAgreesWithInternForManyNames(t *testing.T) {
	tab := New()
	// Buckets are keyed by the full 64-bit hash, so these names almost
	// certainly get a bucket each; this checks that Lookup returns the ID
	// Intern assigned for every one of them.
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "fact", "succ", "pred", "zero"}
	ids := make(map[string]int32, len(names))
	for _, n := range names {
		ids[n] = tab.Intern(n)
	}
	for _, n := range names {
		id, ok := tab.Lookup(n)
		if !ok || id != ids[n] {
			t.Fatalf("Lookup(%q) = (%d, %v), want (%d, true)", n, id, ok, ids[n])
		}
	}
}
