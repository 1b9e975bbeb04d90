package macros

import (
	"sort"
	"testing"
)

func TestBuiltinsLoadWithoutDuplicates(t *testing.T) {
	lib, err := NewLibrary(Builtins)
	if err != nil {
		t.Fatal(err)
	}
	src, ok := lib.Lookup("fact")
	if !ok || src == "" {
		t.Fatal("expected \"fact\" to be defined")
	}
	if _, ok := lib.Lookup("no-such-macro"); ok {
		t.Fatal("Lookup found a macro that was never defined")
	}
}

func TestNamesAreSorted(t *testing.T) {
	lib, err := NewLibrary([]Def{{"zeta", "I"}, {"alpha", "K"}, {"mid", "S"}})
	if err != nil {
		t.Fatal(err)
	}
	names := lib.Names()
	if !sort.StringsAreSorted(names) {
		t.Fatalf("Names() = %v, not sorted", names)
	}
	if len(names) != 3 {
		t.Fatalf("Names() returned %d entries, want 3", len(names))
	}
}

func TestNewLibraryRejectsDuplicates(t *testing.T) {
	defs := []Def{{"dup", "I"}, {"dup", "K"}}
	if _, err := NewLibrary(defs); err == nil {
		t.Fatal("expected an error for a duplicate macro name")
	}
}

func TestAddRejectsDuplicates(t *testing.T) {
	lib, err := NewLibrary([]Def{{"a", "I"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := lib.Add(Def{"a", "K"}); err == nil {
		t.Fatal("expected Add to reject a duplicate name")
	}
	if err := lib.Add(Def{"b", "K"}); err != nil {
		t.Fatalf("Add of a fresh name failed: %v", err)
	}
}

func TestDigestIsStableAndSensitiveToContent(t *testing.T) {
	lib1, _ := NewLibrary([]Def{{"a", "I"}, {"b", "K"}})
	lib2, _ := NewLibrary([]Def{{"a", "I"}, {"b", "K"}})
	lib3, _ := NewLibrary([]Def{{"a", "I"}, {"b", "S"}})

	d1, err := lib1.Digest()
	if err != nil {
		t.Fatal(err)
	}
	d2, err := lib2.Digest()
	if err != nil {
		t.Fatal(err)
	}
	d3, err := lib3.Digest()
	if err != nil {
		t.Fatal(err)
	}

	if d1 != d2 {
		t.Fatal("two libraries with identical content produced different digests")
	}
	if d1 == d3 {
		t.Fatal("libraries with different content produced the same digest")
	}
}
