package engine

import "testing"

func TestCheckInvariantsOnFreshPool(t *testing.T) {
	e := newTestEngine(t)
	if err := e.Pool().CheckInvariants(AtomI); err != nil {
		t.Fatalf("fresh pool failed invariant check: %v", err)
	}
}

func TestCheckInvariantsAfterAllocAndRelease(t *testing.T) {
	e := newTestEngine(t)
	b := newBuild(e)
	root := b.app(b.lit(Combinator(OpI)), b.lit(Combinator(OpK)))
	if b.err != nil {
		t.Fatal(b.err)
	}
	if err := e.Pool().CheckInvariants(root); err != nil {
		t.Fatalf("allocated graph failed invariant check: %v", err)
	}
	e.Pool().Release(root)
	if err := e.Pool().CheckInvariants(AtomI); err != nil {
		t.Fatalf("pool failed invariant check after release: %v", err)
	}
	if e.Pool().Live() != 0 {
		t.Fatalf("Live() = %d after releasing the only root, want 0", e.Pool().Live())
	}
}

func TestCheckInvariantsSurvivesReduce(t *testing.T) {
	e := newTestEngine(t)
	b := newBuild(e)
	// S K K x -> x, exercised alongside an invariant walk of the result.
	skk := b.app(b.app(b.lit(Combinator(OpS)), b.lit(Combinator(OpK))), b.lit(Combinator(OpK)))
	term := b.app(skk, b.lit(Combinator(OpK)))
	if b.err != nil {
		t.Fatal(b.err)
	}
	reduced, err := e.Reduce(term)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Pool().CheckInvariants(reduced); err != nil {
		t.Fatalf("reduced graph failed invariant check: %v", err)
	}
	e.Pool().Release(reduced)
}
