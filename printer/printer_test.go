package printer

import (
	"strings"
	"testing"

	"github.com/combix/combix/engine"
	"github.com/combix/combix/parser"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New(engine.Config{PoolCapacity: 512, SpineCapacity: 64, Extended: true}, nil, nil)
}

func TestPrintLiteralCombinator(t *testing.T) {
	eng := newTestEngine(t)
	var sb strings.Builder
	if err := New(eng, &sb).Print(engine.AtomS); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "S" {
		t.Fatalf("got %q, want %q", sb.String(), "S")
	}
}

func TestPrintApplication(t *testing.T) {
	eng := newTestEngine(t)
	p := parser.New(eng, nil, strings.NewReader("@SK"))
	term, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err := New(eng, &sb).Print(term); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "(S K)" {
		t.Fatalf("got %q, want %q", sb.String(), "(S K)")
	}
}

func TestPrintDatumPlaceholder(t *testing.T) {
	eng := newTestEngine(t)
	var sb strings.Builder
	if err := New(eng, &sb).Print(engine.LitAtom(engine.Datum(2))); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "c" {
		t.Fatalf("got %q, want %q", sb.String(), "c")
	}
}

func TestPrintDatumDecimal(t *testing.T) {
	eng := newTestEngine(t)
	var sb strings.Builder
	if err := New(eng, &sb).Print(engine.LitAtom(engine.Datum(200))); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "200" {
		t.Fatalf("got %q, want %q", sb.String(), "200")
	}
}

func TestPrintReducedForcesArgument(t *testing.T) {
	eng := newTestEngine(t)
	p := parser.New(eng, nil, strings.NewReader("@K@@@SKKI"))
	term, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err := New(eng, &sb).PrintReduced(term); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "(K I)" {
		t.Fatalf("got %q, want %q", sb.String(), "(K I)")
	}
}
