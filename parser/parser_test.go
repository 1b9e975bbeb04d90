package parser

import (
	"strings"
	"testing"

	"github.com/combix/combix/engine"
	"github.com/combix/combix/internal/macros"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New(engine.Config{PoolCapacity: 512, SpineCapacity: 64, Extended: true}, nil, nil)
}

func TestParseSimpleCombinators(t *testing.T) {
	eng := newTestEngine(t)
	p := New(eng, nil, strings.NewReader("S"))
	a, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsLiteral() || a.Literal().Op != engine.OpS {
		t.Fatalf("got %#v, want S", a)
	}
}

func TestParseApplicationPrefixNotation(t *testing.T) {
	eng := newTestEngine(t)
	p := New(eng, nil, strings.NewReader("@@@SKKI"))
	a, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsNode() {
		t.Fatalf("got %#v, want an application node", a)
	}
	r, err := eng.Reduce(a)
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsLiteral() || r.Literal().Op != engine.OpI {
		t.Fatalf("@@@SKKI reduced to %#v, want I", r)
	}
}

func TestParsePlaceholderLetter(t *testing.T) {
	eng := newTestEngine(t)
	p := New(eng, nil, strings.NewReader("c"))
	a, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsLiteral() || !a.Literal().IsDatum() || a.Literal().Value != 2 {
		t.Fatalf("got %#v, want datum 2 ('c'-'a')", a)
	}
}

func TestParseChurchNumeral(t *testing.T) {
	eng := newTestEngine(t)
	// #3 applied to f = C (+ 1) I, i.e. y -> 1 + y; applying that to 0
	// below gives f (f (f 0)) = 3.
	p := New(eng, nil, strings.NewReader("@#3@@C@+1I"))
	a, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	applied, err := eng.Pool().Alloc(a, engine.LitAtom(engine.Datum(0)))
	if err != nil {
		t.Fatal(err)
	}
	r, err := eng.Reduce(engine.NodeAtom(applied))
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsLiteral() || !r.Literal().IsDatum() || r.Literal().Value != 3 {
		t.Fatalf("#3 applied to an increment and 0 reduced to %#v, want datum 3", r)
	}
}

func TestParseMacroExpansion(t *testing.T) {
	eng := newTestEngine(t)
	lib, err := macros.NewLibrary([]macros.Def{{Name: "ident", Source: "I"}})
	if err != nil {
		t.Fatal(err)
	}
	p := New(eng, lib, strings.NewReader("$ident"))
	a, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsLiteral() || a.Literal().Op != engine.OpI {
		t.Fatalf("got %#v, want I", a)
	}
}

func TestParseUnknownMacroIsError(t *testing.T) {
	eng := newTestEngine(t)
	lib, _ := macros.NewLibrary(nil)
	p := New(eng, lib, strings.NewReader("$nope"))
	if _, err := p.Parse(); err == nil {
		t.Fatal("expected an error for an unknown macro")
	}
}

func TestParseRejectsExtendedOnBaseEngine(t *testing.T) {
	eng := engine.New(engine.Config{PoolCapacity: 64, SpineCapacity: 16, Extended: false}, nil, nil)
	p := New(eng, nil, strings.NewReader("Y"))
	if _, err := p.Parse(); err == nil {
		t.Fatal("expected Y to be rejected on a non-extended engine")
	}
}

func TestParseQuotedChar(t *testing.T) {
	eng := newTestEngine(t)
	p := New(eng, nil, strings.NewReader("'x"))
	a, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsLiteral() || a.Literal().Value != uint16('x') {
		t.Fatalf("got %#v, want datum %d", a, 'x')
	}
}

func TestParseEmptyInputIsIdentity(t *testing.T) {
	eng := newTestEngine(t)
	p := New(eng, nil, strings.NewReader(""))
	a, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsLiteral() || a.Literal().Op != engine.OpI {
		t.Fatalf("got %#v, want I for empty input", a)
	}
}
