// Package printer renders a combinator term back into the prefix-@
// surface syntax parser reads, in both a plain form (print the graph
// exactly as it stands) and a "reduced" form that forces the argument of
// each application whose function position is a combinator to weak head
// normal form before printing it.
package printer

import (
	"fmt"
	"io"

	"github.com/combix/combix/engine"
)

// Printer writes terms from eng's pool to w.
type Printer struct {
	eng *engine.Engine
	w   io.Writer
}

// New builds a Printer.
func New(eng *engine.Engine, w io.Writer) *Printer {
	return &Printer{eng: eng, w: w}
}

// Print writes a in plain form: combinators and placeholders as their
// single-character token, applications as "(f x)", raw datums that have
// no placeholder letter as their decimal value.
func (p *Printer) Print(a engine.Atom) error {
	return p.print(a, false)
}

// PrintReduced writes a the way print_atom_reduced does in the reference
// implementation: before printing an application whose function position
// is a combinator awaiting arguments, its argument is first reduced to
// WHNF and the reduced form is printed. The reduced form is not written
// back into the node's Arg slot, so the graph itself keeps the unreduced
// argument. This forces sub-terms under a combinator head without
// fully normalizing the whole term, which is useful for inspecting a
// partially-applied result without the result overflowing a bounded pool.
func (p *Printer) PrintReduced(a engine.Atom) error {
	return p.print(a, true)
}

func (p *Printer) print(a engine.Atom, reduced bool) error {
	if a.IsLiteral() {
		return p.printLiteral(a.Literal())
	}
	ref := a.Node()
	n := p.eng.Pool().Node(ref)

	if _, err := io.WriteString(p.w, "("); err != nil {
		return err
	}
	if err := p.print(n.Func, reduced); err != nil {
		return err
	}
	if _, err := io.WriteString(p.w, " "); err != nil {
		return err
	}

	arg := n.Arg
	if reduced && n.Func.IsLiteral() && n.Func.Literal().Op.Arity() > 0 {
		r, err := p.eng.Reduce(p.eng.Pool().Retain(arg))
		if err != nil {
			return err
		}
		// r carries the ownership unit Retain just minted; arg is printed
		// from r, then that unit is released since the graph's own Arg
		// slot (left untouched) still owns the original reference.
		defer p.eng.Pool().Release(r)
		arg = r
	}
	if err := p.print(arg, reduced); err != nil {
		return err
	}
	_, err := io.WriteString(p.w, ")")
	return err
}

func (p *Printer) printLiteral(l engine.Literal) error {
	if !l.IsDatum() {
		_, err := fmt.Fprintf(p.w, "%c", l.Op.Byte())
		return err
	}
	if l.Value < 26 {
		_, err := fmt.Fprintf(p.w, "%c", rune('a')+rune(l.Value))
		return err
	}
	_, err := fmt.Fprintf(p.w, "%d", l.Value)
	return err
}
