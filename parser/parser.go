// Package parser reads the prefix-@ surface syntax for combinator terms
// ("@@SKK", "#3", "$fact", single-letter combinators and placeholders)
// and builds the corresponding graph in an engine.Pool.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/combix/combix/engine"
	"github.com/combix/combix/internal/macros"
)

// combinatorLetters maps a surface-syntax letter to its Op. I/K/S/B/C
// are always recognized; Y/F/J/P/G and the arithmetic/comparison symbols
// only when the parser's engine has the extended primitive set enabled, so a non-extended engine's Parse
// rejects them the same way spec.md's base rule table has no entry for
// them.
var combinatorLetters = map[rune]engine.Op{
	'I': engine.OpI,
	'K': engine.OpK,
	'S': engine.OpS,
	'B': engine.OpB,
	'C': engine.OpC,
	'Y': engine.OpY,
	'F': engine.OpF,
	'J': engine.OpJ,
	'P': engine.OpP,
	'G': engine.OpG,
	'+': engine.OpAdd,
	'-': engine.OpSub,
	'*': engine.OpMul,
	'/': engine.OpDiv,
	'=': engine.OpEq,
	'<': engine.OpLt,
}

// Parser reads one term at a time from an underlying rune source,
// allocating nodes into eng's pool and expanding $name references
// against lib.
type Parser struct {
	eng *engine.Engine
	lib *macros.Library
	in  io.RuneScanner
}

// New builds a Parser over r. lib may be nil, in which case any $name
// reference is an error.
func New(eng *engine.Engine, lib *macros.Library, r io.RuneScanner) *Parser {
	return &Parser{eng: eng, lib: lib, in: r}
}

// NewFromReader wraps an io.Reader that doesn't already implement
// io.RuneScanner (e.g. os.Stdin) in a bufio.Reader.
func NewFromReader(eng *engine.Engine, lib *macros.Library, r io.Reader) *Parser {
	return New(eng, lib, bufio.NewReader(r))
}

// Parse reads exactly one term. At end of input it returns the identity
// combinator, matching read_atom's EOF behavior in the reference
// implementation rather than raising io.EOF as an error: an empty input
// is a valid (trivial) program.
func (p *Parser) Parse() (engine.Atom, error) {
again:
	c, _, err := p.in.ReadRune()
	if err == io.EOF {
		return engine.AtomI, nil
	}
	if err != nil {
		return engine.Atom{}, fmt.Errorf("parser: %w", err)
	}

	switch {
	case c == ' ' || c == ')' || c == '\n' || c == '\t' || c == '\r':
		goto again
	case c == '(' || c == '@':
		return p.parseApp()
	case c == '#':
		return p.parseChurchNumeral()
	case c == '$':
		return p.parseMacro()
	case c == '\'':
		return p.parseQuotedChar()
	case c >= '0' && c <= '9':
		return p.parseDecimal(c)
	case c >= 'a' && c <= 'z':
		return engine.LitAtom(engine.Datum(uint16(c - 'a'))), nil
	default:
		if op, ok := combinatorLetters[c]; ok {
			if op.Extended() && !p.eng.Extended() {
				return engine.Atom{}, fmt.Errorf("parser: combinator %q requires the extended primitive set", c)
			}
			return engine.LitAtom(engine.Combinator(op)), nil
		}
		return engine.Atom{}, fmt.Errorf("parser: unrecognized character %q", c)
	}
}

func (p *Parser) parseApp() (engine.Atom, error) {
	lhs, err := p.Parse()
	if err != nil {
		return engine.Atom{}, err
	}
	rhs, err := p.Parse()
	if err != nil {
		return engine.Atom{}, err
	}
	ref, err := p.eng.Pool().Alloc(lhs, rhs)
	if err != nil {
		return engine.Atom{}, err
	}
	return engine.NodeAtom(ref), nil
}

// parseChurchNumeral reads #<digits> and builds the Church numeral: n
// applications of (S B) (the successor combinator) to (K I) (zero),
// i.e. #n = SUCC^n ZERO, matching read_atom's construction.
func (p *Parser) parseChurchNumeral() (engine.Atom, error) {
	n, err := p.readUint()
	if err != nil {
		return engine.Atom{}, err
	}
	succRef, err := p.eng.Pool().Alloc(engine.AtomS, engine.AtomB)
	if err != nil {
		return engine.Atom{}, err
	}
	succ := engine.NodeAtom(succRef)
	zeroRef, err := p.eng.Pool().Alloc(engine.AtomK, engine.AtomI)
	if err != nil {
		return engine.Atom{}, err
	}
	val := engine.NodeAtom(zeroRef)
	for i := uint64(0); i < n; i++ {
		ref, err := p.eng.Pool().Alloc(p.eng.Pool().Retain(succ), val)
		if err != nil {
			return engine.Atom{}, err
		}
		val = engine.NodeAtom(ref)
	}
	p.eng.Pool().Release(succ)
	return val, nil
}

func (p *Parser) readUint() (uint64, error) {
	var n uint64
	for {
		c, _, err := p.in.ReadRune()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return 0, fmt.Errorf("parser: %w", err)
		}
		if c < '0' || c > '9' {
			p.in.UnreadRune()
			return n, nil
		}
		n = n*10 + uint64(c-'0')
	}
}

// parseMacro reads a $name reference and parses its expansion from a
// fresh sub-parser over the macro's source, the same way string_to_atom
// temporarily swaps the input source in the reference implementation.
func (p *Parser) parseMacro() (engine.Atom, error) {
	name, err := p.readIdent()
	if err != nil {
		return engine.Atom{}, err
	}
	if p.lib == nil {
		return engine.Atom{}, fmt.Errorf("parser: macro %q referenced but no macro library is loaded", name)
	}
	src, ok := p.lib.Lookup(name)
	if !ok {
		return engine.Atom{}, fmt.Errorf("parser: unknown macro %q", name)
	}
	sub := New(p.eng, p.lib, strings.NewReader(src))
	return sub.Parse()
}

func (p *Parser) readIdent() (string, error) {
	var b strings.Builder
	for {
		c, _, err := p.in.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parser: %w", err)
		}
		if !(c >= '0' && c <= '9') && !(c >= 'A' && c <= 'Z') && !(c >= 'a' && c <= 'z') {
			p.in.UnreadRune()
			break
		}
		b.WriteRune(c)
	}
	return b.String(), nil
}

// parseQuotedChar reads 'c as the raw datum for rune c, letting a
// program reference any byte value as a literal, not just 'a'-'z' via
// the bare-letter placeholder form.
func (p *Parser) parseQuotedChar() (engine.Atom, error) {
	c, _, err := p.in.ReadRune()
	if err != nil {
		return engine.Atom{}, fmt.Errorf("parser: %w", err)
	}
	return engine.LitAtom(engine.Datum(uint16(c))), nil
}

// parseDecimal reads a bare decimal integer datum (distinct from #N's
// Church-numeral expansion): first contains the digit already consumed
// by Parse's dispatch.
func (p *Parser) parseDecimal(first rune) (engine.Atom, error) {
	n := uint64(first - '0')
	for {
		c, _, err := p.in.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return engine.Atom{}, fmt.Errorf("parser: %w", err)
		}
		if c < '0' || c > '9' {
			p.in.UnreadRune()
			break
		}
		n = n*10 + uint64(c-'0')
	}
	return engine.LitAtom(engine.Datum(uint16(n))), nil
}
