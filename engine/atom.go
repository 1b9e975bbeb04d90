// Package engine implements the combinator-graph reduction engine: the
// node pool, reference counting, the combinator rewrite rules, and the
// iterative leftmost-outermost reducer.
package engine

// NodeRef indexes into an Engine's node pool.
type NodeRef uint32

// Op identifies a literal's rewrite rule. OpDatum is the zero value and
// marks a raw datum rather than a combinator: spec.md describes literals
// as either "a combinator code ... or a raw datum ... whose arity byte is
// 0", which this port models with an explicit field rather than the
// original's shared bit-packed encoding (see DESIGN.md).
type Op uint8

const (
	OpDatum Op = iota
	OpI
	OpK
	OpF // K I, constant-false
	OpJ // C I
	OpS
	OpB
	OpC
	OpY
	OpP // output
	OpG // input
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpEq
	OpLt
)

var opArity = [...]uint8{
	OpDatum: 0,
	OpI:     1,
	OpK:     2,
	OpF:     2,
	OpJ:     2,
	OpS:     3,
	OpB:     3,
	OpC:     3,
	OpY:     1,
	OpP:     2,
	OpG:     1,
	OpAdd:   3,
	OpSub:   3,
	OpMul:   3,
	OpDiv:   3,
	OpEq:    3,
	OpLt:    3,
}

var opName = [...]byte{
	OpI: 'I',
	OpK: 'K',
	OpF: 'F',
	OpJ: 'J',
	OpS: 'S',
	OpB: 'B',
	OpC: 'C',
	OpY: 'Y',
	OpP: 'P',
	OpG: 'G',
	OpAdd: '+',
	OpSub: '-',
	OpMul: '*',
	OpDiv: '/',
	OpEq:  '=',
	OpLt:  '<',
}

// Arity returns the number of arguments op's rule needs before it fires.
// A raw datum's arity is always zero, regardless of its magnitude.
func (op Op) Arity() uint8 { return opArity[op] }

// Extended reports whether op is one of the optional Y/F/J/P/G/arithmetic
// primitives, as opposed to the base I/K/S/B/C set.
func (op Op) Extended() bool {
	switch op {
	case OpI, OpK, OpS, OpB, OpC:
		return false
	default:
		return true
	}
}

// Byte returns the single-character token for a combinator op, or 0 if op
// is OpDatum (raw data have no fixed token; they print as decimal or 'c).
func (op Op) Byte() byte { return opName[op] }

// datumMod is the modulus spec.md's arithmetic primitives compute under:
// every raw datum is a 15-bit unsigned value.
const datumMod = 1 << 15

// Literal is the non-node half of an Atom.
type Literal struct {
	Op    Op
	Value uint16 // meaningful only when Op == OpDatum
}

// Datum builds a raw-datum literal, reducing v into the 15-bit range
// spec.md's arithmetic primitives operate under.
func Datum(v uint16) Literal { return Literal{Op: OpDatum, Value: v % datumMod} }

// Combinator builds a literal for a combinator op (op.Arity() > 0).
func Combinator(op Op) Literal { return Literal{Op: op} }

// IsDatum reports whether l is a raw datum rather than a combinator code.
func (l Literal) IsDatum() bool { return l.Op == OpDatum }

// Atom is the tagged union from spec.md §3: either a Literal or a
// reference to an application node. Ported as an explicit Go sum type
// rather than the original's bit-packed 16-bit scalar, per the "portable
// re-implementation" guidance in spec.md's design notes.
type Atom struct {
	isNode bool
	node   NodeRef
	lit    Literal
}

// LitAtom wraps a Literal as an Atom.
func LitAtom(l Literal) Atom { return Atom{lit: l} }

// NodeAtom wraps a NodeRef as an Atom.
func NodeAtom(n NodeRef) Atom { return Atom{isNode: true, node: n} }

// IsNode reports whether a refers to an application node.
func (a Atom) IsNode() bool { return a.isNode }

// IsLiteral reports whether a is a literal (combinator or datum).
func (a Atom) IsLiteral() bool { return !a.isNode }

// Node returns a's node reference; only meaningful when a.IsNode().
func (a Atom) Node() NodeRef { return a.node }

// Literal returns a's literal value; only meaningful when a.IsLiteral().
func (a Atom) Literal() Literal { return a.lit }

// Well-known single-literal atoms used throughout the reducer and rules.
var (
	AtomI   = LitAtom(Combinator(OpI))
	AtomK   = LitAtom(Combinator(OpK))
	AtomS   = LitAtom(Combinator(OpS))
	AtomB   = LitAtom(Combinator(OpB))
	AtomC   = LitAtom(Combinator(OpC))
	AtomY   = LitAtom(Combinator(OpY))
	AtomF   = LitAtom(Combinator(OpF))
	AtomJ   = LitAtom(Combinator(OpJ))
	AtomP   = LitAtom(Combinator(OpP))
	AtomG   = LitAtom(Combinator(OpG))
	AtomAdd = LitAtom(Combinator(OpAdd))
	AtomSub = LitAtom(Combinator(OpSub))
	AtomMul = LitAtom(Combinator(OpMul))
	AtomDiv = LitAtom(Combinator(OpDiv))
	AtomEq  = LitAtom(Combinator(OpEq))
	AtomLt  = LitAtom(Combinator(OpLt))
)
