package engine

import "fmt"

// ruleFn is invoked once a literal's arity is satisfied by the spine.
// curr is the outermost application of the redex (stack_top[arity-1] in
// spec.md's notation); x[0] is curr's own Arg (the innermost/last-applied
// argument), x[1] is the next enclosing application's Arg, and so on, per
// spec.md §4.D's "Let x0 = curr.arg, x1 = stack_top[0].arg, ..." — so for
// a combinator declared "S f g x", f = x[2], g = x[1], x = x[0].
type ruleFn func(e *Engine, curr NodeRef, x [3]Atom) (Atom, error)

var rules [OpLt + 1]ruleFn

func init() {
	rules[OpI] = ruleIdentity
	rules[OpK] = ruleConst
	rules[OpF] = ruleConstFalse
	rules[OpJ] = ruleFlipConst
	rules[OpS] = ruleFusion
	rules[OpB] = ruleCompose
	rules[OpC] = ruleFlip
	rules[OpY] = ruleFix
	rules[OpP] = ruleOutput
	rules[OpG] = ruleInput
	rules[OpAdd] = arithRule(addOp)
	rules[OpSub] = arithRule(subOp)
	rules[OpMul] = arithRule(mulOp)
	rules[OpDiv] = arithRule(divOp)
	rules[OpEq] = cmpRule(func(a, b uint16) bool { return a == b })
	rules[OpLt] = cmpRule(func(a, b uint16) bool { return a < b })
}

// I x -> x
func ruleIdentity(e *Engine, curr NodeRef, x [3]Atom) (Atom, error) {
	return e.pool.Replace(curr, e.pool.Retain(x[0])), nil
}

// K x y -> x
func ruleConst(e *Engine, curr NodeRef, x [3]Atom) (Atom, error) {
	return e.pool.Replace(curr, e.pool.Retain(x[1])), nil
}

// F x y -> y  (K I, constant-false)
func ruleConstFalse(e *Engine, curr NodeRef, x [3]Atom) (Atom, error) {
	return e.pool.Replace(curr, e.pool.Retain(x[0])), nil
}

// J x y -> (y x)  (C I)
func ruleFlipConst(e *Engine, curr NodeRef, x [3]Atom) (Atom, error) {
	a, err := e.app(e.pool.Retain(x[0]), e.pool.Retain(x[1]))
	if err != nil {
		return Atom{}, err
	}
	return e.pool.Replace(curr, a), nil
}

// S f g x -> (f x) (g x)
func ruleFusion(e *Engine, curr NodeRef, x [3]Atom) (Atom, error) {
	fx, err := e.app(e.pool.Retain(x[2]), e.pool.Retain(x[0]))
	if err != nil {
		return Atom{}, err
	}
	gx, err := e.app(e.pool.Retain(x[1]), e.pool.Retain(x[0]))
	if err != nil {
		return Atom{}, err
	}
	result, err := e.app(fx, gx)
	if err != nil {
		return Atom{}, err
	}
	return e.pool.Replace(curr, result), nil
}

// B f g x -> f (g x)
func ruleCompose(e *Engine, curr NodeRef, x [3]Atom) (Atom, error) {
	gx, err := e.app(e.pool.Retain(x[1]), e.pool.Retain(x[0]))
	if err != nil {
		return Atom{}, err
	}
	result, err := e.app(e.pool.Retain(x[2]), gx)
	if err != nil {
		return Atom{}, err
	}
	return e.pool.Replace(curr, result), nil
}

// C f y x -> (f x) y
func ruleFlip(e *Engine, curr NodeRef, x [3]Atom) (Atom, error) {
	fx, err := e.app(e.pool.Retain(x[2]), e.pool.Retain(x[0]))
	if err != nil {
		return Atom{}, err
	}
	result, err := e.app(fx, e.pool.Retain(x[1]))
	if err != nil {
		return Atom{}, err
	}
	return e.pool.Replace(curr, result), nil
}

// Y f -> f (Y f), implemented without Replace: the new node's Arg is the
// existing curr (refcount bumped), so curr remains live as the parent's
// Arg until the parent's own next rewrite drops it. Replacing curr here
// the naive way (replace(curr, app(f, curr))) would make curr a
// descendant of itself; spec.md §9 explains why this form avoids that.
func ruleFix(e *Engine, curr NodeRef, x [3]Atom) (Atom, error) {
	return e.app(e.pool.Retain(x[0]), e.pool.Retain(NodeAtom(curr)))
}

// P x y: reduce x to WHNF, write its low byte as a character, yield y.
func ruleOutput(e *Engine, curr NodeRef, x [3]Atom) (Atom, error) {
	v, err := e.reduceToDatum(x[1])
	if err != nil {
		return Atom{}, err
	}
	if e.out != nil {
		fmt.Fprintf(e.out, "%c", rune(v&0xff))
	}
	return e.pool.Replace(curr, e.pool.Retain(x[0])), nil
}

// G k: read one character, apply k to it.
func ruleInput(e *Engine, curr NodeRef, x [3]Atom) (Atom, error) {
	var v uint16
	if e.in != nil {
		if r, _, err := e.in.ReadRune(); err == nil {
			v = uint16(r)
		}
		// EOF delivers the datum 0: mini-sk.c has no G primitive to
		// follow here (it is one of spec.md's extensions), and 0 is a
		// harmless sentinel a program can special-case if it cares.
	}
	arg, err := e.app(e.pool.Retain(x[0]), LitAtom(Datum(v)))
	if err != nil {
		return Atom{}, err
	}
	return e.pool.Replace(curr, arg), nil
}

// reduceToDatum reduces x to WHNF and extracts its value as a raw datum,
// falling back to 0 if it does not reduce to one (spec.md §9 flags this
// silent-fault behavior as a port-time open question; we keep the
// original's leniency rather than raising a stuck-term error). The
// reduced atom is always released once its value has been read: on the
// literal path this is a no-op, on the stuck-node path it reclaims what
// would otherwise leak.
func (e *Engine) reduceToDatum(x Atom) (uint16, error) {
	reduced, err := e.Reduce(e.pool.Retain(x))
	if err != nil {
		return 0, err
	}
	if reduced.IsLiteral() && reduced.Literal().IsDatum() {
		return reduced.Literal().Value, nil
	}
	e.pool.Release(reduced)
	return 0, nil
}

// deliver implements the "2c" binary-primitive continuation from spec.md
// §4.D: op x y k reduces x and y, then either replaces curr with result
// directly (k == I) or applies k to result.
func (e *Engine) deliver(curr NodeRef, k, result Atom) (Atom, error) {
	if k == AtomI {
		return e.pool.Replace(curr, result), nil
	}
	applied, err := e.app(e.pool.Retain(k), result)
	if err != nil {
		return Atom{}, err
	}
	return e.pool.Replace(curr, applied), nil
}

func arithRule(op func(a, b uint16) uint16) ruleFn {
	return func(e *Engine, curr NodeRef, x [3]Atom) (Atom, error) {
		a, err := e.reduceToDatum(x[2])
		if err != nil {
			return Atom{}, err
		}
		b, err := e.reduceToDatum(x[1])
		if err != nil {
			return Atom{}, err
		}
		return e.deliver(curr, x[0], LitAtom(Datum(op(a, b))))
	}
}

func cmpRule(op func(a, b uint16) bool) ruleFn {
	return func(e *Engine, curr NodeRef, x [3]Atom) (Atom, error) {
		a, err := e.reduceToDatum(x[2])
		if err != nil {
			return Atom{}, err
		}
		b, err := e.reduceToDatum(x[1])
		if err != nil {
			return Atom{}, err
		}
		result := AtomK
		if !op(a, b) {
			result = AtomF
		}
		return e.deliver(curr, x[0], result)
	}
}

func addOp(a, b uint16) uint16 { return uint16((uint32(a) + uint32(b)) % datumMod) }
func subOp(a, b uint16) uint16 { return uint16((uint32(a) + datumMod - uint32(b)) % datumMod) }
func mulOp(a, b uint16) uint16 { return uint16((uint32(a) * uint32(b)) % datumMod) }

// divOp truncates toward zero; division by zero is implementation-defined
// per spec.md §9 ("porting to a language with trap-on-divide requires an
// explicit check") — we define it as 0 rather than panicking.
func divOp(a, b uint16) uint16 {
	if b == 0 {
		return 0
	}
	return a / b
}
