package engine

// Reduce evaluates curr to weak head normal form under the
// leftmost-outermost strategy of spec.md §4.E, using an explicit spine
// stack rather than recursion. curr is treated as one unit of ownership
// (as if already Retain-ed once by the caller); the returned atom carries
// that same unit forward, so callers simply store the result wherever
// curr used to live, with no extra Retain/Release.
//
// Reduce is reentrant with respect to itself: P and the arithmetic and
// comparison primitives invoke it recursively on a sub-atom, sharing the same spine slice but recording
// their own base so the outer call's entries are never touched.
func (e *Engine) Reduce(curr Atom) (Atom, error) {
	base := len(e.spine)

loop:
	for {
		for curr.IsNode() {
			n := e.pool.at(curr.Node())
			next := n.Func
			if next == AtomI {
				curr = e.spliceIndirection(curr.Node())
				if len(e.spine) > base {
					e.pool.at(e.spine[len(e.spine)-1]).Func = curr
				}
				continue
			}
			if len(e.spine)-base >= e.spineCapacity {
				return Atom{}, &FatalError{Op: "reduce", Msg: "spine stack overflow"}
			}
			e.spine = append(e.spine, curr.Node())
			curr = next
		}

		lit := curr.Literal()
		reqArgs := int(lit.Op.Arity())
		if reqArgs == 0 || reqArgs > len(e.spine)-base {
			break loop
		}

		e.reductions++
		top := len(e.spine)
		redexRef := e.spine[top-reqArgs]
		var x [3]Atom
		for i := 0; i < reqArgs; i++ {
			x[i] = e.pool.at(e.spine[top-reqArgs+i]).Arg
		}
		result, err := rules[lit.Op](e, redexRef, x)
		if err != nil {
			return Atom{}, err
		}
		e.spine = e.spine[:top-reqArgs]
		curr = result
		if len(e.spine) > base {
			e.pool.at(e.spine[len(e.spine)-1]).Func = curr
		}
	}

	if len(e.spine) == base {
		return curr, nil
	}
	root := NodeAtom(e.spine[base])
	e.spine = e.spine[:base]
	return root, nil
}

// spliceIndirection collapses the I-chain rooted at start (a node whose
// Func is already known to be I) down to its terminal atom, rewriting
// every visited indirection's Arg to point directly at that terminal so
// future traversals skip the chain in O(1). Ported from mini-sk.c's
// "INDIRECT" handling inside reduce(): a forward pass finds the terminal,
// then a backward pass unlinks each node in turn, stopping early the
// moment a node turns out to be uniquely referenced (freeing it already
// cascades the release through the rest of the tail).
func (e *Engine) spliceIndirection(start NodeRef) Atom {
	terminal := e.pool.at(start).Arg
	for terminal.IsNode() && e.pool.at(terminal.Node()).Func == AtomI {
		terminal = e.pool.at(terminal.Node()).Arg
	}

	curr := start
	for {
		e.reductions++
		e.pool.Retain(terminal)
		if e.pool.Release(NodeAtom(curr)) {
			break
		}
		next := e.pool.at(curr).Arg
		e.pool.at(curr).Arg = terminal
		if !next.IsNode() || e.pool.at(next.Node()).Func != AtomI {
			break
		}
		curr = next.Node()
	}
	return terminal
}
