package engine

// Retain increments a's refcount if it refers to a node; literals are a
// no-op. It returns its argument so call sites read as a retained copy:
// e.g. `app(pool.Retain(f), pool.Retain(x))`.
func (p *Pool) Retain(a Atom) Atom {
	if a.IsLiteral() {
		return a
	}
	p.at(a.Node()).Refcount++
	return a
}

// Release decrements a's refcount, and once it reaches zero recursively
// releases its Arg then its Func before returning the node to the
// free-list. It reports whether the node was actually reclaimed, mirroring
// mini-sk.c's free_app_all return value. Literals are a no-op.
func (p *Pool) Release(a Atom) bool {
	if a.IsLiteral() {
		return false
	}
	n := p.at(a.Node())
	n.Refcount--
	if n.Refcount != 0 {
		return false
	}
	p.Release(n.Arg)
	p.Release(n.Func)
	p.free(a.Node())
	return true
}

// Replace is the in-place rewrite from spec.md §4.C: the pivotal operation
// that rewrites a redex to its reduct while preserving sharing.
//
// If orig is uniquely referenced, releasing it frees it outright and
// reduced is returned directly. Otherwise orig still has other referents
// that must observe the rewrite, so orig becomes a transparent
// indirection (Func=I, Arg=reduced) that the reducer's I-chain splicing
// (see reduce.go) later collapses.
//
// Callers must build reduced from retained copies of orig's own children
// (never orig's raw Func/Arg), or the rewrite could make reduced a
// descendant of orig.
func (p *Pool) Replace(orig NodeRef, reduced Atom) Atom {
	if p.Release(NodeAtom(orig)) {
		return reduced
	}
	n := p.at(orig)
	p.Retain(reduced)
	p.Release(n.Func)
	p.Release(n.Arg)
	n.Func = AtomI
	n.Arg = reduced
	return reduced
}
