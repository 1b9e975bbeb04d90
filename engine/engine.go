package engine

import "io"

// Config are the build-time constants from spec.md §6, made
// runtime-overridable (see internal/config for the YAML loader that
// populates this from a file).
type Config struct {
	PoolCapacity  uint32 // reference values 525-32767, spec.md §3
	SpineCapacity int    // reference value 512, spec.md §5
	Extended      bool   // enable Y/F/J/P/G/arithmetic/comparison
	Sanity        bool   // reserved-refcount-sentinel assertions, spec.md §7
}

// DefaultConfig matches the non-tiny reference build in mini-sk.c
// (MAX_APPS 3072, MAX_STACK 512), with extended primitives enabled.
func DefaultConfig() Config {
	return Config{
		PoolCapacity:  3072,
		SpineCapacity: 512,
		Extended:      true,
	}
}

// Engine owns one node pool, spine stack, and counter set: spec.md §5
// calls these "process-wide singletons for the engine's lifetime", which
// this port scopes to an *Engine value instead of package globals so
// multiple independent heaps can coexist (e.g. in tests).
type Engine struct {
	pool          *Pool
	spine         []NodeRef
	spineCapacity int
	reductions    uint64
	extended      bool

	in  io.RuneScanner // for the G primitive
	out io.Writer      // for the P primitive
}

// New builds an Engine. in/out may be nil if the term never uses G/P.
func New(cfg Config, in io.RuneScanner, out io.Writer) *Engine {
	return &Engine{
		pool:          NewPool(cfg.PoolCapacity, cfg.Sanity),
		spine:         make([]NodeRef, 0, cfg.SpineCapacity),
		spineCapacity: cfg.SpineCapacity,
		extended:      cfg.Extended,
		in:            in,
		out:           out,
	}
}

// Pool exposes the engine's node pool to the parser and printer, which
// need to allocate and inspect nodes directly.
func (e *Engine) Pool() *Pool { return e.pool }

// Extended reports whether the extended primitive set is enabled.
func (e *Engine) Extended() bool { return e.extended }

// Reductions returns the number of rewrite steps performed so far.
func (e *Engine) Reductions() uint64 { return e.reductions }

// ResetReductions zeroes the reduction counter, as the REPL does before
// each top-level term per spec.md §6.
func (e *Engine) ResetReductions() { e.reductions = 0 }

// app allocates a fresh application node, wrapping Pool.Alloc's error
// return for the combinator rules in rules.go.
func (e *Engine) app(fn, arg Atom) (Atom, error) {
	r, err := e.pool.Alloc(fn, arg)
	if err != nil {
		return Atom{}, err
	}
	return NodeAtom(r), nil
}
