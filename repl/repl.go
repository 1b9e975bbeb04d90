// Package repl drives a read-reduce-print loop over an engine.Engine:
// each term read from the input is reduced to weak head normal form and
// printed alongside the reduction count for that term and the pool's
// high-water mark since the engine was created.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/combix/combix/engine"
	"github.com/combix/combix/internal/macros"
	"github.com/combix/combix/parser"
	"github.com/combix/combix/printer"
)

// REPL ties a parser, an engine, and a printer to an input/output pair.
type REPL struct {
	eng     *engine.Engine
	lib     *macros.Library
	in      *bufio.Reader
	out     io.Writer
	prompt  string
	session string
}

// New builds a REPL. lib may be nil to disable $name macro expansion.
// The session is tagged with a fresh UUID so logs from concurrent
// REPL instances (or successive runs against the same log file) can be
// told apart.
func New(eng *engine.Engine, lib *macros.Library, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		eng:     eng,
		lib:     lib,
		in:      bufio.NewReader(in),
		out:     out,
		prompt:  "Term> ",
		session: uuid.New().String(),
	}
}

// Session returns this REPL's session ID.
func (r *REPL) Session() string { return r.session }

// Run reads and evaluates terms until EOF, matching the reference
// implementation's loop: prompt, read one term, print it, reduce it,
// print the reduced result, then report the reductions performed on that
// one term and the pool's high-water mark, which is never reset and so
// covers every term the engine has handled so far.
func (r *REPL) Run() error {
	p := parser.New(r.eng, r.lib, r.in)
	pr := printer.New(r.eng, r.out)

	for {
		if r.atEOF() {
			return nil
		}
		fmt.Fprint(r.out, "\n"+r.prompt)
		a, err := p.Parse()
		if err != nil {
			fmt.Fprintf(r.out, "error: %s\n", err)
			continue
		}

		fmt.Fprintln(r.out)
		if err := pr.Print(a); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "\n--->")

		r.eng.ResetReductions()
		reduced, err := r.eng.Reduce(a)
		if err != nil {
			fmt.Fprintf(r.out, "error: %s\n", err)
			continue
		}

		if err := pr.PrintReduced(reduced); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "\n\n%d reductions, %d max appnodes\n",
			r.eng.Reductions(), r.eng.Pool().HighWater())
		r.eng.Pool().Release(reduced)
	}
}

// atEOF reports whether the underlying reader has nothing left to give,
// used to stop the loop cleanly after a trailing blank Parse at EOF
// (Parse itself treats EOF as an implicit I, so Run needs its own check
// to avoid looping forever on an already-exhausted reader).
func (r *REPL) atEOF() bool {
	_, err := r.in.Peek(1)
	return err == io.EOF
}
