// Command skdump parses a term, reduces it, and writes a zstd-compressed
// snapshot of the resulting node pool to a file, for later inspection
// without re-running the reduction.
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/combix/combix/engine"
	"github.com/combix/combix/internal/config"
	"github.com/combix/combix/internal/macros"
	"github.com/combix/combix/parser"
)

func main() {
	cfgPath := flag.String("config", "", "path to a YAML engine config file")
	out := flag.String("o", "pool.skz", "output snapshot path")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}

	cfg := engine.DefaultConfig()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skdump: %s\n", err)
			os.Exit(1)
		}
	}
	lib, err := macros.NewLibrary(macros.Builtins)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skdump: %s\n", err)
		os.Exit(1)
	}
	eng := engine.New(cfg, nil, os.Stdout)

	var in *os.File
	if args[0] == "-" {
		in = os.Stdin
	} else {
		in, err = os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "skdump: can't open %q: %s\n", args[0], err)
			os.Exit(1)
		}
	}

	p := parser.New(eng, lib, bufio.NewReader(in))
	term, err := p.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "skdump: %s\n", err)
		os.Exit(1)
	}
	reduced, err := eng.Reduce(term)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skdump: %s\n", err)
		os.Exit(1)
	}

	if err := dump(*out, eng, reduced); err != nil {
		fmt.Fprintf(os.Stderr, "skdump: %s\n", err)
		os.Exit(1)
	}
}

// dump writes a zstd-compressed snapshot of every live node in eng's
// pool, plus the root atom reduced points at, to path. The format is a
// flat sequence of fixed-size records (node reference, func, arg,
// refcount), preceded by a small header; skdump never needs to
// read its own output back in, so the format only needs to be stable
// enough for a human or a future tool to decode, not round-trippable.
func dump(path string, eng *engine.Engine, root engine.Atom) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	defer zw.Close()

	pool := eng.Pool()
	var hdr [12]byte
	binary.LittleEndian.PutUint32(hdr[0:4], pool.Capacity())
	binary.LittleEndian.PutUint32(hdr[4:8], pool.Live())
	binary.LittleEndian.PutUint32(hdr[8:12], encodeAtom(root))
	if _, err := zw.Write(hdr[:]); err != nil {
		return err
	}

	var rec [16]byte
	for r := engine.NodeRef(0); r < engine.NodeRef(pool.Capacity()); r++ {
		n := pool.Node(r)
		if n.Refcount == 0 {
			continue
		}
		binary.LittleEndian.PutUint32(rec[0:4], uint32(r))
		binary.LittleEndian.PutUint32(rec[4:8], encodeAtom(n.Func))
		binary.LittleEndian.PutUint32(rec[8:12], encodeAtom(n.Arg))
		binary.LittleEndian.PutUint32(rec[12:16], n.Refcount)
		if _, err := zw.Write(rec[:]); err != nil {
			return err
		}
	}
	return nil
}

// encodeAtom packs an Atom into a 32-bit record field: node references
// are tagged with a high bit set, literals carry their Op in the next
// byte and their datum value (when relevant) in the low 16 bits. This is
// a dump-only encoding local to this command, unrelated to the engine's
// own in-memory Atom representation.
func encodeAtom(a engine.Atom) uint32 {
	if a.IsNode() {
		return 1<<31 | uint32(a.Node())
	}
	lit := a.Literal()
	return uint32(lit.Op)<<16 | uint32(lit.Value)
}
