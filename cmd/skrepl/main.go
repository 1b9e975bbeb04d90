// Command skrepl runs an interactive read-reduce-print loop over the
// combinator engine.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/combix/combix/engine"
	"github.com/combix/combix/internal/config"
	"github.com/combix/combix/internal/macros"
	"github.com/combix/combix/repl"
)

func main() {
	cfgPath := flag.String("config", "", "path to a YAML engine config file (defaults built in if unset)")
	noExtended := flag.Bool("no-extended", false, "disable the Y/F/J/P/G/arithmetic/comparison primitives")
	noMacros := flag.Bool("no-macros", false, "disable the builtin $name macro library")
	autoTune := flag.Bool("auto-tune", false, "scale the spine stack to this host's vector-unit tier")
	flag.Parse()

	cfg := engine.DefaultConfig()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skrepl: %s\n", err)
			os.Exit(1)
		}
	}
	if *noExtended {
		cfg.Extended = false
	}
	if *autoTune {
		cfg = config.AutoTune(cfg)
	}

	var lib *macros.Library
	if !*noMacros {
		var err error
		lib, err = macros.NewLibrary(macros.Builtins)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skrepl: loading builtin macros: %s\n", err)
			os.Exit(1)
		}
	}

	// A single shared reader backs both the engine's G-primitive input
	// and the REPL's term parsing, so the two never race over os.Stdin.
	in := bufio.NewReader(os.Stdin)
	eng := engine.New(cfg, in, os.Stdout)
	r := repl.New(eng, lib, in, os.Stdout)
	fmt.Fprintln(os.Stdout, "S/K/I/B/C reduction engine")
	if lib != nil {
		fmt.Fprint(os.Stdout, "Predefined macros")
		comma := ':'
		for _, name := range lib.Names() {
			fmt.Fprintf(os.Stdout, "%c $%s", comma, name)
			comma = ','
		}
		fmt.Fprintln(os.Stdout)
	}

	if err := r.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "skrepl: %s\n", err)
		os.Exit(1)
	}
}
