// Package macros holds the builtin macro library: named combinator-term
// definitions that parser.Parser expands wherever it reads a $name
// reference, plus a content digest used to tag a REPL session with the
// exact macro set it started from.
package macros

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Def is one named macro: Name is what a $name reference in surface
// syntax looks up, Source is the term it expands to, written in the same
// prefix-@ notation the parser accepts for any other term.
type Def struct {
	Name   string
	Source string
}

// Builtins is the standard macro library: Church-encoded booleans,
// pairs, list operations, and a handful of worked examples, transliterated
// from the reference combinator set. Order matters for Digest (and is
// otherwise cosmetic); later entries may reference earlier ones.
var Builtins = []Def{
	{"y", "@@B@@SII@@CB@@SII"},
	{"t", "K"},
	{"f", "@KI"},
	{"and", "@@CC@KI"},
	{"or", "@@CIK"},
	{"not", "@@C@@CI@KIK"},
	{"pair", "@@BC@CI"},
	{"fst", "@@CIK"},
	{"snd", "@@CI@KI"},
	{"succ", "@SB"},
	{"pred", "@@C@@BC@@B@BC@@C@@BC@@B@BB@@CB@@B@B@CI@CIKI"},
	{"iszero", "@@C@@CI@K@KIK"},
	{"plus", "@@BS@BB"},
	{"sub", "@@C@@BB@@C@@CI@@CI@@B@CI@SB@@CI@KI@@B@S@@C@@CI@@B@C@@BBS@@B@S@@BBB@@B@BCC@K@KI@@C@@BB@@CI@@C@@CIKI@@C@@CI@@BK@CIK"},
	{"times", "B"},
	{"div2", "@@BC@@C@@BC@@C@@BB@@CI@@B@SBC@@BKKI"},
	{"cdiv", "@@C@@BB@@C@@CI@@CI@@B@CI@SB@@CI@KI@@B@S@@C@@CI@@CI@@B@CI@@BK@CI@@CIK@@C@@BC@@B@CI@@B@B@C@@BBS@@B@B@S@@BBB@@B@B@BC@@B@BC@@B@CB@@C@@BB@@CI@@C@@CIKI@@BK@CI@K@KI"},
	{"fdiv", "@@B@B$pred@@B$ceiling$div$succ"},
	{"divrem2", "@@C@@CI@@CI@@C@@BS@@B@B$pair@@S@@BC@@B@CI$succ I$not@@$pair#0$f"},
	{"tobinle", "@$y@@B@C$divrem2@@B@B@C$cons@S@@C$iszero$nil"},
	{"tobinbe", "@@B$rev$tobinle"},
	{"eq", "@@C@@BC@@C@@BC@@C@@BB@@CI@@C@@CI@@@SII@@BK@@B@CI@@SIII@@C@@CI@@BK@CIKK@K@KI"},
	{"lesseq", "@@B@B$iszero$sub"},
	{"less", "@@B@B$not@@B@B$iszero@C$sub"},
	{"greatereq", "@C$lesseq"},
	{"greater", "@C$less"},
	{"cons", "$pair"},
	{"nil", "@KK"},
	{"hd", "$fst"},
	{"tl", "$snd"},
	{"case", "@@C@@BC@@B@BC@@BC@@CB@@B@B@BK@B@BKI"},
	{"take", "@@C@@BC@@C@@BC@@C@@BB@@CI@@SI@@C@@BC@@B@BC@C@@BC@@B@CI@@B@B@BK@@B@B@BK@@B@BC@@B@B@CI@@C@@BBB@@BC@CII@C@@CIIK@KK"},
	{"drop", "@@CI$tl"},
	{"nth", "@@B@B$hd$drop"},
	{"zipwith", "@$y@@B@B@C@@BB@@C$case$nil@@B@B@C@@BB@@BB@@C$case$nil@S@@BC@@B@BB@@B@BC@@B@B@BB@B@B$cons"},
	{"zipapp", "@$y@@B@C@@BB@@C$case$nil@@B@C@@BB@@BB@@C$case$nil@C@@BB@@BC@@B@BB@B$cons"},
	{"zip", "@$zipwith$pair"},
	{"last", "@$foldr1@KI"},
	{"isempty", "@@CI@K@K@KI"},
	{"length", "@@$foldr@K$succ#0"},
	{"foldl", "@@B$y@@B@B@S@@BC@C$case@C@@BBB"},
	{"foldl1", "@@C@@BS@@C@@BB$foldl$hd$tl"},
	{"foldr", "@@B@B$y@@B@C@@BB@@BC@C$case@@BC@BB"},
	{"foldr1", "@@B$y@@B@B@CI@@B@B@S@@BS@C$isempty@@BC@BB"},
	{"map", "@@B$y@@B@B@C@@C$case$nil@@BC@@B@BB@B$cons"},
	{"filter", "@@B$y@@B@B@C@@C$case$nil@@BC@@B@BB@@C@@BC@@CS$cons I"},
	{"append", "@$y@@B@C@@BS$case@@B@B@C@@BB$cons C"},
	{"partition", "@$y@@B@B@S@@C@@CI@K@K@KI@@C@@CI@KK@KK@@B@B@CI@@C@@BS@@B@BB@BC@@C@@BS@@B@BS@@B@B@BS@@C@@BS@@B@BB@BB@@B@BC@@B@B@CI@@BC@CI@@B@C@@BB@@BC@CI@@BC@CI"},
	{"quicksort", "@@B$y@@B@B@C@@C$case@KK@@C@@BB@@BS@@B@BC@B$partition@@S@@BB@@BB@@BC@B$append@C@@BB$cons"},
	{"rev", "@@$foldl@C$cons$nil"},
	{"natsfrom", "@$y@@B@S$cons@@CB$succ"},
	{"sum", "@@$foldr$plus#0"},
	{"neval", "@@C@@C@@CI@@CB@SBI@KI"},
	{"leval", "@@B$rev$rev"},
	{"exlist1", "@@$cons#0@@$cons#1@@$cons#2$nil"},
	{"exlist2", "@@$cons#2@@$cons#0@@$cons#7@@$cons#5@@$cons#1@@$cons#3@@$cons#6$nil"},
	{"fib", "@@C@@C@@CI@@S@@BC@@B@CI@@CI@KI@@S@@BS@@B@BB@@CIK@@CI@KI@@C@@CI@KIIK"},
	{"fact", "@@C@@C@@CI@@B@SB@@CB@SB@KII"},
	{"tnpo", "@@B@@@SII@@B@CI@@C@@BC@@B@BC@@B@C@@BB@@CI@@CB@SB@@B@S@@BS@C@@C@@C@@C@@CI@@BK@CIK@KI@@C@@CIK@K@KI@@C@@BB@@BB@@SII@@B@C@@BC@@B@CI@@S@@S@@C@@CI@@C@@CI@KIKK@@BC@@C@@BC@@C@@BB@@CI@@B@SBC@@BKKI@@B@SB@@S@@BS@BB@@S@@BS@BBI@SB@KI@@C@@BC@CI@KI"},
	{"blc", "@@@SII@@B@B@CI@@B@B@B@SI@@B@@S@@BS@@B@BC@@B@B@BB@@B@B@BS@@B@B@CB@@S@@BBB@@B@S@@BC@@B@BS@@B@CB@@CB@@C@@BBB@C@@BC@CI@@C@@BBB@@C@@BBBS@@B@S@@BB@@BS@@B@SI@@CB@CI@@B@B@B@BK@@B@BC@@C@@BBB@@C@@BBB@@B@CB@CI@@SII"},
	{"runblc", "@$blc K"},
	{"rjot", "@@@SII@@C@@BC@@C@@BC@@B@CI@@B@B@BK@@B@B@BK@@B@@S@@BC@@B@BS@@B@CB@BB@@C@@BC@@CCSK@@SIIII"},
	{"jot", "@@B$rjot$rev"},
	{"diag", "@@C@@BC@@B@B$y@@C@@BC@@B@BB@@B@BS@@B@B@B$append@@C@@BS@@B@BB$zipwith@@B@B$rev@C$take@@CB$succ I"},
	{"diagapp", "@@C@@B$y@@C@@BB@@BS@@B@B$append@@S@@BB$zipapp@@B@B$rev@C$take@@CB$succ I"},
	{"allsk", "@$y@@B@$cons K@@B@$cons S$diagapp"},
	{"allski", "@$y@@B@$cons I@@B@$cons K@@B@$cons S$diagapp"},
	{"allskibc", "@$y@@B@$cons I@@B@$cons K@@B@$cons B@@B@$cons C@@B@$cons S$diagapp"},
}

// Library is a loaded, lookup-ready macro set: the defs it was built from
// (usually Builtins) plus whatever a caller has added with Add, keyed by name for the parser's $name
// expansion.
type Library struct {
	byName map[string]string
	order  []Def
}

// NewLibrary builds a Library from defs, in order, rejecting duplicate
// names: a macro library is meant to be loaded once at startup, so a
// collision almost certainly means two files define the same name.
func NewLibrary(defs []Def) (*Library, error) {
	lib := &Library{byName: make(map[string]string, len(defs))}
	for _, d := range defs {
		if _, dup := lib.byName[d.Name]; dup {
			return nil, fmt.Errorf("macro %q defined more than once", d.Name)
		}
		lib.byName[d.Name] = d.Source
		lib.order = append(lib.order, d)
	}
	return lib, nil
}

// Lookup returns the source term macro name expands to.
func (l *Library) Lookup(name string) (string, bool) {
	s, ok := l.byName[name]
	return s, ok
}

// Add appends a macro, returning an error if name is already defined.
func (l *Library) Add(d Def) error {
	if _, dup := l.byName[d.Name]; dup {
		return fmt.Errorf("macro %q defined more than once", d.Name)
	}
	l.byName[d.Name] = d.Source
	l.order = append(l.order, d)
	return nil
}

// Names returns every defined macro name, sorted, for listing in a
// REPL banner or help command.
func (l *Library) Names() []string {
	names := maps.Keys(l.byName)
	slices.Sort(names)
	return names
}

// Digest returns a blake2b-256 hash of the library's (name, source)
// pairs in definition order, so a REPL session log or skdump snapshot
// can record exactly which macro set a run started from without
// embedding the whole library verbatim.
func (l *Library) Digest() ([32]byte, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return [32]byte{}, err
	}
	for _, d := range l.order {
		fmt.Fprintf(h, "%s\x00%s\x00", d.Name, d.Source)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out, nil
}
