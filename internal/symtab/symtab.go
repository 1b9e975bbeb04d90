// Package symtab interns byte strings (macro names, placeholder
// identifiers) into small integer IDs, the way a symbol table keeps a
// parser or macro expander from repeatedly hashing the same names.
package symtab

import "github.com/dchest/siphash"

// key0/key1 are fixed siphash keys: this table is never used across a
// trust boundary, only to bucket a process's own identifier strings, so
// a random per-process key buys nothing but non-determinism in tests.
const (
	key0 = 0x646e6f63786963 // "dnocxic" — no particular meaning
	key1 = 0x7461626d797300 // "tabmys"
)

// Table maps names to small, stable IDs and back. IDs are assigned in
// intern order starting at zero, so a Table's IDs can be used directly
// as indices into a parallel slice.
type Table struct {
	names   []string
	buckets map[uint64][]int32
}

// New returns an empty Table.
func New() *Table {
	return &Table{buckets: make(map[uint64][]int32)}
}

// Intern returns name's ID, assigning it a fresh one if this is the
// first time name has been seen.
func (t *Table) Intern(name string) int32 {
	h := siphash.Hash(key0, key1, []byte(name))
	for _, id := range t.buckets[h] {
		if t.names[id] == name {
			return id
		}
	}
	id := int32(len(t.names))
	t.names = append(t.names, name)
	t.buckets[h] = append(t.buckets[h], id)
	return id
}

// Lookup reports whether name has already been interned, and its ID.
func (t *Table) Lookup(name string) (int32, bool) {
	h := siphash.Hash(key0, key1, []byte(name))
	for _, id := range t.buckets[h] {
		if t.names[id] == name {
			return id, true
		}
	}
	return 0, false
}

// Name returns the string associated with id. It panics if id was never
// produced by Intern on this table, the same contract a slice index
// carries.
func (t *Table) Name(id int32) string { return t.names[id] }

// Len returns the number of distinct names interned so far.
func (t *Table) Len() int { return len(t.names) }
