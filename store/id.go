package store

import "fmt"

// ID is an opaque 32-bit object handle: the object's kind in the top byte
// and its index within that kind's array in the low 24 bits. Identifiers
// are never reused or remapped; an ID stays valid for the lifetime of the
// Storage that issued it.
//
// The 24-bit index caps each kind at 16,777,216 objects. Exceeding the cap
// is a precondition violation, not a runtime error.
type ID uint32

// MaxPerKind is the largest number of objects one kind can hold.
const MaxPerKind = 1 << 24

// MakeID builds an ID from a kind and an array index.
func MakeID(kind Kind, index int) ID {
	return ID(uint32(kind)<<24 | uint32(index)&0xFFFFFF)
}

// Kind extracts the object kind from the ID's top byte.
func (id ID) Kind() Kind { return Kind(id >> 24) }

// Index extracts the per-kind array index from the ID's low 24 bits.
func (id ID) Index() int { return int(id & 0xFFFFFF) }

// String formats the ID as kind:index for diagnostics.
func (id ID) String() string {
	return fmt.Sprintf("%s:%d", id.Kind(), id.Index())
}
