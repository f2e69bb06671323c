package predicate

import "math/bits"

// Set is a set of enabled tests
type Set uint32

// NewSet returns a set holding ids
func NewSet(ids ...ID) Set {
	var s Set
	for _, id := range ids {
		s = s.With(id)
	}
	return s
}

// With returns s with id added
func (s Set) With(id ID) Set {
	if _, ok := Lookup(id); !ok {
		return s
	}
	return s | 1<<uint(id)
}

// Without returns s with id removed
func (s Set) Without(id ID) Set {
	if _, ok := Lookup(id); !ok {
		return s
	}
	return s &^ (1 << uint(id))
}

// Has reports whether id is in s
func (s Set) Has(id ID) bool {
	if _, ok := Lookup(id); !ok {
		return false
	}
	return s&(1<<uint(id)) != 0
}

// Len returns the number of tests in s
func (s Set) Len() int {
	return bits.OnesCount32(uint32(s))
}

// IDs returns the tests in s in table order
func (s Set) IDs() []ID {
	ids := make([]ID, 0, s.Len())
	for _, def := range Table {
		if s.Has(def.ID) {
			ids = append(ids, def.ID)
		}
	}
	return ids
}
