package ll1

import (
	"bytes"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/pushdown"
)

// We keep FIRST- and FOLLOW-sets in tree sets, ordered by a symbol
// comparator. The ordering is not required for correctness of the
// fixed-point computations, but makes dumps and table exports stable.

// symbolComparator orders symbols by kind, then by name.
func symbolComparator(a, b interface{}) int {
	s1 := a.(pushdown.Symbol)
	s2 := b.(pushdown.Symbol)
	if s1.Kind != s2.Kind {
		return utils.IntComparator(int(s1.Kind), int(s2.Kind))
	}
	return utils.StringComparator(s1.Name, s2.Name)
}

// SymbolSet is an ordered set of grammar symbols.
type SymbolSet struct {
	set *treeset.Set
}

// NewSymbolSet creates a set containing the given symbols.
func NewSymbolSet(syms ...pushdown.Symbol) *SymbolSet {
	s := &SymbolSet{set: treeset.NewWith(symbolComparator)}
	for _, sym := range syms {
		s.set.Add(sym)
	}
	return s
}

// Add inserts a symbol. It returns true if the symbol was not yet present.
func (s *SymbolSet) Add(sym pushdown.Symbol) bool {
	if s.set.Contains(sym) {
		return false
	}
	s.set.Add(sym)
	return true
}

// Remove deletes a symbol from the set.
func (s *SymbolSet) Remove(sym pushdown.Symbol) {
	s.set.Remove(sym)
}

// Contains checks membership of a symbol.
func (s *SymbolSet) Contains(sym pushdown.Symbol) bool {
	return s.set.Contains(sym)
}

// Union inserts all symbols of other. It returns true if the set changed.
func (s *SymbolSet) Union(other *SymbolSet) bool {
	changed := false
	if other == nil {
		return false
	}
	for _, v := range other.set.Values() {
		if s.Add(v.(pushdown.Symbol)) {
			changed = true
		}
	}
	return changed
}

// UnionWithoutEpsilon inserts all symbols of other except ε. It returns true
// if the set changed. This is the recurring operation of the FIRST/FOLLOW
// fixed points.
func (s *SymbolSet) UnionWithoutEpsilon(other *SymbolSet) bool {
	changed := false
	if other == nil {
		return false
	}
	for _, v := range other.set.Values() {
		sym := v.(pushdown.Symbol)
		if sym == pushdown.Epsilon {
			continue
		}
		if s.Add(sym) {
			changed = true
		}
	}
	return changed
}

// Copy returns an independent copy of the set.
func (s *SymbolSet) Copy() *SymbolSet {
	c := NewSymbolSet()
	for _, v := range s.set.Values() {
		c.set.Add(v)
	}
	return c
}

// Size returns the number of symbols in the set.
func (s *SymbolSet) Size() int {
	return s.set.Size()
}

// Values returns the symbols of the set in comparator order.
func (s *SymbolSet) Values() []pushdown.Symbol {
	vals := s.set.Values()
	syms := make([]pushdown.Symbol, len(vals))
	for i, v := range vals {
		syms[i] = v.(pushdown.Symbol)
	}
	return syms
}

func (s *SymbolSet) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	for i, sym := range s.Values() {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(sym.String())
	}
	b.WriteString("}")
	return b.String()
}
