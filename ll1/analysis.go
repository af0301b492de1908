package ll1

import (
	"github.com/npillmayer/pushdown"
)

// LL1Analysis holds the static analysis of a grammar: FIRST sets for every
// symbol, FOLLOW sets for every non-terminal, and the set of ε-derivable
// non-terminals. Create one with Analysis; after that it is read-only.
type LL1Analysis struct {
	g      *Grammar
	first  map[pushdown.Symbol]*SymbolSet
	follow map[pushdown.Symbol]*SymbolSet
}

// Analysis analyses a grammar, computing FIRST and FOLLOW sets.
// It fails with a MalformedGrammarError if the grammar violates its
// construction invariants, e.g. if an RHS symbol is undefined.
func Analysis(g *Grammar) (*LL1Analysis, error) {
	if err := g.validate(); err != nil {
		tracer().Errorf("grammar analysis: %v", err)
		return nil, err
	}
	ga := &LL1Analysis{
		g:      g,
		first:  make(map[pushdown.Symbol]*SymbolSet),
		follow: make(map[pushdown.Symbol]*SymbolSet),
	}
	ga.computeFirst()
	ga.computeFollow()
	ga.dump()
	return ga, nil
}

// Grammar returns the grammar this analysis is for.
func (ga *LL1Analysis) Grammar() *Grammar {
	return ga.g
}

// First returns FIRST(sym): the terminals which may begin a string derived
// from sym, plus ε if sym derives the empty string. For a terminal t,
// FIRST(t) = {t}. The returned set is shared; clients must not modify it.
func (ga *LL1Analysis) First(sym pushdown.Symbol) *SymbolSet {
	return ga.first[sym]
}

// Follow returns FOLLOW(A) for a non-terminal A: the terminals which may
// immediately follow A in a sentential form, plus the end marker if A may
// appear at the end. The returned set is shared; clients must not modify it.
func (ga *LL1Analysis) Follow(A pushdown.Symbol) *SymbolSet {
	return ga.follow[A]
}

// DerivesEpsilon returns true iff A ⇒* ε.
func (ga *LL1Analysis) DerivesEpsilon(A pushdown.Symbol) bool {
	if f := ga.first[A]; f != nil {
		return f.Contains(pushdown.Epsilon)
	}
	return false
}

// FirstOfSeq computes FIRST(α) for a symbol sequence α: walk α left to
// right, accumulating FIRST(Yᵢ)∖{ε} and continuing only while ε ∈ FIRST(Yᵢ).
// If every Yᵢ is nullable — including the case of the empty sequence — ε is
// a member of the result. Symbols ε inside α are transparent.
func (ga *LL1Analysis) FirstOfSeq(alpha Production) *SymbolSet {
	fseq := NewSymbolSet()
	for _, sym := range alpha {
		if sym == pushdown.Epsilon {
			continue
		}
		fseq.UnionWithoutEpsilon(ga.first[sym])
		if !ga.first[sym].Contains(pushdown.Epsilon) {
			return fseq
		}
	}
	fseq.Add(pushdown.Epsilon)
	return fseq
}

// FIRST is a fixed point: initialize FIRST(t) = {t} for terminals and
// FIRST(A) = {} for non-terminals (plus ε for A with an ε-production), then
// propagate along productions until no set changes. Termination is
// guaranteed by monotonicity over the finite symbol lattice, independently
// of iteration order.
func (ga *LL1Analysis) computeFirst() {
	for _, t := range ga.g.terms {
		ga.first[t] = NewSymbolSet(t)
	}
	for _, A := range ga.g.nonterms {
		ga.first[A] = NewSymbolSet()
	}
	ga.g.EachProduction(func(A pushdown.Symbol, alpha Production) {
		if alpha.IsEpsilon() {
			ga.first[A].Add(pushdown.Epsilon)
		}
	})
	for changed := true; changed; {
		changed = false
		ga.g.EachProduction(func(A pushdown.Symbol, alpha Production) {
			fA := ga.first[A]
			nullable := true
			for _, Y := range alpha {
				if Y == pushdown.Epsilon {
					continue
				}
				if fA.UnionWithoutEpsilon(ga.first[Y]) {
					changed = true
				}
				if !ga.first[Y].Contains(pushdown.Epsilon) {
					nullable = false
					break
				}
			}
			if nullable && !alpha.IsEpsilon() {
				if fA.Add(pushdown.Epsilon) {
					changed = true
				}
			}
		})
	}
}

// FOLLOW is a fixed point over the same lattice: seed FOLLOW(start) with
// the end marker, then for every production A → X₁…Xₙ walk the RHS
// backwards, carrying a trailer set which starts as FOLLOW(A).
func (ga *LL1Analysis) computeFollow() {
	for _, A := range ga.g.nonterms {
		ga.follow[A] = NewSymbolSet()
	}
	ga.follow[ga.g.start].Add(pushdown.EndMarker)
	for changed := true; changed; {
		changed = false
		ga.g.EachProduction(func(A pushdown.Symbol, alpha Production) {
			trailer := ga.follow[A].Copy()
			for i := len(alpha) - 1; i >= 0; i-- {
				X := alpha[i]
				switch X.Kind {
				case pushdown.NonTermKind:
					if ga.follow[X].Union(trailer) {
						changed = true
					}
					if ga.first[X].Contains(pushdown.Epsilon) {
						trailer.UnionWithoutEpsilon(ga.first[X])
					} else {
						trailer = ga.first[X].Copy()
					}
				case pushdown.TerminalKind:
					trailer = NewSymbolSet(X)
				}
			}
		})
	}
}

func (ga *LL1Analysis) dump() {
	ga.g.EachSymbol(func(sym pushdown.Symbol) interface{} {
		tracer().Debugf("FIRST(%s) = %v", sym, ga.first[sym])
		return nil
	})
	ga.g.EachNonTerminal(func(A pushdown.Symbol) interface{} {
		tracer().Debugf("FOLLOW(%s) = %v", A, ga.follow[A])
		return nil
	})
}
