/*
Package ll1 implements prerequisites for LL(1) predictive parsing:
a grammar model, FIRST- and FOLLOW-set computation, and construction of
the predictive parse table. Package ll1/pda turns such a table into a
deterministic pushdown automaton and runs it.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Grammars may
contain epsilon-productions.

Example:

    b := ll1.NewGrammarBuilder("Expressions")
    b.LHS("E").N("T").N("E'").End()            // E  → T E'
    b.LHS("E'").T("+").N("T").N("E'").End()    // E' → + T E'
    b.LHS("E'").Epsilon()                      // E' → ε
    b.LHS("T").T("id").End()                   // T  → id
    g, err := b.Grammar()

Alternatively a grammar may be loaded from its textual format, see
LoadGrammar.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LL1Analysis object, which computes FIRST and
FOLLOW sets for the grammar and determines all epsilon-derivable
non-terminals.

    ga, err := ll1.Analysis(g)
    g.EachNonTerminal(func(A pushdown.Symbol) interface{} {
        fmt.Printf("FOLLOW(%s) = %v", A.Name, ga.Follow(A))
        return nil
    })

Parser Construction

Using grammar analysis as input, the predictive parse table is built with
BuildTable. The table maps (non-terminal, lookahead) to a unique
production; grammars for which a cell would receive two productions are
not LL(1) and are rejected.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll1

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/pushdown"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pushdown.ll1'.
func tracer() tracing.Trace {
	return tracing.Select("pushdown.ll1")
}

// DefaultEpsilonMarker is the name recognized as ε in grammar input, unless
// clients configure a different one.
const DefaultEpsilonMarker = "eps"

// Production is the right-hand side of a grammar rule: an ordered sequence
// of symbols. The empty sequence denotes an ε-production. Grammar
// construction normalizes the single-element RHS [ε] to the empty sequence,
// so downstream stages need to handle one encoding only.
type Production []pushdown.Symbol

// IsEpsilon returns true for an ε-production.
func (p Production) IsEpsilon() bool {
	return len(p) == 0
}

func (p Production) String() string {
	if p.IsEpsilon() {
		return "ε"
	}
	var b bytes.Buffer
	for i, sym := range p {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(sym.String())
	}
	return b.String()
}

// eq compares two productions symbol by symbol.
func (p Production) eq(other Production) bool {
	if len(p) != len(other) {
		return false
	}
	for i, sym := range p {
		if sym != other[i] {
			return false
		}
	}
	return true
}

// Grammar is an immutable context-free grammar: a start symbol, terminal and
// non-terminal alphabets, productions per non-terminal, and an optional
// regex pattern per terminal (used by ll1/scanner). Create one with a
// GrammarBuilder or with LoadGrammar; after that a Grammar is read-only and
// may be shared freely.
type Grammar struct {
	Name     string            // a grammar identifier for tracing purposes
	start    pushdown.Symbol   // start symbol, a non-terminal
	epsilon  string            // marker name recognized as ε in input notation
	terms    []pushdown.Symbol // terminals in declaration order
	nonterms []pushdown.Symbol // non-terminals in declaration order
	prods    map[string][]Production
	patterns map[string]string // terminal name → regex pattern
}

// Start returns the start symbol of the grammar.
func (g *Grammar) Start() pushdown.Symbol {
	return g.start
}

// EpsilonMarker returns the name which grammar input notation uses for ε.
func (g *Grammar) EpsilonMarker() string {
	return g.epsilon
}

// Terminals returns the terminals of the grammar in declaration order.
// Declaration order is significant: the scanner uses it for tie-breaking
// between patterns matching a prefix of equal length.
func (g *Grammar) Terminals() []pushdown.Symbol {
	return append([]pushdown.Symbol(nil), g.terms...)
}

// NonTerminals returns the non-terminals of the grammar in declaration order.
func (g *Grammar) NonTerminals() []pushdown.Symbol {
	return append([]pushdown.Symbol(nil), g.nonterms...)
}

// Productions returns the productions for a non-terminal A, in declaration
// order. Returns nil if A has no productions.
func (g *Grammar) Productions(A pushdown.Symbol) []Production {
	return g.prods[A.Name]
}

// Pattern returns the regex pattern declared for a terminal, or "" if the
// terminal has none.
func (g *Grammar) Pattern(t pushdown.Symbol) string {
	return g.patterns[t.Name]
}

// IsTerminal checks membership of a name in the terminal alphabet.
func (g *Grammar) IsTerminal(name string) bool {
	for _, t := range g.terms {
		if t.Name == name {
			return true
		}
	}
	return false
}

// IsNonTerm checks membership of a name in the non-terminal alphabet.
func (g *Grammar) IsNonTerm(name string) bool {
	for _, nt := range g.nonterms {
		if nt.Name == name {
			return true
		}
	}
	return false
}

// EachNonTerminal iterates over all non-terminals of the grammar, in
// declaration order. Iteration stops at the first non-nil return value of
// the mapper function, which is then returned.
func (g *Grammar) EachNonTerminal(mapper func(A pushdown.Symbol) interface{}) interface{} {
	for _, A := range g.nonterms {
		if r := mapper(A); r != nil {
			return r
		}
	}
	return nil
}

// EachSymbol iterates over all terminals and non-terminals of the grammar.
func (g *Grammar) EachSymbol(mapper func(sym pushdown.Symbol) interface{}) interface{} {
	for _, t := range g.terms {
		if r := mapper(t); r != nil {
			return r
		}
	}
	return g.EachNonTerminal(mapper)
}

// EachProduction iterates over all productions A → α of the grammar,
// non-terminals in declaration order, alternatives in declaration order.
func (g *Grammar) EachProduction(proc func(A pushdown.Symbol, alpha Production)) {
	for _, A := range g.nonterms {
		for _, alpha := range g.prods[A.Name] {
			proc(A, alpha)
		}
	}
}

func (g *Grammar) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Grammar %q, start symbol %s\n", g.Name, g.start)
	g.EachProduction(func(A pushdown.Symbol, alpha Production) {
		fmt.Fprintf(&b, "  %s → %s\n", A, alpha)
	})
	for _, t := range g.terms {
		if pat, ok := g.patterns[t.Name]; ok {
			fmt.Fprintf(&b, "  %s ~ /%s/\n", t, pat)
		}
	}
	return b.String()
}

// Dump is a debugging helper, listing the grammar to the trace.
func (g *Grammar) Dump() {
	tracer().Debugf("Grammar %q, ε-marker %q", g.Name, g.epsilon)
	tracer().Debugf("start symbol: %s", g.start)
	n := 0
	g.EachProduction(func(A pushdown.Symbol, alpha Production) {
		tracer().Debugf("%3d: %s ::= [%s]", n, A, alpha)
		n++
	})
	for _, t := range g.terms {
		if pat, ok := g.patterns[t.Name]; ok {
			tracer().Debugf("     %s ~ /%s/", t, pat)
		}
	}
}

// validate checks the grammar invariants: a start symbol is set and is a
// non-terminal of the grammar, the alphabets are disjoint, no terminal is
// named like the end-of-input marker, and every symbol on any RHS is
// defined. Violations surface as MalformedGrammarError.
func (g *Grammar) validate() error {
	if g.start.Name == "" {
		return &MalformedGrammarError{Reason: "no start symbol defined"}
	}
	if !g.IsNonTerm(g.start.Name) {
		return &MalformedGrammarError{
			Reason: fmt.Sprintf("start symbol '%s' is not a non-terminal of the grammar", g.start.Name),
		}
	}
	for _, t := range g.terms {
		if t.Name == "$" {
			return &MalformedGrammarError{Reason: "terminal '$' collides with the end-of-input marker"}
		}
		if g.IsNonTerm(t.Name) {
			return &MalformedGrammarError{
				Reason: fmt.Sprintf("symbol '%s' declared both terminal and non-terminal", t.Name),
			}
		}
	}
	var err error
	g.EachProduction(func(A pushdown.Symbol, alpha Production) {
		for _, sym := range alpha {
			switch sym.Kind {
			case pushdown.TerminalKind:
				if err == nil && !g.IsTerminal(sym.Name) {
					err = &MalformedGrammarError{
						Reason: fmt.Sprintf("undefined terminal '%s' in RHS of %s", sym.Name, A),
					}
				}
			case pushdown.NonTermKind:
				if err == nil && !g.IsNonTerm(sym.Name) {
					err = &MalformedGrammarError{
						Reason: fmt.Sprintf("undefined non-terminal '%s' in RHS of %s", sym.Name, A),
					}
				}
			default:
				if err == nil {
					err = &MalformedGrammarError{
						Reason: fmt.Sprintf("illegal symbol %v in RHS of %s", sym, A),
					}
				}
			}
		}
	})
	return err
}

// === Grammar builder =======================================================

// GrammarBuilder is a fluent API for the construction of grammars. Rules are
// added as chains of symbol calls, e.g.
//
//     b.LHS("E'").T("+").N("T").N("E'").End()
//
// The first left-hand side becomes the start symbol, unless overridden with
// SetStart.
type GrammarBuilder struct {
	g        *Grammar
	termSeen map[string]bool
	ntSeen   map[string]bool
}

// NewGrammarBuilder creates a builder for a grammar with a given name.
func NewGrammarBuilder(name string, opts ...BuilderOption) *GrammarBuilder {
	gb := &GrammarBuilder{
		g: &Grammar{
			Name:     name,
			epsilon:  DefaultEpsilonMarker,
			prods:    make(map[string][]Production),
			patterns: make(map[string]string),
		},
		termSeen: make(map[string]bool),
		ntSeen:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(gb)
	}
	return gb
}

// BuilderOption configures a grammar builder.
type BuilderOption func(gb *GrammarBuilder)

// EpsilonMarker sets the name which grammar input notation uses for ε.
// Defaults to "eps".
func EpsilonMarker(marker string) BuilderOption {
	return func(gb *GrammarBuilder) {
		gb.g.epsilon = marker
	}
}

// SetStart designates the start symbol. Without a call to SetStart, the
// first LHS becomes the start symbol.
func (gb *GrammarBuilder) SetStart(name string) *GrammarBuilder {
	gb.g.start = pushdown.NonTerminal(name)
	gb.noteNonTerm(name)
	return gb
}

// Pattern declares a regex pattern for a terminal. The terminal is added to
// the terminal alphabet if not yet present.
func (gb *GrammarBuilder) Pattern(terminal string, pattern string) *GrammarBuilder {
	gb.noteTerminal(terminal)
	gb.g.patterns[terminal] = pattern
	return gb
}

// LHS starts a rule for non-terminal name and returns a RuleBuilder to
// collect the RHS symbols.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	gb.noteNonTerm(name)
	if gb.g.start.Name == "" {
		gb.g.start = pushdown.NonTerminal(name)
	}
	return &RuleBuilder{gb: gb, lhs: name}
}

// Grammar validates and returns the constructed grammar.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if err := gb.g.validate(); err != nil {
		tracer().Errorf("grammar builder: %v", err)
		return nil, err
	}
	tracer().Infof("built grammar %q: %d non-terminals, %d terminals",
		gb.g.Name, len(gb.g.nonterms), len(gb.g.terms))
	return gb.g, nil
}

func (gb *GrammarBuilder) noteTerminal(name string) {
	if !gb.termSeen[name] {
		gb.termSeen[name] = true
		gb.g.terms = append(gb.g.terms, pushdown.Terminal(name))
	}
}

func (gb *GrammarBuilder) noteNonTerm(name string) {
	if !gb.ntSeen[name] {
		gb.ntSeen[name] = true
		gb.g.nonterms = append(gb.g.nonterms, pushdown.NonTerminal(name))
	}
}

// RuleBuilder collects the RHS symbols of a single rule.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs string
	rhs Production
}

// N appends a non-terminal to the RHS of the rule under construction.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.gb.noteNonTerm(name)
	rb.rhs = append(rb.rhs, pushdown.NonTerminal(name))
	return rb
}

// T appends a terminal to the RHS of the rule under construction.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.gb.noteTerminal(name)
	rb.rhs = append(rb.rhs, pushdown.Terminal(name))
	return rb
}

// End closes the rule and hands it to the grammar.
func (rb *RuleBuilder) End() {
	rb.gb.g.prods[rb.lhs] = append(rb.gb.g.prods[rb.lhs], rb.rhs)
}

// Epsilon closes the rule as an ε-production (empty RHS).
func (rb *RuleBuilder) Epsilon() {
	rb.rhs = nil
	rb.End()
}
