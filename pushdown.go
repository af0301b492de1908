/*
Package pushdown provides the shared leaf types for LL(1) predictive
parsing with deterministic pushdown automata: grammar symbols, input
tokens and input spans.

The interesting machinery lives in the sub-packages:

▪︎ ll1 — grammar model, FIRST/FOLLOW analysis, predictive parse table

▪︎ ll1/pda — DPDA synthesis, execution and parse-tree reconstruction

▪︎ ll1/scanner — tokenizing input with the grammar's terminal patterns

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pushdown

import "fmt"

// --- Grammar symbols --------------------------------------------------------

// SymKind is the tag distinguishing the kinds of grammar symbols. Dispatching
// on a tag, rather than on set-membership of untyped names, keeps every
// case-switch in grammar analysis and DPDA execution total.
type SymKind int8

// Symbols are either terminals or non-terminals, plus two synthetic kinds:
// Epsilon stands for the empty string inside productions, EndMarker signals
// input exhaustion. The two must never be conflated: Epsilon may appear in
// FIRST sets, EndMarker in FOLLOW sets and as lookahead.
// BottomKind is reserved for the initial stack symbol of a pushdown
// automaton, which is required to be distinct from every grammar symbol.
const (
	TerminalKind SymKind = iota
	NonTermKind
	EpsilonKind
	EndMarkerKind
	BottomKind
)

// Symbol is a grammar symbol, identified by (kind, name). Names are opaque;
// for the synthetic kinds the name is empty and the kind alone identifies
// the symbol. Symbols are values and may be used as map keys.
type Symbol struct {
	Kind SymKind
	Name string
}

// Terminal creates a terminal symbol.
func Terminal(name string) Symbol {
	return Symbol{Kind: TerminalKind, Name: name}
}

// NonTerminal creates a non-terminal symbol.
func NonTerminal(name string) Symbol {
	return Symbol{Kind: NonTermKind, Name: name}
}

// Bottom creates an initial stack symbol for a pushdown automaton.
func Bottom(name string) Symbol {
	return Symbol{Kind: BottomKind, Name: name}
}

// Epsilon is the empty-string marker.
var Epsilon = Symbol{Kind: EpsilonKind}

// EndMarker is the end-of-input marker, printed as '$' in traces.
var EndMarker = Symbol{Kind: EndMarkerKind}

// IsTerminal returns true for terminal symbols.
func (s Symbol) IsTerminal() bool {
	return s.Kind == TerminalKind
}

// IsNonTerm returns true for non-terminal symbols.
func (s Symbol) IsNonTerm() bool {
	return s.Kind == NonTermKind
}

func (s Symbol) String() string {
	switch s.Kind {
	case EpsilonKind:
		return "ε"
	case EndMarkerKind:
		return "$"
	case BottomKind:
		if s.Name == "" {
			return "Z0"
		}
	}
	return s.Name
}

// --- A general purpose interface for tokens --------------------------------

// Token represents an input token, as produced by a scanner. Terminal() names
// the grammar terminal the token belongs to; Lexeme() is the surface text as
// it appeared in the input stream.
//
// An example would be a token for an identifier:
//
//    Terminal = "id"        // name of the terminal declared in the grammar
//    Lexeme   = "counter"   // lexeme how it appeared in the input stream
//    Span     = 67…74       // occured from position 67 in the input stream
//
type Token interface {
	Terminal() string
	Lexeme() string
	Span() Span
}

// TerminalNames projects a token run onto the terminal names, which is the
// input format the DPDA executor consumes.
func TerminalNames(tokens []Token) []string {
	names := make([]string, len(tokens))
	for i, t := range tokens {
		names[i] = t.Terminal()
	}
	return names
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. A span
// denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
