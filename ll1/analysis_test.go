package ll1

import (
	"strings"
	"testing"

	"github.com/npillmayer/pushdown"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeExprAnalysis(t *testing.T) *LL1Analysis {
	g := makeExprGrammar(t)
	ga, err := Analysis(g)
	if err != nil {
		t.Fatalf("grammar analysis returned error: %v", err)
	}
	return ga
}

func symbols(names ...string) []pushdown.Symbol {
	syms := make([]pushdown.Symbol, len(names))
	for i, name := range names {
		switch name {
		case "ε":
			syms[i] = pushdown.Epsilon
		case "$":
			syms[i] = pushdown.EndMarker
		default:
			syms[i] = pushdown.Terminal(name)
		}
	}
	return syms
}

func expectSet(t *testing.T, which string, set *SymbolSet, expected []pushdown.Symbol) {
	t.Helper()
	if set == nil {
		t.Errorf("%s is nil", which)
		return
	}
	if set.Size() != len(expected) {
		t.Errorf("expected %s to have %d members, has %d: %v", which, len(expected), set.Size(), set)
		return
	}
	for _, sym := range expected {
		if !set.Contains(sym) {
			t.Errorf("expected %s ∈ %s, set is %v", sym, which, set)
		}
	}
}

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pushdown.ll1")
	defer teardown()
	//
	ga := makeExprAnalysis(t)
	tests := []struct {
		nonterm string
		first   []pushdown.Symbol
	}{
		{"E", symbols("(", "id")},
		{"E'", symbols("+", "ε")},
		{"T", symbols("(", "id")},
		{"T'", symbols("*", "ε")},
		{"F", symbols("(", "id")},
	}
	for _, test := range tests {
		expectSet(t, "FIRST("+test.nonterm+")",
			ga.First(pushdown.NonTerminal(test.nonterm)), test.first)
	}
	// for a terminal t, FIRST(t) = {t}
	for _, term := range ga.Grammar().Terminals() {
		expectSet(t, "FIRST("+term.Name+")", ga.First(term), []pushdown.Symbol{term})
	}
}

func TestFollowSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pushdown.ll1")
	defer teardown()
	//
	ga := makeExprAnalysis(t)
	tests := []struct {
		nonterm string
		follow  []pushdown.Symbol
	}{
		{"E", symbols(")", "$")},
		{"E'", symbols(")", "$")},
		{"T", symbols("+", ")", "$")},
		{"T'", symbols("+", ")", "$")},
		{"F", symbols("+", "*", ")", "$")},
	}
	for _, test := range tests {
		expectSet(t, "FOLLOW("+test.nonterm+")",
			ga.Follow(pushdown.NonTerminal(test.nonterm)), test.follow)
	}
	if !ga.Follow(ga.Grammar().Start()).Contains(pushdown.EndMarker) {
		t.Errorf("expected end marker in FOLLOW of the start symbol")
	}
}

func TestDerivesEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pushdown.ll1")
	defer teardown()
	//
	ga := makeExprAnalysis(t)
	nullable := map[string]bool{"E": false, "E'": true, "T": false, "T'": true, "F": false}
	for name, expect := range nullable {
		if ga.DerivesEpsilon(pushdown.NonTerminal(name)) != expect {
			t.Errorf("expected DerivesEpsilon(%s) to be %v", name, expect)
		}
	}
}

func TestFirstOfSeq(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pushdown.ll1")
	defer teardown()
	//
	ga := makeExprAnalysis(t)
	// FIRST(T' E') = {* + ε}: both symbols are nullable
	alpha := Production{pushdown.NonTerminal("T'"), pushdown.NonTerminal("E'")}
	expectSet(t, "FIRST(T' E')", ga.FirstOfSeq(alpha), symbols("*", "+", "ε"))
	// FIRST of the empty sequence is {ε}
	expectSet(t, "FIRST([])", ga.FirstOfSeq(Production{}), symbols("ε"))
	// a leading terminal cuts the walk short
	alpha = Production{pushdown.Terminal("id"), pushdown.NonTerminal("E'")}
	expectSet(t, "FIRST(id E')", ga.FirstOfSeq(alpha), symbols("id"))
}

func TestAnalysisRejectsUndefinedSymbol(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pushdown.ll1")
	defer teardown()
	//
	// the loader lets undefined RHS symbols pass with a warning; analysis
	// must reject them
	src := `
START = S
NON_TERMINALS = S
TERMINALS = a
S -> a unknown
`
	g, err := LoadGrammar("undefined", strings.NewReader(src))
	if err != nil {
		t.Fatalf("loading grammar returned error: %v", err)
	}
	if _, err = Analysis(g); err == nil {
		t.Errorf("expected analysis to reject undefined RHS symbol")
	} else if _, ok := err.(*MalformedGrammarError); !ok {
		t.Errorf("expected a MalformedGrammarError, got %T", err)
	}
}

func TestAnalysisNullableStart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pushdown.ll1")
	defer teardown()
	//
	b := NewGrammarBuilder("Eps")
	b.LHS("S").Epsilon()
	b.LHS("S").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar builder returned error: %v", err)
	}
	ga, err := Analysis(g)
	if err != nil {
		t.Fatalf("grammar analysis returned error: %v", err)
	}
	if !ga.DerivesEpsilon(pushdown.NonTerminal("S")) {
		t.Errorf("expected S to derive ε")
	}
	expectSet(t, "FIRST(S)", ga.First(pushdown.NonTerminal("S")), symbols("a", "ε"))
	expectSet(t, "FOLLOW(S)", ga.Follow(pushdown.NonTerminal("S")), symbols("$"))
}
