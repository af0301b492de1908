package ll1

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/pushdown"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeExprTable(t *testing.T) *ParseTable {
	ga := makeExprAnalysis(t)
	table, err := BuildTable(ga)
	if err != nil {
		t.Fatalf("table construction returned error: %v", err)
	}
	return table
}

func TestBuildTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pushdown.ll1")
	defer teardown()
	//
	table := makeExprTable(t)
	if table.Size() != 13 {
		t.Errorf("expected 13 table entries for the expression grammar, got %d", table.Size())
	}
	tests := []struct {
		nonterm string
		la      pushdown.Symbol
		rhs     string
	}{
		{"E", pushdown.Terminal("("), "T E'"},
		{"E", pushdown.Terminal("id"), "T E'"},
		{"E'", pushdown.Terminal("+"), "+ T E'"},
		{"E'", pushdown.Terminal(")"), "ε"},
		{"E'", pushdown.EndMarker, "ε"},
		{"T'", pushdown.Terminal("*"), "* F T'"},
		{"T'", pushdown.Terminal("+"), "ε"},
		{"F", pushdown.Terminal("id"), "id"},
		{"F", pushdown.Terminal("("), "( E )"},
	}
	for _, test := range tests {
		alpha, ok := table.Production(pushdown.NonTerminal(test.nonterm), test.la)
		if !ok {
			t.Errorf("expected an entry at table[%s,%s]", test.nonterm, test.la)
			continue
		}
		if alpha.String() != test.rhs {
			t.Errorf("expected table[%s,%s] = %s, got %s", test.nonterm, test.la, test.rhs, alpha)
		}
	}
	// cells outside FIRST/FOLLOW have to stay empty
	if _, ok := table.Production(pushdown.NonTerminal("E"), pushdown.Terminal("+")); ok {
		t.Errorf("expected table[E,+] to be empty")
	}
	if _, ok := table.Production(pushdown.NonTerminal("E"), pushdown.EndMarker); ok {
		t.Errorf("expected table[E,$] to be empty")
	}
}

// Table invariant: every entry table[A,t] = α has t ∈ FIRST(α), or
// ε ∈ FIRST(α) and t ∈ FOLLOW(A).
func TestTableEntriesJustified(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pushdown.ll1")
	defer teardown()
	//
	ga := makeExprAnalysis(t)
	table, err := BuildTable(ga)
	if err != nil {
		t.Fatalf("table construction returned error: %v", err)
	}
	table.EachEntry(func(A, la pushdown.Symbol, alpha Production) {
		fseq := ga.FirstOfSeq(alpha)
		if fseq.Contains(la) {
			return
		}
		if fseq.Contains(pushdown.Epsilon) && ga.Follow(A).Contains(la) {
			return
		}
		t.Errorf("entry table[%s,%s] = %s is not justified by FIRST/FOLLOW", A, la, alpha)
	})
}

func TestLL1Conflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pushdown.ll1")
	defer teardown()
	//
	// S → a  |  a b   is not LL(1): both productions start with a
	b := NewGrammarBuilder("Conflict")
	b.LHS("S").T("a").End()
	b.LHS("S").T("a").T("b").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar builder returned error: %v", err)
	}
	ga, err := Analysis(g)
	if err != nil {
		t.Fatalf("grammar analysis returned error: %v", err)
	}
	_, err = BuildTable(ga)
	if err == nil {
		t.Fatalf("expected an LL(1) conflict for grammar %q", g.Name)
	}
	conflict, ok := err.(*LL1ConflictError)
	if !ok {
		t.Fatalf("expected an LL1ConflictError, got %T", err)
	}
	if conflict.NonTerm.Name != "S" || conflict.Lookahead != pushdown.Terminal("a") {
		t.Errorf("expected the conflict at table[S,a], got table[%s,%s]",
			conflict.NonTerm, conflict.Lookahead)
	}
}

func TestTableAsHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pushdown.ll1")
	defer teardown()
	//
	table := makeExprTable(t)
	var buf bytes.Buffer
	TableAsHTML(table, &buf)
	html := buf.String()
	if !strings.Contains(html, "<table") || !strings.Contains(html, "T E'") {
		t.Errorf("HTML export looks incomplete: %.80s…", html)
	}
}
