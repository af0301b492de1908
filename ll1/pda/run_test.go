package pda

import (
	"strings"
	"testing"

	"github.com/npillmayer/pushdown"
	"github.com/npillmayer/pushdown/ll1"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestAcceptsInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pushdown.pda")
	defer teardown()
	//
	d := makeExprDPDA(t)
	accepted := []string{
		"id",
		"id + id",
		"( id + id ) * id",
		"id * id + id",
		"( ( id ) )",
	}
	for _, input := range accepted {
		ok, trace := d.AcceptsInput(strings.Fields(input))
		if !ok {
			t.Errorf("valid input not accepted: %q\n%s", input, trace)
		}
	}
	rejected := []string{
		"id +",
		"+ id",
		"id id",
		"( id",
		"",
	}
	for _, input := range rejected {
		ok, trace := d.AcceptsInput(strings.Fields(input))
		if ok {
			t.Errorf("invalid input accepted: %q\n%s", input, trace)
		}
	}
}

func TestRejectReasons(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pushdown.pda")
	defer teardown()
	//
	d := makeExprDPDA(t)
	// dangling operator: all tokens consumed, but structure is unfinished
	ok, trace := d.AcceptsInput([]string{"id", "+"})
	if ok {
		t.Fatalf("expected 'id +' to be rejected")
	}
	if !strings.Contains(trace, "stack is not empty") {
		t.Errorf("expected the reject reason to mention the non-empty stack:\n%s", trace)
	}
	// no table entry for (E, +): rejected at the very first lookup
	ok, trace = d.AcceptsInput([]string{"+", "id"})
	if ok {
		t.Fatalf("expected '+ id' to be rejected")
	}
	if !strings.Contains(trace, "no transition") {
		t.Errorf("expected the trace to report a missing transition:\n%s", trace)
	}
	if !strings.Contains(trace, "not all input tokens were consumed") {
		t.Errorf("expected the reject reason to mention unconsumed input:\n%s", trace)
	}
}

func TestTraceFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pushdown.pda")
	defer teardown()
	//
	d := makeExprDPDA(t)
	ok, trace := d.AcceptsInput([]string{"id"})
	if !ok {
		t.Fatalf("valid input not accepted:\n%s", trace)
	}
	for _, part := range []string{
		"δ(q0, ε, Z0)", // bootstrap move
		"MATCH_CONSUME",
		"EXPAND_NO_CONSUME",
		"la=$",
		"input ACCEPTED",
	} {
		if !strings.Contains(trace, part) {
			t.Errorf("expected trace to contain %q:\n%s", part, trace)
		}
	}
}

func TestEmptyInputEpsilonGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pushdown.pda")
	defer teardown()
	//
	// S → a S  |  ε   accepts the empty input
	b := ll1.NewGrammarBuilder("Star")
	b.LHS("S").T("a").N("S").End()
	b.LHS("S").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar builder returned error: %v", err)
	}
	ga, err := ll1.Analysis(g)
	if err != nil {
		t.Fatalf("grammar analysis returned error: %v", err)
	}
	table, err := ll1.BuildTable(ga)
	if err != nil {
		t.Fatalf("table construction returned error: %v", err)
	}
	d, err := Synthesize(table)
	if err != nil {
		t.Fatalf("DPDA synthesis returned error: %v", err)
	}
	if ok, trace := d.AcceptsInput(nil); !ok {
		t.Errorf("expected the empty input to be accepted:\n%s", trace)
	}
	if ok, trace := d.AcceptsInput([]string{"a", "a", "a"}); !ok {
		t.Errorf("expected 'a a a' to be accepted:\n%s", trace)
	}
	if ok, _ := d.AcceptsInput([]string{"a", "b"}); ok {
		t.Errorf("expected 'a b' to be rejected")
	}
}

func TestStepBudgetOnEpsilonCycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pushdown.pda")
	defer teardown()
	//
	// hand-build a looping automaton: (q, ε, A) → (q, [A]) never makes
	// progress; the executor has to halt and reject
	A := pushdown.NonTerminal("A")
	d := &Automaton{
		Name:       "loop",
		states:     []State{StateInit, StateRun, StateAccept},
		inputAlpha: ll1.NewSymbolSet(),
		stackAlpha: ll1.NewSymbolSet(A, pushdown.Bottom("Z0")),
		bottom:     pushdown.Bottom("Z0"),
		start:      StateInit,
		accepting:  map[State]bool{StateAccept: true},
		delta: map[TransKey]TransValue{
			{State: StateInit, Input: pushdown.Epsilon, Top: pushdown.Bottom("Z0")}: {
				Next: StateRun,
				Push: []pushdown.Symbol{A, pushdown.Bottom("Z0")},
			},
			{State: StateRun, Input: pushdown.Epsilon, Top: A}: {
				Next: StateRun,
				Push: []pushdown.Symbol{A},
			},
		},
	}
	if err := d.validate(); err != nil {
		t.Fatalf("automaton validation returned error: %v", err)
	}
	ok, trace := d.AcceptsInput(nil)
	if ok {
		t.Fatalf("expected the looping automaton to reject")
	}
	if !strings.Contains(trace, "ε-cycle") {
		t.Errorf("expected the trace to report the ε-cycle:\n%s", trace)
	}
}

// The step count for valid input stays linear — the budget is only a guard
// against broken tables.
func TestStepBudgetNotTriggeredOnValidInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pushdown.pda")
	defer teardown()
	//
	d := makeExprDPDA(t)
	input := []string{"id"}
	for i := 0; i < 40; i++ {
		input = append(input, "+", "id")
	}
	if ok, trace := d.AcceptsInput(input); !ok {
		t.Errorf("expected long valid input to be accepted:\n%s", trace)
	}
}
