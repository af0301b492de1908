/*
Package pda synthesizes a deterministic pushdown automaton (DPDA) from an
LL(1) parse table and executes it as a predictive parser.

The synthesized automaton has the canonical three-state shape

    (q0, ε, Z0) → (q, [S Z0])        bootstrap: push the start symbol
    (q,  t, A)  → (q, α)             expand by table rule A → α on lookahead t
    (q,  t, t)  → (q, [])            match a terminal and consume it
    (q,  ε, Z0) → (f, [])            accept once the input is exhausted

with stack alphabet = terminals ∪ non-terminals ∪ {Z0}. Push sequences are
stored in RHS order; the executor pushes them backwards, so the leftmost
symbol of a production ends up on top of the stack.

Clients run the automaton with AcceptsInput, which returns an accept flag
together with a step-by-step trace, and reconstruct a parse tree for
accepted input with ParseTree.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pda

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/pushdown"
	"github.com/npillmayer/pushdown/ll1"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pushdown.pda'.
func tracer() tracing.Trace {
	return tracing.Select("pushdown.pda")
}

// State is a control state of the automaton. The canonical LL(1) automaton
// has exactly three.
type State int8

const (
	StateInit   State = iota // q0, the start state
	StateRun                 // q, the working state
	StateAccept              // f, the accept state
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "q0"
	case StateRun:
		return "q"
	case StateAccept:
		return "f"
	}
	return fmt.Sprintf("state(%d)", int8(s))
}

// TransKey is a key of the transition map: current state, input symbol and
// stack top. The input symbol is a terminal, the end marker, or ε for moves
// which do not look at the input.
type TransKey struct {
	State State
	Input pushdown.Symbol
	Top   pushdown.Symbol
}

// TransValue is the move for a TransKey: the successor state and the
// sequence of stack symbols to push, in RHS order.
type TransValue struct {
	Next State
	Push []pushdown.Symbol
}

// Automaton is a deterministic pushdown automaton: the usual seven-tuple of
// states, input alphabet, stack alphabet, initial stack symbol, start
// state, accept states and transition map. Create one with Synthesize;
// after that an Automaton is read-only and may be run concurrently, as
// every run allocates its own configuration.
type Automaton struct {
	Name       string // identifies the grammar the automaton was built from
	states     []State
	inputAlpha *ll1.SymbolSet
	stackAlpha *ll1.SymbolSet
	bottom     pushdown.Symbol // initial stack symbol Z0
	start      State
	accepting  map[State]bool
	delta      map[TransKey]TransValue
}

// Bottom returns the initial stack symbol Z0.
func (d *Automaton) Bottom() pushdown.Symbol {
	return d.bottom
}

// Start returns the start state.
func (d *Automaton) Start() State {
	return d.start
}

// IsAccepting checks whether s is an accept state.
func (d *Automaton) IsAccepting(s State) bool {
	return d.accepting[s]
}

// Transition returns the move for (state, input, top), if defined.
func (d *Automaton) Transition(state State, input, top pushdown.Symbol) (TransValue, bool) {
	tv, ok := d.delta[TransKey{State: state, Input: input, Top: top}]
	return tv, ok
}

// EachTransition iterates over all transitions of the automaton in
// unspecified order.
func (d *Automaton) EachTransition(proc func(key TransKey, value TransValue)) {
	for key, value := range d.delta {
		proc(key, value)
	}
}

func (d *Automaton) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "DPDA for %q\n", d.Name)
	fmt.Fprintf(&b, "states: %v, start: %s, accepting: %v\n", d.states, d.start, acceptList(d.accepting))
	fmt.Fprintf(&b, "input alphabet: %v\n", d.inputAlpha)
	fmt.Fprintf(&b, "stack alphabet: %v\n", d.stackAlpha)
	fmt.Fprintf(&b, "initial stack symbol: %s\n", d.bottom)
	for key, value := range d.delta {
		fmt.Fprintf(&b, "  δ(%s, %s, %s) → (%s, %s)\n",
			key.State, key.Input, key.Top, value.Next, pushString(value.Push))
	}
	return b.String()
}

// Dump is a debugging helper, listing the automaton to the trace.
func (d *Automaton) Dump() {
	tracer().Debugf("DPDA for %q: %d transitions", d.Name, len(d.delta))
	tracer().Debugf("input alphabet %v, stack alphabet %v, Z0 = %s",
		d.inputAlpha, d.stackAlpha, d.bottom)
	for key, value := range d.delta {
		tracer().Debugf("  δ(%s, %s, %s) → (%s, %s)",
			key.State, key.Input, key.Top, value.Next, pushString(value.Push))
	}
}

// validate checks the automaton for structural consistency: states, accept
// states, and every transition key and value have to be drawn from the
// declared sets.
func (d *Automaton) validate() error {
	if !d.hasState(d.start) {
		return &ll1.MalformedGrammarError{
			Reason: fmt.Sprintf("DPDA start state %s is not a state of the automaton", d.start),
		}
	}
	for s := range d.accepting {
		if !d.hasState(s) {
			return &ll1.MalformedGrammarError{
				Reason: fmt.Sprintf("DPDA accept state %s is not a state of the automaton", s),
			}
		}
	}
	for key, value := range d.delta {
		if !d.hasState(key.State) || !d.hasState(value.Next) {
			return &ll1.MalformedGrammarError{
				Reason: fmt.Sprintf("transition δ(%s, %s, %s) uses an undeclared state",
					key.State, key.Input, key.Top),
			}
		}
		switch key.Input.Kind {
		case pushdown.EpsilonKind, pushdown.EndMarkerKind:
			// moves not consuming a terminal
		default:
			if !d.inputAlpha.Contains(key.Input) {
				return &ll1.MalformedGrammarError{
					Reason: fmt.Sprintf("transition input symbol '%s' is not in the input alphabet", key.Input),
				}
			}
		}
		if !d.stackAlpha.Contains(key.Top) {
			return &ll1.MalformedGrammarError{
				Reason: fmt.Sprintf("transition stack symbol '%s' is not in the stack alphabet", key.Top),
			}
		}
		for _, sym := range value.Push {
			if sym == pushdown.Epsilon {
				continue // tolerated in push sequences, filtered during execution
			}
			if !d.stackAlpha.Contains(sym) {
				return &ll1.MalformedGrammarError{
					Reason: fmt.Sprintf("push symbol '%s' is not in the stack alphabet", sym),
				}
			}
		}
	}
	return d.checkDeterminism()
}

// checkDeterminism verifies the determinism invariant: no (state, stack-top)
// pair may have both an ε-move and an input-consuming move.
func (d *Automaton) checkDeterminism() error {
	type pair struct {
		state State
		top   pushdown.Symbol
	}
	epsmoves := make(map[pair]bool)
	inputmoves := make(map[pair]bool)
	for key := range d.delta {
		p := pair{state: key.State, top: key.Top}
		if key.Input.Kind == pushdown.EpsilonKind {
			epsmoves[p] = true
		} else {
			inputmoves[p] = true
		}
	}
	for p := range epsmoves {
		if inputmoves[p] {
			return &DeterminismError{State: p.state, Top: p.top}
		}
	}
	return nil
}

func (d *Automaton) hasState(s State) bool {
	for _, state := range d.states {
		if state == s {
			return true
		}
	}
	return false
}

// DeterminismError signals a violated determinism invariant: some
// (state, stack-top) pair has both an ε-move and an input-consuming move.
type DeterminismError struct {
	State State
	Top   pushdown.Symbol
}

func (e *DeterminismError) Error() string {
	return fmt.Sprintf("DPDA is non-deterministic: both ε-move and input move defined for (%s, %s)",
		e.State, e.Top)
}

// --- Helpers ----------------------------------------------------------

func pushString(push []pushdown.Symbol) string {
	var b bytes.Buffer
	b.WriteString("[")
	for i, sym := range push {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(sym.String())
	}
	b.WriteString("]")
	return b.String()
}

func acceptList(accepting map[State]bool) []State {
	states := make([]State, 0, len(accepting))
	for s := range accepting {
		states = append(states, s)
	}
	return states
}
