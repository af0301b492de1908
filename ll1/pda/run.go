package pda

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/pushdown"
	"github.com/npillmayer/schuko/gconf"
)

// stepClass classifies the move an executor step performs.
type stepClass int8

const (
	noTransition     stepClass = iota // halt, input rejected
	matchConsume                      // terminal on top matches the lookahead
	expandNoConsume                   // table-driven rule application
	epsilonNoConsume                  // ε-move, independent of the input
)

func (c stepClass) String() string {
	switch c {
	case matchConsume:
		return "MATCH_CONSUME"
	case expandNoConsume:
		return "EXPAND_NO_CONSUME"
	case epsilonNoConsume:
		return "EPSILON_NO_CONSUME"
	}
	return "NO_TRANSITION"
}

// configuration is the runtime state of an automaton run: control state,
// stack (top at the high-index end), and the input position. Every run
// allocates its own configuration, which is why a shared Automaton may be
// executed concurrently.
type configuration struct {
	State State
	Stack []pushdown.Symbol
	Index int
}

// StepBudget returns the maximum number of steps the executor spends on an
// input of n tokens. A correct LL(1) automaton stays well below this bound;
// the cap guards against malformed tables admitting infinite ε-cycles.
func StepBudget(n int) int {
	return 8*n + 35
}

// selectTransition picks the — at most one — applicable move for a
// configuration. The lookahead la is the current terminal, or the end
// marker once the input is exhausted. Precedence: input-consuming moves on
// the lookahead, then end-marker moves, then ε-moves. The third return
// value is the input symbol of the matched transition key, for the trace.
func (d *Automaton) selectTransition(state State, la pushdown.Symbol, top pushdown.Symbol) (stepClass, TransValue, pushdown.Symbol) {
	if la.IsTerminal() {
		if tv, ok := d.delta[TransKey{State: state, Input: la, Top: top}]; ok {
			if len(tv.Push) == 0 && top == la {
				return matchConsume, tv, la
			}
			return expandNoConsume, tv, la
		}
	} else if la.Kind == pushdown.EndMarkerKind {
		if tv, ok := d.delta[TransKey{State: state, Input: pushdown.EndMarker, Top: top}]; ok {
			return expandNoConsume, tv, pushdown.EndMarker
		}
	}
	if tv, ok := d.delta[TransKey{State: state, Input: pushdown.Epsilon, Top: top}]; ok {
		return epsilonNoConsume, tv, pushdown.Epsilon
	}
	return noTransition, TransValue{}, pushdown.Epsilon
}

// AcceptsInput runs the automaton against a token sequence, given as
// terminal names. It returns whether the input was accepted, together with
// a human-readable trace enumerating every step.
//
// Input is accepted iff all tokens are consumed, the run ends in an accept
// state, and the stack is empty — all three jointly. A rejected input never
// produces an error; the trace ends with the reasons for rejection.
func (d *Automaton) AcceptsInput(tokens []string) (bool, string) {
	var logs bytes.Buffer
	state := d.start
	stack := []pushdown.Symbol{d.bottom}
	i, n := 0, len(tokens)
	budget := StepBudget(n)
	overrun, cycle := false, false
	seen := make(map[string]bool) // configurations visited since the last consume
	fmt.Fprintf(&logs, "input tokens: [%s]\n", strings.Join(tokens, " "))
	for step := 1; ; step++ {
		if step > budget {
			overrun = true
			fmt.Fprintf(&logs, "     halting: step budget of %d steps exceeded\n", budget)
			stepOverrun(fmt.Sprintf("step budget of %d steps exceeded", budget))
			break
		}
		la := pushdown.EndMarker
		if i < n {
			la = pushdown.Terminal(tokens[i])
		}
		fmt.Fprintf(&logs, "%3d. state=%s consumed=%q remaining=%q stack=%s la=%s\n",
			step, state, strings.Join(tokens[:i], " "), strings.Join(tokens[i:], " "),
			stackString(stack), la)
		if len(stack) == 0 {
			logs.WriteString("     halting: stack is empty\n")
			break
		}
		top := stack[len(stack)-1]
		class, tv, x := d.selectTransition(state, la, top)
		if class == noTransition {
			fmt.Fprintf(&logs, "     halting: no transition from (%s, %s) with stack top %s\n",
				state, la, top)
			break
		}
		fmt.Fprintf(&logs, "     %s: δ(%s, %s, %s) → (%s, %s)\n",
			class, state, x, top, tv.Next, pushString(tv.Push))
		stack = stack[:len(stack)-1]
		for j := len(tv.Push) - 1; j >= 0; j-- {
			if tv.Push[j] == pushdown.Epsilon {
				continue
			}
			stack = append(stack, tv.Push[j])
		}
		state = tv.Next
		if class == matchConsume {
			i++
			seen = make(map[string]bool)
		} else {
			h := configHash(configuration{State: state, Stack: stack, Index: i})
			if seen[h] {
				cycle = true
				logs.WriteString("     halting: configuration repeats without consuming input (ε-cycle)\n")
				stepOverrun("configuration repeats without consuming input")
				break
			}
			seen[h] = true
		}
		if i == n && d.accepting[state] && len(stack) == 0 {
			break
		}
	}
	accepted := i == n && d.accepting[state] && len(stack) == 0
	logs.WriteString("==== parsing finished ====\n")
	fmt.Fprintf(&logs, "final state %s, stack %s, tokens consumed %d/%d\n",
		state, stackString(stack), i, n)
	if accepted {
		logs.WriteString("input ACCEPTED\n")
		tracer().Infof("DPDA for %q accepted %d tokens", d.Name, n)
		return true, logs.String()
	}
	var reasons []string
	if overrun {
		reasons = append(reasons, fmt.Sprintf("step budget of %d steps exceeded", budget))
	}
	if cycle {
		reasons = append(reasons, "stuck in an ε-cycle")
	}
	if i != n {
		reasons = append(reasons, fmt.Sprintf("not all input tokens were consumed (remaining: %s)",
			strings.Join(tokens[i:], " ")))
	}
	if !d.accepting[state] {
		reasons = append(reasons, fmt.Sprintf("ended in non-accept state '%s'", state))
	}
	if len(stack) != 0 {
		reasons = append(reasons, fmt.Sprintf("stack is not empty at the end: %s", stackString(stack)))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "general parsing failure")
	}
	fmt.Fprintf(&logs, "input REJECTED\nreasons: %s\n", strings.Join(reasons, "; "))
	tracer().Infof("DPDA for %q rejected input: %s", d.Name, strings.Join(reasons, "; "))
	return false, logs.String()
}

// Accepts is a convenience wrapper running the automaton on scanned tokens.
func (d *Automaton) Accepts(tokens []pushdown.Token) (bool, string) {
	return d.AcceptsInput(pushdown.TerminalNames(tokens))
}

func configHash(c configuration) string {
	hash, err := structhash.Hash(c, 1)
	if err != nil { // no reason for this to happen, but the API demands it
		panic(err)
	}
	return hash
}

func stepOverrun(msg string) {
	tracer().Errorf(msg)
	if gconf.GetBool("panic-on-step-overrun") {
		panic(`DPDA executor exceeded its step budget.

Configuration flag panic-on-step-overrun is set to true. It is aimed at
helping to debug a parser table which admits infinite ε-cycles. However, if
this is a production environment and you did not expect this to panic,
please unset panic-on-step-overrun to its default (false).

` + msg)
	}
}

func stackString(stack []pushdown.Symbol) string {
	var b bytes.Buffer
	b.WriteString("[")
	for i, sym := range stack {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(sym.String())
	}
	b.WriteString("]")
	return b.String()
}
