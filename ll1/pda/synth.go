package pda

import (
	"github.com/npillmayer/pushdown"
	"github.com/npillmayer/pushdown/ll1"
)

// Option configures the synthesis of an automaton.
type Option func(d *Automaton)

// InitialStackSymbol sets the name of the initial stack symbol Z0. The
// symbol is of its own kind and therefore always distinct from grammar
// symbols, whatever its name. Defaults to "Z0".
func InitialStackSymbol(name string) Option {
	return func(d *Automaton) {
		d.bottom = pushdown.Bottom(name)
	}
}

// Synthesize emits the canonical three-state DPDA simulating the predictive
// parser for a parse table: a bootstrap move pushing the start symbol, one
// expand move per table cell, one match-and-consume move per terminal, and
// an accept move on the exposed initial stack symbol. The automaton is
// validated, including its determinism invariant, before it is returned.
func Synthesize(table *ll1.ParseTable, opts ...Option) (*Automaton, error) {
	g := table.Grammar()
	d := &Automaton{
		Name:      g.Name,
		states:    []State{StateInit, StateRun, StateAccept},
		bottom:    pushdown.Bottom("Z0"),
		start:     StateInit,
		accepting: map[State]bool{StateAccept: true},
		delta:     make(map[TransKey]TransValue),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.inputAlpha = ll1.NewSymbolSet(g.Terminals()...)
	d.stackAlpha = ll1.NewSymbolSet(g.Terminals()...)
	for _, A := range g.NonTerminals() {
		d.stackAlpha.Add(A)
	}
	d.stackAlpha.Add(d.bottom)
	//
	// bootstrap: replace Z0 by [start Z0]
	d.delta[TransKey{State: StateInit, Input: pushdown.Epsilon, Top: d.bottom}] = TransValue{
		Next: StateRun,
		Push: []pushdown.Symbol{g.Start(), d.bottom},
	}
	// one expand move per table cell; an ε-production pushes nothing
	table.EachEntry(func(A, la pushdown.Symbol, alpha ll1.Production) {
		d.delta[TransKey{State: StateRun, Input: la, Top: A}] = TransValue{
			Next: StateRun,
			Push: alpha,
		}
	})
	// match-and-consume for every terminal
	for _, t := range g.Terminals() {
		d.delta[TransKey{State: StateRun, Input: t, Top: t}] = TransValue{
			Next: StateRun,
		}
	}
	// accept on exposed Z0, once the input is exhausted
	d.delta[TransKey{State: StateRun, Input: pushdown.Epsilon, Top: d.bottom}] = TransValue{
		Next: StateAccept,
	}
	//
	if err := d.validate(); err != nil {
		tracer().Errorf("DPDA synthesis: %v", err)
		return nil, err
	}
	tracer().Infof("synthesized DPDA for %q: %d transitions", d.Name, len(d.delta))
	d.Dump()
	return d, nil
}
