/*
Package pdrepl/main provides an interactive command line tool for LL(1)
grammars. It loads a grammar from its textual format, computes FIRST- and
FOLLOW-sets and the predictive parse table, synthesizes the equivalent
deterministic pushdown automaton, and then parses input lines against it,
displaying accept/reject together with the automaton's step trace.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pushdown.repl'
func tracer() tracing.Trace {
	return tracing.Select("pushdown.repl")
}
