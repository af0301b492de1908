package ll1

import (
	"fmt"

	"github.com/npillmayer/pushdown"
)

// MalformedGrammarError signals that a grammar violates one of its
// construction invariants: missing or foreign start symbol, overlapping
// alphabets, undefined RHS symbols, or an unusable terminal pattern.
type MalformedGrammarError struct {
	Reason string
}

func (e *MalformedGrammarError) Error() string {
	return "malformed grammar: " + e.Reason
}

// LL1ConflictError signals that a grammar is not LL(1): two distinct
// productions claim the same parse-table cell.
type LL1ConflictError struct {
	NonTerm   pushdown.Symbol
	Lookahead pushdown.Symbol
	Existing  Production
	Incoming  Production
}

func (e *LL1ConflictError) Error() string {
	return fmt.Sprintf("LL(1) conflict at table[%s,%s]: %s → %s vs %s → %s",
		e.NonTerm, e.Lookahead, e.NonTerm, e.Existing, e.NonTerm, e.Incoming)
}
