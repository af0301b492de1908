package ll1

import (
	"fmt"
	"io"

	"github.com/npillmayer/pushdown"
)

// ParseTable is the LL(1) predictive parse table: a mapping from
// (non-terminal, lookahead) to a unique production, where lookahead is a
// terminal or the end marker. Built once with BuildTable, read-only
// thereafter.
type ParseTable struct {
	g     *Grammar
	cells map[tableCell]Production
}

type tableCell struct {
	nt string          // name of the non-terminal (row)
	la pushdown.Symbol // lookahead: terminal or end marker (column)
}

// BuildTable constructs the predictive parse table from a grammar analysis.
//
// For each production A → α: every terminal in FIRST(α)∖{ε} selects α; if
// ε ∈ FIRST(α), additionally every symbol in FOLLOW(A) selects α (FOLLOW
// may include the end marker). A cell receiving two distinct productions is
// an LL(1) conflict and aborts table construction.
func BuildTable(ga *LL1Analysis) (*ParseTable, error) {
	table := &ParseTable{
		g:     ga.Grammar(),
		cells: make(map[tableCell]Production),
	}
	var conflict error
	ga.Grammar().EachProduction(func(A pushdown.Symbol, alpha Production) {
		if conflict != nil {
			return
		}
		fseq := ga.FirstOfSeq(alpha)
		for _, t := range fseq.Values() {
			if t == pushdown.Epsilon {
				continue
			}
			if conflict = table.set(A, t, alpha); conflict != nil {
				return
			}
		}
		if fseq.Contains(pushdown.Epsilon) {
			for _, t := range ga.Follow(A).Values() {
				if conflict = table.set(A, t, alpha); conflict != nil {
					return
				}
			}
		}
	})
	if conflict != nil {
		tracer().Errorf("table construction: %v", conflict)
		return nil, conflict
	}
	tracer().Infof("parse table for %q has %d entries", ga.Grammar().Name, len(table.cells))
	return table, nil
}

// set enters α at table[A,t], detecting conflicts. Entering the identical
// production twice is harmless (FIRST- and FOLLOW-derived entries may
// legitimately coincide).
func (pt *ParseTable) set(A pushdown.Symbol, t pushdown.Symbol, alpha Production) error {
	cell := tableCell{nt: A.Name, la: t}
	if existing, ok := pt.cells[cell]; ok {
		if existing.eq(alpha) {
			return nil
		}
		return &LL1ConflictError{
			NonTerm:   A,
			Lookahead: t,
			Existing:  existing,
			Incoming:  alpha,
		}
	}
	pt.cells[cell] = alpha
	tracer().Debugf("table[%s,%s] = %s", A, t, alpha)
	return nil
}

// Grammar returns the grammar this table was built for.
func (pt *ParseTable) Grammar() *Grammar {
	return pt.g
}

// Production returns the unique production at table[A,la], if any. la is a
// terminal or the end marker.
func (pt *ParseTable) Production(A pushdown.Symbol, la pushdown.Symbol) (Production, bool) {
	alpha, ok := pt.cells[tableCell{nt: A.Name, la: la}]
	return alpha, ok
}

// Size returns the number of filled cells.
func (pt *ParseTable) Size() int {
	return len(pt.cells)
}

// EachEntry iterates over all filled cells, rows in non-terminal declaration
// order, columns in terminal declaration order with the end marker last.
func (pt *ParseTable) EachEntry(proc func(A, la pushdown.Symbol, alpha Production)) {
	columns := append(pt.g.Terminals(), pushdown.EndMarker)
	for _, A := range pt.g.NonTerminals() {
		for _, la := range columns {
			if alpha, ok := pt.Production(A, la); ok {
				proc(A, la, alpha)
			}
		}
	}
}

// TableAsHTML exports the parse table in HTML-format, for inspection in a
// browser.
func TableAsHTML(pt *ParseTable, w io.Writer) {
	columns := append(pt.g.Terminals(), pushdown.EndMarker)
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("LL(1) parse table for %q, size = %d<p>", pt.g.Name, pt.Size()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, la := range columns {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", la))
	}
	io.WriteString(w, "</tr>\n")
	for _, A := range pt.g.NonTerminals() {
		io.WriteString(w, fmt.Sprintf("<tr><td>%s</td>\n", A))
		for _, la := range columns {
			io.WriteString(w, "<td>")
			if alpha, ok := pt.Production(A, la); ok {
				io.WriteString(w, fmt.Sprintf("%s → %s", A, alpha))
			} else {
				io.WriteString(w, "&nbsp;")
			}
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}
