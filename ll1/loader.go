package ll1

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/npillmayer/pushdown"
)

// Grammar files are line-oriented text. Lines starting with '#' and blank
// lines are ignored. Two line shapes are recognized:
//
//    KEY = VALUE     directives: START, NON_TERMINALS, TERMINALS
//    LHS -> RHS      a production (LHS is a non-terminal; RHS is a list of
//                    alternatives 'α₁ | α₂ | …' with whitespace-separated
//                    symbols), or a terminal pattern (LHS is a terminal;
//                    RHS is a regex, optionally wrapped in /…/)
//
// Directives have to precede the rules which rely on them. An example:
//
//    START = E
//    NON_TERMINALS = E, E', T, T', F
//    TERMINALS = +, *, (, ), id
//
//    E  -> T E'
//    E' -> + T E' | eps
//    T  -> F T'
//    T' -> * F T' | eps
//    F  -> ( E ) | id
//    id -> /[a-z][a-z0-9]*/

var slashedPattern = regexp.MustCompile(`^/(.*)/$`)

// LoadGrammarFile loads a grammar from a file in the textual grammar format.
func LoadGrammarFile(path string, opts ...BuilderOption) (*Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		tracer().Errorf("cannot open grammar file: %v", err)
		return nil, err
	}
	defer f.Close()
	return LoadGrammar(path, f, opts...)
}

// LoadGrammar reads a grammar in the textual grammar format. The name is
// used for tracing purposes only. It fails with a MalformedGrammarError if
// one of the directives START, NON_TERMINALS or TERMINALS is missing, or if
// a terminal pattern does not compile. Unknown line shapes and rules whose
// LHS is not covered by the directives are reported as warnings to the trace
// and skipped. RHS symbols not covered by the directives are reported as
// warnings, too, but are kept in the production as terminals; Analysis then
// rejects the grammar.
func LoadGrammar(name string, input io.Reader, opts ...BuilderOption) (*Grammar, error) {
	g := &Grammar{
		Name:     name,
		epsilon:  DefaultEpsilonMarker,
		prods:    make(map[string][]Production),
		patterns: make(map[string]string),
	}
	gb := &GrammarBuilder{g: g} // options are shared with the builder API
	for _, opt := range opts {
		opt(gb)
	}
	lines := bufio.NewScanner(input)
	lineno := 0
	for lines.Scan() {
		lineno++
		line := strings.TrimSpace(lines.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var err error
		switch {
		case strings.Contains(line, "->"):
			err = g.loadRule(line, lineno)
		case strings.Contains(line, "="):
			g.loadDirective(line, lineno)
		default:
			tracer().Infof("warning: the format of line %d is unknown, skipped", lineno)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := lines.Err(); err != nil {
		return nil, err
	}
	if err := g.checkLoaded(); err != nil {
		tracer().Errorf("grammar loading failed: %v", err)
		return nil, err
	}
	tracer().Infof("loaded grammar %q: %d non-terminals, %d terminals, %d patterns",
		g.Name, len(g.nonterms), len(g.terms), len(g.patterns))
	return g, nil
}

func (g *Grammar) loadDirective(line string, lineno int) {
	parts := strings.SplitN(line, "=", 2)
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	switch key {
	case "START":
		g.start = pushdown.NonTerminal(value)
	case "NON_TERMINALS":
		for _, name := range splitList(value) {
			g.nonterms = append(g.nonterms, pushdown.NonTerminal(name))
		}
	case "TERMINALS":
		for _, name := range splitList(value) {
			g.terms = append(g.terms, pushdown.Terminal(name))
		}
	default:
		tracer().Infof("warning: unknown directive '%s' on line %d, skipped", key, lineno)
	}
}

// loadRule handles 'LHS -> RHS' lines: productions for non-terminal LHS,
// patterns for terminal LHS.
func (g *Grammar) loadRule(line string, lineno int) error {
	parts := strings.SplitN(line, "->", 2)
	lhs := strings.TrimSpace(parts[0])
	rhs := strings.TrimSpace(parts[1])
	switch {
	case g.IsNonTerm(lhs):
		for _, alt := range strings.Split(rhs, "|") {
			if fields := strings.Fields(alt); len(fields) > 0 {
				g.prods[lhs] = append(g.prods[lhs], g.symbols(fields, lineno))
			}
		}
	case g.IsTerminal(lhs):
		pattern := rhs
		if m := slashedPattern.FindStringSubmatch(rhs); m != nil {
			pattern = m[1]
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return &MalformedGrammarError{
				Reason: fmt.Sprintf("pattern for terminal '%s' (line %d) does not compile: %v",
					lhs, lineno, err),
			}
		}
		g.patterns[lhs] = pattern
	default:
		tracer().Infof("warning: symbol '%s' on line %d is neither a terminal nor a non-terminal",
			lhs, lineno)
	}
	return nil
}

// symbols maps the whitespace-separated fields of a production alternative
// to grammar symbols. A pure-ε alternative is normalized to the empty
// production.
func (g *Grammar) symbols(fields []string, lineno int) Production {
	var alpha Production
	for _, field := range fields {
		switch {
		case field == g.epsilon:
			// ε is transparent; a pure-ε RHS ends up empty
		case g.IsTerminal(field):
			alpha = append(alpha, pushdown.Terminal(field))
		case g.IsNonTerm(field):
			alpha = append(alpha, pushdown.NonTerminal(field))
		default:
			tracer().Infof("warning: RHS symbol '%s' on line %d is undefined", field, lineno)
			alpha = append(alpha, pushdown.Terminal(field))
		}
	}
	return alpha
}

func (g *Grammar) checkLoaded() error {
	if g.start.Name == "" {
		return &MalformedGrammarError{Reason: "the start symbol isn't defined in the grammar input"}
	}
	if len(g.nonterms) == 0 {
		return &MalformedGrammarError{Reason: "the non-terminal symbols aren't defined in the grammar input"}
	}
	if len(g.terms) == 0 {
		return &MalformedGrammarError{Reason: "the terminal symbols aren't defined in the grammar input"}
	}
	for _, t := range g.terms {
		if t.Name == "$" {
			return &MalformedGrammarError{Reason: "terminal '$' collides with the end-of-input marker"}
		}
	}
	if len(g.prods) == 0 {
		tracer().Infof("warning: no productions defined in the grammar input")
	}
	return nil
}

func splitList(value string) []string {
	var names []string
	for _, field := range strings.Split(value, ",") {
		if name := strings.TrimSpace(field); name != "" {
			names = append(names, name)
		}
	}
	return names
}
