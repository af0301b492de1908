package scanner

import (
	"strings"

	"github.com/npillmayer/pushdown"
	"github.com/npillmayer/pushdown/ll1"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner for the
// terminal patterns of a grammar.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	names []string // token type id → terminal name
}

// FromGrammar creates a lexmachine adapter from the terminal declarations
// of a grammar. Every terminal contributes one pattern, in declaration
// order; a terminal without a declared pattern matches its own name
// literally. Whitespace between tokens is skipped.
//
// FromGrammar will return an error if compiling the DFA failed.
func FromGrammar(g *ll1.Grammar) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	for _, t := range g.Terminals() {
		id := len(adapter.names)
		adapter.names = append(adapter.names, t.Name)
		pattern := g.Pattern(t)
		if pattern == "" {
			pattern = literalPattern(t.Name)
		}
		adapter.Lexer.Add([]byte(pattern), MakeToken(t.Name, id))
	}
	adapter.Lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement
// the Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, names: lm.names, Error: logError}, nil
}

// Tokenize scans a complete input string into the finite token sequence
// the DPDA executor consumes. Scanning errors abort tokenization.
func (lm *LMAdapter) Tokenize(input string) ([]pushdown.Token, error) {
	s, err := lm.Scanner(input)
	if err != nil {
		return nil, err
	}
	var scanErr error
	s.SetErrorHandler(func(e error) {
		scanErr = e
	})
	var tokens []pushdown.Token
	for token := s.NextToken(); !IsEOF(token); token = s.NextToken() {
		if scanErr != nil {
			return nil, scanErr
		}
		tokens = append(tokens, token)
	}
	if scanErr != nil {
		return nil, scanErr
	}
	tracer().Debugf("tokenized input into %d tokens", len(tokens))
	return tokens, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	names   []string
	Error   func(error)
}

var _ Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() pushdown.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		} else {
			return MakeDefaultToken(EOF, "", pushdown.Span{})
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return MakeDefaultToken(EOF, "", pushdown.Span{})
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	return MakeDefaultToken(
		lms.names[token.Type],
		string(token.Lexeme),
		pushdown.Span{uint64(token.StartColumn), uint64(token.EndColumn)},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// literalPattern escapes a terminal name into a pattern matching it
// literally.
func literalPattern(lit string) string {
	return "\\" + strings.Join(strings.Split(lit, ""), "\\")
}
