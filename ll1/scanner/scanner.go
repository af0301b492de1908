/*
Package scanner tokenizes input strings against the terminal patterns of a
grammar. It is a lexmachine adapter: the patterns declared for the
grammar's terminals are compiled into a single DFA, matching longest-first,
with the declaration order of the terminals breaking ties.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"github.com/npillmayer/pushdown"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pushdown.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("pushdown.scanner")
}

// EOF is the terminal name reported at end of input.
const EOF = "#eof"

// IsEOF checks a token for the end of input.
func IsEOF(token pushdown.Token) bool {
	return token.Terminal() == EOF
}

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() pushdown.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, produced by the
// lexmachine-backed grammar scanner.
type DefaultToken struct {
	terminal string
	lexeme   string
	Val      interface{}
	span     pushdown.Span
}

// MakeDefaultToken wraps a (terminal, lexeme, span) triple into a token.
func MakeDefaultToken(terminal string, lexeme string, span pushdown.Span) DefaultToken {
	return DefaultToken{
		terminal: terminal,
		lexeme:   lexeme,
		span:     span,
	}
}

func (t DefaultToken) Terminal() string {
	return t.terminal
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Span() pushdown.Span {
	return t.span
}

var _ pushdown.Token = DefaultToken{}
