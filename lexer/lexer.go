// Package lexer converts program source text into a flat sequence of
// tokens, one source line at a time.
//
// The lexer never fails: anything that isn't a number, keyword, or
// operator becomes an Identifier, and any syntax error is left for the
// compiler to discover while parsing the token stream. The one thing it
// does report, as a side channel rather than an error, is a warning for
// integer literals outside the range LMC memory cells can hold.
package lexer

import (
	"strconv"
	"strings"

	"github.com/ahawley/lmcc/token"
)

// DefaultBound is the magnitude beyond which a numeric literal triggers
// a warning (LMC cells hold three decimal digits plus sign).
const DefaultBound = 999

// Lexer holds our object-state for one tokenization pass.
type Lexer struct {
	src      string
	bound    int
	warnings []string
}

// New creates a Lexer over the given source text, using the default
// out-of-range bound.
func New(src string) *Lexer {
	return &Lexer{src: src, bound: DefaultBound}
}

// NewWithBound creates a Lexer using a caller-supplied out-of-range
// bound, overriding the default (see the config package).
func NewWithBound(src string, bound int) *Lexer {
	return &Lexer{src: src, bound: bound}
}

// Lex tokenizes the whole source text and returns the flat token
// sequence, along with any out-of-range-literal warnings collected
// along the way. Lex never returns an error.
func (l *Lexer) Lex() ([]token.Token, []string) {
	var tokens []token.Token

	for i, line := range strings.Split(l.src, "\n") {
		// Ignore anything after a comment.
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}

		for _, lexeme := range strings.Fields(line) {
			tokens = append(tokens, l.classify(i, lexeme))
		}

		// Add newline after every line.
		tokens = append(tokens, token.Token{Line: i, Kind: token.NewLine})
	}

	return tokens, l.warnings
}

// classify turns a single whitespace-delimited lexeme into a token.
func (l *Lexer) classify(line int, lexeme string) token.Token {
	if n, err := strconv.Atoi(lexeme); err == nil {
		if n > l.bound || n < -l.bound {
			l.warnings = append(l.warnings, warning(n, line))
		}
		return token.Token{Line: line, Kind: token.Number, Literal: lexeme, Value: n}
	}

	if kind, ok := token.Lookup(lexeme); ok {
		return token.Token{Line: line, Kind: kind, Literal: lexeme}
	}

	// Anything else is an identifier.
	return token.Token{Line: line, Kind: token.Identifier, Literal: lexeme}
}

func warning(n, line int) string {
	return "Warning: number " + strconv.Itoa(n) + " on line " + strconv.Itoa(line) +
		" is outside the bounds of LMC numbers"
}
