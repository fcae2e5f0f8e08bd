package lexer

import (
	"strings"

	"github.com/kirkdrichardson/jackc/internal/token"
)

// grammar collects the rune-classification predicates Jack's lexical
// grammar needs as a table of membership tests, instead of scattering
// range checks through the scanner.
type grammar struct{}

var jackGrammar = grammar{}

func (grammar) isSymbol(r rune) bool {
	return strings.ContainsRune(token.Symbols, r)
}

func (grammar) isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (grammar) isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func (g grammar) isIdentContinue(r rune) bool {
	return g.isIdentStart(r) || g.isDigit(r)
}

func (grammar) isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
