// Package token defines Jack's closed lexical token vocabulary.
package token

import "github.com/kirkdrichardson/jackc/internal/source"

// Kind classifies a Token. Jack's lexical grammar is fixed and small, so
// this is a closed enumeration rather than the open, string-keyed scheme
// some ad hoc tokenizers use.
type Kind int

const (
	Invalid Kind = iota
	Keyword
	Symbol
	IntegerConstant
	StringConstant
	Identifier
	EOF
)

func (k Kind) String() string {
	switch k {
	case Keyword:
		return "keyword"
	case Symbol:
		return "symbol"
	case IntegerConstant:
		return "integerConstant"
	case StringConstant:
		return "stringConstant"
	case Identifier:
		return "identifier"
	case EOF:
		return "EOF"
	default:
		return "invalid"
	}
}

// Keywords is the closed set of 21 reserved Jack words.
var Keywords = map[string]bool{
	"class": true, "constructor": true, "function": true, "method": true,
	"field": true, "static": true, "var": true, "int": true, "char": true,
	"boolean": true, "void": true, "true": true, "false": true, "null": true,
	"this": true, "let": true, "do": true, "if": true, "else": true,
	"while": true, "return": true,
}

// Symbols is the closed set of single-character Jack symbols.
const Symbols = `(){}[].,;+-*/&|<>=~`

// Token is a single classified lexical atom. Text is the token's literal
// text (for StringConstant, the quotes are stripped; for IntegerConstant,
// the decimal digits).
type Token struct {
	Kind Kind
	Text string
	Span source.Span
}

// Int returns the integer value of an IntegerConstant token. Callers must
// only call this on a token whose Kind is IntegerConstant; calling a typed
// accessor on the wrong kind is an "accessor misuse" bug that should be
// unreachable from correct code, so this panics rather than returning an
// error.
func (t Token) Int() int {
	if t.Kind != IntegerConstant {
		panic("token: Int() called on non-IntegerConstant token " + t.Kind.String())
	}
	n := 0
	for _, c := range t.Text {
		n = n*10 + int(c-'0')
	}
	return n
}

// Is reports whether the token is a Symbol or Keyword with the given text.
// This is the common case when the engine checks for a specific terminal.
func (t Token) Is(text string) bool {
	return (t.Kind == Symbol || t.Kind == Keyword) && t.Text == text
}

// IsOneOf reports whether the token's text matches any of the given terminals.
func (t Token) IsOneOf(texts ...string) bool {
	for _, s := range texts {
		if t.Is(s) {
			return true
		}
	}
	return false
}
