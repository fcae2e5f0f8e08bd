// Package lexer turns Jack source text into a stream of classified tokens,
// skipping comments and whitespace along the way.
package lexer

import (
	"strings"

	"github.com/kirkdrichardson/jackc/internal/diagnostics"
	"github.com/kirkdrichardson/jackc/internal/source"
	"github.com/kirkdrichardson/jackc/internal/token"
)

// Lexer is the Jack tokenizer. The engine drives it one token at a time
// through Next and its own e.cur/advance state; the lexer itself needs no
// lookahead beyond the single token it's currently producing.
type Lexer struct {
	file *source.File
	scan *scanner
}

// New constructs a Lexer over a source file.
func New(file *source.File) *Lexer {
	return &Lexer{file: file, scan: newScanner(file)}
}

// Next returns the next token, advancing the lexer past it.
func (l *Lexer) Next() (token.Token, *diagnostics.Diagnostic) {
	return l.readToken()
}

// readToken skips comments/whitespace then recognizes exactly one token,
// per the recognition order: symbol, integer, keyword, string,
// identifier, else lexical error.
func (l *Lexer) readToken() (token.Token, *diagnostics.Diagnostic) {
	if err := l.skipTrivia(); err != nil {
		return token.Token{}, err
	}

	r, pos, ok := l.scan.peek()
	if !ok {
		return token.Token{Kind: token.EOF, Span: source.Span{Start: pos, End: pos}}, nil
	}

	switch {
	case r == '"':
		return l.lexString()
	case jackGrammar.isSymbol(r):
		l.scan.next()
		return token.Token{Kind: token.Symbol, Text: string(r), Span: source.Span{Start: pos, End: pos}}, nil
	case jackGrammar.isDigit(r):
		return l.lexInteger()
	case jackGrammar.isIdentStart(r):
		return l.lexWordOrKeyword()
	default:
		l.scan.next()
		return token.Token{}, diagnostics.LexicalError(l.file, source.Span{Start: pos, End: pos}, "unexpected character %q", r)
	}
}

// skipTrivia consumes block comments, line comments, and whitespace,
// repeating until none of the three matches at the cursor.
func (l *Lexer) skipTrivia() *diagnostics.Diagnostic {
	for {
		r, _, ok := l.scan.peek()
		if !ok {
			return nil
		}

		if jackGrammar.isWhitespace(r) {
			l.scan.next()
			continue
		}

		if r == '/' {
			next, hasNext := l.scan.peekAt(1)
			if hasNext && next == '/' {
				l.skipLineComment()
				continue
			}
			if hasNext && next == '*' {
				if err := l.skipBlockComment(); err != nil {
					return err
				}
				continue
			}
		}

		return nil
	}
}

func (l *Lexer) skipLineComment() {
	for {
		r, _, ok := l.scan.next()
		if !ok || r == '\n' {
			return
		}
	}
}

// skipBlockComment consumes a /* ... */ or /** ... */ run. Block comments
// don't nest; the first "*/" found closes the comment.
func (l *Lexer) skipBlockComment() *diagnostics.Diagnostic {
	_, startPos, _ := l.scan.next() // consume '/'
	l.scan.next()                   // consume '*'

	var prev rune
	for {
		r, pos, ok := l.scan.next()
		if !ok {
			return diagnostics.LexicalError(l.file, source.Span{Start: startPos, End: pos}, "unterminated block comment")
		}
		if prev == '*' && r == '/' {
			return nil
		}
		prev = r
	}
}

// lexInteger scans the longest run of decimal digits starting at the
// cursor. Jack guarantees 0..32767; values outside that range are a
// lexical error rather than being silently clamped or widened (see
// DESIGN.md's open-question decisions).
func (l *Lexer) lexInteger() (token.Token, *diagnostics.Diagnostic) {
	var b strings.Builder
	var span source.Span

	first := true
	for {
		r, pos, ok := l.scan.peek()
		if !ok || !jackGrammar.isDigit(r) {
			break
		}
		l.scan.next()
		if first {
			span.Start = pos
			first = false
		}
		span.End = pos
		b.WriteRune(r)
	}

	text := b.String()
	if len(text) > 5 || (len(text) == 5 && text > "32767") {
		return token.Token{}, diagnostics.LexicalError(l.file, span, "integer constant %s out of Jack's 0..32767 range", text)
	}

	return token.Token{Kind: token.IntegerConstant, Text: text, Span: span}, nil
}

// lexWordOrKeyword scans the longest run of identifier characters and then
// decides between Keyword and Identifier. The decision happens only after
// the whole run is consumed, so a reserved word that continues with more
// identifier characters (e.g. "ifoo") is never misclassified as the
// keyword followed by a separate identifier.
func (l *Lexer) lexWordOrKeyword() (token.Token, *diagnostics.Diagnostic) {
	var b strings.Builder
	var span source.Span

	first := true
	for {
		r, pos, ok := l.scan.peek()
		if !ok || !jackGrammar.isIdentContinue(r) {
			break
		}
		l.scan.next()
		if first {
			span.Start = pos
			first = false
		}
		span.End = pos
		b.WriteRune(r)
	}

	text := b.String()
	kind := token.Identifier
	if token.Keywords[text] {
		kind = token.Keyword
	}
	return token.Token{Kind: kind, Text: text, Span: span}, nil
}

// lexString scans a double-quoted run up to the next '"',
// excluding both quotes from the resulting token text. Jack's grammar has
// no escape sequences, so a backslash is just an ordinary character.
func (l *Lexer) lexString() (token.Token, *diagnostics.Diagnostic) {
	var b strings.Builder

	_, openPos, _ := l.scan.next() // consume opening '"'
	span := source.Span{Start: openPos, End: openPos}

	for {
		r, pos, ok := l.scan.peek()
		if !ok || r == '\n' {
			return token.Token{}, diagnostics.LexicalError(l.file, span, "unterminated string constant")
		}
		l.scan.next()
		span.End = pos
		if r == '"' {
			return token.Token{Kind: token.StringConstant, Text: b.String(), Span: span}, nil
		}
		b.WriteRune(r)
	}
}
