package lexer

import (
	"testing"

	"github.com/kirkdrichardson/jackc/internal/source"
	"github.com/kirkdrichardson/jackc/internal/token"
)

func allTokens(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New(source.New("test.jack", src))
	var out []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected lexical error: %v", err)
		}
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

func TestLexesKeywordsSymbolsIdentifiers(t *testing.T) {
	toks := allTokens(t, "class Foo { field int x; }")
	want := []struct {
		kind token.Kind
		text string
	}{
		{token.Keyword, "class"},
		{token.Identifier, "Foo"},
		{token.Symbol, "{"},
		{token.Keyword, "field"},
		{token.Keyword, "int"},
		{token.Identifier, "x"},
		{token.Symbol, ";"},
		{token.Symbol, "}"},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %#v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Errorf("token %d = %v %q, want %v %q", i, toks[i].Kind, toks[i].Text, w.kind, w.text)
		}
	}
}

func TestIdentifierStartingWithKeywordIsNotMisclassified(t *testing.T) {
	toks := allTokens(t, "ifoo")
	if len(toks) != 1 || toks[0].Kind != token.Identifier || toks[0].Text != "ifoo" {
		t.Fatalf("got %#v, want one Identifier token \"ifoo\"", toks)
	}
}

func TestSkipsLineAndBlockComments(t *testing.T) {
	toks := allTokens(t, "// a comment\nlet /* inline */ x = 1; // trailing\n")
	want := []string{"let", "x", "=", "1", ";"}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens %#v, want %d", len(toks), toks, len(want))
	}
	for i, w := range want {
		if toks[i].Text != w {
			t.Errorf("token %d = %q, want %q", i, toks[i].Text, w)
		}
	}
}

func TestStringConstantStripsQuotes(t *testing.T) {
	toks := allTokens(t, `"hello world"`)
	if len(toks) != 1 || toks[0].Kind != token.StringConstant || toks[0].Text != "hello world" {
		t.Fatalf("got %#v", toks)
	}
}

func TestUnterminatedStringIsLexicalError(t *testing.T) {
	l := New(source.New("test.jack", `"unterminated`))
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected a lexical error for an unterminated string constant")
	}
}

func TestUnterminatedBlockCommentIsLexicalError(t *testing.T) {
	l := New(source.New("test.jack", "/* never closes"))
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected a lexical error for an unterminated block comment")
	}
}

func TestIntegerOutOfRangeIsLexicalError(t *testing.T) {
	l := New(source.New("test.jack", "32768"))
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected a lexical error for an out-of-range integer constant")
	}
}

func TestIntegerAtUpperBoundIsFine(t *testing.T) {
	l := New(source.New("test.jack", "32767"))
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Kind != token.IntegerConstant || tok.Int() != 32767 {
		t.Fatalf("got %#v", tok)
	}
}

func TestUnexpectedCharacterIsLexicalError(t *testing.T) {
	l := New(source.New("test.jack", "@"))
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected a lexical error for an unrecognized character")
	}
}

func TestSpanTracksLineAndColumn(t *testing.T) {
	l := New(source.New("test.jack", "class\n  Foo"))
	_, err := l.Next() // "class"
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	foo, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if foo.Span.Start.Line != 2 || foo.Span.Start.Col != 3 {
		t.Errorf("Foo span start = %+v, want line 2 col 3", foo.Span.Start)
	}
}
