package token

import "testing"

func TestIsMatchesSymbolOrKeyword(t *testing.T) {
	sym := Token{Kind: Symbol, Text: "{"}
	if !sym.Is("{") {
		t.Error("symbol token should match its own text")
	}
	kw := Token{Kind: Keyword, Text: "class"}
	if !kw.Is("class") {
		t.Error("keyword token should match its own text")
	}
	str := Token{Kind: StringConstant, Text: "class"}
	if str.Is("class") {
		t.Error("a string constant with the same text as a keyword must not match Is")
	}
}

func TestIsOneOf(t *testing.T) {
	tok := Token{Kind: Keyword, Text: "while"}
	if !tok.IsOneOf("let", "if", "while", "do", "return") {
		t.Error("expected while to match one of the statement keywords")
	}
	if tok.IsOneOf("let", "if") {
		t.Error("did not expect while to match let/if")
	}
}

func TestIntPanicsOnWrongKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Int() on a non-IntegerConstant token to panic")
		}
	}()
	Token{Kind: Identifier, Text: "foo"}.Int()
}

func TestIntParsesDigits(t *testing.T) {
	tok := Token{Kind: IntegerConstant, Text: "32767"}
	if got := tok.Int(); got != 32767 {
		t.Errorf("Int() = %d, want 32767", got)
	}
}

func TestKeywordsClosedSet(t *testing.T) {
	if len(Keywords) != 21 {
		t.Errorf("len(Keywords) = %d, want 21", len(Keywords))
	}
	if !Keywords["class"] || !Keywords["void"] || !Keywords["return"] {
		t.Error("expected Keywords to include class/void/return")
	}
	if Keywords["Foo"] {
		t.Error("Foo must not be a keyword")
	}
}
