package source

import "testing"

func TestNewSplitsLines(t *testing.T) {
	f := New("Main.jack", "class Main {\n  function void main() {}\n}\n")
	if len(f.Lines) != 4 {
		t.Fatalf("got %d lines, want 4: %#v", len(f.Lines), f.Lines)
	}
	if f.Lines[0] != "class Main {" {
		t.Errorf("Lines[0] = %q", f.Lines[0])
	}
}

func TestLineOutOfRange(t *testing.T) {
	f := New("Main.jack", "one\ntwo\n")
	if got := f.Line(0); got != "" {
		t.Errorf("Line(0) = %q, want empty", got)
	}
	if got := f.Line(99); got != "" {
		t.Errorf("Line(99) = %q, want empty", got)
	}
	if got := f.Line(1); got != "one" {
		t.Errorf("Line(1) = %q, want %q", got, "one")
	}
}

func TestClassName(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"Main.jack", "Main"},
		{"proj/src/Fraction.jack", "Fraction"},
		{"/abs/path/to/Square.jack", "Square"},
	}
	for _, c := range cases {
		f := New(c.path, "")
		if got := f.ClassName(); got != c.want {
			t.Errorf("ClassName(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}
