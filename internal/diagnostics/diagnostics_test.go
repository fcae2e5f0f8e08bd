package diagnostics

import (
	"strings"
	"testing"

	"github.com/kirkdrichardson/jackc/internal/source"
)

func TestErrorImplementsErrorInterface(t *testing.T) {
	f := source.New("Main.jack", "let x = 1;")
	d := SyntaxError(f, source.Span{Start: source.Pos{Line: 1, Col: 5}, End: source.Pos{Line: 1, Col: 5}}, `";"`, "=")
	var err error = d
	if !strings.Contains(err.Error(), "expected") {
		t.Errorf("Error() = %q, missing expected message", err.Error())
	}
}

func TestWithContextAddsClassAndSub(t *testing.T) {
	d := SemanticError(nil, source.Span{}, "undeclared identifier %q", "foo").WithContext("Main", "run")
	if !strings.Contains(d.Error(), "Main.run") {
		t.Errorf("Error() = %q, want it to mention Main.run", d.Error())
	}
}

func TestRenderWithoutFileStillProducesAMessage(t *testing.T) {
	d := IOErrorf(nil, "opening %s: boom", "Main.vm")
	rendered := d.Render(false)
	if !strings.Contains(rendered, "boom") {
		t.Errorf("Render() = %q, missing message", rendered)
	}
}

func TestRenderPointsAtTheOffendingLine(t *testing.T) {
	f := source.New("Main.jack", "let x = ;\n")
	span := source.Span{Start: source.Pos{Line: 1, Col: 9}, End: source.Pos{Line: 1, Col: 9}}
	d := SyntaxError(f, span, "a term", ";")
	rendered := d.Render(false)

	if !strings.Contains(rendered, "Main.jack:1:9") {
		t.Errorf("Render() missing location pointer:\n%s", rendered)
	}
	if !strings.Contains(rendered, "let x = ;") {
		t.Errorf("Render() missing quoted source line:\n%s", rendered)
	}
	if !strings.Contains(rendered, "^") {
		t.Errorf("Render() missing underline:\n%s", rendered)
	}
}

func TestDuplicateDeclarationIsAWarningNotAnError(t *testing.T) {
	d := DuplicateDeclarationWarning(nil, source.Span{}, "x")
	if d.Kind != Warning {
		t.Errorf("Kind = %v, want Warning", d.Kind)
	}
}

func TestAccessorErrorIsClassifiedAsInternal(t *testing.T) {
	d := AccessorError(nil, source.Span{}, "internal error: %v", "token: Int() called on non-IntegerConstant token identifier")
	if d.Kind != Accessor {
		t.Errorf("Kind = %v, want Accessor", d.Kind)
	}
	if !strings.Contains(d.Error(), "internal error") {
		t.Errorf("Error() = %q, want it to mention internal error", d.Error())
	}
}
