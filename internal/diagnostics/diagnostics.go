// Package diagnostics renders positioned compiler errors and warnings: a
// colored classification header, a "--> file:line:col" pointer, the
// offending source line quoted and underlined, and an optional note.
package diagnostics

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/kirkdrichardson/jackc/internal/source"
)

// Kind classifies a Diagnostic by the compilation stage that raised it.
type Kind int

const (
	Lexical Kind = iota
	Syntax
	Semantic
	Accessor
	IO
	Warning
)

func (k Kind) label() string {
	switch k {
	case Lexical:
		return "lexical error"
	case Syntax:
		return "syntax error"
	case Semantic:
		return "semantic error"
	case Accessor:
		return "internal error"
	case IO:
		return "I/O error"
	case Warning:
		return "warning"
	default:
		return "error"
	}
}

// Diagnostic is a single positioned compiler message. It implements `error`
// so it composes with ordinary Go error handling, and also exposes Render
// for a colored multi-line presentation.
type Diagnostic struct {
	Kind      Kind
	File      *source.File
	Span      source.Span
	Message   string
	Note      string
	ClassName string
	SubName   string
}

// WithContext records the current class/subroutine being compiled, so the
// rendered message can name where the error occurred.
func (d *Diagnostic) WithContext(class, sub string) *Diagnostic {
	d.ClassName = class
	d.SubName = sub
	return d
}

// Error implements the error interface with a flat, uncolored one-liner,
// for contexts (logs, test failures) that don't want the multi-line form
// Render produces.
func (d *Diagnostic) Error() string {
	loc := ""
	if d.File != nil {
		loc = fmt.Sprintf("%s:%d:%d: ", d.File.Path, d.Span.Start.Line, d.Span.Start.Col)
	}
	ctx := ""
	if d.ClassName != "" {
		ctx = " (in " + d.ClassName
		if d.SubName != "" {
			ctx += "." + d.SubName
		}
		ctx += ")"
	}
	return fmt.Sprintf("%s%s: %s%s", loc, d.Kind.label(), d.Message, ctx)
}

func newDiag(k Kind, file *source.File, span source.Span, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: k, File: file, Span: span, Message: fmt.Sprintf(format, args...)}
}

// LexicalError reports a tokenizer-level failure: unmatched character,
// unterminated string, unterminated block comment.
func LexicalError(file *source.File, span source.Span, format string, args ...interface{}) *Diagnostic {
	return newDiag(Lexical, file, span, format, args...)
}

// SyntaxError reports an expect(token) mismatch, naming expected vs actual.
func SyntaxError(file *source.File, span source.Span, expected, actual string) *Diagnostic {
	return newDiag(Syntax, file, span, "expected %s, found %q", expected, actual)
}

// SemanticError reports an undeclared identifier, invalid keyword constant,
// invalid type token, or invalid variable kind.
func SemanticError(file *source.File, span source.Span, format string, args ...interface{}) *Diagnostic {
	return newDiag(Semantic, file, span, format, args...)
}

// IOErrorf reports a read/write failure. No source span is meaningful, so
// the diagnostic carries only the file and message.
func IOErrorf(file *source.File, format string, args ...interface{}) *Diagnostic {
	return newDiag(IO, file, source.Span{}, format, args...)
}

// AccessorError reports a recovered panic from a typed accessor misused on
// a token of the wrong kind (e.g. Token.Int() on a non-IntegerConstant).
// This should be unreachable from correct engine code; CompileClass
// recovers it at the top level so a bug caught this way fails only the one
// file being compiled instead of crashing the whole batch.
func AccessorError(file *source.File, span source.Span, format string, args ...interface{}) *Diagnostic {
	return newDiag(Accessor, file, span, format, args...)
}

// DuplicateDeclarationWarning reports a shadowed/overwritten symbol table
// entry (the tolerated-but-now-logged open question).
func DuplicateDeclarationWarning(file *source.File, span source.Span, name string) *Diagnostic {
	return newDiag(Warning, file, span, "redeclaration of %q shadows the earlier declaration in this scope", name)
}

// Render produces the multi-line presentation of the diagnostic: a
// colored header, a location pointer, and the quoted, underlined source
// line (when the diagnostic carries file content).
func (d *Diagnostic) Render(useColor bool) string {
	color.NoColor = !useColor
	boldRed := color.New(color.FgRed, color.Bold).SprintFunc()
	boldYellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	header := boldRed(d.Kind.label() + ":")
	if d.Kind == Warning {
		header = boldYellow(d.Kind.label() + ":")
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("%s %s", header, d.Message))

	if d.File == nil {
		if d.Note != "" {
			lines = append(lines, "note: "+d.Note)
		}
		return strings.Join(lines, "\n")
	}

	loc := fmt.Sprintf("%d:%d", d.Span.Start.Line, d.Span.Start.Col)
	ctx := ""
	if d.ClassName != "" {
		ctx = " in " + d.ClassName
		if d.SubName != "" {
			ctx += "." + d.SubName
		}
	}
	lines = append(lines, fmt.Sprintf(" %s %s:%s%s", blue("-->"), d.File.Path, loc, ctx))
	lines = append(lines, blue("  |"))

	srcLine := d.File.Line(d.Span.Start.Line)
	lines = append(lines, fmt.Sprintf("%3d %s %s", d.Span.Start.Line, blue("|"), srcLine))

	startCol := d.Span.Start.Col
	width := int(math.Max(float64(d.Span.End.Col-d.Span.Start.Col+1), 1))
	underline := red(strings.Repeat("^", width))
	pad := strings.Repeat(" ", maxInt(startCol-1, 0))
	lines = append(lines, fmt.Sprintf("    %s %s%s", blue("|"), pad, underline))

	if d.Note != "" {
		lines = append(lines, "note: "+d.Note)
	}

	return strings.Join(lines, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
