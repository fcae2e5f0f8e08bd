// Package compiler implements the recursive-descent, one-token-lookahead
// Compilation Engine: it drives a lexer.Lexer and a symbols.SymbolTable and
// emits Hack VM code inline through a vmwriter.Writer, without building or
// retaining a parse tree.
package compiler

import (
	"fmt"

	"github.com/kirkdrichardson/jackc/internal/diagnostics"
	"github.com/kirkdrichardson/jackc/internal/lexer"
	"github.com/kirkdrichardson/jackc/internal/source"
	"github.com/kirkdrichardson/jackc/internal/symbols"
	"github.com/kirkdrichardson/jackc/internal/token"
	"github.com/kirkdrichardson/jackc/internal/vmwriter"
)

// Engine holds everything the single-pass compilation of one class needs:
// the token source, the output sink, the two symbol tables, and the small
// amount of context (current class/subroutine name, label counter) needed
// to label control structures and attribute diagnostics.
type Engine struct {
	file *source.File
	lex  *lexer.Lexer
	vm   *vmwriter.Writer
	syms *symbols.SymbolTable

	cur token.Token

	className      string
	subroutineName string
	labelCounter   int

	warnings []*diagnostics.Diagnostic
}

// New constructs an Engine over a source file, compiling to vm.
func New(file *source.File, vm *vmwriter.Writer) *Engine {
	return &Engine{
		file: file,
		lex:  lexer.New(file),
		vm:   vm,
		syms: symbols.New(),
	}
}

// Warnings returns any non-fatal diagnostics accumulated during
// compilation (currently: tolerated duplicate declarations only).
func (e *Engine) Warnings() []*diagnostics.Diagnostic {
	return e.warnings
}

// recoverToAccessorError converts a recovered panic value into an Accessor
// diagnostic. Factored out of CompileClass's defer so the panic-to-
// diagnostic conversion is directly testable without needing to trigger a
// real accessor-misuse panic through a full parse.
func recoverToAccessorError(file *source.File, span source.Span, className, subroutineName string, r interface{}) *diagnostics.Diagnostic {
	return diagnostics.AccessorError(file, span, "internal error: %v", r).
		WithContext(className, subroutineName)
}

// CompileClass compiles exactly one Jack class, terminating after consuming
// the class's closing "}". It closes the VM writer on every
// exit path, success or error. A panic from a misused typed accessor
// (token.Token.Int() on the wrong kind, say) is recovered here and reported
// as an Accessor diagnostic instead of crashing the process, so one bad
// file can't take down a batch compile of the rest.
func (e *Engine) CompileClass() (diag *diagnostics.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			diag = recoverToAccessorError(e.file, e.cur.Span, e.className, e.subroutineName, r)
		}
		if cerr := e.vm.Close(); cerr != nil && diag == nil {
			diag = diagnostics.IOErrorf(e.file, "writing VM output: %v", cerr).
				WithContext(e.className, e.subroutineName)
		}
	}()

	if err := e.advance(); err != nil {
		return err
	}

	if err := e.expect("class"); err != nil {
		return err
	}

	name, nameSpan, err := e.expectIdentifier()
	if err != nil {
		return err
	}
	e.className = name

	if want := e.file.ClassName(); want != "" && want != name {
		return diagnostics.SemanticError(e.file, nameSpan, "class %q does not match its file's expected class name %q", name, want).
			WithContext(e.className, e.subroutineName)
	}

	if err := e.expect("{"); err != nil {
		return err
	}

	e.syms.ResetClass()

	for e.cur.IsOneOf("static", "field") {
		if err := e.compileClassVarDec(); err != nil {
			return err
		}
	}

	for e.cur.IsOneOf("constructor", "function", "method") {
		if err := e.compileSubroutine(); err != nil {
			return err
		}
	}

	if err := e.expect("}"); err != nil {
		return err
	}

	return nil
}

// --- token plumbing -------------------------------------------------------

func (e *Engine) advance() *diagnostics.Diagnostic {
	tok, err := e.lex.Next()
	if err != nil {
		return err.WithContext(e.className, e.subroutineName)
	}
	e.cur = tok
	return nil
}

func (e *Engine) displayCur() string {
	if e.cur.Kind == token.EOF {
		return "<EOF>"
	}
	return e.cur.Text
}

// expect consumes the current token if it is the given terminal text,
// otherwise fails with a syntax error naming expected vs. actual.
func (e *Engine) expect(text string) *diagnostics.Diagnostic {
	if !e.cur.Is(text) {
		return diagnostics.SyntaxError(e.file, e.cur.Span, fmt.Sprintf("%q", text), e.displayCur()).
			WithContext(e.className, e.subroutineName)
	}
	return e.advance()
}

func (e *Engine) expectIdentifier() (string, source.Span, *diagnostics.Diagnostic) {
	if e.cur.Kind != token.Identifier {
		return "", source.Span{}, diagnostics.SyntaxError(e.file, e.cur.Span, "identifier", e.displayCur()).
			WithContext(e.className, e.subroutineName)
	}
	name, span := e.cur.Text, e.cur.Span
	if err := e.advance(); err != nil {
		return "", source.Span{}, err
	}
	return name, span, nil
}

// compileType consumes a primitive type keyword or a class-name identifier.
func (e *Engine) compileType() (string, *diagnostics.Diagnostic) {
	if e.cur.IsOneOf("int", "char", "boolean") {
		t := e.cur.Text
		if err := e.advance(); err != nil {
			return "", err
		}
		return t, nil
	}
	if e.cur.Kind == token.Identifier {
		t := e.cur.Text
		if err := e.advance(); err != nil {
			return "", err
		}
		return t, nil
	}
	return "", diagnostics.SyntaxError(e.file, e.cur.Span, "a type", e.displayCur()).
		WithContext(e.className, e.subroutineName)
}

// compileReturnType consumes "void" or a type.
func (e *Engine) compileReturnType() (string, *diagnostics.Diagnostic) {
	if e.cur.Is("void") {
		if err := e.advance(); err != nil {
			return "", err
		}
		return "void", nil
	}
	return e.compileType()
}

// newLabelPair allocates the next label index and returns the two label
// names a control structure needs, e.g. IF_START_1/IF_END_1 or
// WHILE_START_1/WHILE_END_1 — both ends of one structure share one index.
func (e *Engine) newLabelPair(startPrefix, endPrefix string) (string, string) {
	e.labelCounter++
	return fmt.Sprintf("%s_%d", startPrefix, e.labelCounter), fmt.Sprintf("%s_%d", endPrefix, e.labelCounter)
}

func vmSegment(kind symbols.Kind) vmwriter.Segment {
	return vmwriter.Segment(symbols.SegmentOf(kind))
}

// declareClassVar adds a static/field variable, warning (not erroring) if
// the name shadows an earlier declaration in the same scope.
func (e *Engine) declareClassVar(name, typ string, kind symbols.Kind, span source.Span) {
	if e.syms.AlreadyDeclared(name, kind) {
		e.warnings = append(e.warnings, diagnostics.DuplicateDeclarationWarning(e.file, span, name).
			WithContext(e.className, e.subroutineName))
	}
	e.syms.DeclareClassVar(name, typ, kind, span)
}

func (e *Engine) declareSubroutineVar(name, typ string, kind symbols.Kind, span source.Span) {
	if e.syms.AlreadyDeclared(name, kind) {
		e.warnings = append(e.warnings, diagnostics.DuplicateDeclarationWarning(e.file, span, name).
			WithContext(e.className, e.subroutineName))
	}
	e.syms.DeclareSubroutineVar(name, typ, kind, span)
}
