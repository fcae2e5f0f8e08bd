package compiler

import (
	"github.com/kirkdrichardson/jackc/internal/diagnostics"
	"github.com/kirkdrichardson/jackc/internal/source"
	"github.com/kirkdrichardson/jackc/internal/token"
	"github.com/kirkdrichardson/jackc/internal/vmwriter"
)

var binaryOps = map[string]vmwriter.Op{
	"+": vmwriter.Add,
	"-": vmwriter.Sub,
	"&": vmwriter.And,
	"|": vmwriter.Or,
	"<": vmwriter.Lt,
	">": vmwriter.Gt,
	"=": vmwriter.Eq,
}

// compileExpression compiles a left-associative run of terms separated by
// binary operators, all of equal precedence (Jack's grammar has no
// precedence levels).
func (e *Engine) compileExpression() *diagnostics.Diagnostic {
	if err := e.compileTerm(); err != nil {
		return err
	}

	for e.cur.Kind == token.Symbol && isBinaryOpSymbol(e.cur.Text) {
		opText := e.cur.Text
		if err := e.advance(); err != nil {
			return err
		}
		if err := e.compileTerm(); err != nil {
			return err
		}

		switch opText {
		case "*":
			e.vm.WriteCall("Math.multiply", 2)
		case "/":
			e.vm.WriteCall("Math.divide", 2)
		default:
			e.vm.WriteArithmetic(binaryOps[opText])
		}
	}

	return nil
}

func isBinaryOpSymbol(s string) bool {
	switch s {
	case "+", "-", "*", "/", "&", "|", "<", ">", "=":
		return true
	default:
		return false
	}
}

// compileTerm compiles a single term: a literal, a keyword constant, a
// parenthesized expression, a unary operator applied to a term, a plain
// variable reference, an array access, or a subroutine call.
func (e *Engine) compileTerm() *diagnostics.Diagnostic {
	switch {
	case e.cur.Kind == token.IntegerConstant:
		e.vm.WritePush(vmwriter.Constant, e.cur.Int())
		return e.advance()

	case e.cur.Kind == token.StringConstant:
		return e.compileStringConstant()

	case e.cur.Kind == token.Keyword && e.cur.IsOneOf("true", "false", "null", "this"):
		return e.compileKeywordConstant()

	case e.cur.Is("-"):
		if err := e.advance(); err != nil {
			return err
		}
		if err := e.compileTerm(); err != nil {
			return err
		}
		e.vm.WriteArithmetic(vmwriter.Neg)
		return nil

	case e.cur.Is("~"):
		if err := e.advance(); err != nil {
			return err
		}
		if err := e.compileTerm(); err != nil {
			return err
		}
		e.vm.WriteArithmetic(vmwriter.Not)
		return nil

	case e.cur.Is("("):
		if err := e.advance(); err != nil {
			return err
		}
		if err := e.compileExpression(); err != nil {
			return err
		}
		return e.expect(")")

	case e.cur.Kind == token.Identifier:
		return e.compileIdentifierTerm()

	default:
		return diagnostics.SyntaxError(e.file, e.cur.Span, "a term", e.displayCur()).
			WithContext(e.className, e.subroutineName)
	}
}

// compileStringConstant allocates a String object and appends each
// character, per the literal scheme.
func (e *Engine) compileStringConstant() *diagnostics.Diagnostic {
	s := e.cur.Text
	e.vm.WritePush(vmwriter.Constant, len(s))
	e.vm.WriteCall("String.new", 1)
	for _, c := range s {
		e.vm.WritePush(vmwriter.Constant, int(c))
		e.vm.WriteCall("String.appendChar", 2)
	}
	return e.advance()
}

func (e *Engine) compileKeywordConstant() *diagnostics.Diagnostic {
	switch e.cur.Text {
	case "false", "null":
		e.vm.WritePush(vmwriter.Constant, 0)
	case "true":
		e.vm.WritePush(vmwriter.Constant, 1)
		e.vm.WriteArithmetic(vmwriter.Neg)
	case "this":
		e.vm.WritePush(vmwriter.Pointer, 0)
	default:
		return diagnostics.SemanticError(e.file, e.cur.Span, "invalid keyword constant %q", e.cur.Text).
			WithContext(e.className, e.subroutineName)
	}
	return e.advance()
}

// compileIdentifierTerm handles the three shapes an identifier can start in
// a term: a plain variable, an array access, or the head of a subroutine
// call — the choice is made from one token of lookahead past the
// identifier.
func (e *Engine) compileIdentifierTerm() *diagnostics.Diagnostic {
	id, idSpan := e.cur.Text, e.cur.Span
	if err := e.advance(); err != nil {
		return err
	}

	switch {
	case e.cur.Is("["):
		info, ok := e.syms.Lookup(id)
		if !ok {
			return diagnostics.SemanticError(e.file, idSpan, "undeclared identifier %q", id).
				WithContext(e.className, e.subroutineName)
		}
		e.vm.WritePush(vmSegment(info.Kind), info.Index)

		if err := e.advance(); err != nil { // consume "["
			return err
		}
		if err := e.compileExpression(); err != nil {
			return err
		}
		if err := e.expect("]"); err != nil {
			return err
		}

		e.vm.WriteArithmetic(vmwriter.Add)
		e.vm.WritePop(vmwriter.Pointer, 1)
		e.vm.WritePush(vmwriter.That, 0)
		return nil

	case e.cur.Is("(") || e.cur.Is("."):
		return e.compileCall(id, idSpan)

	default:
		info, ok := e.syms.Lookup(id)
		if !ok {
			return diagnostics.SemanticError(e.file, idSpan, "undeclared identifier %q", id).
				WithContext(e.className, e.subroutineName)
		}
		e.vm.WritePush(vmSegment(info.Kind), info.Index)
		return nil
	}
}

// compileCall handles the three subroutine-call shapes: a method call on a
// resolved object (id is a variable), a call on a class name (id is not a
// variable, lookahead is "."), or a method call on the current object (id
// is not a variable, lookahead is "(").
func (e *Engine) compileCall(id string, idSpan source.Span) *diagnostics.Diagnostic {
	var callee string
	baseline := 0

	if info, ok := e.syms.Lookup(id); ok {
		e.vm.WritePush(vmSegment(info.Kind), info.Index)
		callee = info.Type
		baseline = 1
	} else if e.cur.Is(".") {
		callee = id
		baseline = 0
	} else {
		e.vm.WritePush(vmwriter.Pointer, 0)
		callee = e.className
		baseline = 1
	}

	subName := id
	if e.cur.Is(".") {
		if err := e.advance(); err != nil { // consume "."
			return err
		}
		if e.cur.Kind != token.Identifier {
			return diagnostics.SyntaxError(e.file, e.cur.Span, "a subroutine name", e.displayCur()).
				WithContext(e.className, e.subroutineName)
		}
		subName = e.cur.Text
		if err := e.advance(); err != nil {
			return err
		}
	}

	if err := e.expect("("); err != nil {
		return err
	}
	nArgs, err := e.compileExpressionList()
	if err != nil {
		return err
	}
	if err := e.expect(")"); err != nil {
		return err
	}

	e.vm.WriteCall(callee+"."+subName, baseline+nArgs)
	return nil
}

// compileExpressionList compiles a comma-separated, possibly-empty list of
// expressions and returns how many were compiled.
func (e *Engine) compileExpressionList() (int, *diagnostics.Diagnostic) {
	if e.cur.Is(")") {
		return 0, nil
	}

	if err := e.compileExpression(); err != nil {
		return 0, err
	}
	count := 1

	for e.cur.Is(",") {
		if err := e.advance(); err != nil {
			return 0, err
		}
		if err := e.compileExpression(); err != nil {
			return 0, err
		}
		count++
	}

	return count, nil
}
