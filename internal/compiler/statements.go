package compiler

import (
	"github.com/kirkdrichardson/jackc/internal/diagnostics"
	"github.com/kirkdrichardson/jackc/internal/vmwriter"
)

// compileStatements compiles a run of zero or more statements. It reports
// whether the last statement compiled was itself a return statement, so a
// caller compiling a subroutine's top-level statement list knows whether a
// trailing synthetic return is still needed: a void subroutine whose
// body ends in an if/else rather than a literal return still needs one.
func (e *Engine) compileStatements() (bool, *diagnostics.Diagnostic) {
	endedReturn := false
	for e.cur.IsOneOf("let", "if", "while", "do", "return") {
		var err *diagnostics.Diagnostic
		endedReturn = e.cur.Is("return")
		switch {
		case e.cur.Is("let"):
			err = e.compileLet()
		case e.cur.Is("if"):
			err = e.compileIf()
		case e.cur.Is("while"):
			err = e.compileWhile()
		case e.cur.Is("do"):
			err = e.compileDo()
		default:
			err = e.compileReturn()
		}
		if err != nil {
			return false, err
		}
	}
	return endedReturn, nil
}

// compileLet compiles "let name ('[' expr ']')? '=' expr ';'". Array-indexed
// assignment uses the standard Nand2Tetris temp-juggling scheme
// (see DESIGN.md's open-question decisions): evaluate the RHS before clobbering
// `that`, stash it in temp 0, point `that` at the target, then store.
func (e *Engine) compileLet() *diagnostics.Diagnostic {
	if err := e.advance(); err != nil { // consume "let"
		return err
	}

	name, span, err := e.expectIdentifier()
	if err != nil {
		return err
	}
	info, ok := e.syms.Lookup(name)
	if !ok {
		return diagnostics.SemanticError(e.file, span, "undeclared identifier %q", name).
			WithContext(e.className, e.subroutineName)
	}

	if e.cur.Is("[") {
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

		if err := e.expect("="); err != nil {
			return err
		}
		if err := e.compileExpression(); err != nil {
			return err
		}
		if err := e.expect(";"); err != nil {
			return err
		}

		e.vm.WritePop(vmwriter.Temp, 0)
		e.vm.WritePop(vmwriter.Pointer, 1)
		e.vm.WritePush(vmwriter.Temp, 0)
		e.vm.WritePop(vmwriter.That, 0)
		return nil
	}

	if err := e.expect("="); err != nil {
		return err
	}
	if err := e.compileExpression(); err != nil {
		return err
	}
	if err := e.expect(";"); err != nil {
		return err
	}

	e.vm.WritePop(vmSegment(info.Kind), info.Index)
	return nil
}

// compileIf compiles "if '(' expr ')' '{' statements '}' ('else' '{' statements '}')?".
func (e *Engine) compileIf() *diagnostics.Diagnostic {
	if err := e.advance(); err != nil { // consume "if"
		return err
	}
	if err := e.expect("("); err != nil {
		return err
	}
	if err := e.compileExpression(); err != nil {
		return err
	}
	e.vm.WriteArithmetic(vmwriter.Not)

	startLabel, endLabel := e.newLabelPair("IF_START", "IF_END")
	e.vm.WriteIf(startLabel)

	if err := e.expect(")"); err != nil {
		return err
	}
	if err := e.expect("{"); err != nil {
		return err
	}
	if _, err := e.compileStatements(); err != nil {
		return err
	}
	if err := e.expect("}"); err != nil {
		return err
	}

	e.vm.WriteGoto(endLabel)
	e.vm.WriteLabel(startLabel)

	if e.cur.Is("else") {
		if err := e.advance(); err != nil {
			return err
		}
		if err := e.expect("{"); err != nil {
			return err
		}
		if _, err := e.compileStatements(); err != nil {
			return err
		}
		if err := e.expect("}"); err != nil {
			return err
		}
	}

	e.vm.WriteLabel(endLabel)
	return nil
}

// compileWhile compiles "while '(' expr ')' '{' statements '}'".
func (e *Engine) compileWhile() *diagnostics.Diagnostic {
	startLabel, endLabel := e.newLabelPair("WHILE_START", "WHILE_END")

	if err := e.advance(); err != nil { // consume "while"
		return err
	}
	if err := e.expect("("); err != nil {
		return err
	}

	e.vm.WriteLabel(startLabel)

	if err := e.compileExpression(); err != nil {
		return err
	}
	if err := e.expect(")"); err != nil {
		return err
	}

	e.vm.WriteArithmetic(vmwriter.Not)
	e.vm.WriteIf(endLabel)

	if err := e.expect("{"); err != nil {
		return err
	}
	if _, err := e.compileStatements(); err != nil {
		return err
	}
	if err := e.expect("}"); err != nil {
		return err
	}

	e.vm.WriteGoto(startLabel)
	e.vm.WriteLabel(endLabel)
	return nil
}

// compileDo compiles "do call ';'", discarding the call's return value.
// The call itself is parsed as an ordinary expression whose outermost term
// is a subroutine call.
func (e *Engine) compileDo() *diagnostics.Diagnostic {
	if err := e.advance(); err != nil { // consume "do"
		return err
	}
	if err := e.compileExpression(); err != nil {
		return err
	}
	e.vm.WritePop(vmwriter.Temp, 0)
	return e.expect(";")
}

// compileReturn compiles "return expr? ';'". Void subroutines return a
// dummy constant 0 so every subroutine's VM body ends with exactly one
// pushed value followed by "return".
func (e *Engine) compileReturn() *diagnostics.Diagnostic {
	if err := e.advance(); err != nil { // consume "return"
		return err
	}

	if !e.cur.Is(";") {
		if err := e.compileExpression(); err != nil {
			return err
		}
	} else {
		e.vm.WritePush(vmwriter.Constant, 0)
	}

	if err := e.expect(";"); err != nil {
		return err
	}

	e.vm.WriteReturn()
	return nil
}
