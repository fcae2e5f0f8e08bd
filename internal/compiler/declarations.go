package compiler

import (
	"github.com/kirkdrichardson/jackc/internal/diagnostics"
	"github.com/kirkdrichardson/jackc/internal/symbols"
	"github.com/kirkdrichardson/jackc/internal/vmwriter"
)

// compileClassVarDec compiles "static|field type name (',' name)* ';'".
func (e *Engine) compileClassVarDec() *diagnostics.Diagnostic {
	kind := symbols.Field
	if e.cur.Is("static") {
		kind = symbols.Static
	}
	if err := e.advance(); err != nil {
		return err
	}

	typ, err := e.compileType()
	if err != nil {
		return err
	}

	name, span, err := e.expectIdentifier()
	if err != nil {
		return err
	}
	e.declareClassVar(name, typ, kind, span)

	for e.cur.Is(",") {
		if err := e.advance(); err != nil {
			return err
		}
		name, span, err = e.expectIdentifier()
		if err != nil {
			return err
		}
		e.declareClassVar(name, typ, kind, span)
	}

	return e.expect(";")
}

// subroutineKind is constructor, function, or method.
type subroutineKind string

const (
	constructorKind subroutineKind = "constructor"
	functionKind    subroutineKind = "function"
	methodKind      subroutineKind = "method"
)

// compileSubroutine compiles one constructor/function/method declaration,
// including its body: the subroutine table is reset, the
// implicit "this" arg is registered for methods before the parameter list,
// and the function header isn't emitted until every "var" declaration has
// been seen so the local count is known up front.
func (e *Engine) compileSubroutine() *diagnostics.Diagnostic {
	e.syms.ResetSubroutine()

	kind := subroutineKind(e.cur.Text)
	if kind == methodKind {
		e.syms.DeclareSubroutineVar("this", e.className, symbols.Arg, e.cur.Span)
	}
	if err := e.advance(); err != nil {
		return err
	}

	returnType, err := e.compileReturnType()
	if err != nil {
		return err
	}

	subName, _, err := e.expectIdentifier()
	if err != nil {
		return err
	}
	e.subroutineName = subName

	if err := e.expect("("); err != nil {
		return err
	}
	if err := e.compileParameterList(); err != nil {
		return err
	}
	if err := e.expect(")"); err != nil {
		return err
	}

	if err := e.expect("{"); err != nil {
		return err
	}

	for e.cur.Is("var") {
		if err := e.compileVarDec(); err != nil {
			return err
		}
	}

	localCount := e.syms.VarCount(symbols.Var)
	e.vm.WriteFunction(e.className+"."+subName, localCount)

	switch kind {
	case constructorKind:
		fieldCount := e.syms.VarCount(symbols.Field)
		e.vm.WritePush(vmwriter.Constant, fieldCount)
		e.vm.WriteCall("Memory.alloc", 1)
		e.vm.WritePop(vmwriter.Pointer, 0)
	case methodKind:
		e.vm.WritePush(vmwriter.Argument, 0)
		e.vm.WritePop(vmwriter.Pointer, 0)
	}

	endedReturn, err := e.compileStatements()
	if err != nil {
		return err
	}

	// A void subroutine whose body doesn't literally end in a "return"
	// statement (e.g. it ends in an if/else where every branch returns)
	// still needs its VM body to end in a pushed value followed by
	// "return".
	if returnType == "void" && !endedReturn {
		e.vm.WritePush(vmwriter.Constant, 0)
		e.vm.WriteReturn()
	}

	e.subroutineName = ""
	return e.expect("}")
}

// compileParameterList compiles "((type name (',' type name)*)?)" — the
// parens themselves are consumed by the caller.
func (e *Engine) compileParameterList() *diagnostics.Diagnostic {
	if e.cur.Is(")") {
		return nil
	}

	typ, err := e.compileType()
	if err != nil {
		return err
	}
	name, span, err := e.expectIdentifier()
	if err != nil {
		return err
	}
	e.declareSubroutineVar(name, typ, symbols.Arg, span)

	for e.cur.Is(",") {
		if err := e.advance(); err != nil {
			return err
		}
		typ, err = e.compileType()
		if err != nil {
			return err
		}
		name, span, err = e.expectIdentifier()
		if err != nil {
			return err
		}
		e.declareSubroutineVar(name, typ, symbols.Arg, span)
	}

	return nil
}

// compileVarDec compiles "var type name (',' name)* ';'".
func (e *Engine) compileVarDec() *diagnostics.Diagnostic {
	if err := e.advance(); err != nil { // consume "var"
		return err
	}

	typ, err := e.compileType()
	if err != nil {
		return err
	}

	name, span, err := e.expectIdentifier()
	if err != nil {
		return err
	}
	e.declareSubroutineVar(name, typ, symbols.Var, span)

	for e.cur.Is(",") {
		if err := e.advance(); err != nil {
			return err
		}
		name, span, err = e.expectIdentifier()
		if err != nil {
			return err
		}
		e.declareSubroutineVar(name, typ, symbols.Var, span)
	}

	return e.expect(";")
}
