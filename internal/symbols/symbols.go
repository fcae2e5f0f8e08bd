// Package symbols implements Jack's dual-scope symbol table: a class-scope
// table holding static/field variables and a subroutine-scope table holding
// arg/var variables, with subroutine lookups shadowing class lookups.
package symbols

import "github.com/kirkdrichardson/jackc/internal/source"

// Kind is a variable's storage class: a closed enumeration rather than
// bare strings, since Jack has exactly four.
type Kind int

const (
	Static Kind = iota
	Field
	Arg
	Var
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Field:
		return "field"
	case Arg:
		return "arg"
	case Var:
		return "var"
	default:
		return "invalid"
	}
}

// Segment is the VM memory segment a Kind maps onto. SegmentOf below is the
// single point of truth for the kind-to-segment mapping.
type Segment string

const (
	SegStatic   Segment = "static"
	SegThis     Segment = "this"
	SegArgument Segment = "argument"
	SegLocal    Segment = "local"
)

// SegmentOf returns the VM segment a given variable kind is stored in:
// static->static, field->this, arg->argument, var->local.
func SegmentOf(k Kind) Segment {
	switch k {
	case Static:
		return SegStatic
	case Field:
		return SegThis
	case Arg:
		return SegArgument
	case Var:
		return SegLocal
	default:
		panic("symbols: SegmentOf called with invalid kind")
	}
}

// VarInfo records everything the compiler needs to know about a declared
// variable: its Jack type, its storage kind, and its 0-based index within
// that kind's counter in its owning scope.
type VarInfo struct {
	Name  string
	Type  string
	Kind  Kind
	Index int
	Span  source.Span
}

// Table is a single scope's name -> VarInfo map plus one counter per kind.
type Table struct {
	vars   map[string]VarInfo
	counts [4]int
}

func newTable() *Table {
	return &Table{vars: make(map[string]VarInfo)}
}

// reset clears the table and zeros all counters.
func (t *Table) reset() {
	t.vars = make(map[string]VarInfo)
	t.counts = [4]int{}
}

// add assigns index = VarCount(kind) then increments that counter.
// Duplicate names within a scope overwrite (newest wins); the caller is
// responsible for surfacing the shadowed-declaration warning before
// calling add if the name already exists.
func (t *Table) add(name, typ string, kind Kind, span source.Span) VarInfo {
	info := VarInfo{Name: name, Type: typ, Kind: kind, Index: t.counts[kind], Span: span}
	t.counts[kind]++
	t.vars[name] = info
	return info
}

func (t *Table) find(name string) (VarInfo, bool) {
	info, ok := t.vars[name]
	return info, ok
}

func (t *Table) varCount(kind Kind) int {
	return t.counts[kind]
}

// SymbolTable pairs a class-scope table (static/field) with a
// subroutine-scope table (arg/var). Subroutine lookups shadow class lookups
// for the same name.
type SymbolTable struct {
	class      *Table
	subroutine *Table
}

// New returns an empty SymbolTable.
func New() *SymbolTable {
	return &SymbolTable{class: newTable(), subroutine: newTable()}
}

// ResetClass clears the class-scope table. Called at the start of every
// compiled class.
func (s *SymbolTable) ResetClass() {
	s.class.reset()
}

// ResetSubroutine clears the subroutine-scope table. Called at the start
// of every compiled subroutine.
func (s *SymbolTable) ResetSubroutine() {
	s.subroutine.reset()
}

// DeclareClassVar adds a static or field variable to the class table.
// kind must be Static or Field; any other kind is a programmer error.
func (s *SymbolTable) DeclareClassVar(name, typ string, kind Kind, span source.Span) VarInfo {
	if kind != Static && kind != Field {
		panic("symbols: DeclareClassVar called with non-class kind " + kind.String())
	}
	return s.class.add(name, typ, kind, span)
}

// DeclareSubroutineVar adds an arg or var variable to the subroutine table.
// kind must be Arg or Var; any other kind is a programmer error.
func (s *SymbolTable) DeclareSubroutineVar(name, typ string, kind Kind, span source.Span) VarInfo {
	if kind != Arg && kind != Var {
		panic("symbols: DeclareSubroutineVar called with non-subroutine kind " + kind.String())
	}
	return s.subroutine.add(name, typ, kind, span)
}

// Lookup resolves a name against the subroutine table first, then the class
// table, implementing subroutine-scope shadowing of class scope.
func (s *SymbolTable) Lookup(name string) (VarInfo, bool) {
	if info, ok := s.subroutine.find(name); ok {
		return info, true
	}
	return s.class.find(name)
}

// AlreadyDeclared reports whether name already has an entry in whichever
// scope it would be declared into (used only to decide whether to emit the
// shadowed-declaration warning; it never blocks the add itself).
func (s *SymbolTable) AlreadyDeclared(name string, kind Kind) bool {
	switch kind {
	case Static, Field:
		_, ok := s.class.find(name)
		return ok
	default:
		_, ok := s.subroutine.find(name)
		return ok
	}
}

// VarCount returns the number of variables of the given kind declared so
// far in the appropriate scope (class scope for Static/Field, subroutine
// scope for Arg/Var).
func (s *SymbolTable) VarCount(kind Kind) int {
	switch kind {
	case Static, Field:
		return s.class.varCount(kind)
	default:
		return s.subroutine.varCount(kind)
	}
}
