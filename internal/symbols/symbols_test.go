package symbols

import (
	"testing"

	"github.com/kirkdrichardson/jackc/internal/source"
)

func TestSegmentOfMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want Segment
	}{
		{Static, SegStatic},
		{Field, SegThis},
		{Arg, SegArgument},
		{Var, SegLocal},
	}
	for _, c := range cases {
		if got := SegmentOf(c.kind); got != c.want {
			t.Errorf("SegmentOf(%v) = %v, want %v", c.kind, got, c.want)
		}
	}
}

func TestDeclareClassVarRejectsSubroutineKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic when declaring an Arg in class scope")
		}
	}()
	New().DeclareClassVar("x", "int", Arg, zeroSpan())
}

func TestDeclareSubroutineVarRejectsClassKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic when declaring a Field in subroutine scope")
		}
	}()
	New().DeclareSubroutineVar("x", "int", Field, zeroSpan())
}

func TestIndicesIncrementPerKindIndependently(t *testing.T) {
	st := New()
	a := st.DeclareClassVar("x", "int", Field, zeroSpan())
	b := st.DeclareClassVar("y", "int", Field, zeroSpan())
	c := st.DeclareClassVar("count", "int", Static, zeroSpan())
	if a.Index != 0 || b.Index != 1 {
		t.Errorf("field indices = %d, %d, want 0, 1", a.Index, b.Index)
	}
	if c.Index != 0 {
		t.Errorf("static index = %d, want 0 (separate counter from field)", c.Index)
	}
}

func TestSubroutineShadowsClass(t *testing.T) {
	st := New()
	st.DeclareClassVar("x", "int", Field, zeroSpan())
	st.ResetSubroutine()
	st.DeclareSubroutineVar("x", "boolean", Var, zeroSpan())

	info, ok := st.Lookup("x")
	if !ok {
		t.Fatal("expected x to resolve")
	}
	if info.Kind != Var || info.Type != "boolean" {
		t.Errorf("Lookup(x) = %+v, want subroutine-scope Var shadowing the field", info)
	}
}

func TestResetSubroutineDoesNotAffectClassScope(t *testing.T) {
	st := New()
	st.DeclareClassVar("x", "int", Field, zeroSpan())
	st.ResetSubroutine()
	st.DeclareSubroutineVar("y", "int", Arg, zeroSpan())
	st.ResetSubroutine()

	if _, ok := st.Lookup("y"); ok {
		t.Error("y should no longer resolve after ResetSubroutine")
	}
	if _, ok := st.Lookup("x"); !ok {
		t.Error("x (class scope) should still resolve after ResetSubroutine")
	}
}

func TestAlreadyDeclaredDoesNotBlockOverwrite(t *testing.T) {
	st := New()
	st.DeclareClassVar("x", "int", Field, zeroSpan())
	if !st.AlreadyDeclared("x", Field) {
		t.Fatal("expected AlreadyDeclared to report true before the redeclaration")
	}
	info := st.DeclareClassVar("x", "Array", Field, zeroSpan())
	if info.Type != "Array" {
		t.Error("redeclaration should overwrite with the newest type (newest wins)")
	}
}

func TestVarCountBeforeAnyDeclarations(t *testing.T) {
	st := New()
	if st.VarCount(Arg) != 0 || st.VarCount(Field) != 0 {
		t.Error("expected zero counts on a fresh table")
	}
}

func zeroSpan() source.Span { return source.Span{} }
