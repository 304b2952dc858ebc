package solverir

import (
	"reflect"
	"testing"
)

func TestShiftInverse(t *testing.T) {
	i32 := TyScalar{Scalar: ScalarI32}
	tests := []struct {
		name string
		ty   Ty
		n    int
	}{
		{
			name: "free bound var",
			ty:   TyBound{Bound: BoundVar{Debruijn: 0, Index: 2}},
			n:    1,
		},
		{
			name: "free bound var shifted by three",
			ty:   TyBound{Bound: BoundVar{Debruijn: 1, Index: 0}},
			n:    3,
		},
		{
			name: "nested in tuple",
			ty: TyTuple{Cardinality: 2, Substitution: Substitution{
				TypeArg{Ty: i32},
				TypeArg{Ty: TyBound{Bound: BoundVar{Debruijn: 0, Index: 0}}},
			}},
			n: 2,
		},
		{
			name: "no bound vars",
			ty:   TyRef{Mutability: MutNot, Lifetime: LifetimeStatic, Ty: i32},
			n:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ShiftedIn(tt.ty, tt.n)
			out, err := ShiftedOut(in, tt.n)
			if err != nil {
				t.Fatalf("ShiftedOut: %v", err)
			}
			if !reflect.DeepEqual(out, tt.ty) {
				t.Errorf("round trip = %s, want %s", out, tt.ty)
			}
		})
	}
}

func TestShiftedOutEscapes(t *testing.T) {
	// Index 0 refers directly into the scope being removed.
	ty := TyBound{Bound: BoundVar{Debruijn: 0, Index: 0}}
	if _, err := ShiftedOut(ty, 1); err == nil {
		t.Errorf("ShiftedOut should fail for a variable bound by the removed scope")
	}
}

func TestShiftSkipsLocallyBound(t *testing.T) {
	// A variable bound inside the function pointer's own scope must not move.
	fn := TyFn{Substitution: Substitution{
		TypeArg{Ty: TyBound{Bound: BoundVar{Debruijn: 0, Index: 0}}},
	}}
	shifted := ShiftedIn(fn, 1)
	if !reflect.DeepEqual(shifted, Ty(fn)) {
		t.Errorf("locally bound variable moved: %s", shifted)
	}

	// A variable reaching past that scope must move.
	fnFree := TyFn{Substitution: Substitution{
		TypeArg{Ty: TyBound{Bound: BoundVar{Debruijn: 1, Index: 0}}},
	}}
	shifted = ShiftedIn(fnFree, 1)
	want := TyFn{Substitution: Substitution{
		TypeArg{Ty: TyBound{Bound: BoundVar{Debruijn: 2, Index: 0}}},
	}}
	if !reflect.DeepEqual(shifted, Ty(want)) {
		t.Errorf("free variable under fn scope = %s, want %s", shifted, want)
	}
}

func TestSubstShiftRoundTrip(t *testing.T) {
	s := Substitution{
		TypeArg{Ty: TyBound{Bound: BoundVar{Debruijn: 0, Index: 1}}},
		TypeArg{Ty: TyScalar{Scalar: ScalarBool}},
	}
	in := SubstShiftedIn(s, 1)
	got, ok := in.TypeAt(0)
	if !ok {
		t.Fatalf("first element lost its type")
	}
	if want := (TyBound{Bound: BoundVar{Debruijn: 1, Index: 1}}); !reflect.DeepEqual(got, Ty(want)) {
		t.Errorf("shifted element = %s, want %s", got, want)
	}

	out, err := SubstShiftedOut(in, 1)
	if err != nil {
		t.Fatalf("SubstShiftedOut: %v", err)
	}
	if !reflect.DeepEqual(out, s) {
		t.Errorf("round trip = %s, want %s", out, s)
	}
}

func TestClauseShiftRoundTrip(t *testing.T) {
	clause := ClauseImplemented{TraitRef: TraitRef{
		Trait: 7,
		Substitution: Substitution{
			TypeArg{Ty: TyBound{Bound: BoundVar{Debruijn: 0, Index: 0}}},
		},
	}}
	in := ClauseShiftedIn(clause, 1)
	out, err := ClauseShiftedOut(in, 1)
	if err != nil {
		t.Fatalf("ClauseShiftedOut: %v", err)
	}
	if !reflect.DeepEqual(out, WhereClause(clause)) {
		t.Errorf("round trip = %s, want %s", out, clause)
	}

	if _, err := ClauseShiftedOut(clause, 1); err == nil {
		t.Errorf("shifting out a clause whose variable is bound by the removed scope should fail")
	}
}
