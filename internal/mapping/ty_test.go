package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mightyiam/rust-analyzer/internal/solverir"
	"github.com/mightyiam/rust-analyzer/internal/typesystem"
)

// roundTrip converts to the solver IR and back and requires both legs to
// succeed.
func roundTrip(t *testing.T, m *Mapper, ty typesystem.Ty) typesystem.Ty {
	t.Helper()
	ext, err := m.TyToExternal(ty)
	require.NoError(t, err)
	back, err := m.TyFromExternal(ext)
	require.NoError(t, err)
	return back
}

func TestTyRoundTrip(t *testing.T) {
	m, _ := newTestMapper()
	i32 := scalar(solverir.ScalarI32)

	cases := []struct {
		name string
		ty   typesystem.Ty
	}{
		{"scalar", i32},
		{"str", typesystem.TStr{}},
		{"never", typesystem.TNever{}},
		{"unit tuple", typesystem.TTuple{Cardinality: 0, Substs: typesystem.Substs{}}},
		{"pair", typesystem.TTuple{Cardinality: 2, Substs: typesystem.Substs{i32, typesystem.TStr{}}}},
		{"slice", typesystem.TSlice{Substs: typesystem.SingleSubst(i32)}},
		{"raw pointer", typesystem.TRaw{Mutability: solverir.MutMut, Substs: typesystem.SingleSubst(i32)}},
		{"reference", typesystem.TRef{Mutability: solverir.MutNot, Substs: typesystem.SingleSubst(i32)}},
		{"array", typesystem.TArray{Substs: typesystem.SingleSubst(i32)}},
		{"adt", typesystem.TAdt{Adt: 4, Substs: typesystem.Substs{i32}}},
		{"associated", typesystem.TAssociated{TypeAlias: 7, Substs: typesystem.Substs{i32}}},
		{"foreign", typesystem.TForeign{TypeAlias: 9}},
		{"unknown", typesystem.TUnknown{}},
		{"bound", typesystem.TBound{Bound: solverir.BoundVar{Debruijn: 0, Index: 2}}},
		{"fn pointer", typesystem.TFnPtr{
			NumArgs: 1,
			Substs:  typesystem.Substs{i32, typesystem.TStr{}},
		}},
		{"projection alias", typesystem.TAlias{Alias: typesystem.ProjectionTy{
			TypeAlias: 7,
			Substs:    typesystem.Substs{i32},
		}}},
		{"dyn trait", typesystem.TDyn{Predicates: []typesystem.GenericPredicate{
			implemented(1, typesystem.TBound{Bound: solverir.BoundVar{Debruijn: 0, Index: 0}}),
		}}},
		{"nested", typesystem.TRef{
			Mutability: solverir.MutNot,
			Substs: typesystem.SingleSubst(typesystem.TSlice{
				Substs: typesystem.SingleSubst(typesystem.TAdt{Adt: 1, Substs: typesystem.Substs{i32}}),
			}),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ty, roundTrip(t, m, tc.ty))
		})
	}
}

func TestTyRoundTripInterned(t *testing.T) {
	m, _ := newTestMapper()
	i32 := scalar(solverir.ScalarI32)

	cases := []struct {
		name string
		ty   typesystem.Ty
	}{
		{"closure", typesystem.TClosure{Def: 2, Expr: 40, Substs: typesystem.Substs{i32}}},
		{"fn def", typesystem.TFnDef{
			Callable: typesystem.CallableDefID{Kind: typesystem.CallableFunc, Def: 3},
			Substs:   typesystem.Substs{i32},
		}},
		{"placeholder", typesystem.TPlaceholder{Param: typesystem.TypeParamID{Parent: 5, Local: 0}}},
		{"opaque", typesystem.TOpaque{Opaque: typesystem.OpaqueTyID{Def: 6, Index: 0}, Substs: typesystem.Substs{i32}}},
		{"opaque alias", typesystem.TAlias{Alias: typesystem.OpaqueTy{
			Opaque: typesystem.OpaqueTyID{Def: 6, Index: 1},
			Substs: typesystem.Substs{i32},
		}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ty, roundTrip(t, m, tc.ty))
		})
	}
}

func TestTyToExternalFabricatesLifetime(t *testing.T) {
	m, _ := newTestMapper()

	ext, err := m.TyToExternal(typesystem.TRef{
		Mutability: solverir.MutNot,
		Substs:     typesystem.SingleSubst(scalar(solverir.ScalarI32)),
	})
	require.NoError(t, err)

	ref, ok := ext.(solverir.TyRef)
	require.True(t, ok, "expected a reference, got %T", ext)
	assert.Equal(t, solverir.LifetimeStatic, ref.Lifetime)
}

func TestTyToExternalFabricatesArrayLength(t *testing.T) {
	m, _ := newTestMapper()

	ext, err := m.TyToExternal(typesystem.TArray{
		Substs: typesystem.SingleSubst(scalar(solverir.ScalarI32)),
	})
	require.NoError(t, err)

	arr, ok := ext.(solverir.TyArray)
	require.True(t, ok, "expected an array, got %T", ext)
	assert.Equal(t, solverir.TyScalar{Scalar: solverir.ScalarUsize}, arr.Const.Ty)
	assert.Equal(t, solverir.ConstConcrete, arr.Const.Value)
}

func TestFnPointerSubstitutionShift(t *testing.T) {
	m, _ := newTestMapper()
	outer := typesystem.TBound{Bound: solverir.BoundVar{Debruijn: 0, Index: 0}}

	ext, err := m.TyToExternal(typesystem.TFnPtr{
		NumArgs: 0,
		Substs:  typesystem.Substs{outer},
	})
	require.NoError(t, err)

	fn, ok := ext.(solverir.TyFn)
	require.True(t, ok, "expected a function pointer, got %T", ext)
	assert.Equal(t, 0, fn.NumBinders)

	arg, ok := fn.Substitution[0].(solverir.TypeArg)
	require.True(t, ok)
	bound, ok := arg.Ty.(solverir.TyBound)
	require.True(t, ok, "expected a bound variable, got %T", arg.Ty)
	assert.Equal(t, solverir.DebruijnIndex(1), bound.Bound.Debruijn,
		"the signature substitution lives one scope in")
}

func TestInferenceVariableOutboundIsContractError(t *testing.T) {
	m, _ := newTestMapper()

	_, err := m.TyToExternal(typesystem.TInfer{Var: 3, Kind: solverir.TyVarGeneral})
	var contract *ContractError
	require.ErrorAs(t, err, &contract)

	_, err = m.TyToExternal(typesystem.TAdt{
		Adt:    1,
		Substs: typesystem.Substs{typesystem.TInfer{Var: 3, Kind: solverir.TyVarGeneral}},
	})
	assert.ErrorAs(t, err, &contract, "nested inference variables are caught too")
}

func TestSolverInferenceVariableDegrades(t *testing.T) {
	m, _ := newTestMapper()

	got, err := m.TyFromExternal(solverir.TyInference{Var: 12, Kind: solverir.TyVarInteger})
	require.NoError(t, err)
	assert.Equal(t, typesystem.TUnknown{}, got)
}

func TestErrorTypeMapsBothWays(t *testing.T) {
	m, _ := newTestMapper()

	ext, err := m.TyToExternal(typesystem.TUnknown{})
	require.NoError(t, err)
	assert.Equal(t, solverir.TyError{}, ext)

	back, err := m.TyFromExternal(solverir.TyError{})
	require.NoError(t, err)
	assert.Equal(t, typesystem.TUnknown{}, back)
}

func TestFnPointerBinderCountContract(t *testing.T) {
	m, _ := newTestMapper()

	_, err := m.TyFromExternal(solverir.TyFn{
		NumBinders:   2,
		Substitution: solverir.Substitution{solverir.TypeArg{Ty: solverir.TyStr{}}},
	})
	var contract *ContractError
	assert.ErrorAs(t, err, &contract)
}

func TestDynBinderCountContract(t *testing.T) {
	m, _ := newTestMapper()

	_, err := m.TyFromExternal(solverir.TyDyn{
		Bounds: solverir.Binders{
			VariableKinds: []solverir.VariableKind{
				{Tag: solverir.VarKindTy, TyKind: solverir.TyVarGeneral},
				{Tag: solverir.VarKindTy, TyKind: solverir.TyVarGeneral},
			},
		},
		Lifetime: solverir.LifetimeStatic,
	})
	var contract *ContractError
	assert.ErrorAs(t, err, &contract)
}

func TestNonRootUniverseContract(t *testing.T) {
	m, _ := newTestMapper()

	_, err := m.TyFromExternal(solverir.TyPlaceholder{
		Placeholder: solverir.PlaceholderIndex{UI: 1, Idx: 0},
	})
	var contract *ContractError
	assert.ErrorAs(t, err, &contract)
}

func TestUninternedHandleContract(t *testing.T) {
	m, _ := newTestMapper()
	var contract *ContractError

	_, err := m.TyFromExternal(solverir.TyClosure{Closure: 0})
	assert.ErrorAs(t, err, &contract)

	_, err = m.TyFromExternal(solverir.TyPlaceholder{
		Placeholder: solverir.PlaceholderIndex{UI: solverir.RootUniverse, Idx: 0},
	})
	assert.ErrorAs(t, err, &contract)
}

func TestGeneratorUnsupported(t *testing.T) {
	m, _ := newTestMapper()
	var unsupported *UnsupportedError

	_, err := m.TyFromExternal(solverir.TyGenerator{Generator: 1})
	assert.ErrorAs(t, err, &unsupported)

	_, err = m.TyFromExternal(solverir.TyGeneratorWitness{Generator: 1})
	assert.ErrorAs(t, err, &unsupported)
}

func TestNonTypeGenericArgUnsupported(t *testing.T) {
	m, _ := newTestMapper()
	var unsupported *UnsupportedError

	_, err := m.SubstsFromExternal(solverir.Substitution{
		solverir.LifetimeArg{Lifetime: solverir.LifetimeStatic},
	})
	assert.ErrorAs(t, err, &unsupported)

	_, err = m.SubstsFromExternal(solverir.Substitution{
		solverir.ConstArg{Const: solverir.Const{Value: solverir.ConstConcrete}},
	})
	assert.ErrorAs(t, err, &unsupported)
}

func TestDynDropsErrorPredicates(t *testing.T) {
	m, _ := newTestMapper()

	ext, err := m.TyToExternal(typesystem.TDyn{Predicates: []typesystem.GenericPredicate{
		typesystem.PredError{},
		implemented(1, typesystem.TBound{Bound: solverir.BoundVar{Debruijn: 0, Index: 0}}),
	}})
	require.NoError(t, err)

	dyn, ok := ext.(solverir.TyDyn)
	require.True(t, ok, "expected an existential type, got %T", ext)
	assert.Len(t, dyn.Bounds.Value, 1)
	assert.Len(t, dyn.Bounds.VariableKinds, 1)
}

func TestTraitRefRoundTrip(t *testing.T) {
	m, _ := newTestMapper()
	tr := typesystem.TraitRef{
		Trait:  3,
		Substs: typesystem.Substs{scalar(solverir.ScalarI32), typesystem.TStr{}},
	}

	ext, err := m.TraitRefToExternal(tr)
	require.NoError(t, err)
	assert.Equal(t, solverir.TraitID(3), ext.Trait)
	assert.Len(t, ext.Substitution, 2)

	back, err := m.TraitRefFromExternal(ext)
	require.NoError(t, err)
	assert.Equal(t, tr, back)
}

func TestProjectionTyRoundTrip(t *testing.T) {
	m, _ := newTestMapper()
	proj := typesystem.ProjectionTy{
		TypeAlias: 11,
		Substs:    typesystem.Substs{scalar(solverir.ScalarBool)},
	}

	ext, err := m.ProjectionTyToExternal(proj)
	require.NoError(t, err)
	back, err := m.ProjectionTyFromExternal(ext)
	require.NoError(t, err)
	assert.Equal(t, proj, back)
}
