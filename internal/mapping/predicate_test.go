package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mightyiam/rust-analyzer/internal/solverir"
	"github.com/mightyiam/rust-analyzer/internal/typesystem"
)

func TestPredicateRoundTrip(t *testing.T) {
	m, _ := newTestMapper()
	i32 := scalar(solverir.ScalarI32)

	cases := []struct {
		name string
		pred typesystem.GenericPredicate
	}{
		{"implemented", implemented(2, i32, typesystem.TStr{})},
		{"projection", typesystem.PredProjection{Projection: typesystem.ProjectionPredicate{
			ProjectionTy: typesystem.ProjectionTy{TypeAlias: 5, Substs: typesystem.Substs{i32}},
			Ty:           typesystem.TStr{},
		}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qc, err := m.PredicateToExternal(tc.pred)
			require.NoError(t, err)
			assert.Empty(t, qc.VariableKinds, "this layer emits empty quantifier scopes")

			back, err := m.PredicateFromExternal(qc)
			require.NoError(t, err)
			assert.Equal(t, tc.pred, back)
		})
	}
}

func TestPredicateToExternalShiftsUnderQuantifier(t *testing.T) {
	m, _ := newTestMapper()
	bound := typesystem.TBound{Bound: solverir.BoundVar{Debruijn: 0, Index: 0}}

	qc, err := m.PredicateToExternal(implemented(1, bound))
	require.NoError(t, err)

	impl, ok := qc.Value.(solverir.ClauseImplemented)
	require.True(t, ok, "expected a trait clause, got %T", qc.Value)
	arg := impl.TraitRef.Substitution[0].(solverir.TypeArg)
	tb, ok := arg.Ty.(solverir.TyBound)
	require.True(t, ok)
	assert.Equal(t, solverir.DebruijnIndex(1), tb.Bound.Debruijn,
		"the clause body sits under the quantifier scope")
}

func TestErrorPredicateToExternalIsContractError(t *testing.T) {
	m, _ := newTestMapper()

	_, err := m.PredicateToExternal(typesystem.PredError{})
	var contract *ContractError
	assert.ErrorAs(t, err, &contract)
}

func TestPredicateFromExternalRejectsQuantifiedVars(t *testing.T) {
	m, _ := newTestMapper()

	// A clause whose body actually uses its own quantifier variable cannot
	// come back through this layer.
	qc := solverir.QuantifiedWhereClause{
		VariableKinds: []solverir.VariableKind{
			{Tag: solverir.VarKindTy, TyKind: solverir.TyVarGeneral},
		},
		Value: solverir.ClauseImplemented{TraitRef: solverir.TraitRef{
			Trait: 1,
			Substitution: solverir.Substitution{
				solverir.TypeArg{Ty: solverir.TyBound{Bound: solverir.BoundVar{Debruijn: 0, Index: 0}}},
			},
		}},
	}
	_, err := m.PredicateFromExternal(qc)
	var contract *ContractError
	assert.ErrorAs(t, err, &contract)
}

func TestOutlivesClausesUnsupported(t *testing.T) {
	m, _ := newTestMapper()
	var unsupported *UnsupportedError

	_, err := m.PredicateFromExternal(solverir.QuantifiedWhereClause{
		Value: solverir.ClauseLifetimeOutlives{},
	})
	assert.ErrorAs(t, err, &unsupported)

	_, err = m.PredicateFromExternal(solverir.QuantifiedWhereClause{
		Value: solverir.ClauseTypeOutlives{},
	})
	assert.ErrorAs(t, err, &unsupported)
}

func TestBuildObligation(t *testing.T) {
	m, _ := newTestMapper()
	i32 := scalar(solverir.ScalarI32)

	goal, err := m.BuildObligation(implemented(4, i32))
	require.NoError(t, err)
	impl, ok := goal.Holds.(solverir.ClauseImplemented)
	require.True(t, ok, "expected a trait goal, got %T", goal.Holds)
	assert.Equal(t, solverir.TraitID(4), impl.TraitRef.Trait)

	proj := typesystem.PredProjection{Projection: typesystem.ProjectionPredicate{
		ProjectionTy: typesystem.ProjectionTy{TypeAlias: 5, Substs: typesystem.Substs{i32}},
		Ty:           typesystem.TStr{},
	}}
	goal, err = m.BuildObligation(proj)
	require.NoError(t, err)
	_, ok = goal.Holds.(solverir.ClauseAliasEq)
	assert.True(t, ok, "expected an alias-eq goal, got %T", goal.Holds)

	_, err = m.BuildObligation(typesystem.PredError{})
	var contract *ContractError
	assert.ErrorAs(t, err, &contract)
}

func TestObligationGoalHasNoBinderShift(t *testing.T) {
	m, _ := newTestMapper()
	bound := typesystem.TBound{Bound: solverir.BoundVar{Debruijn: 0, Index: 0}}

	goal, err := m.ObligationToExternal(typesystem.ObligationTrait{
		TraitRef: typesystem.TraitRef{Trait: 1, Substs: typesystem.Substs{bound}},
	})
	require.NoError(t, err)

	impl := goal.Holds.(solverir.ClauseImplemented)
	arg := impl.TraitRef.Substitution[0].(solverir.TypeArg)
	tb := arg.Ty.(solverir.TyBound)
	assert.Equal(t, solverir.DebruijnIndex(0), tb.Bound.Debruijn,
		"goals carry no quantifier scope of their own")
}

func TestConvertWhereClauses(t *testing.T) {
	m, res := newTestMapper()
	param := typesystem.TBound{Bound: solverir.BoundVar{Debruijn: 0, Index: 0}}
	i32 := scalar(solverir.ScalarI32)

	const def typesystem.GenericDefID = 9
	res.predicates[def] = []typesystem.GenericPredicate{
		implemented(1, param),
		typesystem.PredError{},
		implemented(2, param, typesystem.TStr{}),
	}

	clauses, err := m.ConvertWhereClauses(def, typesystem.Substs{i32})
	require.NoError(t, err)
	require.Len(t, clauses, 2, "error predicates are dropped")

	// Declaration order survives, and the substitution was applied before
	// conversion.
	first := clauses[0].Value.(solverir.ClauseImplemented)
	assert.Equal(t, solverir.TraitID(1), first.TraitRef.Trait)
	self := first.TraitRef.Substitution[0].(solverir.TypeArg)
	assert.Equal(t, solverir.TyScalar{Scalar: solverir.ScalarI32}, self.Ty)

	second := clauses[1].Value.(solverir.ClauseImplemented)
	assert.Equal(t, solverir.TraitID(2), second.TraitRef.Trait)
}

func TestConvertWhereClausesEmptyDef(t *testing.T) {
	m, _ := newTestMapper()

	clauses, err := m.ConvertWhereClauses(42, nil)
	require.NoError(t, err)
	assert.Empty(t, clauses)
}
