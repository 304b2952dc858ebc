package mapping

import (
	"github.com/mightyiam/rust-analyzer/internal/solverir"
	"github.com/mightyiam/rust-analyzer/internal/typesystem"
)

// makeBinders wraps a clause in a binder scope of numVars general type
// variables.
func makeBinders(value solverir.WhereClause, numVars int) solverir.QuantifiedWhereClause {
	kinds := make([]solverir.VariableKind, numVars)
	for i := range kinds {
		kinds[i] = solverir.VariableKind{Tag: solverir.VarKindTy, TyKind: solverir.TyVarGeneral}
	}
	return solverir.QuantifiedWhereClause{VariableKinds: kinds, Value: value}
}

// PredicateToExternal converts a predicate to a quantified where-clause. The
// clause content is shifted into the empty quantifier scope that wraps it.
// Converting an error predicate is a contract violation: callers filter
// error predicates before conversion.
func (m *Mapper) PredicateToExternal(p typesystem.GenericPredicate) (solverir.QuantifiedWhereClause, error) {
	switch pred := p.(type) {
	case typesystem.PredImplemented:
		tr, err := m.TraitRefToExternal(pred.TraitRef)
		if err != nil {
			return solverir.QuantifiedWhereClause{}, err
		}
		clause := solverir.ClauseImplemented{TraitRef: solverir.TraitRefShiftedIn(tr, 1)}
		return makeBinders(clause, 0), nil

	case typesystem.PredProjection:
		eq, err := m.ProjectionPredicateToExternal(pred.Projection)
		if err != nil {
			return solverir.QuantifiedWhereClause{}, err
		}
		clause := solverir.ClauseShiftedIn(solverir.ClauseAliasEq{AliasEq: eq}, 1)
		return makeBinders(clause, 0), nil

	case typesystem.PredError:
		return solverir.QuantifiedWhereClause{}, errContract("error predicate reached solver conversion")

	default:
		return solverir.QuantifiedWhereClause{}, errContract("unhandled predicate shape %T", p)
	}
}

// PredicateFromExternal converts a quantified where-clause back. This layer
// never produces clauses with bound quantifier variables, so the quantifier
// scope must be provably empty.
func (m *Mapper) PredicateFromExternal(q solverir.QuantifiedWhereClause) (typesystem.GenericPredicate, error) {
	clause, err := solverir.ClauseShiftedOut(q.Value, 1)
	if err != nil {
		return nil, errContract("unexpected bound variables in where clause: %v", err)
	}

	switch c := clause.(type) {
	case solverir.ClauseImplemented:
		tr, err := m.TraitRefFromExternal(c.TraitRef)
		if err != nil {
			return nil, err
		}
		return typesystem.PredImplemented{TraitRef: tr}, nil

	case solverir.ClauseAliasEq:
		proj, ok := c.AliasEq.Alias.(solverir.ProjectionTy)
		if !ok {
			return nil, errUnsupported("alias equality over %T", c.AliasEq.Alias)
		}
		projectionTy, err := m.ProjectionTyFromExternal(proj)
		if err != nil {
			return nil, err
		}
		ty, err := m.TyFromExternal(c.AliasEq.Ty)
		if err != nil {
			return nil, err
		}
		return typesystem.PredProjection{Projection: typesystem.ProjectionPredicate{
			ProjectionTy: projectionTy,
			Ty:           ty,
		}}, nil

	case solverir.ClauseLifetimeOutlives, solverir.ClauseTypeOutlives:
		return nil, errUnsupported("outlives where-clauses")

	default:
		return nil, errContract("unhandled solver where-clause shape %T", clause)
	}
}

// ObligationToExternal converts an obligation to a solver goal.
func (m *Mapper) ObligationToExternal(o typesystem.Obligation) (solverir.DomainGoal, error) {
	switch ob := o.(type) {
	case typesystem.ObligationTrait:
		tr, err := m.TraitRefToExternal(ob.TraitRef)
		if err != nil {
			return solverir.DomainGoal{}, err
		}
		return solverir.DomainGoal{Holds: solverir.ClauseImplemented{TraitRef: tr}}, nil

	case typesystem.ObligationProjection:
		eq, err := m.ProjectionPredicateToExternal(ob.Projection)
		if err != nil {
			return solverir.DomainGoal{}, err
		}
		return solverir.DomainGoal{Holds: solverir.ClauseAliasEq{AliasEq: eq}}, nil

	default:
		return solverir.DomainGoal{}, errContract("unhandled obligation shape %T", o)
	}
}

// BuildObligation converts a non-error predicate of interest into the goal
// to submit. Calling it with an error predicate is a contract violation.
func (m *Mapper) BuildObligation(p typesystem.GenericPredicate) (solverir.DomainGoal, error) {
	switch pred := p.(type) {
	case typesystem.PredImplemented:
		return m.ObligationToExternal(typesystem.ObligationTrait{TraitRef: pred.TraitRef})
	case typesystem.PredProjection:
		return m.ObligationToExternal(typesystem.ObligationProjection{Projection: pred.Projection})
	case typesystem.PredError:
		return solverir.DomainGoal{}, errContract("error predicate passed as solver goal")
	default:
		return solverir.DomainGoal{}, errContract("unhandled predicate shape %T", p)
	}
}

// ConvertWhereClauses fetches a definition's declared predicates, applies
// the substitution, drops error predicates and converts the remainder in
// declaration order. Ordering is load-bearing: the solver caches on the
// resulting clause lists.
func (m *Mapper) ConvertWhereClauses(def typesystem.GenericDefID, substs typesystem.Substs) ([]solverir.QuantifiedWhereClause, error) {
	predicates := m.Resolver.GenericPredicates(def)
	result := make([]solverir.QuantifiedWhereClause, 0, len(predicates))
	for _, pred := range predicates {
		if pred.IsError() {
			// Skip errored predicates completely.
			continue
		}
		qc, err := m.PredicateToExternal(typesystem.PredicateSubst(pred, substs))
		if err != nil {
			return nil, err
		}
		result = append(result, qc)
	}
	return result, nil
}
