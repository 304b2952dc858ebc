package mapping

import (
	"github.com/mightyiam/rust-analyzer/internal/solverir"
	"github.com/mightyiam/rust-analyzer/internal/typesystem"
)

func kindsToExternal(kinds []solverir.TyVariableKind) []solverir.CanonicalVarKind {
	out := make([]solverir.CanonicalVarKind, len(kinds))
	for i, k := range kinds {
		out[i] = solverir.CanonicalVarKind{
			Kind:     solverir.VariableKind{Tag: solverir.VarKindTy, TyKind: k},
			Universe: solverir.RootUniverse,
		}
	}
	return out
}

func kindsFromExternal(binders []solverir.CanonicalVarKind) ([]solverir.TyVariableKind, error) {
	out := make([]solverir.TyVariableKind, len(binders))
	for i, b := range binders {
		switch b.Kind.Tag {
		case solverir.VarKindTy:
			out[i] = b.Kind.TyKind
		case solverir.VarKindLifetime:
			// The solver can introduce fresh lifetime variables. Their uses
			// are never observed on this side, but dropping the entry would
			// desynchronize every following index, so a general type
			// variable stands in positionally.
			out[i] = solverir.TyVarGeneral
		case solverir.VarKindConst:
			return nil, errContract("solver introduced a const variable, none expected from this clause set")
		default:
			return nil, errContract("unhandled canonical variable kind %v", b.Kind.Tag)
		}
	}
	return out, nil
}

// CanonicalToExternal converts a canonical type; every recorded kind sits in
// the root universe.
func (m *Mapper) CanonicalToExternal(c typesystem.Canonical) (solverir.CanonicalTy, error) {
	value, err := m.TyToExternal(c.Value)
	if err != nil {
		return solverir.CanonicalTy{}, err
	}
	return solverir.CanonicalTy{Binders: kindsToExternal(c.Kinds), Value: value}, nil
}

// CanonicalFromExternal converts a solver canonical type back.
func (m *Mapper) CanonicalFromExternal(c solverir.CanonicalTy) (typesystem.Canonical, error) {
	kinds, err := kindsFromExternal(c.Binders)
	if err != nil {
		return typesystem.Canonical{}, err
	}
	value, err := m.TyFromExternal(c.Value)
	if err != nil {
		return typesystem.Canonical{}, err
	}
	return typesystem.Canonical{Kinds: kinds, Value: value}, nil
}

// DecanonicalizeTy converts a solver canonical type and instantiates each
// bound variable with a concrete type drawn per kind, in kind-list order.
func (m *Mapper) DecanonicalizeTy(c solverir.CanonicalTy, fresh func(solverir.TyVariableKind) typesystem.Ty) (typesystem.Ty, error) {
	converted, err := m.CanonicalFromExternal(c)
	if err != nil {
		return nil, err
	}
	return typesystem.Instantiate(converted, fresh), nil
}

// BuildEnvironment converts a generic context's predicate set into the
// solver environment. Error predicates are silently dropped so they cannot
// poison the environment with an unsatisfiable clause.
func (m *Mapper) BuildEnvironment(env *typesystem.TraitEnvironment) (solverir.Environment, error) {
	clauses := make([]solverir.ProgramClause, 0, len(env.Predicates))
	for _, pred := range env.Predicates {
		if pred.IsError() {
			continue
		}
		qc, err := m.PredicateToExternal(pred)
		if err != nil {
			return solverir.Environment{}, err
		}
		clause := solverir.ProgramClause{Consequence: qc.Value}.IntoFromEnv()
		clauses = append(clauses, clause)
	}
	return solverir.NewEnvironment().AddClauses(clauses), nil
}

// InEnvironmentToExternal converts a goal paired with its environment.
func (m *Mapper) InEnvironmentToExternal(ie typesystem.InEnvironment) (solverir.InEnvironment, error) {
	env, err := m.BuildEnvironment(ie.Environment)
	if err != nil {
		return solverir.InEnvironment{}, err
	}
	goal, err := m.ObligationToExternal(ie.Goal)
	if err != nil {
		return solverir.InEnvironment{}, err
	}
	return solverir.InEnvironment{Environment: env, Goal: goal}, nil
}

// CanonicalGoalToExternal converts a canonicalized obligation-in-environment,
// the unit handed to the solver for one query.
func (m *Mapper) CanonicalGoalToExternal(g typesystem.CanonicalGoal) (solverir.CanonicalGoal, error) {
	value, err := m.InEnvironmentToExternal(g.Value)
	if err != nil {
		return solverir.CanonicalGoal{}, err
	}
	return solverir.CanonicalGoal{Binders: kindsToExternal(g.Kinds), Value: value}, nil
}
