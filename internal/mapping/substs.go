package mapping

import (
	"github.com/mightyiam/rust-analyzer/internal/solverir"
	"github.com/mightyiam/rust-analyzer/internal/typesystem"
)

// SubstsToExternal converts a generic-argument list element-wise, preserving
// order and length exactly.
func (m *Mapper) SubstsToExternal(s typesystem.Substs) (solverir.Substitution, error) {
	out := make(solverir.Substitution, len(s))
	for i, t := range s {
		ty, err := m.TyToExternal(t)
		if err != nil {
			return nil, err
		}
		out[i] = solverir.TypeArg{Ty: ty}
	}
	return out, nil
}

// SubstsFromExternal converts a solver substitution element-wise. Every
// element must carry a type: const-generic and lifetime entries are not
// modeled on the analyzer side.
func (m *Mapper) SubstsFromExternal(s solverir.Substitution) (typesystem.Substs, error) {
	out := make(typesystem.Substs, len(s))
	for i, arg := range s {
		ta, ok := arg.(solverir.TypeArg)
		if !ok {
			return nil, errUnsupported("non-type generic argument %s at position %d", arg, i)
		}
		ty, err := m.TyFromExternal(ta.Ty)
		if err != nil {
			return nil, err
		}
		out[i] = ty
	}
	return out, nil
}

// TraitRefToExternal converts a trait reference.
func (m *Mapper) TraitRefToExternal(t typesystem.TraitRef) (solverir.TraitRef, error) {
	subst, err := m.SubstsToExternal(t.Substs)
	if err != nil {
		return solverir.TraitRef{}, err
	}
	return solverir.TraitRef{
		Trait:        TraitIDToExternal(t.Trait),
		Substitution: subst,
	}, nil
}

// TraitRefFromExternal converts a solver trait reference back.
func (m *Mapper) TraitRefFromExternal(t solverir.TraitRef) (typesystem.TraitRef, error) {
	substs, err := m.SubstsFromExternal(t.Substitution)
	if err != nil {
		return typesystem.TraitRef{}, err
	}
	return typesystem.TraitRef{
		Trait:  TraitIDFromExternal(t.Trait),
		Substs: substs,
	}, nil
}

// ProjectionTyToExternal converts a projection.
func (m *Mapper) ProjectionTyToExternal(p typesystem.ProjectionTy) (solverir.ProjectionTy, error) {
	subst, err := m.SubstsToExternal(p.Substs)
	if err != nil {
		return solverir.ProjectionTy{}, err
	}
	return solverir.ProjectionTy{
		AssocType:    AssocTypeIDToExternal(p.TypeAlias),
		Substitution: subst,
	}, nil
}

// ProjectionTyFromExternal converts a solver projection back.
func (m *Mapper) ProjectionTyFromExternal(p solverir.ProjectionTy) (typesystem.ProjectionTy, error) {
	substs, err := m.SubstsFromExternal(p.Substitution)
	if err != nil {
		return typesystem.ProjectionTy{}, err
	}
	return typesystem.ProjectionTy{
		TypeAlias: AssocTypeIDFromExternal(p.AssocType),
		Substs:    substs,
	}, nil
}

// ProjectionPredicateToExternal converts a projection equality constraint.
func (m *Mapper) ProjectionPredicateToExternal(p typesystem.ProjectionPredicate) (solverir.AliasEq, error) {
	proj, err := m.ProjectionTyToExternal(p.ProjectionTy)
	if err != nil {
		return solverir.AliasEq{}, err
	}
	ty, err := m.TyToExternal(p.Ty)
	if err != nil {
		return solverir.AliasEq{}, err
	}
	return solverir.AliasEq{Alias: proj, Ty: ty}, nil
}
