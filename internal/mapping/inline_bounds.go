package mapping

import (
	"github.com/mightyiam/rust-analyzer/internal/solverir"
	"github.com/mightyiam/rust-analyzer/internal/typesystem"
)

// PredicateToInlineBound derives a self-elided bound from a predicate, for
// contexts where the self type is implicit (existential and opaque type
// declarations). It returns (nil, nil) when the predicate does not nominate
// selfTy, since only predicates with the expected self type can be turned
// back into type bounds. The match is purely syntactic.
func (m *Mapper) PredicateToInlineBound(pred typesystem.GenericPredicate, selfTy typesystem.Ty) (solverir.InlineBound, error) {
	switch p := pred.(type) {
	case typesystem.PredImplemented:
		tr := p.TraitRef
		if len(tr.Substs) == 0 || !typesystem.TyEqual(tr.Substs[0], selfTy) {
			return nil, nil
		}
		args, err := m.argsNoSelf(tr.Substs)
		if err != nil {
			return nil, err
		}
		return solverir.TraitBound{
			Trait:      TraitIDToExternal(tr.Trait),
			ArgsNoSelf: args,
		}, nil

	case typesystem.PredProjection:
		proj := p.Projection.ProjectionTy
		if len(proj.Substs) == 0 || !typesystem.TyEqual(proj.Substs[0], selfTy) {
			return nil, nil
		}
		trait, ok := m.Resolver.AssocTypeOwner(proj.TypeAlias)
		if !ok {
			return nil, errContract("associated type #%d has no owning trait", proj.TypeAlias)
		}
		args, err := m.argsNoSelf(proj.Substs)
		if err != nil {
			return nil, err
		}
		value, err := m.TyToExternal(p.Projection.Ty)
		if err != nil {
			return nil, err
		}
		return solverir.AliasEqBound{
			TraitBound: solverir.TraitBound{
				Trait:      TraitIDToExternal(trait),
				ArgsNoSelf: args,
			},
			AssocType: AssocTypeIDToExternal(proj.TypeAlias),
			// Generic associated types are unsupported, so the bound never
			// carries extra parameters.
			Parameters: nil,
			Value:      value,
		}, nil

	case typesystem.PredError:
		return nil, nil

	default:
		return nil, errContract("unhandled predicate shape %T", pred)
	}
}

func (m *Mapper) argsNoSelf(substs typesystem.Substs) ([]solverir.GenericArg, error) {
	args := make([]solverir.GenericArg, 0, len(substs)-1)
	for _, t := range substs[1:] {
		ty, err := m.TyToExternal(t)
		if err != nil {
			return nil, err
		}
		args = append(args, solverir.TypeArg{Ty: ty})
	}
	return args, nil
}
