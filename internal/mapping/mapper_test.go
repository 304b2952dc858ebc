package mapping

import (
	"github.com/mightyiam/rust-analyzer/internal/intern"
	"github.com/mightyiam/rust-analyzer/internal/solverir"
	"github.com/mightyiam/rust-analyzer/internal/typesystem"
)

// fakeResolver serves canned declaration facts.
type fakeResolver struct {
	predicates map[typesystem.GenericDefID][]typesystem.GenericPredicate
	owners     map[typesystem.TypeAliasID]typesystem.TraitID
}

func (r *fakeResolver) GenericPredicates(def typesystem.GenericDefID) []typesystem.GenericPredicate {
	return r.predicates[def]
}

func (r *fakeResolver) AssocTypeOwner(alias typesystem.TypeAliasID) (typesystem.TraitID, bool) {
	owner, ok := r.owners[alias]
	return owner, ok
}

func newTestMapper() (*Mapper, *fakeResolver) {
	res := &fakeResolver{
		predicates: make(map[typesystem.GenericDefID][]typesystem.GenericPredicate),
		owners:     make(map[typesystem.TypeAliasID]typesystem.TraitID),
	}
	return NewMapper(intern.NewTable(), res), res
}

func scalar(s solverir.Scalar) typesystem.Ty {
	return typesystem.TScalar{Scalar: s}
}

func implemented(trait typesystem.TraitID, substs ...typesystem.Ty) typesystem.GenericPredicate {
	return typesystem.PredImplemented{TraitRef: typesystem.TraitRef{
		Trait:  trait,
		Substs: typesystem.Substs(substs),
	}}
}
