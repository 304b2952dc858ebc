package mapping

import (
	"github.com/mightyiam/rust-analyzer/internal/solverir"
	"github.com/mightyiam/rust-analyzer/internal/typesystem"
)

// TyToExternal converts a semantic type to the solver IR. The input must be
// canonicalized first: a live inference variable reaching this path is a
// caller bug, not a user condition.
func (m *Mapper) TyToExternal(t typesystem.Ty) (solverir.Ty, error) {
	switch typ := t.(type) {
	case typesystem.TRef:
		return m.refToExternal(typ)

	case typesystem.TArray:
		return m.arrayToExternal(typ)

	case typesystem.TFnPtr:
		subst, err := m.SubstsToExternal(typ.Substs)
		if err != nil {
			return nil, err
		}
		// The signature substitution is shifted into the single wrapping
		// scope; the pointer itself declares zero binders.
		return solverir.TyFn{
			NumBinders:   0,
			Sig:          solverir.FnSig{Variadic: typ.Sig.Variadic},
			Substitution: solverir.SubstShiftedIn(subst, 1),
		}, nil

	case typesystem.TAssociated:
		subst, err := m.SubstsToExternal(typ.Substs)
		if err != nil {
			return nil, err
		}
		return solverir.TyAssociated{
			AssocType:    AssocTypeIDToExternal(typ.TypeAlias),
			Substitution: subst,
		}, nil

	case typesystem.TOpaque:
		subst, err := m.SubstsToExternal(typ.Substs)
		if err != nil {
			return nil, err
		}
		return solverir.TyOpaque{
			Opaque:       m.Interner.InternOpaque(typ.Opaque),
			Substitution: subst,
		}, nil

	case typesystem.TForeign:
		return solverir.TyForeign{Foreign: ForeignIDToExternal(typ.TypeAlias)}, nil

	case typesystem.TScalar:
		return solverir.TyScalar{Scalar: typ.Scalar}, nil

	case typesystem.TTuple:
		subst, err := m.SubstsToExternal(typ.Substs)
		if err != nil {
			return nil, err
		}
		return solverir.TyTuple{Cardinality: typ.Cardinality, Substitution: subst}, nil

	case typesystem.TRaw:
		pointee, err := m.singleToExternal(typ.Substs, typ)
		if err != nil {
			return nil, err
		}
		return solverir.TyRaw{Mutability: typ.Mutability, Ty: pointee}, nil

	case typesystem.TSlice:
		elem, err := m.singleToExternal(typ.Substs, typ)
		if err != nil {
			return nil, err
		}
		return solverir.TySlice{Ty: elem}, nil

	case typesystem.TStr:
		return solverir.TyStr{}, nil

	case typesystem.TNever:
		return solverir.TyNever{}, nil

	case typesystem.TFnDef:
		subst, err := m.SubstsToExternal(typ.Substs)
		if err != nil {
			return nil, err
		}
		return solverir.TyFnDef{
			FnDef:        m.Interner.InternCallable(typ.Callable),
			Substitution: subst,
		}, nil

	case typesystem.TClosure:
		subst, err := m.SubstsToExternal(typ.Substs)
		if err != nil {
			return nil, err
		}
		return solverir.TyClosure{
			Closure:      m.Interner.InternClosure(typ.Def, typ.Expr),
			Substitution: subst,
		}, nil

	case typesystem.TAdt:
		subst, err := m.SubstsToExternal(typ.Substs)
		if err != nil {
			return nil, err
		}
		return solverir.TyAdt{Adt: AdtIDToExternal(typ.Adt), Substitution: subst}, nil

	case typesystem.TAlias:
		alias, err := m.aliasToExternal(typ.Alias)
		if err != nil {
			return nil, err
		}
		return solverir.TyAlias{Alias: alias}, nil

	case typesystem.TPlaceholder:
		return solverir.TyPlaceholder{Placeholder: solverir.PlaceholderIndex{
			UI:  solverir.RootUniverse,
			Idx: m.Interner.InternTypeParam(typ.Param),
		}}, nil

	case typesystem.TBound:
		return solverir.TyBound{Bound: typ.Bound}, nil

	case typesystem.TInfer:
		return nil, errContract("uncanonicalized inference variable in solver-facing type")

	case typesystem.TDyn:
		return m.dynToExternal(typ)

	case typesystem.TUnknown:
		return solverir.TyError{}, nil

	default:
		return nil, errContract("unhandled type shape %T", t)
	}
}

// The analyzer does not model lifetimes, but the solver's IR structurally
// requires one on references; a static placeholder is fabricated and never
// read back.
func (m *Mapper) refToExternal(t typesystem.TRef) (solverir.Ty, error) {
	pointee, err := m.singleToExternal(t.Substs, t)
	if err != nil {
		return nil, err
	}
	return solverir.TyRef{
		Mutability: t.Mutability,
		Lifetime:   solverir.LifetimeStatic,
		Ty:         pointee,
	}, nil
}

// The analyzer does not model array lengths, but the solver's IR
// structurally requires a const slot; a concrete unsized placeholder typed
// usize is fabricated and never read back.
func (m *Mapper) arrayToExternal(t typesystem.TArray) (solverir.Ty, error) {
	elem, err := m.singleToExternal(t.Substs, t)
	if err != nil {
		return nil, err
	}
	length := solverir.Const{
		Ty:    solverir.TyScalar{Scalar: solverir.ScalarUsize},
		Value: solverir.ConstConcrete,
	}
	return solverir.TyArray{Ty: elem, Const: length}, nil
}

func (m *Mapper) singleToExternal(s typesystem.Substs, shape typesystem.Ty) (solverir.Ty, error) {
	if len(s) != 1 {
		return nil, errContract("%s carries %d substitution elements, want 1", shape, len(s))
	}
	return m.TyToExternal(s[0])
}

func (m *Mapper) aliasToExternal(a typesystem.AliasTy) (solverir.Alias, error) {
	switch alias := a.(type) {
	case typesystem.ProjectionTy:
		return m.ProjectionTyToExternal(alias)
	case typesystem.OpaqueTy:
		subst, err := m.SubstsToExternal(alias.Substs)
		if err != nil {
			return nil, err
		}
		return solverir.OpaqueTy{
			Opaque:       m.Interner.InternOpaque(alias.Opaque),
			Substitution: subst,
		}, nil
	default:
		return nil, errContract("unhandled alias shape %T", a)
	}
}

func (m *Mapper) dynToExternal(t typesystem.TDyn) (solverir.Ty, error) {
	clauses := make([]solverir.QuantifiedWhereClause, 0, len(t.Predicates))
	for _, p := range t.Predicates {
		if p.IsError() {
			continue
		}
		qc, err := m.PredicateToExternal(p)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, qc)
	}
	// One implicit bound variable for the trait object's own type.
	return solverir.TyDyn{
		Bounds: solverir.Binders{
			VariableKinds: []solverir.VariableKind{
				{Tag: solverir.VarKindTy, TyKind: solverir.TyVarGeneral},
			},
			Value: clauses,
		},
		Lifetime: solverir.LifetimeStatic,
	}, nil
}

// TyFromExternal converts a solver type back to the semantic model. Solver
// inference variables degrade to the unknown type: partial solver states are
// an ordinary occurrence, not an error.
func (m *Mapper) TyFromExternal(t solverir.Ty) (typesystem.Ty, error) {
	switch typ := t.(type) {
	case solverir.TyError:
		return typesystem.TUnknown{}, nil

	case solverir.TyInference:
		return typesystem.TUnknown{}, nil

	case solverir.TyArray:
		// The fabricated const length is ignored.
		elem, err := m.TyFromExternal(typ.Ty)
		if err != nil {
			return nil, err
		}
		return typesystem.TArray{Substs: typesystem.SingleSubst(elem)}, nil

	case solverir.TyPlaceholder:
		if typ.Placeholder.UI != solverir.RootUniverse {
			return nil, errContract("placeholder in universe %d, only the root universe is supported", typ.Placeholder.UI)
		}
		param, ok := m.Interner.LookupTypeParam(typ.Placeholder.Idx)
		if !ok {
			return nil, errContract("placeholder index %d was never interned", typ.Placeholder.Idx)
		}
		return typesystem.TPlaceholder{Param: param}, nil

	case solverir.TyAlias:
		alias, err := m.aliasFromExternal(typ.Alias)
		if err != nil {
			return nil, err
		}
		return typesystem.TAlias{Alias: alias}, nil

	case solverir.TyFn:
		if typ.NumBinders != 0 {
			return nil, errContract("function pointer declares %d binders, want 0", typ.NumBinders)
		}
		shifted, err := solverir.SubstShiftedOut(typ.Substitution, 1)
		if err != nil {
			return nil, errContract("function pointer signature: %v", err)
		}
		substs, err := m.SubstsFromExternal(shifted)
		if err != nil {
			return nil, err
		}
		if len(substs) == 0 {
			return nil, errContract("function pointer with empty signature substitution")
		}
		return typesystem.TFnPtr{
			NumArgs: len(substs) - 1,
			Sig:     typesystem.FnSig{Variadic: typ.Sig.Variadic},
			Substs:  substs,
		}, nil

	case solverir.TyBound:
		return typesystem.TBound{Bound: typ.Bound}, nil

	case solverir.TyDyn:
		if got := len(typ.Bounds.VariableKinds); got != 1 {
			return nil, errContract("existential type declares %d bound variables, want 1", got)
		}
		preds := make([]typesystem.GenericPredicate, 0, len(typ.Bounds.Value))
		for _, qc := range typ.Bounds.Value {
			p, err := m.PredicateFromExternal(qc)
			if err != nil {
				return nil, err
			}
			preds = append(preds, p)
		}
		return typesystem.TDyn{Predicates: preds}, nil

	case solverir.TyAdt:
		substs, err := m.SubstsFromExternal(typ.Substitution)
		if err != nil {
			return nil, err
		}
		return typesystem.TAdt{Adt: AdtIDFromExternal(typ.Adt), Substs: substs}, nil

	case solverir.TyAssociated:
		substs, err := m.SubstsFromExternal(typ.Substitution)
		if err != nil {
			return nil, err
		}
		return typesystem.TAssociated{
			TypeAlias: AssocTypeIDFromExternal(typ.AssocType),
			Substs:    substs,
		}, nil

	case solverir.TyOpaque:
		id, ok := m.Interner.LookupOpaque(typ.Opaque)
		if !ok {
			return nil, errContract("opaque type handle %d was never interned", typ.Opaque)
		}
		substs, err := m.SubstsFromExternal(typ.Substitution)
		if err != nil {
			return nil, err
		}
		return typesystem.TOpaque{Opaque: id, Substs: substs}, nil

	case solverir.TyScalar:
		return typesystem.TScalar{Scalar: typ.Scalar}, nil

	case solverir.TyTuple:
		substs, err := m.SubstsFromExternal(typ.Substitution)
		if err != nil {
			return nil, err
		}
		return typesystem.TTuple{Cardinality: typ.Cardinality, Substs: substs}, nil

	case solverir.TyRaw:
		pointee, err := m.TyFromExternal(typ.Ty)
		if err != nil {
			return nil, err
		}
		return typesystem.TRaw{
			Mutability: typ.Mutability,
			Substs:     typesystem.SingleSubst(pointee),
		}, nil

	case solverir.TySlice:
		elem, err := m.TyFromExternal(typ.Ty)
		if err != nil {
			return nil, err
		}
		return typesystem.TSlice{Substs: typesystem.SingleSubst(elem)}, nil

	case solverir.TyRef:
		// The fabricated lifetime is ignored.
		pointee, err := m.TyFromExternal(typ.Ty)
		if err != nil {
			return nil, err
		}
		return typesystem.TRef{
			Mutability: typ.Mutability,
			Substs:     typesystem.SingleSubst(pointee),
		}, nil

	case solverir.TyStr:
		return typesystem.TStr{}, nil

	case solverir.TyNever:
		return typesystem.TNever{}, nil

	case solverir.TyFnDef:
		def, ok := m.Interner.LookupCallable(typ.FnDef)
		if !ok {
			return nil, errContract("callable handle %d was never interned", typ.FnDef)
		}
		substs, err := m.SubstsFromExternal(typ.Substitution)
		if err != nil {
			return nil, err
		}
		return typesystem.TFnDef{Callable: def, Substs: substs}, nil

	case solverir.TyClosure:
		key, ok := m.Interner.LookupClosure(typ.Closure)
		if !ok {
			return nil, errContract("closure handle %d was never interned", typ.Closure)
		}
		substs, err := m.SubstsFromExternal(typ.Substitution)
		if err != nil {
			return nil, err
		}
		return typesystem.TClosure{Def: key.Def, Expr: key.Expr, Substs: substs}, nil

	case solverir.TyForeign:
		return typesystem.TForeign{TypeAlias: ForeignIDFromExternal(typ.Foreign)}, nil

	case solverir.TyGenerator, solverir.TyGeneratorWitness:
		return nil, errUnsupported("generator types")

	default:
		return nil, errContract("unhandled solver type shape %T", t)
	}
}

func (m *Mapper) aliasFromExternal(a solverir.Alias) (typesystem.AliasTy, error) {
	switch alias := a.(type) {
	case solverir.ProjectionTy:
		return m.ProjectionTyFromExternal(alias)
	case solverir.OpaqueTy:
		id, ok := m.Interner.LookupOpaque(alias.Opaque)
		if !ok {
			return nil, errContract("opaque type handle %d was never interned", alias.Opaque)
		}
		substs, err := m.SubstsFromExternal(alias.Substitution)
		if err != nil {
			return nil, err
		}
		return typesystem.OpaqueTy{Opaque: id, Substs: substs}, nil
	default:
		return nil, errContract("unhandled solver alias shape %T", a)
	}
}
