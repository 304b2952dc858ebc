package solverir

import "fmt"

// De Bruijn shifting. Shifting in by n adjusts every free bound variable for
// placement inside n newly introduced binder scopes; shifting out removes n
// scopes and fails if any index actually refers into them, which is how
// "this scope is provably empty" invariants are enforced.

// ShiftedIn increments every free bound-variable index in t by n.
func ShiftedIn(t Ty, n int) Ty {
	shifted, err := shiftTy(t, n, 0)
	if err != nil {
		// Positive shifts cannot fail.
		panic(err)
	}
	return shifted
}

// ShiftedOut decrements every free bound-variable index in t by n.
func ShiftedOut(t Ty, n int) (Ty, error) {
	return shiftTy(t, -n, 0)
}

// SubstShiftedIn shifts every element of a substitution in by n.
func SubstShiftedIn(s Substitution, n int) Substitution {
	shifted, err := shiftSubst(s, n, 0)
	if err != nil {
		panic(err)
	}
	return shifted
}

// SubstShiftedOut shifts every element of a substitution out by n.
func SubstShiftedOut(s Substitution, n int) (Substitution, error) {
	return shiftSubst(s, -n, 0)
}

// ClauseShiftedIn shifts a where-clause in by n.
func ClauseShiftedIn(c WhereClause, n int) WhereClause {
	shifted, err := shiftClause(c, n, 0)
	if err != nil {
		panic(err)
	}
	return shifted
}

// ClauseShiftedOut shifts a where-clause out by n.
func ClauseShiftedOut(c WhereClause, n int) (WhereClause, error) {
	return shiftClause(c, -n, 0)
}

// TraitRefShiftedIn shifts a trait reference in by n.
func TraitRefShiftedIn(t TraitRef, n int) TraitRef {
	return TraitRef{Trait: t.Trait, Substitution: SubstShiftedIn(t.Substitution, n)}
}

func errEscape(b BoundVar, n int) error {
	return fmt.Errorf("bound variable %s escapes %d removed binder scope(s)", b, n)
}

func shiftBound(b BoundVar, delta int, depth DebruijnIndex) (BoundVar, error) {
	if b.Debruijn < depth {
		// Bound by a binder inside the shifted value; untouched.
		return b, nil
	}
	shifted := b.Debruijn + DebruijnIndex(delta)
	if shifted < depth {
		return BoundVar{}, errEscape(b, -delta)
	}
	return BoundVar{Debruijn: shifted, Index: b.Index}, nil
}

func shiftTy(t Ty, delta int, depth DebruijnIndex) (Ty, error) {
	switch typ := t.(type) {
	case TyBound:
		b, err := shiftBound(typ.Bound, delta, depth)
		if err != nil {
			return nil, err
		}
		return TyBound{Bound: b}, nil

	case TyTuple:
		subst, err := shiftSubst(typ.Substitution, delta, depth)
		if err != nil {
			return nil, err
		}
		return TyTuple{Cardinality: typ.Cardinality, Substitution: subst}, nil

	case TyArray:
		elem, err := shiftTy(typ.Ty, delta, depth)
		if err != nil {
			return nil, err
		}
		length, err := shiftConst(typ.Const, delta, depth)
		if err != nil {
			return nil, err
		}
		return TyArray{Ty: elem, Const: length}, nil

	case TySlice:
		elem, err := shiftTy(typ.Ty, delta, depth)
		if err != nil {
			return nil, err
		}
		return TySlice{Ty: elem}, nil

	case TyRaw:
		pointee, err := shiftTy(typ.Ty, delta, depth)
		if err != nil {
			return nil, err
		}
		return TyRaw{Mutability: typ.Mutability, Ty: pointee}, nil

	case TyRef:
		pointee, err := shiftTy(typ.Ty, delta, depth)
		if err != nil {
			return nil, err
		}
		return TyRef{Mutability: typ.Mutability, Lifetime: typ.Lifetime, Ty: pointee}, nil

	case TyFnDef:
		subst, err := shiftSubst(typ.Substitution, delta, depth)
		if err != nil {
			return nil, err
		}
		return TyFnDef{FnDef: typ.FnDef, Substitution: subst}, nil

	case TyClosure:
		subst, err := shiftSubst(typ.Substitution, delta, depth)
		if err != nil {
			return nil, err
		}
		return TyClosure{Closure: typ.Closure, Substitution: subst}, nil

	case TyAdt:
		subst, err := shiftSubst(typ.Substitution, delta, depth)
		if err != nil {
			return nil, err
		}
		return TyAdt{Adt: typ.Adt, Substitution: subst}, nil

	case TyAssociated:
		subst, err := shiftSubst(typ.Substitution, delta, depth)
		if err != nil {
			return nil, err
		}
		return TyAssociated{AssocType: typ.AssocType, Substitution: subst}, nil

	case TyOpaque:
		subst, err := shiftSubst(typ.Substitution, delta, depth)
		if err != nil {
			return nil, err
		}
		return TyOpaque{Opaque: typ.Opaque, Substitution: subst}, nil

	case TyFn:
		// The signature substitution sits inside one more binder level.
		subst, err := shiftSubst(typ.Substitution, delta, depth+1)
		if err != nil {
			return nil, err
		}
		return TyFn{NumBinders: typ.NumBinders, Sig: typ.Sig, Substitution: subst}, nil

	case TyDyn:
		bounds, err := shiftBinders(typ.Bounds, delta, depth)
		if err != nil {
			return nil, err
		}
		return TyDyn{Bounds: bounds, Lifetime: typ.Lifetime}, nil

	case TyAlias:
		alias, err := shiftAlias(typ.Alias, delta, depth)
		if err != nil {
			return nil, err
		}
		return TyAlias{Alias: alias}, nil

	case TyGenerator:
		subst, err := shiftSubst(typ.Substitution, delta, depth)
		if err != nil {
			return nil, err
		}
		return TyGenerator{Generator: typ.Generator, Substitution: subst}, nil

	case TyGeneratorWitness:
		subst, err := shiftSubst(typ.Substitution, delta, depth)
		if err != nil {
			return nil, err
		}
		return TyGeneratorWitness{Generator: typ.Generator, Substitution: subst}, nil

	default:
		// Leaf types carry no bound variables.
		return t, nil
	}
}

func shiftConst(c Const, delta int, depth DebruijnIndex) (Const, error) {
	if c.Value != ConstBoundVar {
		return c, nil
	}
	b, err := shiftBound(c.Bound, delta, depth)
	if err != nil {
		return Const{}, err
	}
	return Const{Ty: c.Ty, Value: c.Value, Bound: b}, nil
}

func shiftSubst(s Substitution, delta int, depth DebruijnIndex) (Substitution, error) {
	shifted := make(Substitution, len(s))
	for i, arg := range s {
		switch a := arg.(type) {
		case TypeArg:
			ty, err := shiftTy(a.Ty, delta, depth)
			if err != nil {
				return nil, err
			}
			shifted[i] = TypeArg{Ty: ty}
		case ConstArg:
			c, err := shiftConst(a.Const, delta, depth)
			if err != nil {
				return nil, err
			}
			shifted[i] = ConstArg{Const: c}
		default:
			// Lifetimes carry no bound variables in this layer.
			shifted[i] = arg
		}
	}
	return shifted, nil
}

func shiftAlias(a Alias, delta int, depth DebruijnIndex) (Alias, error) {
	switch alias := a.(type) {
	case ProjectionTy:
		subst, err := shiftSubst(alias.Substitution, delta, depth)
		if err != nil {
			return nil, err
		}
		return ProjectionTy{AssocType: alias.AssocType, Substitution: subst}, nil
	case OpaqueTy:
		subst, err := shiftSubst(alias.Substitution, delta, depth)
		if err != nil {
			return nil, err
		}
		return OpaqueTy{Opaque: alias.Opaque, Substitution: subst}, nil
	default:
		return a, nil
	}
}

func shiftClause(c WhereClause, delta int, depth DebruijnIndex) (WhereClause, error) {
	switch clause := c.(type) {
	case ClauseImplemented:
		subst, err := shiftSubst(clause.TraitRef.Substitution, delta, depth)
		if err != nil {
			return nil, err
		}
		return ClauseImplemented{TraitRef: TraitRef{Trait: clause.TraitRef.Trait, Substitution: subst}}, nil

	case ClauseAliasEq:
		alias, err := shiftAlias(clause.AliasEq.Alias, delta, depth)
		if err != nil {
			return nil, err
		}
		ty, err := shiftTy(clause.AliasEq.Ty, delta, depth)
		if err != nil {
			return nil, err
		}
		return ClauseAliasEq{AliasEq: AliasEq{Alias: alias, Ty: ty}}, nil

	case ClauseTypeOutlives:
		ty, err := shiftTy(clause.Ty, delta, depth)
		if err != nil {
			return nil, err
		}
		return ClauseTypeOutlives{Ty: ty, Lifetime: clause.Lifetime}, nil

	default:
		return c, nil
	}
}

func shiftBinders(b Binders, delta int, depth DebruijnIndex) (Binders, error) {
	inner := depth + 1
	clauses := make([]QuantifiedWhereClause, len(b.Value))
	for i, q := range b.Value {
		shifted, err := shiftClause(q.Value, delta, inner+1)
		if err != nil {
			return Binders{}, err
		}
		clauses[i] = QuantifiedWhereClause{VariableKinds: q.VariableKinds, Value: shifted}
	}
	return Binders{VariableKinds: b.VariableKinds, Value: clauses}, nil
}
