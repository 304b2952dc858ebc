package typesystem

import (
	"reflect"

	"github.com/mightyiam/rust-analyzer/internal/solverir"
)

// TyEqual reports structural equality of two types.
func TyEqual(a, b Ty) bool {
	return reflect.DeepEqual(a, b)
}

// rewriteFn is consulted at every node of a type tree; binders counts the
// binder scopes passed on the way down. Returning ok=true replaces the node
// wholesale, otherwise recursion proceeds structurally.
type rewriteFn func(t Ty, binders int) (Ty, bool)

func rewriteTy(t Ty, binders int, f rewriteFn) Ty {
	if t == nil {
		return nil
	}
	if replaced, ok := f(t, binders); ok {
		return replaced
	}

	switch typ := t.(type) {
	case TTuple:
		return TTuple{Cardinality: typ.Cardinality, Substs: rewriteSubsts(typ.Substs, binders, f)}
	case TArray:
		return TArray{Substs: rewriteSubsts(typ.Substs, binders, f)}
	case TSlice:
		return TSlice{Substs: rewriteSubsts(typ.Substs, binders, f)}
	case TRaw:
		return TRaw{Mutability: typ.Mutability, Substs: rewriteSubsts(typ.Substs, binders, f)}
	case TRef:
		return TRef{Mutability: typ.Mutability, Substs: rewriteSubsts(typ.Substs, binders, f)}
	case TFnPtr:
		return TFnPtr{NumArgs: typ.NumArgs, Sig: typ.Sig, Substs: rewriteSubsts(typ.Substs, binders, f)}
	case TClosure:
		return TClosure{Def: typ.Def, Expr: typ.Expr, Substs: rewriteSubsts(typ.Substs, binders, f)}
	case TAdt:
		return TAdt{Adt: typ.Adt, Substs: rewriteSubsts(typ.Substs, binders, f)}
	case TAssociated:
		return TAssociated{TypeAlias: typ.TypeAlias, Substs: rewriteSubsts(typ.Substs, binders, f)}
	case TOpaque:
		return TOpaque{Opaque: typ.Opaque, Substs: rewriteSubsts(typ.Substs, binders, f)}
	case TFnDef:
		return TFnDef{Callable: typ.Callable, Substs: rewriteSubsts(typ.Substs, binders, f)}
	case TAlias:
		return TAlias{Alias: rewriteAlias(typ.Alias, binders, f)}
	case TDyn:
		// Existential predicates live under one implicit binder scope.
		preds := make([]GenericPredicate, len(typ.Predicates))
		for i, p := range typ.Predicates {
			preds[i] = rewritePredicate(p, binders+1, f)
		}
		return TDyn{Predicates: preds}
	default:
		return t
	}
}

func rewriteSubsts(s Substs, binders int, f rewriteFn) Substs {
	out := make(Substs, len(s))
	for i, t := range s {
		out[i] = rewriteTy(t, binders, f)
	}
	return out
}

func rewriteAlias(a AliasTy, binders int, f rewriteFn) AliasTy {
	switch alias := a.(type) {
	case ProjectionTy:
		return ProjectionTy{TypeAlias: alias.TypeAlias, Substs: rewriteSubsts(alias.Substs, binders, f)}
	case OpaqueTy:
		return OpaqueTy{Opaque: alias.Opaque, Substs: rewriteSubsts(alias.Substs, binders, f)}
	default:
		return a
	}
}

func rewritePredicate(p GenericPredicate, binders int, f rewriteFn) GenericPredicate {
	switch pred := p.(type) {
	case PredImplemented:
		return PredImplemented{TraitRef: TraitRef{
			Trait:  pred.TraitRef.Trait,
			Substs: rewriteSubsts(pred.TraitRef.Substs, binders, f),
		}}
	case PredProjection:
		proj := rewriteAlias(pred.Projection.ProjectionTy, binders, f).(ProjectionTy)
		return PredProjection{Projection: ProjectionPredicate{
			ProjectionTy: proj,
			Ty:           rewriteTy(pred.Projection.Ty, binders, f),
		}}
	default:
		return p
	}
}

// SubstBoundVars replaces each free bound variable of the outermost scope
// with the corresponding substitution element. Substitution elements must not
// themselves contain free bound variables.
func SubstBoundVars(t Ty, substs Substs) Ty {
	return rewriteTy(t, 0, substReplacer(substs))
}

// PredicateSubst instantiates a declared predicate with concrete generic
// arguments.
func PredicateSubst(p GenericPredicate, substs Substs) GenericPredicate {
	return rewritePredicate(p, 0, substReplacer(substs))
}

func substReplacer(substs Substs) rewriteFn {
	return func(t Ty, binders int) (Ty, bool) {
		bound, ok := t.(TBound)
		if !ok {
			return nil, false
		}
		if int(bound.Bound.Debruijn) != binders {
			return t, true
		}
		if bound.Bound.Index >= len(substs) {
			return t, true
		}
		return substs[bound.Bound.Index], true
	}
}

// Canonicalize replaces each syntactically distinct free inference variable
// in t with a fresh bound index, recording its kind in order of first
// occurrence. A value with no free inference variables canonicalizes to an
// empty kind list and a structurally unchanged value.
func Canonicalize(t Ty) Canonical {
	c := &canonicalizer{seen: make(map[solverir.InferenceVar]int)}
	value := rewriteTy(t, 0, c.replace)
	return Canonical{Kinds: c.kinds, Value: value}
}

// CanonicalizeGoal canonicalizes an obligation and pairs it with its
// environment. The environment is built per generic context and carries no
// inference variables of its own.
func CanonicalizeGoal(env *TraitEnvironment, goal Obligation) CanonicalGoal {
	c := &canonicalizer{seen: make(map[solverir.InferenceVar]int)}
	var value Obligation
	switch o := goal.(type) {
	case ObligationTrait:
		value = ObligationTrait{TraitRef: TraitRef{
			Trait:  o.TraitRef.Trait,
			Substs: rewriteSubsts(o.TraitRef.Substs, 0, c.replace),
		}}
	case ObligationProjection:
		proj := rewriteAlias(o.Projection.ProjectionTy, 0, c.replace).(ProjectionTy)
		value = ObligationProjection{Projection: ProjectionPredicate{
			ProjectionTy: proj,
			Ty:           rewriteTy(o.Projection.Ty, 0, c.replace),
		}}
	default:
		value = goal
	}
	return CanonicalGoal{
		Kinds: c.kinds,
		Value: InEnvironment{Environment: env, Goal: value},
	}
}

type canonicalizer struct {
	kinds []solverir.TyVariableKind
	seen  map[solverir.InferenceVar]int
}

func (c *canonicalizer) replace(t Ty, binders int) (Ty, bool) {
	infer, ok := t.(TInfer)
	if !ok {
		return nil, false
	}
	idx, ok := c.seen[infer.Var]
	if !ok {
		idx = len(c.kinds)
		c.seen[infer.Var] = idx
		c.kinds = append(c.kinds, infer.Kind)
	}
	return TBound{Bound: solverir.BoundVar{
		Debruijn: solverir.DebruijnIndex(binders),
		Index:    idx,
	}}, true
}

// Instantiate replaces each bound variable of the canonical value with a
// concrete type produced per recorded kind, in kind-list order.
func Instantiate(c Canonical, fresh func(solverir.TyVariableKind) Ty) Ty {
	substs := make(Substs, len(c.Kinds))
	for i, k := range c.Kinds {
		substs[i] = fresh(k)
	}
	return SubstBoundVars(c.Value, substs)
}
