// Package typesystem is the analyzer-side semantic type model: the closed set
// of type shapes produced by analysis, together with substitutions,
// predicates, obligations and canonical forms. Values are immutable once
// built. Conversion to and from the external solver's IR lives in
// internal/mapping.
package typesystem

import (
	"fmt"
	"strings"

	"github.com/mightyiam/rust-analyzer/internal/config"
	"github.com/mightyiam/rust-analyzer/internal/solverir"
)

// GenericDefID identifies a definition that can carry generic parameters.
type GenericDefID uint32

// TraitID identifies a trait definition.
type TraitID uint32

// ImplID identifies a trait implementation.
type ImplID uint32

// AdtID identifies a struct-like (algebraic) type definition.
type AdtID uint32

// TypeAliasID identifies an associated or foreign type declaration.
type TypeAliasID uint32

// DefWithBodyID identifies a definition owning an expression body.
type DefWithBodyID uint32

// ExprID identifies an expression site within a body.
type ExprID uint32

// TypeParamID identifies one generic type parameter of a definition.
type TypeParamID struct {
	Parent GenericDefID
	Local  uint32
}

// OpaqueTyID identifies one opaque type position within a definition.
type OpaqueTyID struct {
	Def   GenericDefID
	Index uint32
}

// CallableKind discriminates callable definitions.
type CallableKind int

const (
	CallableFunc CallableKind = iota
	CallableStructCtor
	CallableEnumVariantCtor
)

// CallableDefID identifies a function or constructor definition.
type CallableDefID struct {
	Kind CallableKind
	Def  uint32
}

// Ty is the interface for all semantic types.
type Ty interface {
	String() string
	// aTy restricts implementations to this package.
	aTy()
}

// Substs is an ordered sequence of types substituted for generic parameters.
// Order mirrors declaration order. Length always equals the referenced
// definition's generic arity, plus one leading self slot where the shape is
// self-relative (trait references, projections).
type Substs []Ty

// SingleSubst wraps one type as a substitution.
func SingleSubst(t Ty) Substs {
	return Substs{t}
}

func (s Substs) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// TScalar is a primitive machine type.
type TScalar struct {
	Scalar solverir.Scalar
}

// TTuple is a tuple; Cardinality duplicates the substitution length.
type TTuple struct {
	Cardinality int
	Substs      Substs
}

// TArray is a fixed-length sequence. Its length is not modeled; the
// substitution holds the single element type.
type TArray struct {
	Substs Substs
}

// TSlice is an unsized sequence; single-element substitution.
type TSlice struct {
	Substs Substs
}

// TRaw is a raw pointer; single-element substitution.
type TRaw struct {
	Mutability solverir.Mutability
	Substs     Substs
}

// TRef is a reference; single-element substitution. Lifetimes are not
// modeled.
type TRef struct {
	Mutability solverir.Mutability
	Substs     Substs
}

// FnSig is the shape of a function pointer signature.
type FnSig struct {
	Variadic bool
}

// TFnPtr is a function pointer. The substitution holds the argument types
// followed by the return type, so NumArgs is always len(Substs)-1.
type TFnPtr struct {
	NumArgs int
	Sig     FnSig
	Substs  Substs
}

// TClosure is a closure identified by its defining body and expression site;
// the composite key disambiguates structurally identical closures.
type TClosure struct {
	Def    DefWithBodyID
	Expr   ExprID
	Substs Substs
}

// TAdt is a struct-like type applied to generic arguments.
type TAdt struct {
	Adt    AdtID
	Substs Substs
}

// TAssociated is an associated type used as a nominal type, before any
// normalization.
type TAssociated struct {
	TypeAlias TypeAliasID
	Substs    Substs
}

// TOpaque is an opaque type used as a nominal type.
type TOpaque struct {
	Opaque OpaqueTyID
	Substs Substs
}

// TForeign is an externally defined, structurally opaque type.
type TForeign struct {
	TypeAlias TypeAliasID
}

// TStr is the unsized string type.
type TStr struct{}

// TNever is the diverging type.
type TNever struct{}

// TDyn is an existential type over an ordered set of predicates. The
// predicates contain one implicit binder scope whose bound variable 0 is the
// erased self type.
type TDyn struct {
	Predicates []GenericPredicate
}

// TFnDef is a zero-sized type identifying one particular callable.
type TFnDef struct {
	Callable CallableDefID
	Substs   Substs
}

// AliasTy is a type alias (projection or opaque) subject to normalization.
type AliasTy interface {
	String() string
	aAliasTy()
}

// ProjectionTy names (associated type, substitution); the substitution's
// first element is the self type.
type ProjectionTy struct {
	TypeAlias TypeAliasID
	Substs    Substs
}

// OpaqueTy names an opaque type together with its generic arguments.
type OpaqueTy struct {
	Opaque OpaqueTyID
	Substs Substs
}

func (ProjectionTy) aAliasTy() {}
func (OpaqueTy) aAliasTy()     {}

func (p ProjectionTy) String() string {
	return fmt.Sprintf("<alias#%d<%s>>", p.TypeAlias, p.Substs)
}

func (o OpaqueTy) String() string {
	return fmt.Sprintf("<opaque#%d.%d<%s>>", o.Opaque.Def, o.Opaque.Index, o.Substs)
}

// TAlias is an alias type in type position.
type TAlias struct {
	Alias AliasTy
}

// TPlaceholder is a generic parameter made concrete for the scope of its
// definition.
type TPlaceholder struct {
	Param TypeParamID
}

// TBound is a variable bound by an enclosing binder.
type TBound struct {
	Bound solverir.BoundVar
}

// TInfer is an ephemeral, session-local inference variable. It must never
// reach the solver uncanonicalized.
type TInfer struct {
	Var  solverir.InferenceVar
	Kind solverir.TyVariableKind
}

// TUnknown marks a type the analyzer could not determine. It converts to the
// solver's error type and back.
type TUnknown struct{}

func (TScalar) aTy()      {}
func (TTuple) aTy()       {}
func (TArray) aTy()       {}
func (TSlice) aTy()       {}
func (TRaw) aTy()         {}
func (TRef) aTy()         {}
func (TFnPtr) aTy()       {}
func (TClosure) aTy()     {}
func (TAdt) aTy()         {}
func (TAssociated) aTy()  {}
func (TOpaque) aTy()      {}
func (TForeign) aTy()     {}
func (TStr) aTy()         {}
func (TNever) aTy()       {}
func (TDyn) aTy()         {}
func (TFnDef) aTy()       {}
func (TAlias) aTy()       {}
func (TPlaceholder) aTy() {}
func (TBound) aTy()       {}
func (TInfer) aTy()       {}
func (TUnknown) aTy()     {}

func (t TScalar) String() string { return t.Scalar.String() }

func (t TTuple) String() string { return fmt.Sprintf("(%s)", t.Substs) }

func (t TArray) String() string { return fmt.Sprintf("[%s; _]", t.Substs) }

func (t TSlice) String() string { return fmt.Sprintf("[%s]", t.Substs) }

func (t TRaw) String() string { return fmt.Sprintf("*%s %s", t.Mutability, t.Substs) }

func (t TRef) String() string {
	if t.Mutability == solverir.MutMut {
		return fmt.Sprintf("&mut %s", t.Substs)
	}
	return fmt.Sprintf("&%s", t.Substs)
}

func (t TFnPtr) String() string {
	if t.NumArgs >= len(t.Substs) || len(t.Substs) == 0 {
		return "fn(?)"
	}
	args := t.Substs[:t.NumArgs]
	ret := t.Substs[len(t.Substs)-1]
	variadic := ""
	if t.Sig.Variadic {
		variadic = ", ..."
	}
	return fmt.Sprintf("fn(%s%s) -> %s", args, variadic, ret)
}

func (t TClosure) String() string {
	return fmt.Sprintf("closure@%d.%d", t.Def, t.Expr)
}

func (t TAdt) String() string {
	if len(t.Substs) == 0 {
		return fmt.Sprintf("adt#%d", t.Adt)
	}
	return fmt.Sprintf("adt#%d<%s>", t.Adt, t.Substs)
}

func (t TAssociated) String() string {
	return fmt.Sprintf("assoc#%d<%s>", t.TypeAlias, t.Substs)
}

func (t TOpaque) String() string {
	return fmt.Sprintf("opaque#%d.%d<%s>", t.Opaque.Def, t.Opaque.Index, t.Substs)
}

func (t TForeign) String() string { return fmt.Sprintf("foreign#%d", t.TypeAlias) }

func (TStr) String() string   { return "str" }
func (TNever) String() string { return "!" }

func (t TDyn) String() string {
	parts := make([]string, len(t.Predicates))
	for i, p := range t.Predicates {
		parts[i] = p.String()
	}
	return "dyn " + strings.Join(parts, " + ")
}

func (t TFnDef) String() string {
	return fmt.Sprintf("fn#%d.%d<%s>", t.Callable.Kind, t.Callable.Def, t.Substs)
}

func (t TAlias) String() string { return t.Alias.String() }

func (t TPlaceholder) String() string {
	return fmt.Sprintf("param#%d.%d", t.Param.Parent, t.Param.Local)
}

func (t TBound) String() string { return t.Bound.String() }

func (t TInfer) String() string {
	// Inference variable ids are session-local; normalize in test mode so
	// expectations stay stable.
	if config.IsTestMode {
		return config.NormalizedInfVar
	}
	return fmt.Sprintf("%s%d", config.InferVarPrefix, t.Var)
}

func (TUnknown) String() string { return config.UnknownTypeName }
