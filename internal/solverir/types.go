// Package solverir defines the type IR consumed and produced by the external
// constraint solver. The bridge in internal/mapping populates these values;
// the solver's own search is out of scope. This package provides type
// representations without analyzer dependencies.
package solverir

import (
	"fmt"
	"strings"
)

// TraitID identifies a trait on the solver side.
type TraitID uint32

// ImplID identifies a trait implementation on the solver side.
type ImplID uint32

// AdtID identifies a struct-like (algebraic) type definition.
type AdtID uint32

// AssocTypeID identifies an associated type declaration.
type AssocTypeID uint32

// ForeignDefID identifies an externally defined, structurally opaque type.
type ForeignDefID uint32

// FnDefID identifies a callable definition (function or constructor).
type FnDefID uint32

// ClosureID identifies a closure expression.
type ClosureID uint32

// OpaqueTyID identifies an opaque ("some type satisfying these bounds") type.
type OpaqueTyID uint32

// AssociatedTyValueID identifies the value of an associated type in an impl.
type AssociatedTyValueID uint32

// DebruijnIndex counts binder levels; 0 is the innermost enclosing scope.
type DebruijnIndex int

// UniverseIndex stratifies placeholders. Only the root level is supported by
// the bridge; any other level on an inbound value is a contract violation.
type UniverseIndex int

// RootUniverse is the only universe the bridge ever produces or accepts.
const RootUniverse UniverseIndex = 0

// BoundVar is a variable bound by an enclosing binder scope.
type BoundVar struct {
	Debruijn DebruijnIndex
	Index    int
}

func (b BoundVar) String() string {
	return fmt.Sprintf("^%d.%d", b.Debruijn, b.Index)
}

// ShiftedIn returns the variable as seen from inside one additional binder.
func (b BoundVar) ShiftedIn(n int) BoundVar {
	return BoundVar{Debruijn: b.Debruijn + DebruijnIndex(n), Index: b.Index}
}

// PlaceholderIndex is a universally quantified variable made concrete for the
// duration of a proof step.
type PlaceholderIndex struct {
	UI  UniverseIndex
	Idx int
}

func (p PlaceholderIndex) String() string {
	return fmt.Sprintf("!%d_%d", p.UI, p.Idx)
}

// Mutability of a reference or raw pointer.
type Mutability int

const (
	MutNot Mutability = iota
	MutMut
)

func (m Mutability) String() string {
	if m == MutMut {
		return "mut"
	}
	return "const"
}

// Scalar is a primitive machine type. Scalars are shared verbatim between the
// analyzer model and the solver IR, so they carry no conversion logic.
type Scalar int

const (
	ScalarBool Scalar = iota
	ScalarChar
	ScalarI8
	ScalarI16
	ScalarI32
	ScalarI64
	ScalarI128
	ScalarIsize
	ScalarU8
	ScalarU16
	ScalarU32
	ScalarU64
	ScalarU128
	ScalarUsize
	ScalarF32
	ScalarF64
)

var scalarNames = map[Scalar]string{
	ScalarBool:  "bool",
	ScalarChar:  "char",
	ScalarI8:    "i8",
	ScalarI16:   "i16",
	ScalarI32:   "i32",
	ScalarI64:   "i64",
	ScalarI128:  "i128",
	ScalarIsize: "isize",
	ScalarU8:    "u8",
	ScalarU16:   "u16",
	ScalarU32:   "u32",
	ScalarU64:   "u64",
	ScalarU128:  "u128",
	ScalarUsize: "usize",
	ScalarF32:   "f32",
	ScalarF64:   "f64",
}

func (s Scalar) String() string {
	if n, ok := scalarNames[s]; ok {
		return n
	}
	return fmt.Sprintf("scalar(%d)", int(s))
}

// TyVariableKind classifies an inference variable.
type TyVariableKind int

const (
	TyVarGeneral TyVariableKind = iota
	TyVarInteger
	TyVarFloat
)

func (k TyVariableKind) String() string {
	switch k {
	case TyVarInteger:
		return "int"
	case TyVarFloat:
		return "float"
	default:
		return "general"
	}
}

// InferenceVar is an ephemeral, session-local inference variable id.
type InferenceVar uint32

// Lifetime is a lifetime value slot. The bridge does not model lifetimes; it
// only ever fabricates the static lifetime where the IR structurally requires
// one, and ignores whatever it finds on the inbound path.
type Lifetime int

const (
	LifetimeStatic Lifetime = iota
	LifetimeErased
)

func (l Lifetime) String() string {
	if l == LifetimeErased {
		return "'_"
	}
	return "'static"
}

// ConstValue tags the payload of a Const slot.
type ConstValue int

const (
	ConstConcrete ConstValue = iota
	ConstBoundVar
	ConstInference
	ConstPlaceholder
)

// Const is a const-generic value slot. The bridge only ever fabricates
// concrete unsized placeholders here (for array lengths) and never reads the
// slot back.
type Const struct {
	Ty    Ty
	Value ConstValue
	Bound BoundVar // valid when Value == ConstBoundVar
}

func (c Const) String() string { return "{const}" }

// Ty is the interface for all solver-side types.
type Ty interface {
	String() string
	// aTy restricts implementations to this package.
	aTy()
}

// TyError is the solver's designated error-type marker.
type TyError struct{}

// TyScalar is a primitive type.
type TyScalar struct {
	Scalar Scalar
}

// TyTuple is a tuple of Cardinality element types carried in Substitution.
type TyTuple struct {
	Cardinality  int
	Substitution Substitution
}

// TyArray carries its element type plus a const length slot the analyzer does
// not model; the slot is fabricated outbound and ignored inbound.
type TyArray struct {
	Ty    Ty
	Const Const
}

// TySlice is an unsized sequence of its element type.
type TySlice struct {
	Ty Ty
}

// TyRaw is a raw pointer.
type TyRaw struct {
	Mutability Mutability
	Ty         Ty
}

// TyRef carries a lifetime slot the analyzer does not model; the slot is
// fabricated outbound and ignored inbound.
type TyRef struct {
	Mutability Mutability
	Lifetime   Lifetime
	Ty         Ty
}

// TyStr is the unsized string type.
type TyStr struct{}

// TyNever is the diverging type.
type TyNever struct{}

// TyFnDef is a zero-sized type identifying one particular callable.
type TyFnDef struct {
	FnDef        FnDefID
	Substitution Substitution
}

// TyClosure identifies one closure expression together with its captures.
type TyClosure struct {
	Closure      ClosureID
	Substitution Substitution
}

// TyAdt is a struct-like type applied to generic arguments.
type TyAdt struct {
	Adt          AdtID
	Substitution Substitution
}

// TyAssociated is an associated type used as a nominal (placeholder) type.
type TyAssociated struct {
	AssocType    AssocTypeID
	Substitution Substitution
}

// TyOpaque is an opaque type used as a nominal type.
type TyOpaque struct {
	Opaque       OpaqueTyID
	Substitution Substitution
}

// TyForeign is an externally defined type with no known structure.
type TyForeign struct {
	Foreign ForeignDefID
}

// FnSig is the shape of a function pointer signature.
type FnSig struct {
	Variadic bool
}

// TyFn is a function pointer. NumBinders counts top-level quantified
// variables; the bridge requires exactly zero, with the argument/return
// substitution shifted into the single wrapping scope.
type TyFn struct {
	NumBinders   int
	Sig          FnSig
	Substitution Substitution
}

// TyDyn is an existential type: a binder over an ordered set of quantified
// where-clauses constraining the erased self type, plus a lifetime slot.
type TyDyn struct {
	Bounds   Binders
	Lifetime Lifetime
}

// TyPlaceholder is a skolemized universally quantified variable.
type TyPlaceholder struct {
	Placeholder PlaceholderIndex
}

// TyBound is a variable bound by an enclosing binder.
type TyBound struct {
	Bound BoundVar
}

// TyInference is a not-yet-resolved inference variable; these can surface in
// partial solver states.
type TyInference struct {
	Var  InferenceVar
	Kind TyVariableKind
}

// TyGenerator is a coroutine type. The bridge rejects it as unimplemented.
type TyGenerator struct {
	Generator    uint32
	Substitution Substitution
}

// TyGeneratorWitness is a coroutine interior-state witness. The bridge
// rejects it as unimplemented.
type TyGeneratorWitness struct {
	Generator    uint32
	Substitution Substitution
}

// TyAlias is an alias (projection or opaque) to be normalized by the solver.
type TyAlias struct {
	Alias Alias
}

func (TyError) aTy()            {}
func (TyScalar) aTy()           {}
func (TyTuple) aTy()            {}
func (TyArray) aTy()            {}
func (TySlice) aTy()            {}
func (TyRaw) aTy()              {}
func (TyRef) aTy()              {}
func (TyStr) aTy()              {}
func (TyNever) aTy()            {}
func (TyFnDef) aTy()            {}
func (TyClosure) aTy()          {}
func (TyAdt) aTy()              {}
func (TyAssociated) aTy()       {}
func (TyOpaque) aTy()           {}
func (TyForeign) aTy()          {}
func (TyFn) aTy()               {}
func (TyDyn) aTy()              {}
func (TyPlaceholder) aTy()      {}
func (TyBound) aTy()            {}
func (TyInference) aTy()        {}
func (TyGenerator) aTy()        {}
func (TyGeneratorWitness) aTy() {}
func (TyAlias) aTy()            {}

func (TyError) String() string     { return "{error}" }
func (t TyScalar) String() string  { return t.Scalar.String() }
func (t TyTuple) String() string   { return fmt.Sprintf("(%s)", t.Substitution) }
func (t TyArray) String() string   { return fmt.Sprintf("[%s; %s]", t.Ty, t.Const) }
func (t TySlice) String() string   { return fmt.Sprintf("[%s]", t.Ty) }
func (t TyRaw) String() string     { return fmt.Sprintf("*%s %s", t.Mutability, t.Ty) }
func (TyStr) String() string       { return "str" }
func (TyNever) String() string     { return "!" }
func (t TyForeign) String() string { return fmt.Sprintf("foreign#%d", t.Foreign) }
func (t TyBound) String() string   { return t.Bound.String() }

func (t TyRef) String() string {
	if t.Mutability == MutMut {
		return fmt.Sprintf("&%s mut %s", t.Lifetime, t.Ty)
	}
	return fmt.Sprintf("&%s %s", t.Lifetime, t.Ty)
}

func (t TyFnDef) String() string {
	return fmt.Sprintf("fn#%d<%s>", t.FnDef, t.Substitution)
}

func (t TyClosure) String() string {
	return fmt.Sprintf("closure#%d<%s>", t.Closure, t.Substitution)
}

func (t TyAdt) String() string {
	if len(t.Substitution) == 0 {
		return fmt.Sprintf("adt#%d", t.Adt)
	}
	return fmt.Sprintf("adt#%d<%s>", t.Adt, t.Substitution)
}

func (t TyAssociated) String() string {
	return fmt.Sprintf("assoc#%d<%s>", t.AssocType, t.Substitution)
}

func (t TyOpaque) String() string {
	return fmt.Sprintf("opaque#%d<%s>", t.Opaque, t.Substitution)
}

func (t TyFn) String() string {
	variadic := ""
	if t.Sig.Variadic {
		variadic = ", ..."
	}
	return fmt.Sprintf("fn(%s%s)", t.Substitution, variadic)
}

func (t TyDyn) String() string {
	return fmt.Sprintf("dyn %s", t.Bounds)
}

func (t TyPlaceholder) String() string { return t.Placeholder.String() }

func (t TyInference) String() string {
	return fmt.Sprintf("?%d.%s", t.Var, t.Kind)
}

func (t TyGenerator) String() string        { return fmt.Sprintf("generator#%d", t.Generator) }
func (t TyGeneratorWitness) String() string { return fmt.Sprintf("witness#%d", t.Generator) }
func (t TyAlias) String() string            { return t.Alias.String() }

// Alias is a type-level alias the solver may normalize.
type Alias interface {
	String() string
	aAlias()
}

// ProjectionTy names (associated type, substitution); the substitution's
// first element is the self type.
type ProjectionTy struct {
	AssocType    AssocTypeID
	Substitution Substitution
}

// OpaqueTy names an opaque type together with its generic arguments.
type OpaqueTy struct {
	Opaque       OpaqueTyID
	Substitution Substitution
}

func (ProjectionTy) aAlias() {}
func (OpaqueTy) aAlias()     {}

func (p ProjectionTy) String() string {
	return fmt.Sprintf("<proj assoc#%d<%s>>", p.AssocType, p.Substitution)
}

func (o OpaqueTy) String() string {
	return fmt.Sprintf("<opaque#%d<%s>>", o.Opaque, o.Substitution)
}

// GenericArg is one entry of a Substitution: a type, lifetime or const.
type GenericArg interface {
	String() string
	aGenericArg()
}

// TypeArg wraps a type as a generic argument.
type TypeArg struct {
	Ty Ty
}

// LifetimeArg wraps a lifetime as a generic argument.
type LifetimeArg struct {
	Lifetime Lifetime
}

// ConstArg wraps a const value as a generic argument.
type ConstArg struct {
	Const Const
}

func (TypeArg) aGenericArg()     {}
func (LifetimeArg) aGenericArg() {}
func (ConstArg) aGenericArg()    {}

func (a TypeArg) String() string     { return a.Ty.String() }
func (a LifetimeArg) String() string { return a.Lifetime.String() }
func (a ConstArg) String() string    { return a.Const.String() }

// Substitution is an ordered sequence of generic arguments. Order mirrors
// declaration order of generic parameters and is significant.
type Substitution []GenericArg

func (s Substitution) String() string {
	parts := make([]string, len(s))
	for i, a := range s {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

// TypeAt returns the i-th entry if it carries a type.
func (s Substitution) TypeAt(i int) (Ty, bool) {
	if i < 0 || i >= len(s) {
		return nil, false
	}
	ta, ok := s[i].(TypeArg)
	if !ok {
		return nil, false
	}
	return ta.Ty, true
}

// TraitRef states that a self type (first substitution element) relates to a
// trait under the remaining generic arguments.
type TraitRef struct {
	Trait        TraitID
	Substitution Substitution
}

func (t TraitRef) String() string {
	return fmt.Sprintf("trait#%d<%s>", t.Trait, t.Substitution)
}
