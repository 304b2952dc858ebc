package solverir

import (
	"fmt"
	"strings"
)

// VariableKindTag discriminates the kind of a bound variable.
type VariableKindTag int

const (
	VarKindTy VariableKindTag = iota
	VarKindLifetime
	VarKindConst
)

// VariableKind describes one bound variable in a binder scope.
type VariableKind struct {
	Tag VariableKindTag
	// TyKind is valid when Tag == VarKindTy.
	TyKind TyVariableKind
}

func (k VariableKind) String() string {
	switch k.Tag {
	case VarKindLifetime:
		return "lifetime"
	case VarKindConst:
		return "const"
	default:
		return "type:" + k.TyKind.String()
	}
}

// CanonicalVarKind is a bound variable kind together with its universe.
type CanonicalVarKind struct {
	Kind     VariableKind
	Universe UniverseIndex
}

// WhereClause is a single constraint the solver can assume or prove.
type WhereClause interface {
	String() string
	aWhereClause()
}

// ClauseImplemented states that a trait reference holds.
type ClauseImplemented struct {
	TraitRef TraitRef
}

// AliasEq equates an alias with a type.
type AliasEq struct {
	Alias Alias
	Ty    Ty
}

// ClauseAliasEq states that an alias normalizes to a type.
type ClauseAliasEq struct {
	AliasEq AliasEq
}

// ClauseLifetimeOutlives relates two lifetimes. The bridge never produces
// these and rejects them inbound.
type ClauseLifetimeOutlives struct {
	A, B Lifetime
}

// ClauseTypeOutlives relates a type and a lifetime. The bridge never produces
// these and rejects them inbound.
type ClauseTypeOutlives struct {
	Ty       Ty
	Lifetime Lifetime
}

func (ClauseImplemented) aWhereClause()      {}
func (ClauseAliasEq) aWhereClause()          {}
func (ClauseLifetimeOutlives) aWhereClause() {}
func (ClauseTypeOutlives) aWhereClause()     {}

func (c ClauseImplemented) String() string { return "implemented " + c.TraitRef.String() }

func (e AliasEq) String() string {
	return fmt.Sprintf("%s == %s", e.Alias, e.Ty)
}

func (c ClauseAliasEq) String() string { return c.AliasEq.String() }

func (c ClauseLifetimeOutlives) String() string {
	return fmt.Sprintf("%s: %s", c.A, c.B)
}

func (c ClauseTypeOutlives) String() string {
	return fmt.Sprintf("%s: %s", c.Ty, c.Lifetime)
}

// QuantifiedWhereClause is a where-clause wrapped in one binder scope.
type QuantifiedWhereClause struct {
	VariableKinds []VariableKind
	Value         WhereClause
}

func (q QuantifiedWhereClause) String() string {
	if len(q.VariableKinds) == 0 {
		return q.Value.String()
	}
	return fmt.Sprintf("for<%d> %s", len(q.VariableKinds), q.Value)
}

// Binders wraps an ordered list of quantified where-clauses in one binder
// scope, as carried by an existential type.
type Binders struct {
	VariableKinds []VariableKind
	Value         []QuantifiedWhereClause
}

func (b Binders) String() string {
	parts := make([]string, len(b.Value))
	for i, c := range b.Value {
		parts[i] = c.String()
	}
	return strings.Join(parts, " + ")
}

// DomainGoal is a query submitted to the solver: prove that a clause holds.
type DomainGoal struct {
	Holds WhereClause
}

func (g DomainGoal) String() string { return g.Holds.String() }

// ProgramClause is a clause registered with the solver, optionally marked as
// coming from the environment rather than the program.
type ProgramClause struct {
	Consequence WhereClause
	FromEnv     bool
}

// IntoFromEnv marks the clause as an environment assumption.
func (c ProgramClause) IntoFromEnv() ProgramClause {
	c.FromEnv = true
	return c
}

func (c ProgramClause) String() string {
	if c.FromEnv {
		return "from-env " + c.Consequence.String()
	}
	return c.Consequence.String()
}

// Environment is the set of clauses assumed true while solving a goal.
type Environment struct {
	Clauses []ProgramClause
}

// NewEnvironment returns an empty environment.
func NewEnvironment() Environment {
	return Environment{}
}

// AddClauses returns the environment extended with the given clauses.
func (e Environment) AddClauses(clauses []ProgramClause) Environment {
	combined := make([]ProgramClause, 0, len(e.Clauses)+len(clauses))
	combined = append(combined, e.Clauses...)
	combined = append(combined, clauses...)
	return Environment{Clauses: combined}
}

// InEnvironment pairs a goal with the environment it is solved under.
type InEnvironment struct {
	Environment Environment
	Goal        DomainGoal
}

// CanonicalTy is a type whose free inference variables have been replaced by
// indices into the binder kind list.
type CanonicalTy struct {
	Binders []CanonicalVarKind
	Value   Ty
}

// CanonicalGoal is a canonicalized goal-in-environment, the unit handed to
// the solver for one query.
type CanonicalGoal struct {
	Binders []CanonicalVarKind
	Value   InEnvironment
}

// InlineBound is a bound with the self type left out, as used by existential
// and opaque type declarations.
type InlineBound interface {
	String() string
	aInlineBound()
}

// TraitBound is "Self implements trait" with Self elided.
type TraitBound struct {
	Trait      TraitID
	ArgsNoSelf []GenericArg
}

// AliasEqBound is "trait's associated type on Self equals Value" with Self
// elided. Parameters is always empty: generic associated types are
// unsupported.
type AliasEqBound struct {
	TraitBound TraitBound
	AssocType  AssocTypeID
	Parameters []Ty
	Value      Ty
}

func (TraitBound) aInlineBound()   {}
func (AliasEqBound) aInlineBound() {}

func (b TraitBound) String() string {
	parts := make([]string, len(b.ArgsNoSelf))
	for i, a := range b.ArgsNoSelf {
		parts[i] = a.String()
	}
	return fmt.Sprintf("trait#%d<%s>", b.Trait, strings.Join(parts, ", "))
}

func (b AliasEqBound) String() string {
	return fmt.Sprintf("%s::assoc#%d == %s", b.TraitBound, b.AssocType, b.Value)
}
