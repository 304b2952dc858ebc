package typesystem

import (
	"fmt"

	"github.com/mightyiam/rust-analyzer/internal/solverir"
)

// TraitRef states that a type (first substitution element) implements a
// trait under the remaining generic arguments.
type TraitRef struct {
	Trait  TraitID
	Substs Substs
}

// SelfTy returns the implementing type.
func (t TraitRef) SelfTy() Ty {
	if len(t.Substs) == 0 {
		return nil
	}
	return t.Substs[0]
}

func (t TraitRef) String() string {
	return fmt.Sprintf("%s: trait#%d<%s>", t.SelfTy(), t.Trait, t.Substs)
}

// ProjectionPredicate is an equality constraint between a projection and a
// type.
type ProjectionPredicate struct {
	ProjectionTy ProjectionTy
	Ty           Ty
}

func (p ProjectionPredicate) String() string {
	return fmt.Sprintf("%s == %s", p.ProjectionTy, p.Ty)
}

// GenericPredicate is one constraint attached to a generic context.
type GenericPredicate interface {
	String() string
	// IsError reports whether the predicate marks an already-broken
	// constraint. Error predicates must never reach the solver.
	IsError() bool
	aPredicate()
}

// PredImplemented asserts a trait reference holds.
type PredImplemented struct {
	TraitRef TraitRef
}

// PredProjection asserts a projection equals a type.
type PredProjection struct {
	Projection ProjectionPredicate
}

// PredError marks an unrecoverable constraint from a failed analysis step.
type PredError struct{}

func (PredImplemented) aPredicate() {}
func (PredProjection) aPredicate()  {}
func (PredError) aPredicate()       {}

func (PredImplemented) IsError() bool { return false }
func (PredProjection) IsError() bool  { return false }
func (PredError) IsError() bool       { return true }

func (p PredImplemented) String() string { return p.TraitRef.String() }
func (p PredProjection) String() string  { return p.Projection.String() }
func (PredError) String() string         { return "{error-predicate}" }

// Obligation is a query to submit to the solver.
type Obligation interface {
	String() string
	aObligation()
}

// ObligationTrait asks whether a trait reference holds.
type ObligationTrait struct {
	TraitRef TraitRef
}

// ObligationProjection asks whether a projection equality holds.
type ObligationProjection struct {
	Projection ProjectionPredicate
}

func (ObligationTrait) aObligation()      {}
func (ObligationProjection) aObligation() {}

func (o ObligationTrait) String() string      { return o.TraitRef.String() }
func (o ObligationProjection) String() string { return o.Projection.String() }

// TraitEnvironment is the predicate set assumed true for one generic
// context. It is built once per context and substitution pair.
type TraitEnvironment struct {
	Predicates []GenericPredicate
}

// InEnvironment pairs an obligation with the environment it is solved under.
type InEnvironment struct {
	Environment *TraitEnvironment
	Goal        Obligation
}

// Canonical is a type whose free inference variables have been replaced by
// bound-variable indices into Kinds. Kinds order is first occurrence, so
// equal inputs canonicalize to structurally identical values.
type Canonical struct {
	Kinds []solverir.TyVariableKind
	Value Ty
}

// CanonicalGoal is a canonicalized obligation-in-environment.
type CanonicalGoal struct {
	Kinds []solverir.TyVariableKind
	Value InEnvironment
}
