// Package mapping converts between the analyzer's semantic type model
// (internal/typesystem) and the external solver's IR (internal/solverir), in
// both directions. All conversions are pure functions of their inputs and
// the interning table, so equal inputs always produce identical outputs.
package mapping

import (
	"github.com/mightyiam/rust-analyzer/internal/intern"
	"github.com/mightyiam/rust-analyzer/internal/solverir"
	"github.com/mightyiam/rust-analyzer/internal/typesystem"
)

// Resolver lets the mapper look up declaration facts it cannot derive from a
// type value alone.
type Resolver interface {
	// GenericPredicates returns the declared predicate list of a
	// definition, in declaration order.
	GenericPredicates(def typesystem.GenericDefID) []typesystem.GenericPredicate

	// AssocTypeOwner resolves the trait declaring an associated type.
	AssocTypeOwner(alias typesystem.TypeAliasID) (typesystem.TraitID, bool)
}

// Mapper converts values for one analysis session.
type Mapper struct {
	Interner *intern.Table
	Resolver Resolver
}

// NewMapper returns a mapper over the given interning table and resolver.
func NewMapper(tab *intern.Table, res Resolver) *Mapper {
	return &Mapper{Interner: tab, Resolver: res}
}

// Definition identities below are stable interned ids on both sides, so the
// handle equations are arithmetic and need no table.

// TraitIDToExternal converts a trait identity to its solver handle.
func TraitIDToExternal(id typesystem.TraitID) solverir.TraitID {
	return solverir.TraitID(id)
}

// TraitIDFromExternal converts a solver trait handle back.
func TraitIDFromExternal(id solverir.TraitID) typesystem.TraitID {
	return typesystem.TraitID(id)
}

// ImplIDToExternal converts an impl identity to its solver handle.
func ImplIDToExternal(id typesystem.ImplID) solverir.ImplID {
	return solverir.ImplID(id)
}

// ImplIDFromExternal converts a solver impl handle back.
func ImplIDFromExternal(id solverir.ImplID) typesystem.ImplID {
	return typesystem.ImplID(id)
}

// AdtIDToExternal converts a struct-like definition identity to its solver
// handle.
func AdtIDToExternal(id typesystem.AdtID) solverir.AdtID {
	return solverir.AdtID(id)
}

// AdtIDFromExternal converts a solver adt handle back.
func AdtIDFromExternal(id solverir.AdtID) typesystem.AdtID {
	return typesystem.AdtID(id)
}

// AssocTypeIDToExternal converts an associated type declaration to its
// solver handle.
func AssocTypeIDToExternal(id typesystem.TypeAliasID) solverir.AssocTypeID {
	return solverir.AssocTypeID(id)
}

// AssocTypeIDFromExternal converts a solver associated type handle back.
func AssocTypeIDFromExternal(id solverir.AssocTypeID) typesystem.TypeAliasID {
	return typesystem.TypeAliasID(id)
}

// ForeignIDToExternal converts a foreign type declaration to its solver
// handle.
func ForeignIDToExternal(id typesystem.TypeAliasID) solverir.ForeignDefID {
	return solverir.ForeignDefID(id)
}

// ForeignIDFromExternal converts a solver foreign type handle back.
func ForeignIDFromExternal(id solverir.ForeignDefID) typesystem.TypeAliasID {
	return typesystem.TypeAliasID(id)
}

// AssocTyValueIDToExternal converts an associated type value declaration to
// its solver handle.
func AssocTyValueIDToExternal(id typesystem.TypeAliasID) solverir.AssociatedTyValueID {
	return solverir.AssociatedTyValueID(id)
}

// AssocTyValueIDFromExternal converts a solver associated-type-value handle
// back.
func AssocTyValueIDFromExternal(id solverir.AssociatedTyValueID) typesystem.TypeAliasID {
	return typesystem.TypeAliasID(id)
}
