// Package intern provides the session-scoped identity interning table: an
// append-only bidirectional registry mapping composite definition identities
// to the compact handles the external solver requires to be globally unique
// and stable. Entries are never removed, so a handle observed once stays
// valid for the lifetime of the analysis session.
package intern

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mightyiam/rust-analyzer/internal/solverir"
	"github.com/mightyiam/rust-analyzer/internal/typesystem"
)

// ClosureKey is the composite identity of a closure: the pair disambiguates
// otherwise structurally identical closures.
type ClosureKey struct {
	Def  typesystem.DefWithBodyID
	Expr typesystem.ExprID
}

// Table is the interning registry. Insert-or-fetch is atomic per key; a
// single mutex guards all first insertions, and an existing entry is never
// mutated afterwards.
type Table struct {
	session uuid.UUID

	mu           sync.Mutex
	closures     map[ClosureKey]solverir.ClosureID
	closureList  []ClosureKey
	callables    map[typesystem.CallableDefID]solverir.FnDefID
	callableList []typesystem.CallableDefID
	typeParams   map[typesystem.TypeParamID]int
	typeParamSeq []typesystem.TypeParamID
	opaques      map[typesystem.OpaqueTyID]solverir.OpaqueTyID
	opaqueList   []typesystem.OpaqueTyID
}

// NewTable returns an empty table for a fresh analysis session.
func NewTable() *Table {
	return &Table{
		session:    uuid.New(),
		closures:   make(map[ClosureKey]solverir.ClosureID),
		callables:  make(map[typesystem.CallableDefID]solverir.FnDefID),
		typeParams: make(map[typesystem.TypeParamID]int),
		opaques:    make(map[typesystem.OpaqueTyID]solverir.OpaqueTyID),
	}
}

// Session identifies the owning analysis session, for cache keying by the
// caller.
func (t *Table) Session() uuid.UUID { return t.session }

// InternClosure returns the handle for the closure identity, allocating one
// on first use.
func (t *Table) InternClosure(def typesystem.DefWithBodyID, expr typesystem.ExprID) solverir.ClosureID {
	key := ClosureKey{Def: def, Expr: expr}
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.closures[key]; ok {
		return id
	}
	id := solverir.ClosureID(len(t.closureList))
	t.closures[key] = id
	t.closureList = append(t.closureList, key)
	return id
}

// LookupClosure resolves a closure handle back to its identity.
func (t *Table) LookupClosure(id solverir.ClosureID) (ClosureKey, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(id) >= len(t.closureList) {
		return ClosureKey{}, false
	}
	return t.closureList[int(id)], true
}

// InternCallable returns the handle for a callable definition.
func (t *Table) InternCallable(def typesystem.CallableDefID) solverir.FnDefID {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.callables[def]; ok {
		return id
	}
	id := solverir.FnDefID(len(t.callableList))
	t.callables[def] = id
	t.callableList = append(t.callableList, def)
	return id
}

// LookupCallable resolves a callable handle back to its definition.
func (t *Table) LookupCallable(id solverir.FnDefID) (typesystem.CallableDefID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(id) >= len(t.callableList) {
		return typesystem.CallableDefID{}, false
	}
	return t.callableList[int(id)], true
}

// InternTypeParam returns the placeholder index for a generic type
// parameter.
func (t *Table) InternTypeParam(param typesystem.TypeParamID) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx, ok := t.typeParams[param]; ok {
		return idx
	}
	idx := len(t.typeParamSeq)
	t.typeParams[param] = idx
	t.typeParamSeq = append(t.typeParamSeq, param)
	return idx
}

// LookupTypeParam resolves a placeholder index back to its parameter.
func (t *Table) LookupTypeParam(idx int) (typesystem.TypeParamID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.typeParamSeq) {
		return typesystem.TypeParamID{}, false
	}
	return t.typeParamSeq[idx], true
}

// InternOpaque returns the handle for an opaque type identity.
func (t *Table) InternOpaque(id typesystem.OpaqueTyID) solverir.OpaqueTyID {
	t.mu.Lock()
	defer t.mu.Unlock()
	if h, ok := t.opaques[id]; ok {
		return h
	}
	h := solverir.OpaqueTyID(len(t.opaqueList))
	t.opaques[id] = h
	t.opaqueList = append(t.opaqueList, id)
	return h
}

// LookupOpaque resolves an opaque handle back to its identity.
func (t *Table) LookupOpaque(h solverir.OpaqueTyID) (typesystem.OpaqueTyID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(h) >= len(t.opaqueList) {
		return typesystem.OpaqueTyID{}, false
	}
	return t.opaqueList[int(h)], true
}
