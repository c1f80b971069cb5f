package semantics

import "go.uber.org/zap"

// Unused tracks entities provisionally flagged as unused.  Lookups mark an
// entity as used the moment it is resolved.
type Unused struct {
	db *Database
}

// All returns the entities currently flagged as unused, in insertion order.
func (u *Unused) All() []*Entity {
	return u.db.unusedList()
}

// IsUnused returns whether an entity is flagged as unused.
func (u *Unused) IsUnused(e *Entity) bool {
	return u.db.isUnused(e)
}

// Add flags an entity as unused.
func (u *Unused) Add(e *Entity) {
	if u.db.isUnused(e) {
		return
	}

	u.db.addUnusedThing(e)
}

// AddNominal flags a named entity as unused unless it is visible outside of
// its definition, that is in a public or protected namespace, or its local
// name starts with an underscore.
func (u *Unused) AddNominal(e *Entity) {
	name := e.Name()
	if name == nil || name.InPublicOrProtectedNs() || (len(name.localName) > 0 && name.localName[0] == '_') {
		return
	}

	u.Add(e)
}

// MarkUsed removes a resolved entity from the unused set.  Entities after
// substitution mark their origin.
func (u *Unused) MarkUsed(e *Entity) {
	if e.kind == KindInvalidation {
		return
	}

	if name := e.Name(); name != nil && name.InPublicOrProtectedNs() {
		return
	}

	if e.kind.IsAfterSubstitution() {
		u.MarkUsed(e.origin)
		return
	}

	if u.db.isUnused(e) {
		u.db.logger.Debug("marking used", zap.Stringer("entity", e))
		u.db.removeUnusedThing(e)
	}
}
