package semantics

// Names is an insertion-ordered, mutable mapping from qualified names to
// entities.  It is the member table of every entity which owns members:
// classes, interfaces, packages and scopes.
//
// All lookups by local name fail with an *AmbiguousReferenceError if more than
// one entry matches.
type Names struct {
	entries []nameEntry
	index   map[*QName]int
}

type nameEntry struct {
	name   *QName
	entity *Entity
}

// NewNames creates a new, empty name table.
func NewNames() *Names {
	return &Names{index: make(map[*QName]int)}
}

// Get returns the entity bound to the exact qualified name or nil.
func (n *Names) Get(name *QName) *Entity {
	if i, ok := n.index[name]; ok {
		return n.entries[i].entity
	}

	return nil
}

// Has returns whether the qualified name is bound.
func (n *Names) Has(name *QName) bool {
	_, ok := n.index[name]
	return ok
}

// Set binds a qualified name.  Rebinding an existing name keeps its position.
func (n *Names) Set(name *QName, entity *Entity) {
	if i, ok := n.index[name]; ok {
		n.entries[i].entity = entity
		return
	}

	n.index[name] = len(n.entries)
	n.entries = append(n.entries, nameEntry{name: name, entity: entity})
}

// Delete unbinds a qualified name, returning whether it was bound.
func (n *Names) Delete(name *QName) bool {
	i, ok := n.index[name]
	if !ok {
		return false
	}

	n.entries = append(n.entries[:i], n.entries[i+1:]...)
	delete(n.index, name)
	for j := i; j < len(n.entries); j++ {
		n.index[n.entries[j].name] = j
	}

	return true
}

// Len returns the number of entries.
func (n *Names) Len() int {
	return len(n.entries)
}

// Clear removes every entry.
func (n *Names) Clear() {
	n.entries = nil
	n.index = make(map[*QName]int)
}

// CloneContent returns a copy of the table: later mutations of either table
// do not affect the other.
func (n *Names) CloneContent() *Names {
	c := &Names{
		entries: make([]nameEntry, len(n.entries)),
		index:   make(map[*QName]int, len(n.entries)),
	}

	copy(c.entries, n.entries)
	for name, i := range n.index {
		c.index[name] = i
	}

	return c
}

// Each calls f for every entry in insertion order until f returns false.
func (n *Names) Each(f func(name *QName, entity *Entity) bool) {
	for _, entry := range n.entries {
		if !f(entry.name, entry.entity) {
			return
		}
	}
}

// -----------------------------------------------------------------------------

// find returns the single entity with the given local name whose qualified name
// satisfies the predicate.
func (n *Names) find(localName string, pred func(q *QName) bool) (*Entity, error) {
	var r *Entity
	for _, entry := range n.entries {
		if entry.name.localName != localName || !pred(entry.name) {
			continue
		}

		if r != nil {
			return nil, &AmbiguousReferenceError{LocalName: localName}
		}

		r = entry.entity
	}

	return r, nil
}

// GetInNsSet retrieves an entity whose namespace is in the namespace set.
func (n *Names) GetInNsSet(nsSet []*Entity, localName string) (*Entity, error) {
	return n.find(localName, func(q *QName) bool {
		return containsEntity(nsSet, q.namespace)
	})
}

// GetInAnyNs retrieves an entity in any namespace.
func (n *Names) GetInAnyNs(localName string) (*Entity, error) {
	return n.find(localName, func(*QName) bool { return true })
}

// GetInNsSetOrAnyPublicNs retrieves an entity whose namespace is public or is
// in the namespace set.
func (n *Names) GetInNsSetOrAnyPublicNs(nsSet []*Entity, localName string) (*Entity, error) {
	return n.find(localName, func(q *QName) bool {
		return q.namespace.IsPublicNs() || containsEntity(nsSet, q.namespace)
	})
}

// GetInSystemNsKindInNsSet retrieves an entity whose namespace is in the
// namespace set and is a system namespace of the given kind.
func (n *Names) GetInSystemNsKindInNsSet(nsSet []*Entity, kind SystemNamespaceKind, localName string) (*Entity, error) {
	return n.find(localName, func(q *QName) bool {
		return q.namespace.isSystemNsOfKind(kind) && containsEntity(nsSet, q.namespace)
	})
}

// GetInAnyPublicNs retrieves an entity in any public namespace.
func (n *Names) GetInAnyPublicNs(localName string) (*Entity, error) {
	return n.find(localName, func(q *QName) bool {
		return q.namespace.IsPublicNs()
	})
}

// GetInAnyInternalNs retrieves an entity in any internal namespace.
func (n *Names) GetInAnyInternalNs(localName string) (*Entity, error) {
	return n.find(localName, func(q *QName) bool {
		return q.namespace.IsInternalNs()
	})
}

// GetInSystemNsKind retrieves an entity in any system namespace of the given
// kind.
func (n *Names) GetInSystemNsKind(kind SystemNamespaceKind, localName string) (*Entity, error) {
	return n.find(localName, func(q *QName) bool {
		return q.namespace.isSystemNsOfKind(kind)
	})
}
