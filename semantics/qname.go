package semantics

// QName is a qualified name: a namespace and a local name.  Qualified names
// are interned by the Factory, so two qualified names with equal components
// are the same pointer and can be used directly as map keys.
type QName struct {
	namespace *Entity
	localName string
}

// Namespace returns the namespace of the name.
func (q *QName) Namespace() *Entity {
	return q.namespace
}

// LocalName returns the local name.
func (q *QName) LocalName() string {
	return q.localName
}

// MatchesInNsSetOrAnyPublicNs returns whether the name has the given local
// name and is accessible from the namespace set.
func (q *QName) MatchesInNsSetOrAnyPublicNs(db *Database, nsSet []*Entity, localName string) bool {
	return q.AccessibleFromNsSet(db, nsSet) && q.localName == localName
}

// AccessibleFromNsSet returns whether the namespace of the name is public, is
// the builtin language namespace or is present in the namespace set.
func (q *QName) AccessibleFromNsSet(db *Database, nsSet []*Entity) bool {
	ns := q.namespace
	if ns.IsPublicNs() || ns == db.AS3Namespace() {
		return true
	}

	return containsEntity(nsSet, ns)
}

func (q *QName) String() string {
	if q.namespace.kind == KindSystemNamespace {
		return q.localName
	}

	return q.namespace.uri + "::" + q.localName
}

// qnameInterner holds the canonical qualified names of a database keyed by
// namespace identity and then local name.
type qnameInterner map[*Entity]map[string]*QName

func (qi qnameInterner) intern(ns *Entity, localName string) *QName {
	byLocal, ok := qi[ns]
	if !ok {
		byLocal = make(map[string]*QName)
		qi[ns] = byLocal
	}

	if q, ok := byLocal[localName]; ok {
		return q
	}

	q := &QName{namespace: ns, localName: localName}
	byLocal[localName] = q
	return q
}
