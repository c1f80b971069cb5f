package semantics

// lazy is a value computed on first use.  A computation may refuse to be
// cached: ie. when its result is still unresolved.
type lazy[T any] struct {
	done  bool
	value T
}

// load returns the cached value or calls compute, caching the result if
// compute says so.
func (l *lazy[T]) load(compute func() (T, bool)) T {
	if l.done {
		return l.value
	}

	v, cache := compute()
	if cache {
		l.done = true
		l.value = v
	}

	return v
}

// set overrides the cached value.
func (l *lazy[T]) set(v T) {
	l.done = true
	l.value = v
}

// substitutionMemo holds the lazily substituted members of a type or slot
// after substitution.
type substitutionMemo struct {
	// Types.
	extendsClass      lazy[*Entity]
	implements        lazy[[]*Entity]
	extendsInterfaces lazy[[]*Entity]
	properties        lazy[*Names]
	prototype         lazy[*Names]
	constructor       lazy[*Entity]

	// Slots.
	staticType      lazy[*Entity]
	getter          lazy[*Entity]
	setter          lazy[*Entity]
	signature       lazy[*Entity]
	ofVirtualSlot   lazy[*Entity]
	overriddenBy    lazy[[]*Entity]
	overridesMethod lazy[*Entity]
}

// substituteIn applies the substitution parameters of e to t.  The parameters
// of a type after substitution are the type parameters of its origin; those of
// a slot after substitution are its indirect parameters.
func (e *Entity) substituteIn(db *Database, t *Entity) *Entity {
	if e.kind == KindTypeAfterSubstitution {
		return ApplyType(db, t, e.origin.typeParams, e.substituteTypes)
	}

	return ApplyType(db, t, e.typeParams, e.substituteTypes)
}

// substituteAll applies substituteIn to every entity of a list.
func (e *Entity) substituteAll(db *Database, list []*Entity) []*Entity {
	r := make([]*Entity, len(list))
	for i, t := range list {
		r[i] = e.substituteIn(db, t)
	}

	return r
}

// substituteNames applies substituteIn to every entry of a name table.
func (e *Entity) substituteNames(db *Database, names *Names) *Names {
	r := NewNames()
	names.Each(func(name *QName, entity *Entity) bool {
		r.Set(name, e.substituteIn(db, entity))
		return true
	})

	return r
}
