package semantics

import "iter"

// DirectAscendingTypes returns the immediate supertypes of a type, each
// possibly unresolved.  A class yields its implemented interfaces followed by
// its superclass.
func (e *Entity) DirectAscendingTypes(db *Database) []*Entity {
	switch {
	case e.IsClassTypePossiblyAfterSub():
		r := append([]*Entity(nil), e.Implements(db)...)
		if super := e.ExtendsClass(db); super != nil {
			r = append(r, super)
		}

		return r
	case e.IsInterfaceTypePossiblyAfterSub():
		return append([]*Entity(nil), e.ExtendsInterfaces(db)...)
	}

	switch e.kind {
	case KindEnumType, KindTupleType, KindFunctionType:
		return []*Entity{e.ExtendsClass(db)}
	}

	return nil
}

// AllAscendingTypes returns every supertype of a type in ascending order, each
// possibly unresolved and each listed once.  The type itself is never listed,
// even when reachable through a generic self-reference.
func (e *Entity) AllAscendingTypes(db *Database) []*Entity {
	return e.allAscendingTypesNonCircular(db, e)
}

func (e *Entity) allAscendingTypesNonCircular(db *Database, descendingMost *Entity) []*Entity {
	var r, direct []*Entity
	for _, t := range e.DirectAscendingTypes(db) {
		if t.kind != KindUnresolved && t != descendingMost {
			for _, t1 := range t.AllAscendingTypes(db) {
				if !containsEntity(r, t1) && t1 != descendingMost {
					r = append(r, t1)
				}
			}
		}

		if !containsEntity(r, t) && !containsEntity(direct, t) && t != descendingMost {
			direct = append(direct, t)
		}
	}

	for _, t := range direct {
		if !containsEntity(r, t) {
			r = append(r, t)
		}
	}

	return r
}

// IsSubtypeOf returns whether the type is a strict subtype of another.  Every
// type is a subtype of `*`.
func (e *Entity) IsSubtypeOf(other *Entity, db *Database) (bool, error) {
	if other.kind == KindAnyType {
		return true, nil
	}

	for _, t := range e.AllAscendingTypes(db) {
		if err := deferred(t); err != nil {
			return false, err
		}

		if t == other {
			return true, nil
		}
	}

	return false, nil
}

// IsAscendingTypeOf returns whether the type is a strict supertype of another.
func (e *Entity) IsAscendingTypeOf(possiblySubtype *Entity, db *Database) (bool, error) {
	return possiblySubtype.IsSubtypeOf(e, db)
}

// IsEqualsOrSubtypeOf returns whether the type is another type or one of its
// subtypes.
func (e *Entity) IsEqualsOrSubtypeOf(other *Entity, db *Database) (bool, error) {
	if e == other {
		return true, nil
	}

	return e.IsSubtypeOf(other, db)
}

// -----------------------------------------------------------------------------
// Hierarchies

// DescendingClassHierarchy iterates a class and its superclasses, from the
// class upwards.  An unresolved superclass is yielded last; a superclass
// cycling back to the class ends the iteration.
func (e *Entity) DescendingClassHierarchy(db *Database) iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for c := e; c != nil; {
			if !yield(c) || c.kind == KindUnresolved {
				return
			}

			c = c.ExtendsClass(db)
			if c == e {
				return
			}
		}
	}
}

// DescendingScopeHierarchy iterates a scope and its enclosing scopes, from the
// innermost outwards.
func (e *Entity) DescendingScopeHierarchy() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for s := e; s != nil; s = s.Parent() {
			if !yield(s) {
				return
			}
		}
	}
}

// SearchActivation returns the innermost activation enclosing a scope, or nil.
func (e *Entity) SearchActivation() *Entity {
	for s := range e.DescendingScopeHierarchy() {
		if s.kind == KindActivation {
			return s
		}
	}

	return nil
}

// SearchHoistScope returns the innermost activation or fixture scope enclosing
// a scope: the scope `var` declarations are hoisted to.
func (e *Entity) SearchHoistScope() *Entity {
	for s := range e.DescendingScopeHierarchy() {
		if s.kind == KindActivation || s.kind.IsFixtureScope() {
			return s
		}
	}

	return nil
}

// SearchSystemNsInScopeChain returns the innermost system namespace of the
// given kind visible from a scope, or nil.
func (e *Entity) SearchSystemNsInScopeChain(kind SystemNamespaceKind) *Entity {
	for s := range e.DescendingScopeHierarchy() {
		switch s.kind {
		case KindPackageScope, KindActivation:
			if kind == NsPublic && s.publicNsOfScope() != nil {
				return s.publicNsOfScope()
			}

			if kind == NsInternal && s.internalNsOfScope() != nil {
				return s.internalNsOfScope()
			}
		case KindClassScope:
			switch kind {
			case NsPrivate:
				return s.PrivateNs()
			case NsProtected:
				return s.ProtectedNs()
			case NsStaticProtected:
				return s.StaticProtectedNs()
			}
		case KindEnumScope:
			if kind == NsPrivate {
				return s.PrivateNs()
			}
		}
	}

	return nil
}

// publicNsOfScope returns the public namespace of a package scope (that of its
// package) or of an activation.
func (e *Entity) publicNsOfScope() *Entity {
	if e.kind == KindPackageScope {
		return e.fixture.publicNs
	}

	return e.publicNs
}

// internalNsOfScope returns the internal namespace of a package scope (that of
// its package) or of an activation.
func (e *Entity) internalNsOfScope() *Entity {
	if e.kind == KindPackageScope {
		return e.fixture.internalNs
	}

	return e.internalNs
}
