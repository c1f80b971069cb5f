package semantics

// IsEmptyPackage returns whether a package and its concatenated packages
// declare no property.
func (e *Entity) IsEmptyPackage(db *Database) bool {
	if e.Properties(db).Len() != 0 {
		return false
	}

	for _, p := range e.concats {
		if !p.IsEmptyPackage(db) {
			return false
		}
	}

	return true
}

// IsEmptyPackageRecursive returns whether a package and all of its
// subpackages are empty.
func (e *Entity) IsEmptyPackageRecursive(db *Database) bool {
	if !e.IsEmptyPackage(db) {
		return false
	}

	for _, p := range e.Subpackages() {
		if !p.IsEmptyPackageRecursive(db) {
			return false
		}
	}

	return true
}

// ListPackagesRecursively lists a package followed by its subpackages in
// depth-first, local name order.
func (e *Entity) ListPackagesRecursively() []*Entity {
	r := []*Entity{e}
	for _, p := range e.Subpackages() {
		r = append(r, p.ListPackagesRecursively()...)
	}

	return r
}

// -----------------------------------------------------------------------------

// WrapPropertyReference turns a property found by a lookup into a value.
// Values are returned as is; types and namespaces become constants; slots
// become references through their parent.
func (e *Entity) WrapPropertyReference(db *Database) (*Entity, error) {
	f := db.factory
	switch {
	case e.kind.IsValue(), e.kind == KindInvalidation:
		return e, nil
	case e.kind.IsNamespace():
		return f.CreateNamespaceConstant(e)
	}

	switch e.kind {
	case KindAnyType, KindVoidType, KindFunctionType, KindTupleType, KindNullableType,
		KindNonNullableType, KindTypeAfterSubstitution:
		return f.CreateTypeConstant(e)
	}

	parent := e.Parent()
	switch {
	case parent == nil:
		if e.kind.IsType() {
			return f.CreateTypeConstant(e)
		}
	case parent.kind == KindClassType, parent.kind == KindEnumType:
		return f.CreateStaticReferenceValue(parent, e)
	case parent.kind == KindPackage:
		return f.CreatePackageReferenceValue(parent, e)
	case parent.kind.IsScope():
		return f.CreateScopeReferenceValue(parent, e)
	}

	return f.CreateStaticReferenceValue(parent, e)
}

// FixtureReferenceValueEquals compares two entities, seeing a fixture
// reference value as the property it refers to.
func (e *Entity) FixtureReferenceValueEquals(other *Entity) bool {
	left, right := e, other
	if left.kind.IsFixtureReferenceValue() {
		left = left.property
	}

	if right.kind.IsFixtureReferenceValue() {
		right = right.property
	}

	return left == right
}
