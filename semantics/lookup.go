package semantics

import (
	"math"

	"go.uber.org/zap"
)

// PropertyLookupKey is the key of a property lookup: either a local name known
// at compile time or a computed value.
type PropertyLookupKey struct {
	localName string
	computed  *Entity
}

// LocalNameKey returns a key for a fixed local name.
func LocalNameKey(localName string) PropertyLookupKey {
	return PropertyLookupKey{localName: localName}
}

// ComputedKey returns a key for a value computed at runtime.
func ComputedKey(value *Entity) PropertyLookupKey {
	return PropertyLookupKey{computed: value}
}

// LocalName returns the local name of a named key.
func (k PropertyLookupKey) LocalName() (string, bool) {
	return k.localName, k.computed == nil
}

// IsComputed returns whether the key is a computed value.
func (k PropertyLookupKey) IsComputed() bool {
	return k.computed != nil
}

// ComputedOrLocalName returns the computed value of the key or a `String`
// constant holding its local name.
func (k PropertyLookupKey) ComputedOrLocalName(db *Database) (*Entity, error) {
	if k.computed != nil {
		return k.computed, nil
	}

	stringType, err := db.StringType().Defer()
	if err != nil {
		return nil, err
	}

	return db.factory.CreateStringConstant(k.localName, stringType), nil
}

// StaticType returns the static type of the key.
func (k PropertyLookupKey) StaticType(db *Database) (*Entity, error) {
	if k.computed != nil {
		return k.computed.StaticType(db).Defer()
	}

	return db.StringType().Defer()
}

// DoubleValue returns the value of a computed numeric constant key.
func (k PropertyLookupKey) DoubleValue() (float64, bool) {
	if k.computed == nil || k.computed.kind != KindNumberConstant {
		return 0, false
	}

	return k.computed.number.ForceDouble(), true
}

// -----------------------------------------------------------------------------

// PropertyLookup resolves names in objects, packages and scope chains.
//
// Every operation returns nil when nothing is found.  Errors are deferrals,
// *AmbiguousReferenceError, *VoidBaseError or *NullableObjectError.
type PropertyLookup struct {
	db *Database
}

// isKnownQualifier returns whether a qualifier is absent or a namespace known
// at compile time.
func isKnownQualifier(qualifier *Entity) bool {
	return qualifier == nil || qualifier.IsNamespaceOrNsConstant()
}

// resolved marks a property as used and wraps it into a value.
func (pl *PropertyLookup) resolved(prop *Entity) (*Entity, error) {
	pl.db.unused.MarkUsed(prop)

	prop = prop.ResolveAlias()
	if _, err := prop.PropertyStaticType(pl.db).Defer(); err != nil {
		return nil, err
	}

	return prop.WrapPropertyReference(pl.db)
}

// LookupInObject resolves a property of a class, interface, value or package.
// calling indicates the property is the target of a call.
func (pl *PropertyLookup) LookupInObject(base *Entity, openNsSet []*Entity, qualifier *Entity, key PropertyLookupKey, calling bool) (*Entity, error) {
	db := pl.db
	f := db.factory

	if base.kind == KindInvalidation {
		return base, nil
	}

	switch {
	case base.IsClassOrEquivalent():
		return pl.lookupInClass(base, openNsSet, qualifier, key)
	case base.IsInterfaceTypePossiblyAfterSub():
		// Interfaces have no static properties.
		if key.IsComputed() || !isKnownQualifier(qualifier) {
			k, err := key.ComputedOrLocalName(db)
			if err != nil {
				return nil, err
			}

			return f.CreateStaticDynamicReferenceValue(base, qualifier, k), nil
		}

		return nil, nil
	case base.kind.IsValue():
		return pl.lookupInValue(base, openNsSet, qualifier, key, calling)
	case base.kind == KindPackage:
		return pl.lookupInPackage(base, openNsSet, qualifier, key, calling)
	}

	return nil, nil
}

func (pl *PropertyLookup) lookupInClass(base *Entity, openNsSet []*Entity, qualifier *Entity, key PropertyLookupKey) (*Entity, error) {
	db := pl.db

	localName, named := key.LocalName()
	if !named || !isKnownQualifier(qualifier) {
		k, err := key.ComputedOrLocalName(db)
		if err != nil {
			return nil, err
		}

		return db.factory.CreateStaticDynamicReferenceValue(base, qualifier, k), nil
	}

	for class := range base.DescendingClassHierarchy(db) {
		if err := deferred(class); err != nil {
			return nil, err
		}

		prop, err := pl.GetInNsSetOrAnyPublicNs(class.Properties(db), openNsSet, qualifier, localName)
		if err != nil {
			return nil, err
		}

		if prop != nil {
			return pl.resolved(prop)
		}
	}

	return nil, nil
}

func (pl *PropertyLookup) lookupInValue(base *Entity, openNsSet []*Entity, qualifier *Entity, key PropertyLookupKey, calling bool) (*Entity, error) {
	db := pl.db
	f := db.factory

	baseType, err := base.StaticType(db).Defer()
	if err != nil {
		return nil, err
	}

	baseEscType := baseType.EscapeOfNonNullable()
	if baseEscType.kind == KindInvalidation {
		return baseEscType, nil
	}

	if baseEscType.kind == KindVoidType {
		return nil, &VoidBaseError{}
	}

	dynamic := func() (*Entity, error) {
		k, err := key.ComputedOrLocalName(db)
		if err != nil {
			return nil, err
		}

		return f.CreateDynamicReferenceValue(base, qualifier, k), nil
	}

	if !calling {
		xmlType, err := db.XMLType().Defer()
		if err != nil {
			return nil, err
		}

		xmlListType, err := db.XMLListType().Defer()
		if err != nil {
			return nil, err
		}

		if baseEscType == xmlType || baseEscType == xmlListType {
			k, err := key.ComputedOrLocalName(db)
			if err != nil {
				return nil, err
			}

			return f.CreateXMLReferenceValue(base, qualifier, k), nil
		}

		dictionaryType, err := db.DictionaryType().Defer()
		if err != nil {
			return nil, err
		}

		if baseEscType == dictionaryType {
			return dynamic()
		}
	}

	localName, named := key.LocalName()
	if !named {
		return pl.lookupIndex(base, baseType, key)
	}

	objectType, err := db.ObjectType().Defer()
	if err != nil {
		return nil, err
	}

	if baseEscType == db.anyType || baseEscType == objectType || !isKnownQualifier(qualifier) {
		if qualifier == nil {
			switch base.kind {
			case KindMetaProperty:
				if localName == "env" {
					return db.metaEnvProp, nil
				}

				return nil, nil
			case KindMetaEnvProperty:
				v, ok := db.Env()[localName]
				if !ok {
					return nil, nil
				}

				stringType, err := db.StringType().Defer()
				if err != nil {
					return nil, err
				}

				return f.CreateStringConstant(v, stringType), nil
			}
		}

		return dynamic()
	}

	proxyType, err := db.ProxyType().Defer()
	if err != nil {
		return nil, err
	}

	if baseType.kind == KindNullableType {
		isProxy, err := baseType.base.IsEqualsOrSubtypeOf(proxyType, db)
		if err != nil {
			return nil, err
		}

		if !isProxy && !baseType.base.IsDynamic() {
			return nil, &NullableObjectError{NullableType: baseType}
		}

		baseEscType = baseType.base
	}

	switch {
	case baseEscType.IsClassOrEquivalent():
		for class := range baseEscType.DescendingClassHierarchy(db) {
			if err := deferred(class); err != nil {
				return nil, err
			}

			prop, err := pl.GetInNsSetOrAnyPublicNs(class.Prototype(db), openNsSet, qualifier, localName)
			if err != nil {
				return nil, err
			}

			if prop != nil {
				return pl.resolvedInstanceProperty(base, prop)
			}
		}
	case baseEscType.IsInterfaceTypePossiblyAfterSub():
		itrfcs := append(baseEscType.AllAscendingTypes(db), baseEscType)
		for i := len(itrfcs) - 1; i >= 0; i-- {
			itrfc := itrfcs[i]
			if err := deferred(itrfc); err != nil {
				return nil, err
			}

			prop, err := pl.GetInNsSetOrAnyPublicNs(itrfc.Prototype(db), openNsSet, qualifier, localName)
			if err != nil {
				return nil, err
			}

			if prop != nil {
				return pl.resolvedInstanceProperty(base, prop)
			}
		}
	}

	isProxy, err := baseEscType.IsEqualsOrSubtypeOf(proxyType, db)
	if err != nil {
		return nil, err
	}

	if isProxy || baseEscType.IsDynamic() {
		return dynamic()
	}

	return nil, nil
}

// resolvedInstanceProperty marks an instance property as used and references
// it through the base value.
func (pl *PropertyLookup) resolvedInstanceProperty(base, prop *Entity) (*Entity, error) {
	db := pl.db
	db.unused.MarkUsed(prop)

	prop = prop.ResolveAlias()
	if _, err := prop.PropertyStaticType(db).Defer(); err != nil {
		return nil, err
	}

	if prop.IsNamespaceOrNsConstant() {
		return db.factory.CreateNamespaceConstant(prop)
	}

	return db.factory.CreateInstanceReferenceValue(base, prop)
}

// lookupIndex resolves a computed key on a value: an element of an array,
// vector, byte array or string, a tuple element or else a dynamic property.
func (pl *PropertyLookup) lookupIndex(base, baseType *Entity, key PropertyLookupKey) (*Entity, error) {
	db := pl.db
	f := db.factory
	baseEscType := baseType.EscapeOfNonNullable()

	k, err := key.ComputedOrLocalName(db)
	if err != nil {
		return nil, err
	}

	numberType, err := db.NumberType().Defer()
	if err != nil {
		return nil, err
	}

	index := func() (*Entity, error) {
		return db.conversions.Implicit(k, numberType, false)
	}

	if el, err := baseEscType.ArrayElementType(db); err != nil {
		return nil, err
	} else if el != nil {
		iv, err := index()
		if err != nil {
			return nil, err
		} else if iv != nil {
			return f.CreateArrayElementReferenceValue(base, iv)
		}
	}

	if el, err := baseEscType.VectorElementType(db); err != nil {
		return nil, err
	} else if el != nil {
		iv, err := index()
		if err != nil {
			return nil, err
		} else if iv != nil {
			return f.CreateVectorElementReferenceValue(base, iv)
		}
	}

	byteArrayType, err := db.ByteArrayType().Defer()
	if err != nil {
		return nil, err
	}

	if baseEscType == byteArrayType {
		iv, err := index()
		if err != nil {
			return nil, err
		} else if iv != nil {
			return f.CreateByteArrayElementReferenceValue(base, iv)
		}
	}

	stringType, err := db.StringType().Defer()
	if err != nil {
		return nil, err
	}

	if baseEscType == stringType {
		iv, err := index()
		if err != nil {
			return nil, err
		} else if iv != nil {
			return f.CreateDynamicReferenceValue(base, nil, iv), nil
		}
	}

	if d, ok := key.DoubleValue(); ok && baseEscType.kind == KindTupleType {
		if math.IsNaN(d) || d < 0 || d >= float64(len(baseEscType.elementTypes)) {
			return nil, nil
		}

		return f.CreateTupleReferenceValue(base, int(d)), nil
	}

	return f.CreateDynamicReferenceValue(base, nil, k), nil
}

func (pl *PropertyLookup) lookupInPackage(base *Entity, openNsSet []*Entity, qualifier *Entity, key PropertyLookupKey, calling bool) (*Entity, error) {
	db := pl.db

	localName, named := key.LocalName()
	if !named || !isKnownQualifier(qualifier) {
		return nil, nil
	}

	var r *Entity
	prop, err := pl.GetInNsSetOrAnyPublicNs(base.Properties(db), openNsSet, qualifier, localName)
	if err != nil {
		return nil, err
	}

	if prop != nil {
		if r, err = pl.resolved(prop); err != nil {
			return nil, err
		}
	} else if base == db.topLevelPackage && localName == "Vector" && (qualifier == nil || qualifier.IsPublicNs()) {
		vectorType, err := db.VectorType().Defer()
		if err != nil {
			return nil, err
		}

		if r, err = vectorType.WrapPropertyReference(db); err != nil {
			return nil, err
		}
	}

	for _, p := range base.concats {
		r1, err := pl.LookupInObject(p, openNsSet, qualifier, key, calling)
		if err != nil {
			return nil, err
		}

		if r1 == nil {
			continue
		}

		if r != nil && !r.FixtureReferenceValueEquals(r1) {
			return nil, &AmbiguousReferenceError{LocalName: localName}
		}

		r = r1
	}

	return r, nil
}

// -----------------------------------------------------------------------------

// ConcatOpenNsSetOfScopeChain returns the namespaces opened by a scope and by
// each of its enclosing scopes, innermost first.
func (e *Entity) ConcatOpenNsSetOfScopeChain() []*Entity {
	var r []*Entity
	for s := range e.DescendingScopeHierarchy() {
		r = append(r, s.openNsSet...)
	}

	return r
}

// LookupInScopeChain resolves a name from a scope, walking outwards through
// the enclosing scopes until it is found.
func (pl *PropertyLookup) LookupInScopeChain(scope *Entity, qualifier *Entity, key PropertyLookupKey) (*Entity, error) {
	db := pl.db
	f := db.factory
	openNsSet := scope.ConcatOpenNsSetOfScopeChain()

	dynamic := func() (*Entity, error) {
		k, err := key.ComputedOrLocalName(db)
		if err != nil {
			return nil, err
		}

		return f.CreateDynamicScopeReferenceValue(scope, qualifier, k), nil
	}

	if key.IsComputed() {
		return dynamic()
	}

	localName, _ := key.LocalName()

	switch scope.kind {
	case KindWithScope:
		objType, err := scope.object.StaticType(db).Defer()
		if err != nil {
			return nil, err
		}

		objEscType := objType.EscapeOfNonNullable()
		if objEscType == db.anyType || objEscType == db.XMLType() || objEscType == db.XMLListType() {
			return dynamic()
		}

		r, err := pl.LookupInObject(scope.object, openNsSet, qualifier, key, false)
		if err != nil || r != nil {
			return r, err
		}
	case KindFilterScope:
		return dynamic()
	}

	if qualifier != nil {
		switch qualifier.kind {
		case KindPackageWildcardImport:
			return pl.LookupInObject(qualifier.fixture, openNsSet, nil, key, false)
		case KindPackageRecursiveImport:
			return pl.LookupInPackageRecursive(qualifier.fixture, openNsSet, nil, key)
		}
	}

	knownQualifier := isKnownQualifier(qualifier)

	var r *Entity
	if knownQualifier {
		prop, err := pl.GetInNsSetOrAnyPublicNs(scope.Properties(db), openNsSet, qualifier, localName)
		if err != nil {
			return nil, err
		}

		if prop != nil {
			if r, err = pl.resolved(prop); err != nil {
				return nil, err
			}
		}
	}

	if scope.kind == KindActivation && scope.this != nil && r == nil {
		r1, err := pl.LookupInObject(scope.this, openNsSet, qualifier, key, false)
		if err != nil {
			return nil, err
		}

		if r1 != nil && r1.kind != KindDynamicReferenceValue && r1.kind != KindXMLReferenceValue {
			r = r1
		}
	}

	ambiguous := func(r1 *Entity) error {
		if r != nil && !r.FixtureReferenceValueEquals(r1) {
			return &AmbiguousReferenceError{LocalName: localName}
		}

		r = r1
		return nil
	}

	switch scope.kind {
	case KindClassScope, KindEnumScope:
		r1, err := pl.LookupInObject(scope.fixture, openNsSet, qualifier, key, false)
		if err != nil {
			return nil, err
		}

		if r1 != nil {
			if r != nil {
				return nil, &AmbiguousReferenceError{LocalName: localName}
			}

			r = r1
		}
	case KindPackageScope:
		if knownQualifier {
			r1, err := pl.LookupInObject(scope.fixture, openNsSet, qualifier, key, false)
			if err != nil {
				return nil, err
			}

			if r1 != nil {
				if r != nil {
					return nil, &AmbiguousReferenceError{LocalName: localName}
				}

				r = r1
			}
		}
	}

	if knownQualifier {
		for _, imp := range scope.importList {
			switch imp.kind {
			case KindPackageWildcardImport, KindPackageRecursiveImport:
				var r1 *Entity
				var err error
				if imp.kind == KindPackageWildcardImport {
					r1, err = pl.LookupInObject(imp.fixture, openNsSet, qualifier, key, false)
				} else {
					r1, err = pl.LookupInPackageRecursive(imp.fixture, openNsSet, qualifier, key)
				}

				if err != nil {
					return nil, err
				}

				if r1 == nil {
					continue
				}

				db.unused.MarkUsed(imp)
				if err := ambiguous(r1); err != nil {
					return nil, err
				}
			case KindPackagePropertyImport:
				prop, err := imp.property.Defer()
				if err != nil {
					return nil, err
				}

				if prop.kind == KindInvalidation || !prop.Name().MatchesInNsSetOrAnyPublicNs(db, openNsSet, localName) {
					continue
				}

				db.unused.MarkUsed(imp)
				if r != nil && !r.FixtureReferenceValueEquals(prop) {
					return nil, &AmbiguousReferenceError{LocalName: localName}
				}

				prop = prop.ResolveAlias()
				if _, err := prop.PropertyStaticType(db).Defer(); err != nil {
					return nil, err
				}

				if r, err = prop.WrapPropertyReference(db); err != nil {
					return nil, err
				}
			}
		}
	}

	if r == nil && scope.Parent() != nil {
		return pl.LookupInScopeChain(scope.Parent(), qualifier, key)
	}

	if r != nil {
		db.logger.Debug("resolved name", zap.String("name", localName), zap.Stringer("result", r))
	}

	return r, nil
}

// GetInNsSetOrAnyPublicNs retrieves a property under a qualifier known at
// compile time.  With no qualifier the property may lie in any public
// namespace or in the open namespace set.  A system namespace qualifier
// matches any namespace of its kind found in the open namespace set, except
// public which matches any public namespace.
func (pl *PropertyLookup) GetInNsSetOrAnyPublicNs(names *Names, openNsSet []*Entity, qualifier *Entity, localName string) (*Entity, error) {
	if qualifier == nil {
		return names.GetInNsSetOrAnyPublicNs(openNsSet, localName)
	}

	if qualifier.kind.IsImport() {
		return nil, nil
	}

	if qualifier.kind == KindNamespaceConstant {
		qualifier = qualifier.referenced
	}

	if kind, ok := qualifier.SystemNsKind(); ok {
		if kind == NsPublic {
			return names.GetInSystemNsKind(kind, localName)
		}

		return names.GetInSystemNsKindInNsSet(openNsSet, kind, localName)
	}

	return names.Get(pl.db.factory.CreateQName(qualifier, localName)), nil
}

// LookupInPackageRecursive resolves a name in a package and in all of its
// subpackages.  More than one match is ambiguous.
func (pl *PropertyLookup) LookupInPackageRecursive(pckg *Entity, openNsSet []*Entity, qualifier *Entity, key PropertyLookupKey) (*Entity, error) {
	r, err := pl.LookupInObject(pckg, openNsSet, qualifier, key, false)
	if err != nil {
		return nil, err
	}

	for _, p := range pckg.Subpackages() {
		r1, err := pl.LookupInPackageRecursive(p, openNsSet, qualifier, key)
		if err != nil {
			return nil, err
		}

		if r1 == nil {
			continue
		}

		if r != nil {
			localName, _ := key.LocalName()
			return nil, &AmbiguousReferenceError{LocalName: localName}
		}

		r = r1
	}

	return r, nil
}
