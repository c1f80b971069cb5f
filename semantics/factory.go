package semantics

import (
	"github.com/mxmlextrema/mxmlcaot/numeric"
	"github.com/mxmlextrema/mxmlcaot/report"
)

// Factory is the only constructor of entities.  Every derived type and every
// slot after substitution is interned: structurally equal requests return the
// same entity.
type Factory struct {
	db *Database
}

// -----------------------------------------------------------------------------
// Namespaces and names

func (f *Factory) createSystemNs(kind SystemNamespaceKind, parent *Entity) *Entity {
	ns := f.db.alloc(KindSystemNamespace)
	ns.nsKind = kind
	ns.parent = parent
	return ns
}

// CreatePublicNs creates a public namespace owned by parent.
func (f *Factory) CreatePublicNs(parent *Entity) *Entity {
	return f.createSystemNs(NsPublic, parent)
}

// CreatePrivateNs creates a private namespace owned by parent.
func (f *Factory) CreatePrivateNs(parent *Entity) *Entity {
	return f.createSystemNs(NsPrivate, parent)
}

// CreateProtectedNs creates a protected namespace owned by parent.
func (f *Factory) CreateProtectedNs(parent *Entity) *Entity {
	return f.createSystemNs(NsProtected, parent)
}

// CreateStaticProtectedNs creates a static protected namespace owned by parent.
func (f *Factory) CreateStaticProtectedNs(parent *Entity) *Entity {
	return f.createSystemNs(NsStaticProtected, parent)
}

// CreateInternalNs creates an internal namespace owned by parent.
func (f *Factory) CreateInternalNs(parent *Entity) *Entity {
	return f.createSystemNs(NsInternal, parent)
}

// CreateExplicitNs interns an explicit namespace by URI.
func (f *Factory) CreateExplicitNs(uri string) *Entity {
	if ns, ok := f.db.explicitNamespaces[uri]; ok {
		return ns
	}

	ns := f.db.alloc(KindExplicitNamespace)
	ns.uri = uri
	f.db.explicitNamespaces[uri] = ns
	return ns
}

// CreateUserNs interns a user namespace by URI.
func (f *Factory) CreateUserNs(uri string) *Entity {
	if ns, ok := f.db.userNamespaces[uri]; ok {
		return ns
	}

	ns := f.db.alloc(KindUserNamespace)
	ns.uri = uri
	f.db.userNamespaces[uri] = ns
	return ns
}

// CreateQName interns a qualified name.
func (f *Factory) CreateQName(ns *Entity, localName string) *QName {
	return f.db.qnames.intern(ns, localName)
}

// CreatePackage interns a package from its name components.  No components
// designates the top-level package.
func (f *Factory) CreatePackage(names ...string) *Entity {
	r := f.db.topLevelPackage
	for _, name := range names {
		if sub := r.Subpackage(name); sub != nil {
			r = sub
			continue
		}

		sub := f.db.alloc(KindPackage)
		sub.localName = name
		sub.parent = r
		sub.properties = NewNames()
		sub.publicNs = f.CreatePublicNs(sub)
		sub.internalNs = f.CreateInternalNs(sub)

		r.setSubpackage(sub)
		r = sub
	}

	return r
}

// CreateAlias creates an alias to another entity.
func (f *Factory) CreateAlias(name *QName, aliasOf *Entity) *Entity {
	a := f.db.alloc(KindAlias)
	a.name = name
	a.aliasOf = aliasOf
	return a
}

// -----------------------------------------------------------------------------
// Types

// createPrototypeSlot defines the `static const prototype: *` property of a
// class or enum.
func (f *Factory) createPrototypeSlot(t *Entity, nsForPrototype *Entity) {
	name := f.CreateQName(nsForPrototype, "prototype")
	slot := f.CreateVariableSlot(name, true, f.db.anyType)
	slot.parent = t
	t.properties.Set(name, slot)
}

// CreateClassType creates a class.  nsForPrototype is the namespace of the
// synthesized `prototype` property: either public or internal.
func (f *Factory) CreateClassType(name *QName, nsForPrototype *Entity) *Entity {
	t := f.db.alloc(KindClassType)
	t.name = name
	t.properties = NewNames()
	t.prototype = NewNames()
	t.privateNs = f.CreatePrivateNs(t)
	t.protectedNs = f.CreateProtectedNs(t)
	t.staticProtectedNs = f.CreateStaticProtectedNs(t)

	f.createPrototypeSlot(t, nsForPrototype)
	return t
}

// CreateEnumType creates an enum.  nsForPrototype is as for CreateClassType.
func (f *Factory) CreateEnumType(name *QName, nsForPrototype *Entity) *Entity {
	t := f.db.alloc(KindEnumType)
	t.name = name
	t.properties = NewNames()
	t.prototype = NewNames()
	t.privateNs = f.CreatePrivateNs(t)

	f.createPrototypeSlot(t, nsForPrototype)
	return t
}

// CreateInterfaceType creates an interface.
func (f *Factory) CreateInterfaceType(name *QName) *Entity {
	t := f.db.alloc(KindInterfaceType)
	t.name = name
	t.properties = NewNames()
	t.prototype = NewNames()
	return t
}

// CreateTypeAfterSubstitution interns the instantiation of a parameterized
// class or interface.
func (f *Factory) CreateTypeAfterSubstitution(origin *Entity, substituteTypes []*Entity) *Entity {
	params := origin.TypeParams()
	if params == nil {
		report.RaiseICE("substituting the non-parameterized type `%s`", origin)
	}

	if len(params) != len(substituteTypes) {
		report.RaiseICE("`%s` takes %d type arguments, %d given", origin, len(params), len(substituteTypes))
	}

	key := newInternKey().entity(origin).entities(substituteTypes).sum()
	if t := f.db.typesAfterSub.find(key, func(t *Entity) bool {
		return t.origin == origin && sameEntities(t.substituteTypes, substituteTypes)
	}); t != nil {
		return t
	}

	t := f.db.alloc(KindTypeAfterSubstitution)
	t.origin = origin
	t.substituteTypes = append([]*Entity(nil), substituteTypes...)
	t.memo = &substitutionMemo{}
	f.db.typesAfterSub.insert(key, t)
	return t
}

// CreateTupleType interns a tuple type.
func (f *Factory) CreateTupleType(elementTypes []*Entity) *Entity {
	key := newInternKey().entities(elementTypes).sum()
	if t := f.db.tupleTypes.find(key, func(t *Entity) bool {
		return sameEntities(t.elementTypes, elementTypes)
	}); t != nil {
		return t
	}

	t := f.db.alloc(KindTupleType)
	t.elementTypes = append([]*Entity(nil), elementTypes...)
	f.db.tupleTypes.insert(key, t)
	return t
}

// CreateFunctionType interns a structural function type.
func (f *Factory) CreateFunctionType(params []*FunctionTypeParameter, resultType *Entity) *Entity {
	k := newInternKey().num(len(params))
	for _, p := range params {
		k.num(int(p.Kind)).entity(p.StaticType)
	}
	key := k.entity(resultType).sum()

	if t := f.db.functionTypes.find(key, func(t *Entity) bool {
		return t.resultType == resultType && sameParams(t.params, params)
	}); t != nil {
		return t
	}

	t := f.db.alloc(KindFunctionType)
	t.params = make([]*FunctionTypeParameter, len(params))
	for i, p := range params {
		t.params[i] = &FunctionTypeParameter{Kind: p.Kind, StaticType: p.StaticType}
	}
	t.resultType = resultType
	f.db.functionTypes.insert(key, t)
	return t
}

func sameParams(a, b []*FunctionTypeParameter) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].StaticType != b[i].StaticType {
			return false
		}
	}

	return true
}

// CreateNullableType interns `T?`.  `*`, nullable types and the invalidation
// sentinel are returned unchanged; `T!` yields `T`.
func (f *Factory) CreateNullableType(base *Entity) *Entity {
	switch {
	case base == f.db.anyType, base.kind == KindNullableType, base.kind == KindInvalidation:
		return base
	case base.kind == KindNonNullableType:
		return base.base
	}

	if t, ok := f.db.nullableTypes[base]; ok {
		return t
	}

	t := f.db.alloc(KindNullableType)
	t.base = base
	f.db.nullableTypes[base] = t
	return t
}

// CreateNonNullableType interns `T!`.  `*`, non-nullable types and the
// invalidation sentinel are returned unchanged.
func (f *Factory) CreateNonNullableType(base *Entity) *Entity {
	switch {
	case base == f.db.anyType, base.kind == KindNonNullableType, base.kind == KindInvalidation:
		return base
	}

	if t, ok := f.db.nonNullableTypes[base]; ok {
		return t
	}

	t := f.db.alloc(KindNonNullableType)
	t.base = base
	f.db.nonNullableTypes[base] = t
	return t
}

// CreateTypeParameterType creates a type parameter.
func (f *Factory) CreateTypeParameterType(name *QName) *Entity {
	t := f.db.alloc(KindTypeParameterType)
	t.name = name
	t.localName = name.localName
	return t
}

// -----------------------------------------------------------------------------
// Slots

// CreateVariableSlot creates a variable slot.
func (f *Factory) CreateVariableSlot(name *QName, readOnly bool, staticType *Entity) *Entity {
	s := f.db.alloc(KindVariableSlot)
	s.name = name
	s.staticType = staticType
	s.SetIsReadOnly(readOnly)
	return s
}

// CreateVirtualSlot creates a getter/setter pair.
func (f *Factory) CreateVirtualSlot(name *QName) *Entity {
	s := f.db.alloc(KindVirtualSlot)
	s.name = name
	return s
}

// CreateMethodSlot creates a method slot.
func (f *Factory) CreateMethodSlot(name *QName, signature *Entity) *Entity {
	s := f.db.alloc(KindMethodSlot)
	s.name = name
	s.signature = signature
	return s
}

// createSlotAfterSubstitution interns a slot after indirect substitution in
// the given table.
func (f *Factory) createSlotAfterSubstitution(table internTable, kind Kind, origin *Entity, typeParams, substituteTypes []*Entity) *Entity {
	if len(typeParams) != len(substituteTypes) {
		report.RaiseICE("substituting %d type parameters with %d types in `%s`", len(typeParams), len(substituteTypes), origin)
	}

	key := newInternKey().entity(origin).entities(typeParams).entities(substituteTypes).sum()
	if s := table.find(key, func(s *Entity) bool {
		return s.origin == origin && sameEntities(s.typeParams, typeParams) && sameEntities(s.substituteTypes, substituteTypes)
	}); s != nil {
		return s
	}

	s := f.db.alloc(kind)
	s.origin = origin
	s.typeParams = append([]*Entity(nil), typeParams...)
	s.substituteTypes = append([]*Entity(nil), substituteTypes...)
	s.memo = &substitutionMemo{}
	table.insert(key, s)
	return s
}

// CreateVariableSlotAfterSubstitution interns a variable slot after indirect
// substitution.
func (f *Factory) CreateVariableSlotAfterSubstitution(origin *Entity, typeParams, substituteTypes []*Entity) *Entity {
	return f.createSlotAfterSubstitution(f.db.varSlotsAfterSub, KindVariableSlotAfterSubstitution, origin, typeParams, substituteTypes)
}

// CreateVirtualSlotAfterSubstitution interns a virtual slot after indirect
// substitution.
func (f *Factory) CreateVirtualSlotAfterSubstitution(origin *Entity, typeParams, substituteTypes []*Entity) *Entity {
	return f.createSlotAfterSubstitution(f.db.virSlotsAfterSub, KindVirtualSlotAfterSubstitution, origin, typeParams, substituteTypes)
}

// CreateMethodSlotAfterSubstitution interns a method slot after indirect
// substitution.
func (f *Factory) CreateMethodSlotAfterSubstitution(origin *Entity, typeParams, substituteTypes []*Entity) *Entity {
	return f.createSlotAfterSubstitution(f.db.metSlotsAfterSub, KindMethodSlotAfterSubstitution, origin, typeParams, substituteTypes)
}

// -----------------------------------------------------------------------------
// Scopes

func (f *Factory) createScope(kind Kind) *Entity {
	s := f.db.alloc(kind)
	s.properties = NewNames()
	return s
}

// CreateScope creates a plain block scope.
func (f *Factory) CreateScope() *Entity {
	return f.createScope(KindScope)
}

// CreateWithScope creates the scope of a `with` statement.
func (f *Factory) CreateWithScope(object *Entity) *Entity {
	s := f.createScope(KindWithScope)
	s.object = object
	return s
}

// CreateFilterScope creates the scope of an XML filter expression.
func (f *Factory) CreateFilterScope(base *Entity) *Entity {
	s := f.createScope(KindFilterScope)
	s.base = base
	return s
}

// CreateActivation creates the activation of a method.
func (f *Factory) CreateActivation(ofMethod *Entity) *Entity {
	s := f.createScope(KindActivation)
	s.ofMethod = ofMethod
	return s
}

// CreateClassScope creates the scope of a class body.
func (f *Factory) CreateClassScope(class *Entity) *Entity {
	s := f.createScope(KindClassScope)
	s.fixture = class
	return s
}

// CreateEnumScope creates the scope of an enum body.
func (f *Factory) CreateEnumScope(enum *Entity) *Entity {
	s := f.createScope(KindEnumScope)
	s.fixture = enum
	return s
}

// CreateInterfaceScope creates the scope of an interface body.
func (f *Factory) CreateInterfaceScope(itrfc *Entity) *Entity {
	s := f.createScope(KindInterfaceScope)
	s.fixture = itrfc
	return s
}

// CreatePackageScope creates the scope of a package block.
func (f *Factory) CreatePackageScope(pckg *Entity) *Entity {
	s := f.createScope(KindPackageScope)
	s.fixture = pckg
	return s
}

// -----------------------------------------------------------------------------
// Values

func (f *Factory) createValue(kind Kind, staticType *Entity) *Entity {
	v := f.db.alloc(kind)
	v.staticType = staticType
	return v
}

// CreateValue creates an opaque value of the given static type.
func (f *Factory) CreateValue(staticType *Entity) *Entity {
	return f.createValue(KindValue, staticType)
}

// CreatePackagePropertyImport creates an import of a single package property.
func (f *Factory) CreatePackagePropertyImport(property *Entity) *Entity {
	v := f.createValue(KindPackagePropertyImport, f.db.anyType)
	v.property = property
	return v
}

// CreatePackageWildcardImport creates an import of every property of a
// package.
func (f *Factory) CreatePackageWildcardImport(pckg *Entity) *Entity {
	v := f.createValue(KindPackageWildcardImport, f.db.anyType)
	v.fixture = pckg
	return v
}

// CreatePackageRecursiveImport creates an import of every property of a
// package and of its subpackages.
func (f *Factory) CreatePackageRecursiveImport(pckg *Entity) *Entity {
	v := f.createValue(KindPackageRecursiveImport, f.db.anyType)
	v.fixture = pckg
	return v
}

// CreateUndefinedConstant creates an `undefined` constant.
func (f *Factory) CreateUndefinedConstant(staticType *Entity) *Entity {
	return f.createValue(KindUndefinedConstant, staticType)
}

// CreateNullConstant creates a `null` constant.
func (f *Factory) CreateNullConstant(staticType *Entity) *Entity {
	return f.createValue(KindNullConstant, staticType)
}

// CreateNamespaceConstant creates a constant referring to a namespace.
func (f *Factory) CreateNamespaceConstant(referencedNs *Entity) (*Entity, error) {
	if referencedNs.kind == KindNamespaceConstant {
		return referencedNs, nil
	}

	st, err := f.db.NamespaceType().Defer()
	if err != nil {
		return nil, err
	}

	return f.createNamespaceConstantWithStaticType(referencedNs, st), nil
}

func (f *Factory) createNamespaceConstantWithStaticType(referencedNs, staticType *Entity) *Entity {
	v := f.createValue(KindNamespaceConstant, staticType)
	v.referenced = referencedNs
	return v
}

// CreateTypeConstant creates a constant referring to a type.
func (f *Factory) CreateTypeConstant(referencedType *Entity) (*Entity, error) {
	st, err := f.db.ClassType().Defer()
	if err != nil {
		return nil, err
	}

	return f.createTypeConstantWithStaticType(referencedType, st), nil
}

func (f *Factory) createTypeConstantWithStaticType(referencedType, staticType *Entity) *Entity {
	v := f.createValue(KindTypeConstant, staticType)
	v.referenced = referencedType
	return v
}

// CreateNumberConstant creates a numeric constant.
func (f *Factory) CreateNumberConstant(value numeric.Number, staticType *Entity) *Entity {
	v := f.createValue(KindNumberConstant, staticType)
	v.number = value
	return v
}

// CreateStringConstant creates a string constant.
func (f *Factory) CreateStringConstant(value string, staticType *Entity) *Entity {
	v := f.createValue(KindStringConstant, staticType)
	v.str = value
	return v
}

// CreateBooleanConstant creates a boolean constant.
func (f *Factory) CreateBooleanConstant(value bool, staticType *Entity) *Entity {
	v := f.createValue(KindBooleanConstant, staticType)
	v.boolean = value
	return v
}

// CreateThisObject creates the `this` value of an activation.
func (f *Factory) CreateThisObject(staticType *Entity) *Entity {
	return f.createValue(KindThisObject, staticType)
}

func (f *Factory) createDynamicReference(kind Kind, base, qualifier, key *Entity) *Entity {
	v := f.createValue(kind, f.db.anyType)
	v.base = base
	v.qualifier = qualifier
	v.key = key
	return v
}

// CreateXMLReferenceValue creates a reference to a property of an XML object.
func (f *Factory) CreateXMLReferenceValue(base, qualifier, key *Entity) *Entity {
	return f.createDynamicReference(KindXMLReferenceValue, base, qualifier, key)
}

// CreateDynamicReferenceValue creates a reference to a dynamic property.
func (f *Factory) CreateDynamicReferenceValue(base, qualifier, key *Entity) *Entity {
	return f.createDynamicReference(KindDynamicReferenceValue, base, qualifier, key)
}

// CreateStaticDynamicReferenceValue creates a bracket-style reference to a
// static property of a class.
func (f *Factory) CreateStaticDynamicReferenceValue(base, qualifier, key *Entity) *Entity {
	return f.createDynamicReference(KindStaticDynamicReferenceValue, base, qualifier, key)
}

// CreateDynamicScopeReferenceValue creates a reference to a dynamic property
// of a scope.
func (f *Factory) CreateDynamicScopeReferenceValue(base, qualifier, key *Entity) *Entity {
	return f.createDynamicReference(KindDynamicScopeReferenceValue, base, qualifier, key)
}

func (f *Factory) createElementReference(kind Kind, base, key, staticType *Entity) *Entity {
	v := f.createValue(kind, staticType)
	v.base = base
	v.key = key
	return v
}

// CreateArrayElementReferenceValue creates a reference to an element of an
// `Array`.
func (f *Factory) CreateArrayElementReferenceValue(base, key *Entity) (*Entity, error) {
	st, err := base.StaticType(f.db).Defer()
	if err != nil {
		return nil, err
	}

	elem, err := st.EscapeOfNonNullable().ArrayElementType(f.db)
	if err != nil {
		return nil, err
	}

	return f.createElementReference(KindArrayElementReferenceValue, base, key, elem), nil
}

// CreateVectorElementReferenceValue creates a reference to an element of a
// `Vector`.
func (f *Factory) CreateVectorElementReferenceValue(base, key *Entity) (*Entity, error) {
	st, err := base.StaticType(f.db).Defer()
	if err != nil {
		return nil, err
	}

	elem, err := st.EscapeOfNonNullable().VectorElementType(f.db)
	if err != nil {
		return nil, err
	}

	return f.createElementReference(KindVectorElementReferenceValue, base, key, elem), nil
}

// CreateByteArrayElementReferenceValue creates a reference to a byte of a
// `ByteArray`.
func (f *Factory) CreateByteArrayElementReferenceValue(base, key *Entity) (*Entity, error) {
	st, err := f.db.UintType().Defer()
	if err != nil {
		return nil, err
	}

	return f.createElementReference(KindByteArrayElementReferenceValue, base, key, st), nil
}

func (f *Factory) createFixtureReference(kind Kind, base, property *Entity) (*Entity, error) {
	st, err := property.PropertyStaticType(f.db).Defer()
	if err != nil {
		return nil, err
	}

	v := f.createValue(kind, st)
	v.base = base
	v.property = property
	return v, nil
}

// CreateStaticReferenceValue creates a reference to a static property.
func (f *Factory) CreateStaticReferenceValue(base, property *Entity) (*Entity, error) {
	return f.createFixtureReference(KindStaticReferenceValue, base, property)
}

// CreateInstanceReferenceValue creates a reference to an instance property.
func (f *Factory) CreateInstanceReferenceValue(base, property *Entity) (*Entity, error) {
	return f.createFixtureReference(KindInstanceReferenceValue, base, property)
}

// CreateScopeReferenceValue creates a reference to a property of a scope.
func (f *Factory) CreateScopeReferenceValue(base, property *Entity) (*Entity, error) {
	return f.createFixtureReference(KindScopeReferenceValue, base, property)
}

// CreatePackageReferenceValue creates a reference to a package property.
func (f *Factory) CreatePackageReferenceValue(base, property *Entity) (*Entity, error) {
	return f.createFixtureReference(KindPackageReferenceValue, base, property)
}

// CreateTupleReferenceValue creates a reference to an element of a tuple.
func (f *Factory) CreateTupleReferenceValue(base *Entity, index int) *Entity {
	elems := base.StaticType(f.db).EscapeOfNonNullable().ElementTypes()
	if index < 0 || index >= len(elems) {
		report.RaiseICE("tuple index %d out of range", index)
	}

	v := f.createValue(KindTupleReferenceValue, elems[index])
	v.base = base
	v.index = index
	return v
}

// CreateConversionValue creates the result of a conversion.  When optional,
// the static type is widened to include `null`.
func (f *Factory) CreateConversionValue(base *Entity, kind ConversionKind, optional bool, target *Entity) (*Entity, error) {
	st := target
	if optional {
		includesNull, err := target.IncludesNull(f.db)
		if err != nil {
			return nil, err
		}

		if !includesNull {
			if target.kind == KindNonNullableType {
				st = target.base
			} else {
				st = f.CreateNullableType(target)
			}

			if includesNull, err = st.IncludesNull(f.db); err != nil {
				return nil, err
			} else if !includesNull {
				st = f.CreateNullableType(target)
			}
		}
	}

	v := f.createValue(KindConversionValue, st)
	v.base = base
	v.conversionKind = kind
	v.optional = optional
	v.referenced = target
	return v, nil
}

// CreateNonNullValue creates the result of the non-null assertion `v!`.
func (f *Factory) CreateNonNullValue(base *Entity) (*Entity, error) {
	origSt, err := base.StaticType(f.db).Defer()
	if err != nil {
		return nil, err
	}

	esc := origSt.EscapeOfNullable()
	includesNull, err := esc.IncludesNull(f.db)
	if err != nil {
		return nil, err
	}

	includesUndefined, err := esc.IncludesUndefined(f.db)
	if err != nil {
		return nil, err
	}

	var st *Entity
	switch {
	case includesNull || includesUndefined:
		st = f.CreateNonNullableType(esc)
	case esc != origSt:
		st = esc
	default:
		return base, nil
	}

	v := f.createValue(KindNonNullValue, st)
	v.base = base
	return v, nil
}

// CreateLambdaObject creates the value of a function expression.
func (f *Factory) CreateLambdaObject(activation *Entity) (*Entity, error) {
	st, err := f.db.FunctionType().Defer()
	if err != nil {
		return nil, err
	}

	v := f.createValue(KindLambdaObject, st)
	v.activation = activation
	return v, nil
}

// CreateFilterValue creates the value of an XML filter expression.
func (f *Factory) CreateFilterValue(scope, staticType *Entity) *Entity {
	v := f.createValue(KindFilterValue, staticType)
	v.base = scope
	return v
}
