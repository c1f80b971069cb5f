package semantics

import (
	"github.com/google/btree"

	"github.com/mxmlextrema/mxmlcaot/numeric"
)

// Entity is a symbol of the semantic model: a type, value, scope, namespace,
// slot or package.  Every entity is allocated by a Database into its arena and
// is compared by identity.  Fields are shared between kinds; the comment on
// each field group lists the kinds using it.
type Entity struct {
	kind Kind

	// The handle of the entity within the arena of its database.
	id int

	name   *QName
	parent *Entity
	flags  entityFlags

	// Namespaces.
	nsKind SystemNamespaceKind
	uri    string

	// Packages and type parameters.
	localName   string
	subpackages *btree.BTreeG[*Entity]
	concats     []*Entity

	// Packages, classes, enums, interfaces, scopes and activations.
	publicNs          *Entity
	internalNs        *Entity
	privateNs         *Entity
	protectedNs       *Entity
	staticProtectedNs *Entity
	properties        *Names
	prototype         *Names

	// Aliases.
	aliasOf *Entity

	// Classes, enums and interfaces.
	extendsClass      *Entity
	implements        []*Entity
	extendsInterfaces []*Entity
	typeParams        []*Entity
	constructor       *Entity

	// Types and slots after substitution.  For slots, typeParams and
	// substituteTypes are the indirect substitution parameters.
	origin          *Entity
	substituteTypes []*Entity
	memo            *substitutionMemo

	// Tuple and function types.
	elementTypes []*Entity
	params       []*FunctionTypeParameter
	resultType   *Entity

	// Nullable and non-nullable types, filter scopes, reference values,
	// conversion values and non-null values.
	base *Entity

	// Slots and values.
	staticType      *Entity
	getter          *Entity
	setter          *Entity
	signature       *Entity
	ofVirtualSlot   *Entity
	overriddenBy    []*Entity
	overridesMethod *Entity
	activation      *Entity
	varConstant     *Entity

	// Scopes.
	openNsSet  []*Entity
	importList []*Entity
	object     *Entity
	ofMethod   *Entity
	this       *Entity
	captures   map[*Entity]bool

	// Class, enum, interface and package scopes; imports.
	fixture *Entity

	// Imports and fixture reference values.
	property *Entity

	// Values.
	qualifier      *Entity
	key            *Entity
	index          int
	number         numeric.Number
	str            string
	boolean        bool
	referenced     *Entity
	conversionKind ConversionKind
	optional       bool
}

// entityFlags is a set of boolean attributes of classes, slots and values.
type entityFlags uint32

// Enumeration of entity flags.
const (
	flagFinal entityFlags = 1 << iota
	flagStatic
	flagAbstract
	flagDynamic
	flagOptions
	flagExternal
	flagReadOnly
	flagNative
	flagOverriding
	flagAsync
	flagGenerator
	flagConstructor
)

// FunctionTypeParameterKind is the kind of a parameter of a function type.
type FunctionTypeParameterKind int

// Enumeration of function type parameter kinds.
const (
	ParamRequired FunctionTypeParameterKind = iota
	ParamOptional
	ParamRest
)

// FunctionTypeParameter is a parameter of a structural function type.
type FunctionTypeParameter struct {
	Kind       FunctionTypeParameterKind
	StaticType *Entity
}

// -----------------------------------------------------------------------------

// Kind returns the variant of the entity.
func (e *Entity) Kind() Kind {
	return e.kind
}

// ID returns the arena handle of the entity.
func (e *Entity) ID() int {
	return e.id
}

// Is returns whether the entity is of one of the given kinds.
func (e *Entity) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if e.kind == k {
			return true
		}
	}

	return false
}

// IsUnresolved returns whether the entity is the unresolved sentinel.
func (e *Entity) IsUnresolved() bool {
	return e.kind == KindUnresolved
}

// IsInvalidation returns whether the entity is the invalidation sentinel.
func (e *Entity) IsInvalidation() bool {
	return e.kind == KindInvalidation
}

// IsType returns whether the entity is a type.
func (e *Entity) IsType() bool {
	return e.kind.IsType()
}

// IsValue returns whether the entity is a value.
func (e *Entity) IsValue() bool {
	return e.kind.IsValue()
}

// IsScope returns whether the entity is a scope.
func (e *Entity) IsScope() bool {
	return e.kind.IsScope()
}

// IsNamespace returns whether the entity is a namespace.
func (e *Entity) IsNamespace() bool {
	return e.kind.IsNamespace()
}

// Defer fails with a deferral if the entity is the unresolved sentinel and
// otherwise returns the entity itself.
func (e *Entity) Defer() (*Entity, error) {
	if e.kind == KindUnresolved {
		return nil, errDefer
	}

	return e, nil
}

// -----------------------------------------------------------------------------

// Name returns the qualified name of the entity or nil.  Entities after
// substitution share the name of their origin.
func (e *Entity) Name() *QName {
	if e.kind.IsAfterSubstitution() {
		return e.origin.Name()
	}

	return e.name
}

// SetName sets the qualified name of the entity.
func (e *Entity) SetName(name *QName) {
	e.name = name
}

// Parent returns the parent entity or nil.  Entities after substitution share
// the parent of their origin.
func (e *Entity) Parent() *Entity {
	if e.kind.IsAfterSubstitution() {
		return e.origin.Parent()
	}

	return e.parent
}

// SetParent sets the parent entity.
func (e *Entity) SetParent(parent *Entity) {
	e.parent = parent
}

// LocalName returns the local name of a package or type parameter; for other
// named entities, the local part of their qualified name.
func (e *Entity) LocalName() string {
	switch e.kind {
	case KindPackage, KindTypeParameterType:
		return e.localName
	}

	if name := e.Name(); name != nil {
		return name.localName
	}

	return ""
}

func (e *Entity) hasFlag(f entityFlags) bool {
	if e.kind.IsAfterSubstitution() && f != flagOverriding {
		return e.origin.hasFlag(f)
	}

	return e.flags&f != 0
}

func (e *Entity) setFlag(f entityFlags, value bool) {
	if value {
		e.flags |= f
	} else {
		e.flags &^= f
	}
}

// IsFinal returns whether a class or method is final.  Enums are always final.
func (e *Entity) IsFinal() bool {
	return e.kind == KindEnumType || e.hasFlag(flagFinal)
}

// SetIsFinal sets whether a class or method is final.
func (e *Entity) SetIsFinal(value bool) { e.setFlag(flagFinal, value) }

// IsStatic returns whether a class or method is static.
func (e *Entity) IsStatic() bool { return e.hasFlag(flagStatic) }

// SetIsStatic sets whether a class or method is static.
func (e *Entity) SetIsStatic(value bool) { e.setFlag(flagStatic, value) }

// IsAbstract returns whether a class or method is abstract.
func (e *Entity) IsAbstract() bool { return e.hasFlag(flagAbstract) }

// SetIsAbstract sets whether a class or method is abstract.
func (e *Entity) SetIsAbstract(value bool) { e.setFlag(flagAbstract, value) }

// IsDynamic returns whether instances of a type accept dynamic properties.
// Tuples are always dynamic.
func (e *Entity) IsDynamic() bool {
	switch e.kind {
	case KindTupleType:
		return true
	case KindTypeAfterSubstitution:
		return e.origin.IsDynamic()
	}

	return e.flags&flagDynamic != 0
}

// SetIsDynamic sets whether instances of a class are dynamic.
func (e *Entity) SetIsDynamic(value bool) { e.setFlag(flagDynamic, value) }

// IsOptionsClass returns whether a class is an `[Options]` class.
func (e *Entity) IsOptionsClass() bool { return e.hasFlag(flagOptions) }

// SetIsOptionsClass sets whether a class is an `[Options]` class.
func (e *Entity) SetIsOptionsClass(value bool) { e.setFlag(flagOptions, value) }

// IsExternal returns whether a definition is external.
func (e *Entity) IsExternal() bool { return e.hasFlag(flagExternal) }

// SetIsExternal sets whether a definition is external.
func (e *Entity) SetIsExternal(value bool) { e.setFlag(flagExternal, value) }

// IsNative returns whether a method is native.
func (e *Entity) IsNative() bool { return e.hasFlag(flagNative) }

// SetIsNative sets whether a method is native.
func (e *Entity) SetIsNative(value bool) { e.setFlag(flagNative, value) }

// IsOverriding returns whether a method is marked `override`.
func (e *Entity) IsOverriding() bool { return e.hasFlag(flagOverriding) }

// SetIsOverriding sets whether a method is marked `override`.
func (e *Entity) SetIsOverriding(value bool) { e.setFlag(flagOverriding, value) }

// IsAsync returns whether a method is asynchronous.
func (e *Entity) IsAsync() bool { return e.hasFlag(flagAsync) }

// SetIsAsync sets whether a method is asynchronous.
func (e *Entity) SetIsAsync(value bool) { e.setFlag(flagAsync, value) }

// IsGenerator returns whether a method is a generator.
func (e *Entity) IsGenerator() bool { return e.hasFlag(flagGenerator) }

// SetIsGenerator sets whether a method is a generator.
func (e *Entity) SetIsGenerator(value bool) { e.setFlag(flagGenerator, value) }

// IsConstructor returns whether a method is a constructor.
func (e *Entity) IsConstructor() bool { return e.hasFlag(flagConstructor) }

// SetIsConstructor sets whether a method is a constructor.
func (e *Entity) SetIsConstructor(value bool) { e.setFlag(flagConstructor, value) }

// -----------------------------------------------------------------------------
// Packages

// Subpackages returns the subpackages of a package in local name order.
func (e *Entity) Subpackages() []*Entity {
	var r []*Entity
	if e.subpackages != nil {
		e.subpackages.Ascend(func(p *Entity) bool {
			r = append(r, p)
			return true
		})
	}

	return r
}

// Subpackage returns the subpackage with the given local name or nil.
func (e *Entity) Subpackage(localName string) *Entity {
	if e.subpackages == nil {
		return nil
	}

	p, _ := e.subpackages.Get(&Entity{localName: localName})
	return p
}

func (e *Entity) setSubpackage(p *Entity) {
	if e.subpackages == nil {
		e.subpackages = btree.NewG(8, func(a, b *Entity) bool {
			return a.localName < b.localName
		})
	}

	e.subpackages.ReplaceOrInsert(p)
}

// PackageConcats returns the packages concatenated into a package.
func (e *Entity) PackageConcats() []*Entity {
	return e.concats
}

// AddPackageConcat concatenates another package into a package.
func (e *Entity) AddPackageConcat(p *Entity) {
	e.concats = append(e.concats, p)
}

// PublicNs returns the public namespace of a package or activation.
func (e *Entity) PublicNs() *Entity { return e.publicNs }

// SetPublicNs sets the public namespace of a package or activation.
func (e *Entity) SetPublicNs(ns *Entity) { e.publicNs = ns }

// InternalNs returns the internal namespace of a package or activation.
func (e *Entity) InternalNs() *Entity { return e.internalNs }

// SetInternalNs sets the internal namespace of a package or activation.
func (e *Entity) SetInternalNs(ns *Entity) { e.internalNs = ns }

// PrivateNs returns the private namespace of a class or enum, or of their
// scopes.
func (e *Entity) PrivateNs() *Entity {
	switch e.kind {
	case KindClassScope, KindEnumScope:
		return e.fixture.privateNs
	case KindTypeAfterSubstitution:
		return e.origin.privateNs
	}

	return e.privateNs
}

// ProtectedNs returns the protected namespace of a class or its scope.
func (e *Entity) ProtectedNs() *Entity {
	switch e.kind {
	case KindClassScope:
		return e.fixture.protectedNs
	case KindTypeAfterSubstitution:
		return e.origin.protectedNs
	}

	return e.protectedNs
}

// StaticProtectedNs returns the static protected namespace of a class or its
// scope.
func (e *Entity) StaticProtectedNs() *Entity {
	switch e.kind {
	case KindClassScope:
		return e.fixture.staticProtectedNs
	case KindTypeAfterSubstitution:
		return e.origin.staticProtectedNs
	}

	return e.staticProtectedNs
}

// -----------------------------------------------------------------------------
// Aliases

// AliasOf returns the entity an alias refers to.
func (e *Entity) AliasOf() *Entity {
	return e.aliasOf
}

// SetAliasOf sets the entity an alias refers to.
func (e *Entity) SetAliasOf(target *Entity) {
	e.aliasOf = target
}

// ResolveAlias follows aliases until a non-alias entity.
func (e *Entity) ResolveAlias() *Entity {
	r := e
	for r.kind == KindAlias && r.aliasOf != nil {
		r = r.aliasOf
	}

	return r
}

// -----------------------------------------------------------------------------
// Scopes

// OpenNsSet returns the namespaces opened by a scope.
func (e *Entity) OpenNsSet() []*Entity {
	return e.openNsSet
}

// OpenNs adds a namespace to the open namespace set of a scope.
func (e *Entity) OpenNs(ns *Entity) {
	if !containsEntity(e.openNsSet, ns) {
		e.openNsSet = append(e.openNsSet, ns)
	}
}

// ImportList returns the imports of a scope.
func (e *Entity) ImportList() []*Entity {
	return e.importList
}

// AddImport adds an import to a scope.
func (e *Entity) AddImport(imp *Entity) {
	e.importList = append(e.importList, imp)
}

// Object returns the object of a `with` scope.
func (e *Entity) Object() *Entity {
	return e.object
}

// OfMethod returns the method of an activation.
func (e *Entity) OfMethod() *Entity {
	return e.ofMethod
}

// This returns the `this` object of an activation or nil.
func (e *Entity) This() *Entity {
	return e.this
}

// SetThis sets the `this` object of an activation.
func (e *Entity) SetThis(this *Entity) {
	e.this = this
}

// PropertyHasCapture returns whether a property of an activation is captured
// by an inner activation.
func (e *Entity) PropertyHasCapture(property *Entity) bool {
	return e.captures[property]
}

// SetPropertyHasCapture sets whether a property of an activation is captured.
func (e *Entity) SetPropertyHasCapture(property *Entity, value bool) {
	if e.captures == nil {
		e.captures = make(map[*Entity]bool)
	}

	if value {
		e.captures[property] = true
	} else {
		delete(e.captures, property)
	}
}

// Class returns the class of a class or enum scope.
func (e *Entity) Class() *Entity {
	return e.fixture
}

// Interface returns the interface of an interface scope.
func (e *Entity) Interface() *Entity {
	return e.fixture
}

// Package returns the package of a package scope or of a package import.
func (e *Entity) Package() *Entity {
	return e.fixture
}

// -----------------------------------------------------------------------------
// Values

// Property returns the property of a fixture reference value or of a package
// property import.
func (e *Entity) Property() *Entity {
	return e.property
}

// Base returns the base of a nullable or non-nullable type, a filter scope, a
// reference value, a conversion value or a non-null value.
func (e *Entity) Base() *Entity {
	return e.base
}

// Qualifier returns the qualifier of a dynamic reference value or nil.
func (e *Entity) Qualifier() *Entity {
	return e.qualifier
}

// Key returns the key of a dynamic or element reference value.
func (e *Entity) Key() *Entity {
	return e.key
}

// TupleIndex returns the index of a tuple reference value.
func (e *Entity) TupleIndex() int {
	return e.index
}

// NumberValue returns the value of a number constant.
func (e *Entity) NumberValue() numeric.Number {
	return e.number
}

// StringValue returns the value of a string constant.
func (e *Entity) StringValue() string {
	return e.str
}

// BooleanValue returns the value of a boolean constant.
func (e *Entity) BooleanValue() bool {
	return e.boolean
}

// ReferencedNs returns the namespace of a namespace constant.
func (e *Entity) ReferencedNs() *Entity {
	return e.referenced
}

// ReferencedType returns the type of a type constant.
func (e *Entity) ReferencedType() *Entity {
	return e.referenced
}

// ConversionKind returns the kind of a conversion value.
func (e *Entity) ConversionKind() ConversionKind {
	return e.conversionKind
}

// ConversionIsOptional returns whether a conversion value results from the
// `as` operator.
func (e *Entity) ConversionIsOptional() bool {
	return e.optional
}

// ConversionTarget returns the target type of a conversion value.
func (e *Entity) ConversionTarget() *Entity {
	return e.referenced
}

// IsReadOnly returns whether a slot or reference value cannot be assigned.
func (e *Entity) IsReadOnly(db *Database) bool {
	switch e.kind {
	case KindVariableSlot:
		return e.flags&flagReadOnly != 0
	case KindVariableSlotAfterSubstitution:
		return e.origin.IsReadOnly(db)
	case KindVirtualSlot, KindVirtualSlotAfterSubstitution:
		return e.Setter(db) == nil
	case KindMethodSlot, KindMethodSlotAfterSubstitution:
		return true
	case KindStaticReferenceValue, KindInstanceReferenceValue, KindScopeReferenceValue, KindPackageReferenceValue:
		return e.property.IsReadOnly(db)
	case KindXMLReferenceValue, KindDynamicReferenceValue, KindDynamicScopeReferenceValue,
		KindStaticDynamicReferenceValue, KindArrayElementReferenceValue, KindVectorElementReferenceValue,
		KindByteArrayElementReferenceValue, KindTupleReferenceValue:
		return false
	}

	return true
}

// SetIsReadOnly sets whether a variable slot is read-only.
func (e *Entity) SetIsReadOnly(value bool) {
	e.setFlag(flagReadOnly, value)
}

// IsWriteOnly returns whether a virtual slot lacks a getter.
func (e *Entity) IsWriteOnly(db *Database) bool {
	switch e.kind {
	case KindVirtualSlot, KindVirtualSlotAfterSubstitution:
		return e.Getter(db) == nil
	}

	return false
}

// Deletable returns whether a reference value supports the `delete` operator.
func (e *Entity) Deletable() bool {
	switch e.kind {
	case KindXMLReferenceValue, KindDynamicReferenceValue, KindDynamicScopeReferenceValue, KindArrayElementReferenceValue:
		return true
	}

	return false
}

// -----------------------------------------------------------------------------

func containsEntity(list []*Entity, e *Entity) bool {
	for _, item := range list {
		if item == e {
			return true
		}
	}

	return false
}
