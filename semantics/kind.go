package semantics

// Kind is the variant of an entity.  The set of kinds is closed: every
// capability of an entity switches over its kind.
type Kind int

// Enumeration of entity kinds.
const (
	KindUnresolved Kind = iota
	KindInvalidation

	// Namespaces.
	KindSystemNamespace
	KindUserNamespace
	KindExplicitNamespace

	KindPackage
	KindAlias

	// Types.
	KindAnyType
	KindVoidType
	KindClassType
	KindEnumType
	KindInterfaceType
	KindFunctionType
	KindTupleType
	KindNullableType
	KindNonNullableType
	KindTypeParameterType
	KindTypeAfterSubstitution

	// Slots.
	KindVariableSlot
	KindVariableSlotAfterSubstitution
	KindVirtualSlot
	KindVirtualSlotAfterSubstitution
	KindMethodSlot
	KindMethodSlotAfterSubstitution

	// Scopes.
	KindScope
	KindWithScope
	KindFilterScope
	KindActivation
	KindClassScope
	KindEnumScope
	KindInterfaceScope
	KindPackageScope

	// Values.
	KindValue
	KindPackagePropertyImport
	KindPackageWildcardImport
	KindPackageRecursiveImport
	KindUndefinedConstant
	KindNullConstant
	KindNamespaceConstant
	KindTypeConstant
	KindNumberConstant
	KindStringConstant
	KindBooleanConstant
	KindThisObject
	KindMetaProperty
	KindMetaEnvProperty
	KindXMLReferenceValue
	KindDynamicReferenceValue
	KindStaticReferenceValue
	KindInstanceReferenceValue
	KindTupleReferenceValue
	KindScopeReferenceValue
	KindDynamicScopeReferenceValue
	KindPackageReferenceValue
	KindArrayElementReferenceValue
	KindVectorElementReferenceValue
	KindByteArrayElementReferenceValue
	KindStaticDynamicReferenceValue
	KindConversionValue
	KindNonNullValue
	KindLambdaObject
	KindFilterValue
)

var kindNames = [...]string{
	KindUnresolved:                     "Unresolved",
	KindInvalidation:                   "Invalidation",
	KindSystemNamespace:                "SystemNamespace",
	KindUserNamespace:                  "UserNamespace",
	KindExplicitNamespace:              "ExplicitNamespace",
	KindPackage:                        "Package",
	KindAlias:                          "Alias",
	KindAnyType:                        "AnyType",
	KindVoidType:                       "VoidType",
	KindClassType:                      "ClassType",
	KindEnumType:                       "EnumType",
	KindInterfaceType:                  "InterfaceType",
	KindFunctionType:                   "FunctionType",
	KindTupleType:                      "TupleType",
	KindNullableType:                   "NullableType",
	KindNonNullableType:                "NonNullableType",
	KindTypeParameterType:              "TypeParameterType",
	KindTypeAfterSubstitution:          "TypeAfterSubstitution",
	KindVariableSlot:                   "VariableSlot",
	KindVariableSlotAfterSubstitution:  "VariableSlotAfterSubstitution",
	KindVirtualSlot:                    "VirtualSlot",
	KindVirtualSlotAfterSubstitution:   "VirtualSlotAfterSubstitution",
	KindMethodSlot:                     "MethodSlot",
	KindMethodSlotAfterSubstitution:    "MethodSlotAfterSubstitution",
	KindScope:                          "Scope",
	KindWithScope:                      "WithScope",
	KindFilterScope:                    "FilterScope",
	KindActivation:                     "Activation",
	KindClassScope:                     "ClassScope",
	KindEnumScope:                      "EnumScope",
	KindInterfaceScope:                 "InterfaceScope",
	KindPackageScope:                   "PackageScope",
	KindValue:                          "Value",
	KindPackagePropertyImport:          "PackagePropertyImport",
	KindPackageWildcardImport:          "PackageWildcardImport",
	KindPackageRecursiveImport:         "PackageRecursiveImport",
	KindUndefinedConstant:              "UndefinedConstant",
	KindNullConstant:                   "NullConstant",
	KindNamespaceConstant:              "NamespaceConstant",
	KindTypeConstant:                   "TypeConstant",
	KindNumberConstant:                 "NumberConstant",
	KindStringConstant:                 "StringConstant",
	KindBooleanConstant:                "BooleanConstant",
	KindThisObject:                     "ThisObject",
	KindMetaProperty:                   "MetaProperty",
	KindMetaEnvProperty:                "MetaEnvProperty",
	KindXMLReferenceValue:              "XMLReferenceValue",
	KindDynamicReferenceValue:          "DynamicReferenceValue",
	KindStaticReferenceValue:           "StaticReferenceValue",
	KindInstanceReferenceValue:         "InstanceReferenceValue",
	KindTupleReferenceValue:            "TupleReferenceValue",
	KindScopeReferenceValue:            "ScopeReferenceValue",
	KindDynamicScopeReferenceValue:     "DynamicScopeReferenceValue",
	KindPackageReferenceValue:          "PackageReferenceValue",
	KindArrayElementReferenceValue:     "ArrayElementReferenceValue",
	KindVectorElementReferenceValue:    "VectorElementReferenceValue",
	KindByteArrayElementReferenceValue: "ByteArrayElementReferenceValue",
	KindStaticDynamicReferenceValue:    "StaticDynamicReferenceValue",
	KindConversionValue:                "ConversionValue",
	KindNonNullValue:                   "NonNullValue",
	KindLambdaObject:                   "LambdaObject",
	KindFilterValue:                    "FilterValue",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Kind(?)"
}

// -----------------------------------------------------------------------------
// Family predicates.

// IsNamespace returns whether the kind is a namespace kind.
func (k Kind) IsNamespace() bool {
	return k >= KindSystemNamespace && k <= KindExplicitNamespace
}

// IsType returns whether the kind is a type kind.
func (k Kind) IsType() bool {
	return k >= KindAnyType && k <= KindTypeAfterSubstitution
}

// IsSlot returns whether the kind is a slot kind, original or after
// substitution.
func (k Kind) IsSlot() bool {
	return k >= KindVariableSlot && k <= KindMethodSlotAfterSubstitution
}

// IsScope returns whether the kind is a scope kind.
func (k Kind) IsScope() bool {
	return k >= KindScope && k <= KindPackageScope
}

// IsFixtureScope returns whether the kind is a scope tied to a declaration
// site: class, enum, interface or package.
func (k Kind) IsFixtureScope() bool {
	return k >= KindClassScope && k <= KindPackageScope
}

// IsValue returns whether the kind is a value kind.
func (k Kind) IsValue() bool {
	return k >= KindValue && k <= KindFilterValue
}

// IsConstant returns whether the kind is a constant kind.
func (k Kind) IsConstant() bool {
	return k >= KindUndefinedConstant && k <= KindBooleanConstant
}

// IsImport returns whether the kind is a package import kind.
func (k Kind) IsImport() bool {
	return k >= KindPackagePropertyImport && k <= KindPackageRecursiveImport
}

// IsReferenceValue returns whether the kind is a reference value kind.
func (k Kind) IsReferenceValue() bool {
	return k >= KindXMLReferenceValue && k <= KindStaticDynamicReferenceValue
}

// IsFixtureReferenceValue returns whether the kind is a reference to a
// resolved property: static, instance, scope or package reference.
func (k Kind) IsFixtureReferenceValue() bool {
	switch k {
	case KindStaticReferenceValue, KindInstanceReferenceValue, KindScopeReferenceValue, KindPackageReferenceValue:
		return true
	}

	return false
}

// IsAfterSubstitution returns whether the kind is a lazily substituted type or
// slot.
func (k Kind) IsAfterSubstitution() bool {
	switch k {
	case KindTypeAfterSubstitution, KindVariableSlotAfterSubstitution, KindVirtualSlotAfterSubstitution, KindMethodSlotAfterSubstitution:
		return true
	}

	return false
}
