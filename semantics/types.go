package semantics

import (
	"github.com/mxmlextrema/mxmlcaot/numeric"
	"github.com/mxmlextrema/mxmlcaot/report"
)

// IncludesUndefined returns whether `undefined` is a value of the type.  Only
// `*` and `void` include `undefined`.  The sentinels include everything so
// that they never cause a diagnostic.
func (e *Entity) IncludesUndefined(db *Database) (bool, error) {
	switch e.kind {
	case KindAnyType, KindVoidType, KindUnresolved, KindInvalidation:
		return true, nil
	}

	return false, nil
}

// IncludesNull returns whether `null` is a value of the type.  Classes include
// `null` unless they are one of the non-nullable primitive types, which
// requires those types to be resolved.
func (e *Entity) IncludesNull(db *Database) (bool, error) {
	switch e.kind {
	case KindAnyType, KindUnresolved, KindInvalidation:
		return true, nil
	case KindClassType:
		nonNull, err := db.NonNullPrimitiveTypes()
		if err != nil {
			return false, err
		}

		return !containsEntity(nonNull, e), nil
	case KindEnumType, KindInterfaceType, KindTypeAfterSubstitution, KindTupleType, KindFunctionType, KindNullableType:
		return true, nil
	}

	return false, nil
}

// EscapeOfNullable returns the base of a nullable type or the type itself.
func (e *Entity) EscapeOfNullable() *Entity {
	if e.kind == KindNullableType {
		return e.base
	}

	return e
}

// EscapeOfNonNullable returns the base of a non-nullable type or the type
// itself.
func (e *Entity) EscapeOfNonNullable() *Entity {
	if e.kind == KindNonNullableType {
		return e.base
	}

	return e
}

// EscapeOfNullableOrNonNullable strips one nullable or non-nullable layer.
func (e *Entity) EscapeOfNullableOrNonNullable() *Entity {
	if e.kind == KindNullableType || e.kind == KindNonNullableType {
		return e.base
	}

	return e
}

// -----------------------------------------------------------------------------
// Heritage

// ExtendsClass returns the superclass of a class, possibly unresolved, or nil.
// Enums extend `Object`, tuples extend `Array.<*>` and function types extend
// `Function`.
func (e *Entity) ExtendsClass(db *Database) *Entity {
	switch e.kind {
	case KindClassType:
		return e.extendsClass
	case KindEnumType:
		return db.ObjectType()
	case KindTupleType:
		t, err := db.ArrayTypeOfAny()
		if err != nil {
			return db.unresolved
		}

		return t
	case KindFunctionType:
		return db.FunctionType()
	case KindTypeAfterSubstitution:
		return e.memo.extendsClass.load(func() (*Entity, bool) {
			r := e.origin.ExtendsClass(db)
			if r == nil {
				return nil, true
			}

			if r.kind == KindUnresolved {
				return r, false
			}

			return e.substituteIn(db, r), true
		})
	}

	return nil
}

// SetExtendsClass sets the superclass of a class.
func (e *Entity) SetExtendsClass(t *Entity) {
	e.extendsClass = t
}

// Implements returns the interfaces implemented by a class, each possibly
// unresolved.
func (e *Entity) Implements(db *Database) []*Entity {
	switch e.kind {
	case KindClassType:
		return e.implements
	case KindTypeAfterSubstitution:
		return e.memo.implements.load(func() ([]*Entity, bool) {
			return e.substituteAll(db, e.origin.Implements(db)), true
		})
	}

	return nil
}

// AddImplements adds an interface implemented by a class.
func (e *Entity) AddImplements(itrfc *Entity) {
	e.implements = append(e.implements, itrfc)
}

// ExtendsInterfaces returns the interfaces extended by an interface, each
// possibly unresolved.
func (e *Entity) ExtendsInterfaces(db *Database) []*Entity {
	switch e.kind {
	case KindInterfaceType:
		return e.extendsInterfaces
	case KindTypeAfterSubstitution:
		return e.memo.extendsInterfaces.load(func() ([]*Entity, bool) {
			return e.substituteAll(db, e.origin.ExtendsInterfaces(db)), true
		})
	}

	return nil
}

// AddExtendsInterface adds an interface extended by an interface.
func (e *Entity) AddExtendsInterface(itrfc *Entity) {
	e.extendsInterfaces = append(e.extendsInterfaces, itrfc)
}

// TypeParams returns the type parameters of a parameterized class or
// interface, or nil.
func (e *Entity) TypeParams() []*Entity {
	switch e.kind {
	case KindClassType, KindInterfaceType:
		return e.typeParams
	}

	return nil
}

// SetTypeParams sets the type parameters of a class or interface.
func (e *Entity) SetTypeParams(params []*Entity) {
	e.typeParams = params
}

// Properties returns the static members of a type or package, or the members
// of a scope.  Entities without members yield an empty table.
func (e *Entity) Properties(db *Database) *Names {
	switch e.kind {
	case KindTypeAfterSubstitution:
		return e.memo.properties.load(func() (*Names, bool) {
			return e.substituteNames(db, e.origin.Properties(db)), true
		})
	case KindAlias:
		return e.ResolveAlias().Properties(db)
	}

	if e.properties != nil {
		return e.properties
	}

	return NewNames()
}

// Prototype returns the instance members of a class, enum or interface.
func (e *Entity) Prototype(db *Database) *Names {
	if e.kind == KindTypeAfterSubstitution {
		return e.memo.prototype.load(func() (*Names, bool) {
			return e.substituteNames(db, e.origin.Prototype(db)), true
		})
	}

	if e.prototype != nil {
		return e.prototype
	}

	return NewNames()
}

// ConstructorMethod returns the constructor of a class or nil.
func (e *Entity) ConstructorMethod(db *Database) *Entity {
	switch e.kind {
	case KindClassType:
		return e.constructor
	case KindTypeAfterSubstitution:
		return e.memo.constructor.load(func() (*Entity, bool) {
			r := e.origin.ConstructorMethod(db)
			if r == nil {
				return nil, true
			}

			return e.substituteIn(db, r), true
		})
	}

	return nil
}

// SetConstructorMethod sets the constructor of a class.
func (e *Entity) SetConstructorMethod(m *Entity) {
	e.constructor = m
}

// -----------------------------------------------------------------------------
// Structural types

// ElementTypes returns the element types of a tuple type.
func (e *Entity) ElementTypes() []*Entity {
	return e.elementTypes
}

// Params returns the parameters of a function type.
func (e *Entity) Params() []*FunctionTypeParameter {
	return e.params
}

// ResultType returns the result type of a function type.
func (e *Entity) ResultType() *Entity {
	return e.resultType
}

// Origin returns the origin of a type or slot after substitution.
func (e *Entity) Origin() *Entity {
	return e.origin
}

// SubstituteTypes returns the substitute types of a type after substitution,
// or the indirect substitute types of a slot after substitution.
func (e *Entity) SubstituteTypes() []*Entity {
	return e.substituteTypes
}

// IndirectTypeParams returns the indirect type parameters of a slot after
// substitution.
func (e *Entity) IndirectTypeParams() []*Entity {
	if e.kind == KindTypeAfterSubstitution {
		return nil
	}

	return e.typeParams
}

// -----------------------------------------------------------------------------
// Classification

// IsClassTypePossiblyAfterSub returns whether a type is a class, original or
// after substitution.
func (e *Entity) IsClassTypePossiblyAfterSub() bool {
	switch e.kind {
	case KindClassType:
		return true
	case KindTypeAfterSubstitution:
		return e.origin.IsClassTypePossiblyAfterSub()
	}

	return false
}

// IsInterfaceTypePossiblyAfterSub returns whether a type is an interface,
// original or after substitution.
func (e *Entity) IsInterfaceTypePossiblyAfterSub() bool {
	switch e.kind {
	case KindInterfaceType:
		return true
	case KindTypeAfterSubstitution:
		return e.origin.IsInterfaceTypePossiblyAfterSub()
	}

	return false
}

// IsClassOrEquivalent returns whether a type has class semantics: classes,
// enums, tuples and function types.
func (e *Entity) IsClassOrEquivalent() bool {
	return e.IsClassTypePossiblyAfterSub() || e.kind == KindEnumType || e.kind == KindTupleType || e.kind == KindFunctionType
}

// IsDynamicOrInheritsDynamic returns whether a type or one of its
// superclasses is dynamic.
func (e *Entity) IsDynamicOrInheritsDynamic(db *Database) (bool, error) {
	switch e.kind {
	case KindClassType:
		if e.IsDynamic() {
			return true, nil
		}

		if super := e.ExtendsClass(db); super != nil {
			base, err := super.Defer()
			if err != nil {
				return false, err
			}

			return base.IsDynamicOrInheritsDynamic(db)
		}

		return false, nil
	case KindTypeAfterSubstitution:
		return e.origin.IsDynamicOrInheritsDynamic(db)
	case KindTupleType, KindFunctionType:
		return e.IsDynamic(), nil
	}

	return false, nil
}

// firstArgumentOf returns the first type argument of the given parameterized
// type as seen from e.  It returns nil if e is neither that type nor one of
// its instantiations.
func (e *Entity) firstArgumentOf(origin *Entity) (*Entity, error) {
	origin, err := origin.Defer()
	if err != nil {
		return nil, err
	}

	switch {
	case e == origin:
		return origin.typeParams[0], nil
	case e.kind == KindTypeAfterSubstitution && e.origin == origin:
		return e.substituteTypes[0], nil
	}

	return nil, nil
}

// ArrayElementType returns `T` for `Array.<T>`, or nil for other types.
func (e *Entity) ArrayElementType(db *Database) (*Entity, error) {
	return e.firstArgumentOf(db.ArrayType())
}

// VectorElementType returns `T` for `Vector.<T>`, or nil for other types.
func (e *Entity) VectorElementType(db *Database) (*Entity, error) {
	return e.firstArgumentOf(db.VectorType())
}

// PromiseResultType returns `T` for `Promise.<T>`, or nil for other types.
func (e *Entity) PromiseResultType(db *Database) (*Entity, error) {
	return e.firstArgumentOf(db.PromiseType())
}

// -----------------------------------------------------------------------------

// TypeDefaultValue returns the constant a variable of the type holds before
// assignment, or nil if the type has no default.
func (e *Entity) TypeDefaultValue(db *Database) (*Entity, error) {
	f := db.factory

	includesUndefined, err := e.IncludesUndefined(db)
	if err != nil {
		return nil, err
	} else if includesUndefined {
		return f.CreateUndefinedConstant(e), nil
	}

	includesNull, err := e.IncludesNull(db)
	if err != nil {
		return nil, err
	} else if includesNull {
		return f.CreateNullConstant(e), nil
	}

	numericTypes, err := db.NumericTypes()
	if err != nil {
		return nil, err
	}

	if containsEntity(numericTypes, e) {
		kind := db.numericKindOf(e)
		if kind.IsFloatingPoint() {
			return f.CreateNumberConstant(numeric.NaN(kind), e), nil
		}

		return f.CreateNumberConstant(numeric.Zero(kind), e), nil
	}

	booleanType, err := db.BooleanType().Defer()
	if err != nil {
		return nil, err
	}

	if e == booleanType {
		return f.CreateBooleanConstant(false, e), nil
	}

	return nil, nil
}

// numericKindOf maps one of the resolved numeric types to its numeric kind.
// Passing any other type is a programming error.
func (db *Database) numericKindOf(t *Entity) numeric.Kind {
	switch t {
	case db.NumberType():
		return numeric.KindNumber
	case db.FloatType():
		return numeric.KindFloat
	case db.IntType():
		return numeric.KindInt
	case db.UintType():
		return numeric.KindUint
	}

	report.RaiseICE("`%s` is not a numeric type", t)
	return 0
}

// IsComparisonBetweenUnrelatedTypes returns whether comparing values of the two
// types is always false: neither type is a primitive, `*` or an ascending type
// of the other.
func (e *Entity) IsComparisonBetweenUnrelatedTypes(other *Entity, db *Database) (bool, error) {
	left := e.EscapeOfNullableOrNonNullable()
	right := other.EscapeOfNullableOrNonNullable()
	if left == right || left == db.anyType || right == db.anyType {
		return false, nil
	}

	primitives, err := db.PrimitiveTypes()
	if err != nil {
		return false, err
	}

	if containsEntity(primitives, left) || containsEntity(primitives, right) {
		return false, nil
	}

	asc, err := left.IsAscendingTypeOf(right, db)
	if err != nil || asc {
		return false, err
	}

	sub, err := left.IsSubtypeOf(right, db)
	if err != nil {
		return false, err
	}

	return !sub, nil
}

// AsType returns the type designated by an entity: a type itself, the type of
// a type constant or the type a fixture reference refers to.  It returns nil
// for anything else.
func (e *Entity) AsType() *Entity {
	switch {
	case e.kind == KindTypeConstant:
		return e.referenced
	case e.kind.IsFixtureReferenceValue():
		return e.property.AsType()
	case e.kind.IsType():
		return e
	}

	return nil
}

// AvailableStaticDefinitions lists the static members of a class and of its
// superclasses accessible from the namespace set.
func (e *Entity) AvailableStaticDefinitions(db *Database, nsSet []*Entity) ([]*Entity, error) {
	if e.IsInterfaceTypePossiblyAfterSub() || !e.kind.IsType() {
		return nil, nil
	}

	var r []*Entity
	for c := e; c != nil; {
		c.Properties(db).Each(func(name *QName, entity *Entity) bool {
			if name.AccessibleFromNsSet(db, nsSet) {
				r = append(r, entity)
			}
			return true
		})

		next := c.ExtendsClass(db)
		if next == nil {
			break
		}

		var err error
		if c, err = next.Defer(); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// AvailablePrototypeDefinitions lists the instance members of a class and of
// its superclasses accessible from the namespace set.  For interfaces, every
// member of the interface and of its ascending interfaces is listed.
func (e *Entity) AvailablePrototypeDefinitions(db *Database, nsSet []*Entity) ([]*Entity, error) {
	var r []*Entity
	if e.IsInterfaceTypePossiblyAfterSub() {
		for _, itrfc := range append(e.AllAscendingTypes(db), e) {
			itrfc.Prototype(db).Each(func(_ *QName, entity *Entity) bool {
				r = append(r, entity)
				return true
			})
		}

		return r, nil
	}

	for c := e; c != nil; {
		c.Prototype(db).Each(func(name *QName, entity *Entity) bool {
			if name.AccessibleFromNsSet(db, nsSet) {
				r = append(r, entity)
			}
			return true
		})

		next := c.ExtendsClass(db)
		if next == nil {
			break
		}

		var err error
		if c, err = next.Defer(); err != nil {
			return nil, err
		}
	}

	return r, nil
}
