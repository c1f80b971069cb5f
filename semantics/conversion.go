package semantics

// ConversionKind is the rule by which a value was converted to a type.
type ConversionKind int

// Enumeration of conversion kinds.  The implicit kinds come first.
const (
	// From `*`.
	ConvFromAny ConversionKind = iota

	// To `*`.
	ConvToAny

	// Between two of `Number`, `float`, `int` and `uint`, neither marked
	// nullable nor non-nullable.
	ConvBetweenNumber

	// To a supertype.  Both types include `null` or neither does.
	ConvToCovariant

	// From an interface to `Object`, `Object?` or `Object!`.
	ConvItrfcToObject

	// From `T!` to `T?`.
	ConvNonNullableToNullable

	// From `T` to `T?`.
	ConvAsIsToNullable

	// From `T!` to `T`.
	ConvNonNullableToAsIs

	// From `Function` to a structural function type.
	ConvFunctionToStructuralFunction

	// From `Object` to an interface.  Explicit.
	ConvObjectToItrfc

	// To a subtype.  Explicit.
	ConvToContravariant

	// From `Vector.<T>` to `Vector.<U>` where `U` is an ascending type of `T`.
	// Explicit.
	ConvToCovariantVector

	// From `String` to an enum.  Explicit.
	ConvStringToEnum

	// From `Number` to an enum.  Explicit.
	ConvNumberToEnum

	// From a type parameter, possibly non-nullable.  Explicit.
	ConvFromTypeParameter

	// Between two instantiations of the same parameterized type other than
	// `Vector`.  Explicit.
	ConvParameterizedTypeAlter

	// Primitive coercions.  Explicit.
	ConvToString
	ConvToBoolean
	ConvToNumber
	ConvToFloat
	ConvToUint
	ConvToInt
)

var conversionKindNames = [...]string{
	ConvFromAny:                      "FromAny",
	ConvToAny:                        "ToAny",
	ConvBetweenNumber:                "BetweenNumber",
	ConvToCovariant:                  "ToCovariant",
	ConvItrfcToObject:                "ItrfcToObject",
	ConvNonNullableToNullable:        "NonNullableToNullable",
	ConvAsIsToNullable:               "AsIsToNullable",
	ConvNonNullableToAsIs:            "NonNullableToAsIs",
	ConvFunctionToStructuralFunction: "FunctionToStructuralFunction",
	ConvObjectToItrfc:                "ObjectToItrfc",
	ConvToContravariant:              "ToContravariant",
	ConvToCovariantVector:            "ToCovariantVector",
	ConvStringToEnum:                 "StringToEnum",
	ConvNumberToEnum:                 "NumberToEnum",
	ConvFromTypeParameter:            "FromTypeParameter",
	ConvParameterizedTypeAlter:       "ParameterizedTypeAlter",
	ConvToString:                     "ToString",
	ConvToBoolean:                    "ToBoolean",
	ConvToNumber:                     "ToNumber",
	ConvToFloat:                      "ToFloat",
	ConvToUint:                       "ToUint",
	ConvToInt:                        "ToInt",
}

func (ck ConversionKind) String() string {
	if int(ck) < len(conversionKindNames) {
		return conversionKindNames[ck]
	}

	return "ConversionKind(?)"
}

// IsImplicit returns whether the conversion may happen without a cast.
func (ck ConversionKind) IsImplicit() bool {
	return ck <= ConvFunctionToStructuralFunction
}

// -----------------------------------------------------------------------------

// Conversions decides whether and how a value converts to a type.  Every
// operation returns the converted value, nil when no conversion exists or a
// deferral when a required type is still unresolved.
type Conversions struct {
	db *Database
}

// sameNullability returns whether both types include `null` or neither does.
func (c *Conversions) sameNullability(a, b *Entity) (bool, error) {
	an, err := a.IncludesNull(c.db)
	if err != nil {
		return false, err
	}

	bn, err := b.IncludesNull(c.db)
	if err != nil {
		return false, err
	}

	return an == bn, nil
}

// convert creates a conversion value if both types agree on nullability.
func (c *Conversions) convertIfSameNullability(value, fromType, targetType *Entity, kind ConversionKind, optional bool) (*Entity, error) {
	same, err := c.sameNullability(fromType, targetType)
	if err != nil || !same {
		return nil, err
	}

	return c.db.factory.CreateConversionValue(value, kind, optional, targetType)
}

// Constant retypes a constant: `undefined` and `null` to types including
// them, numeric constants across numeric types and constants across one
// nullable or non-nullable layer.
func (c *Conversions) Constant(value, targetType *Entity) (*Entity, error) {
	db := c.db
	f := db.factory

	fromType := value.StaticType(db)
	if fromType == targetType {
		return value, nil
	}

	if value.kind == KindInvalidation || fromType.kind == KindInvalidation || targetType.kind == KindInvalidation {
		return db.invalidation, nil
	}

	if err := deferred(fromType); err != nil {
		return nil, err
	}

	if err := deferred(targetType); err != nil {
		return nil, err
	}

	if !value.kind.IsConstant() {
		return nil, nil
	}

	includesUndefined, err := targetType.IncludesUndefined(db)
	if err != nil {
		return nil, err
	}

	includesNull, err := targetType.IncludesNull(db)
	if err != nil {
		return nil, err
	}

	switch value.kind {
	case KindUndefinedConstant:
		if includesUndefined {
			return f.CreateUndefinedConstant(targetType), nil
		} else if includesNull {
			return f.CreateNullConstant(targetType), nil
		}
	case KindNullConstant:
		if includesUndefined || includesNull {
			return f.CreateNullConstant(targetType), nil
		}
	}

	objectType, err := db.ObjectType().Defer()
	if err != nil {
		return nil, err
	}

	targetEsc := targetType.EscapeOfNullableOrNonNullable()
	if value.kind == KindNumberConstant {
		if targetType.kind == KindAnyType || targetEsc == objectType {
			return f.CreateNumberConstant(value.number, targetType), nil
		}

		numericTypes, err := db.NumericTypes()
		if err != nil {
			return nil, err
		}

		if containsEntity(numericTypes, targetEsc) {
			v := value.number.ConvertKind(db.numericKindOf(targetEsc))
			return f.CreateNumberConstant(v, targetType), nil
		}
	}

	// T or T! to T?, T or T? to T!
	if (targetType.kind == KindNullableType || targetType.kind == KindNonNullableType) &&
		targetType.base == fromType.EscapeOfNullableOrNonNullable() {
		k := value.CloneConstant(db)
		k.SetStaticType(targetType)
		return k, nil
	}

	return nil, nil
}

// Implicit converts a value without a cast.  optional is set for the `as`
// operator, widening the result to include `null`.
func (c *Conversions) Implicit(value, targetType *Entity, optional bool) (*Entity, error) {
	db := c.db
	f := db.factory

	fromType := value.StaticType(db)
	if fromType == targetType {
		return value, nil
	}

	if k, err := c.Constant(value, targetType); err != nil || k != nil {
		return k, err
	}

	if fromType.kind == KindAnyType {
		return f.CreateConversionValue(value, ConvFromAny, optional, targetType)
	}

	if targetType.kind == KindAnyType {
		return f.CreateConversionValue(value, ConvToAny, optional, targetType)
	}

	numericTypes, err := db.NumericTypes()
	if err != nil {
		return nil, err
	}

	if containsEntity(numericTypes, fromType) && containsEntity(numericTypes, targetType) {
		return f.CreateConversionValue(value, ConvBetweenNumber, optional, targetType)
	}

	fromEsc := fromType.EscapeOfNullableOrNonNullable()
	targetEsc := targetType.EscapeOfNullableOrNonNullable()

	sub, err := fromEsc.IsSubtypeOf(targetEsc, db)
	if err != nil {
		return nil, err
	}

	if sub {
		if r, err := c.convertIfSameNullability(value, fromType, targetType, ConvToCovariant, optional); err != nil || r != nil {
			return r, err
		}
	}

	objectType, err := db.ObjectType().Defer()
	if err != nil {
		return nil, err
	}

	if targetEsc == objectType && fromEsc.IsInterfaceTypePossiblyAfterSub() {
		if r, err := c.convertIfSameNullability(value, fromType, targetType, ConvItrfcToObject, optional); err != nil || r != nil {
			return r, err
		}
	}

	if targetType.kind == KindNullableType {
		if fromType.kind == KindNonNullableType && fromType.base == targetType.base {
			return f.CreateConversionValue(value, ConvNonNullableToNullable, optional, targetType)
		}

		if fromType == targetType.base {
			return f.CreateConversionValue(value, ConvAsIsToNullable, optional, targetType)
		}
	}

	if fromType.kind == KindNonNullableType && targetType == fromType.base {
		return f.CreateConversionValue(value, ConvNonNullableToAsIs, optional, targetType)
	}

	functionType, err := db.FunctionType().Defer()
	if err != nil {
		return nil, err
	}

	if fromEsc == functionType && targetEsc.kind == KindFunctionType {
		return c.convertIfSameNullability(value, fromType, targetType, ConvFunctionToStructuralFunction, optional)
	}

	return nil, nil
}

// Explicit converts a value with a cast: any implicit conversion, or else one
// of the explicit-only rules.
func (c *Conversions) Explicit(value, targetType *Entity, optional bool) (*Entity, error) {
	db := c.db
	f := db.factory

	fromType := value.StaticType(db)
	if fromType == targetType {
		return value, nil
	}

	if r, err := c.Implicit(value, targetType, optional); err != nil || r != nil {
		return r, err
	}

	fromEsc := fromType.EscapeOfNullableOrNonNullable()
	targetEsc := targetType.EscapeOfNullableOrNonNullable()

	objectType, err := db.ObjectType().Defer()
	if err != nil {
		return nil, err
	}

	if fromEsc == objectType && targetEsc.IsInterfaceTypePossiblyAfterSub() {
		if r, err := c.convertIfSameNullability(value, fromType, targetType, ConvObjectToItrfc, optional); err != nil || r != nil {
			return r, err
		}
	}

	asc, err := fromEsc.IsAscendingTypeOf(targetEsc, db)
	if err != nil {
		return nil, err
	}

	if asc {
		if r, err := c.convertIfSameNullability(value, fromType, targetType, ConvToContravariant, optional); err != nil || r != nil {
			return r, err
		}
	}

	if r, err := c.covariantVector(value, fromType, targetType, optional); err != nil || r != nil {
		return r, err
	}

	stringType, err := db.StringType().Defer()
	if err != nil {
		return nil, err
	}

	if fromType.EscapeOfNonNullable() == stringType && targetType.EscapeOfNonNullable().kind == KindEnumType {
		return f.CreateConversionValue(value, ConvStringToEnum, optional, targetType)
	}

	numberType, err := db.NumberType().Defer()
	if err != nil {
		return nil, err
	}

	if fromType == numberType && targetType.EscapeOfNonNullable().kind == KindEnumType {
		return f.CreateConversionValue(value, ConvNumberToEnum, optional, targetType)
	}

	primitives := []struct {
		t    *Entity
		kind ConversionKind
	}{
		{db.StringType(), ConvToString},
		{db.BooleanType(), ConvToBoolean},
		{db.NumberType(), ConvToNumber},
		{db.FloatType(), ConvToFloat},
		{db.UintType(), ConvToUint},
		{db.IntType(), ConvToInt},
	}

	for _, p := range primitives {
		t, err := p.t.Defer()
		if err != nil {
			return nil, err
		}

		if targetType == t {
			return f.CreateConversionValue(value, p.kind, optional, targetType)
		}
	}

	if fromType.EscapeOfNonNullable().kind == KindTypeParameterType {
		return f.CreateConversionValue(value, ConvFromTypeParameter, optional, targetType)
	}

	fromOrigin, targetOrigin := fromEsc.parameterizedOrigin(), targetEsc.parameterizedOrigin()
	if fromOrigin != nil && fromOrigin == targetOrigin {
		vectorType, err := db.VectorType().Defer()
		if err != nil {
			return nil, err
		}

		if fromOrigin != vectorType {
			return c.convertIfSameNullability(value, fromType, targetType, ConvParameterizedTypeAlter, optional)
		}
	}

	return nil, nil
}

// covariantVector converts `Vector.<T>` to `Vector.<U>` where `U` is an
// ascending type of `T` and both element types agree on nullability.
func (c *Conversions) covariantVector(value, fromType, targetType *Entity, optional bool) (*Entity, error) {
	db := c.db

	elSub, err := fromType.EscapeOfNullableOrNonNullable().VectorElementType(db)
	if err != nil || elSub == nil {
		return nil, err
	}

	elBase, err := targetType.EscapeOfNullableOrNonNullable().VectorElementType(db)
	if err != nil || elBase == nil {
		return nil, err
	}

	asc, err := elBase.EscapeOfNullableOrNonNullable().IsAscendingTypeOf(elSub.EscapeOfNullableOrNonNullable(), db)
	if err != nil || !asc {
		return nil, err
	}

	same, err := c.sameNullability(elBase, elSub)
	if err != nil || !same {
		return nil, err
	}

	return c.convertIfSameNullability(value, fromType, targetType, ConvToCovariantVector, optional)
}

// parameterizedOrigin returns the parameterized type of a parameterized type
// or of one of its instantiations, or nil.
func (e *Entity) parameterizedOrigin() *Entity {
	switch {
	case e.kind == KindTypeAfterSubstitution:
		return e.origin
	case (e.kind == KindClassType || e.kind == KindInterfaceType) && e.typeParams != nil:
		return e
	}

	return nil
}
