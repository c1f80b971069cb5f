package semantics

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxmlextrema/mxmlcaot/numeric"
)

func TestConstantFoldsAcrossNumericTypes(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()

	five := f.CreateNumberConstant(numeric.FromInt(5), db.IntType())
	k, err := db.Conversions().Implicit(five, db.NumberType(), false)
	require.NoError(t, err)
	require.NotNil(t, k)

	type folded struct {
		Kind  Kind
		Type  string
		Value float64
	}
	got := folded{k.Kind(), k.StaticType(db).String(), k.NumberValue().ForceDouble()}
	if diff := deep.Equal(got, folded{KindNumberConstant, "Number", 5}); diff != nil {
		t.Error(diff)
	}
	assert.Equal(t, numeric.KindNumber, k.NumberValue().Kind())
}

func TestConstantRetypesUndefinedAndNull(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()
	c := db.Conversions()

	undef := f.CreateUndefinedConstant(db.VoidType())
	k, err := c.Constant(undef, db.StringType())
	require.NoError(t, err)
	assert.Equal(t, KindNullConstant, k.Kind())
	assert.Same(t, db.StringType(), k.StaticType(db))

	k, err = c.Constant(undef, db.AnyType())
	require.NoError(t, err)
	assert.Equal(t, KindUndefinedConstant, k.Kind())

	null := f.CreateNullConstant(db.AnyType())
	k, err = c.Constant(null, db.IntType())
	require.NoError(t, err)
	assert.Nil(t, k, "int excludes null")
}

func TestImplicitRequiresSameNullability(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()
	c := db.Conversions()

	a := declareClass(db, "A", db.ObjectType())
	b := declareClass(db, "B", a)

	r, err := c.Implicit(f.CreateValue(b), a, false)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, ConvToCovariant, r.ConversionKind())

	r, err = c.Implicit(f.CreateValue(f.CreateNonNullableType(b)), a, false)
	require.NoError(t, err)
	assert.Nil(t, r, "B! to A changes nullability")

	r, err = c.Implicit(f.CreateValue(f.CreateNonNullableType(b)), f.CreateNonNullableType(a), false)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, ConvToCovariant, r.ConversionKind())
}

func TestImplicitConversionKinds(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()
	c := db.Conversions()

	a := declareClass(db, "A", db.ObjectType())
	nonNullA := f.CreateNonNullableType(a)
	nullableA := f.CreateNullableType(a)

	tests := []struct {
		name   string
		from   *Entity
		target *Entity
		kind   ConversionKind
	}{
		{"from any", db.AnyType(), db.StringType(), ConvFromAny},
		{"to any", db.StringType(), db.AnyType(), ConvToAny},
		{"between numbers", db.IntType(), db.NumberType(), ConvBetweenNumber},
		{"non-nullable to nullable", nonNullA, nullableA, ConvNonNullableToNullable},
		{"as is to nullable", a, nullableA, ConvAsIsToNullable},
		{"non-nullable to as is", nonNullA, a, ConvNonNullableToAsIs},
		{"function to structural", db.FunctionType(), voidFunction(db), ConvFunctionToStructuralFunction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := c.Implicit(f.CreateValue(tt.from), tt.target, false)
			require.NoError(t, err)
			require.NotNil(t, r)
			assert.Equal(t, tt.kind, r.ConversionKind())
			assert.True(t, r.ConversionKind().IsImplicit())
		})
	}
}

func TestExplicitConversionKinds(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()
	c := db.Conversions()

	a := declareClass(db, "A", db.ObjectType())
	b := declareClass(db, "B", a)

	r, err := c.Implicit(f.CreateValue(a), b, false)
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = c.Explicit(f.CreateValue(a), b, false)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, ConvToContravariant, r.ConversionKind())
	assert.False(t, r.ConversionKind().IsImplicit())

	r, err = c.Explicit(f.CreateValue(db.BooleanType()), db.StringType(), false)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, ConvToString, r.ConversionKind())

	r, err = c.Explicit(f.CreateValue(db.StringType()), db.IntType(), true)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, ConvToInt, r.ConversionKind())
	assert.Same(t, f.CreateNullableType(db.IntType()), r.StaticType(db))
}

func TestConversionOfUnresolvedDefers(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()

	v := f.CreateValue(db.Unresolved())
	_, err := db.Conversions().Implicit(v, db.StringType(), false)
	assert.True(t, IsDefer(err))

	r, err := db.Conversions().Implicit(f.CreateValue(db.StringType()), db.Invalidation(), false)
	require.NoError(t, err)
	assert.Same(t, db.Invalidation(), r)
}
