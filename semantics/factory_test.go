package semantics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuralTypesAreInterned(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()

	a := declareClass(db, "A", db.ObjectType())
	b := declareClass(db, "B", db.ObjectType())

	assert.Same(t, f.CreateNullableType(a), f.CreateNullableType(a))
	assert.Same(t, f.CreateNonNullableType(a), f.CreateNonNullableType(a))

	ab := f.CreateTupleType([]*Entity{a, b})
	assert.Same(t, ab, f.CreateTupleType([]*Entity{a, b}))
	assert.NotSame(t, ab, f.CreateTupleType([]*Entity{b, a}))

	sig := func() *Entity {
		return f.CreateFunctionType([]*FunctionTypeParameter{
			{Kind: ParamRequired, StaticType: a},
			{Kind: ParamOptional, StaticType: b},
		}, db.VoidType())
	}
	assert.Same(t, sig(), sig())

	rest := f.CreateFunctionType([]*FunctionTypeParameter{
		{Kind: ParamRequired, StaticType: a},
		{Kind: ParamRest, StaticType: b},
	}, db.VoidType())
	assert.NotSame(t, sig(), rest)

	arrayOfA := f.CreateTypeAfterSubstitution(db.ArrayType(), []*Entity{a})
	assert.Same(t, arrayOfA, f.CreateTypeAfterSubstitution(db.ArrayType(), []*Entity{a}))
	assert.NotSame(t, arrayOfA, f.CreateTypeAfterSubstitution(db.VectorType(), []*Entity{a}))
}

func TestNullabilityWrappersCollapse(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()
	a := declareClass(db, "A", db.ObjectType())

	assert.Same(t, db.AnyType(), f.CreateNullableType(db.AnyType()))
	assert.Same(t, db.AnyType(), f.CreateNonNullableType(db.AnyType()))
	assert.Same(t, db.Invalidation(), f.CreateNullableType(db.Invalidation()))

	nonNullable := f.CreateNonNullableType(a)
	assert.Same(t, a, f.CreateNullableType(nonNullable))
	assert.Same(t, nonNullable, f.CreateNonNullableType(nonNullable))

	nullable := f.CreateNullableType(a)
	assert.Same(t, nullable, f.CreateNullableType(nullable))
}

func TestQNamesAndPackagesAreInterned(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()

	ns := f.CreateUserNs("http://example.com/ns")
	assert.Same(t, ns, f.CreateUserNs("http://example.com/ns"))
	assert.Same(t, f.CreateQName(ns, "x"), f.CreateQName(ns, "x"))
	assert.NotSame(t, f.CreateQName(ns, "x"), f.CreateQName(f.CreateExplicitNs("http://example.com/ns"), "x"))

	p := f.CreatePackage("com", "example")
	assert.Same(t, p, f.CreatePackage("com", "example"))
	assert.Same(t, p.Parent(), f.CreatePackage("com"))
	assert.Equal(t, "com.example", p.FullyQualifiedName())
}

func TestConversionValueWidensToNullable(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()

	v := f.CreateValue(db.AnyType())
	conv, err := f.CreateConversionValue(v, ConvFromAny, true, db.IntType())
	require.NoError(t, err)

	assert.Equal(t, KindConversionValue, conv.Kind())
	assert.Same(t, f.CreateNullableType(db.IntType()), conv.StaticType(db))
	assert.True(t, conv.ConversionIsOptional())
	assert.Same(t, db.IntType(), conv.ConversionTarget())
}

func TestWellKnownTypesDeferWithoutPrelude(t *testing.T) {
	db := NewDatabase(DefaultDatabaseOptions())

	assert.True(t, db.ObjectType().IsUnresolved())

	_, err := db.NumericTypes()
	assert.True(t, IsDefer(err))

	_, err = db.ArrayTypeOfAny()
	assert.True(t, IsDefer(err))

	DeclarePrelude(db)
	assert.False(t, db.ObjectType().IsUnresolved())

	numericTypes, err := db.NumericTypes()
	require.NoError(t, err)
	assert.Len(t, numericTypes, 4)
}
