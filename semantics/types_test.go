package semantics

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(list []*Entity) []string {
	r := make([]string, len(list))
	for i, e := range list {
		r[i] = e.String()
	}

	return r
}

func TestAllAscendingTypes(t *testing.T) {
	db := newTestDatabase(t)

	i1 := declareInterface(db, "I1")
	i2 := declareInterface(db, "I2", i1)
	a := declareClass(db, "A", db.ObjectType())
	a.AddImplements(i2)
	b := declareClass(db, "B", a)

	if diff := deep.Equal(names(a.AllAscendingTypes(db)), []string{"I1", "I2", "Object"}); diff != nil {
		t.Error(diff)
	}

	if diff := cmp.Diff([]string{"I1", "I2", "Object", "A"}, names(b.AllAscendingTypes(db))); diff != "" {
		t.Errorf("ascending types of B mismatch (-want +got):\n%s", diff)
	}

	sub, err := b.IsSubtypeOf(i1, db)
	require.NoError(t, err)
	assert.True(t, sub)

	sub, err = db.ObjectType().IsSubtypeOf(a, db)
	require.NoError(t, err)
	assert.False(t, sub)

	sub, err = a.IsSubtypeOf(a, db)
	require.NoError(t, err)
	assert.False(t, sub, "subtyping is strict")

	sub, err = a.IsSubtypeOf(db.AnyType(), db)
	require.NoError(t, err)
	assert.True(t, sub)
}

func TestAscendingTypesOfUnresolvedSupertypeDefers(t *testing.T) {
	db := newTestDatabase(t)

	a := declareClass(db, "A", db.Unresolved())
	assert.Equal(t, []*Entity{db.Unresolved()}, a.AllAscendingTypes(db))

	_, err := a.IsSubtypeOf(db.ObjectType(), db)
	assert.True(t, IsDefer(err))
}

func TestDescendingClassHierarchy(t *testing.T) {
	db := newTestDatabase(t)

	a := declareClass(db, "A", db.ObjectType())
	b := declareClass(db, "B", a)

	var got []*Entity
	for c := range b.DescendingClassHierarchy(db) {
		got = append(got, c)
	}

	assert.Equal(t, []string{"B", "A", "Object"}, names(got))
}

func TestApplyTypeSubstitutesMembers(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()

	arrayOfNumber := f.CreateTypeAfterSubstitution(db.ArrayType(), []*Entity{db.NumberType()})
	assert.Equal(t, "Array.<Number>", arrayOfNumber.String())

	push, err := arrayOfNumber.Prototype(db).GetInAnyPublicNs("push")
	require.NoError(t, err)
	require.NotNil(t, push)

	assert.Equal(t, KindMethodSlotAfterSubstitution, push.Kind())
	assert.Equal(t, "function(...Number) : uint", push.Signature(db).String())
	assert.Same(t, push, arrayOfNumber.Prototype(db).Get(push.Name()), "members are memoized")
	assert.Equal(t, "push", push.Name().LocalName())

	elem, err := arrayOfNumber.ArrayElementType(db)
	require.NoError(t, err)
	assert.Same(t, db.NumberType(), elem)
}

func TestApplyTypeRebuildsCompoundTypes(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()

	tp := db.ArrayType().TypeParams()
	params := []*FunctionTypeParameter{{Kind: ParamOptional, StaticType: f.CreateNullableType(tp[0])}}
	sig := f.CreateFunctionType(params, f.CreateTupleType([]*Entity{tp[0], db.StringType()}))

	got := ApplyType(db, sig, tp, []*Entity{db.IntType()})
	want := f.CreateFunctionType(
		[]*FunctionTypeParameter{{Kind: ParamOptional, StaticType: f.CreateNullableType(db.IntType())}},
		f.CreateTupleType([]*Entity{db.IntType(), db.StringType()}),
	)
	assert.Same(t, want, got)

	assert.Same(t, sig, ApplyType(db, sig, nil, nil))
	assert.Same(t, db.Unresolved(), ApplyType(db, db.Unresolved(), tp, []*Entity{db.IntType()}))
	assert.Panics(t, func() {
		ApplyType(db, sig, tp, nil)
	})
}

func TestTypeStrings(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()

	fn := f.CreateFunctionType([]*FunctionTypeParameter{
		{Kind: ParamRequired, StaticType: db.NumberType()},
		{Kind: ParamOptional, StaticType: db.StringType()},
		{Kind: ParamRest, StaticType: db.AnyType()},
	}, db.VoidType())

	vectorOfInt := f.CreateTypeAfterSubstitution(db.VectorType(), []*Entity{db.IntType()})

	tests := []struct {
		entity *Entity
		want   string
	}{
		{fn, "function(Number, String=, ...*) : void"},
		{f.CreateNullableType(voidFunction(db)), "?function() : void"},
		{f.CreateNullableType(db.StringType()), "String?"},
		{f.CreateNonNullableType(db.ObjectType()), "Object!"},
		{f.CreateTupleType([]*Entity{db.IntType(), db.BooleanType()}), "[int, Boolean]"},
		{vectorOfInt, "Vector.<int>"},
		{db.ArrayType(), "Array.<T>"},
		{db.DictionaryType(), "flash.utils.Dictionary"},
		{db.Unresolved(), "[unknown]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.entity.String())
	}
}

func TestTypeDefaultValues(t *testing.T) {
	db := newTestDatabase(t)

	v, err := db.IntType().TypeDefaultValue(db)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, KindNumberConstant, v.Kind())
	assert.True(t, v.NumberValue().IsZero())

	v, err = db.BooleanType().TypeDefaultValue(db)
	require.NoError(t, err)
	assert.Equal(t, KindBooleanConstant, v.Kind())
	assert.False(t, v.BooleanValue())

	v, err = db.AnyType().TypeDefaultValue(db)
	require.NoError(t, err)
	assert.Equal(t, KindUndefinedConstant, v.Kind())

	v, err = db.StringType().TypeDefaultValue(db)
	require.NoError(t, err)
	assert.Equal(t, KindNullConstant, v.Kind())
}
