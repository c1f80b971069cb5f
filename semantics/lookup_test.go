package semantics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxmlextrema/mxmlcaot/numeric"
)

// declarePackageVariable declares a public variable of a package.
func declarePackageVariable(db *Database, pckg *Entity, localName string, staticType *Entity) *Entity {
	f := db.Factory()
	name := f.CreateQName(pckg.PublicNs(), localName)
	v := f.CreateVariableSlot(name, false, staticType)
	v.SetParent(pckg)
	pckg.Properties(db).Set(name, v)
	return v
}

func TestLookupBuiltinsFromConstEvalScope(t *testing.T) {
	db := newTestDatabase(t)
	pl := db.PropertyLookup()

	for _, name := range []string{"Object", "Number", "String", "Array", "Vector"} {
		r, err := pl.LookupInScopeChain(db.ConstEvalScope(), nil, LocalNameKey(name))
		require.NoError(t, err, name)
		require.NotNil(t, r, name)
		assert.Equal(t, KindPackageReferenceValue, r.Kind(), name)
		assert.Same(t, db.ClassType(), r.StaticType(db), name)
	}

	r, err := pl.LookupInScopeChain(db.ConstEvalScope(), nil, LocalNameKey("Vector"))
	require.NoError(t, err)
	assert.Same(t, db.VectorType(), r.Property())
}

func TestLookupAmbiguousWildcardImports(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()
	pl := db.PropertyLookup()

	p1 := f.CreatePackage("p1")
	p2 := f.CreatePackage("p2")
	declarePackageVariable(db, p1, "x", db.IntType())
	declarePackageVariable(db, p2, "x", db.StringType())

	scope := f.CreateScope()
	scope.AddImport(f.CreatePackageWildcardImport(p1))
	scope.AddImport(f.CreatePackageWildcardImport(p2))

	_, err := pl.LookupInScopeChain(scope, nil, LocalNameKey("x"))
	require.Error(t, err)

	var ambiguous *AmbiguousReferenceError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "x", ambiguous.LocalName)

	// Two imports of the same definition are not ambiguous.
	scope = f.CreateScope()
	scope.AddImport(f.CreatePackageWildcardImport(p1))
	scope.AddImport(f.CreatePackageRecursiveImport(p1))

	r, err := pl.LookupInScopeChain(scope, nil, LocalNameKey("x"))
	require.NoError(t, err)
	assert.Same(t, db.IntType(), r.StaticType(db))
}

func TestLookupWalksEnclosingScopes(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()
	pl := db.PropertyLookup()

	outer := f.CreateScope()
	ns := f.CreateUserNs("inner")
	outer.OpenNs(ns)

	name := f.CreateQName(ns, "counter")
	v := f.CreateVariableSlot(name, false, db.UintType())
	v.SetParent(outer)
	outer.Properties(db).Set(name, v)

	inner := f.CreateScope()
	inner.SetParent(outer)

	r, err := pl.LookupInScopeChain(inner, nil, LocalNameKey("counter"))
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, KindScopeReferenceValue, r.Kind())
	assert.Same(t, v, r.Property())

	r, err = pl.LookupInScopeChain(inner, nil, LocalNameKey("missing"))
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = pl.LookupInScopeChain(inner, nil, ComputedKey(f.CreateStringConstant("counter", db.StringType())))
	require.NoError(t, err)
	assert.Equal(t, KindDynamicScopeReferenceValue, r.Kind())
}

func TestLookupInstanceProperties(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()
	pl := db.PropertyLookup()

	str := f.CreateValue(db.StringType())
	r, err := pl.LookupInObject(str, nil, nil, LocalNameKey("length"), false)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, KindInstanceReferenceValue, r.Kind())
	assert.Same(t, db.IntType(), r.StaticType(db))

	r, err = pl.LookupInObject(str, nil, nil, LocalNameKey("toString"), true)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Same(t, db.FunctionType(), r.StaticType(db), "inherited from Object")

	r, err = pl.LookupInObject(str, nil, nil, LocalNameKey("missing"), false)
	require.NoError(t, err)
	assert.Nil(t, r, "String is not dynamic")

	r, err = pl.LookupInObject(f.CreateValue(db.ArrayType()), nil, nil, LocalNameKey("missing"), false)
	require.NoError(t, err)
	assert.Equal(t, KindDynamicReferenceValue, r.Kind(), "Array is dynamic")

	r, err = pl.LookupInObject(f.CreateValue(db.XMLType()), nil, nil, LocalNameKey("child"), false)
	require.NoError(t, err)
	assert.Equal(t, KindXMLReferenceValue, r.Kind())
}

func TestLookupComputedKeys(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()
	pl := db.PropertyLookup()

	zero := ComputedKey(f.CreateNumberConstant(numeric.FromInt(0), db.IntType()))

	arrayOfNumber := f.CreateTypeAfterSubstitution(db.ArrayType(), []*Entity{db.NumberType()})
	r, err := pl.LookupInObject(f.CreateValue(arrayOfNumber), nil, nil, zero, false)
	require.NoError(t, err)
	assert.Equal(t, KindArrayElementReferenceValue, r.Kind())
	assert.Same(t, db.NumberType(), r.StaticType(db))

	r, err = pl.LookupInObject(f.CreateValue(db.ByteArrayType()), nil, nil, zero, false)
	require.NoError(t, err)
	assert.Equal(t, KindByteArrayElementReferenceValue, r.Kind())

	tuple := f.CreateTupleType([]*Entity{db.StringType(), db.BooleanType()})
	one := ComputedKey(f.CreateNumberConstant(numeric.FromInt(1), db.IntType()))
	r, err = pl.LookupInObject(f.CreateValue(tuple), nil, nil, one, false)
	require.NoError(t, err)
	assert.Equal(t, KindTupleReferenceValue, r.Kind())
	assert.Equal(t, 1, r.TupleIndex())
	assert.Same(t, db.BooleanType(), r.StaticType(db))

	r, err = pl.LookupInObject(db.ObjectType(), nil, nil, zero, false)
	require.NoError(t, err)
	assert.Equal(t, KindStaticDynamicReferenceValue, r.Kind())
}

func TestLookupInvalidBases(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()
	pl := db.PropertyLookup()

	_, err := pl.LookupInObject(f.CreateValue(db.VoidType()), nil, nil, LocalNameKey("x"), false)
	var voidBase *VoidBaseError
	assert.ErrorAs(t, err, &voidBase)

	a := declareClass(db, "A", db.ObjectType())
	nullableA := f.CreateNullableType(a)
	_, err = pl.LookupInObject(f.CreateValue(nullableA), nil, nil, LocalNameKey("toString"), false)
	var nullable *NullableObjectError
	require.ErrorAs(t, err, &nullable)
	assert.Same(t, nullableA, nullable.NullableType)

	// Dynamic and proxy bases accept nullable access.
	r, err := pl.LookupInObject(f.CreateValue(f.CreateNullableType(db.ArrayType())), nil, nil, LocalNameKey("length"), false)
	require.NoError(t, err)
	assert.Equal(t, KindInstanceReferenceValue, r.Kind())

	r, err = pl.LookupInObject(db.Invalidation(), nil, nil, LocalNameKey("x"), false)
	require.NoError(t, err)
	assert.Same(t, db.Invalidation(), r)
}

func TestLookupMetaEnvironment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("API_URL=https://example.com\n"), 0o644))

	options := DefaultDatabaseOptions()
	options.ProjectPath = dir
	db := NewDatabase(options)
	DeclarePrelude(db)
	pl := db.PropertyLookup()

	env, err := pl.LookupInObject(db.MetaProperty(), nil, nil, LocalNameKey("env"), false)
	require.NoError(t, err)
	assert.Same(t, db.MetaEnvProperty(), env)

	r, err := pl.LookupInObject(env, nil, nil, LocalNameKey("API_URL"), false)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, KindStringConstant, r.Kind())
	assert.Equal(t, "https://example.com", r.StringValue())

	r, err = pl.LookupInObject(env, nil, nil, LocalNameKey("MISSING"), false)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestLookupMarksUsed(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()
	pl := db.PropertyLookup()
	unused := db.Unused()

	c := declareClass(db, "C", db.ObjectType())
	secretName := f.CreateQName(c.PrivateNs(), "secret")
	secret := f.CreateVariableSlot(secretName, false, db.IntType())
	secret.SetParent(c)
	c.Properties(db).Set(secretName, secret)

	otherName := f.CreateQName(c.PrivateNs(), "other")
	other := f.CreateVariableSlot(otherName, false, db.IntType())
	other.SetParent(c)
	c.Properties(db).Set(otherName, other)

	unused.AddNominal(secret)
	unused.AddNominal(other)
	unused.AddNominal(c)
	require.Equal(t, []*Entity{secret, other}, unused.All(), "public definitions are never tracked")

	r, err := pl.LookupInObject(c, []*Entity{c.PrivateNs()}, nil, LocalNameKey("secret"), false)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, KindStaticReferenceValue, r.Kind())

	assert.False(t, unused.IsUnused(secret))
	assert.True(t, unused.IsUnused(other))

	// Resolving again keeps it used.
	_, err = pl.LookupInObject(c, []*Entity{c.PrivateNs()}, nil, LocalNameKey("secret"), false)
	require.NoError(t, err)
	assert.Equal(t, []*Entity{other}, unused.All())
}

func TestLookupMarksImportUsed(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()
	pl := db.PropertyLookup()

	p := f.CreatePackage("p")
	declarePackageVariable(db, p, "x", db.IntType())

	used := f.CreatePackageWildcardImport(p)
	idle := f.CreatePackageWildcardImport(f.CreatePackage("q"))

	scope := f.CreateScope()
	scope.AddImport(used)
	scope.AddImport(idle)
	db.Unused().Add(used)
	db.Unused().Add(idle)

	_, err := pl.LookupInScopeChain(scope, nil, LocalNameKey("x"))
	require.NoError(t, err)

	assert.Equal(t, []*Entity{idle}, db.Unused().All())
}
