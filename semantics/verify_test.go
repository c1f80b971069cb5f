package semantics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrideMethod(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()
	mo := db.MethodOverride()
	nsSet := []*Entity{db.TopLevelPackage().PublicNs()}

	a := declareClass(db, "A", db.ObjectType())
	base := declareMethod(db, a, "f", voidFunction(db))
	b := declareClass(db, "B", a)

	t.Run("compatible", func(t *testing.T) {
		m := declareMethod(db, b, "f", voidFunction(db))
		violation, err := mo.OverrideMethod(m, nsSet)
		require.NoError(t, err)
		assert.Nil(t, violation)

		assert.Same(t, base, m.OverridesMethod(db))
		assert.Equal(t, []*Entity{m}, base.OverriddenBy(db))
	})

	t.Run("incompatible", func(t *testing.T) {
		c := declareClass(db, "C", a)
		m := declareMethod(db, c, "f", f.CreateFunctionType(nil, db.StringType()))
		violation, err := mo.OverrideMethod(m, nsSet)
		require.NoError(t, err)
		require.NotNil(t, violation)

		assert.Equal(t, IncompatibleOverride, violation.Kind)
		assert.Same(t, voidFunction(db), violation.ExpectedSignature)
		assert.Equal(t, "function() : String", violation.ActualSignature.String())
		assert.Nil(t, m.OverridesMethod(db))
	})

	t.Run("final", func(t *testing.T) {
		c := declareClass(db, "D", db.ObjectType())
		declareMethod(db, c, "g", voidFunction(db)).SetIsFinal(true)
		d := declareClass(db, "E", c)
		m := declareMethod(db, d, "g", voidFunction(db))

		violation, err := mo.OverrideMethod(m, nsSet)
		require.NoError(t, err)
		require.NotNil(t, violation)
		assert.Equal(t, OverridingFinalMethod, violation.Kind)
	})

	t.Run("nothing to override", func(t *testing.T) {
		m := declareMethod(db, b, "h", voidFunction(db))
		violation, err := mo.OverrideMethod(m, nsSet)
		require.NoError(t, err)
		require.NotNil(t, violation)
		assert.Equal(t, MustOverrideAMethod, violation.Kind)
	})

	t.Run("inherited through intermediate class", func(t *testing.T) {
		c := declareClass(db, "F", b)
		m := declareMethod(db, c, "toString", f.CreateFunctionType(nil, db.StringType()))
		violation, err := mo.OverrideMethod(m, nsSet)
		require.NoError(t, err)
		assert.Nil(t, violation)
		assert.Equal(t, "toString", m.OverridesMethod(db).Name().LocalName())
	})
}

func TestOverrideAccessor(t *testing.T) {
	db := newTestDatabase(t)
	mo := db.MethodOverride()
	nsSet := []*Entity{db.TopLevelPackage().PublicNs()}

	a := declareClass(db, "A", db.ObjectType())
	declareAccessors(db, a, "size", db.IntType(), true, false)
	b := declareClass(db, "B", a)
	slot := declareAccessors(db, b, "size", db.IntType(), true, true)

	violation, err := mo.OverrideMethod(slot.Getter(db), nsSet)
	require.NoError(t, err)
	assert.Nil(t, violation)

	violation, err = mo.OverrideMethod(slot.Setter(db), nsSet)
	require.NoError(t, err)
	require.NotNil(t, violation)
	assert.Equal(t, MustOverrideAMethod, violation.Kind, "the base has no setter")
}

func TestAbstractMethodsNotOverridden(t *testing.T) {
	db := newTestDatabase(t)
	mo := db.MethodOverride()
	nsSet := []*Entity{db.TopLevelPackage().PublicNs()}

	a := declareClass(db, "A", db.ObjectType())
	a.SetIsAbstract(true)
	declareMethod(db, a, "run", voidFunction(db)).SetIsAbstract(true)
	declareMethod(db, a, "stop", voidFunction(db)).SetIsAbstract(true)
	declareMethod(db, a, "reset", voidFunction(db))
	size := declareAccessors(db, a, "size", db.IntType(), true, true)
	size.Getter(db).SetIsAbstract(true)
	size.Setter(db).SetIsAbstract(true)

	b := declareClass(db, "B", a)
	declareMethod(db, b, "run", voidFunction(db))
	declareAccessors(db, b, "size", db.IntType(), true, false)

	missing, err := mo.AbstractMethodsNotOverridden(b, nsSet)
	require.NoError(t, err)

	got := make([]string, len(missing))
	for i, m := range missing {
		got[i] = m.Name().LocalName() + " " + m.Signature(db).String()
	}

	want := []string{"stop function() : void", "size function(int) : void"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("abstract methods mismatch (-want +got):\n%s", diff)
	}
}

type violationSummary struct {
	Kind ImplementationViolationKind
	Name string
}

func summarize(violations []*ImplementationViolation) []violationSummary {
	r := make([]violationSummary, len(violations))
	for i, v := range violations {
		r[i] = violationSummary{v.Kind, v.Name}
	}

	return r
}

func TestInterfaceImplementListsEveryViolation(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()
	ii := db.InterfaceImplement()

	base := declareInterface(db, "IBase")
	declareMethod(db, base, "close", voidFunction(db))

	itrfc := declareInterface(db, "IStream", base)
	declareAccessors(db, itrfc, "position", db.UintType(), true, true)
	declareMethod(db, itrfc, "read", f.CreateFunctionType(nil, db.IntType()))
	declareMethod(db, itrfc, "write", voidFunction(db))
	declareAccessors(db, itrfc, "length", db.UintType(), true, false)

	c := declareClass(db, "Stream", db.ObjectType())
	c.AddImplements(itrfc)
	declareAccessors(db, c, "position", db.UintType(), true, false)
	declareMethod(db, c, "read", voidFunction(db))
	declareAccessors(db, c, "write", db.UintType(), true, false)
	declareMethod(db, c, "length", voidFunction(db))

	violations, err := ii.Verify(c, itrfc)
	require.NoError(t, err)

	want := []violationSummary{
		{MethodNotImplemented, "close"},
		{SetterNotImplemented, "position"},
		{IncompatibleMethodSignature, "read"},
		{PropertyMustBeMethod, "write"},
		{PropertyMustBeVirtual, "length"},
	}
	if diff := cmp.Diff(want, summarize(violations)); diff != "" {
		t.Errorf("violations mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "function() : int", violations[2].ExpectedSignature.String())

	err = CombineViolations(violations)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, len(want))
}

func TestInterfaceImplementComplete(t *testing.T) {
	db := newTestDatabase(t)
	ii := db.InterfaceImplement()

	itrfc := declareInterface(db, "IRunnable")
	declareMethod(db, itrfc, "run", voidFunction(db))
	declareAccessors(db, itrfc, "running", db.BooleanType(), true, false)

	c := declareClass(db, "Task", db.ObjectType())
	declareMethod(db, c, "run", voidFunction(db))
	declareAccessors(db, c, "running", db.BooleanType(), true, true)

	violations, err := ii.Verify(c, itrfc)
	require.NoError(t, err)
	assert.Empty(t, violations)
	assert.NoError(t, CombineViolations(violations))
}
