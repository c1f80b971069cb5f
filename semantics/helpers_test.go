package semantics

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

// newTestDatabase returns a database with the prelude declared whose debug
// output goes to the test log.
func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	db := NewDatabase(DefaultDatabaseOptions()).WithLogger(zaptest.NewLogger(t))
	DeclarePrelude(db)
	return db
}

// declareClass declares a public class of the top-level package.
func declareClass(db *Database, localName string, extends *Entity) *Entity {
	top := db.TopLevelPackage()
	f := db.Factory()

	name := f.CreateQName(top.PublicNs(), localName)
	c := f.CreateClassType(name, top.PublicNs())
	c.SetParent(top)
	c.SetExtendsClass(extends)
	top.Properties(db).Set(name, c)
	return c
}

// declareInterface declares a public interface of the top-level package.
func declareInterface(db *Database, localName string, extends ...*Entity) *Entity {
	top := db.TopLevelPackage()
	f := db.Factory()

	name := f.CreateQName(top.PublicNs(), localName)
	itrfc := f.CreateInterfaceType(name)
	itrfc.SetParent(top)
	for _, e := range extends {
		itrfc.AddExtendsInterface(e)
	}

	top.Properties(db).Set(name, itrfc)
	return itrfc
}

// declareMethod declares a public instance method.
func declareMethod(db *Database, t *Entity, localName string, signature *Entity) *Entity {
	f := db.Factory()
	name := f.CreateQName(db.TopLevelPackage().PublicNs(), localName)
	m := f.CreateMethodSlot(name, signature)
	m.SetParent(t)
	t.Prototype(db).Set(name, m)
	return m
}

// declareAccessors declares a public virtual slot with the given accessors.
func declareAccessors(db *Database, t *Entity, localName string, staticType *Entity, getter, setter bool) *Entity {
	f := db.Factory()
	name := f.CreateQName(db.TopLevelPackage().PublicNs(), localName)

	slot := f.CreateVirtualSlot(name)
	slot.SetParent(t)

	if getter {
		g := f.CreateMethodSlot(name, f.CreateFunctionType(nil, staticType))
		g.SetParent(t)
		g.SetOfVirtualSlot(slot)
		slot.SetGetter(g)
	}

	if setter {
		param := &FunctionTypeParameter{Kind: ParamRequired, StaticType: staticType}
		s := f.CreateMethodSlot(name, f.CreateFunctionType([]*FunctionTypeParameter{param}, db.VoidType()))
		s.SetParent(t)
		s.SetOfVirtualSlot(slot)
		slot.SetSetter(s)
	}

	t.Prototype(db).Set(name, slot)
	return slot
}

func voidFunction(db *Database) *Entity {
	return db.Factory().CreateFunctionType(nil, db.VoidType())
}
