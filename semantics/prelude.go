package semantics

import "go.uber.org/zap"

// preludeBuilder declares built-in definitions into public namespaces.
type preludeBuilder struct {
	db *Database
	f  *Factory
}

func (pb *preludeBuilder) class(pckg *Entity, localName string, extends *Entity, typeParams ...string) *Entity {
	name := pb.f.CreateQName(pckg.publicNs, localName)
	t := pb.f.CreateClassType(name, pckg.publicNs)
	t.SetParent(pckg)
	t.SetExtendsClass(extends)

	if len(typeParams) != 0 {
		params := make([]*Entity, len(typeParams))
		for i, tp := range typeParams {
			params[i] = pb.f.CreateTypeParameterType(pb.f.CreateQName(t.privateNs, tp))
			params[i].SetParent(t)
		}

		t.SetTypeParams(params)
	}

	pckg.properties.Set(name, t)
	return t
}

func (pb *preludeBuilder) method(t *Entity, localName string, signature *Entity) *Entity {
	name := pb.f.CreateQName(pb.db.topLevelPackage.publicNs, localName)
	m := pb.f.CreateMethodSlot(name, signature)
	m.SetParent(t)
	t.prototype.Set(name, m)
	return m
}

// accessor declares a virtual slot with a getter and, unless readOnly, a
// setter.
func (pb *preludeBuilder) accessor(t *Entity, localName string, staticType *Entity, readOnly bool) *Entity {
	f := pb.f
	name := f.CreateQName(pb.db.topLevelPackage.publicNs, localName)

	slot := f.CreateVirtualSlot(name)
	slot.SetParent(t)

	getter := f.CreateMethodSlot(name, f.CreateFunctionType(nil, staticType))
	getter.SetParent(t)
	getter.SetOfVirtualSlot(slot)
	slot.SetGetter(getter)

	if !readOnly {
		param := &FunctionTypeParameter{Kind: ParamRequired, StaticType: staticType}
		setter := f.CreateMethodSlot(name, f.CreateFunctionType([]*FunctionTypeParameter{param}, pb.db.voidType))
		setter.SetParent(t)
		setter.SetOfVirtualSlot(slot)
		slot.SetSetter(setter)
	}

	t.prototype.Set(name, slot)
	return slot
}

// DeclarePrelude declares a minimal set of built-in classes: `Object`, the
// primitive classes, `Array`, `Vector`, `Promise`, the XML classes and the
// utility classes.  It is enough to exercise the model without a parser.
func DeclarePrelude(db *Database) {
	pb := &preludeBuilder{db: db, f: db.factory}
	f := db.factory
	top := db.topLevelPackage

	object := pb.class(top, "Object", nil)
	object.SetIsDynamic(true)

	final := func(t *Entity) *Entity {
		t.SetIsFinal(true)
		return t
	}

	boolean := final(pb.class(top, "Boolean", object))
	number := final(pb.class(top, "Number", object))
	intType := final(pb.class(top, "int", object))
	final(pb.class(top, "uint", object))
	final(pb.class(top, "float", object))
	stringType := final(pb.class(top, "String", object))
	final(pb.class(top, "Namespace", object))

	function := pb.class(top, "Function", object)
	function.SetIsDynamic(true)

	class := pb.class(top, "Class", object)
	class.SetIsDynamic(true)

	array := pb.class(top, "Array", object, "T")
	array.SetIsDynamic(true)

	xml := final(pb.class(top, "XML", object))
	xml.SetIsDynamic(true)
	xmlList := final(pb.class(top, "XMLList", object))
	xmlList.SetIsDynamic(true)

	regExp := pb.class(top, "RegExp", object)
	regExp.SetIsDynamic(true)
	date := final(pb.class(top, "Date", object))
	date.SetIsDynamic(true)

	promise := pb.class(top, "Promise", object, "T")

	vector := final(pb.class(db.VecPackage(), "Vector", object, "T"))

	utils := db.UtilsPackage()
	proxy := pb.class(utils, "Proxy", object)
	dictionary := pb.class(utils, "Dictionary", object)
	dictionary.SetIsDynamic(true)
	byteArray := pb.class(utils, "ByteArray", object)

	pb.method(object, "toString", f.CreateFunctionType(nil, stringType))
	pb.method(object, "hasOwnProperty", f.CreateFunctionType([]*FunctionTypeParameter{
		{Kind: ParamRequired, StaticType: stringType},
	}, boolean))
	pb.method(number, "toFixed", f.CreateFunctionType([]*FunctionTypeParameter{
		{Kind: ParamOptional, StaticType: intType},
	}, stringType))

	pb.accessor(stringType, "length", intType, true)
	pb.accessor(array, "length", db.UintType(), false)
	pb.accessor(vector, "length", db.UintType(), false)
	pb.accessor(byteArray, "length", db.UintType(), false)

	pb.method(array, "push", f.CreateFunctionType([]*FunctionTypeParameter{
		{Kind: ParamRest, StaticType: array.typeParams[0]},
	}, db.UintType()))
	pb.method(vector, "push", f.CreateFunctionType([]*FunctionTypeParameter{
		{Kind: ParamRest, StaticType: vector.typeParams[0]},
	}, db.UintType()))
	pb.method(promise, "then", f.CreateFunctionType([]*FunctionTypeParameter{
		{Kind: ParamRequired, StaticType: function},
	}, promise))
	pb.method(proxy, "toString", f.CreateFunctionType(nil, stringType))

	db.logger.Debug("prelude declared",
		zap.Int("topLevel", top.properties.Len()),
		zap.Int("entities", db.EntityCount()),
	)
}
