package semantics

import (
	"strings"
)

// String renders an entity for diagnostics.
func (e *Entity) String() string {
	switch e.kind {
	case KindUnresolved, KindInvalidation:
		return "[unknown]"
	case KindAnyType:
		return "*"
	case KindVoidType:
		return "void"
	case KindSystemNamespace:
		return e.nsKind.String()
	case KindUserNamespace, KindExplicitNamespace:
		return e.uri
	case KindAlias:
		if e.aliasOf == nil {
			return e.FullyQualifiedName()
		}

		return e.aliasOf.String()
	case KindClassType, KindInterfaceType:
		return e.FullyQualifiedName() + typeArgumentList(e.typeParams)
	case KindTypeAfterSubstitution:
		return e.FullyQualifiedName() + typeArgumentList(e.substituteTypes)
	case KindTupleType:
		return "[" + joinEntities(e.elementTypes) + "]"
	case KindFunctionType:
		return e.functionTypeString()
	case KindNullableType:
		if e.base.kind == KindFunctionType {
			return "?" + e.base.String()
		}

		return e.base.String() + "?"
	case KindNonNullableType:
		return e.base.String() + "!"
	case KindTypeParameterType:
		return e.localName
	}

	if e.kind == KindPackage || e.kind == KindEnumType || e.kind.IsSlot() {
		return e.FullyQualifiedName()
	}

	return "[" + e.kind.String() + "]"
}

func (e *Entity) functionTypeString() string {
	params := make([]string, len(e.params))
	for i, p := range e.params {
		switch p.Kind {
		case ParamOptional:
			params[i] = p.StaticType.String() + "="
		case ParamRest:
			params[i] = "..." + p.StaticType.String()
		default:
			params[i] = p.StaticType.String()
		}
	}

	return "function(" + strings.Join(params, ", ") + ") : " + e.resultType.String()
}

func typeArgumentList(types []*Entity) string {
	if types == nil {
		return ""
	}

	return ".<" + joinEntities(types) + ">"
}

func joinEntities(list []*Entity) string {
	s := make([]string, len(list))
	for i, e := range list {
		s[i] = e.String()
	}

	return strings.Join(s, ", ")
}

// FullyQualifiedName returns the dotted name of an entity through its parent
// chain.  The vector class of the `__AS3__.vec` package is named `Vector`.
func (e *Entity) FullyQualifiedName() string {
	return strings.ReplaceAll(strings.Join(e.FullyQualifiedNameList(), "."), "__AS3__.vec.Vector", "Vector")
}

// FullyQualifiedNameList returns the non-empty name components of an entity
// through its parent chain, outermost first.
func (e *Entity) FullyQualifiedNameList() []string {
	var r []string
	for p := e; p != nil; p = p.Parent() {
		var name string
		if p.kind == KindPackage {
			name = p.localName
		} else if q := p.Name(); q != nil {
			name = q.String()
		}

		if name != "" {
			r = append([]string{name}, r...)
		}
	}

	return r
}
