package semantics

import "github.com/mxmlextrema/mxmlcaot/report"

// ApplyType replaces every occurrence of a type parameter in `thing` by the
// substitute type at the same position.  Compound types are rebuilt through the
// Factory so that the result is interned; slots are wrapped in a slot after
// substitution whose members are substituted on first access.
//
// The sentinels are returned unchanged.  Substituting anything other than a
// type or slot is a programming error.
func ApplyType(db *Database, thing *Entity, typeParams, substituteTypes []*Entity) *Entity {
	if len(typeParams) != len(substituteTypes) {
		report.RaiseICE("substituting %d type parameters with %d types", len(typeParams), len(substituteTypes))
	}

	switch {
	case thing.kind == KindUnresolved, thing.kind == KindInvalidation:
		return thing
	case len(typeParams) == 0:
		if !thing.kind.IsType() && !thing.kind.IsSlot() {
			report.RaiseICE("cannot substitute types in %s", thing.kind)
		}

		return thing
	}

	f := db.factory
	switch thing.kind {
	case KindFunctionType:
		params := make([]*FunctionTypeParameter, len(thing.params))
		for i, p := range thing.params {
			params[i] = &FunctionTypeParameter{
				Kind:       p.Kind,
				StaticType: ApplyType(db, p.StaticType, typeParams, substituteTypes),
			}
		}

		return f.CreateFunctionType(params, ApplyType(db, thing.resultType, typeParams, substituteTypes))
	case KindNullableType:
		return f.CreateNullableType(ApplyType(db, thing.base, typeParams, substituteTypes))
	case KindNonNullableType:
		return f.CreateNonNullableType(ApplyType(db, thing.base, typeParams, substituteTypes))
	case KindTupleType:
		elems := make([]*Entity, len(thing.elementTypes))
		for i, t := range thing.elementTypes {
			elems[i] = ApplyType(db, t, typeParams, substituteTypes)
		}

		return f.CreateTupleType(elems)
	case KindTypeAfterSubstitution:
		subs := make([]*Entity, len(thing.substituteTypes))
		for i, t := range thing.substituteTypes {
			subs[i] = ApplyType(db, t, typeParams, substituteTypes)
		}

		return f.CreateTypeAfterSubstitution(thing.origin, subs)
	case KindTypeParameterType:
		for i, p := range typeParams {
			if p == thing {
				return substituteTypes[i]
			}
		}

		return thing
	case KindVariableSlot, KindVariableSlotAfterSubstitution:
		return f.CreateVariableSlotAfterSubstitution(thing, typeParams, substituteTypes)
	case KindVirtualSlot, KindVirtualSlotAfterSubstitution:
		return f.CreateVirtualSlotAfterSubstitution(thing, typeParams, substituteTypes)
	case KindMethodSlot, KindMethodSlotAfterSubstitution:
		return f.CreateMethodSlotAfterSubstitution(thing, typeParams, substituteTypes)
	}

	if thing.kind.IsType() {
		return thing
	}

	report.RaiseICE("cannot substitute types in %s", thing.kind)
	return nil
}

// ApplyType substitutes types in the entity.  See the package-level ApplyType.
func (e *Entity) ApplyType(db *Database, typeParams, substituteTypes []*Entity) *Entity {
	return ApplyType(db, e, typeParams, substituteTypes)
}
