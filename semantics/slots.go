package semantics

import "github.com/mxmlextrema/mxmlcaot/report"

// StaticType returns the static type of a slot or value, possibly unresolved.
// The sentinels are their own static type.
func (e *Entity) StaticType(db *Database) *Entity {
	switch {
	case e.kind == KindUnresolved, e.kind == KindInvalidation:
		return e
	case e.kind.IsValue(), e.kind == KindVariableSlot:
		return e.staticType
	}

	switch e.kind {
	case KindVirtualSlot:
		if e.staticType != nil {
			return e.staticType
		}

		deduced := e.deduceVirtualSlotType(db)
		if deduced == nil {
			return db.unresolved
		}

		e.staticType = deduced
		return deduced
	case KindVariableSlotAfterSubstitution, KindVirtualSlotAfterSubstitution:
		return e.memo.staticType.load(func() (*Entity, bool) {
			r := e.origin.StaticType(db)
			if r.kind == KindUnresolved {
				return r, false
			}

			return e.substituteIn(db, r), true
		})
	}

	report.RaiseICE("%s has no static type", e.kind)
	return nil
}

// deduceVirtualSlotType infers the type of a virtual slot from its accessors:
// the setter parameter wins over the getter result.
func (e *Entity) deduceVirtualSlotType(db *Database) *Entity {
	var deduced *Entity
	if e.getter != nil {
		if sig := e.getter.Signature(db); sig.kind != KindUnresolved {
			deduced = sig.resultType
		}
	}

	if e.setter != nil {
		if sig := e.setter.Signature(db); sig.kind != KindUnresolved && len(sig.params) > 0 {
			deduced = sig.params[0].StaticType
		}
	}

	return deduced
}

// SetStaticType sets the static type of a variable slot, virtual slot or
// value.
func (e *Entity) SetStaticType(t *Entity) {
	e.staticType = t
}

// PropertyStaticType returns the static type of the value a property denotes
// when referenced, possibly unresolved.  Types denote `Class`, methods denote
// `Function` and namespaces denote `Namespace`.
func (e *Entity) PropertyStaticType(db *Database) *Entity {
	switch {
	case e.kind == KindUnresolved, e.kind == KindInvalidation:
		return e
	case e.kind.IsType():
		return db.ClassType()
	case e.kind.IsNamespace():
		return db.NamespaceType()
	case e.kind == KindMethodSlot, e.kind == KindMethodSlotAfterSubstitution:
		return db.FunctionType()
	case e.kind == KindAlias:
		return e.ResolveAlias().PropertyStaticType(db)
	}

	return e.StaticType(db)
}

// -----------------------------------------------------------------------------
// Virtual slots

// Getter returns the getter of a virtual slot or nil.
func (e *Entity) Getter(db *Database) *Entity {
	switch e.kind {
	case KindVirtualSlot:
		return e.getter
	case KindVirtualSlotAfterSubstitution:
		return e.memo.getter.load(func() (*Entity, bool) {
			r := e.origin.Getter(db)
			if r == nil {
				return nil, false
			}

			return e.substituteIn(db, r), true
		})
	}

	return nil
}

// SetGetter sets the getter of a virtual slot.
func (e *Entity) SetGetter(m *Entity) {
	e.getter = m
}

// Setter returns the setter of a virtual slot or nil.
func (e *Entity) Setter(db *Database) *Entity {
	switch e.kind {
	case KindVirtualSlot:
		return e.setter
	case KindVirtualSlotAfterSubstitution:
		return e.memo.setter.load(func() (*Entity, bool) {
			r := e.origin.Setter(db)
			if r == nil {
				return nil, false
			}

			return e.substituteIn(db, r), true
		})
	}

	return nil
}

// SetSetter sets the setter of a virtual slot.
func (e *Entity) SetSetter(m *Entity) {
	e.setter = m
}

// -----------------------------------------------------------------------------
// Method slots

// Signature returns the function type of a method, possibly unresolved.
func (e *Entity) Signature(db *Database) *Entity {
	switch e.kind {
	case KindMethodSlot:
		return e.signature
	case KindMethodSlotAfterSubstitution:
		return e.memo.signature.load(func() (*Entity, bool) {
			r := e.origin.Signature(db)
			if r.kind == KindUnresolved {
				return r, false
			}

			return e.substituteIn(db, r), true
		})
	}

	report.RaiseICE("%s has no signature", e.kind)
	return nil
}

// SetSignature sets the signature of a method.
func (e *Entity) SetSignature(sig *Entity) {
	e.signature = sig
}

// OfVirtualSlot returns the virtual slot a getter or setter belongs to, or
// nil.
func (e *Entity) OfVirtualSlot(db *Database) *Entity {
	switch e.kind {
	case KindMethodSlot:
		return e.ofVirtualSlot
	case KindMethodSlotAfterSubstitution:
		return e.memo.ofVirtualSlot.load(func() (*Entity, bool) {
			r := e.origin.OfVirtualSlot(db)
			if r == nil {
				return nil, false
			}

			return e.substituteIn(db, r), true
		})
	}

	return nil
}

// SetOfVirtualSlot sets the virtual slot a getter or setter belongs to.
func (e *Entity) SetOfVirtualSlot(slot *Entity) {
	e.ofVirtualSlot = slot
}

// OverriddenBy returns the methods overriding a method.
func (e *Entity) OverriddenBy(db *Database) []*Entity {
	switch e.kind {
	case KindMethodSlot:
		return e.overriddenBy
	case KindMethodSlotAfterSubstitution:
		return e.memo.overriddenBy.load(func() ([]*Entity, bool) {
			return e.substituteAll(db, e.origin.OverriddenBy(db)), true
		})
	}

	return nil
}

// AddOverriddenBy records a method overriding a method.
func (e *Entity) AddOverriddenBy(db *Database, m *Entity) {
	switch e.kind {
	case KindMethodSlot:
		e.overriddenBy = append(e.overriddenBy, m)
	case KindMethodSlotAfterSubstitution:
		e.memo.overriddenBy.set(append(e.OverriddenBy(db), m))
	}
}

// OverridesMethod returns the method a method overrides, or nil.
func (e *Entity) OverridesMethod(db *Database) *Entity {
	switch e.kind {
	case KindMethodSlot:
		return e.overridesMethod
	case KindMethodSlotAfterSubstitution:
		return e.memo.overridesMethod.load(func() (*Entity, bool) {
			r := e.origin.OverridesMethod(db)
			if r == nil {
				return nil, false
			}

			return e.substituteIn(db, r), true
		})
	}

	return nil
}

// SetOverridesMethod sets the method a method overrides.
func (e *Entity) SetOverridesMethod(m *Entity) {
	switch e.kind {
	case KindMethodSlot:
		e.overridesMethod = m
	case KindMethodSlotAfterSubstitution:
		e.memo.overridesMethod.set(m)
	}
}

// Activation returns the activation of a method or of a lambda object, or
// nil.  Methods after substitution have no activation.
func (e *Entity) Activation() *Entity {
	return e.activation
}

// SetActivation sets the activation of a method.
func (e *Entity) SetActivation(activation *Entity) {
	e.activation = activation
}

// VarConstant returns the constant initially assigned to a variable slot, or
// nil.
func (e *Entity) VarConstant() *Entity {
	return e.varConstant
}

// SetVarConstant sets the constant initially assigned to a variable slot.
func (e *Entity) SetVarConstant(k *Entity) {
	e.varConstant = k
}

// -----------------------------------------------------------------------------

// CloneConstant returns a new constant equal to a constant, with the same
// static type.  Conversions use it to retype a literal.
func (e *Entity) CloneConstant(db *Database) *Entity {
	f := db.factory
	st := e.staticType

	switch e.kind {
	case KindUndefinedConstant:
		return f.CreateUndefinedConstant(st)
	case KindNullConstant:
		return f.CreateNullConstant(st)
	case KindNamespaceConstant:
		return f.createNamespaceConstantWithStaticType(e.referenced, st)
	case KindTypeConstant:
		return f.createTypeConstantWithStaticType(e.referenced, st)
	case KindNumberConstant:
		return f.CreateNumberConstant(e.number, st)
	case KindStringConstant:
		return f.CreateStringConstant(e.str, st)
	case KindBooleanConstant:
		return f.CreateBooleanConstant(e.boolean, st)
	}

	report.RaiseICE("%s is not a constant", e.kind)
	return nil
}
