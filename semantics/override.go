package semantics

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mxmlextrema/mxmlcaot/report"
)

// OverrideViolationKind enumerates the ways overriding a method can fail.
type OverrideViolationKind int

// Enumeration of override violations.
const (
	// No member of the same name and kind in the base class.
	MustOverrideAMethod OverrideViolationKind = iota

	// The signatures of the base and overriding members differ.
	IncompatibleOverride

	// The base member is final.
	OverridingFinalMethod
)

// OverrideViolation is the refusal to override a method.
type OverrideViolation struct {
	Kind OverrideViolationKind

	// Set for IncompatibleOverride only.
	ExpectedSignature, ActualSignature *Entity
}

func (ov *OverrideViolation) Error() string {
	switch ov.Kind {
	case IncompatibleOverride:
		return fmt.Sprintf("incompatible override: expected `%s`, got `%s`", ov.ExpectedSignature, ov.ActualSignature)
	case OverridingFinalMethod:
		return "overriding a final method"
	default:
		return "must override a method"
	}
}

// -----------------------------------------------------------------------------

// MethodOverride lists the abstract methods a class leaves unimplemented and
// links overriding methods to the methods they override.
type MethodOverride struct {
	db *Database
}

// getInPrototype retrieves a member of a prototype by qualified name.  A name
// in a system namespace matches the namespace of the same kind found in the
// namespace set, or any namespace of its kind when nsSet is nil.
func getInPrototype(prototype *Names, name *QName, nsSet []*Entity, anyOfKind bool) *Entity {
	kind, ok := name.namespace.SystemNsKind()
	if !ok {
		return prototype.Get(name)
	}

	var r *Entity
	if anyOfKind {
		r, _ = prototype.GetInSystemNsKind(kind, name.localName)
	} else {
		r, _ = prototype.GetInSystemNsKindInNsSet(nsSet, kind, name.localName)
	}

	return r
}

// AbstractMethodsNotOverridden lists the abstract methods of the direct
// superclass of a class that the class does not override.  Abstract getters
// and setters are listed individually.
func (mo *MethodOverride) AbstractMethodsNotOverridden(class *Entity, nsSet []*Entity) ([]*Entity, error) {
	db := mo.db

	baseClass := class.ExtendsClass(db)
	if baseClass == nil || baseClass == class {
		return nil, nil
	}

	if err := deferred(baseClass); err != nil {
		return nil, err
	}

	prototype := class.Prototype(db)
	var r []*Entity
	baseClass.Prototype(db).Each(func(name *QName, prop *Entity) bool {
		switch prop.kind {
		case KindMethodSlot, KindMethodSlotAfterSubstitution:
			if prop.IsAbstract() {
				prop2 := getInPrototype(prototype, name, nsSet, false)
				if prop2 == nil || (prop2.kind != KindMethodSlot && prop2.kind != KindMethodSlotAfterSubstitution) {
					r = append(r, prop)
				}
			}
		case KindVirtualSlot, KindVirtualSlotAfterSubstitution:
			if getter := prop.Getter(db); getter != nil && mo.accessorNotOverridden(getter, class, (*Entity).Getter) {
				r = append(r, getter)
			}

			if setter := prop.Setter(db); setter != nil && mo.accessorNotOverridden(setter, class, (*Entity).Setter) {
				r = append(r, setter)
			}
		}

		return true
	})

	return r, nil
}

// accessorNotOverridden returns whether an abstract accessor of a base class
// lacks a counterpart in a subclass.
func (mo *MethodOverride) accessorNotOverridden(accessor, subclass *Entity, counterpart func(*Entity, *Database) *Entity) bool {
	if !accessor.IsAbstract() {
		return false
	}

	prop2 := getInPrototype(subclass.Prototype(mo.db), accessor.Name(), nil, true)
	if prop2 == nil || (prop2.kind != KindVirtualSlot && prop2.kind != KindVirtualSlotAfterSubstitution) {
		return true
	}

	return counterpart(prop2, mo.db) == nil
}

// OverrideMethod overrides the member of the same name found in the
// superclasses of the class of a method.  It returns a violation if the
// method cannot override it.  On success the method is linked to the member it
// overrides.
func (mo *MethodOverride) OverrideMethod(method *Entity, nsSet []*Entity) (*OverrideViolation, error) {
	db := mo.db
	name := method.Name()

	class := method.Parent()
	if class == nil || (class.kind != KindClassType && class.kind != KindEnumType) {
		report.RaiseICE("method `%s` is not a member of a class", name)
	}

	baseType := class.ExtendsClass(db)
	if baseType == nil {
		return &OverrideViolation{Kind: MustOverrideAMethod}, nil
	}

	if baseType == class {
		return nil, nil
	}

	baseMethod, err := mo.lookupMethod(name, baseType, nsSet)
	if err != nil {
		return nil, err
	}

	if baseMethod == nil {
		return &OverrideViolation{Kind: MustOverrideAMethod}, nil
	}

	if slot := method.OfVirtualSlot(db); slot != nil {
		accessor := (*Entity).Setter
		if slot.Getter(db) == method {
			accessor = (*Entity).Getter
		}

		if baseMethod.kind != KindVirtualSlot && baseMethod.kind != KindVirtualSlotAfterSubstitution {
			return &OverrideViolation{Kind: MustOverrideAMethod}, nil
		}

		if baseMethod = accessor(baseMethod, db); baseMethod == nil {
			return &OverrideViolation{Kind: MustOverrideAMethod}, nil
		}
	} else if baseMethod.kind != KindMethodSlot && baseMethod.kind != KindMethodSlotAfterSubstitution {
		return &OverrideViolation{Kind: MustOverrideAMethod}, nil
	}

	baseSignature, err := baseMethod.Signature(db).Defer()
	if err != nil {
		return nil, err
	}

	subtypeSignature, err := method.Signature(db).Defer()
	if err != nil {
		return nil, err
	}

	// Signatures are interned: identity is structural equality.
	if baseSignature != subtypeSignature {
		return &OverrideViolation{
			Kind:              IncompatibleOverride,
			ExpectedSignature: baseSignature,
			ActualSignature:   subtypeSignature,
		}, nil
	}

	if baseMethod.IsFinal() {
		return &OverrideViolation{Kind: OverridingFinalMethod}, nil
	}

	baseMethod.AddOverriddenBy(db, method)
	method.SetOverridesMethod(baseMethod)

	db.logger.Debug("method overridden",
		zap.Stringer("method", method),
		zap.Stringer("base", baseMethod),
	)
	return nil, nil
}

// lookupMethod searches the prototypes of a class hierarchy for a member of a
// name, deferring until the member and its accessors are typed.
func (mo *MethodOverride) lookupMethod(name *QName, baseType *Entity, nsSet []*Entity) (*Entity, error) {
	db := mo.db
	for class := range baseType.DescendingClassHierarchy(db) {
		if err := deferred(class); err != nil {
			return nil, err
		}

		prop := getInPrototype(class.Prototype(db), name, nsSet, false)
		if prop == nil {
			continue
		}

		if _, err := prop.PropertyStaticType(db).Defer(); err != nil {
			return nil, err
		}

		if prop.kind == KindVirtualSlot || prop.kind == KindVirtualSlotAfterSubstitution {
			for _, accessor := range []*Entity{prop.Getter(db), prop.Setter(db)} {
				if accessor == nil {
					continue
				}

				if _, err := accessor.Signature(db).Defer(); err != nil {
					return nil, err
				}
			}
		}

		return prop, nil
	}

	return nil, nil
}
