package semantics

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ImplementationViolationKind enumerates the ways a class can fail to
// implement an interface member.
type ImplementationViolationKind int

// Enumeration of implementation violations.
const (
	MethodNotImplemented ImplementationViolationKind = iota
	GetterNotImplemented
	SetterNotImplemented
	PropertyMustBeMethod
	PropertyMustBeVirtual
	IncompatibleMethodSignature
	IncompatibleGetterSignature
	IncompatibleSetterSignature
)

// ImplementationViolation is one interface member a class fails to implement.
type ImplementationViolation struct {
	Kind ImplementationViolationKind
	Name string

	// Set for the incompatible signature kinds only.
	ExpectedSignature *Entity
}

func (iv *ImplementationViolation) Error() string {
	switch iv.Kind {
	case MethodNotImplemented:
		return fmt.Sprintf("method `%s` not implemented", iv.Name)
	case GetterNotImplemented:
		return fmt.Sprintf("getter `%s` not implemented", iv.Name)
	case SetterNotImplemented:
		return fmt.Sprintf("setter `%s` not implemented", iv.Name)
	case PropertyMustBeMethod:
		return fmt.Sprintf("property `%s` must be a method", iv.Name)
	case PropertyMustBeVirtual:
		return fmt.Sprintf("property `%s` must be a getter or setter", iv.Name)
	case IncompatibleMethodSignature:
		return fmt.Sprintf("method `%s` must have signature `%s`", iv.Name, iv.ExpectedSignature)
	case IncompatibleGetterSignature:
		return fmt.Sprintf("getter `%s` must have signature `%s`", iv.Name, iv.ExpectedSignature)
	default:
		return fmt.Sprintf("setter `%s` must have signature `%s`", iv.Name, iv.ExpectedSignature)
	}
}

// CombineViolations merges violations into a single error for batch
// reporting, or returns nil if there are none.
func CombineViolations(violations []*ImplementationViolation) error {
	var merr *multierror.Error
	for _, v := range violations {
		merr = multierror.Append(merr, v)
	}

	return merr.ErrorOrNil()
}

// -----------------------------------------------------------------------------

// InterfaceImplement verifies that a class implements an interface.
type InterfaceImplement struct {
	db *Database
}

// Verify checks every member of an interface and of the interfaces it
// extends against the public instance members of an implementor.  Every
// violation found is listed.
func (ii *InterfaceImplement) Verify(implementor, itrfc *Entity) ([]*ImplementationViolation, error) {
	db := ii.db

	interfaces := append(itrfc.AllAscendingTypes(db), itrfc)
	implementorPrototype := implementor.Prototype(db)

	var violations []*ImplementationViolation
	for _, itrfc := range interfaces {
		if err := deferred(itrfc); err != nil {
			return nil, err
		}

		var err error
		itrfc.Prototype(db).Each(func(name *QName, item *Entity) bool {
			var found []*ImplementationViolation
			found, err = ii.verifyMember(name.localName, item, implementorPrototype)
			violations = append(violations, found...)
			return err == nil
		})

		if err != nil {
			return nil, err
		}
	}

	return violations, nil
}

func (ii *InterfaceImplement) verifyMember(localName string, item *Entity, implementorPrototype *Names) ([]*ImplementationViolation, error) {
	db := ii.db
	violation := func(kind ImplementationViolationKind) *ImplementationViolation {
		return &ImplementationViolation{Kind: kind, Name: localName}
	}

	isVirtual := item.kind == KindVirtualSlot || item.kind == KindVirtualSlotAfterSubstitution
	implItem, _ := implementorPrototype.GetInAnyPublicNs(localName)

	if implItem == nil {
		if !isVirtual {
			return []*ImplementationViolation{violation(MethodNotImplemented)}, nil
		}

		var r []*ImplementationViolation
		if item.Getter(db) != nil {
			r = append(r, violation(GetterNotImplemented))
		}

		if item.Setter(db) != nil {
			r = append(r, violation(SetterNotImplemented))
		}

		return r, nil
	}

	if isVirtual {
		if implItem.kind != KindVirtualSlot && implItem.kind != KindVirtualSlotAfterSubstitution {
			return []*ImplementationViolation{violation(PropertyMustBeVirtual)}, nil
		}

		var r []*ImplementationViolation
		accessors := []struct {
			get          func(*Entity, *Database) *Entity
			missing      ImplementationViolationKind
			incompatible ImplementationViolationKind
		}{
			{(*Entity).Getter, GetterNotImplemented, IncompatibleGetterSignature},
			{(*Entity).Setter, SetterNotImplemented, IncompatibleSetterSignature},
		}

		for _, a := range accessors {
			expected, actual := a.get(item, db), a.get(implItem, db)
			if expected == nil {
				continue
			}

			if actual == nil {
				r = append(r, violation(a.missing))
				continue
			}

			expectedSignature, err := expected.Signature(db).Defer()
			if err != nil {
				return nil, err
			}

			actualSignature, err := actual.Signature(db).Defer()
			if err != nil {
				return nil, err
			}

			if expectedSignature != actualSignature {
				v := violation(a.incompatible)
				v.ExpectedSignature = expectedSignature
				r = append(r, v)
			}
		}

		return r, nil
	}

	if implItem.kind != KindMethodSlot && implItem.kind != KindMethodSlotAfterSubstitution {
		return []*ImplementationViolation{violation(PropertyMustBeMethod)}, nil
	}

	expectedSignature, err := item.Signature(db).Defer()
	if err != nil {
		return nil, err
	}

	actualSignature, err := implItem.Signature(db).Defer()
	if err != nil {
		return nil, err
	}

	if expectedSignature != actualSignature {
		v := violation(IncompatibleMethodSignature)
		v.ExpectedSignature = expectedSignature
		return []*ImplementationViolation{v}, nil
	}

	return nil, nil
}
