package semantics

import (
	"fmt"

	"github.com/pkg/errors"
)

// VerifierPhase is the ordinal of a phase of the outer verifier.  A deferral
// may carry the phase at which the verifier should retry the operation.
type VerifierPhase int

// Enumeration of verifier phases.
const (
	PhaseAlpha VerifierPhase = iota
	PhaseBeta
	PhaseDelta
	PhaseEpsilon
	PhaseEta
	PhaseTheta
	PhaseOmega
	PhaseFinished
)

// DeferError indicates that an answer depends on an entity which is still
// unresolved.  It is never surfaced to the user: the caller retries the
// surrounding operation on a later pass.
type DeferError struct {
	// The optional phase at which to retry.
	Phase *VerifierPhase
}

func (de *DeferError) Error() string {
	if de.Phase != nil {
		return fmt.Sprintf("deferred until phase %d", *de.Phase)
	}

	return "deferred"
}

// errDefer is the shared deferral without a phase hint.
var errDefer = &DeferError{}

// DeferUntil returns a deferral carrying a phase hint.
func DeferUntil(phase VerifierPhase) *DeferError {
	return &DeferError{Phase: &phase}
}

// IsDefer returns whether err is or wraps a deferral.
func IsDefer(err error) bool {
	var de *DeferError
	return errors.As(err, &de)
}

// AmbiguousReferenceError indicates that two or more distinct candidates
// matched a name under the active namespace set.
type AmbiguousReferenceError struct {
	LocalName string
}

func (are *AmbiguousReferenceError) Error() string {
	return fmt.Sprintf("ambiguous reference to `%s`", are.LocalName)
}

// VoidBaseError indicates a property access on a value of type `void`.
type VoidBaseError struct{}

func (vbe *VoidBaseError) Error() string {
	return "accessing property of void"
}

// NullableObjectError indicates a property access on a value whose static type
// is explicitly nullable.
type NullableObjectError struct {
	NullableType *Entity
}

func (noe *NullableObjectError) Error() string {
	return fmt.Sprintf("accessing property of possibly null object of type `%s`", noe.NullableType)
}

// deferred returns a deferral if the entity is the unresolved sentinel.
func deferred(e *Entity) error {
	if e != nil && e.kind == KindUnresolved {
		return errDefer
	}

	return nil
}
