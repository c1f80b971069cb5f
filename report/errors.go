package report

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/multierr"
)

// InternalError is an error raised by a violated contract of the semantic
// model: eg. substituting a non-type entity or passing mismatched parameter
// and argument counts.  These are bugs in the caller, not in user code.
type InternalError struct {
	Message string
}

func (ie *InternalError) Error() string {
	return ie.Message
}

// RaiseICE panics with a new internal error.
func RaiseICE(msg string, args ...interface{}) {
	panic(&InternalError{Message: fmt.Sprintf(msg, args...)})
}

// -----------------------------------------------------------------------------

// ReportICE reports an internal compiler error.  These errors are always
// displayed regardless of log level.
func ReportICE(message string, args ...interface{}) {
	r := current()
	r.m.Lock()
	defer r.m.Unlock()

	displayICE(fmt.Sprintf(message, args...))

	os.Exit(-1)
}

// ReportFatal reports a fatal error.  These are expected errors that generally
// result from invalid configuration of some form: an unreadable project file,
// an invalid namespace URI, etc.
func ReportFatal(message string, args ...interface{}) {
	r := current()
	if r.logLevel > LogLevelSilent {
		r.m.Lock()
		defer r.m.Unlock()

		displayFatal(fmt.Sprintf(message, args...))
	}

	os.Exit(1)
}

// ReportSemanticError reports an error found in the symbol model: ie. an
// ambiguous reference or a conformance violation.  The subject is the
// human-readable name of the entity the error concerns.
func ReportSemanticError(subject string, message string, args ...interface{}) {
	r := current()
	if r.logLevel > LogLevelSilent {
		r.m.Lock()
		defer r.m.Unlock()

		r.isErr = true

		displaySemanticMessage("error", subject, fmt.Sprintf(message, args...))
	}
}

// ReportSemanticWarning reports a warning.  The arguments are of the same form
// as those to ReportSemanticError.
func ReportSemanticWarning(subject string, message string, args ...interface{}) {
	r := current()
	if r.logLevel >= LogLevelWarn {
		r.m.Lock()
		defer r.m.Unlock()

		displaySemanticMessage("warning", subject, fmt.Sprintf(message, args...))
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(subject string, err error) {
	r := current()
	if r.logLevel > LogLevelSilent {
		r.m.Lock()
		defer r.m.Unlock()

		r.isErr = true

		displayStdError(subject, err)
	}
}

// ReportViolations reports every error of a batch produced by one of the
// conformance verifiers or by configuration validation.  Errors which are not
// batches are reported as a single semantic error.
func ReportViolations(subject string, err error) {
	if err == nil {
		return
	}

	errs := multierr.Errors(err)
	if merr, ok := err.(*multierror.Error); ok {
		errs = merr.Errors
	}

	for _, verr := range errs {
		ReportSemanticError(subject, "%s", verr.Error())
	}
}

// -----------------------------------------------------------------------------

// AnyErrors returns whether or not any errors were detected.
func AnyErrors() bool {
	return current().isErr
}

// CatchErrors catches any errors thrown by a `panic` while driving the model.
// Internal errors are reported as ICEs; other errors are reported as standard
// errors about the given subject.
// NB: This function must ALWAYS be deferred.
func CatchErrors(subject string) {
	if x := recover(); x != nil {
		if ierr, ok := x.(*InternalError); ok {
			ReportICE("%s", ierr.Message)
		} else if serr, ok := x.(error); ok {
			ReportStdError(subject, serr)
		} else {
			ReportFatal("%s", x)
		}
	}
}
