package report

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestLogLevelFromName(t *testing.T) {
	assert.Equal(t, LogLevelSilent, LogLevelFromName("silent"))
	assert.Equal(t, LogLevelError, LogLevelFromName("error"))
	assert.Equal(t, LogLevelWarn, LogLevelFromName("warn"))
	assert.Equal(t, LogLevelVerbose, LogLevelFromName("verbose"))
	assert.Equal(t, LogLevelVerbose, LogLevelFromName("bogus"))
}

func TestReportViolationsMarksErrors(t *testing.T) {
	rep = newReporter(LogLevelError)
	defer func() { rep = nil }()

	require.False(t, AnyErrors())

	var batch *multierror.Error
	batch = multierror.Append(batch, errors.New("method f not implemented"))
	batch = multierror.Append(batch, errors.New("setter x not implemented"))
	ReportViolations("C", batch.ErrorOrNil())

	assert.True(t, AnyErrors())
}

func TestReportViolationsAcceptsCombinedErrors(t *testing.T) {
	rep = newReporter(LogLevelError)
	defer func() { rep = nil }()

	ReportViolations("asconfig.toml", multierr.Combine(
		errors.New("invalid utils package component `1x`"),
		errors.New("config constant `DEBUG` must be of the form `NS::name`"),
	))

	assert.True(t, AnyErrors())
}

func TestSilentReporterDoesNotRecord(t *testing.T) {
	rep = newReporter(LogLevelSilent)
	defer func() { rep = nil }()

	ReportSemanticError("C", "ambiguous reference: %s", "x")
	assert.False(t, AnyErrors())
	assert.NotNil(t, Logger())
}

func TestRaiseICEPanicsWithInternalError(t *testing.T) {
	defer func() {
		x := recover()
		ierr, ok := x.(*InternalError)
		require.True(t, ok)
		assert.Equal(t, "bad substitution: 2 != 1", ierr.Error())
	}()

	RaiseICE("bad substitution: %d != %d", 2, 1)
}
