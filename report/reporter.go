package report

import (
	"sync"

	"go.uber.org/zap"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user while the semantic model is being driven.  The reporter
// respects the set log level and is synchronized: its methods can be safely
// called from multiple goroutines.
type Reporter struct {
	// The mutex used to synchonize different error method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// Indicates whether or not an error has been detected.
	isErr bool

	// The structured logger handed to the semantic database for debug tracing.
	logger *zap.Logger
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all messages to the user (default).
)

// logLevelNames maps the CLI names of the log levels to their values.
var logLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarn,
	"verbose": LogLevelVerbose,
}

// LogLevelFromName returns the log level for the given name.  Unknown names
// select the verbose log level.
func LogLevelFromName(name string) int {
	if lvl, ok := logLevelNames[name]; ok {
		return lvl
	}

	return LogLevelVerbose
}

// rep is the global reporter instance.
var rep *Reporter

// InitReporter initializes the global reporter to the given log level. If the
// reporter has already been initialized, this function does nothing.
func InitReporter(logLevel int) {
	if rep == nil {
		rep = newReporter(logLevel)
	}
}

func newReporter(logLevel int) *Reporter {
	logger := zap.NewNop()
	if logLevel == LogLevelVerbose {
		if devLogger, err := zap.NewDevelopment(); err == nil {
			logger = devLogger
		}
	}

	return &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
		logger:   logger,
	}
}

// current returns the global reporter, initializing a silent one if nothing
// has initialized it yet.
func current() *Reporter {
	if rep == nil {
		rep = newReporter(LogLevelSilent)
	}

	return rep
}

// Logger returns the structured logger of the global reporter.  It is a no-op
// logger unless the reporter is verbose.
func Logger() *zap.Logger {
	return current().logger
}
