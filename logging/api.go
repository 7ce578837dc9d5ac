package logging

// logger is a global reference to a shared Logger (created/initialized with
// the translator, but separated for general usage)
var logger Logger

// Initialize initializes the global logger with the provided log level
func Initialize(loglevelname string) {
	var loglevel int
	switch loglevelname {
	case "silent":
		loglevel = LogLevelSilent
	case "error":
		loglevel = LogLevelError
	case "warning":
		loglevel = LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		loglevel = LogLevelVerbose
	}

	logger = newLogger(loglevel)
}

// ShouldProceed indicates whether or not the log module has encountered any
// errors
func ShouldProceed() bool {
	return logger.errorCount == 0
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set.  Most log functions will simply fail silently if below their
// appropriate log level.

// LogCompileError logs a translation error (user-induced, bad code)
func LogCompileError(lctx *LogContext, message string, kind int, pos *TextPosition) {
	logger.handleMsg(&CompileMessage{
		Message:  message,
		Kind:     kind,
		Position: pos,
		Context:  lctx,
		IsError:  true,
	})
}

// LogCompileWarning logs a translation warning (user-induced, problematic code)
func LogCompileWarning(lctx *LogContext, message string, kind int, pos *TextPosition) {
	logger.handleMsg(&CompileMessage{
		Message:  message,
		Kind:     kind,
		Position: pos,
		Context:  lctx,
		IsError:  false,
	})
}

// LogConfigError logs an error related to project or tool configuration
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: message})
}

// LogHeader displays the tool banner before a translation begins
func LogHeader(version, target string) {
	if logger.LogLevel == LogLevelVerbose {
		displayHeader(version, target)
	}
}

// LogBeginPhase marks the beginning of a named translation phase
func LogBeginPhase(phase string) {
	if logger.LogLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// LogEndPhase marks the successful end of the current translation phase
func LogEndPhase() {
	if logger.LogLevel == LogLevelVerbose {
		displayEndPhase(true)
	}
}

// LogFinished logs the closing success/failure message for a translation run
func LogFinished() {
	logger.flushWarnings()

	if logger.LogLevel >= LogLevelError {
		displayFinished(logger.errorCount == 0, logger.errorCount)
	}
}
