package logging

// Logger is a type that is responsible for storing and logging output from the
// translator as necessary
type Logger struct {
	errorCount int // Total encountered errors
	LogLevel   int

	// warnings is a list of all warnings to be logged at the end of translation
	warnings []LogMessage
}

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors and closing notification (success/fail)
	LogLevelWarning        // errors, warnings, and closing message
	LogLevelVerbose        // errors, warnings, phase progress, closing message (DEFAULT)
)

// newLogger creates a new logger struct
func newLogger(loglevel int) Logger {
	return Logger{LogLevel: loglevel}
}

// handleMsg prompts the logger to process a message.  Translation is strictly
// sequential so, unlike a parallelizing compiler, no synchronization is needed
// here.
func (l *Logger) handleMsg(lm LogMessage) {
	if lm.isError() {
		l.errorCount++

		if l.LogLevel > LogLevelSilent {
			displayEndPhase(false)
			lm.display()
		}
	} else {
		l.warnings = append(l.warnings, lm)
	}
}

// flushWarnings displays all accumulated warnings
func (l *Logger) flushWarnings() {
	if l.LogLevel >= LogLevelWarning {
		for _, w := range l.warnings {
			w.display()
		}
	}

	l.warnings = nil
}
