package logging

// TextPosition represents the position of an element of source text.  The
// translator only ever reports single points (the start of the offending
// construct), so a position is simply a line and column pair.  Lines and
// columns are 1-indexed.
type TextPosition struct {
	Line int
	Col  int
}

// LogContext is the context in which a log message occurred -- it is used to
// print the file the message is associated with
type LogContext struct {
	// FilePath is the path to the file the message occurred in
	FilePath string
}

// LogMessage is an interface implemented by all messages the logger can
// process
type LogMessage interface {
	display()
	isError() bool
}

// CompileMessage represents a message produced while translating user code:
// a syntax error, a banned-feature usage, etc.
type CompileMessage struct {
	Message  string
	Kind     int
	Position *TextPosition
	Context  *LogContext
	IsError  bool
}

func (cm *CompileMessage) isError() bool {
	return cm.IsError
}

// Enumeration of the different kinds of compile messages
const (
	LMKSyntax  = iota // source is not valid JavaScript
	LMKFeature        // a banned construct was observed
	LMKUsage          // a recoverable misuse warning
)

// ConfigError represents an error in the tool's configuration or invocation
// (as opposed to an error in the code being translated)
type ConfigError struct {
	Kind    string
	Message string
}

func (ce *ConfigError) isError() bool {
	return true
}
