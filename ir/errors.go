package ir

import "fmt"

// ErrorKind classifies a CompileError, per spec.md §7's error table.
type ErrorKind string

const (
	UnknownCommand   ErrorKind = "UnknownCommand"
	MissingField     ErrorKind = "MissingField"
	UnknownReference ErrorKind = "UnknownReference"
	MalformedLiteral ErrorKind = "MalformedLiteral"
	DuplicateName    ErrorKind = "DuplicateName"
	MalformedArgs    ErrorKind = "MalformedArgs"
	NotImplemented   ErrorKind = "NotImplemented"
)

// CompileError is the one error type the dispatcher and emitters
// construct, carrying (filename, line, message) per spec.md §7. It is
// always the first error: the core does not attempt recovery.
type CompileError struct {
	File    string
	Line    int
	Kind    ErrorKind
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

// ErrorAt constructs a CompileError the way
// gmofishsauce-wut4/lang/ysem's Analyzer.errorAt builds its
// accumulated errors, formatting Message from a printf-style pattern.
func ErrorAt(file string, line int, kind ErrorKind, format string, args ...interface{}) *CompileError {
	return &CompileError{
		File:    file,
		Line:    line,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}
