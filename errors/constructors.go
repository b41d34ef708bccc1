package errors

import "fmt"

// New creates a new ToolError with the given code and message.
// The severity is determined by the error code using default mappings.
//
// Example:
//
//	err := errors.New(errors.CodeListfileNotFound, "listfile not found in archive")
func New(code ErrorCode, message string) ToolError {
	return &toolError{
		code:     code,
		severity: getDefaultSeverity(code),
		message:  message,
	}
}

// Newf creates a new ToolError with a formatted message.
// The severity is determined by the error code using default mappings.
//
// Example:
//
//	err := errors.Newf(errors.CodeEntryNotFound, "entry %q not found", name)
func Newf(code ErrorCode, format string, args ...interface{}) ToolError {
	return &toolError{
		code:     code,
		severity: getDefaultSeverity(code),
		message:  fmt.Sprintf(format, args...),
	}
}
