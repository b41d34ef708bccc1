package errors

// ToolError extends the standard error interface with structured information
// for consistent error handling across commands.
//
// ToolError provides error codes for categorization, a severity that separates
// fatal failures from per-entry warnings, contextual metadata, and
// compatibility with standard library error handling (errors.Is, errors.As,
// errors.Unwrap).
type ToolError interface {
	error

	// Code returns the error code identifying the type of error.
	Code() ErrorCode

	// Severity returns whether the error is fatal or a warning.
	Severity() Severity

	// Message returns the human-readable error message.
	Message() string

	// Context returns attached metadata as a read-only map.
	// Returns nil if no context has been attached.
	Context() map[string]interface{}

	// Unwrap returns the wrapped error for errors.Is and errors.As compatibility.
	// Returns nil if this error does not wrap another error.
	Unwrap() error
}
