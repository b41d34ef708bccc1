package errors

import "fmt"

// toolError is the concrete implementation of ToolError.
// It is private to enforce construction through package functions.
type toolError struct {
	code     ErrorCode
	severity Severity
	message  string
	context  map[string]interface{}
	cause    error
}

// Error returns the string representation of the error.
// Format: "message" or "message: cause" if a cause is present. The code is
// not included.
func (e *toolError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Code returns the error code.
func (e *toolError) Code() ErrorCode {
	return e.code
}

// Severity returns the error severity.
func (e *toolError) Severity() Severity {
	return e.severity
}

// Message returns the error message.
func (e *toolError) Message() string {
	return e.message
}

// Context returns a copy of the context map.
// Returns nil if no context has been attached.
func (e *toolError) Context() map[string]interface{} {
	if e.context == nil {
		return nil
	}
	ctx := make(map[string]interface{}, len(e.context))
	for k, v := range e.context {
		ctx[k] = v
	}
	return ctx
}

// Unwrap returns the wrapped error for standard library compatibility.
func (e *toolError) Unwrap() error {
	return e.cause
}
