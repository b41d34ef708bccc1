package errors

import "errors"

// asToolError returns err as a ToolError, converting plain errors to one
// with CodeUnknown.
func asToolError(err error) ToolError {
	var toolErr ToolError
	if errors.As(err, &toolErr) {
		return toolErr
	}
	return &toolError{
		code:     CodeUnknown,
		severity: SeverityFatal,
		message:  err.Error(),
		cause:    err,
	}
}

// WithContext adds a single context field to an error.
// Returns a new ToolError with the context field added.
// Existing context fields are preserved.
//
// If err is not a ToolError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	err := errors.New(errors.CodeEntryRead, "failed to read entry")
//	err = errors.WithContext(err, "entry", `units\human\footman.mdx`)
func WithContext(err error, key string, value interface{}) ToolError {
	if err == nil {
		return nil
	}

	return WithContextMap(err, map[string]interface{}{key: value})
}

// WithContextMap adds multiple context fields to an error.
// Returns a new ToolError with the context fields merged.
// Existing context fields are preserved; new fields override existing ones with the same key.
//
// If err is not a ToolError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) ToolError {
	if err == nil {
		return nil
	}

	toolErr := asToolError(err)

	newContext := make(map[string]interface{})
	for k, v := range toolErr.Context() {
		newContext[k] = v
	}
	for k, v := range ctx {
		newContext[k] = v
	}

	return &toolError{
		code:     toolErr.Code(),
		severity: toolErr.Severity(),
		message:  toolErr.Message(),
		context:  newContext,
		cause:    toolErr.Unwrap(),
	}
}

// WithSeverity overrides the severity of an error.
// Returns a new ToolError with the specified severity.
//
// If err is not a ToolError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	// A missing input root is reported as a warning when packing several roots.
//	err = errors.WithSeverity(err, errors.SeverityWarning)
func WithSeverity(err error, severity Severity) ToolError {
	if err == nil {
		return nil
	}

	toolErr := asToolError(err)

	return &toolError{
		code:     toolErr.Code(),
		severity: severity,
		message:  toolErr.Message(),
		context:  toolErr.Context(),
		cause:    toolErr.Unwrap(),
	}
}
