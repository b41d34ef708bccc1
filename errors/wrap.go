package errors

import "fmt"

// Wrap wraps an error with a code and message while preserving the original
// error. The wrapped error is accessible via Unwrap() and compatible with
// errors.Is and errors.As.
//
// The severity always comes from the new code: the layer that wraps an error
// is the one deciding whether it aborts the command. An archive-level read
// failure wrapped as CodeEntryRead inside an extraction loop is a warning.
//
// Returns nil if err is nil.
//
// Example:
//
//	data, err := archive.ReadFile(name)
//	if err != nil {
//	    return errors.Wrap(err, errors.CodeEntryRead, "failed to read entry")
//	}
func Wrap(err error, code ErrorCode, message string) ToolError {
	if err == nil {
		return nil
	}

	return &toolError{
		code:     code,
		severity: getDefaultSeverity(code),
		message:  message,
		cause:    err,
	}
}

// Wrapf wraps an error with a formatted message while preserving the original error.
//
// Returns nil if err is nil.
//
// Example:
//
//	if err := fsys.MkdirAll(dir, 0o755); err != nil {
//	    return errors.Wrapf(err, errors.CodeDirCreation, "could not create output directory %s", dir)
//	}
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) ToolError {
	if err == nil {
		return nil
	}

	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps an error and attaches context metadata in a single operation.
// The context map is copied to prevent external mutation.
//
// Returns nil if err is nil.
//
// Example:
//
//	if err := fsys.WriteFile(path, data, 0o644); err != nil {
//	    return errors.WrapWithContext(err, errors.CodeFileWrite, "failed to write file", map[string]interface{}{
//	        "path": path,
//	    })
//	}
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) ToolError {
	if err == nil {
		return nil
	}

	var contextCopy map[string]interface{}
	if ctx != nil {
		contextCopy = make(map[string]interface{}, len(ctx))
		for k, v := range ctx {
			contextCopy[k] = v
		}
	}

	return &toolError{
		code:     code,
		severity: getDefaultSeverity(code),
		message:  message,
		context:  contextCopy,
		cause:    err,
	}
}
