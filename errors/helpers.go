package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard library errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the ErrorCode from an error.
// Returns CodeUnknown if the error is nil or not a ToolError.
//
// The code of the outermost ToolError in the chain wins.
//
// Example:
//
//	if errors.GetCode(err) == errors.CodeListfileNotFound {
//	    // archive has no (listfile)
//	}
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var toolErr ToolError
	if stderrors.As(err, &toolErr) {
		return toolErr.Code()
	}

	return CodeUnknown
}

// GetSeverity extracts the Severity from an error.
// Returns SeverityFatal if the error is nil or not a ToolError, so unknown
// failures never get downgraded to warnings.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityFatal
	}

	var toolErr ToolError
	if stderrors.As(err, &toolErr) {
		return toolErr.Severity()
	}

	return SeverityFatal
}

// IsFatal returns true if the error aborts a command.
// Returns true for errors that are not ToolErrors.
func IsFatal(err error) bool {
	return GetSeverity(err).IsFatal()
}
