package errors

// Severity categorizes errors as fatal (abort the command) or warnings
// (recorded and the batch continues).
type Severity string

const (
	// SeverityFatal indicates the error aborts the whole command.
	SeverityFatal Severity = "FATAL"

	// SeverityWarning indicates the error concerns a single entry and the
	// surrounding batch keeps going.
	SeverityWarning Severity = "WARNING"
)

// IsFatal returns true if the severity aborts a command.
func (s Severity) IsFatal() bool {
	return s == SeverityFatal
}

// defaultSeverities maps error codes to their default severity.
var defaultSeverities = map[ErrorCode]Severity{
	CodeEntryRead:   SeverityWarning,
	CodePathEscape:  SeverityWarning,
	CodeDirCreation: SeverityWarning,
	CodeFileWrite:   SeverityWarning,
	CodeFileRead:    SeverityWarning,
	CodeTraversal:   SeverityWarning,

	CodeArchiveOpen:      SeverityFatal,
	CodeListfileNotFound: SeverityFatal,
	CodeEntryNotFound:    SeverityFatal,
	CodeArchiveWrite:     SeverityFatal,
	CodeInvalidPattern:   SeverityFatal,
	CodeInvalidInput:     SeverityFatal,
	CodeInvalidConfig:    SeverityFatal,
	CodeCanceled:         SeverityFatal,
	CodeInternal:         SeverityFatal,
	CodeUnknown:          SeverityFatal,
}

// getDefaultSeverity returns the default severity for an error code.
func getDefaultSeverity(code ErrorCode) Severity {
	if s, ok := defaultSeverities[code]; ok {
		return s
	}
	return SeverityFatal
}
