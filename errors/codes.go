package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability and stable log output.
type ErrorCode string

const (
	// Archive errors.

	// CodeArchiveOpen indicates the archive could not be opened or parsed.
	CodeArchiveOpen ErrorCode = "ARCHIVE_OPEN_FAILED"

	// CodeListfileNotFound indicates the archive carries no name listing.
	CodeListfileNotFound ErrorCode = "LISTFILE_NOT_FOUND"

	// CodeEntryNotFound indicates a requested entry does not exist or could not be decoded.
	CodeEntryNotFound ErrorCode = "ENTRY_NOT_FOUND"

	// CodeArchiveWrite indicates a new archive could not be written out.
	CodeArchiveWrite ErrorCode = "ARCHIVE_WRITE_FAILED"

	// Per-entry errors.

	// CodeEntryRead indicates a single entry failed to read during a batch.
	CodeEntryRead ErrorCode = "ENTRY_READ_FAILED"

	// CodePathEscape indicates an entry path would resolve outside the output root.
	CodePathEscape ErrorCode = "PATH_ESCAPE"

	// CodeDirCreation indicates a parent directory could not be created.
	CodeDirCreation ErrorCode = "DIR_CREATION_FAILED"

	// CodeFileWrite indicates an extracted file could not be written.
	CodeFileWrite ErrorCode = "FILE_WRITE_FAILED"

	// CodeFileRead indicates a host file could not be read while packing.
	CodeFileRead ErrorCode = "FILE_READ_FAILED"

	// CodeTraversal indicates a directory could not be traversed while packing.
	CodeTraversal ErrorCode = "TRAVERSAL_FAILED"

	// Validation errors.

	// CodeInvalidPattern indicates a filter glob could not be compiled.
	CodeInvalidPattern ErrorCode = "INVALID_PATTERN"

	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a configuration error prevents the operation.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// System errors.

	// CodeCanceled indicates the operation was canceled through its context.
	CodeCanceled ErrorCode = "CANCELED"

	// CodeInternal indicates an internal error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
