// Package errors provides structured error handling for the mpq tool.
//
// This package extends Go's standard error handling with error codes, a
// severity (fatal vs warning) and context metadata. It maintains full
// compatibility with the standard library errors package (errors.Is,
// errors.As, errors.Unwrap).
//
// # Severity
//
// Batch commands (extract, new) distinguish two kinds of failure:
//
//   - Fatal errors abort the command: the archive cannot be opened, it has no
//     listfile, the filter pattern is malformed, the output archive cannot be
//     written, a viewed entry does not exist.
//   - Warnings concern one entry: it failed to decode, its directory could not
//     be created, its file could not be written or read. The batch continues.
//
// Each error code carries a default severity:
//
//	errors.GetSeverity(errors.New(errors.CodeEntryRead, "bad sector"))      // SeverityWarning
//	errors.GetSeverity(errors.New(errors.CodeListfileNotFound, "no names")) // SeverityFatal
//
// # Quick Start
//
// Creating errors:
//
//	err := errors.New(errors.CodeListfileNotFound, "listfile not found in archive")
//	err := errors.Newf(errors.CodeEntryNotFound, "entry %q not found", name)
//
// Wrapping errors:
//
//	if err := fsys.MkdirAll(dir, 0o755); err != nil {
//	    return errors.Wrap(err, errors.CodeDirCreation, "could not create output directory")
//	}
//
// Adding context:
//
//	err = errors.WithContext(err, "path", dir)
//
// Error messages deliberately omit the code so that they can be printed to an
// operator as-is; use GetCode for programmatic checks.
package errors
