package mpq

import (
	"errors"

	"github.com/jmgilman/go/mpq/internal/mpqfile"
	"github.com/jmgilman/go/mpq/internal/validate"
)

// Sentinel errors. They can be checked with errors.Is on any error returned
// by this package or recorded in a Warning.
var (
	// ErrListfileNotFound indicates the archive has no name listing, so its
	// entries cannot be enumerated.
	ErrListfileNotFound = errors.New("listfile not found in archive")

	// ErrEntryNotFound indicates a requested entry does not exist.
	ErrEntryNotFound = mpqfile.ErrNotFound

	// ErrArchiveClosed is returned by an Archive after Close.
	ErrArchiveClosed = mpqfile.ErrClosed

	// ErrCreatorFinalized is returned by a Creator after Write.
	ErrCreatorFinalized = mpqfile.ErrFinalized

	// ErrDuplicateEntry indicates two input files map to the same entry
	// name, which is compared without regard to ASCII case.
	ErrDuplicateEntry = errors.New("duplicate entry name")

	// ErrPathEscape indicates an entry name resolves outside the output root.
	ErrPathEscape = validate.ErrPathEscape
)
