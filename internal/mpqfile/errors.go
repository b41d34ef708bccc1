package mpqfile

import "errors"

var (
	// ErrNotMPQ is returned when no archive header is found.
	ErrNotMPQ = errors.New("not an MPQ archive")

	// ErrCorrupt is returned when archive structures are inconsistent.
	ErrCorrupt = errors.New("corrupt MPQ archive")

	// ErrNotFound is returned when an entry does not exist.
	ErrNotFound = errors.New("file not found in archive")

	// ErrUnsupportedCompression is returned for codecs this package cannot decode.
	ErrUnsupportedCompression = errors.New("unsupported compression")

	// ErrClosed is returned by every Archive method after Close.
	ErrClosed = errors.New("archive is closed")

	// ErrTooLarge is returned when an archive would exceed 4 GiB.
	ErrTooLarge = errors.New("archive exceeds 4 GiB")

	// ErrFinalized is returned by every Creator method after Write.
	ErrFinalized = errors.New("creator already finalized")
)
