package mpq

import (
	"io"

	"github.com/jmgilman/go/mpq/internal/mpqfile"
)

// Archive is an archive opened for reading. An Archive is exclusively owned
// by the caller that opened it; after Close every method fails.
type Archive interface {
	// Files returns the entry names recorded by the archive, in archive
	// order. The second result is false when the archive carries no listing.
	Files() ([]string, bool)
	// ReadFile returns the decoded contents of the named entry.
	ReadFile(name string) ([]byte, error)
	// Close releases the archive.
	Close() error
}

// Creator accumulates entries and serializes them as a new archive.
// After Write, whether it succeeded or not, the Creator is finalized.
type Creator interface {
	AddFile(name string, data []byte, opts FileOptions) error
	Write(w io.Writer) error
}

// Format opens and creates archives of one on-disk format.
type Format interface {
	Open(r io.ReadSeeker) (Archive, error)
	NewCreator() Creator
}

// FileOptions selects how an entry is stored by a Creator.
type FileOptions = mpqfile.FileOptions

// MPQFormat is the built-in MPQ Format.
type MPQFormat struct {
	// SectorSizeShift sets the sector size of new archives to 512 << shift
	// bytes. Zero selects the default of 4096-byte sectors.
	SectorSizeShift uint16
	// OmitListfile disables the "(listfile)" entry in new archives.
	OmitListfile bool
}

// Open parses an MPQ archive from r.
func (f MPQFormat) Open(r io.ReadSeeker) (Archive, error) {
	a, err := mpqfile.Open(r)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// NewCreator returns an empty MPQ creator.
func (f MPQFormat) NewCreator() Creator {
	shift := f.SectorSizeShift
	if shift == 0 {
		shift = mpqfile.DefaultSectorSizeShift
	}
	return mpqfile.NewCreator(
		mpqfile.WithSectorSizeShift(shift),
		mpqfile.WithListfile(!f.OmitListfile),
	)
}
