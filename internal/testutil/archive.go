// Package testutil provides in-memory archive fakes for tests.
package testutil

import (
	"fmt"
	"io"

	"github.com/jmgilman/go/mpq"
)

// Archive is an in-memory mpq.Archive with failure injection.
type Archive struct {
	names    []string
	entries  map[string][]byte
	failures map[string]error
	listed   bool
	closed   bool
}

var _ mpq.Archive = (*Archive)(nil)

// NewArchive returns an empty archive with a listing.
func NewArchive() *Archive {
	return &Archive{
		entries:  make(map[string][]byte),
		failures: make(map[string]error),
		listed:   true,
	}
}

// Add appends a listed entry.
func (a *Archive) Add(name string, data []byte) *Archive {
	a.names = append(a.names, name)
	a.entries[name] = data
	return a
}

// AddUnlisted stores an entry that is readable but absent from the listing.
func (a *Archive) AddUnlisted(name string, data []byte) *Archive {
	a.entries[name] = data
	return a
}

// List appends a name to the listing without storing contents.
func (a *Archive) List(name string) *Archive {
	a.names = append(a.names, name)
	return a
}

// Fail makes ReadFile(name) return err.
func (a *Archive) Fail(name string, err error) *Archive {
	a.failures[name] = err
	return a
}

// WithoutListing makes Files report no listing.
func (a *Archive) WithoutListing() *Archive {
	a.listed = false
	return a
}

// Closed reports whether Close was called.
func (a *Archive) Closed() bool {
	return a.closed
}

// Files implements mpq.Archive.
func (a *Archive) Files() ([]string, bool) {
	if a.closed || !a.listed {
		return nil, false
	}
	return append([]string(nil), a.names...), true
}

// ReadFile implements mpq.Archive.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	if a.closed {
		return nil, mpq.ErrArchiveClosed
	}
	if err, ok := a.failures[name]; ok {
		return nil, err
	}
	data, ok := a.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", mpq.ErrEntryNotFound, name)
	}
	return append([]byte(nil), data...), nil
}

// Close implements mpq.Archive.
func (a *Archive) Close() error {
	if a.closed {
		return mpq.ErrArchiveClosed
	}
	a.closed = true
	return nil
}

// AddedFile is one call recorded by Creator.
type AddedFile struct {
	Name string
	Data []byte
	Opts mpq.FileOptions
}

// Creator records AddFile calls and writes a fixed payload.
type Creator struct {
	Added     []AddedFile
	AddErrors map[string]error
	WriteErr  error
	Payload   []byte
	finalized bool
}

var _ mpq.Creator = (*Creator)(nil)

// AddFile implements mpq.Creator.
func (c *Creator) AddFile(name string, data []byte, opts mpq.FileOptions) error {
	if c.finalized {
		return mpq.ErrCreatorFinalized
	}
	if err, ok := c.AddErrors[name]; ok {
		return err
	}
	c.Added = append(c.Added, AddedFile{Name: name, Data: data, Opts: opts})
	return nil
}

// Write implements mpq.Creator.
func (c *Creator) Write(w io.Writer) error {
	if c.finalized {
		return mpq.ErrCreatorFinalized
	}
	c.finalized = true
	if c.WriteErr != nil {
		return c.WriteErr
	}
	_, err := w.Write(c.Payload)
	return err
}

// Format returns fixed fakes from Open and NewCreator.
type Format struct {
	Archive *Archive
	Creator *Creator
	OpenErr error
}

var _ mpq.Format = (*Format)(nil)

// Open implements mpq.Format.
func (f *Format) Open(io.ReadSeeker) (mpq.Archive, error) {
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	return f.Archive, nil
}

// NewCreator implements mpq.Format.
func (f *Format) NewCreator() mpq.Creator {
	if f.Creator == nil {
		f.Creator = &Creator{}
	}
	return f.Creator
}
