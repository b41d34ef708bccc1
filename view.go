package mpq

import (
	"context"
	"fmt"
	"io"

	"github.com/jmgilman/go/mpq/errors"
	"github.com/jmgilman/go/mpq/internal/logging"
	"github.com/jmgilman/go/mpq/internal/validate"
)

// View writes the contents of one entry of the archive at archivePath to w.
// Nothing is written unless the entry was read successfully.
func (c *Client) View(ctx context.Context, archivePath, name string, w io.Writer) error {
	a, closeArchive, err := c.open(ctx, archivePath)
	if err != nil {
		return err
	}
	defer closeArchive()

	data, err := c.ViewArchive(a, name)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return errors.WithSeverity(errors.WrapWithContext(err, errors.CodeFileWrite,
			"could not write entry contents",
			map[string]interface{}{"entry": name}), errors.SeverityFatal)
	}

	c.logger(logging.OpView).Debug(ctx, "viewed entry", "entry", name, "bytes", len(data))
	return nil
}

// ViewArchive returns the contents of the named entry. The name may use
// '/' or '\' separators. Any failure, including a missing entry, carries
// CodeEntryNotFound.
func (c *Client) ViewArchive(a Archive, name string) ([]byte, error) {
	entry := validate.ToArchive(name)

	data, err := a.ReadFile(entry)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeEntryNotFound,
			fmt.Sprintf("error while reading file %s from MPQ archive", entry),
			map[string]interface{}{"entry": entry})
	}
	return data, nil
}
