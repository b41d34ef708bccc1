package mpq

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/jmgilman/go/fs/billy"

	"github.com/jmgilman/go/mpq/errors"
	"github.com/jmgilman/go/mpq/internal/logging"
)

// Client runs archive operations against a host filesystem.
// Each call is synchronous and owns the archives it opens.
type Client struct {
	options *ClientOptions
}

// New creates a Client. Without options it uses the local filesystem, the
// MPQ format and a no-op logger.
func New(opts ...ClientOption) (*Client, error) {
	options := DefaultClientOptions()
	for _, opt := range opts {
		opt(options)
	}

	if options.FS == nil {
		options.FS = billy.NewLocal()
	}
	if options.Logger == nil {
		options.Logger = logging.NewNopLogger()
	}
	if options.Format == nil {
		return nil, errors.New(errors.CodeInvalidConfig, "archive format cannot be nil")
	}

	return &Client{options: options}, nil
}

func (c *Client) logger(op logging.Operation) *logging.Logger {
	return c.options.Logger.WithOperation(op)
}

// absPath resolves p against the working directory.
func absPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.WrapWithContext(err, errors.CodeInvalidInput,
			fmt.Sprintf("could not resolve path %s", p),
			map[string]interface{}{"path": p})
	}
	return abs, nil
}

// open opens the archive at path. The returned function closes both the
// archive and the underlying file.
func (c *Client) open(ctx context.Context, path string) (Archive, func(), error) {
	abs, err := absPath(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := c.options.FS.Open(abs)
	if err != nil {
		return nil, nil, errors.WrapWithContext(err, errors.CodeArchiveOpen,
			fmt.Sprintf("failed to open file [%s]", path),
			map[string]interface{}{"archive": path})
	}

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		data, readErr := io.ReadAll(f)
		if readErr != nil {
			_ = f.Close()
			return nil, nil, errors.WrapWithContext(readErr, errors.CodeArchiveOpen,
				fmt.Sprintf("failed to read file [%s]", path),
				map[string]interface{}{"archive": path})
		}
		rs = bytes.NewReader(data)
	}

	a, err := c.options.Format.Open(rs)
	if err != nil {
		_ = f.Close()
		return nil, nil, errors.WrapWithContext(err, errors.CodeArchiveOpen,
			"error while opening the MPQ archive",
			map[string]interface{}{"archive": path})
	}

	c.options.Logger.Debug(ctx, "opened archive", "archive", path)

	return a, func() {
		_ = a.Close()
		_ = f.Close()
	}, nil
}
