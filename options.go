package mpq

import (
	"github.com/jmgilman/go/fs/core"

	"github.com/jmgilman/go/mpq/internal/logging"
)

// ClientOptions contains configuration for the Client.
type ClientOptions struct {
	// FS is the host filesystem. Defaults to the local filesystem.
	FS core.FS

	// Format reads and writes archives. Defaults to MPQFormat{}.
	Format Format

	// Logger receives structured log output. Defaults to a no-op logger.
	Logger *logging.Logger
}

// ClientOption configures a Client.
type ClientOption func(*ClientOptions)

// DefaultClientOptions returns the default client options.
func DefaultClientOptions() *ClientOptions {
	return &ClientOptions{
		FS:     nil, // Filled by constructor if unset
		Format: MPQFormat{},
		Logger: nil,
	}
}

// WithFilesystem injects the host filesystem used for all file I/O.
func WithFilesystem(fsys core.FS) ClientOption {
	return func(opts *ClientOptions) {
		opts.FS = fsys
	}
}

// WithFormat sets the archive format.
func WithFormat(format Format) ClientOption {
	return func(opts *ClientOptions) {
		opts.Format = format
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(opts *ClientOptions) {
		opts.Logger = logger
	}
}

// EntryOptions selects archive entries for extract and list.
type EntryOptions struct {
	// Filter is a glob matched against normalized entry paths.
	// Empty matches every entry.
	Filter string
}

// EntryOption configures entry selection.
type EntryOption func(*EntryOptions)

// WithFilter restricts extract and list to entries matching pattern.
//
// Glob syntax, matched against the '/'-separated path:
//   - "*" matches any characters except '/'
//   - "**" matches any characters including '/'
//   - "?" matches one character except '/'
//   - "[abc]", "[!abc]" and "{a,b}" select characters or alternatives
func WithFilter(pattern string) EntryOption {
	return func(opts *EntryOptions) {
		opts.Filter = pattern
	}
}

// PackOptions configures archive creation.
type PackOptions struct {
	// FileOptions is applied to every entry added.
	FileOptions FileOptions
}

// PackOption configures archive creation.
type PackOption func(*PackOptions)

// WithFileOptions sets the storage options applied to every packed file.
func WithFileOptions(fileOpts FileOptions) PackOption {
	return func(opts *PackOptions) {
		opts.FileOptions = fileOpts
	}
}

// DefaultPackOptions returns compressed, unencrypted storage.
func DefaultPackOptions() *PackOptions {
	return &PackOptions{
		FileOptions: FileOptions{Compress: true},
	}
}

func applyEntryOptions(opts []EntryOption) *EntryOptions {
	o := &EntryOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func applyPackOptions(opts []PackOption) *PackOptions {
	o := DefaultPackOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}
