package mpq

import (
	"context"
	"iter"
	"slices"
	"time"

	"github.com/jmgilman/go/mpq/errors"
	"github.com/jmgilman/go/mpq/internal/filter"
	"github.com/jmgilman/go/mpq/internal/logging"
	"github.com/jmgilman/go/mpq/internal/validate"
)

// List opens the archive at archivePath and returns the normalized names of
// its entries that match the filter, in archive order.
func (c *Client) List(ctx context.Context, archivePath string, opts ...EntryOption) ([]string, error) {
	a, closeArchive, err := c.open(ctx, archivePath)
	if err != nil {
		return nil, err
	}
	defer closeArchive()

	start := time.Now()
	seq, err := c.ListArchive(a, opts...)
	if err != nil {
		return nil, err
	}

	names := slices.Collect(seq)
	logging.LogSummary(ctx, c.logger(logging.OpList), logging.OpList, len(names), 0, time.Since(start))
	return names, nil
}

// ListArchive returns a sequence of the normalized names of a's entries
// that match the filter, in archive order. An invalid filter or a missing
// listing fails immediately.
//
// The sequence is single use: ranging over it a second time yields nothing.
func (c *Client) ListArchive(a Archive, opts ...EntryOption) (iter.Seq[string], error) {
	options := applyEntryOptions(opts)

	pattern, err := filter.Compile(options.Filter)
	if err != nil {
		return nil, err
	}

	names, ok := a.Files()
	if !ok {
		return nil, errors.Wrap(ErrListfileNotFound, errors.CodeListfileNotFound, "cannot enumerate archive")
	}

	consumed := false
	return func(yield func(string) bool) {
		if consumed {
			return
		}
		consumed = true

		for _, name := range names {
			normalized := validate.Normalize(name)
			if !pattern.Match(normalized) {
				continue
			}
			if !yield(normalized) {
				return
			}
		}
	}, nil
}
