package mpq

import (
	"context"
	"fmt"
	"time"

	"github.com/jmgilman/go/mpq/errors"
	"github.com/jmgilman/go/mpq/internal/filter"
	"github.com/jmgilman/go/mpq/internal/logging"
	"github.com/jmgilman/go/mpq/internal/validate"
)

// Extract opens the archive at archivePath and extracts it under outputRoot.
// See ExtractArchive for the per-entry semantics.
func (c *Client) Extract(ctx context.Context, archivePath, outputRoot string, opts ...EntryOption) (*ExtractReport, error) {
	a, closeArchive, err := c.open(ctx, archivePath)
	if err != nil {
		return nil, err
	}
	defer closeArchive()

	return c.ExtractArchive(ctx, a, outputRoot, opts...)
}

// ExtractArchive writes every listed entry of a that matches the filter to
// outputRoot, recreating the entry's directory structure.
//
// An invalid filter or a missing listing fails the whole call. Failures of
// individual entries (reading, path validation, directory creation, writing)
// are logged, recorded in the report and skipped; the call still succeeds.
func (c *Client) ExtractArchive(ctx context.Context, a Archive, outputRoot string, opts ...EntryOption) (*ExtractReport, error) {
	options := applyEntryOptions(opts)

	pattern, err := filter.Compile(options.Filter)
	if err != nil {
		return nil, err
	}

	names, ok := a.Files()
	if !ok {
		return nil, errors.Wrap(ErrListfileNotFound, errors.CodeListfileNotFound, "cannot enumerate archive")
	}

	root, err := absPath(outputRoot)
	if err != nil {
		return nil, err
	}

	logger := c.logger(logging.OpExtract)
	start := time.Now()
	report := &ExtractReport{}
	warnings := &collector{logger: logger}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.CodeCanceled, "extraction canceled")
		}

		normalized := validate.Normalize(name)
		if !pattern.Match(normalized) {
			report.Skipped++
			continue
		}

		hostPath, err := c.extractEntry(a, name, normalized, root)
		if err != nil {
			warnings.add(ctx, name, err)
			continue
		}

		logger.Debug(ctx, "extracted entry", "entry", name, "path", hostPath)
		report.Extracted = append(report.Extracted, normalized)
	}

	report.Warnings = warnings.warnings
	logging.LogSummary(ctx, logger, logging.OpExtract, len(report.Extracted), len(report.Warnings), time.Since(start))

	return report, nil
}

// extractEntry reads one entry and writes it below root.
func (c *Client) extractEntry(a Archive, name, normalized, root string) (string, error) {
	data, err := a.ReadFile(name)
	if err != nil {
		return "", errors.WrapWithContext(err, errors.CodeEntryRead,
			"error while reading file from MPQ archive",
			map[string]interface{}{"entry": name})
	}

	hostPath, err := validate.ToHostPath(normalized, root)
	if err != nil {
		return "", err
	}

	if err := validate.EnsureParentDirs(c.options.FS, hostPath); err != nil {
		return "", err
	}

	if err := c.options.FS.WriteFile(hostPath, data, 0o644); err != nil {
		return "", errors.WrapWithContext(err, errors.CodeFileWrite,
			fmt.Sprintf("could not write %s", hostPath),
			map[string]interface{}{"entry": name, "path": hostPath})
	}

	return hostPath, nil
}
