package mpq

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jmgilman/go/mpq/errors"
	"github.com/jmgilman/go/mpq/internal/logging"
	"github.com/jmgilman/go/mpq/internal/mpqfile"
	"github.com/jmgilman/go/mpq/internal/validate"
	"github.com/jmgilman/go/mpq/internal/walk"
)

// Pack creates an archive at outputPath from every regular file below
// inputRoot. The archive is written to a temporary file next to outputPath
// and renamed into place, so a failed Pack leaves no partial archive. If
// outputPath lies inside inputRoot it is not added to itself.
func (c *Client) Pack(ctx context.Context, inputRoot, outputPath string, opts ...PackOption) (*PackReport, error) {
	out, err := absPath(outputPath)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	logger := c.logger(logging.OpCreate).WithArchive(outputPath)

	creator, report, err := c.collect(ctx, logger, inputRoot, out, applyPackOptions(opts))
	if err != nil {
		return nil, err
	}

	if err := validate.EnsureParentDirs(c.options.FS, out); err != nil {
		return nil, errors.WithSeverity(err, errors.SeverityFatal)
	}

	tmp := fmt.Sprintf("%s.tmp-%d", out, os.Getpid())
	if err := c.writeArchive(creator, tmp); err != nil {
		_ = c.options.FS.Remove(tmp)
		return nil, errors.WithContext(err, "archive", outputPath)
	}

	if err := c.options.FS.Rename(tmp, out); err != nil {
		_ = c.options.FS.Remove(tmp)
		return nil, errors.WrapWithContext(err, errors.CodeArchiveWrite,
			fmt.Sprintf("could not move archive into place at %s", outputPath),
			map[string]interface{}{"archive": outputPath})
	}

	logging.LogSummary(ctx, logger, logging.OpCreate, len(report.Added), len(report.Warnings), time.Since(start))
	return report, nil
}

// PackTo writes an archive built from every regular file below inputRoot
// to w. Traversal and per-file read failures are recorded as warnings;
// failing to write the archive is fatal.
func (c *Client) PackTo(ctx context.Context, inputRoot string, w io.Writer, opts ...PackOption) (*PackReport, error) {
	start := time.Now()
	logger := c.logger(logging.OpCreate)

	creator, report, err := c.collect(ctx, logger, inputRoot, "", applyPackOptions(opts))
	if err != nil {
		return nil, err
	}

	if err := creator.Write(w); err != nil {
		return nil, errors.Wrap(err, errors.CodeArchiveWrite, "failed to write archive")
	}

	logging.LogSummary(ctx, logger, logging.OpCreate, len(report.Added), len(report.Warnings), time.Since(start))
	return report, nil
}

// collect walks inputRoot and adds each file to a new Creator. A file whose
// path equals exclude is skipped.
func (c *Client) collect(ctx context.Context, logger *logging.Logger, inputRoot, exclude string, opts *PackOptions) (Creator, *PackReport, error) {
	root, err := absPath(inputRoot)
	if err != nil {
		return nil, nil, err
	}

	creator := c.options.Format.NewCreator()
	report := &PackReport{}
	warnings := &collector{logger: logger}
	seen := make(map[string]string)

	visit := func(e walk.Entry) error {
		if exclude != "" && e.Path == exclude {
			logger.Debug(ctx, "skipping output archive", "path", e.Path)
			return nil
		}

		data, err := c.options.FS.ReadFile(e.Path)
		if err != nil {
			warnings.add(ctx, e.Path, errors.WrapWithContext(err, errors.CodeFileRead,
				fmt.Sprintf("could not read %s", e.Path),
				map[string]interface{}{"path": e.Path}))
			return nil
		}

		name := validate.ToArchive(e.Rel)
		key := mpqfile.NameKey(name)
		if first, ok := seen[key]; ok {
			warnings.add(ctx, e.Path, errors.WithSeverity(errors.WrapWithContext(ErrDuplicateEntry, errors.CodeArchiveWrite,
				fmt.Sprintf("%s collides with %s", name, first),
				map[string]interface{}{"path": e.Path, "entry": name, "existing": first}), errors.SeverityWarning))
			return nil
		}

		if err := creator.AddFile(name, data, opts.FileOptions); err != nil {
			warnings.add(ctx, e.Path, errors.WithSeverity(errors.WrapWithContext(err, errors.CodeArchiveWrite,
				fmt.Sprintf("could not add %s", name),
				map[string]interface{}{"path": e.Path, "entry": name}), errors.SeverityWarning))
			return nil
		}

		seen[key] = name
		logger.Debug(ctx, "added entry", "entry", name)
		report.Added = append(report.Added, name)
		return nil
	}

	err = walk.Walk(ctx, c.options.FS, root, visit,
		walk.WithErrorHandler(func(path string, err error) {
			warnings.add(ctx, path, err)
		}))
	if err != nil {
		return nil, nil, err
	}

	report.Warnings = warnings.warnings
	return creator, report, nil
}

func (c *Client) writeArchive(creator Creator, path string) error {
	f, err := c.options.FS.Create(path)
	if err != nil {
		return errors.WrapWithContext(err, errors.CodeArchiveWrite,
			fmt.Sprintf("could not create %s", path),
			map[string]interface{}{"path": path})
	}

	writeErr := creator.Write(f)
	closeErr := f.Close()
	if writeErr != nil {
		return errors.Wrap(writeErr, errors.CodeArchiveWrite, "failed to write archive")
	}
	if closeErr != nil {
		return errors.Wrap(closeErr, errors.CodeArchiveWrite, "failed to write archive")
	}
	return nil
}
