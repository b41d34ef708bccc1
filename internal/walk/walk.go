// Package walk traverses host directory trees for packing.
//
// Unlike core.WalkFS, symbolic links are followed: a link to a file is
// reported as that file and a link to a directory is descended into. A
// directory that resolves to one of its own ancestors is reported through
// the error handler and not entered again.
package walk

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/jmgilman/go/fs/core"

	"github.com/jmgilman/go/mpq/errors"
)

// DefaultMaxDepth bounds recursion for filesystems without stable file identity.
const DefaultMaxDepth = 255

// Entry is a regular file found during traversal.
type Entry struct {
	// Path is the host path of the file, joined onto the traversal root.
	Path string
	// Rel is the path relative to the root using '/' separators.
	Rel string
	// Info describes the link target when the file was reached through a symlink.
	Info fs.FileInfo
}

// VisitFunc is called once per regular file in lexical order.
// Returning an error stops the traversal and is returned from Walk.
type VisitFunc func(Entry) error

// ErrorFunc receives recoverable traversal failures. Each error carries
// CodeTraversal and the offending path in its context.
type ErrorFunc func(path string, err error)

// Options configures a traversal.
type Options struct {
	MaxDepth int
	OnError  ErrorFunc
}

// Option configures a traversal.
type Option func(*Options)

// WithErrorHandler sets the handler for recoverable traversal failures.
func WithErrorHandler(fn ErrorFunc) Option {
	return func(o *Options) {
		o.OnError = fn
	}
}

type walker struct {
	fsys  core.FS
	root  string
	opts  Options
	visit VisitFunc
}

// Walk visits every regular file below root.
//
// A missing root, or a root that is not a directory, fails with
// CodeInvalidInput. Unreadable directories, broken links and link cycles are
// passed to the error handler and skipped.
func Walk(ctx context.Context, fsys core.FS, root string, visit VisitFunc, opts ...Option) error {
	o := Options{MaxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	root = filepath.Clean(root)
	info, err := fsys.Stat(root)
	if err != nil {
		return errors.WrapWithContext(err, errors.CodeInvalidInput,
			fmt.Sprintf("input directory %s is not accessible", root),
			map[string]interface{}{"path": root})
	}
	if !info.IsDir() {
		return errors.WithContext(
			errors.Newf(errors.CodeInvalidInput, "input path %s is not a directory", root),
			"path", root)
	}

	w := &walker{fsys: fsys, root: root, opts: o, visit: visit}
	return w.dir(ctx, root, []fs.FileInfo{info}, 0)
}

func (w *walker) dir(ctx context.Context, dir string, ancestors []fs.FileInfo, depth int) error {
	children, err := w.fsys.ReadDir(dir)
	if err != nil {
		w.fail(dir, err, "could not read directory %s")
		return nil
	}

	names := make([]string, 0, len(children))
	for _, c := range children {
		names = append(names, c.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.CodeCanceled, "traversal canceled")
		}

		p := filepath.Join(dir, name)

		// Stat follows links; a broken link fails here.
		info, err := w.fsys.Stat(p)
		if err != nil {
			w.fail(p, err, "could not resolve %s")
			continue
		}

		switch {
		case info.IsDir():
			if isAncestor(info, ancestors) {
				w.fail(p, fmt.Errorf("directory cycle"), "not descending into %s")
				continue
			}
			if depth+1 > w.opts.MaxDepth {
				w.fail(p, fmt.Errorf("maximum depth %d exceeded", w.opts.MaxDepth), "not descending into %s")
				continue
			}
			if err := w.dir(ctx, p, append(ancestors, info), depth+1); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			rel, err := filepath.Rel(w.root, p)
			if err != nil {
				w.fail(p, err, "could not relativize %s")
				continue
			}
			if err := w.visit(Entry{Path: p, Rel: filepath.ToSlash(rel), Info: info}); err != nil {
				return err
			}
		}
	}

	return nil
}

func (w *walker) fail(path string, cause error, format string) {
	if w.opts.OnError == nil {
		return
	}
	w.opts.OnError(path, errors.WrapWithContext(cause, errors.CodeTraversal,
		fmt.Sprintf(format, path),
		map[string]interface{}{"path": path}))
}

func isAncestor(info fs.FileInfo, ancestors []fs.FileInfo) bool {
	for _, a := range ancestors {
		if os.SameFile(info, a) {
			return true
		}
	}
	return false
}
