package walk

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jmgilman/go/fs/billy"
	"github.com/jmgilman/go/fs/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/mpq/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// collect returns every regular file below root in traversal order.
func collect(ctx context.Context, fsys core.FS, root string, opts ...Option) ([]Entry, error) {
	var entries []Entry
	err := Walk(ctx, fsys, root, func(e Entry) error {
		entries = append(entries, e)
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func rels(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Rel)
	}
	return out
}

func TestWalk_Lexical(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.txt"), "b")
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "dir", "sub", "c.txt"), "c")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	entries, err := collect(context.Background(), billy.NewLocal(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "dir/sub/c.txt"}, rels(entries))
	assert.Equal(t, filepath.Join(root, "dir", "sub", "c.txt"), entries[2].Path)
}

func TestWalk_FollowsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	root := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "shared", "x.txt"), "x")
	writeFile(t, filepath.Join(outside, "target.txt"), "target")
	writeFile(t, filepath.Join(root, "real.txt"), "real")

	require.NoError(t, os.Symlink(filepath.Join(outside, "shared"), filepath.Join(root, "linked")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "target.txt"), filepath.Join(root, "link.txt")))

	entries, err := collect(context.Background(), billy.NewLocal(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"link.txt", "linked/x.txt", "real.txt"}, rels(entries))
	assert.Equal(t, int64(len("target")), entries[0].Info.Size())
}

func TestWalk_BrokenLinkAndCycle(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dir", "file.txt"), "f")
	require.NoError(t, os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "broken")))
	require.NoError(t, os.Symlink("..", filepath.Join(root, "dir", "loop")))

	var failed []string
	entries, err := collect(context.Background(), billy.NewLocal(), root,
		WithErrorHandler(func(path string, err error) {
			assert.Equal(t, errors.CodeTraversal, errors.GetCode(err))
			assert.False(t, errors.IsFatal(err))
			failed = append(failed, path)
		}))
	require.NoError(t, err)
	assert.Equal(t, []string{"dir/file.txt"}, rels(entries))
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "broken"),
		filepath.Join(root, "dir", "loop"),
	}, failed)
}

func TestWalk_InvalidRoot(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	writeFile(t, file, "x")

	for _, p := range []string{filepath.Join(root, "missing"), file} {
		err := Walk(context.Background(), billy.NewLocal(), p, func(Entry) error { return nil })
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		assert.True(t, errors.IsFatal(err))
	}
}

func TestWalk_MaxDepth(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("/in/top.txt", []byte("t"), 0o644))
	require.NoError(t, fsys.WriteFile("/in/a/b/deep.txt", []byte("d"), 0o644))

	var failed int
	entries, err := collect(context.Background(), fsys, "/in",
		func(o *Options) { o.MaxDepth = 1 },
		WithErrorHandler(func(string, error) { failed++ }))
	require.NoError(t, err)
	assert.Equal(t, []string{"top.txt"}, rels(entries))
	assert.Equal(t, 1, failed)
}

func TestWalk_Canceled(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("/in/a.txt", []byte("a"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Walk(ctx, fsys, "/in", func(Entry) error { return nil })
	require.Error(t, err)
	assert.Equal(t, errors.CodeCanceled, errors.GetCode(err))
}

func TestWalk_VisitError(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile("/in/a.txt", []byte("a"), 0o644))
	require.NoError(t, fsys.WriteFile("/in/b.txt", []byte("b"), 0o644))

	stop := errors.New(errors.CodeInternal, "stop")
	var seen int
	err := Walk(context.Background(), fsys, "/in", func(Entry) error {
		seen++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, seen)
}
