// Package validate translates archive entry names into host paths.
// Archive entries use backslash separators; host paths are produced by
// joining the slash-normalized name onto an output root, rejecting any name
// that would land outside of it.
package validate

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jmgilman/go/fs/core"

	"github.com/jmgilman/go/mpq/errors"
)

const (
	// ArchiveSeparator is the path separator used inside archives.
	ArchiveSeparator = '\\'
	// NormalizedSeparator is the separator of normalized paths.
	NormalizedSeparator = '/'
)

var (
	// ErrPathEscape is returned when an entry path resolves outside the output root.
	ErrPathEscape = stderrors.New("path escapes output root")

	// ErrInvalidPath is returned for empty names or names containing NUL/control bytes.
	ErrInvalidPath = stderrors.New("invalid entry path")
)

// Normalize converts an archive entry name into a normalized path by
// replacing every backslash with a forward slash. Normalize is idempotent.
func Normalize(entry string) string {
	return strings.ReplaceAll(entry, string(ArchiveSeparator), string(NormalizedSeparator))
}

// ToArchive converts a normalized (or host, slash-separated) path into an
// archive entry name.
func ToArchive(p string) string {
	return strings.ReplaceAll(p, string(NormalizedSeparator), string(ArchiveSeparator))
}

// ToHostPath joins a normalized path onto root and returns the host path.
//
// The path is rejected with ErrPathEscape when any of its segments is "..",
// when it carries a drive letter, or when the cleaned result is not a strict
// descendant of root. Leading separators are ignored, so "/a.txt" lands at
// root/a.txt. Empty names and names with control characters are rejected
// with ErrInvalidPath. Both failures carry CodePathEscape.
func ToHostPath(normalized, root string) (string, error) {
	if err := ValidatePath(normalized); err != nil {
		return "", errors.WrapWithContext(err, errors.CodePathEscape,
			fmt.Sprintf("refusing to extract %q", normalized),
			map[string]interface{}{"path": normalized, "root": root})
	}

	rootClean := filepath.Clean(root)
	rel := filepath.FromSlash(strings.TrimLeft(normalized, string(NormalizedSeparator)))
	hostPath := filepath.Join(rootClean, rel)

	if !isDescendant(rootClean, hostPath) {
		return "", errors.WrapWithContext(ErrPathEscape, errors.CodePathEscape,
			fmt.Sprintf("refusing to extract %q", normalized),
			map[string]interface{}{"path": normalized, "root": root})
	}

	return hostPath, nil
}

// ValidatePath checks a normalized path for traversal segments, drive
// letters and problematic characters.
func ValidatePath(normalized string) error {
	trimmed := strings.Trim(normalized, string(NormalizedSeparator))
	if strings.TrimSpace(trimmed) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	for _, r := range normalized {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: control character U+%04X", ErrInvalidPath, r)
		}
	}

	if hasDriveLetter(normalized) {
		return fmt.Errorf("%w: drive letter in %s", ErrPathEscape, normalized)
	}

	for _, segment := range strings.Split(normalized, string(NormalizedSeparator)) {
		if segment == ".." {
			return fmt.Errorf("%w: parent directory reference in %s", ErrPathEscape, normalized)
		}
	}

	return nil
}

// EnsureParentDirs creates every ancestor directory of hostPath.
// Failures carry CodeDirCreation and the directory that could not be created.
func EnsureParentDirs(fsys core.FS, hostPath string) error {
	dir := filepath.Dir(hostPath)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapWithContext(err, errors.CodeDirCreation,
			fmt.Sprintf("could not create output directory %s", dir),
			map[string]interface{}{"path": dir})
	}
	return nil
}

// isDescendant reports whether p lies strictly below root.
func isDescendant(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." || filepath.IsAbs(rel) {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// hasDriveLetter checks for a Windows drive prefix such as "C:".
func hasDriveLetter(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	drive := p[0]
	return (drive >= 'A' && drive <= 'Z') || (drive >= 'a' && drive <= 'z')
}
