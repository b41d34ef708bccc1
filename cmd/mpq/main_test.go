package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/mpq/internal/config"
)

// invoke runs the command line and returns its exit code and captured output.
func invoke(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// packFixture creates an input tree and packs it into an archive.
func packFixture(t *testing.T, extra ...string) string {
	t.Helper()
	t.Setenv(config.EnvVar, "")

	dir := t.TempDir()
	input := filepath.Join(dir, "input")
	require.NoError(t, os.MkdirAll(filepath.Join(input, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(input, "readme.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(input, "scripts", "war3map.j"), []byte("function main takes nothing returns nothing"), 0o644))

	archive := filepath.Join(dir, "out", "test.mpq")
	args := append([]string{"new", input, archive}, extra...)
	code, _, stderr := invoke(t, args...)
	require.Equal(t, 0, code, stderr)

	return archive
}

func TestNewAndList(t *testing.T) {
	archive := packFixture(t)

	code, stdout, _ := invoke(t, "list", archive)
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.ElementsMatch(t, []string{"readme.txt", "scripts/war3map.j"}, lines)
}

func TestList_Filter(t *testing.T) {
	archive := packFixture(t)

	code, stdout, _ := invoke(t, "list", archive, "--filter", "**.j")
	require.Equal(t, 0, code)
	assert.Equal(t, "scripts/war3map.j\n", stdout)
}

func TestList_InvalidFilter(t *testing.T) {
	archive := packFixture(t)

	code, stdout, stderr := invoke(t, "list", archive, "-f", "[")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid filter pattern")
}

func TestView(t *testing.T) {
	archive := packFixture(t, "--encrypt", "--adjust-key")

	code, stdout, _ := invoke(t, "view", archive, `scripts\war3map.j`)
	require.Equal(t, 0, code)
	assert.Equal(t, "function main takes nothing returns nothing", stdout)
}

func TestView_Missing(t *testing.T) {
	archive := packFixture(t)

	code, stdout, stderr := invoke(t, "view", archive, "nope.txt")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.True(t, strings.HasPrefix(stderr, "error: "), stderr)
	assert.Equal(t, 1, strings.Count(stderr, "\n"))
}

func TestExtract(t *testing.T) {
	archive := packFixture(t, "--compress=false")
	out := filepath.Join(t.TempDir(), "extracted")

	code, _, stderr := invoke(t, "extract", archive, "-o", out)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(filepath.Join(out, "scripts", "war3map.j"))
	require.NoError(t, err)
	assert.Equal(t, "function main takes nothing returns nothing", string(data))

	data, err = os.ReadFile(filepath.Join(out, "readme.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestExtract_Filter(t *testing.T) {
	archive := packFixture(t)
	out := t.TempDir()

	code, _, _ := invoke(t, "extract", archive, "--output", out, "-f", "*.txt")
	require.Equal(t, 0, code)

	assert.FileExists(t, filepath.Join(out, "readme.txt"))
	assert.NoFileExists(t, filepath.Join(out, "scripts", "war3map.j"))
}

func TestExtract_OutputFromConfig(t *testing.T) {
	archive := packFixture(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "from-config")

	cfgPath := filepath.Join(dir, "mpq.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("extract:\n  output: "+out+"\n"), 0o644))

	code, _, stderr := invoke(t, "--config", cfgPath, "extract", archive)
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, filepath.Join(out, "readme.txt"))
}

func TestNew_OmitListfileFromConfig(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	dir := t.TempDir()

	input := filepath.Join(dir, "input")
	require.NoError(t, os.MkdirAll(input, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(input, "a.txt"), []byte("a"), 0o644))

	cfgPath := filepath.Join(dir, "mpq.cue")
	require.NoError(t, os.WriteFile(cfgPath, []byte("create: listfile: false\n"), 0o644))

	archive := filepath.Join(dir, "a.mpq")
	code, _, stderr := invoke(t, "--config", cfgPath, "new", input, archive)
	require.Equal(t, 0, code, stderr)

	code, _, stderr = invoke(t, "list", archive)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "listfile not found in archive")

	code, stdout, _ := invoke(t, "view", archive, "a.txt")
	require.Equal(t, 0, code)
	assert.Equal(t, "a", stdout)
}

func TestErrors(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	missing := filepath.Join(t.TempDir(), "missing.mpq")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing archive", []string{"list", missing}, "failed to open file"},
		{"wrong arg count", []string{"view", missing}, "accepts 2 arg(s)"},
		{"invalid log level", []string{"--log-level", "loud", "list", missing}, "invalid --log-level"},
		{"missing config", []string{"--config", missing + ".yaml", "list", missing}, "configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := invoke(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout)
			assert.True(t, strings.HasPrefix(stderr, "error: "), stderr)
			assert.Contains(t, strings.ToLower(stderr), strings.ToLower(tt.want))
		})
	}
}
