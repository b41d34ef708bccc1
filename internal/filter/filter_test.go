package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/mpq/errors"
)

func TestCompile_Empty(t *testing.T) {
	p, err := Compile("")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.True(t, p.Match("anything/at/all.txt"))
	assert.Equal(t, "", p.String())
}

func TestPattern_Match(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.txt", "a.txt", true},
		{"*.txt", "b.bin", false},
		{"*.txt", "dir/b.txt", false},
		{"dir/*.txt", "dir/b.txt", true},
		{"dir/*.txt", "dir/sub/b.txt", false},
		{"**.txt", "dir/sub/b.txt", true},
		{"**/*.mdx", "Units/Human/Footman.mdx", true},
		{"?.txt", "a.txt", true},
		{"?.txt", "ab.txt", false},
		{"[ab].txt", "b.txt", true},
		{"[!ab].txt", "b.txt", false},
		{"[!ab].txt", "c.txt", true},
		{"*.{txt,j}", "war3map.j", true},
		{"*.{txt,j}", "war3map.w3e", false},
		{"*.TXT", "a.txt", false},
		{"a.txt", "a.txt", true},
		{"a.txt", "dir/a.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"|"+tt.path, func(t *testing.T) {
			p, err := Compile(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Match(tt.path))
		})
	}
}

func TestCompile_Invalid(t *testing.T) {
	invalid := []string{
		"[",
		"{a,b",
		"*.{txt",
		"{",
		"*{",
		"a]",
		"a}",
		"[abc",
		`trailing\`,
		"bad\x00pattern",
		strings.Repeat("a", maxPatternLength+1),
	}

	for _, text := range invalid {
		_, err := Compile(text)
		require.Error(t, err, "pattern %q", text)
		assert.Equal(t, errors.CodeInvalidPattern, errors.GetCode(err))
		assert.True(t, errors.IsFatal(err))
	}
}

func TestCompile_BalancedAccepted(t *testing.T) {
	for _, text := range []string{"*.{txt,j}", "{a,b}/*.txt", "[{]x", `\{literal`, "[a-z]*.txt", `dir/\]`} {
		p, err := Compile(text)
		require.NoError(t, err, "pattern %q", text)
		assert.Equal(t, text, p.String())
	}
}
