// Package filter matches normalized archive paths against glob patterns.
//
// Patterns use '/' as the path separator:
//
//	*        any sequence of characters except '/'
//	?        any single character except '/'
//	**       any sequence of characters including '/'
//	[abc]    one character from the set
//	[!abc]   one character not in the set
//	{a,b}    either alternative
//
// Matching is case sensitive and always applies to the full path.
package filter

import (
	"fmt"

	"github.com/gobwas/glob"

	"github.com/jmgilman/go/mpq/errors"
)

// maxPatternLength bounds pattern size before compilation.
const maxPatternLength = 1024

// Pattern is a compiled glob. A nil *Pattern matches every path.
type Pattern struct {
	text string
	g    glob.Glob
}

// Compile parses text into a Pattern. Empty text yields a nil Pattern.
func Compile(text string) (*Pattern, error) {
	if text == "" {
		return nil, nil
	}

	if len(text) > maxPatternLength {
		return nil, errors.WithContext(
			errors.Newf(errors.CodeInvalidPattern, "pattern exceeds %d bytes", maxPatternLength),
			"pattern", text)
	}

	for _, c := range text {
		if c < 0x20 || c == 0x7f {
			return nil, errors.WithContext(
				errors.Newf(errors.CodeInvalidPattern, "pattern contains control character U+%04X", c),
				"pattern", text)
		}
	}

	if err := checkBalanced(text); err != nil {
		return nil, errors.WithContext(
			errors.Newf(errors.CodeInvalidPattern, "invalid filter pattern %q: %s", text, err),
			"pattern", text)
	}

	g, err := glob.Compile(text, '/')
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeInvalidPattern,
			fmt.Sprintf("invalid filter pattern %q", text),
			map[string]interface{}{"pattern": text})
	}

	return &Pattern{text: text, g: g}, nil
}

// Match reports whether the normalized path matches the pattern.
func (p *Pattern) Match(normalized string) bool {
	if p == nil {
		return true
	}
	return p.g.Match(normalized)
}

// String returns the pattern text.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.text
}

// checkBalanced rejects unterminated or stray '[' ']' '{' '}' outside
// backslash escapes. glob.Compile accepts some of these silently.
func checkBalanced(text string) error {
	var (
		inClass bool
		braces  int
		escaped bool
	)
	for i, c := range text {
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\':
			escaped = true
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == ']':
			return fmt.Errorf("unexpected ']' at offset %d", i)
		case c == '{':
			braces++
		case c == '}':
			if braces == 0 {
				return fmt.Errorf("unexpected '}' at offset %d", i)
			}
			braces--
		}
	}

	switch {
	case escaped:
		return fmt.Errorf("trailing escape")
	case inClass:
		return fmt.Errorf("unterminated '['")
	case braces > 0:
		return fmt.Errorf("unterminated '{'")
	}
	return nil
}
