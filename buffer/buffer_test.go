package buffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchAdvancesOnSuccessOnly(t *testing.T) {
	b := New("foobar")
	require.True(t, b.Match("foo"))
	assert.Equal(t, 3, b.Pos())

	require.False(t, b.Match("baz"))
	assert.Equal(t, 3, b.Pos())

	require.True(t, b.Match("bar"))
	assert.Equal(t, 6, b.Pos())
	assert.True(t, b.AtEnd())

	// At the end only the empty token matches.
	assert.False(t, b.Match("x"))
	assert.True(t, b.Match(""))
	assert.Equal(t, 6, b.Pos())
}

func TestMatchEmptyToken(t *testing.T) {
	b := New("abc")
	assert.True(t, b.Match(""))
	assert.Equal(t, 0, b.Pos())
}

func TestNameguard(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		token     string
		nameguard bool
		matched   bool
		pos       int
	}{
		{"guard rejects inside identifier", "iffy", "if", true, false, 0},
		{"no guard matches inside identifier", "iffy", "if", false, true, 2},
		{"guard allows exact word", "if ", "if", true, true, 2},
		{"guard allows word at end", "if", "if", true, true, 2},
		{"guard ignores non-alnum token", "a+b", "a+", true, true, 2},
		{"guard ignores token starting with digit", "12ab", "12", true, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.text, WithNameguard(tt.nameguard))
			assert.Equal(t, tt.matched, b.Match(tt.token))
			assert.Equal(t, tt.pos, b.Pos())
		})
	}
}

func TestNextTokenSkipsWhitespace(t *testing.T) {
	b := New("  \t\nfoo", WithWhitespace(" \t\n"))
	b.NextToken()
	assert.Equal(t, 4, b.Pos())

	// Idempotent.
	b.NextToken()
	assert.Equal(t, 4, b.Pos())

	// Disabled skipping moves nothing.
	plain := New("  foo")
	plain.NextToken()
	assert.Equal(t, 0, plain.Pos())
}

func TestNextTokenSkipsTrailingWhitespace(t *testing.T) {
	b := New("foo   ", WithWhitespace(" "))
	b.GoTo(3)
	b.NextToken()
	assert.True(t, b.AtEnd())
}

func TestNextTokenEatsComments(t *testing.T) {
	b := New("  # one\n  # two\nfoo", WithWhitespace(" \n"), WithComments(`#[^\n]*`))
	b.NextToken()
	assert.Equal(t, 16, b.Pos())
	assert.Equal(t, byte('f'), b.Current())

	// Still idempotent with comments configured.
	b.NextToken()
	assert.Equal(t, 16, b.Pos())
}

func TestNavigation(t *testing.T) {
	b := New("ab\ncd")

	assert.Equal(t, byte('a'), b.Current())
	assert.Equal(t, byte('b'), b.Peek(1))
	assert.Equal(t, EOT, b.Peek(10))
	assert.Equal(t, byte('a'), b.Next())
	assert.Equal(t, 1, b.Pos())

	b.GoTo(-5)
	assert.Equal(t, 0, b.Pos())
	b.GoTo(100)
	assert.Equal(t, 5, b.Pos())
	assert.Equal(t, EOT, b.Current())
	assert.Equal(t, EOT, b.Next())

	b.GoTo(0)
	b.Move(2)
	assert.Equal(t, 2, b.Pos())
	assert.True(t, b.AtEOL())
	assert.False(t, b.AtEnd())

	b.GoTo(0)
	assert.Equal(t, 2, b.SkipTo('\n'))
	b.GoTo(0)
	assert.Equal(t, 3, b.SkipPast('\n'))
	b.GoTo(0)
	assert.Equal(t, 2, b.SkipToEOL())

	// Skipping to a missing byte stops at the end.
	b.GoTo(0)
	assert.Equal(t, 5, b.SkipTo('z'))
}

func TestMatchRegex(t *testing.T) {
	b := New("abc123xyz")
	matched, ok := b.MatchRegex(`[a-z]+`)
	require.True(t, ok)
	assert.Equal(t, "abc", matched)
	assert.Equal(t, 3, b.Pos())

	// Anchored: a pattern that only matches later in the text fails
	// and leaves the cursor alone.
	_, ok = b.MatchRegex(`xyz`)
	assert.False(t, ok)
	assert.Equal(t, 3, b.Pos())

	matched, ok = b.MatchRegex(`[0-9]+`)
	require.True(t, ok)
	assert.Equal(t, "123", matched)

	// The same pattern hits the per-buffer cache.
	matched, ok = b.MatchRegex(`[a-z]+`)
	require.True(t, ok)
	assert.Equal(t, "xyz", matched)
	assert.True(t, b.AtEnd())
}

func TestMatchRegexEmptyMatch(t *testing.T) {
	b := New("abc")
	matched, ok := b.MatchRegex(`x?`)
	require.True(t, ok)
	assert.Equal(t, "", matched)
	assert.Equal(t, 0, b.Pos())
}

func TestMatchRegexMultiline(t *testing.T) {
	// The dot does not cross line boundaries.
	b := New("ab\ncd")
	matched, ok := b.MatchRegex(`.+`)
	require.True(t, ok)
	assert.Equal(t, "ab", matched)
}

func TestMatchRegexInvalidPattern(t *testing.T) {
	b := New("abc")
	_, ok := b.MatchRegex(`[`)
	assert.False(t, ok)
	assert.Equal(t, 0, b.Pos())

	// The failed compile is cached too.
	_, ok = b.MatchRegex(`[`)
	assert.False(t, ok)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.Nil(t, os.WriteFile(path, []byte("hello"), 0o644))

	b, err := FromFile(path)
	require.Nil(t, err)
	assert.Equal(t, "hello", b.Text())
	assert.Equal(t, 5, b.Len())

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.NotNil(t, err)
}
