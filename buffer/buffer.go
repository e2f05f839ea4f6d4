// Package buffer provides the input text and cursor for a parse.
//
// A Buffer holds an immutable byte string and a cursor position, and
// exposes the token, pattern, whitespace, and nameguard matching
// primitives the combinators are built on. Operations advance the
// cursor only on the documented success paths; callers that need to
// be transactional snapshot and restore the position themselves.
//
// Scanning is byte-level: whitespace, nameguard, and navigation
// helpers all operate on single bytes.
package buffer

import (
	"os"
	"regexp"
	"strings"
)

// EOT is returned by the character accessors when the requested
// position is past the end of the text.
const EOT byte = 0

// Buffer is the input to a single parse. It is constructed once per
// parse and must not be shared across concurrent parses.
type Buffer struct {
	text       string
	pos        int
	whitespace string
	nameguard  bool
	comments   *regexp.Regexp

	// Compiled patterns, cached per buffer keyed by their source text.
	patterns map[string]*regexp.Regexp
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithWhitespace sets the characters skipped between tokens. An empty
// string disables whitespace skipping.
func WithWhitespace(whitespace string) Option {
	return func(b *Buffer) {
		b.whitespace = whitespace
	}
}

// WithNameguard controls whether a token that is entirely alphanumeric
// refuses to match when it would end inside a longer identifier-like
// run, preventing "if" from matching inside "iffy".
func WithNameguard(on bool) Option {
	return func(b *Buffer) {
		b.nameguard = on
	}
}

// WithComments sets a pattern for comments, which NextToken consumes
// along with whitespace. The pattern is matched at the cursor; it
// panics if the pattern does not compile.
func WithComments(pattern string) Option {
	return func(b *Buffer) {
		b.comments = regexp.MustCompile(anchored(pattern))
	}
}

// New returns a Buffer over the given text with the cursor at zero.
func New(text string, opts ...Option) *Buffer {
	b := &Buffer{text: text, patterns: make(map[string]*regexp.Regexp)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromFile returns a Buffer over the contents of the named file.
func FromFile(path string, opts ...Option) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(string(data), opts...), nil
}

// Text returns the full input text.
func (b *Buffer) Text() string {
	return b.text
}

// Len returns the length of the input text.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Pos returns the cursor position.
func (b *Buffer) Pos() int {
	return b.pos
}

// AtEnd reports whether the cursor is at or past the end of the text.
func (b *Buffer) AtEnd() bool {
	return b.pos >= len(b.text)
}

// AtEOL reports whether the cursor is at the end of a line or of the
// text.
func (b *Buffer) AtEOL() bool {
	return b.AtEnd() || b.text[b.pos] == '\r' || b.text[b.pos] == '\n'
}

// Current returns the byte at the cursor, or EOT at the end.
func (b *Buffer) Current() byte {
	return b.At(b.pos)
}

// At returns the byte at the given position, or EOT past the end.
func (b *Buffer) At(pos int) byte {
	if pos < 0 || pos >= len(b.text) {
		return EOT
	}
	return b.text[pos]
}

// Peek returns the byte at the given offset from the cursor.
func (b *Buffer) Peek(off int) byte {
	return b.At(b.pos + off)
}

// Next returns the byte at the cursor and advances past it, or returns
// EOT without moving at the end.
func (b *Buffer) Next() byte {
	if b.AtEnd() {
		return EOT
	}
	ch := b.text[b.pos]
	b.pos++
	return ch
}

// GoTo moves the cursor to pos, clamped to [0, Len].
func (b *Buffer) GoTo(pos int) {
	switch {
	case pos < 0:
		b.pos = 0
	case pos > len(b.text):
		b.pos = len(b.text)
	default:
		b.pos = pos
	}
}

// Move advances the cursor by off, clamped to [0, Len].
func (b *Buffer) Move(off int) {
	b.GoTo(b.pos + off)
}

// SkipTo advances the cursor to the next occurrence of ch (or the end)
// and returns the new position.
func (b *Buffer) SkipTo(ch byte) int {
	pos := b.pos
	for pos < len(b.text) && b.text[pos] != ch {
		pos++
	}
	b.GoTo(pos)
	return pos
}

// SkipPast advances the cursor past the next occurrence of ch and
// returns the new position.
func (b *Buffer) SkipPast(ch byte) int {
	b.SkipTo(ch)
	b.Next()
	return b.pos
}

// SkipToEOL advances the cursor to the next newline and returns the
// new position.
func (b *Buffer) SkipToEOL() int {
	return b.SkipTo('\n')
}

// NextToken skips whitespace and comments until a fixpoint. It is
// idempotent.
func (b *Buffer) NextToken() {
	for {
		pos := b.pos
		if b.whitespace != "" {
			for !b.AtEnd() && strings.IndexByte(b.whitespace, b.text[b.pos]) >= 0 {
				b.pos++
			}
		}
		if b.comments != nil {
			if loc := b.comments.FindStringIndex(b.text[b.pos:]); loc != nil {
				b.pos += loc[1]
			}
		}
		if pos == b.pos {
			return
		}
	}
}

func isNameByte(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isAlnumByte(ch byte) bool {
	return isNameByte(ch) || ch >= '0' && ch <= '9'
}

// isNameChar reports whether the byte at pos is alphabetic.
func (b *Buffer) isNameChar(pos int) bool {
	ch := b.At(pos)
	return ch != EOT && isNameByte(ch)
}

// Match advances the cursor past token and returns true if token is a
// literal prefix of the remaining text, and returns false with the
// cursor unchanged otherwise. An empty token always matches without
// moving. With the nameguard enabled, an entirely alphanumeric token
// that starts with an alphabetic character and whose match would be
// followed by another alphabetic character is rejected.
func (b *Buffer) Match(token string) bool {
	if len(token) == 0 {
		return true
	}
	if !strings.HasPrefix(b.text[b.pos:], token) {
		return false
	}
	if b.nameguard && b.isNameChar(b.pos) && b.isNameChar(b.pos+len(token)) {
		alnum := true
		for i := 0; i < len(token); i++ {
			if !isAlnumByte(token[i]) {
				alnum = false
				break
			}
		}
		if alnum {
			return false
		}
	}
	b.Move(len(token))
	return true
}

// anchored wraps a pattern so it matches exactly at the start of the
// remaining text, with multiline semantics.
func anchored(pattern string) string {
	return `\A(?m:` + pattern + `)`
}

// MatchRegex matches pattern anchored at the cursor. On success it
// returns the matched text and advances the cursor past it; on failure
// (including a pattern that does not compile) it returns false and
// leaves the cursor unchanged. Compiled patterns are cached on the
// buffer.
func (b *Buffer) MatchRegex(pattern string) (string, bool) {
	re, ok := b.patterns[pattern]
	if !ok {
		re, _ = regexp.Compile(anchored(pattern))
		b.patterns[pattern] = re
	}
	if re == nil {
		return "", false
	}
	loc := re.FindStringIndex(b.text[b.pos:])
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	matched := b.text[b.pos : b.pos+loc[1]]
	b.pos += loc[1]
	return matched, true
}
