package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailureMessages(t *testing.T) {
	tests := []struct {
		err     *ParseError
		errType string
		message string
	}{
		{NewFailedParse("fail"), FailedParseType, "fail"},
		{NewFailedToken("baz"), FailedTokenType, `expecting "baz"`},
		{NewFailedPattern(`[0-9]+`), FailedPatternType, `expecting "[0-9]+"`},
		{NewFailedLookahead(), FailedLookaheadType, "failed lookahead"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.errType, tt.err.Type())
		assert.Equal(t, tt.message, tt.err.Message())
		assert.Equal(t, tt.message, tt.err.Error())
	}
}

func TestEquality(t *testing.T) {
	assert.True(t, NewFailedToken("a").Equal(NewFailedToken("a")))
	assert.False(t, NewFailedToken("a").Equal(NewFailedToken("b")))

	// Same message, different type.
	tok, err := New(FailedTokenType, "oops")
	require.Nil(t, err)
	pat, err := New(FailedPatternType, "oops")
	require.Nil(t, err)
	assert.False(t, tok.Equal(pat))

	var nilErr *ParseError
	assert.False(t, tok.Equal(nil))
	assert.True(t, nilErr.Equal(nil))
}

func TestNewRejectsUnknownTypes(t *testing.T) {
	_, err := New("FailedBogus", "nope")
	require.NotNil(t, err)

	for _, errType := range []string{
		FailedParseType, FailedTokenType, FailedPatternType, FailedLookaheadType,
	} {
		assert.True(t, KnownType(errType))
	}
	assert.False(t, KnownType("Failed"))
}
