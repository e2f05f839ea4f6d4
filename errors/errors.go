// Package errors defines the closed set of parse-failure kinds produced
// by the parser runtime.
//
// During a parse, failures travel as Ast values rather than Go errors;
// a ParseError is the payload such a failure carries. ParseError also
// implements the error interface so that a root-level failure can be
// returned directly to the caller once the parse is over.
package errors

import "fmt"

// Failure type discriminators, as used by the serializer.
const (
	FailedParseType     = "FailedParse"
	FailedTokenType     = "FailedToken"
	FailedPatternType   = "FailedPattern"
	FailedLookaheadType = "FailedLookahead"
)

// ParseError describes a single parse failure. Two ParseErrors are
// considered equal when their type and message match.
type ParseError struct {
	errType string
	message string
}

// NewFailedParse returns the failure used for explicit fail operators,
// empty closures, and grammar-emitted errors.
func NewFailedParse(message string) *ParseError {
	return &ParseError{errType: FailedParseType, message: message}
}

// NewFailedToken returns the failure produced when a literal token does
// not match at the cursor.
func NewFailedToken(token string) *ParseError {
	return &ParseError{
		errType: FailedTokenType,
		message: `expecting "` + token + `"`,
	}
}

// NewFailedPattern returns the failure produced when a pattern does not
// match at the cursor.
func NewFailedPattern(pattern string) *ParseError {
	return &ParseError{
		errType: FailedPatternType,
		message: `expecting "` + pattern + `"`,
	}
}

// NewFailedLookahead returns the failure produced by an inverted
// lookahead whose body matched.
func NewFailedLookahead() *ParseError {
	return &ParseError{errType: FailedLookaheadType, message: "failed lookahead"}
}

// New returns a ParseError with the given type discriminator and
// message. The type must be one of the closed set; this is used by the
// serialization reader, which reconstructs failures from their textual
// form.
func New(errType, message string) (*ParseError, error) {
	if !KnownType(errType) {
		return nil, fmt.Errorf("unknown parse error type %q", errType)
	}
	return &ParseError{errType: errType, message: message}, nil
}

// KnownType reports whether errType is one of the closed set of failure
// type discriminators.
func KnownType(errType string) bool {
	switch errType {
	case FailedParseType, FailedTokenType, FailedPatternType, FailedLookaheadType:
		return true
	}
	return false
}

// Type returns the type discriminator of the failure, e.g. "FailedToken".
func (e *ParseError) Type() string {
	return e.errType
}

// Message returns the human-readable detail of the failure.
func (e *ParseError) Message() string {
	return e.message
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.message
}

// Equal reports whether two failures have the same type and message.
func (e *ParseError) Equal(other *ParseError) bool {
	if other == nil {
		return e == nil
	}
	return e.errType == other.errType && e.message == other.message
}
