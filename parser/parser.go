// Package parser implements the combinator engine a generated PEG
// parser is built on.
//
// The grammar compiler emits one method per grammar rule; each method
// body composes the primitives defined here (Token, Pattern, Call,
// Try, Option, Closure, and the rest) to consume input and assemble an
// ast.Ast. Rule entry goes through Call, which consults the packrat
// memoization cache and applies the optional semantic actions.
//
// A Parser is an owned mutable unit: its buffer cursor, user state,
// and packrat cache form one logical resource. Two concurrent parses
// require two independent Parsers.
package parser

import (
	"github.com/rs/zerolog"

	"github.com/lambdafu/grakopp/ast"
	"github.com/lambdafu/grakopp/buffer"
)

// State is the user-defined value carried alongside the cursor. It is
// saved and restored together with the position by Try, the
// lookaheads, and cache lookups, and it is part of the packrat cache
// key, so it must be a comparable value.
type State any

// Producer is a zero-argument function producing the Ast for one
// grammar element. Generated rule bodies pass Producers to the
// combinators so that sub-results are built lazily.
type Producer func() *ast.Ast

// Action transforms the result of a successful rule.
type Action func(*ast.Ast) *ast.Ast

// Semantics supplies one action per rule, invoked by Call on
// successful rule results. An action may return any Ast, including a
// Failure to reject the parse after the fact.
type Semantics interface {
	// Action returns the action registered for the named rule.
	Action(rule string) (Action, bool)
}

// SemanticMap is a Semantics backed by a plain map.
type SemanticMap map[string]Action

// Action implements Semantics.
func (m SemanticMap) Action(rule string) (Action, bool) {
	action, ok := m[rule]
	return action, ok
}

// memoKey identifies a memoized rule invocation at one position. The
// position itself keys the outer cache level so that the cut operator
// can discard whole positions at once.
type memoKey struct {
	rule  string
	state State
}

type memoEntry struct {
	node  *ast.Ast
	pos   int
	state State
}

// Parser drives a single parse over a Buffer.
type Parser struct {
	buf       *buffer.Buffer
	state     State
	semantics Semantics
	log       zerolog.Logger

	// Packrat cache, keyed by position first so Cut can drop every
	// entry at or before the commit point.
	memo map[int]map[memoKey]memoEntry

	// Lookahead nesting depth. While positive, Call bypasses the
	// cache entirely: lookahead bodies are not memoized.
	lookaheads int
}

// Option configures a Parser.
type Option func(*Parser)

// WithState sets the initial user state.
func WithState(state State) Option {
	return func(p *Parser) {
		p.state = state
	}
}

// WithSemantics registers the semantic actions applied by Call.
func WithSemantics(semantics Semantics) Option {
	return func(p *Parser) {
		p.semantics = semantics
	}
}

// WithLogger sets the logger used for parse tracing. Tracing is
// disabled by default.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// New returns a Parser reading from the given buffer.
func New(buf *buffer.Buffer, opts ...Option) *Parser {
	p := &Parser{
		buf:  buf,
		log:  zerolog.Nop(),
		memo: make(map[int]map[memoKey]memoEntry),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Buffer returns the parser's input buffer.
func (p *Parser) Buffer() *buffer.Buffer {
	return p.buf
}

// State returns the current user state.
func (p *Parser) State() State {
	return p.state
}

// SetState replaces the current user state.
func (p *Parser) SetState(state State) {
	p.state = state
}
