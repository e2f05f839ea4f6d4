// Package grakopp is the runtime support library for generated PEG
// parsers.
//
// A grammar compiler emits one Go method per grammar rule; each method
// composes the combinators in the parser package to consume input from
// a buffer.Buffer and assemble an ast.Ast result tree. This package is
// the facade over those pieces: it builds a configured parser for an
// input text and converts a root-level parse failure into a Go error.
//
// A minimal generated parser looks like:
//
//	type Calc struct {
//		*parser.Parser
//	}
//
//	func (c *Calc) Start() *ast.Ast {
//		return c.Call("start", func() *ast.Ast {
//			node := ast.NewEmpty()
//			node.Add(c.Token("foo"))
//			if node.IsFailure() {
//				return node
//			}
//			node.Add(c.CheckEOF())
//			return node
//		})
//	}
//
// and is driven with:
//
//	tree, err := grakopp.Parse(input, func(p *parser.Parser) *ast.Ast {
//		return (&Calc{p}).Start()
//	}, grakopp.WithWhitespace(" \t\n"))
package grakopp

import (
	"github.com/lambdafu/grakopp/ast"
	"github.com/lambdafu/grakopp/buffer"
	"github.com/lambdafu/grakopp/parser"
)

// Rule is a start rule of a generated parser.
type Rule func(*parser.Parser) *ast.Ast

// New returns a parser over the given input text, configured by the
// supplied options.
func New(text string, opts ...Option) *parser.Parser {
	cfg := newConfig(opts)
	buf := buffer.New(text, cfg.bufferOptions()...)
	return parser.New(buf, cfg.parserOptions()...)
}

// NewFromFile returns a parser over the contents of the named file.
func NewFromFile(path string, opts ...Option) (*parser.Parser, error) {
	cfg := newConfig(opts)
	buf, err := buffer.FromFile(path, cfg.bufferOptions()...)
	if err != nil {
		return nil, err
	}
	return parser.New(buf, cfg.parserOptions()...), nil
}

// Parse runs the given start rule over the input text and returns the
// result tree. A root-level failure is returned as the error it
// carries; the tree is nil in that case.
func Parse(text string, start Rule, opts ...Option) (*ast.Ast, error) {
	p := New(text, opts...)
	node := start(p)
	if node.IsFailure() {
		return nil, node.Failure()
	}
	return node, nil
}
