package grakopp

import (
	"github.com/rs/zerolog"

	"github.com/lambdafu/grakopp/buffer"
	"github.com/lambdafu/grakopp/parser"
)

// Option describes a function used to configure a parse.
type Option func(*config)

type config struct {
	whitespace string
	nameguard  bool
	comments   string
	semantics  parser.Semantics
	state      parser.State
	logger     *zerolog.Logger
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) bufferOptions() []buffer.Option {
	opts := []buffer.Option{
		buffer.WithWhitespace(c.whitespace),
		buffer.WithNameguard(c.nameguard),
	}
	if c.comments != "" {
		opts = append(opts, buffer.WithComments(c.comments))
	}
	return opts
}

func (c *config) parserOptions() []parser.Option {
	var opts []parser.Option
	if c.semantics != nil {
		opts = append(opts, parser.WithSemantics(c.semantics))
	}
	if c.state != nil {
		opts = append(opts, parser.WithState(c.state))
	}
	if c.logger != nil {
		opts = append(opts, parser.WithLogger(*c.logger))
	}
	return opts
}

// WithWhitespace sets the characters skipped between tokens. An empty
// string disables whitespace skipping.
func WithWhitespace(whitespace string) Option {
	return func(cfg *config) {
		cfg.whitespace = whitespace
	}
}

// WithNameguard prevents an entirely alphanumeric token from matching
// inside a longer identifier-like run.
func WithNameguard(on bool) Option {
	return func(cfg *config) {
		cfg.nameguard = on
	}
}

// WithComments sets a pattern for comments, skipped between tokens
// along with whitespace.
func WithComments(pattern string) Option {
	return func(cfg *config) {
		cfg.comments = pattern
	}
}

// WithSemantics registers semantic actions, invoked per rule on
// successful rule results.
func WithSemantics(semantics parser.Semantics) Option {
	return func(cfg *config) {
		cfg.semantics = semantics
	}
}

// WithState sets the initial user state carried alongside the cursor.
// The value must be comparable; it participates in the packrat cache
// key.
func WithState(state parser.State) Option {
	return func(cfg *config) {
		cfg.state = state
	}
}

// WithLogger enables parse tracing through the given logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = &logger
	}
}
