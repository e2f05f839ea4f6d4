package parser

import (
	"github.com/hashicorp/go-multierror"

	"github.com/lambdafu/grakopp/ast"
	"github.com/lambdafu/grakopp/errors"
)

// Token skips whitespace, then matches the literal token at the
// cursor. Success yields a Leaf holding the token.
func (p *Parser) Token(token string) *ast.Ast {
	p.buf.NextToken()
	if !p.buf.Match(token) {
		return ast.NewFailure(errors.NewFailedToken(token))
	}
	p.log.Trace().Str("token", token).Int("pos", p.buf.Pos()).Msg("matched token")
	return ast.NewLeaf(token)
}

// Pattern matches the regular expression pattern anchored at the
// cursor. Success yields a Leaf holding the matched text. Unlike
// Token, Pattern does not skip leading whitespace.
func (p *Parser) Pattern(pattern string) *ast.Ast {
	text, ok := p.buf.MatchRegex(pattern)
	if !ok {
		return ast.NewFailure(errors.NewFailedPattern(pattern))
	}
	p.log.Trace().Str("pattern", pattern).Str("text", text).Int("pos", p.buf.Pos()).Msg("matched pattern")
	return ast.NewLeaf(text)
}

// Fail yields an unconditional parse failure.
func (p *Parser) Fail() *ast.Ast {
	return ast.NewFailure(errors.NewFailedParse("fail"))
}

// CheckEOF skips whitespace and succeeds with Empty only at the end of
// the text.
func (p *Parser) CheckEOF() *ast.Ast {
	p.buf.NextToken()
	if !p.buf.AtEnd() {
		return ast.NewFailure(errors.NewFailedParse("Expecting end of text."))
	}
	return ast.NewEmpty()
}

// Cut commits the enclosing choice to the current alternative. It
// yields an Empty whose cut flag is set, so that merging it into the
// accumulator marks the surrounding scope, and it discards every
// packrat entry at or before the current position: committed input is
// never re-parsed, so those memos can no longer be reached.
func (p *Parser) Cut() *ast.Ast {
	node := ast.NewEmpty()
	node.SetCut(true)
	pos := p.buf.Pos()
	dropped := 0
	for at, bucket := range p.memo {
		if at <= pos {
			dropped += len(bucket)
			delete(p.memo, at)
		}
	}
	if dropped > 0 {
		p.log.Trace().Int("pos", pos).Int("dropped", dropped).Msg("cut dropped memo entries")
	}
	return node
}

// Try invokes f and restores the position and state if the result is a
// Failure. The result is propagated either way.
func (p *Parser) Try(f Producer) *ast.Ast {
	pos, state := p.buf.Pos(), p.state
	node := f()
	if node.IsFailure() {
		p.buf.GoTo(pos)
		p.state = state
	}
	return node
}

// Choice delimits the scope of a disjunction. It has no behavior
// beyond Try; the grammar compiler emits it so the scope is explicit.
func (p *Parser) Choice(f Producer) *ast.Ast {
	return p.Try(f)
}

// Option invokes f as one tentative alternative of a choice. A plain
// Failure means the option did not fire: success is cleared and Empty
// is returned. Any other outcome, including a Failure whose cut flag
// is set, reports success so the enclosing choice stops trying further
// alternatives; the result's cut flag is cleared before it is
// returned, so the commitment does not escape the choice.
func (p *Parser) Option(success *bool, f Producer) *ast.Ast {
	node := p.Try(f)
	if node.IsFailure() && !node.Cut() {
		*success = false
		return ast.NewEmpty()
	}
	*success = true
	node.SetCut(false)
	return node
}

// Optional invokes f and converts a plain Failure into Empty.
func (p *Parser) Optional(f Producer) *ast.Ast {
	var success bool
	return p.Option(&success, f)
}

// Group invokes f and, if the result is a Sequence, marks it mergeable
// so its items splice into the enclosing sequence rather than nesting.
func (p *Parser) Group(f Producer) *ast.Ast {
	node := f()
	node.SetMergeable(true)
	return node
}

// If is the positive lookahead: it invokes f, always restores the
// position and state, and reduces a success to Empty. Failures pass
// through unchanged. The body of a lookahead is not memoized.
func (p *Parser) If(f Producer) *ast.Ast {
	pos, state := p.buf.Pos(), p.state
	p.lookaheads++
	node := f()
	p.lookaheads--
	p.buf.GoTo(pos)
	p.state = state
	if node.IsFailure() {
		return node
	}
	return ast.NewEmpty()
}

// IfNot is the negative lookahead: a failing body yields Empty, a
// matching body yields a FailedLookahead.
func (p *Parser) IfNot(f Producer) *ast.Ast {
	node := p.If(f)
	if node.IsFailure() {
		return ast.NewEmpty()
	}
	return ast.NewFailure(errors.NewFailedLookahead())
}

// Closure matches f zero or more times and yields a Sequence of the
// results. A successful iteration that does not advance the cursor is
// an "empty closure" failure, preventing an infinite loop on a
// production that matches the empty string. A plain Failure ends the
// closure; a Failure carrying a cut is fatal and propagates.
func (p *Parser) Closure(f Producer) *ast.Ast {
	acc := ast.NewSequence()
	for {
		pos := p.buf.Pos()
		node := p.Try(f)
		if !node.IsFailure() && pos == p.buf.Pos() {
			return ast.NewFailure(errors.NewFailedParse("empty closure"))
		}
		if node.IsFailure() {
			if node.Cut() {
				return node
			}
			return acc
		}
		acc.Add(node)
	}
}

// PositiveClosure matches f one or more times. The mandatory first
// match seeds the Sequence; the remaining matches come from Closure,
// spliced in so the result stays flat.
func (p *Parser) PositiveClosure(f Producer) *ast.Ast {
	acc := ast.NewSequence()
	acc.Add(f())
	if acc.IsFailure() {
		return acc
	}
	tail := p.Closure(f)
	tail.SetMergeable(true)
	return acc.Add(tail)
}

// Call invokes the named rule through the packrat cache.
//
// On a cache hit the recorded position and state are restored and the
// cached result is returned without invoking f. Otherwise f runs, the
// replacement key "@" is applied if the rule produced one, the
// semantic action for the rule (if any) may transform the result, and
// the outcome is recorded in the cache so retries at this position are
// O(1). If the result is a Failure the position and state are restored
// for the caller.
//
// Rules whose name starts with a lowercase letter skip leading
// whitespace before their body runs.
func (p *Parser) Call(name string, f Producer) *ast.Ast {
	pos, state := p.buf.Pos(), p.state
	key := memoKey{rule: name, state: state}
	memoize := p.lookaheads == 0
	if memoize {
		if entry, ok := p.memo[pos][key]; ok {
			p.log.Trace().Str("rule", name).Int("pos", pos).Msg("memo hit")
			p.buf.GoTo(entry.pos)
			p.state = entry.state
			return entry.node
		}
	}
	if name != "" && name[0] >= 'a' && name[0] <= 'z' {
		p.buf.NextToken()
	}
	p.log.Trace().Str("rule", name).Int("pos", p.buf.Pos()).Msg("enter rule")

	node := f()

	if replacement, ok := node.Value(ast.Replace); ok {
		node = replacement
	}
	if p.semantics != nil && !node.IsFailure() {
		if action, ok := p.semantics.Action(name); ok {
			node = action(node)
		}
	}
	if node.IsFailure() {
		p.log.Trace().Str("rule", name).Int("pos", pos).Str("error", node.Failure().Message()).Msg("rule failed")
		p.buf.GoTo(pos)
		p.state = state
	}
	if memoize {
		bucket, ok := p.memo[pos]
		if !ok {
			bucket = make(map[memoKey]memoEntry)
			p.memo[pos] = bucket
		}
		bucket[key] = memoEntry{node: node, pos: p.buf.Pos(), state: p.state}
	}
	return node
}

// Choose runs the alternatives of a choice in order and returns the
// first successful result. An alternative that fails past a cut ends
// the choice immediately. If every alternative fails, the collected
// failures are folded into a single FailedParse enumerating them.
func (p *Parser) Choose(alternatives ...Producer) *ast.Ast {
	var all *multierror.Error
	for _, alt := range alternatives {
		node := p.Try(alt)
		if !node.IsFailure() || node.Cut() {
			node.SetCut(false)
			return node
		}
		all = multierror.Append(all, node.Failure())
	}
	if all == nil {
		return ast.NewFailure(errors.NewFailedParse("no available options"))
	}
	all.ErrorFormat = func(errs []error) string {
		msg := "no available options:"
		for _, err := range errs {
			msg += " " + err.Error() + ";"
		}
		return msg[:len(msg)-1]
	}
	return ast.NewFailure(errors.NewFailedParse(all.Error()))
}
