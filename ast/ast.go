// Package ast defines the result tree produced by a parse.
//
// An Ast is a tagged sum over five variants: Empty, Leaf, Sequence,
// Named, and Failure. Generated rule bodies build their result by
// merging child values into an accumulator with Add, and by installing
// named captures with SetKey. The merge rules implement concatenation
// semantics for concrete rule bodies (Leaf and Sequence) and keyed
// assembly for abstract rule bodies (Named).
//
// External users typically switch on Kind():
//
//	switch node.Kind() {
//	case ast.LEAF:
//		// do something with node.Leaf()
//	case ast.SEQUENCE:
//		// do something with node.Items()
//	}
package ast

import "github.com/lambdafu/grakopp/errors"

// Kind of an Ast node as a string.
type Kind string

// Kind constants
const (
	EMPTY    Kind = "empty"
	LEAF     Kind = "leaf"
	SEQUENCE Kind = "sequence"
	NAMED    Kind = "named"
	FAILURE  Kind = "failure"
)

// Replace is the reserved key that designates the replacement value
// returned from the enclosing rule call. SetKey never lists it in a
// Named node's key order.
const Replace = "@"

// Key declares one named capture of an abstract rule body. A ForceList
// key starts out as an empty Sequence so that single captures still
// accumulate into a list.
type Key struct {
	Name      string
	ForceList bool
}

// Ast is one node of the result tree. The zero value is not useful;
// use the New* constructors. An Ast additionally carries a cut flag,
// which records that a cut operator was seen while the node was being
// assembled and is propagated by Add.
type Ast struct {
	kind      Kind
	leaf      string
	items     []*Ast
	mergeable bool
	order     []string
	values    map[string]*Ast
	err       *errors.ParseError
	cut       bool
}

// NewEmpty returns an Empty node, the identity element for Add.
func NewEmpty() *Ast {
	return &Ast{kind: EMPTY}
}

// NewLeaf returns a Leaf node holding a matched token or capture.
func NewLeaf(text string) *Ast {
	return &Ast{kind: LEAF, leaf: text}
}

// NewSequence returns a Sequence node with the given children.
func NewSequence(items ...*Ast) *Ast {
	return &Ast{kind: SEQUENCE, items: items}
}

// NewNamed returns a Named node. The given keys are pre-declared in
// order; ForceList keys start as empty Sequences, the rest as Empty.
func NewNamed(keys ...Key) *Ast {
	node := &Ast{kind: NAMED, values: make(map[string]*Ast, len(keys))}
	for _, key := range keys {
		node.order = append(node.order, key.Name)
		if key.ForceList {
			node.values[key.Name] = NewSequence()
		} else {
			node.values[key.Name] = NewEmpty()
		}
	}
	return node
}

// NewFailure returns a Failure node carrying the given parse error.
func NewFailure(err *errors.ParseError) *Ast {
	return &Ast{kind: FAILURE, err: err}
}

// Kind returns the variant of this node.
func (a *Ast) Kind() Kind {
	return a.kind
}

// IsEmpty reports whether the node is the Empty variant.
func (a *Ast) IsEmpty() bool {
	return a.kind == EMPTY
}

// IsFailure reports whether the node is the Failure variant.
func (a *Ast) IsFailure() bool {
	return a.kind == FAILURE
}

// Leaf returns the text of a Leaf node, or "" for other variants.
func (a *Ast) Leaf() string {
	if a.kind != LEAF {
		return ""
	}
	return a.leaf
}

// Items returns the children of a Sequence node, or nil for other
// variants. The returned slice is the node's own storage.
func (a *Ast) Items() []*Ast {
	if a.kind != SEQUENCE {
		return nil
	}
	return a.items
}

// Mergeable reports whether a Sequence splices its items into the
// augend on merge instead of being appended as a single element.
func (a *Ast) Mergeable() bool {
	return a.kind == SEQUENCE && a.mergeable
}

// SetMergeable marks or unmarks a Sequence as mergeable. It is a no-op
// for other variants. Mergeability is a property of the right-hand
// side of a merge only; it has no effect once the node has been merged.
func (a *Ast) SetMergeable(mergeable bool) {
	if a.kind == SEQUENCE {
		a.mergeable = mergeable
	}
}

// Order returns the declaration-ordered keys of a Named node.
func (a *Ast) Order() []string {
	return a.order
}

// Value returns the value stored at key in a Named node.
func (a *Ast) Value(key string) (*Ast, bool) {
	if a.kind != NAMED {
		return nil, false
	}
	value, ok := a.values[key]
	return value, ok
}

// Failure returns the parse error of a Failure node, or nil.
func (a *Ast) Failure() *errors.ParseError {
	if a.kind != FAILURE {
		return nil
	}
	return a.err
}

// Cut reports whether a cut operator was recorded on this node.
func (a *Ast) Cut() bool {
	return a.cut
}

// SetCut sets or clears the cut flag.
func (a *Ast) SetCut(cut bool) {
	a.cut = cut
}

// adopt replaces the node's content with the addend's content. The cut
// flag is left alone; Add handles it separately.
func (a *Ast) adopt(addend *Ast) {
	a.kind = addend.kind
	a.leaf = addend.leaf
	a.items = addend.items
	a.mergeable = addend.mergeable
	a.order = addend.order
	a.values = addend.values
	a.err = addend.err
}

// become turns the node into a fresh Sequence with the given items.
func (a *Ast) become(items []*Ast) {
	a.kind = SEQUENCE
	a.leaf = ""
	a.items = items
	a.mergeable = false
	a.order = nil
	a.values = nil
	a.err = nil
}

// Add merges addend into the node in place and returns the node. The
// addend is consumed logically: it is not mutated, but its contents may
// be shared with the augend afterwards.
//
// An Empty addend contributes nothing but its cut flag. A Failure
// addend replaces the augend. Leaf, Sequence, and Named addends
// concatenate per the augend variant: an Empty augend takes the
// addend's content, a Leaf augend becomes a two-element Sequence, a
// Sequence augend appends (or splices, if the addend is a mergeable
// Sequence), and a Named augend ignores the addend. Named nodes receive
// their contents through SetKey, never through Add.
func (a *Ast) Add(addend *Ast) *Ast {
	if addend.cut {
		a.cut = true
	}
	switch addend.kind {
	case EMPTY:
		return a
	case FAILURE:
		a.kind = FAILURE
		a.leaf = ""
		a.items = nil
		a.mergeable = false
		a.order = nil
		a.values = nil
		a.err = addend.err
		return a
	}
	mergeable := addend.kind == SEQUENCE && addend.mergeable
	switch a.kind {
	case EMPTY:
		a.adopt(addend)
	case LEAF:
		first := NewLeaf(a.leaf)
		if mergeable {
			a.become(append([]*Ast{first}, addend.items...))
		} else {
			a.become([]*Ast{first, addend})
		}
	case SEQUENCE:
		if mergeable {
			a.items = append(a.items, addend.items...)
		} else {
			a.items = append(a.items, addend)
		}
	case NAMED:
		// Plain merges into a Named drop their payload; named
		// assembly goes through SetKey.
	case FAILURE:
		// A failure absorbs everything merged after it.
	}
	return a
}

// SetKey implements the named capture assignment ast[key] <- value.
//
// A Failure value replaces the node entirely. Otherwise the node is
// coerced to a Named (covering nested named items such as a capture
// inside a group), an Empty is installed at key if the key is not yet
// present, and value is merged into the entry at key per the Add rules.
// The Replace key is kept out of the key order.
func (a *Ast) SetKey(key string, value *Ast) *Ast {
	if value.kind == FAILURE {
		a.kind = FAILURE
		a.leaf = ""
		a.items = nil
		a.mergeable = false
		a.order = nil
		a.values = nil
		a.err = value.err
		a.cut = value.cut || a.cut
		return a
	}
	if a.kind != NAMED {
		a.kind = NAMED
		a.leaf = ""
		a.items = nil
		a.mergeable = false
		a.order = nil
		a.values = make(map[string]*Ast)
		a.err = nil
	}
	entry, ok := a.values[key]
	if !ok {
		entry = NewEmpty()
		a.values[key] = entry
		if key != Replace {
			a.order = append(a.order, key)
		}
	}
	entry.Add(value)
	return a
}

// Put installs value at key in a Named node directly, without the
// merge semantics of SetKey, appending the key to the order if it is
// new. The deserializer uses it to rebuild Named nodes whose values
// are data, including Failure values. It panics on a non-Named node.
func (a *Ast) Put(key string, value *Ast) {
	if a.kind != NAMED {
		panic("ast: Put on a non-Named node")
	}
	if _, ok := a.values[key]; !ok {
		a.order = append(a.order, key)
	}
	a.values[key] = value
}

// Equal reports structural equality per variant. Sequences compare
// element-wise, Named nodes compare key order and values, Failures
// compare type and message. The cut and mergeable flags take no part
// in equality.
func (a *Ast) Equal(other *Ast) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.kind != other.kind {
		return false
	}
	switch a.kind {
	case EMPTY:
		return true
	case LEAF:
		return a.leaf == other.leaf
	case SEQUENCE:
		if len(a.items) != len(other.items) {
			return false
		}
		for i, item := range a.items {
			if !item.Equal(other.items[i]) {
				return false
			}
		}
		return true
	case NAMED:
		if len(a.order) != len(other.order) || len(a.values) != len(other.values) {
			return false
		}
		for i, key := range a.order {
			if key != other.order[i] {
				return false
			}
		}
		for key, value := range a.values {
			otherValue, ok := other.values[key]
			if !ok || !value.Equal(otherValue) {
				return false
			}
		}
		return true
	case FAILURE:
		return a.err.Equal(other.err)
	}
	return false
}
