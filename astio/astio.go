// Package astio reads and writes the textual serialization of Ast
// trees.
//
// The format is JSON-like: Empty is "null", a Leaf is a quoted string,
// a Sequence is a bracketed list, a Named is a braced map whose pairs
// appear in key order, and a Failure is Type("message"). It is used
// for snapshot testing and by the astify and astcmp tools. Read is the
// inverse of Write for every tree built from the supported values.
package astio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lambdafu/grakopp/ast"
	"github.com/lambdafu/grakopp/errors"
)

// Write serializes node to w.
func Write(w io.Writer, node *ast.Ast) error {
	return write(w, node)
}

// String returns the serialized form of node.
func String(node *ast.Ast) string {
	var sb strings.Builder
	write(&sb, node)
	return sb.String()
}

// Read deserializes one Ast tree from r. Leading whitespace is
// skipped.
func Read(r io.Reader) (*ast.Ast, error) {
	rd := &reader{r: bufio.NewReader(r)}
	rd.skipSpace()
	return rd.readNode()
}

// Parse deserializes one Ast tree from s.
func Parse(s string) (*ast.Ast, error) {
	return Read(strings.NewReader(s))
}

// indentWriter inserts an indent at the start of every non-empty line.
// Nesting one indentWriter inside another accumulates the indent, one
// level per nested container.
type indentWriter struct {
	w   io.Writer
	bol bool
}

const indent = "    "

func newIndentWriter(w io.Writer) *indentWriter {
	return &indentWriter{w: w, bol: true}
}

func (iw *indentWriter) Write(p []byte) (int, error) {
	for i, ch := range p {
		if iw.bol && ch != '\n' {
			if _, err := io.WriteString(iw.w, indent); err != nil {
				return i, err
			}
		}
		iw.bol = ch == '\n'
		if _, err := iw.w.Write(p[i : i+1]); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\b", `\b`,
	"\f", `\f`,
	"\n", `\n`,
	"\t", `\t`,
)

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, `"`+escaper.Replace(s)+`"`)
	return err
}

func write(w io.Writer, node *ast.Ast) error {
	switch node.Kind() {
	case ast.EMPTY:
		_, err := io.WriteString(w, "null")
		return err
	case ast.LEAF:
		return writeString(w, node.Leaf())
	case ast.SEQUENCE:
		if _, err := io.WriteString(w, "[\n"); err != nil {
			return err
		}
		iw := newIndentWriter(w)
		for i, item := range node.Items() {
			if i > 0 {
				if _, err := io.WriteString(iw, ", \n"); err != nil {
					return err
				}
			}
			if err := write(iw, item); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "\n]")
		return err
	case ast.NAMED:
		if _, err := io.WriteString(w, "{\n"); err != nil {
			return err
		}
		iw := newIndentWriter(w)
		for i, key := range node.Order() {
			if i > 0 {
				if _, err := io.WriteString(iw, ", \n"); err != nil {
					return err
				}
			}
			if err := writeString(iw, key); err != nil {
				return err
			}
			if _, err := io.WriteString(iw, " : "); err != nil {
				return err
			}
			value, _ := node.Value(key)
			if err := write(iw, value); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "\n}")
		return err
	case ast.FAILURE:
		failure := node.Failure()
		if _, err := io.WriteString(w, failure.Type()+"("); err != nil {
			return err
		}
		if err := writeString(w, failure.Message()); err != nil {
			return err
		}
		_, err := io.WriteString(w, ")")
		return err
	}
	return fmt.Errorf("cannot serialize ast kind %q", node.Kind())
}

type reader struct {
	r *bufio.Reader
}

func (rd *reader) skipSpace() {
	for {
		ch, err := rd.r.ReadByte()
		if err != nil {
			return
		}
		if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' {
			rd.r.UnreadByte()
			return
		}
	}
}

func (rd *reader) peek() (byte, error) {
	buf, err := rd.r.Peek(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (rd *reader) expect(want byte) error {
	ch, err := rd.r.ReadByte()
	if err != nil {
		return fmt.Errorf("expected %q: %w", want, err)
	}
	if ch != want {
		return fmt.Errorf("expected %q, found %q", want, ch)
	}
	return nil
}

// readNode dispatches on the first character of a value.
func (rd *reader) readNode() (*ast.Ast, error) {
	ch, err := rd.peek()
	if err != nil {
		return nil, fmt.Errorf("ast expected: %w", err)
	}
	switch {
	case ch == 'n':
		return rd.readNull()
	case ch == '"':
		text, err := rd.readString()
		if err != nil {
			return nil, err
		}
		return ast.NewLeaf(text), nil
	case ch == '[':
		return rd.readSequence()
	case ch == '{':
		return rd.readNamed()
	case ch >= 'A' && ch <= 'Z':
		return rd.readFailure()
	}
	return nil, fmt.Errorf("ast expected, found %q", ch)
}

func (rd *reader) readNull() (*ast.Ast, error) {
	for _, want := range []byte("null") {
		if err := rd.expect(want); err != nil {
			return nil, err
		}
	}
	return ast.NewEmpty(), nil
}

func (rd *reader) readString() (string, error) {
	if err := rd.expect('"'); err != nil {
		return "", err
	}
	var sb strings.Builder
	for {
		ch, err := rd.r.ReadByte()
		if err != nil {
			return "", fmt.Errorf("unterminated string: %w", err)
		}
		switch ch {
		case '"':
			return sb.String(), nil
		case '\\':
			esc, err := rd.r.ReadByte()
			if err != nil {
				return "", fmt.Errorf("unterminated string: %w", err)
			}
			switch esc {
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'u':
				return "", fmt.Errorf("unicode escapes are not supported")
			default:
				// Unknown escapes pass the character through,
				// which also covers \\ and \".
				sb.WriteByte(esc)
			}
		default:
			sb.WriteByte(ch)
		}
	}
}

func (rd *reader) readSequence() (*ast.Ast, error) {
	if err := rd.expect('['); err != nil {
		return nil, err
	}
	var items []*ast.Ast
	rd.skipSpace()
	for {
		ch, err := rd.peek()
		if err != nil {
			return nil, fmt.Errorf("unterminated list: %w", err)
		}
		if ch == ']' {
			rd.r.ReadByte()
			return ast.NewSequence(items...), nil
		}
		item, err := rd.readNode()
		if err != nil {
			return nil, err
		}
		// Appended directly: a Failure child is data here, not a
		// parse outcome to propagate.
		items = append(items, item)
		rd.skipSpace()
		ch, err = rd.peek()
		if err != nil {
			return nil, fmt.Errorf("unterminated list: %w", err)
		}
		if ch == ',' {
			rd.r.ReadByte()
			rd.skipSpace()
		} else if ch != ']' {
			return nil, fmt.Errorf("expected comma, found %q", ch)
		}
	}
}

func (rd *reader) readNamed() (*ast.Ast, error) {
	if err := rd.expect('{'); err != nil {
		return nil, err
	}
	node := ast.NewNamed()
	rd.skipSpace()
	for {
		ch, err := rd.peek()
		if err != nil {
			return nil, fmt.Errorf("unterminated map: %w", err)
		}
		if ch == '}' {
			rd.r.ReadByte()
			return node, nil
		}
		key, err := rd.readString()
		if err != nil {
			return nil, err
		}
		rd.skipSpace()
		if err := rd.expect(':'); err != nil {
			return nil, err
		}
		rd.skipSpace()
		value, err := rd.readNode()
		if err != nil {
			return nil, err
		}
		node.Put(key, value)
		rd.skipSpace()
		ch, err = rd.peek()
		if err != nil {
			return nil, fmt.Errorf("unterminated map: %w", err)
		}
		if ch == ',' {
			rd.r.ReadByte()
			rd.skipSpace()
		} else if ch != '}' {
			return nil, fmt.Errorf("expected comma, found %q", ch)
		}
	}
}

func (rd *reader) readFailure() (*ast.Ast, error) {
	var name strings.Builder
	for {
		ch, err := rd.peek()
		if err != nil {
			return nil, fmt.Errorf("unterminated failure: %w", err)
		}
		if ch == '(' {
			break
		}
		if !(ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z') {
			return nil, fmt.Errorf("malformed failure type, found %q", ch)
		}
		name.WriteByte(ch)
		rd.r.ReadByte()
	}
	if err := rd.expect('('); err != nil {
		return nil, err
	}
	message, err := rd.readString()
	if err != nil {
		return nil, err
	}
	if err := rd.expect(')'); err != nil {
		return nil, err
	}
	parseErr, err := errors.New(name.String(), message)
	if err != nil {
		return nil, err
	}
	return ast.NewFailure(parseErr), nil
}
