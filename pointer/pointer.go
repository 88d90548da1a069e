// Package pointer implements the restricted slash-delimited path
// expressions used to address record bases and fields, e.g.
// /phone/0/home. Reference tokens follow RFC 6901, including the ~0 and
// ~1 escapes.
package pointer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax indicates a malformed pointer expression.
var ErrSyntax = errors.New("pointer: syntax error")

// maxIndexDigits bounds array index tokens so they always fit in an int.
const maxIndexDigits = 9

// Segment is one step of a pointer: an object member name, and, when the
// token is numeric, also a candidate array index. Index is -1 for
// non-numeric tokens.
type Segment struct {
	Name  string
	Index int
}

// Pointer is an immutable compiled path expression. The zero value and
// nil both denote the document root.
type Pointer struct {
	segments []Segment
}

// Compile parses a slash-delimited pointer expression. The empty string
// and "/" both compile to the document root, matching the addressing
// scheme this package implements rather than strict RFC 6901 (which
// distinguishes "/" as the empty member name).
func Compile(text string) (*Pointer, error) {
	if text == "" || text == "/" {
		return &Pointer{}, nil
	}

	if !strings.HasPrefix(text, "/") {
		return nil, fmt.Errorf("%w: pointer must start with '/': %q", ErrSyntax, text)
	}

	tokens := strings.Split(text[1:], "/")
	segments := make([]Segment, 0, len(tokens))
	for _, token := range tokens {
		name, err := unescape(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %v in %q", ErrSyntax, err, text)
		}
		segments = append(segments, Segment{Name: name, Index: parseIndex(token)})
	}

	return &Pointer{segments: segments}, nil
}

// MustCompile is like Compile but panics on error. It is intended for
// pointer literals in tests and package setup.
func MustCompile(text string) *Pointer {
	p, err := Compile(text)
	if err != nil {
		panic(err)
	}
	return p
}

// IsRoot reports whether the pointer addresses the whole document.
func (p *Pointer) IsRoot() bool {
	return p == nil || len(p.segments) == 0
}

// Segments returns the compiled steps, outermost first. The returned
// slice must not be modified.
func (p *Pointer) Segments() []Segment {
	if p == nil {
		return nil
	}
	return p.segments
}

// String reserialises the pointer structurally, re-applying escapes.
// The root pointer serialises as the empty string.
func (p *Pointer) String() string {
	if p.IsRoot() {
		return ""
	}

	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		b.WriteString(escape(seg.Name))
	}
	return b.String()
}

// Resolve walks the pointer over a decoded document tree of
// map[string]any and []any nodes. Absence is a first-class result:
// a missing member, an out-of-range index, or a step into a scalar
// returns (nil, false), never an error.
//
// A numeric token indexes arrays and doubles as a member name for
// objects, so /phone/0 selects index zero of an array and the member
// "0" of an object.
func (p *Pointer) Resolve(node any) (any, bool) {
	if p.IsRoot() {
		return node, true
	}

	current := node
	for _, seg := range p.segments {
		switch v := current.(type) {
		case map[string]any:
			next, ok := v[seg.Name]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			if seg.Index < 0 || seg.Index >= len(v) {
				return nil, false
			}
			current = v[seg.Index]
		default:
			return nil, false
		}
	}

	return current, true
}

// parseIndex returns the array index a token denotes, or -1 when the
// token is not a valid index. Leading zeros disqualify a token ("01" is
// a member name, not index 1) and the digit count is bounded so the
// result always fits in an int.
func parseIndex(token string) int {
	if token == "" || len(token) > maxIndexDigits {
		return -1
	}
	if len(token) > 1 && token[0] == '0' {
		return -1
	}

	index := 0
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c < '0' || c > '9' {
			return -1
		}
		index = index*10 + int(c-'0')
	}
	return index
}

func unescape(token string) (string, error) {
	if !strings.ContainsRune(token, '~') {
		return token, nil
	}

	var b strings.Builder
	b.Grow(len(token))
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(token) {
			return "", errors.New("dangling '~' escape")
		}
		i++
		switch token[i] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", fmt.Errorf("invalid escape '~%c'", token[i])
		}
	}
	return b.String(), nil
}

func escape(name string) string {
	name = strings.ReplaceAll(name, "~", "~0")
	return strings.ReplaceAll(name, "/", "~1")
}
