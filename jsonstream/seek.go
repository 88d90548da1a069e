package jsonstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jacoelho/rowstream/internal/stack"
	"github.com/jacoelho/rowstream/pointer"
)

// errSeekMiss reports that the base pointer does not exist in the
// document. It never escapes this package.
var errSeekMiss = errors.New("seek: path not found")

// seekBase advances the token stream until it is positioned exactly at
// the value the base pointer addresses and returns that value's first
// token. Everything outside the pointer's path is skipped without being
// materialized. A root base degenerates to reading the first token.
func seekBase(dec *json.Decoder, base *pointer.Pointer) (json.Token, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			// An empty document matches nothing, not even the root.
			return nil, errSeekMiss
		}
		return nil, err
	}

	for _, seg := range base.Segments() {
		delim, ok := tok.(json.Delim)
		if !ok {
			// The path tries to descend into a scalar.
			return nil, errSeekMiss
		}

		switch delim {
		case '{':
			tok, err = seekMember(dec, seg.Name)
		case '[':
			tok, err = seekIndex(dec, seg.Index)
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", delim)
		}
		if err != nil {
			return nil, err
		}
	}

	return tok, nil
}

// seekMember scans an object's members until it finds name, returning
// the first token of its value. Values of other members are skipped.
func seekMember(dec *json.Decoder, name string) (json.Token, error) {
	for {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := keyTok.(json.Delim); ok && d == '}' {
			return nil, errSeekMiss
		}

		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}

		valueTok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		if key == name {
			return valueTok, nil
		}

		if err := skipValue(dec, valueTok); err != nil {
			return nil, err
		}
	}
}

// seekIndex scans an array until it reaches the target index, returning
// that element's first token. A negative index means the pointer token
// was not numeric, which can never address an array element.
func seekIndex(dec *json.Decoder, index int) (json.Token, error) {
	if index < 0 {
		return nil, errSeekMiss
	}

	for current := 0; ; current++ {
		elemTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := elemTok.(json.Delim); ok && d == ']' {
			return nil, errSeekMiss
		}

		if current == index {
			return elemTok, nil
		}

		if err := skipValue(dec, elemTok); err != nil {
			return nil, err
		}
	}
}

// skipValue consumes the remainder of the value whose first token is
// tok. Scalars are already fully consumed; containers are drained to
// their matching close delimiter. The decoder validates pairing, so
// only the open/close balance is tracked here.
func skipValue(dec *json.Decoder, tok json.Token) error {
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil
	}
	if delim != '{' && delim != '[' {
		return fmt.Errorf("unexpected delimiter %v", delim)
	}

	open := stack.New[json.Delim]()
	open.Push(delim)
	for !open.IsEmpty() {
		next, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := next.(json.Delim); ok {
			switch d {
			case '{', '[':
				open.Push(d)
			case '}', ']':
				open.Pop()
			}
		}
	}
	return nil
}
