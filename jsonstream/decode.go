package jsonstream

import (
	"encoding/json"
	"fmt"
)

// decodeSubtree materializes one complete value from the token stream,
// given its already-consumed opening delimiter. It is the only place a
// matched element is held in memory, and the element is released as
// soon as its row has been processed.
func decodeSubtree(dec *json.Decoder, opening json.Delim) (any, error) {
	switch opening {
	case '{':
		return decodeObject(dec)
	case '[':
		return decodeArray(dec)
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", opening)
	}
}

func decodeObject(dec *json.Decoder) (any, error) {
	obj := make(map[string]any)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		if d, ok := tok.(json.Delim); ok && d == '}' {
			return obj, nil
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", tok)
		}

		valueTok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		if d, ok := valueTok.(json.Delim); ok {
			nested, err := decodeSubtree(dec, d)
			if err != nil {
				return nil, err
			}
			obj[key] = nested
		} else {
			obj[key] = valueTok
		}
	}
}

func decodeArray(dec *json.Decoder) (any, error) {
	arr := make([]any, 0)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		if d, ok := tok.(json.Delim); ok {
			if d == ']' {
				return arr, nil
			}
			nested, err := decodeSubtree(dec, d)
			if err != nil {
				return nil, err
			}
			arr = append(arr, nested)
			continue
		}

		arr = append(arr, tok)
	}
}
