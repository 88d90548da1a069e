// Package jsonutil provides small helpers for working with whole JSON
// documents: loading, pointer queries, scalar text rendering, and
// pretty-printing. The streaming extractor does not need these; they
// exist for callers that already hold a document tree.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jacoelho/rowstream/pointer"
)

// Load decodes one JSON document, preserving numbers as json.Number so
// their text form round-trips exactly as written.
func Load(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var node any
	if err := dec.Decode(&node); err != nil {
		return nil, err
	}
	return node, nil
}

// LoadFile reads and decodes the JSON document at path.
func LoadFile(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Query loads the document in r and returns the text form of the value
// the pointer expression addresses.
func Query(r io.Reader, path string) (string, error) {
	ptr, err := pointer.Compile(path)
	if err != nil {
		return "", err
	}

	node, err := Load(r)
	if err != nil {
		return "", err
	}

	value, ok := ptr.Resolve(node)
	if !ok {
		return "", fmt.Errorf("no value at pointer %q", path)
	}
	return Text(value), nil
}

// QueryNode resolves a pointer against an already-loaded document.
func QueryNode(node any, ptr *pointer.Pointer) (any, bool) {
	return ptr.Resolve(node)
}

// Text renders a decoded scalar the way it appears in the document:
// strings verbatim, numbers as written, booleans as true/false, and
// JSON null as "null". Composite values render as the empty string.
func Text(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return "null"
	case float64:
		// Trees decoded without UseNumber carry float64 scalars.
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return ""
	}
}

// PrettyPrint renders a document tree as indented JSON.
func PrettyPrint(node any) (string, error) {
	out, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// PrettyPrintTo writes the indented form of node to w.
func PrettyPrintTo(w io.Writer, node any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(node)
}
