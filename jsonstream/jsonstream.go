// Package jsonstream extracts tabular records from a JSON document by
// streaming tokens. The extractor seeks to a base pointer without
// materializing unrelated siblings, decodes one matched element at a
// time, and hands each assembled line to a converter and sink. Peak
// memory is bounded by a single matched element, not the document.
package jsonstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/jacoelho/rowstream"
	"github.com/jacoelho/rowstream/jsonutil"
	"github.com/jacoelho/rowstream/pointer"
)

// FieldMap maps logical field names to pointers relative to a matched
// element. A nil pointer declares a field without a mapping: its cell is
// always empty unless a default value applies.
type FieldMap map[string]*pointer.Pointer

type options struct {
	headers      []string
	defaults     map[string]string
	validator    rowstream.HeaderValidator
	strictShapes bool
}

// Option configures an extraction.
type Option func(*options)

// WithOutputHeaders sets the emission order and row shape. Every name
// must be present in the field map; the field map may carry extra names
// that are simply not emitted. Without this option the sorted field-map
// keys are used.
func WithOutputHeaders(headers []string) Option {
	return func(o *options) {
		o.headers = headers
	}
}

// WithDefaultValues substitutes non-empty defaults into empty cells,
// keyed by header name, before the converter runs.
func WithDefaultValues(defaults map[string]string) Option {
	return func(o *options) {
		o.defaults = defaults
	}
}

// WithHeaderValidator runs the validator against the output headers
// before any data is read.
func WithHeaderValidator(v rowstream.HeaderValidator) Option {
	return func(o *options) {
		o.validator = v
	}
}

// WithStrictFieldShapes makes a field pointer that resolves to an
// object or array a fatal error instead of an empty cell.
func WithStrictFieldShapes() Option {
	return func(o *options) {
		o.strictShapes = true
	}
}

// Parse streams the JSON document in r, locates base, and emits one row
// per matched element. A base pointing at an object yields exactly one
// row; a base pointing at an array yields one row per element, in
// document order. Each element is decoded independently, assembled into
// a line of len(headers) cells, passed through default substitution and
// then convert; when convert reports ok the result goes to sink before
// the next element is read.
//
// A nil base is treated as the document root. Cancellation of ctx is
// checked between elements and surfaces ctx.Err().
func Parse[T any](ctx context.Context, r io.Reader, base *pointer.Pointer, fields FieldMap, convert rowstream.NodeConverter[T], sink rowstream.Sink[T], opts ...Option) error {
	if convert == nil {
		return fmt.Errorf("%w: converter must not be nil", rowstream.ErrConfiguration)
	}
	if sink == nil {
		return fmt.Errorf("%w: sink must not be nil", rowstream.ErrConfiguration)
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: no field paths were set", rowstream.ErrConfiguration)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	headers := o.headers
	if headers == nil {
		headers = sortedFieldNames(fields)
	}
	if len(headers) == 0 {
		return fmt.Errorf("%w: output headers must not be empty", rowstream.ErrConfiguration)
	}
	for _, header := range headers {
		if _, ok := fields[header]; !ok {
			return fmt.Errorf("%w: no field pointer mapped for header %q", rowstream.ErrConfiguration, header)
		}
	}

	if o.validator != nil {
		if err := o.validator(headers); err != nil {
			return fmt.Errorf("%w: %v", rowstream.ErrHeaderValidation, err)
		}
	}

	fill := rowstream.NewDefaultFiller(headers, o.defaults)

	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := seekBase(dec, base)
	if err != nil {
		if errors.Is(err, errSeekMiss) {
			return fmt.Errorf("%w: path=%q", rowstream.ErrPathNotFound, base.String())
		}
		return malformed(dec, err)
	}

	assemble := func(node any) error {
		return assembleAndEmit(node, headers, fields, fill, o.strictShapes, convert, sink)
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return fmt.Errorf("%w: found %v (path %q)", rowstream.ErrUnsupportedBaseShape, tok, base.String())
	}

	switch delim {
	case '{':
		node, err := decodeObject(dec)
		if err != nil {
			return malformed(dec, err)
		}
		return assemble(node)
	case '[':
		for {
			if err := ctx.Err(); err != nil {
				return err
			}

			elem, err := dec.Token()
			if err != nil {
				return malformed(dec, err)
			}

			if d, ok := elem.(json.Delim); ok {
				if d == ']' {
					return nil
				}
				node, err := decodeSubtree(dec, d)
				if err != nil {
					return malformed(dec, err)
				}
				if err := assemble(node); err != nil {
					return err
				}
				continue
			}

			if err := assemble(elem); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: found %v (path %q)", rowstream.ErrUnsupportedBaseShape, tok, base.String())
	}
}

// assembleAndEmit builds the fixed-width line for one matched element
// and pushes it through the default filler, converter, and sink.
func assembleAndEmit[T any](node any, headers []string, fields FieldMap, fill rowstream.DefaultFiller, strict bool, convert rowstream.NodeConverter[T], sink rowstream.Sink[T]) error {
	line := make([]string, len(headers))
	for i, header := range headers {
		ptr := fields[header]
		if ptr == nil {
			continue
		}
		value, ok := ptr.Resolve(node)
		if !ok {
			continue
		}
		switch value.(type) {
		case map[string]any, []any:
			if strict {
				return fmt.Errorf("%w: field %q (pointer %q)", rowstream.ErrFieldShape, header, ptr.String())
			}
			// Lenient policy: a composite value renders as an empty
			// cell, so sparse and heterogeneous records still produce
			// full-width rows.
		default:
			line[i] = jsonutil.Text(value)
		}
	}

	line = fill(line)

	result, ok := convert(node, headers, line)
	if !ok {
		return nil
	}
	return sink(result)
}

func sortedFieldNames(fields FieldMap) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func malformed(dec *json.Decoder, err error) error {
	return fmt.Errorf("%w: %v (byte offset %d)", rowstream.ErrMalformedDocument, err, dec.InputOffset())
}
