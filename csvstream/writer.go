package csvstream

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"

	"github.com/jacoelho/rowstream"
)

// Writer emits CSV lines with a fixed header-defined shape. The header
// line is written eagerly when the Writer is created.
type Writer struct {
	cw      *csv.Writer
	headers []string
}

// NewWriter writes the header line to w and returns a Writer that
// enforces the header arity on every subsequent line.
func NewWriter(w io.Writer, headers []string) (*Writer, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: output headers must not be empty", rowstream.ErrConfiguration)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return nil, err
	}

	return &Writer{cw: cw, headers: headers}, nil
}

// Write emits one line. A line whose length differs from the header
// length is rejected with a ShapeError.
func (w *Writer) Write(line []string) error {
	if len(line) != len(w.headers) {
		return &rowstream.ShapeError{
			Expected: len(w.headers),
			Actual:   len(line),
			Headers:  w.headers,
			Line:     line,
		}
	}
	return w.cw.Write(line)
}

// Flush writes buffered output and reports any write error.
func (w *Writer) Flush() error {
	w.cw.Flush()
	return w.cw.Error()
}

// Write streams a sequence of values to w in CSV format, converting
// each value to a line with the given function. The conversion receives
// the headers so positional layouts need not be hard-coded.
func Write[T any](w io.Writer, items iter.Seq[T], headers []string, convert func(headers []string, item T) ([]string, error)) error {
	cw, err := NewWriter(w, headers)
	if err != nil {
		return err
	}

	for item := range items {
		line, err := convert(headers, item)
		if err != nil {
			return fmt.Errorf("could not write object out: %w", err)
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}

	return cw.Flush()
}
