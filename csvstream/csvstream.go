// Package csvstream streams delimited-text documents through the same
// converter and sink pipeline as jsonstream, with rows pre-split into
// text fields by the CSV tokenizer. It establishes headers from the
// file or from a substitute set, applies positional default values, and
// enforces the row shape against the header arity.
package csvstream

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jacoelho/rowstream"
)

// DefaultHeaderLines is the number of header lines expected when
// WithHeaderLines is not given.
const DefaultHeaderLines = 1

type options struct {
	substituteHeaders []string
	headerLines       int
	defaults          []string
	validator         rowstream.HeaderValidator
	tune              func(*csv.Reader)
}

// Option configures a CSV extraction.
type Option func(*options)

// WithSubstituteHeaders replaces the headers read from the file. Any
// header lines present are still consumed and discarded.
func WithSubstituteHeaders(headers []string) Option {
	return func(o *options) {
		o.substituteHeaders = headers
	}
}

// WithHeaderLines sets how many leading lines are headers. Zero means
// the file has no header line, which requires substitute headers.
func WithHeaderLines(count int) Option {
	return func(o *options) {
		o.headerLines = count
	}
}

// WithDefaultValues substitutes non-empty defaults into empty cells by
// position. The slice must either be empty or match the header arity.
func WithDefaultValues(defaults []string) Option {
	return func(o *options) {
		o.defaults = defaults
	}
}

// WithHeaderValidator runs the validator against the established
// headers before any data row is converted.
func WithHeaderValidator(v rowstream.HeaderValidator) Option {
	return func(o *options) {
		o.validator = v
	}
}

// WithReaderTuning exposes the underlying csv.Reader for delimiter or
// quoting adjustments before parsing starts.
func WithReaderTuning(tune func(*csv.Reader)) Option {
	return func(o *options) {
		o.tune = tune
	}
}

// Parse streams the CSV document in r. The first header line (or the
// substitute set) establishes the row shape; every subsequent data line
// is trimmed, default-filled, converted, and forwarded to sink unless
// the converter discards it. Fields are trimmed of surrounding space
// and lines starting with '#' are ignored, matching the tokenizer
// defaults of the JSON side's sibling format.
func Parse[T any](r io.Reader, convert rowstream.LineConverter[T], sink rowstream.Sink[T], opts ...Option) error {
	if convert == nil {
		return fmt.Errorf("%w: converter must not be nil", rowstream.ErrConfiguration)
	}
	if sink == nil {
		return fmt.Errorf("%w: sink must not be nil", rowstream.ErrConfiguration)
	}

	o := options{headerLines: DefaultHeaderLines}
	for _, opt := range opts {
		opt(&o)
	}

	if o.headerLines < 0 {
		return fmt.Errorf("%w: header line count must be non-negative", rowstream.ErrConfiguration)
	}
	if o.headerLines == 0 && o.substituteHeaders == nil {
		return fmt.Errorf("%w: without header lines a substitute set of headers must be defined", rowstream.ErrConfiguration)
	}

	var headers []string
	if o.substituteHeaders != nil {
		headers = trimAll(o.substituteHeaders)
		if err := establishHeaders(headers, o.validator, o.defaults); err != nil {
			return err
		}
	}

	fill := rowstream.NewPositionalFiller(o.defaults)

	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	// Shape deviations are reported as ShapeError with full context
	// rather than the tokenizer's own mismatch error.
	cr.FieldsPerRecord = -1
	if o.tune != nil {
		o.tune(cr)
	}

	lineCount := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %v", rowstream.ErrMalformedDocument, err)
		}

		record = trimAll(record)

		switch {
		case headers == nil:
			record[0] = strings.TrimPrefix(record[0], "\uFEFF")
			if err := establishHeaders(record, o.validator, o.defaults); err != nil {
				return err
			}
			headers = record
		case lineCount >= o.headerLines:
			if len(record) != len(headers) {
				return &rowstream.ShapeError{
					Expected: len(headers),
					Actual:   len(record),
					Headers:  headers,
					Line:     record,
				}
			}

			line := fill(record)

			// A discarded line is skipped silently.
			if result, ok := convert(headers, line); ok {
				if err := sink(result); err != nil {
					return err
				}
			}
		default:
			// An extra header line beyond the first is skipped.
		}
		lineCount++
	}

	if headers == nil {
		return fmt.Errorf("%w: file did not contain a valid header line", rowstream.ErrMalformedDocument)
	}
	return nil
}

// establishHeaders validates the header set and checks the positional
// defaults arity against it.
func establishHeaders(headers []string, validator rowstream.HeaderValidator, defaults []string) error {
	if validator != nil {
		if err := validator(headers); err != nil {
			return fmt.Errorf("%w: %v", rowstream.ErrHeaderValidation, err)
		}
	}
	if len(defaults) != 0 && len(defaults) != len(headers) {
		return fmt.Errorf("%w: default values must have the same number of items as the headers: expected %d, found %d (headers=%v defaults=%v)",
			rowstream.ErrConfiguration, len(headers), len(defaults), headers, defaults)
	}
	return nil
}

func trimAll(fields []string) []string {
	trimmed := make([]string, len(fields))
	for i, f := range fields {
		trimmed[i] = strings.TrimSpace(f)
	}
	return trimmed
}
