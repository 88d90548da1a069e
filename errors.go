package rowstream

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates the caller-supplied mapping is invalid.
	// It is always raised before any data is read.
	ErrConfiguration = errors.New("rowstream: invalid configuration")

	// ErrHeaderValidation indicates the header validator rejected the
	// header set. It wraps the validator's underlying failure.
	ErrHeaderValidation = errors.New("rowstream: header validation failed")

	// ErrPathNotFound indicates the base pointer does not resolve in the
	// document.
	ErrPathNotFound = errors.New("rowstream: base path not found")

	// ErrUnsupportedBaseShape indicates the base pointer resolved to a
	// scalar; only objects and arrays can produce rows.
	ErrUnsupportedBaseShape = errors.New("rowstream: base path must point to an object or array")

	// ErrMalformedDocument indicates the underlying tokenizer or parser
	// failed. It wraps the low-level error.
	ErrMalformedDocument = errors.New("rowstream: malformed document")

	// ErrShapeMismatch indicates a row's length disagrees with the
	// header length. See ShapeError for the carried detail.
	ErrShapeMismatch = errors.New("rowstream: row and header sizes differ")

	// ErrFieldShape indicates a field pointer resolved to an object or
	// array while strict field shapes were requested.
	ErrFieldShape = errors.New("rowstream: field pointer resolved to a non-scalar value")
)

// ShapeError reports a row whose length does not match the header
// length, carrying both for diagnosis. It unwraps to ErrShapeMismatch.
type ShapeError struct {
	Expected int
	Actual   int
	Headers  []string
	Line     []string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("rowstream: row and header sizes differ: expected %d, found %d (headers=%v line=%v)",
		e.Expected, e.Actual, e.Headers, e.Line)
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
