package rowstream

// HeaderValidator inspects the resolved header names before any row is
// produced. A non-nil error aborts the extraction, wrapped in
// ErrHeaderValidation.
type HeaderValidator func(headers []string) error

// LineConverter turns one assembled line into a result value. Returning
// ok == false is the discard signal: the row is dropped silently and
// processing continues.
type LineConverter[T any] func(headers, line []string) (T, bool)

// NodeConverter is the JSON-aware converter variant. It additionally
// receives the matched element the line was assembled from. The node is
// only valid for the duration of the call.
type NodeConverter[T any] func(node any, headers, line []string) (T, bool)

// Sink receives each non-discarded result, in document order, on the
// caller's goroutine. A non-nil error aborts the extraction.
type Sink[T any] func(T) error
