// Package rowstream extracts tabular records from semi-structured
// documents and streams them, one row at a time, to a caller-supplied
// sink.
//
// The root package holds the pieces shared by the JSON and CSV drivers:
// the error family, the converter and sink function types, and the
// default-value filler. The drivers themselves live in the jsonstream
// and csvstream subpackages; path addressing lives in pointer.
package rowstream
