package marcidx

import "errors"

// Errors that abort decoding or encoding of a single record. They are
// returned wrapped with the offending tag or offset; test with errors.Is.
var (
	ErrEmptyInput        = errors.New("empty input")
	ErrMalformed         = errors.New("malformed record")
	ErrMissingTerminator = errors.New("field terminator missing")
	ErrXMLParse          = errors.New("marcxml parse error")
	ErrStorageVersion    = errors.New("unsupported storage version")
	ErrDataAlreadySet    = errors.New("record data already set")
)

// ErrCannotEncode reports that a record exceeds the lengths ISO2709 can
// represent. It is a boundary rather than a failure: callers fall back to
// MARCXML for such records.
var ErrCannotEncode = errors.New("record cannot be represented as ISO2709")
