package marcidx

import (
	"bufio"
	"bytes"
	"io"
)

// MarcIterator will iterate over a set of ISO2709 records using the Next()
// and Value() methods. Use the NewMarcIterator function to create a
// MarcIterator.
type MarcIterator struct {
	scanner *bufio.Scanner
	opts    []Option
}

// NewMarcIterator creates and returns a new instance of a MarcIterator.
// The options are applied to every Record it returns.
func NewMarcIterator(r io.Reader, opts ...Option) *MarcIterator {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordLen+1)
	scanner.Split(splitFunc)
	return &MarcIterator{scanner: scanner, opts: opts}
}

// Next advances the MarcIterator to the next record, which will be
// available through the Value method. It returns false when the
// MarcIterator has reached the end of the file or has encountered an error.
// Any error will be accessible from the Err method.
func (m *MarcIterator) Next() bool {
	for m.scanner.Scan() {
		if len(bytes.TrimSpace(m.scanner.Bytes())) > 0 {
			return true
		}
	}
	return false
}

// Bytes returns the raw bytes of the current record, record terminator
// included. The slice is only valid until the next call to Next.
func (m *MarcIterator) Bytes() []byte {
	return m.scanner.Bytes()
}

// Value decodes the current record.
func (m *MarcIterator) Value() (*Record, error) {
	return Parse(m.scanner.Bytes(), m.opts...)
}

// Err will return the first error encountered by the MarcIterator.
func (m *MarcIterator) Err() error {
	return m.scanner.Err()
}

func splitFunc(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, rt); i >= 0 {
		return i + 1, data[0 : i+1], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return
}
