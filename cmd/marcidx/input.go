package main

import (
	"bufio"
	"io"
	"os"

	"github.com/mitlibraries/marcidx"
)

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// eachRecord calls fn with the bytes of every record in path. A MARCXML or
// storage JSON file is a single record; anything else is read as a stream
// of ISO2709 records.
func eachRecord(path string, fn func([]byte) error) error {
	file, err := openInput(path)
	if err != nil {
		return err
	}
	defer file.Close()

	r := bufio.NewReader(file)
	first, err := firstByte(r)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	if first == '<' || first == '{' {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		return fn(data)
	}

	m := marcidx.NewMarcIterator(r)
	for m.Next() {
		if err := fn(append([]byte(nil), m.Bytes()...)); err != nil {
			return err
		}
	}
	return m.Err()
}

// firstByte returns the first non-whitespace byte without consuming it.
func firstByte(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, r.UnreadByte()
	}
}
