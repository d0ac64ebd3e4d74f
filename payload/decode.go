// Package payload decodes Telegram Bot API responses into the loosely typed
// values the hydration engine consumes.
//
// Numbers decode as json.Number so 64-bit identifiers survive intact.
package payload

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	j "github.com/goccy/go-json"
)

// ErrTrailingData is returned when a document is followed by more input.
var ErrTrailingData = errors.New("payload: trailing data after JSON document")

// Decode parses one JSON document.
func Decode(data []byte) (any, error) { return DecodeReader(bytes.NewReader(data)) }

// DecodeReader parses one JSON document from r.
func DecodeReader(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("payload: decode: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrTrailingData
	}
	return v, nil
}

// DecodeStrict is like Decode but rejects documents with duplicate object keys.
func DecodeStrict(data []byte) (any, error) {
	dups, err := DuplicateKeys(data)
	if err != nil {
		return nil, err
	}
	if len(dups) > 0 {
		return nil, &DuplicateKeyError{Paths: dups}
	}
	return Decode(data)
}
