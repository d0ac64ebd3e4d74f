// Package codec converts between Bot API wire values and Go domain values.
package codec

import (
	"fmt"
	"time"

	tgskema "github.com/reoring/tgskema"
)

// DecodeUnix converts a unix timestamp in seconds to a UTC time. Zero means
// unset and yields the zero time.
func DecodeUnix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// EncodeUnix converts t to whole seconds. The zero time encodes as 0 and
// sub-second precision is dropped.
func EncodeUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

// UnixField reads a timestamp field of m. ok is false when the field is
// unset or not an integer.
func UnixField(m tgskema.Model, name string) (time.Time, bool) {
	sec, ok := tgskema.IntValue(m, name)
	if !ok {
		return time.Time{}, false
	}
	return DecodeUnix(sec), true
}

// FormatRFC3339 renders a timestamp field for display, "" when unset.
func FormatRFC3339(m tgskema.Model, name string) string {
	t, ok := UnixField(m, name)
	if !ok || t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// ParseRFC3339 converts an RFC3339 string to a unix timestamp, accepting
// fractional seconds.
func ParseRFC3339(s string) (int64, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, fmt.Errorf("codec: invalid RFC3339 time %q: %w", s, err)
	}
	return EncodeUnix(t), nil
}
