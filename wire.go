package tgskema

import (
	"bytes"
	"fmt"
	"strconv"

	j "github.com/goccy/go-json"
)

// WireMap is the serialized form of a model: field names in declaration
// order mapped to non-null values. Nested models are WireMaps, lists are []any.
type WireMap struct {
	keys   []string
	values map[string]any
}

func (w WireMap) Len() int { return len(w.keys) }

// Keys returns the field names in order.
func (w WireMap) Keys() []string { return append([]string(nil), w.keys...) }

// Get returns the value for key and whether it is present.
func (w WireMap) Get(key string) (any, bool) {
	v, ok := w.values[key]
	return v, ok
}

func (w *WireMap) put(key string, v any) {
	if w.values == nil {
		w.values = map[string]any{}
	}
	if _, ok := w.values[key]; !ok {
		w.keys = append(w.keys, key)
	}
	w.values[key] = v
}

// ToMap returns a plain map copy, converting nested WireMaps recursively.
func (w WireMap) ToMap() map[string]any {
	out := make(map[string]any, len(w.keys))
	for _, k := range w.keys {
		out[k] = plain(w.values[k])
	}
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case WireMap:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	}
	return v
}

// MarshalJSON writes the map as a JSON object preserving key order.
func (w WireMap) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range w.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := j.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := j.Marshal(w.values[k])
		if err != nil {
			return nil, fmt.Errorf("wire: field %s: %w", k, err)
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Form renders every value as text for form-encoded requests: strings go
// through unchanged, numbers and booleans in their canonical notation and
// composite values as JSON.
func (w WireMap) Form() (map[string]string, error) {
	out := make(map[string]string, len(w.keys))
	for _, k := range w.keys {
		s, err := formValue(w.values[k])
		if err != nil {
			return nil, fmt.Errorf("wire: field %s: %w", k, err)
		}
		out[k] = s
	}
	return out, nil
}

func formValue(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case numberLike:
		return t.String(), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	}
	if n, ok := asInt64(v); ok {
		return strconv.FormatInt(n, 10), nil
	}
	b, err := j.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
