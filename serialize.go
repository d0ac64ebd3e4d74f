package tgskema

import (
	"fmt"

	j "github.com/goccy/go-json"
)

// Serialize converts m into a WireMap. Unset fields are omitted, so the
// result never contains nulls. Fields marked JSONText are written as JSON
// text. Serialize does not validate; see ValidateAndSerialize.
func Serialize(m Model) (WireMap, error) {
	if isNilModel(m) || m.Schema() == nil {
		return WireMap{}, Issues{schemaIssue("/", "model without schema")}
	}
	return serializeModel(m, Root())
}

// ValidateAndSerialize validates m and serializes it. On failure no map is
// returned.
func ValidateAndSerialize(m Model, opts ...ValidateOpt) (WireMap, error) {
	if err := Validate(m, opts...); err != nil {
		return WireMap{}, err
	}
	return Serialize(m)
}

func serializeModel(m Model, at PathRef) (WireMap, error) {
	var w WireMap
	for _, f := range m.Schema().fields {
		v := m.Get(f.name)
		if isNilValue(v) {
			continue
		}
		p := at.Field(f.name)
		enc, err := encodeValue(v, p)
		if err != nil {
			return WireMap{}, err
		}
		if f.encoding == EncodeJSONText && isComposite(enc) {
			b, err := j.Marshal(enc)
			if err != nil {
				return WireMap{}, Issues{{Path: p.Pointer(), Code: CodeSchema, Message: err.Error(), Cause: err}}
			}
			enc = string(b)
		}
		w.put(f.name, enc)
	}
	return w, nil
}

func encodeValue(v any, at PathRef) (any, error) {
	switch t := v.(type) {
	case Model:
		if t.Schema() == nil {
			return nil, Issues{schemaIssue(at.Pointer(), "nested model without schema")}
		}
		return serializeModel(t, at)
	case WireMap:
		return t, nil
	case map[string]any:
		return t, nil
	}
	elems, ok := listElems(v)
	if !ok {
		return v, nil
	}
	out := make([]any, 0, len(elems))
	for i, e := range elems {
		if e == nil {
			return nil, Issues{schemaIssue(at.Index(i).Pointer(), fmt.Sprintf("null element in list %s", at.Pointer()))}
		}
		enc, err := encodeValue(e, at.Index(i))
		if err != nil {
			return nil, err
		}
		out = append(out, enc)
	}
	return out, nil
}

func isComposite(v any) bool {
	switch v.(type) {
	case WireMap, []any, map[string]any:
		return true
	}
	return false
}
