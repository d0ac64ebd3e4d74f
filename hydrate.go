package tgskema

import (
	"sort"

	"github.com/reoring/tgskema/i18n"
	"github.com/reoring/tgskema/payload"
)

// Hydrate builds a new model of type PT from a decoded payload object.
// Missing keys and explicit nulls leave fields unset. On failure no model is
// returned.
func Hydrate[T any, PT interface {
	*T
	Model
}](raw any) (PT, error) {
	m := PT(new(T))
	if err := HydrateInto(raw, m); err != nil {
		return nil, err
	}
	return m, nil
}

// HydrateJSON decodes data and hydrates a new model from it.
func HydrateJSON[T any, PT interface {
	*T
	Model
}](data []byte) (PT, error) {
	raw, err := payload.Decode(data)
	if err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Hint: err.Error(), Cause: err}}
	}
	return Hydrate[T, PT](raw)
}

// HydrateInto fills m from raw. Values are committed only when every
// declared field hydrated successfully.
func HydrateInto(raw any, m Model) error {
	if isNilModel(m) || m.Schema() == nil {
		return Issues{schemaIssue("/", "model without schema")}
	}
	obj, ok := asObject(raw)
	if !ok {
		return Issues{hydrationIssue(Root(), "", KindOf(raw), KindObject)}
	}
	vals, err := hydrateFields(obj, m.Schema(), Root())
	if err != nil {
		return err
	}
	for _, kv := range vals {
		m.Set(kv.name, kv.value)
	}
	return nil
}

type fieldValue struct {
	name  string
	value any
}

func hydrateFields(obj map[string]any, s *Schema, at PathRef) ([]fieldValue, error) {
	out := make([]fieldValue, 0, len(s.fields))
	for _, f := range s.fields {
		if f.hydrate.Kind == HydrateNone {
			continue
		}
		raw, ok := obj[f.name]
		if !ok || raw == nil {
			continue
		}
		v, err := hydrateField(f, raw, at.Field(f.name))
		if err != nil {
			return nil, err
		}
		out = append(out, fieldValue{name: f.name, value: v})
	}
	return out, nil
}

func hydrateField(f FieldDef, raw any, at PathRef) (any, error) {
	r := f.hydrate
	if text, ok := raw.(string); ok && f.encoding == EncodeJSONText && r.Kind >= HydrateObject {
		decoded, err := payload.Decode([]byte(text))
		if err != nil {
			iss := hydrationIssue(at, f.name, KindString, KindObject)
			iss.Cause = err
			return nil, Issues{iss}
		}
		raw = decoded
	}
	switch r.Kind {
	case HydrateScalar:
		v, ok := castScalar(r.Scalar, raw)
		if !ok {
			return nil, Issues{hydrationIssue(at, f.name, KindOf(raw), r.Scalar)}
		}
		return v, nil
	case HydrateObject:
		return hydrateObject(r, raw, at, f.name)
	case HydrateObjects:
		return hydrateObjects(r, raw, at, f.name)
	case HydrateObjectGrid:
		rows, ok := asArray(raw)
		if !ok {
			return nil, Issues{hydrationIssue(at, f.name, KindOf(raw), KindArray)}
		}
		grid := make([][]Model, 0, len(rows))
		for i, row := range rows {
			ms, err := hydrateObjects(r, row, at.Index(i), f.name)
			if err != nil {
				return nil, err
			}
			grid = append(grid, ms)
		}
		return grid, nil
	}
	return raw, nil
}

func hydrateObject(r HydrationRule, raw any, at PathRef, field string) (Model, error) {
	obj, ok := asObject(raw)
	if !ok {
		return nil, Issues{hydrationIssue(at, field, KindOf(raw), KindObject)}
	}
	newFn := r.factory(obj)
	if newFn == nil {
		iss := hydrationIssue(at, field, KindObject, KindObject)
		iss.Hint = "no model type matches the object"
		return nil, Issues{iss}
	}
	m := newFn()
	vals, err := hydrateFields(obj, m.Schema(), at)
	if err != nil {
		return nil, err
	}
	for _, kv := range vals {
		m.Set(kv.name, kv.value)
	}
	return m, nil
}

func hydrateObjects(r HydrationRule, raw any, at PathRef, field string) ([]Model, error) {
	elems, ok := asArray(raw)
	if !ok {
		return nil, Issues{hydrationIssue(at, field, KindOf(raw), KindArray)}
	}
	out := make([]Model, 0, len(elems))
	for i, e := range elems {
		m, err := hydrateObject(r, e, at.Index(i), field)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// castScalar converts raw to the Go type stored for kind. Kinds without a
// cast keep the raw value.
func castScalar(kind Kind, raw any) (any, bool) {
	switch kind {
	case KindInteger:
		return asInt64(raw)
	case KindFloat:
		return asFloat64(raw)
	case KindString:
		s, ok := raw.(string)
		return s, ok
	case KindBoolean:
		b, ok := raw.(bool)
		return b, ok
	}
	return raw, true
}

func asObject(raw any) (map[string]any, bool) {
	switch t := raw.(type) {
	case map[string]any:
		return t, true
	case WireMap:
		return t.values, true
	case *WireMap:
		if t == nil {
			return nil, false
		}
		return t.values, true
	}
	return nil, false
}

func asArray(raw any) ([]any, bool) {
	switch t := raw.(type) {
	case []any:
		return t, true
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			if m != nil {
				out[i] = m
			}
		}
		return out, true
	}
	return nil, false
}

// Assign sets fields of m from a loosely typed parameter map such as a
// decoded YAML file. Nested object fields are hydrated; scalars are cast when
// the field declares a scalar rule and stored as given otherwise, so Validate
// still judges them. Keys the schema does not declare are reported as
// unknown_key. Nothing is assigned when any issue is found.
func Assign(m Model, params map[string]any) error {
	if isNilModel(m) || m.Schema() == nil {
		return Issues{schemaIssue("/", "model without schema")}
	}
	s := m.Schema()
	var (
		vals []fieldValue
		iss  Issues
	)
	for _, f := range s.fields {
		raw, ok := params[f.name]
		if !ok {
			continue
		}
		v, err := assignValue(f, raw)
		if err != nil {
			more, _ := AsIssues(err)
			iss = append(iss, more...)
			continue
		}
		vals = append(vals, fieldValue{name: f.name, value: v})
	}
	var unknown []string
	for k := range params {
		if _, ok := s.index[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		iss = append(iss, Issue{
			Path:    Root().Field(k).Pointer(),
			Code:    CodeUnknownKey,
			Message: i18n.T(CodeUnknownKey, map[string]string{"field": k}),
			Params:  map[string]any{ParamField: k},
		})
	}
	if len(iss) > 0 {
		return iss
	}
	for _, kv := range vals {
		m.Set(kv.name, kv.value)
	}
	return nil
}

func assignValue(f FieldDef, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch raw.(type) {
	case Model, []Model, [][]Model:
		return raw, nil
	}
	at := Root().Field(f.name)
	switch f.hydrate.Kind {
	case HydrateScalar:
		if v, ok := castScalar(f.hydrate.Scalar, raw); ok {
			return v, nil
		}
		return raw, nil
	case HydrateObject, HydrateObjects, HydrateObjectGrid:
		return hydrateField(f, raw, at)
	}
	return raw, nil
}
