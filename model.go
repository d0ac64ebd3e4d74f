package tgskema

import "reflect"

// Model is a value store bound to a schema. Concrete Telegram types embed
// Object and supply Schema plus typed accessors.
//
// Set with a nil value unsets the field. Models are not safe for concurrent
// mutation.
type Model interface {
	Schema() *Schema
	Get(name string) any
	Set(name string, v any)
	Has(name string) bool
	Unset(name string)
}

// Factory creates an empty model of one type.
type Factory func() Model

// Object is the embeddable value store. The zero value is ready to use.
type Object struct {
	values map[string]any
}

func (o *Object) Get(name string) any { return o.values[name] }

func (o *Object) Has(name string) bool {
	_, ok := o.values[name]
	return ok
}

func (o *Object) Set(name string, v any) {
	if isNilValue(v) {
		delete(o.values, name)
		return
	}
	if o.values == nil {
		o.values = map[string]any{}
	}
	o.values[name] = v
}

func (o *Object) Unset(name string) { delete(o.values, name) }

// Dynamic is a model whose schema is chosen at runtime, for tables loaded
// from schema files.
type Dynamic struct {
	Object
	schema *Schema
}

// NewDynamic returns an empty model bound to s.
func NewDynamic(s *Schema) *Dynamic { return &Dynamic{schema: s} }

// DynamicFactory returns a factory producing Dynamic models of s.
func DynamicFactory(s *Schema) Factory {
	return func() Model { return NewDynamic(s) }
}

func (d *Dynamic) Schema() *Schema { return d.schema }

// Value returns the field value as T, or the zero T when unset or of another type.
func Value[T any](m Model, name string) T {
	v, _ := m.Get(name).(T)
	return v
}

// IntValue returns an integer field as int64 regardless of how it was stored.
func IntValue(m Model, name string) (int64, bool) {
	return asInt64(m.Get(name))
}

// Nested returns a nested model field as T, or the zero T.
func Nested[T Model](m Model, name string) T {
	v, _ := m.Get(name).(T)
	return v
}

// List returns a list-of-models field as []T. Elements of another type are skipped.
func List[T Model](m Model, name string) []T {
	ms, ok := m.Get(name).([]Model)
	if !ok {
		return nil
	}
	out := make([]T, 0, len(ms))
	for _, e := range ms {
		if t, ok := e.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Grid returns a rows-of-models field as [][]T.
func Grid[T Model](m Model, name string) [][]T {
	rows, ok := m.Get(name).([][]Model)
	if !ok {
		return nil
	}
	out := make([][]T, 0, len(rows))
	for _, row := range rows {
		r := make([]T, 0, len(row))
		for _, e := range row {
			if t, ok := e.(T); ok {
				r = append(r, t)
			}
		}
		out = append(out, r)
	}
	return out
}

// AsModels converts a typed slice into the stored []Model form.
func AsModels[T Model](ts []T) []Model {
	if ts == nil {
		return nil
	}
	out := make([]Model, len(ts))
	for i, t := range ts {
		if !isNilModel(t) {
			out[i] = t
		}
	}
	return out
}

// AsGrid converts typed rows into the stored [][]Model form.
func AsGrid[T Model](rows [][]T) [][]Model {
	if rows == nil {
		return nil
	}
	out := make([][]Model, len(rows))
	for i, row := range rows {
		out[i] = AsModels(row)
		if out[i] == nil {
			out[i] = []Model{}
		}
	}
	return out
}

// isNilValue reports nil interfaces and typed nils (maps, pointers, slices,
// funcs, chans) stored in an interface. Such values mean "unset".
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// isNilModel reports nil interfaces and typed nil pointers alike.
func isNilModel(m Model) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
