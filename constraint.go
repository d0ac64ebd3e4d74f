package tgskema

import (
	"math"

	js "github.com/reoring/tgskema/jsonschema"
)

// Constraint is an atomic predicate over a candidate field value.
// Accepts never panics; nil means absence and is left to the required check,
// so every constraint accepts nil.
type Constraint interface {
	Accepts(v any) bool
	// Expected names the kind the constraint is looking for (diagnostics).
	Expected() Kind
	String() string
	JSONSchema() *js.Schema
}

// Integer accepts integral numbers of any representation; it rejects strings
// and booleans.
func Integer() Constraint { return integerConstraint{} }

// String accepts text values only.
func String() Constraint { return stringConstraint{strict: true} }

// LenientString accepts text values and numbers, for fields the remote API
// takes either way (for example a chat identifier sent as 42 or "42").
func LenientString() Constraint { return stringConstraint{strict: false} }

// Boolean accepts exactly true and false.
func Boolean() Constraint { return booleanConstraint{} }

// Float accepts any number.
func Float() Constraint { return floatConstraint{} }

// ObjectOf accepts models sharing the schema of the models produced by newFn.
// newFn is consulted lazily so self-referencing schemas can be declared.
func ObjectOf(newFn Factory) Constraint { return objectConstraint{target: newFn} }

// ListOf accepts lists whose every element satisfies elem. Nested lists
// (keyboards) are expressed as ListOf(ListOf(...)). Elements must be present.
func ListOf(elem Constraint) Constraint { return listConstraint{elem: elem} }

type integerConstraint struct{}

func (integerConstraint) Accepts(v any) bool {
	if v == nil {
		return true
	}
	_, ok := asInt64(v)
	return ok
}
func (integerConstraint) Expected() Kind         { return KindInteger }
func (integerConstraint) String() string         { return "integer" }
func (integerConstraint) JSONSchema() *js.Schema { return &js.Schema{Type: "integer"} }

type stringConstraint struct{ strict bool }

func (c stringConstraint) Accepts(v any) bool {
	switch v.(type) {
	case nil, string:
		return true
	}
	if c.strict {
		return false
	}
	// NaN and the infinities have no decimal form on the wire.
	f, ok := asFloat64(v)
	return ok && !math.IsNaN(f) && !math.IsInf(f, 0)
}
func (stringConstraint) Expected() Kind { return KindString }
func (c stringConstraint) String() string {
	if c.strict {
		return "string"
	}
	return "string (lenient)"
}
func (c stringConstraint) JSONSchema() *js.Schema {
	if c.strict {
		return &js.Schema{Type: "string"}
	}
	return &js.Schema{OneOf: []*js.Schema{{Type: "string"}, {Type: "number"}}}
}

type booleanConstraint struct{}

func (booleanConstraint) Accepts(v any) bool {
	switch v.(type) {
	case nil, bool:
		return true
	}
	return false
}
func (booleanConstraint) Expected() Kind         { return KindBoolean }
func (booleanConstraint) String() string         { return "boolean" }
func (booleanConstraint) JSONSchema() *js.Schema { return &js.Schema{Type: "boolean"} }

type floatConstraint struct{}

func (floatConstraint) Accepts(v any) bool {
	if v == nil {
		return true
	}
	_, ok := asFloat64(v)
	return ok
}
func (floatConstraint) Expected() Kind         { return KindFloat }
func (floatConstraint) String() string         { return "float" }
func (floatConstraint) JSONSchema() *js.Schema { return &js.Schema{Type: "number"} }

type objectConstraint struct{ target Factory }

func (c objectConstraint) Accepts(v any) bool {
	if v == nil {
		return true
	}
	m, ok := v.(Model)
	if !ok || c.target == nil {
		return false
	}
	return sameShape(m.Schema(), c.schema())
}
func (objectConstraint) Expected() Kind { return KindObject }
func (c objectConstraint) String() string {
	if s := c.schema(); s != nil {
		return "object<" + s.Name() + ">"
	}
	return "object"
}
func (c objectConstraint) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "object"}
	if s := c.schema(); s != nil {
		out.Title = s.Name()
	}
	return out
}

func (c objectConstraint) schema() *Schema {
	if c.target == nil {
		return nil
	}
	return c.target().Schema()
}

// sameShape reports whether two schemas declare the same model type: the same
// table, or one with the same name and field set.
func sameShape(a, b *Schema) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b {
		return true
	}
	if a.name != b.name || len(a.fields) != len(b.fields) {
		return false
	}
	for i := range a.fields {
		if a.fields[i].name != b.fields[i].name {
			return false
		}
	}
	return true
}

type listConstraint struct{ elem Constraint }

func (c listConstraint) Accepts(v any) bool {
	if v == nil {
		return true
	}
	elems, ok := listElems(v)
	if !ok {
		return false
	}
	for _, e := range elems {
		if e == nil || !c.elem.Accepts(e) {
			return false
		}
	}
	return true
}
func (listConstraint) Expected() Kind   { return KindArray }
func (c listConstraint) String() string { return "array<" + c.elem.String() + ">" }
func (c listConstraint) JSONSchema() *js.Schema {
	return &js.Schema{Type: "array", Items: c.elem.JSONSchema()}
}

// listElems exposes the supported list representations as []any.
func listElems(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []Model:
		out := make([]any, len(t))
		for i, m := range t {
			if !isNilModel(m) {
				out[i] = m
			}
		}
		return out, true
	case [][]Model:
		out := make([]any, len(t))
		for i, row := range t {
			if row != nil {
				out[i] = row
			}
		}
		return out, true
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	case []int64:
		out := make([]any, len(t))
		for i, n := range t {
			out[i] = n
		}
		return out, true
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
