package tgskema

import (
	"fmt"

	js "github.com/reoring/tgskema/jsonschema"
)

// Config is one acceptable alternative for a field: a value satisfying every
// constraint passes. Required marks the field as mandatory.
type Config struct {
	Constraints []Constraint
	Required    bool
}

// accepts reports whether every constraint of the alternative accepts v.
func (c Config) accepts(v any) bool {
	for _, cs := range c.Constraints {
		if !cs.Accepts(v) {
			return false
		}
	}
	return true
}

// Encoding selects how a composite field value is written to the wire map.
type Encoding int

const (
	// EncodeStructured keeps nested values structured (WireMap / []any).
	EncodeStructured Encoding = iota
	// EncodeJSONText writes nested values as JSON text, as Telegram expects
	// for reply_markup in form-encoded requests.
	EncodeJSONText
)

// HydrateKind selects how a raw payload value becomes a field value.
type HydrateKind int

const (
	HydrateNone HydrateKind = iota
	HydrateScalar
	HydrateObject
	HydrateObjects
	HydrateObjectGrid
)

func (k HydrateKind) String() string {
	switch k {
	case HydrateScalar:
		return "scalar"
	case HydrateObject:
		return "object"
	case HydrateObjects:
		return "objects"
	case HydrateObjectGrid:
		return "grid"
	default:
		return "none"
	}
}

// HydrationRule describes how to build a field from a raw payload value.
// Scalar is used with HydrateScalar; Target with the object kinds. Pick, when
// set, chooses the target per raw object, for fields accepting several model
// types; returning nil rejects the object.
type HydrationRule struct {
	Kind   HydrateKind
	Scalar Kind
	Target Factory
	Pick   func(raw map[string]any) Factory
}

func (r HydrationRule) factory(raw map[string]any) Factory {
	if r.Pick != nil {
		return r.Pick(raw)
	}
	return r.Target
}

// FieldDef is one entry of a built schema.
type FieldDef struct {
	name     string
	configs  []Config
	hydrate  HydrationRule
	encoding Encoding
}

func (f FieldDef) Name() string             { return f.name }
func (f FieldDef) Hydration() HydrationRule { return f.hydrate }
func (f FieldDef) Encoding() Encoding       { return f.encoding }

// Configs returns a copy of the field's alternatives.
func (f FieldDef) Configs() []Config { return append([]Config(nil), f.configs...) }

// Required reports whether any alternative requires the field.
func (f FieldDef) Required() bool {
	for _, c := range f.configs {
		if c.Required {
			return true
		}
	}
	return false
}

// Schema is the frozen field table of a model type. It is immutable after
// Build and safe for concurrent use.
type Schema struct {
	name   string
	fields []FieldDef
	index  map[string]int
	rules  []Rule
}

func (s *Schema) Name() string { return s.name }

// Fields returns the field definitions in declaration order.
func (s *Schema) Fields() []FieldDef { return append([]FieldDef(nil), s.fields...) }

// Field looks up a definition by name.
func (s *Schema) Field(name string) (FieldDef, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldDef{}, false
	}
	return s.fields[i], true
}

// Rules returns the cross-field rules in declaration order.
func (s *Schema) Rules() []Rule { return append([]Rule(nil), s.rules...) }

// JSONSchema projects the table into a JSON Schema object. Alternatives become
// oneOf; several constraints in one alternative become allOf. Fields declared
// only for hydration are described by their hydration rule.
func (s *Schema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "object", Title: s.name, Properties: map[string]*js.Schema{}}
	for _, f := range s.fields {
		out.Properties[f.name] = f.jsonSchema()
		if f.Required() {
			out.Required = append(out.Required, f.name)
		}
	}
	return out
}

func (f FieldDef) jsonSchema() *js.Schema {
	var alts []*js.Schema
	for _, c := range f.configs {
		switch len(c.Constraints) {
		case 0:
			alts = append(alts, &js.Schema{})
		case 1:
			alts = append(alts, c.Constraints[0].JSONSchema())
		default:
			all := make([]*js.Schema, 0, len(c.Constraints))
			for _, cs := range c.Constraints {
				all = append(all, cs.JSONSchema())
			}
			alts = append(alts, &js.Schema{AllOf: all})
		}
	}
	var out *js.Schema
	switch len(alts) {
	case 0:
		out = f.hydrate.jsonSchema()
	case 1:
		out = alts[0]
	default:
		out = &js.Schema{OneOf: alts}
	}
	if f.encoding == EncodeJSONText {
		out.Format = "json-text"
	}
	return out
}

func (r HydrationRule) jsonSchema() *js.Schema {
	switch r.Kind {
	case HydrateScalar:
		switch r.Scalar {
		case KindInteger:
			return &js.Schema{Type: "integer"}
		case KindFloat:
			return &js.Schema{Type: "number"}
		case KindBoolean:
			return &js.Schema{Type: "boolean"}
		default:
			return &js.Schema{Type: "string"}
		}
	case HydrateObject:
		return r.objectSchema()
	case HydrateObjects:
		return &js.Schema{Type: "array", Items: r.objectSchema()}
	case HydrateObjectGrid:
		return &js.Schema{Type: "array", Items: &js.Schema{Type: "array", Items: r.objectSchema()}}
	}
	return &js.Schema{}
}

func (r HydrationRule) objectSchema() *js.Schema {
	out := &js.Schema{Type: "object"}
	if r.Target != nil {
		out.Title = r.Target().Schema().Name()
	}
	return out
}

type schemaBuilder struct {
	name   string
	fields []*FieldDef
	rules  []Rule
}

type fieldStep struct {
	b   *schemaBuilder
	def *FieldDef
}

// NewSchema starts a schema for the named model type.
func NewSchema(name string) *schemaBuilder {
	return &schemaBuilder{name: name}
}

// Field registers a field; later calls on the returned step configure it.
func (b *schemaBuilder) Field(name string) *fieldStep {
	def := &FieldDef{name: name}
	b.fields = append(b.fields, def)
	return &fieldStep{b: b, def: def}
}

// Rule appends a cross-field rule.
func (b *schemaBuilder) Rule(r Rule) *schemaBuilder {
	b.rules = append(b.rules, r)
	return b
}

// Build freezes the table. It rejects empty or duplicate field names, fields
// with neither alternatives nor a hydration rule, object rules without a
// target, and rules naming undeclared fields.
func (b *schemaBuilder) Build() (*Schema, error) {
	s := &Schema{name: b.name, index: make(map[string]int, len(b.fields))}
	var iss Issues
	for _, f := range b.fields {
		switch {
		case f.name == "":
			iss = append(iss, schemaIssue("/", "empty field name in "+b.name))
			continue
		case len(f.configs) == 0 && f.hydrate.Kind == HydrateNone:
			iss = append(iss, schemaIssue(Root().Field(f.name).Pointer(), "field has no constraints and no hydration rule"))
		case f.hydrate.Kind >= HydrateObject && f.hydrate.Target == nil && f.hydrate.Pick == nil:
			iss = append(iss, schemaIssue(Root().Field(f.name).Pointer(), f.hydrate.Kind.String()+" hydration without target"))
		}
		if _, dup := s.index[f.name]; dup {
			iss = append(iss, schemaIssue(Root().Field(f.name).Pointer(), "duplicate field "+f.name))
			continue
		}
		s.index[f.name] = len(s.fields)
		s.fields = append(s.fields, *f)
	}
	for _, r := range b.rules {
		for _, name := range r.fields {
			if _, ok := s.index[name]; !ok {
				iss = append(iss, schemaIssue(Root().Field(name).Pointer(), fmt.Sprintf("rule %q names undeclared field", r.name)))
			}
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	s.rules = append([]Rule(nil), b.rules...)
	return s, nil
}

// MustBuild is like Build but panics on error. Intended for package-level
// schema declarations.
func (b *schemaBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Accepts adds an optional alternative: a present value passes when every
// constraint accepts it.
func (f *fieldStep) Accepts(cs ...Constraint) *fieldStep {
	f.def.configs = append(f.def.configs, Config{Constraints: cs})
	return f
}

// Requires adds a required alternative.
func (f *fieldStep) Requires(cs ...Constraint) *fieldStep {
	f.def.configs = append(f.def.configs, Config{Constraints: cs, Required: true})
	return f
}

// Scalar hydrates the field by casting the raw value to kind.
func (f *fieldStep) Scalar(kind Kind) *fieldStep {
	f.def.hydrate = HydrationRule{Kind: HydrateScalar, Scalar: kind}
	return f
}

// Object hydrates the field as a nested model built by newFn.
func (f *fieldStep) Object(newFn Factory) *fieldStep {
	f.def.hydrate = HydrationRule{Kind: HydrateObject, Target: newFn}
	return f
}

// ObjectBy hydrates the field as a nested model whose type pick selects from
// the raw object.
func (f *fieldStep) ObjectBy(pick func(raw map[string]any) Factory) *fieldStep {
	f.def.hydrate = HydrationRule{Kind: HydrateObject, Pick: pick}
	return f
}

// Passthrough hydrates the field with the raw value unchanged, for union
// fields whose alternatives are judged by Validate.
func (f *fieldStep) Passthrough() *fieldStep {
	f.def.hydrate = HydrationRule{Kind: HydrateScalar, Scalar: KindUnknown}
	return f
}

// Objects hydrates the field as an ordered list of nested models.
func (f *fieldStep) Objects(newFn Factory) *fieldStep {
	f.def.hydrate = HydrationRule{Kind: HydrateObjects, Target: newFn}
	return f
}

// Grid hydrates the field as a list of rows of nested models.
func (f *fieldStep) Grid(newFn Factory) *fieldStep {
	f.def.hydrate = HydrationRule{Kind: HydrateObjectGrid, Target: newFn}
	return f
}

// Hydrate sets an explicit hydration rule.
func (f *fieldStep) Hydrate(r HydrationRule) *fieldStep {
	f.def.hydrate = r
	return f
}

// JSONText serializes the field value as JSON text.
func (f *fieldStep) JSONText() *fieldStep {
	f.def.encoding = EncodeJSONText
	return f
}

func (f *fieldStep) Field(name string) *fieldStep { return f.b.Field(name) }
func (f *fieldStep) Rule(r Rule) *schemaBuilder   { return f.b.Rule(r) }
func (f *fieldStep) Build() (*Schema, error)      { return f.b.Build() }
func (f *fieldStep) MustBuild() *Schema           { return f.b.MustBuild() }
