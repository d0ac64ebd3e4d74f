// Package schemafile loads tgskema field tables from YAML, for models whose
// shape is known only at runtime.
//
// A file lists schemas; each field gives its alternatives as constraint
// names and, optionally, its hydration rule and encoding:
//
//	schemas:
//	  - name: Point
//	    fields:
//	      - name: x
//	        required: true
//	        accepts: [integer]
//	      - name: label
//	        alternatives:
//	          - [string]
//	          - [integer]
//	        hydrate: raw
//	      - name: markup
//	        accepts: ["object:InlineKeyboardMarkup"]
//	        encoding: json_text
//	    rules:
//	      - together: [x, label]
//	      - at_most_one: [label, markup]
//	      - required_if: {field: x, equals: 0, require: [label]}
//
// Constraint names are integer, string, lenient_string, boolean, float,
// object:<Type> and list:<constraint>. Object types resolve to schemas of the
// same file first and to the Resolver given by WithResolver after that.
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	tgskema "github.com/reoring/tgskema"
	"github.com/reoring/tgskema/rules"
	"gopkg.in/yaml.v3"
)

// Resolver maps a type name to a factory for types defined outside the file.
type Resolver func(name string) (tgskema.Factory, bool)

// Option configures Load.
type Option func(*loader)

// WithResolver resolves object types the file does not define.
func WithResolver(r Resolver) Option { return func(l *loader) { l.resolve = r } }

// Catalog holds the schemas of one file.
type Catalog struct {
	schemas map[string]*tgskema.Schema
	order   []string
}

// Schema returns the named schema.
func (c *Catalog) Schema(name string) (*tgskema.Schema, bool) {
	s, ok := c.schemas[name]
	return s, ok
}

// Factory returns a factory producing empty Dynamic models of the named schema.
func (c *Catalog) Factory(name string) (tgskema.Factory, bool) {
	if _, ok := c.schemas[name]; !ok {
		return nil, false
	}
	return c.factory(name), true
}

func (c *Catalog) factory(name string) tgskema.Factory {
	return func() tgskema.Model { return tgskema.NewDynamic(c.schemas[name]) }
}

// Names lists schema names in file order.
func (c *Catalog) Names() []string { return append([]string(nil), c.order...) }

type fileDoc struct {
	Schemas []schemaDoc `yaml:"schemas"`
}

type schemaDoc struct {
	Name   string     `yaml:"name"`
	Fields []fieldDoc `yaml:"fields"`
	Rules  []ruleDoc  `yaml:"rules"`
}

type fieldDoc struct {
	Name         string     `yaml:"name"`
	Required     bool       `yaml:"required"`
	Accepts      []string   `yaml:"accepts"`
	Alternatives [][]string `yaml:"alternatives"`
	Hydrate      string     `yaml:"hydrate"`
	Encoding     string     `yaml:"encoding"`
}

type ruleDoc struct {
	Exclusive  *exclusiveDoc  `yaml:"exclusive"`
	Together   []string       `yaml:"together"`
	AtMostOne  []string       `yaml:"at_most_one"`
	RequiredIf *requiredIfDoc `yaml:"required_if"`
}

// requiredIfDoc requires Require once Field equals Equals, or once Field is
// set when Equals is omitted.
type requiredIfDoc struct {
	Field   string   `yaml:"field"`
	Equals  any      `yaml:"equals"`
	Require []string `yaml:"require"`
}

type exclusiveDoc struct {
	Description string   `yaml:"description"`
	A           []string `yaml:"a"`
	B           []string `yaml:"b"`
}

type loader struct {
	cat     *Catalog
	resolve Resolver
}

// LoadFile reads and loads a schema file.
func LoadFile(path string, opts ...Option) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	return Load(data, opts...)
}

// Load parses a schema file. Unknown keys, unknown constraint names and
// unresolvable object types are errors; schema build failures are returned
// wrapped so tgskema.AsIssues can extract them.
func Load(data []byte, opts ...Option) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc fileDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	l := &loader{cat: &Catalog{schemas: map[string]*tgskema.Schema{}}}
	for _, o := range opts {
		o(l)
	}
	defined := map[string]bool{}
	for i, sd := range doc.Schemas {
		if sd.Name == "" {
			return nil, fmt.Errorf("schemafile: schema %d has no name", i)
		}
		if defined[sd.Name] {
			return nil, fmt.Errorf("schemafile: schema %q defined twice", sd.Name)
		}
		defined[sd.Name] = true
		l.cat.order = append(l.cat.order, sd.Name)
	}
	for _, sd := range doc.Schemas {
		s, err := l.build(sd, defined)
		if err != nil {
			return nil, err
		}
		l.cat.schemas[sd.Name] = s
	}
	return l.cat, nil
}

func (l *loader) build(sd schemaDoc, defined map[string]bool) (*tgskema.Schema, error) {
	b := tgskema.NewSchema(sd.Name)
	for _, fd := range sd.Fields {
		alts := fd.Alternatives
		if len(fd.Accepts) > 0 {
			alts = append([][]string{fd.Accepts}, alts...)
		}
		step := b.Field(fd.Name)
		for _, alt := range alts {
			cs := make([]tgskema.Constraint, 0, len(alt))
			for _, name := range alt {
				c, err := l.constraint(name, defined)
				if err != nil {
					return nil, fmt.Errorf("schemafile: %s.%s: %w", sd.Name, fd.Name, err)
				}
				cs = append(cs, c)
			}
			if fd.Required {
				step.Requires(cs...)
			} else {
				step.Accepts(cs...)
			}
		}
		if len(alts) == 0 && fd.Required {
			step.Requires()
		}
		hydrate := fd.Hydrate
		if hydrate == "" {
			hydrate = inferHydrate(alts)
		}
		rule, err := l.hydration(hydrate, defined)
		if err != nil {
			return nil, fmt.Errorf("schemafile: %s.%s: %w", sd.Name, fd.Name, err)
		}
		step.Hydrate(rule)
		switch fd.Encoding {
		case "", "structured":
		case "json_text":
			step.JSONText()
		default:
			return nil, fmt.Errorf("schemafile: %s.%s: unknown encoding %q", sd.Name, fd.Name, fd.Encoding)
		}
	}
	for i, rd := range sd.Rules {
		switch {
		case rd.Exclusive != nil:
			b.Rule(tgskema.Exclusive(rd.Exclusive.Description, rd.Exclusive.A, rd.Exclusive.B))
		case len(rd.Together) > 0:
			b.Rule(tgskema.Together(rd.Together...))
		case len(rd.AtMostOne) > 0:
			b.Rule(rules.AtMostOne(rd.AtMostOne...))
		case rd.RequiredIf != nil:
			ri := rd.RequiredIf
			if ri.Field == "" || len(ri.Require) == 0 {
				return nil, fmt.Errorf("schemafile: %s: rule %d: required_if needs field and require", sd.Name, i)
			}
			cond := rules.IfSet(ri.Field)
			if ri.Equals != nil {
				cond = rules.If(ri.Field, rules.Eq, ri.Equals)
			}
			b.Rule(rules.RequiredIf(cond, ri.Require...))
		default:
			return nil, fmt.Errorf("schemafile: %s: rule %d is empty", sd.Name, i)
		}
	}
	s, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("schemafile: %s: %w", sd.Name, err)
	}
	return s, nil
}

var errUnknownType = errors.New("unknown object type")

func (l *loader) factory(name string, defined map[string]bool) (tgskema.Factory, error) {
	if defined[name] {
		return l.cat.factory(name), nil
	}
	if l.resolve != nil {
		if f, ok := l.resolve(name); ok {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w %q (file defines: %s)", errUnknownType, name, strings.Join(sortedKeys(defined), ", "))
}

func (l *loader) constraint(name string, defined map[string]bool) (tgskema.Constraint, error) {
	switch name {
	case "integer":
		return tgskema.Integer(), nil
	case "string":
		return tgskema.String(), nil
	case "lenient_string":
		return tgskema.LenientString(), nil
	case "boolean":
		return tgskema.Boolean(), nil
	case "float":
		return tgskema.Float(), nil
	}
	if t, ok := strings.CutPrefix(name, "object:"); ok {
		f, err := l.factory(t, defined)
		if err != nil {
			return nil, err
		}
		return tgskema.ObjectOf(f), nil
	}
	if elem, ok := strings.CutPrefix(name, "list:"); ok {
		c, err := l.constraint(elem, defined)
		if err != nil {
			return nil, err
		}
		return tgskema.ListOf(c), nil
	}
	return nil, fmt.Errorf("unknown constraint %q", name)
}

// inferHydrate derives a hydration rule from a single-alternative field.
func inferHydrate(alts [][]string) string {
	if len(alts) != 1 || len(alts[0]) != 1 {
		return "raw"
	}
	c := alts[0][0]
	switch {
	case c == "integer", c == "string", c == "boolean", c == "float":
		return "scalar:" + c
	case strings.HasPrefix(c, "object:"):
		return c
	case strings.HasPrefix(c, "list:list:object:"):
		return "grid:" + strings.TrimPrefix(c, "list:list:object:")
	case strings.HasPrefix(c, "list:object:"):
		return "objects:" + strings.TrimPrefix(c, "list:object:")
	}
	return "raw"
}

func (l *loader) hydration(expr string, defined map[string]bool) (tgskema.HydrationRule, error) {
	if expr == "raw" {
		return tgskema.HydrationRule{Kind: tgskema.HydrateScalar, Scalar: tgskema.KindUnknown}, nil
	}
	kind, arg, _ := strings.Cut(expr, ":")
	switch kind {
	case "scalar":
		k, ok := scalarKinds[arg]
		if !ok {
			return tgskema.HydrationRule{}, fmt.Errorf("unknown scalar kind %q", arg)
		}
		return tgskema.HydrationRule{Kind: tgskema.HydrateScalar, Scalar: k}, nil
	case "object", "objects", "grid":
		f, err := l.factory(arg, defined)
		if err != nil {
			return tgskema.HydrationRule{}, err
		}
		return tgskema.HydrationRule{Kind: objectKinds[kind], Target: f}, nil
	}
	return tgskema.HydrationRule{}, fmt.Errorf("unknown hydration %q", expr)
}

var scalarKinds = map[string]tgskema.Kind{
	"integer": tgskema.KindInteger,
	"string":  tgskema.KindString,
	"boolean": tgskema.KindBoolean,
	"float":   tgskema.KindFloat,
}

var objectKinds = map[string]tgskema.HydrateKind{
	"object":  tgskema.HydrateObject,
	"objects": tgskema.HydrateObjects,
	"grid":    tgskema.HydrateObjectGrid,
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
